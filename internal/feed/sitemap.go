package feed

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/Bitlatte/quill/internal/model"
)

const dateOnly = "2006-01-02"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod"`
	Priority string `xml:"priority"`
}

// staticRoutes are the app's fixed pages and their sitemap priorities.
var staticRoutes = []struct {
	path     string
	priority string
}{
	{"", "1.0"},
	{"/about", "0.8"},
	{"/search", "0.6"},
}

const postPriority = "0.9"

// WriteSitemap writes a sitemap 0.9 document listing the static routes and
// every post. Static routes use now as their last modification date.
func WriteSitemap(w io.Writer, posts []*model.Post, baseURL string, now time.Time) error {
	today := now.UTC().Format(dateOnly)

	urls := make([]sitemapURL, 0, len(staticRoutes)+len(posts))
	for _, r := range staticRoutes {
		urls = append(urls, sitemapURL{
			Loc:      baseURL + r.path,
			LastMod:  today,
			Priority: r.priority,
		})
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:      PostURL(baseURL, p.Slug),
			LastMod:  p.Date.UTC().Format(dateOnly),
			Priority: postPriority,
		})
	}

	return encode(w, urlSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}
