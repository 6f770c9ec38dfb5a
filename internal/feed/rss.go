// Package feed renders the RSS feed and the sitemap for a post set.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/Bitlatte/quill/internal/model"
)

// MaxRSSItems is how many of the newest posts the feed carries.
const MaxRSSItems = 20

// rfc2822 matches the UTC form browsers produce for Date.toUTCString.
const rfc2822 = "Mon, 02 Jan 2006 15:04:05 GMT"

// Channel describes the site in the feed header.
type Channel struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
}

type cdata struct {
	Value string `xml:",cdata"`
}

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Description   string    `xml:"description"`
	Link          string    `xml:"link"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       cdata  `xml:"title"`
	Description cdata  `xml:"description"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
}

// PostURL returns the absolute URL of a post.
func PostURL(baseURL, slug string) string {
	return baseURL + "/post/" + slug
}

// WriteRSS writes an RSS 2.0 document with the newest MaxRSSItems posts.
// posts must already be sorted newest first.
func WriteRSS(w io.Writer, posts []*model.Post, ch Channel, now time.Time) error {
	if len(posts) > MaxRSSItems {
		posts = posts[:MaxRSSItems]
	}

	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := PostURL(ch.BaseURL, p.Slug)
		items = append(items, rssItem{
			Title:       cdata{p.Title},
			Description: cdata{p.Excerpt},
			Link:        link,
			GUID:        link,
			PubDate:     p.Date.UTC().Format(rfc2822),
		})
	}

	doc := rssDocument{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         ch.Title,
			Description:   ch.Description,
			Link:          ch.BaseURL,
			Language:      ch.Language,
			LastBuildDate: now.UTC().Format(rfc2822),
			AtomLink: atomLink{
				Href: ch.BaseURL + "/rss.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
	return encode(w, doc)
}

func encode(w io.Writer, doc any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to finish XML document: %w", err)
	}
	return nil
}
