package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Bitlatte/quill/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildTime = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

var testChannel = Channel{
	Title:       "QuillMD",
	Description: "A markdown blog",
	BaseURL:     "https://blog.example.com",
	Language:    "en-us",
}

type parsedRSS struct {
	Version string `xml:"version,attr"`
	Title   string `xml:"channel>title"`
	Items   []struct {
		Title       string `xml:"title"`
		Description string `xml:"description"`
		Link        string `xml:"link"`
		GUID        string `xml:"guid"`
		PubDate     string `xml:"pubDate"`
	} `xml:"channel>item"`
}

func makePosts(n int) []*model.Post {
	posts := make([]*model.Post, n)
	for i := 0; i < n; i++ {
		posts[i] = &model.Post{
			Slug:    fmt.Sprintf("post-%d", i),
			Title:   fmt.Sprintf("Post <%d> & more", i),
			Excerpt: "Excerpt with <b>markup</b>",
			Date:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
		}
	}
	return posts
}

func TestWriteRSS_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRSS(&buf, nil, testChannel, buildTime))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, out, `<atom:link href="https://blog.example.com/rss.xml" rel="self" type="application/rss+xml"></atom:link>`)
	assert.Contains(t, out, "<lastBuildDate>Sat, 17 Oct 2026 09:30:00 GMT</lastBuildDate>")
	assert.NotContains(t, out, "<item>")

	var doc parsedRSS
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, "QuillMD", doc.Title)
	assert.Empty(t, doc.Items)
}

func TestWriteRSS_Items(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRSS(&buf, makePosts(2), testChannel, buildTime))

	assert.Contains(t, buf.String(), "<title><![CDATA[Post <0> & more]]></title>")

	var doc parsedRSS
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Items, 2)

	first := doc.Items[0]
	assert.Equal(t, "Post <0> & more", first.Title)
	assert.Equal(t, "Excerpt with <b>markup</b>", first.Description)
	assert.Equal(t, "https://blog.example.com/post/post-0", first.Link)
	assert.Equal(t, first.Link, first.GUID)
	assert.Equal(t, "Fri, 01 Mar 2024 00:00:00 GMT", first.PubDate)
}

func TestWriteRSS_CapsAtTwentyItems(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRSS(&buf, makePosts(25), testChannel, buildTime))

	var doc parsedRSS
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Items, MaxRSSItems)
	assert.Equal(t, "https://blog.example.com/post/post-19", doc.Items[19].Link)
}

type parsedSitemap struct {
	URLs []struct {
		Loc      string `xml:"loc"`
		LastMod  string `xml:"lastmod"`
		Priority string `xml:"priority"`
	} `xml:"url"`
}

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSitemap(&buf, makePosts(2), "https://blog.example.com", buildTime))

	assert.Contains(t, buf.String(), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	var doc parsedSitemap
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.URLs, 5)

	expected := []struct{ loc, lastmod, priority string }{
		{"https://blog.example.com", "2026-10-17", "1.0"},
		{"https://blog.example.com/about", "2026-10-17", "0.8"},
		{"https://blog.example.com/search", "2026-10-17", "0.6"},
		{"https://blog.example.com/post/post-0", "2024-03-01", "0.9"},
		{"https://blog.example.com/post/post-1", "2024-02-29", "0.9"},
	}
	for i, want := range expected {
		assert.Equal(t, want.loc, doc.URLs[i].Loc)
		assert.Equal(t, want.lastmod, doc.URLs[i].LastMod)
		assert.Equal(t, want.priority, doc.URLs[i].Priority)
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dist")
	posts := makePosts(1)

	rssPath := filepath.Join(dir, "rss.xml")
	sitemapPath := filepath.Join(dir, "sitemap.xml")
	require.NoError(t, WriteRSSFile(rssPath, posts, testChannel, buildTime))
	require.NoError(t, WriteSitemapFile(sitemapPath, posts, testChannel.BaseURL, buildTime))

	rss, err := os.ReadFile(rssPath)
	require.NoError(t, err)
	assert.Contains(t, string(rss), "post-0")

	sitemap, err := os.ReadFile(sitemapPath)
	require.NoError(t, err)
	assert.Contains(t, string(sitemap), "post-0")
}

func TestWriteRSSFile_UnwritablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteRSSFile(filepath.Join(blocker, "rss.xml"), nil, testChannel, buildTime)
	assert.Error(t, err)
}
