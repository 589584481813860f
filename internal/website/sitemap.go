package website

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// RenderSitemap builds sitemap.xml from the page records, in order.
// Pages marked noindex are left out.
func RenderSitemap(baseURL string, pages []PageMeta) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS}
	for _, p := range pages {
		if p.Robots.NoIndex {
			continue
		}
		p = p.WithBase(baseURL)
		entry := sitemapURL{Loc: p.Canonical, ChangeFreq: p.ChangeFreq}
		if p.Priority > 0 {
			entry.Priority = strconv.FormatFloat(p.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, entry)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// RenderRobots builds robots.txt. Pages marked noindex are disallowed and
// the sitemap location is advertised.
func RenderRobots(baseURL string, pages []PageMeta) string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")
	disallowed := 0
	for _, p := range pages {
		if p.Robots.NoIndex && p.Path != "" {
			sb.WriteString("Disallow: " + p.Path + "\n")
			disallowed++
		}
	}
	if disallowed == 0 {
		sb.WriteString("Allow: /\n")
	}
	sb.WriteString("\nSitemap: " + strings.TrimRight(baseURL, "/") + "/sitemap.xml\n")

	return sb.String()
}
