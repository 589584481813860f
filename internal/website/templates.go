// Package website renders the Northbeam Digital marketing site: the document
// head with its SEO metadata, schema.org structured data, the sitemap and
// robots files, and the inline stylesheet. Page sections and UI primitives
// live in the components subpackage; copy lives in content.
//
// Everything here is plain Go string building with html.EscapeString. There
// is no template engine and no external CSS.
package website

import "strings"

// PageMeta is the metadata record for one route.
type PageMeta struct {
	// Path is the route path, e.g. "/services". Used for the sitemap.
	Path string
	// Title is the page title (shown in browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// Keywords are SEO keywords for the page
	Keywords []string
	// Canonical is the absolute canonical URL. Derived from the base URL
	// and Path when empty.
	Canonical string
	// OGImage is the Open Graph image URL (for social sharing)
	OGImage string
	// OGType is the Open Graph object type (default: "website")
	OGType string
	// TwitterCard is the card type (default: "summary_large_image")
	TwitterCard string
	// TwitterSite is the @handle of the site
	TwitterSite string
	// Robots holds the crawler directives
	Robots Robots
	// Language is the page language (default: "en")
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string
	// ChangeFreq and Priority feed the sitemap entry.
	ChangeFreq string
	Priority   float64
	// Services are emitted as schema.org Service blocks.
	Services []ServiceSchema
}

// Robots are per-page crawler directives.
type Robots struct {
	NoIndex  bool
	NoFollow bool
}

// String returns the robots meta content, e.g. "noindex, follow".
func (r Robots) String() string {
	index, follow := "index", "follow"
	if r.NoIndex {
		index = "noindex"
	}
	if r.NoFollow {
		follow = "nofollow"
	}
	return index + ", " + follow
}

// WithBase fills defaults and derives the canonical URL from baseURL.
func (m PageMeta) WithBase(baseURL string) PageMeta {
	if m.Language == "" {
		m.Language = "en"
	}
	if m.ThemeColor == "" {
		m.ThemeColor = Colors["primary"]
	}
	if m.OGType == "" {
		m.OGType = "website"
	}
	if m.TwitterCard == "" {
		m.TwitterCard = "summary_large_image"
	}
	if m.Canonical == "" && baseURL != "" {
		m.Canonical = strings.TrimRight(baseURL, "/") + m.Path
	}
	return m
}

// Feature is a card in the features grid.
type Feature struct {
	// Icon is a Unicode emoji or symbol
	Icon        string
	Title       string
	Description string
}

// Service is one agency offering.
type Service struct {
	Slug        string
	Icon        string
	Title       string
	Summary     string
	Highlights  []string
	Description string
	// Phases is the typical engagement timeline, in order.
	Phases []Phase
}

// Phase is one stage of an engagement.
type Phase struct {
	Name  string
	Weeks int
}

// Testimonial is a client quote.
type Testimonial struct {
	Quote   string
	Author  string
	Role    string
	Company string
}

// NavLink represents a navigation link.
type NavLink struct {
	// Label is the link text
	Label string
	// URL is the link destination
	URL string
	// External indicates if the link opens in a new tab
	External bool
}

// SocialLinks configures social media links.
type SocialLinks struct {
	LinkedIn  string
	Instagram string
	Dribbble  string
	GitHub    string
}

// FooterConfig configures the footer section.
type FooterConfig struct {
	Tagline   string
	Email     string
	Copyright string
	Links     []NavLink
	Social    SocialLinks
}

// CTAConfig configures the closing call-to-action band.
type CTAConfig struct {
	Title       string
	Subtitle    string
	ButtonLabel string
	ButtonURL   string
}
