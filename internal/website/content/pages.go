package content

import (
	"github.com/northbeam/website/internal/website"
)

const ogImage = "https://northbeam.digital/assets/og.png"

// Home is the metadata for the landing page.
func Home() website.PageMeta {
	return website.PageMeta{
		Path:        "/",
		Title:       "Northbeam Digital | Design and engineering studio",
		Description: "Northbeam is an independent studio building fast websites, brands and products for ambitious teams.",
		Keywords:    []string{"digital agency", "web development", "brand identity", "product design", "SEO"},
		OGImage:     ogImage,
		TwitterSite: "@northbeamhq",
		ChangeFreq:  "weekly",
		Priority:    1.0,
	}
}

// ServicesIndex is the metadata for the services overview.
func ServicesIndex() website.PageMeta {
	return website.PageMeta{
		Path:        "/services",
		Title:       "Services | Northbeam Digital",
		Description: "Web development, brand identity, product design and SEO from a senior team.",
		Keywords:    []string{"agency services", "web development", "branding"},
		OGImage:     ogImage,
		TwitterSite: "@northbeamhq",
		ChangeFreq:  "monthly",
		Priority:    0.9,
		Services:    serviceSchemas(Services()),
	}
}

// ServicePage is the metadata for one service's page.
func ServicePage(s website.Service) website.PageMeta {
	return website.PageMeta{
		Path:        "/services/" + s.Slug,
		Title:       s.Title + " | Northbeam Digital",
		Description: s.Summary,
		OGImage:     ogImage,
		TwitterSite: "@northbeamhq",
		ChangeFreq:  "monthly",
		Priority:    0.8,
		Services:    serviceSchemas([]website.Service{s}),
	}
}

// About is the metadata for the studio page.
func About() website.PageMeta {
	return website.PageMeta{
		Path:        "/about",
		Title:       "About | Northbeam Digital",
		Description: "A small, senior studio of designers and engineers.",
		OGImage:     ogImage,
		ChangeFreq:  "yearly",
		Priority:    0.5,
	}
}

// Privacy is the metadata for the privacy notice. Indexed but not followed.
func Privacy() website.PageMeta {
	return website.PageMeta{
		Path:        "/privacy",
		Title:       "Privacy | Northbeam Digital",
		Description: "How Northbeam Digital handles personal data.",
		Robots:      website.Robots{NoFollow: true},
		ChangeFreq:  "yearly",
		Priority:    0.1,
	}
}

// NotFound is the metadata for the 404 page.
func NotFound() website.PageMeta {
	return website.PageMeta{
		Path:   "/404",
		Title:  "Page not found | Northbeam Digital",
		Robots: website.Robots{NoIndex: true, NoFollow: true},
	}
}

// Pages returns every page record in sitemap order.
func Pages() []website.PageMeta {
	pages := []website.PageMeta{Home(), ServicesIndex()}
	for _, s := range Services() {
		pages = append(pages, ServicePage(s))
	}
	return append(pages, About(), Privacy(), NotFound())
}

func serviceSchemas(services []website.Service) []website.ServiceSchema {
	out := make([]website.ServiceSchema, 0, len(services))
	for _, s := range services {
		out = append(out, website.ServiceSchema{
			Name:        s.Title,
			Description: s.Summary,
			URL:         website.ProviderURL + "/services/" + s.Slug,
		})
	}
	return out
}
