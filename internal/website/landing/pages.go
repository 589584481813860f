// Package landing composes the site's sections into complete pages.
package landing

import (
	"fmt"
	"html"
	"strings"

	"github.com/northbeam/website/internal/website"
	"github.com/northbeam/website/internal/website/components"
	"github.com/northbeam/website/internal/website/content"
)

// ClientScript is the browser client every page loads.
const ClientScript = "/assets/northbeam.js"

// Layout holds what every page needs besides its body.
type Layout struct {
	// BaseURL is the public origin, e.g. "https://northbeam.digital".
	BaseURL string
	// Nonce is the per-request CSP nonce.
	Nonce string
	// LivePath is the path the browser client joins; empty disables the
	// live connection.
	LivePath string
	// CustomCSS is appended to the stylesheet.
	CustomCSS string
}

// Render wraps main in the navbar and footer and returns the document.
func (l Layout) Render(meta website.PageMeta, main string) string {
	meta = meta.WithBase(l.BaseURL)

	var body strings.Builder

	body.WriteString(components.RenderNavbar(components.NavbarOptions{
		Logo:    content.AgencyName,
		Links:   content.Nav(),
		Current: meta.Path,
		CTA:     content.NavCTA(),
	}))

	body.WriteString(`<main id="main-content">`)
	body.WriteString("\n")
	body.WriteString(main)
	body.WriteString(`</main>`)
	body.WriteString("\n")

	body.WriteString(components.RenderFooter(components.FooterOptions{
		LogoText: content.AgencyName,
		Config:   content.Footer(),
	}))

	doc := website.Document{
		Meta:  meta,
		Nonce: l.Nonce,
		CSS:   l.CustomCSS,
		Body:  body.String(),
	}
	if l.LivePath != "" {
		doc.BodyAttrs = fmt.Sprintf(`data-live-path="%s"`, html.EscapeString(l.LivePath))
		doc.Scripts = []string{ClientScript}
	}

	return website.RenderDocument(doc)
}

// RenderHome generates the landing page.
func RenderHome(l Layout) string {
	var main strings.Builder

	main.WriteString(components.RenderHero(components.HeroOptions{
		Eyebrow:         "Design & engineering studio",
		Title:           "We build websites that work as hard as you do",
		Highlight:       "work as hard",
		Subtitle:        "Northbeam is a senior team of designers and engineers. We plan, design and ship fast, accessible sites and products, then stay to make them better.",
		PrimaryButton:   components.HeroButton{Text: "Start a project", URL: "#contact"},
		SecondaryButton: components.HeroButton{Text: "Our services", URL: "/services"},
	}))

	main.WriteString(components.RenderServices(components.ServicesOptions{
		Eyebrow:  "What we do",
		Title:    "Services",
		Subtitle: "Four disciplines under one roof, so nothing gets lost between agencies.",
		Services: content.Services(),
		LinkBase: "/services",
	}))

	main.WriteString(components.RenderFeatures(components.FeaturesOptions{
		ID:       "work",
		Eyebrow:  "How we work",
		Title:    "Why teams choose Northbeam",
		Features: content.Features(),
		Columns:  3,
	}))

	main.WriteString(components.RenderTestimonials(components.TestimonialsOptions{
		Eyebrow:      "Clients",
		Title:        "In their words",
		Testimonials: content.Testimonials(),
	}))

	main.WriteString(components.RenderCTA(content.CTA()))

	return l.Render(content.Home(), main.String())
}

// RenderServicesIndex generates the services overview.
func RenderServicesIndex(l Layout) string {
	var main strings.Builder

	main.WriteString(components.RenderServices(components.ServicesOptions{
		Eyebrow:  "Services",
		Title:    "What we can do together",
		Subtitle: "Pick one discipline or combine them. Every engagement has a single senior lead.",
		Services: content.Services(),
		LinkBase: "/services",
	}))
	main.WriteString(components.RenderCTA(content.CTA()))

	return l.Render(content.ServicesIndex(), main.String())
}

// RenderServicePage generates the page for one service.
func RenderServicePage(l Layout, s website.Service) string {
	var main strings.Builder

	main.WriteString(components.RenderServiceDetail(s))
	main.WriteString(components.RenderCTA(content.CTA()))

	return l.Render(content.ServicePage(s), main.String())
}

// RenderAbout generates the studio page.
func RenderAbout(l Layout) string {
	var main strings.Builder

	main.WriteString(components.RenderHero(components.HeroOptions{
		Eyebrow:  "About",
		Title:    "A small studio with a long memory",
		Subtitle: "Founded by designers and engineers who wanted to work directly with the people they build for.",
	}))
	main.WriteString(components.RenderFeatures(components.FeaturesOptions{
		Title:    "What we believe",
		Features: content.Features(),
		Columns:  2,
	}))

	return l.Render(content.About(), main.String())
}

// RenderPrivacy generates the privacy notice.
func RenderPrivacy(l Layout) string {
	main := `<section class="section"><div class="container">
<h1>Privacy</h1>
<p>We collect only what we need to reply to you: the details you send us by email. We do not use tracking cookies.</p>
<p>Server logs are kept for fourteen days for security and then deleted.</p>
</div></section>
`
	return l.Render(content.Privacy(), main)
}

// RenderNotFound generates the 404 page.
func RenderNotFound(l Layout) string {
	main := components.RenderHero(components.HeroOptions{
		Eyebrow:       "404",
		Title:         "This page has moved on",
		Subtitle:      "The link may be old or mistyped.",
		PrimaryButton: components.HeroButton{Text: "Back to the homepage", URL: "/"},
	})
	return l.Render(content.NotFound(), main)
}
