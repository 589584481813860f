package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/northbeam/website/internal/website"
)

// FooterOptions configures the footer component.
type FooterOptions struct {
	// Config is the footer configuration
	Config website.FooterConfig
	// LogoText is the logo text
	LogoText string
}

// RenderFooter generates the page footer.
func RenderFooter(opts FooterOptions) string {
	var sb strings.Builder
	cfg := opts.Config

	sb.WriteString(`<footer class="footer">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="footer-grid">`)
	sb.WriteString("\n")

	// Logo, tagline and contact
	sb.WriteString(`<div>`)
	sb.WriteString(fmt.Sprintf(`<div class="logo">%s</div>`, html.EscapeString(opts.LogoText)))
	if cfg.Tagline != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(cfg.Tagline)))
	}
	if cfg.Email != "" {
		sb.WriteString(fmt.Sprintf(`<p><a href="mailto:%s">%s</a></p>`,
			html.EscapeString(cfg.Email), html.EscapeString(cfg.Email)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<nav class="footer-links" aria-label="Footer navigation">`)
	for _, link := range cfg.Links {
		sb.WriteString(renderLink(link, "", false))
	}
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	sb.WriteString(`<nav class="footer-links" aria-label="Social links">`)
	for _, s := range socialLinks(cfg.Social) {
		sb.WriteString(renderLink(s, "", false))
	}
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	if cfg.Copyright != "" {
		sb.WriteString(fmt.Sprintf(`<div class="footer-bottom">%s</div>`, html.EscapeString(cfg.Copyright)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}

func socialLinks(s website.SocialLinks) []website.NavLink {
	var links []website.NavLink
	add := func(label, url string) {
		if url != "" {
			links = append(links, website.NavLink{Label: label, URL: url, External: true})
		}
	}
	add("LinkedIn", s.LinkedIn)
	add("Instagram", s.Instagram)
	add("Dribbble", s.Dribbble)
	add("GitHub", s.GitHub)
	return links
}
