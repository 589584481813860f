// Package components renders the page sections and UI primitives of the
// Northbeam site as HTML strings.
package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/northbeam/website/internal/website"
)

// NavbarOptions configures the navbar component.
type NavbarOptions struct {
	// Logo is the logo text (usually the agency name)
	Logo string
	// Links are the navigation links
	Links []website.NavLink
	// Current is the path of the page being rendered; its link gets aria-current.
	Current string
	// CTA is an optional button on the right
	CTA website.NavLink
}

// RenderNavbar generates a sticky navigation bar.
func RenderNavbar(opts NavbarOptions) string {
	var sb strings.Builder

	sb.WriteString(`<a href="#main-content" class="skip-link">Skip to main content</a>`)
	sb.WriteString("\n")

	sb.WriteString(`<nav class="nav" aria-label="Main navigation">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container nav-inner">`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<a href="/" class="logo" aria-label="%s home">%s</a>`,
		html.EscapeString(opts.Logo), html.EscapeString(opts.Logo)))
	sb.WriteString("\n")

	// Nav links group (hidden on mobile, shown on 640px+)
	sb.WriteString(`<div class="nav-links">`)
	sb.WriteString("\n")
	for _, link := range opts.Links {
		sb.WriteString(renderLink(link, "", link.URL == opts.Current))
		sb.WriteString("\n")
	}
	if opts.CTA.Label != "" {
		sb.WriteString(renderLink(opts.CTA, "btn btn-primary", false))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderLink(link website.NavLink, class string, current bool) string {
	var attrs strings.Builder
	if class != "" {
		attrs.WriteString(fmt.Sprintf(` class="%s"`, class))
	}
	if current {
		attrs.WriteString(` aria-current="page"`)
	}
	if link.External {
		attrs.WriteString(` target="_blank" rel="noopener noreferrer"`)
	}
	return fmt.Sprintf(`<a href="%s"%s>%s</a>`,
		html.EscapeString(link.URL), attrs.String(), html.EscapeString(link.Label))
}
