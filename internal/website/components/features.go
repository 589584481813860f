package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/northbeam/website/internal/website"
)

// FeaturesOptions configures the features section.
type FeaturesOptions struct {
	// ID is the section anchor (default: "features")
	ID       string
	Eyebrow  string
	Title    string
	Subtitle string
	Features []website.Feature
	// Columns is 2 or 3 (default: 3)
	Columns int
}

// RenderFeatures generates a feature grid section.
func RenderFeatures(opts FeaturesOptions) string {
	var sb strings.Builder

	id := opts.ID
	if id == "" {
		id = "features"
	}
	gridClass := "grid-3"
	if opts.Columns == 2 {
		gridClass = "grid-2"
	}

	sb.WriteString(sectionOpen(id, opts.Title != ""))
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	sb.WriteString(renderSectionHead(id, opts.Eyebrow, opts.Title, opts.Subtitle))

	sb.WriteString(fmt.Sprintf(`<div class="grid %s">`, gridClass))
	sb.WriteString("\n")
	for _, f := range opts.Features {
		sb.WriteString(renderFeatureCard(f))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderFeatureCard(f website.Feature) string {
	return fmt.Sprintf(`<article class="card">
<div class="feature-icon" aria-hidden="true">%s</div>
<h3 class="feature-title">%s</h3>
<p class="feature-desc">%s</p>
</article>
`, html.EscapeString(f.Icon), html.EscapeString(f.Title), html.EscapeString(f.Description))
}

func sectionOpen(id string, titled bool) string {
	if titled {
		return fmt.Sprintf(`<section id="%s" class="section" aria-labelledby="%s-title">`+"\n",
			html.EscapeString(id), html.EscapeString(id))
	}
	return fmt.Sprintf(`<section id="%s" class="section">`+"\n", html.EscapeString(id))
}

// renderSectionHead renders the centred eyebrow, title and subtitle block
// shared by the content sections. The h2 id is "<id>-title".
func renderSectionHead(id, eyebrow, title, subtitle string) string {
	if title == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div class="section-head">`)
	sb.WriteString("\n")
	if eyebrow != "" {
		sb.WriteString(fmt.Sprintf(`<p class="eyebrow">%s</p>`, html.EscapeString(eyebrow)))
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf(`<h2 id="%s-title">%s</h2>`, html.EscapeString(id), html.EscapeString(title)))
	sb.WriteString("\n")
	if subtitle != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(subtitle)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	return sb.String()
}
