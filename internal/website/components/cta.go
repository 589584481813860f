package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/northbeam/website/internal/website"
)

// RenderCTA renders the closing call-to-action band.
func RenderCTA(cfg website.CTAConfig) string {
	var sb strings.Builder

	sb.WriteString(`<section class="section" id="contact" aria-labelledby="cta-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="cta">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h2 id="cta-title">%s</h2>`, html.EscapeString(cfg.Title)))
	sb.WriteString("\n")
	if cfg.Subtitle != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(cfg.Subtitle)))
		sb.WriteString("\n")
	}
	if cfg.ButtonLabel != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-accent">%s</a>`,
			html.EscapeString(cfg.ButtonURL), html.EscapeString(cfg.ButtonLabel)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}
