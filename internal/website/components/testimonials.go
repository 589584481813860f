package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/northbeam/website/internal/website"
)

// TestimonialsOptions configures the testimonials strip.
type TestimonialsOptions struct {
	ID           string // default: "testimonials"
	Eyebrow      string
	Title        string
	Testimonials []website.Testimonial
}

// RenderTestimonials renders client quotes in a horizontal scroll area.
// With no quotes it renders skeleton cards in their place.
func RenderTestimonials(opts TestimonialsOptions) string {
	var sb strings.Builder

	id := opts.ID
	if id == "" {
		id = "testimonials"
	}

	sb.WriteString(sectionOpen(id, opts.Title != ""))
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(renderSectionHead(id, opts.Eyebrow, opts.Title, ""))

	var row strings.Builder
	row.WriteString(`<div class="scroll-area-row">`)
	if len(opts.Testimonials) == 0 {
		for i := 0; i < 3; i++ {
			row.WriteString(`<div class="card testimonial">`)
			row.WriteString(Skeleton(SkeletonProps{Class: "skeleton-title"}))
			row.WriteString(Skeleton(SkeletonProps{Class: "skeleton-line"}))
			row.WriteString(Skeleton(SkeletonProps{Class: "skeleton-avatar"}))
			row.WriteString(`</div>`)
		}
	}
	for _, t := range opts.Testimonials {
		row.WriteString(renderTestimonial(t))
	}
	row.WriteString(`</div>`)

	sb.WriteString(ScrollArea(ScrollAreaProps{
		Orientation: Horizontal,
		Label:       "Client testimonials",
		Content:     row.String(),
	}))
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderTestimonial(t website.Testimonial) string {
	who := html.EscapeString(t.Role)
	if t.Company != "" {
		if who != "" {
			who += ", "
		}
		who += html.EscapeString(t.Company)
	}

	return fmt.Sprintf(`<figure class="card testimonial">`+
		`<blockquote>%s</blockquote>`+
		`<figcaption><span class="testimonial-author">%s</span><br>%s</figcaption>`+
		`</figure>`,
		html.EscapeString(t.Quote), html.EscapeString(t.Author), who)
}
