package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/northbeam/website/internal/website"
)

// ServicesOptions configures the services grid.
type ServicesOptions struct {
	ID       string // default: "services"
	Eyebrow  string
	Title    string
	Subtitle string
	Services []website.Service
	// LinkBase, when set, links each card to LinkBase + "/" + Slug.
	LinkBase string
}

// RenderServices generates the services grid.
func RenderServices(opts ServicesOptions) string {
	var sb strings.Builder

	id := opts.ID
	if id == "" {
		id = "services"
	}

	sb.WriteString(sectionOpen(id, opts.Title != ""))
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(renderSectionHead(id, opts.Eyebrow, opts.Title, opts.Subtitle))

	sb.WriteString(`<div class="grid grid-2">`)
	sb.WriteString("\n")
	for _, s := range opts.Services {
		sb.WriteString(renderServiceCard(s, opts.LinkBase))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderServiceCard(s website.Service, linkBase string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<article class="card" id="service-%s">`, html.EscapeString(s.Slug)))
	sb.WriteString("\n")
	if s.Icon != "" {
		sb.WriteString(fmt.Sprintf(`<div class="service-icon" aria-hidden="true">%s</div>`, html.EscapeString(s.Icon)))
		sb.WriteString("\n")
	}

	title := html.EscapeString(s.Title)
	if linkBase != "" && s.Slug != "" {
		title = fmt.Sprintf(`<a href="%s/%s">%s</a>`,
			html.EscapeString(strings.TrimRight(linkBase, "/")), html.EscapeString(s.Slug), title)
	}
	sb.WriteString(fmt.Sprintf(`<h3 class="service-title">%s</h3>`, title))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p class="service-summary">%s</p>`, html.EscapeString(s.Summary)))
	sb.WriteString("\n")

	if len(s.Highlights) > 0 {
		sb.WriteString(Separator(SeparatorProps{Decorative: true, Class: "service-rule"}))
		sb.WriteString("\n")
		sb.WriteString(`<ul class="service-highlights">`)
		for _, h := range s.Highlights {
			sb.WriteString("<li>" + html.EscapeString(h) + "</li>")
		}
		sb.WriteString(`</ul>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</article>`)
	sb.WriteString("\n")
	return sb.String()
}

// RenderServiceDetail renders the body of a single service page.
func RenderServiceDetail(s website.Service) string {
	var sb strings.Builder

	sb.WriteString(`<section class="section" aria-labelledby="service-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(`<p class="eyebrow">Services</p>`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h1 id="service-title">%s</h1>`, html.EscapeString(s.Title)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p class="hero-subtitle">%s</p>`, html.EscapeString(s.Summary)))
	sb.WriteString("\n")
	sb.WriteString(Separator(SeparatorProps{}))
	sb.WriteString("\n")
	if s.Description != "" {
		sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(s.Description)))
		sb.WriteString("\n")
	}
	if len(s.Highlights) > 0 {
		sb.WriteString(`<ul class="service-highlights">`)
		for _, h := range s.Highlights {
			sb.WriteString("<li>" + html.EscapeString(h) + "</li>")
		}
		sb.WriteString(`</ul>`)
		sb.WriteString("\n")
	}
	sb.WriteString(renderPhases(s))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

// renderPhases draws the engagement timeline. Each bar shows how far into
// the whole engagement the phase ends.
func renderPhases(s website.Service) string {
	total := 0
	for _, ph := range s.Phases {
		total += ph.Weeks
	}
	if total == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<section class="phases" aria-labelledby="phases-title">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h2 id="phases-title">Typical engagement: %d weeks</h2>`, total))
	sb.WriteString("\n")

	elapsed := 0
	for i, ph := range s.Phases {
		elapsed += ph.Weeks
		id := fmt.Sprintf("phase-%s-%d", s.Slug, i+1)
		sb.WriteString(`<div class="phase">`)
		sb.WriteString(Label(LabelProps{ID: id, Text: fmt.Sprintf("%s, %s", ph.Name, weeks(ph.Weeks))}))
		sb.WriteString(Progress(ProgressProps{Value: float64(elapsed), Max: float64(total), LabelledBy: id}))
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</section>`)
	sb.WriteString("\n")
	return sb.String()
}

func weeks(n int) string {
	if n == 1 {
		return "1 week"
	}
	return fmt.Sprintf("%d weeks", n)
}
