package components

import (
	"fmt"
	"html"
	"strings"
)

// HeroOptions configures the hero section.
type HeroOptions struct {
	// Eyebrow is the small caps line above the title
	Eyebrow string
	// Title is the main headline
	Title string
	// Highlight, when it occurs in Title, is wrapped in an accent span
	Highlight string
	// Subtitle is the description below the title
	Subtitle string
	// PrimaryButton is the primary CTA
	PrimaryButton HeroButton
	// SecondaryButton is the secondary CTA
	SecondaryButton HeroButton
}

// HeroButton represents a hero section button.
type HeroButton struct {
	Text string
	URL  string
}

// RenderHero generates the hero section with title, subtitle, and CTAs.
func RenderHero(opts HeroOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section class="hero" aria-labelledby="hero-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	if opts.Eyebrow != "" {
		sb.WriteString(fmt.Sprintf(`<p class="eyebrow animate-fade-in">%s</p>`, html.EscapeString(opts.Eyebrow)))
		sb.WriteString("\n")
	}

	sb.WriteString(`<h1 id="hero-title" class="hero-title animate-fade-in">`)
	sb.WriteString(highlight(opts.Title, opts.Highlight))
	sb.WriteString(`</h1>`)
	sb.WriteString("\n")

	if opts.Subtitle != "" {
		sb.WriteString(`<p class="hero-subtitle">`)
		sb.WriteString(html.EscapeString(opts.Subtitle))
		sb.WriteString(`</p>`)
		sb.WriteString("\n")
	}

	if opts.PrimaryButton.Text != "" || opts.SecondaryButton.Text != "" {
		sb.WriteString(`<div class="hero-actions">`)
		sb.WriteString("\n")
		if opts.PrimaryButton.Text != "" {
			sb.WriteString(renderHeroButton(opts.PrimaryButton, "btn btn-primary"))
		}
		if opts.SecondaryButton.Text != "" {
			sb.WriteString(renderHeroButton(opts.SecondaryButton, "btn btn-secondary"))
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderHeroButton(b HeroButton, class string) string {
	target := ""
	if strings.HasPrefix(b.URL, "http") {
		target = ` target="_blank" rel="noopener noreferrer"`
	}
	return fmt.Sprintf(`<a href="%s" class="%s"%s>%s</a>`+"\n",
		html.EscapeString(b.URL), class, target, html.EscapeString(b.Text))
}

// highlight escapes title and wraps the first occurrence of word.
func highlight(title, word string) string {
	if word == "" {
		return html.EscapeString(title)
	}
	i := strings.Index(title, word)
	if i < 0 {
		return html.EscapeString(title)
	}
	return html.EscapeString(title[:i]) +
		`<span class="text-accent">` + html.EscapeString(word) + `</span>` +
		html.EscapeString(title[i+len(word):])
}
