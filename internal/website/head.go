package website

import (
	"fmt"
	"html"
	"strings"
)

// RenderHead generates a complete <head> section with SEO, Open Graph, and JSON-LD.
// meta is expected to have been through WithBase. nonce, when set, is
// attached to the inline style block for the Content-Security-Policy.
func RenderHead(meta PageMeta, nonce, customCSS string) string {
	var sb strings.Builder

	sb.WriteString("<head>\n")

	// Essential meta tags
	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")

	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(meta.Title)))

	if meta.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(meta.Description)))
	}
	if len(meta.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf(`<meta name="keywords" content="%s">`+"\n", html.EscapeString(strings.Join(meta.Keywords, ", "))))
	}
	if meta.Canonical != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(meta.Canonical)))
	}
	if meta.ThemeColor != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="theme-color" content="%s">`+"\n", html.EscapeString(meta.ThemeColor)))
	}

	sb.WriteString(fmt.Sprintf(`<meta name="robots" content="%s">`+"\n", meta.Robots.String()))

	sb.WriteString(renderOpenGraph(meta))
	sb.WriteString(renderTwitterCard(meta))

	sb.WriteString(renderOrganization())
	sb.WriteString(RenderServiceSchemas(meta.Services))

	sb.WriteString(`<link rel="icon" href="/assets/favicon.svg" type="image/svg+xml">` + "\n")

	if nonce != "" {
		sb.WriteString(fmt.Sprintf(`<style nonce="%s">`+"\n", html.EscapeString(nonce)))
	} else {
		sb.WriteString("<style>\n")
	}
	sb.WriteString(RenderStyles())
	if customCSS != "" {
		sb.WriteString("\n")
		sb.WriteString(customCSS)
	}
	sb.WriteString("\n</style>\n")

	sb.WriteString("</head>\n")

	return sb.String()
}

func renderOpenGraph(meta PageMeta) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<meta property="og:type" content="%s">`+"\n", html.EscapeString(meta.OGType)))
	sb.WriteString(fmt.Sprintf(`<meta property="og:site_name" content="%s">`+"\n", ProviderName))

	if meta.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(meta.Title)))
	}
	if meta.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(meta.Description)))
	}
	if meta.Canonical != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(meta.Canonical)))
	}
	if meta.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:image" content="%s">`+"\n", html.EscapeString(meta.OGImage)))
	}
	if meta.Language != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:locale" content="%s">`+"\n", html.EscapeString(meta.Language)))
	}

	return sb.String()
}

func renderTwitterCard(meta PageMeta) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<meta name="twitter:card" content="%s">`+"\n", html.EscapeString(meta.TwitterCard)))

	if meta.TwitterSite != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:site" content="%s">`+"\n", html.EscapeString(meta.TwitterSite)))
	}
	if meta.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:title" content="%s">`+"\n", html.EscapeString(meta.Title)))
	}
	if meta.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:description" content="%s">`+"\n", html.EscapeString(meta.Description)))
	}
	if meta.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="twitter:image" content="%s">`+"\n", html.EscapeString(meta.OGImage)))
	}

	return sb.String()
}

func renderOrganization() string {
	return fmt.Sprintf(`<script type="application/ld+json">{"@context":"https://schema.org","@type":"Organization","name":%q,"url":%q,"logo":%q}</script>`+"\n",
		ProviderName, ProviderURL, ProviderLogo)
}

// Document is a full page ready to be rendered.
type Document struct {
	Meta    PageMeta
	Nonce   string
	CSS     string
	Scripts []string
	// BodyAttrs are raw attributes for the <body> tag; callers escape values.
	BodyAttrs string
	Body      string
}

// RenderDocument wraps content in a complete HTML document.
func RenderDocument(doc Document) string {
	var sb strings.Builder

	lang := doc.Meta.Language
	if lang == "" {
		lang = "en"
	}

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(fmt.Sprintf(`<html lang="%s">`+"\n", html.EscapeString(lang)))
	sb.WriteString(RenderHead(doc.Meta, doc.Nonce, doc.CSS))

	if doc.BodyAttrs != "" {
		sb.WriteString("<body " + doc.BodyAttrs + ">\n")
	} else {
		sb.WriteString("<body>\n")
	}
	sb.WriteString(doc.Body)
	for _, src := range doc.Scripts {
		sb.WriteString(fmt.Sprintf(`<script src="%s" defer></script>`+"\n", html.EscapeString(src)))
	}
	sb.WriteString("</body>\n</html>")

	return sb.String()
}
