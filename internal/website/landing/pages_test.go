package landing

import (
	"strings"
	"testing"

	"github.com/northbeam/website/internal/website/content"
)

func TestRenderHome(t *testing.T) {
	out := RenderHome(Layout{BaseURL: "https://northbeam.digital", Nonce: "n0nce", LivePath: "/"})

	for _, want := range []string{
		`<body data-live-path="/">`,
		`<script src="/assets/northbeam.js" defer></script>`,
		`<style nonce="n0nce">`,
		`<link rel="canonical" href="https://northbeam.digital/">`,
		`id="hero-title"`,
		`id="services-title"`,
		`id="work-title"`,
		`id="testimonials-title"`,
		`id="cta-title"`,
		`<main id="main-content">`,
		`<footer class="footer">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestLayout_WithoutLivePath(t *testing.T) {
	out := RenderNotFound(Layout{})
	if strings.Contains(out, "data-live-path") || strings.Contains(out, ClientScript) {
		t.Error("page without a live path must not load the client")
	}
	if !strings.Contains(out, `content="noindex, nofollow"`) {
		t.Error("404 page must not be indexed")
	}
}

func TestRenderServicePage(t *testing.T) {
	svc, ok := content.ServiceBySlug("seo-growth")
	if !ok {
		t.Fatal("seo-growth missing")
	}
	out := RenderServicePage(Layout{BaseURL: "https://northbeam.digital"}, svc)

	if !strings.Contains(out, `"url":"https://northbeam.digital/services/seo-growth"`) {
		t.Error("service JSON-LD missing")
	}
	if strings.Count(out, `"@type":"Service"`) != 1 {
		t.Error("expected exactly one Service block")
	}
	if !strings.Contains(out, "SEO &amp; growth") {
		t.Error("service title missing or unescaped")
	}
}
