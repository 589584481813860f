package website

import (
	"fmt"
	"sort"
	"strings"
)

// Color palette (WCAG 2.1 AA on the light background)
var Colors = map[string]string{
	// Backgrounds
	"bg":      "#FBFAF7", // Warm off-white - main background
	"bgAlt":   "#F1EEE7", // Cards, sections
	"bgHover": "#E7E2D8", // Hover states
	"bgInk":   "#14213D", // Dark bands (CTA, footer)

	// Text
	"text":      "#14213D", // Navy - primary text (14:1 on bg)
	"textMuted": "#3D4A63", // Secondary text (8:1 on bg)
	"textDim":   "#5B6478", // Captions (5.6:1 on bg)
	"textInk":   "#F8F7F3", // Text on dark bands

	// Brand colors
	"primary":   "#1F4FD8", // Northbeam blue (6:1 on bg)
	"secondary": "#0E7C66", // Teal
	"accent":    "#F2A541", // Amber highlights

	// Borders
	"border":      "#DDD7CB",
	"borderLight": "#ECE8E0",
}

// Typography uses system font stack for instant loading
var FontFamily = `system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif`

// FontSerif is used for headings and quotes.
var FontSerif = `'Iowan Old Style', 'Palatino Linotype', Palatino, Georgia, serif`

// StyleOption allows customizing the generated CSS
type StyleOption func(*styleConfig)

type styleConfig struct {
	customColors      map[string]string
	includeReset      bool
	includeAnimations bool
}

// WithCustomColors overrides default colors
func WithCustomColors(colors map[string]string) StyleOption {
	return func(cfg *styleConfig) {
		for k, v := range colors {
			cfg.customColors[k] = v
		}
	}
}

// WithReset includes a CSS reset
func WithReset(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeReset = include
	}
}

// WithAnimations includes animation definitions
func WithAnimations(include bool) StyleOption {
	return func(cfg *styleConfig) {
		cfg.includeAnimations = include
	}
}

// RenderStyles generates the site stylesheet.
func RenderStyles(opts ...StyleOption) string {
	cfg := &styleConfig{
		customColors:      make(map[string]string),
		includeReset:      true,
		includeAnimations: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Merge custom colors
	colors := make(map[string]string)
	for k, v := range Colors {
		colors[k] = v
	}
	for k, v := range cfg.customColors {
		colors[k] = v
	}

	var sb strings.Builder

	if cfg.includeReset {
		sb.WriteString(cssReset())
	}
	sb.WriteString(cssVariables(colors))
	sb.WriteString(cssBase())
	sb.WriteString(cssTypography())
	sb.WriteString(cssLayout())
	sb.WriteString(cssComponents())
	sb.WriteString(cssButtons())
	sb.WriteString(cssCards())
	sb.WriteString(cssKit())
	if cfg.includeAnimations {
		sb.WriteString(cssAnimations())
	}
	sb.WriteString(cssAccessibility())
	sb.WriteString(cssResponsive())

	return sb.String()
}

func cssReset() string {
	return `
*,*::before,*::after{box-sizing:border-box;margin:0;padding:0}
html{-webkit-text-size-adjust:100%;-moz-tab-size:4;tab-size:4;scroll-behavior:smooth}
body{line-height:1.6;-webkit-font-smoothing:antialiased;-moz-osx-font-smoothing:grayscale}
img,picture,video,canvas,svg{display:block;max-width:100%}
input,button,textarea,select{font:inherit}
p,h1,h2,h3,h4,h5,h6{overflow-wrap:break-word}
a{color:inherit;text-decoration:none}
ul,ol{list-style:none}
`
}

func cssVariables(colors map[string]string) string {
	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]string, 0, len(names))
	for _, name := range names {
		vars = append(vars, fmt.Sprintf("--color-%s:%s", name, colors[name]))
	}
	return fmt.Sprintf(`:root{%s;--font-sans:%s;--font-serif:%s}`, strings.Join(vars, ";"), FontFamily, FontSerif)
}

func cssBase() string {
	return `
body{font-family:var(--font-sans);background:var(--color-bg);color:var(--color-text);min-height:100vh}
::selection{background:var(--color-accent);color:var(--color-text)}
`
}

func cssTypography() string {
	return `
h1{font-family:var(--font-serif);font-size:clamp(2.25rem,5vw,4.25rem);font-weight:700;letter-spacing:-0.02em;line-height:1.05}
h2{font-family:var(--font-serif);font-size:clamp(1.6rem,3vw,2.4rem);font-weight:700;line-height:1.15}
h3{font-size:1.125rem;font-weight:600;line-height:1.3}
p{color:var(--color-textMuted)}
.eyebrow{font-size:0.75rem;font-weight:700;letter-spacing:0.12em;text-transform:uppercase;color:var(--color-secondary)}
.text-accent{color:var(--color-primary)}
`
}

func cssLayout() string {
	// Mobile-first: base styles for mobile (320px+)
	return `
.container{width:100%;max-width:1200px;margin:0 auto;padding:0 1rem}
.section{padding:3rem 0}
.section-head{max-width:640px;margin:0 auto 2rem;text-align:center}
.section-head p{margin-top:0.75rem}
.grid{display:grid;gap:1.25rem}
.grid-2,.grid-3{grid-template-columns:1fr}
.text-center{text-align:center}
`
}

func cssComponents() string {
	return `
.nav{position:sticky;top:0;z-index:100;padding:0.75rem 0;background:rgba(251,250,247,0.96);backdrop-filter:blur(10px);border-bottom:1px solid var(--color-border)}
.nav-inner{display:flex;align-items:center;justify-content:space-between;gap:0.5rem}
.nav-links{display:none;align-items:center;gap:1.25rem}
.nav-links a{color:var(--color-textMuted);font-weight:500}
.nav-links a:hover,.nav-links a[aria-current="page"]{color:var(--color-primary)}
.logo{font-family:var(--font-serif);font-size:1.25rem;font-weight:700}
.hero{padding:4rem 0 3rem;text-align:center}
.hero-title{margin:0.75rem auto 1rem;max-width:900px}
.hero-subtitle{font-size:1.05rem;max-width:620px;margin:0 auto 1.75rem}
.hero-actions{display:flex;gap:0.75rem;justify-content:center;flex-direction:column}
.cta{background:var(--color-bgInk);color:var(--color-textInk);border-radius:1.25rem;padding:2.5rem 1.5rem;text-align:center}
.cta p{color:var(--color-textInk);opacity:0.85;margin:0.75rem auto 1.5rem;max-width:540px}
.footer{background:var(--color-bgInk);color:var(--color-textInk);padding:3rem 0 2rem;margin-top:4rem}
.footer a{color:var(--color-textInk);opacity:0.85}
.footer a:hover{opacity:1}
.footer-grid{display:grid;gap:2rem;grid-template-columns:1fr}
.footer-links{display:flex;flex-direction:column;gap:0.5rem}
.footer-bottom{margin-top:2rem;font-size:0.85rem;opacity:0.75}
`
}

func cssButtons() string {
	// 44px minimum tap target (2.75rem)
	return `
.btn{display:inline-flex;align-items:center;justify-content:center;gap:0.5rem;padding:0.75rem 1.4rem;font-size:1rem;font-weight:600;border-radius:999px;border:1px solid transparent;cursor:pointer;transition:all 0.2s ease;min-height:2.75rem}
.btn:focus-visible{outline:2px solid var(--color-primary);outline-offset:2px}
.btn-primary{background:var(--color-primary);color:#FFFFFF}
.btn-primary:hover{background:#173DAA;transform:translateY(-1px)}
.btn-secondary{background:transparent;color:var(--color-text);border-color:var(--color-border)}
.btn-secondary:hover{background:var(--color-bgAlt)}
.btn-accent{background:var(--color-accent);color:var(--color-text)}
`
}

func cssCards() string {
	return `
.card{background:#FFFFFF;border-radius:1rem;border:1px solid var(--color-border);padding:1.5rem;transition:border-color 0.2s ease,transform 0.2s ease}
.card:hover{border-color:var(--color-primary);transform:translateY(-3px)}
.feature-icon,.service-icon{font-size:1.75rem;margin-bottom:0.75rem}
.feature-title,.service-title{margin-bottom:0.5rem}
.feature-desc,.service-summary{font-size:0.95rem}
.service-rule{margin-top:1rem}
.service-highlights{margin-top:1rem;display:flex;flex-direction:column;gap:0.35rem;font-size:0.875rem;color:var(--color-textDim)}
.service-highlights li::before{content:"\2014\00a0";color:var(--color-secondary)}
.testimonial{display:flex;flex-direction:column;gap:1rem;min-width:280px;scroll-snap-align:start}
.testimonial blockquote{font-family:var(--font-serif);font-size:1.1rem;line-height:1.5;color:var(--color-text)}
.testimonial figcaption{font-size:0.875rem;color:var(--color-textDim)}
.testimonial-author{font-weight:600;color:var(--color-text)}
`
}

// cssKit styles the UI primitives in the components package.
func cssKit() string {
	return `
.label{font-size:0.875rem;font-weight:500;line-height:1;color:var(--color-text)}
.label[aria-disabled="true"]{cursor:not-allowed;opacity:0.7}
.separator{flex-shrink:0;background:var(--color-border)}
.separator-horizontal{height:1px;width:100%}
.separator-vertical{height:100%;width:1px}
.progress{position:relative;height:0.5rem;width:100%;overflow:hidden;border-radius:999px;background:var(--color-bgAlt)}
.progress-indicator{display:block;width:100%;height:100%}
.progress-indicator rect{fill:var(--color-primary)}
.phases{margin-top:2rem;display:grid;gap:1rem}
.phase{display:grid;gap:0.5rem}
.skeleton{border-radius:0.5rem;background:var(--color-bgHover)}
.skeleton-line{height:0.875rem;width:100%;margin-bottom:0.5rem}
.skeleton-title{height:1.5rem;width:60%;margin-bottom:1rem}
.skeleton-avatar{height:2.75rem;width:2.75rem;border-radius:999px}
.skeleton-card{height:12rem;width:100%}
.scroll-area{position:relative;overflow:hidden}
.scroll-area-viewport{height:100%;width:100%;border-radius:inherit;overflow:auto;scroll-snap-type:x proximity;scrollbar-width:thin;scrollbar-color:var(--color-border) transparent}
.scroll-area-vertical .scroll-area-viewport{overflow-x:hidden}
.scroll-area-horizontal .scroll-area-viewport{overflow-y:hidden}
.scroll-area-row{display:flex;gap:1.25rem;padding-bottom:0.75rem}
`
}

func cssAnimations() string {
	return `
@keyframes pulse{0%,100%{opacity:1}50%{opacity:0.5}}
@keyframes fadeIn{from{opacity:0;transform:translateY(12px)}to{opacity:1;transform:translateY(0)}}
.animate-pulse{animation:pulse 2s cubic-bezier(0.4,0,0.6,1) infinite}
.animate-fade-in{animation:fadeIn 0.5s ease forwards}
@media(prefers-reduced-motion:reduce){*{animation-duration:0.01ms!important;animation-iteration-count:1!important;transition-duration:0.01ms!important}}
`
}

func cssAccessibility() string {
	return `
.sr-only{position:absolute;width:1px;height:1px;padding:0;margin:-1px;overflow:hidden;clip:rect(0,0,0,0);white-space:nowrap;border:0}
.skip-link{position:absolute;top:-40px;left:0;background:var(--color-primary);color:#FFFFFF;padding:0.5rem 1rem;z-index:1000;transition:top 0.3s;font-weight:600}
.skip-link:focus{top:0}
:focus-visible{outline:2px solid var(--color-primary);outline-offset:2px}
`
}

func cssResponsive() string {
	// Mobile-first: breakpoints use min-width
	return `
@media(min-width:640px){
.nav-links{display:flex}
.hero-actions{flex-direction:row}
.container{padding:0 1.5rem}
}
@media(min-width:768px){
.grid-2{grid-template-columns:repeat(2,1fr)}
.footer-grid{grid-template-columns:2fr 1fr 1fr}
.section{padding:5rem 0}
.hero{padding:6rem 0 4rem}
.hero-subtitle{font-size:1.2rem}
.cta{padding:4rem 3rem}
}
@media(min-width:1024px){
.grid-3{grid-template-columns:repeat(3,1fr)}
.hero{padding:8rem 0 5rem}
}
`
}
