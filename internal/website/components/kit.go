package components

import (
	"fmt"
	"html"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ClassNames merges class lists. Empty entries are dropped and a class that
// appears more than once keeps its last position.
func ClassNames(classes ...string) string {
	var all []string
	for _, c := range classes {
		all = append(all, strings.Fields(c)...)
	}

	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if seen[all[i]] {
			continue
		}
		seen[all[i]] = true
		out = append(out, all[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return strings.Join(out, " ")
}

// passthroughAttrs renders aria-* and data-* attributes in key order.
// Other keys are ignored.
func passthroughAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if strings.HasPrefix(k, "aria-") || strings.HasPrefix(k, "data-") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf(` %s="%s"`, html.EscapeString(k), html.EscapeString(attrs[k])))
	}
	return sb.String()
}

// Orientation is the axis of a separator or scroll area.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

func (o Orientation) orDefault(def Orientation) Orientation {
	if o == Horizontal || o == Vertical {
		return o
	}
	return def
}

// LabelProps configures Label.
type LabelProps struct {
	ID       string
	For      string
	Text     string
	Class    string
	Disabled bool
	Attrs    map[string]string
}

// Label renders a form label.
func Label(p LabelProps) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<label class="%s"`, html.EscapeString(ClassNames("label", p.Class))))
	if p.ID != "" {
		sb.WriteString(fmt.Sprintf(` id="%s"`, html.EscapeString(p.ID)))
	}
	if p.For != "" {
		sb.WriteString(fmt.Sprintf(` for="%s"`, html.EscapeString(p.For)))
	}
	if p.Disabled {
		sb.WriteString(` aria-disabled="true"`)
	}
	sb.WriteString(passthroughAttrs(p.Attrs))
	sb.WriteString(">")
	sb.WriteString(html.EscapeString(p.Text))
	sb.WriteString("</label>")

	return sb.String()
}

// SeparatorProps configures Separator.
type SeparatorProps struct {
	Orientation Orientation // default horizontal
	// Decorative separators are hidden from assistive technology.
	Decorative bool
	Class      string
}

// Separator renders a visual or semantic divider.
func Separator(p SeparatorProps) string {
	o := p.Orientation.orDefault(Horizontal)
	class := html.EscapeString(ClassNames("separator", "separator-"+string(o), p.Class))

	if p.Decorative {
		return fmt.Sprintf(`<div role="none" class="%s"></div>`, class)
	}
	return fmt.Sprintf(`<div role="separator" aria-orientation="%s" class="%s"></div>`, o, class)
}

// ProgressProps configures Progress.
type ProgressProps struct {
	Value float64
	Max   float64 // default 100
	Label string
	// LabelledBy names the element that labels the bar, e.g. a Label's ID.
	// It takes precedence over Label.
	LabelledBy string
	Class      string
}

// ProgressPercent converts value to a percentage of max, clamped to [0, 100].
// A max of zero or less is treated as 100.
func ProgressPercent(value, max float64) float64 {
	if max <= 0 || math.IsNaN(max) {
		max = 100
	}
	switch {
	case math.IsNaN(value), value < 0:
		return 0
	case value > max:
		return 100
	}
	return value / max * 100
}

func formatPercent(pct float64) string {
	return strconv.FormatFloat(math.Round(pct*100)/100, 'f', -1, 64)
}

// Progress renders a progress bar. The fill is an SVG rect sized by
// attribute so the page needs no inline style.
func Progress(p ProgressProps) string {
	pct := formatPercent(ProgressPercent(p.Value, p.Max))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="%s" role="progressbar" aria-valuemin="0" aria-valuemax="100" aria-valuenow="%s"`,
		html.EscapeString(ClassNames("progress", p.Class)), pct))
	switch {
	case p.LabelledBy != "":
		sb.WriteString(fmt.Sprintf(` aria-labelledby="%s"`, html.EscapeString(p.LabelledBy)))
	case p.Label != "":
		sb.WriteString(fmt.Sprintf(` aria-label="%s"`, html.EscapeString(p.Label)))
	}
	sb.WriteString(">")
	sb.WriteString(fmt.Sprintf(`<svg class="progress-indicator" aria-hidden="true"><rect width="%s%%" height="100%%"/></svg>`, pct))
	sb.WriteString("</div>")

	return sb.String()
}

// SkeletonProps configures Skeleton. Size comes from Class, e.g.
// "skeleton-line" or "skeleton-avatar".
type SkeletonProps struct {
	Class string
}

// Skeleton renders an animated loading placeholder.
func Skeleton(p SkeletonProps) string {
	return fmt.Sprintf(`<div class="%s" aria-hidden="true"></div>`,
		html.EscapeString(ClassNames("skeleton", "animate-pulse", p.Class)))
}

// ScrollAreaProps configures ScrollArea.
type ScrollAreaProps struct {
	Orientation Orientation // default vertical
	Label       string
	Class       string
	// Content is trusted HTML.
	Content string
}

// ScrollArea wraps content in a keyboard-focusable scroll viewport.
func ScrollArea(p ScrollAreaProps) string {
	o := p.Orientation.orDefault(Vertical)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<div class="%s" data-orientation="%s">`,
		html.EscapeString(ClassNames("scroll-area", "scroll-area-"+string(o), p.Class)), o))
	sb.WriteString(`<div class="scroll-area-viewport" tabindex="0"`)
	if p.Label != "" {
		sb.WriteString(fmt.Sprintf(` role="region" aria-label="%s"`, html.EscapeString(p.Label)))
	}
	sb.WriteString(">")
	sb.WriteString(p.Content)
	sb.WriteString("</div></div>")

	return sb.String()
}
