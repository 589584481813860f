package components

import (
	"math"
	"strings"
	"testing"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name       string
		value, max float64
		want       float64
	}{
		{"in range", 30, 100, 30},
		{"over max", 150, 100, 100},
		{"negative", -5, 100, 0},
		{"zero", 0, 100, 0},
		{"at max", 100, 100, 100},
		{"custom max", 3, 4, 75},
		{"zero max defaults to 100", 42, 0, 42},
		{"negative max defaults to 100", 250, -1, 100},
		{"NaN value", math.NaN(), 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercent(tt.value, tt.max); got != tt.want {
				t.Errorf("ProgressPercent(%v, %v) = %v, want %v", tt.value, tt.max, got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	out := Progress(ProgressProps{Value: 150, Max: 100, Label: "Launch readiness", Class: "wide"})

	for _, want := range []string{
		`class="progress wide"`,
		`role="progressbar"`,
		`aria-valuenow="100"`,
		`aria-label="Launch readiness"`,
		`<rect width="100%" height="100%"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Progress output missing %q:\n%s", want, out)
		}
	}

	third := Progress(ProgressProps{Value: 1, Max: 3})
	if !strings.Contains(third, `aria-valuenow="33.33"`) {
		t.Errorf("expected rounded percentage: %s", third)
	}
	if strings.Contains(third, "style=") {
		t.Error("progress must not use inline styles")
	}

	labelled := Progress(ProgressProps{Value: 5, Label: "ignored", LabelledBy: "phase-1"})
	if !strings.Contains(labelled, `aria-labelledby="phase-1"`) || strings.Contains(labelled, "aria-label=") {
		t.Errorf("LabelledBy should replace aria-label: %s", labelled)
	}
}

func TestClassNames(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a", "", "b"}, "a b"},
		{[]string{"a b", "  c  "}, "a b c"},
		{[]string{"a b", "a"}, "b a"},
		{[]string{"x", "y", "x", "z"}, "y x z"},
	}
	for _, tt := range tests {
		if got := ClassNames(tt.in...); got != tt.want {
			t.Errorf("ClassNames(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	out := Label(LabelProps{
		For:      "email",
		Text:     "Email <required>",
		Class:    "bold",
		Disabled: true,
		Attrs: map[string]string{
			"aria-describedby": "email-help",
			"data-field":       "email",
			"onclick":          "alert(1)",
		},
	})

	want := `<label class="label bold" for="email" aria-disabled="true" aria-describedby="email-help" data-field="email">Email &lt;required&gt;</label>`
	if out != want {
		t.Errorf("Label =\n%s\nwant\n%s", out, want)
	}

	if got := Label(LabelProps{ID: "phase-1", Text: "Build"}); got != `<label class="label" id="phase-1">Build</label>` {
		t.Errorf("Label with ID = %s", got)
	}
}

func TestSeparator(t *testing.T) {
	if got, want := Separator(SeparatorProps{}), `<div role="separator" aria-orientation="horizontal" class="separator separator-horizontal"></div>`; got != want {
		t.Errorf("default separator = %s", got)
	}
	if got := Separator(SeparatorProps{Orientation: Vertical, Decorative: true}); !strings.Contains(got, `role="none"`) || !strings.Contains(got, "separator-vertical") {
		t.Errorf("decorative vertical separator = %s", got)
	}
	if got := Separator(SeparatorProps{Orientation: "diagonal"}); !strings.Contains(got, `aria-orientation="horizontal"`) {
		t.Errorf("unknown orientation should fall back to horizontal: %s", got)
	}
}

func TestSkeleton(t *testing.T) {
	got := Skeleton(SkeletonProps{Class: "skeleton-line"})
	want := `<div class="skeleton animate-pulse skeleton-line" aria-hidden="true"></div>`
	if got != want {
		t.Errorf("Skeleton = %s, want %s", got, want)
	}
}

func TestScrollArea(t *testing.T) {
	out := ScrollArea(ScrollAreaProps{Label: "Quotes", Content: "<p>x</p>"})
	for _, want := range []string{
		`class="scroll-area scroll-area-vertical"`,
		`data-orientation="vertical"`,
		`tabindex="0"`,
		`role="region" aria-label="Quotes"`,
		"<p>x</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ScrollArea missing %q:\n%s", want, out)
		}
	}

	h := ScrollArea(ScrollAreaProps{Orientation: Horizontal})
	if !strings.Contains(h, "scroll-area-horizontal") || strings.Contains(h, "role=") {
		t.Errorf("unlabelled horizontal scroll area = %s", h)
	}
}
