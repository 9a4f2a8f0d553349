// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package caption

import (
	"strings"
	"testing"
)

func TestFindDirectImageReference(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		filename string
		want     string
	}{
		{
			name:     "caption inside brackets",
			markdown: "Intro text\n\n![Caption X](images/img1.png)\n\nMore text",
			filename: "img1.png",
			want:     "Caption X",
		},
		{
			name:     "path prefix around filename",
			markdown: "![System overview](/tmp/session_1/figures/img1.png)",
			filename: "img1.png",
			want:     "System overview",
		},
		{
			name:     "caption is trimmed",
			markdown: "![  Spaced caption  ](img1.png)",
			filename: "img1.png",
			want:     "Spaced caption",
		},
		{
			name:     "first of several references wins",
			markdown: "![First](a/img1.png)\n![Second](b/img1.png)",
			filename: "img1.png",
			want:     "First",
		},
		{
			name:     "regex metacharacters in filename",
			markdown: "![Parenthetical](figs/img(1).png)",
			filename: "img(1).png",
			want:     "Parenthetical",
		},
		{
			name:     "metacharacter filename without parens",
			markdown: "![Dotted](figs/img+1.png)",
			filename: "img+1.png",
			want:     "Dotted",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(tt.markdown, tt.filename); got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindFigureLabel(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		filename string
		want     string
	}{
		{
			name: "label below image mention",
			markdown: strings.Join([]string{
				"body text",
				"![](img2.png)",
				"",
				"Figure 3: Result overview",
			}, "\n"),
			filename: "img2.png",
			want:     "Result overview",
		},
		{
			name: "label on fifth line below still found",
			markdown: strings.Join([]string{
				"![](img2.png)",
				"", "", "", "",
				"Figure 1: Edge of the window",
			}, "\n"),
			filename: "img2.png",
			want:     "Edge of the window",
		},
		{
			name: "label on sixth line below is out of range",
			markdown: strings.Join([]string{
				"![](img2.png)",
				"", "", "", "", "",
				"Figure 1: Too far away",
			}, "\n"),
			filename: "img2.png",
			want:     "",
		},
		{
			name: "label above image mention",
			markdown: strings.Join([]string{
				"Figure 7. Pipeline stages",
				"",
				"![](img2.png)",
			}, "\n"),
			filename: "img2.png",
			want:     "Pipeline stages",
		},
		{
			name: "label four lines above is out of range",
			markdown: strings.Join([]string{
				"Figure 7. Too far above",
				"", "", "",
				"![](img2.png)",
			}, "\n"),
			filename: "img2.png",
			want:     "",
		},
		{
			name: "downward label preferred over upward",
			markdown: strings.Join([]string{
				"Figure 1: Above",
				"![](img2.png)",
				"Figure 2: Below",
			}, "\n"),
			filename: "img2.png",
			want:     "Below",
		},
		{
			name: "abbreviated label with period",
			markdown: strings.Join([]string{
				"![](img2.png)",
				"Fig. 4. Attention heads per layer",
			}, "\n"),
			filename: "img2.png",
			want:     "Attention heads per layer",
		},
		{
			name: "case insensitive label",
			markdown: strings.Join([]string{
				"![](img2.png)",
				"FIGURE 12: Throughput under load",
			}, "\n"),
			filename: "img2.png",
			want:     "Throughput under load",
		},
		{
			name: "bare label without text is skipped",
			markdown: strings.Join([]string{
				"![](img2.png)",
				"Figure 3:",
				"Figure 4: The one with text",
			}, "\n"),
			filename: "img2.png",
			want:     "The one with text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(tt.markdown, tt.filename); got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindAdjacentProse(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		filename string
		want     string
	}{
		{
			name: "descriptive line below mention",
			markdown: strings.Join([]string{
				"![](img3.png)",
				"",
				"The measured latency distribution across runs.",
			}, "\n"),
			filename: "img3.png",
			want:     "The measured latency distribution across runs.",
		},
		{
			name: "short lines are skipped",
			markdown: strings.Join([]string{
				"![](img3.png)",
				"short one",
				"A sufficiently descriptive line here.",
			}, "\n"),
			filename: "img3.png",
			want:     "A sufficiently descriptive line here.",
		},
		{
			name: "numeric and markup lines are skipped",
			markdown: strings.Join([]string{
				"![](img3.png)",
				"42",
				"---",
				"Distribution of page-level error rates.",
			}, "\n"),
			filename: "img3.png",
			want:     "Distribution of page-level error rates.",
		},
		{
			name: "image reference lines are skipped",
			markdown: strings.Join([]string{
				"![](img3.png)",
				"![](img4.png)",
				"Comparison of both extraction passes.",
			}, "\n"),
			filename: "img3.png",
			want:     "Comparison of both extraction passes.",
		},
		{
			name: "prose beyond three lines is out of range",
			markdown: strings.Join([]string{
				"![](img3.png)",
				"", "", "",
				"This descriptive line arrives too late.",
			}, "\n"),
			filename: "img3.png",
			want:     "",
		},
		{
			name: "exactly ten characters is too short",
			markdown: strings.Join([]string{
				"![](img3.png)",
				"1234567890",
			}, "\n"),
			filename: "img3.png",
			want:     "",
		},
		{
			name: "eleven characters qualifies",
			markdown: strings.Join([]string{
				"![](img3.png)",
				"12345678901",
			}, "\n"),
			filename: "img3.png",
			want:     "12345678901",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(tt.markdown, tt.filename); got != tt.want {
				t.Errorf("Find() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindNoMatch(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		filename string
	}{
		{"empty markdown", "", "img1.png"},
		{"empty filename", "some text", ""},
		{"filename absent", "Figure 1: Unrelated caption\nplain text", "img9.png"},
		{"mention with nothing nearby", "![](img9.png)", "img9.png"},
		{
			"adversarial markdown",
			"![[[](((\n]]])))![](img9.png\n((((",
			"img9.png",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Find(tt.markdown, tt.filename); got != "" {
				t.Errorf("Find() = %q, want empty", got)
			}
		})
	}
}

func TestFindRulePriority(t *testing.T) {
	// A direct reference beats a figure label, which beats adjacent prose.
	markdown := strings.Join([]string{
		"![Direct caption](img1.png)",
		"Figure 1: Label caption",
		"A plain descriptive prose line.",
	}, "\n")

	if got := Find(markdown, "img1.png"); got != "Direct caption" {
		t.Errorf("Find() = %q, want %q", got, "Direct caption")
	}

	// With the direct caption blank, the label takes over.
	markdown = strings.Join([]string{
		"![](img1.png)",
		"Figure 1: Label caption",
		"A plain descriptive prose line.",
	}, "\n")

	if got := Find(markdown, "img1.png"); got != "Label caption" {
		t.Errorf("Find() = %q, want %q", got, "Label caption")
	}
}

func TestFindIsDeterministic(t *testing.T) {
	markdown := "![](img2.png)\nFigure 2: Stable output"
	first := Find(markdown, "img2.png")
	second := Find(markdown, "img2.png")
	if first != second {
		t.Errorf("Find() not deterministic: %q then %q", first, second)
	}
	if first != "Stable output" {
		t.Errorf("Find() = %q, want %q", first, "Stable output")
	}
}
