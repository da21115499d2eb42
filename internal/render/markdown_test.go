package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantNot string
	}{
		{
			name:   "emphasis",
			source: "a **great** book",
			want:   "<strong>great</strong>",
		},
		{
			name:   "autolinked url",
			source: "see https://example.com/review",
			want:   `href="https://example.com/review"`,
		},
		{
			name:   "strikethrough extension",
			source: "~~terrible~~ decent",
			want:   "<del>terrible</del>",
		},
		{
			name:    "script tags are stripped",
			source:  `hello <script>alert("x")</script>`,
			wantNot: "<script>",
		},
		{
			name:    "javascript urls are stripped",
			source:  `[click](javascript:alert(1))`,
			wantNot: "javascript:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(tt.source)
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("Markdown(%q) = %q, want it to contain %q", tt.source, got, tt.want)
			}
			if tt.wantNot != "" && strings.Contains(got, tt.wantNot) {
				t.Errorf("Markdown(%q) = %q, must not contain %q", tt.source, got, tt.wantNot)
			}
		})
	}
}

func TestMarkdown_ExternalLinksHardened(t *testing.T) {
	got := Markdown("[review](https://example.com/review)")

	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("Markdown() = %q, want target=_blank on external links", got)
	}
	if !strings.Contains(got, "noreferrer") {
		t.Errorf("Markdown() = %q, want rel=noreferrer on links", got)
	}
}
