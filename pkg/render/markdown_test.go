package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "emphasis and lists",
			input:    "**Baldur's Gate 3** leads:\n\n- rating 96\n- 743 hours",
			contains: []string{"<strong>Baldur", "<li>rating 96</li>", "<li>743 hours</li>"},
		},
		{
			name:     "raw html is skipped",
			input:    "hello <script>alert(1)</script> world",
			contains: []string{"hello"},
			excludes: []string{"<script>"},
		},
		{
			name:     "unsafe links are not rendered as links",
			input:    "[click](javascript:alert(1))",
			excludes: []string{`href="javascript:`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTML(tt.input)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, got, s)
			}
		})
	}
}
