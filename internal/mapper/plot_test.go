package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPlot(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"markup", "<b>x</b><i>y</i></p><p>z", "[B]x[/B][I]y[/I][CR]z"},
		{"paragraphs", "<p>One.</p><p>Two.</p>", "One.[CR]Two."},
		{"spaced paragraphs", "<p>One.</p> <p>Two.</p>", "One. Two."},
		{"other tags dropped", `<p>See <a href="x">this</a><br/>now</p>`, "See thisnow"},
		{"entities kept", "<p>Tom &amp; Jerry</p>", "Tom &amp; Jerry"},
		{"attributes not converted", `<b class="x">bold</b>`, "bold[/B]"},
		{"plain", "no tags", "no tags"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPlot(tt.in))
		})
	}
}
