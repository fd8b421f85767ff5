package mapper

import (
	"strings"

	"golang.org/x/net/html"
)

var tagReplacements = map[string]string{
	"<b>":  "[B]",
	"</b>": "[/B]",
	"<i>":  "[I]",
	"</i>": "[/I]",
}

// CleanPlot converts TVmaze summary HTML to host markup.
// Bold and italic become [B]/[I], a paragraph break becomes [CR],
// every other tag is dropped. Text is copied as-is, entities included.
func CleanPlot(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	closedP := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return b.String()
		}
		raw := string(z.Raw())

		if closedP {
			closedP = false
			if raw == "<p>" {
				b.WriteString("[CR]")
				continue
			}
		}

		switch tt {
		case html.TextToken:
			b.WriteString(raw)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if repl, ok := tagReplacements[raw]; ok {
				b.WriteString(repl)
			} else if raw == "</p>" {
				closedP = true
			}
		}
	}
}
