// Package textclean normalizes MyBible verse markup.
package textclean

import (
	"strings"

	"golang.org/x/net/html"
)

var basicReplacer = strings.NewReplacer(
	"<pb/>", "",
	"<br/>", " ",
)

// Clean removes paragraph breaks and turns line breaks into spaces.
// Any other markup is left as is.
func Clean(text string) string {
	return strings.TrimSpace(basicReplacer.Replace(text))
}

// hiddenTags hold content that is not part of the reading text:
// footnotes, Strong's numbers, morphology and notes.
var hiddenTags = map[string]bool{
	"f": true,
	"s": true,
	"m": true,
	"n": true,
}

// breakTags separate words when removed.
var breakTags = map[string]bool{
	"br": true,
	"pb": true,
	"p":  true,
}

// StripMarkup drops every tag, the content of hidden tags, and unescapes
// entities. Runs of whitespace collapse to a single space.
func StripMarkup(text string) string {
	z := html.NewTokenizer(strings.NewReader(text))
	var b strings.Builder
	depth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if depth == 0 {
				b.WriteString(z.Token().Data)
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if hiddenTags[tag] {
				depth++
			} else if breakTags[tag] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if hiddenTags[tag] && depth > 0 {
				depth--
			} else if breakTags[tag] {
				b.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			if breakTags[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

// Cleaner returns the cleanup function for a job.
func Cleaner(stripMarkup bool) func(string) string {
	if stripMarkup {
		return func(text string) string {
			return StripMarkup(Clean(text))
		}
	}
	return Clean
}
