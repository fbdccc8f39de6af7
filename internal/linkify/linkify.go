// Package linkify turns bare URLs in note text into anchors.
package linkify

import (
	"html/template"
	"regexp"
)

// Letters and digits are matched in any script so non-ASCII paths stay
// inside the link.
var urlPattern = regexp.MustCompile(`https?://[\p{L}\p{N}\p{Mn}_.?=&#%~/-]+`)

// Text wraps every URL match in an anchor. Text between matches is copied
// through untouched, including any markup it already contains.
func Text(text string) string {
	return urlPattern.ReplaceAllStringFunc(text, func(url string) string {
		return `<a href="` + url + `">` + url + `</a>`
	})
}

// HTML is Text typed for direct use in html/template. Note bodies are
// trusted, single user input.
func HTML(text string) template.HTML {
	return template.HTML(Text(text))
}
