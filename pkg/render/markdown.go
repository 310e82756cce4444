// Package render converts chat text to HTML for the browser.
package render

import "github.com/russross/blackfriday"

const (
	htmlFlags = blackfriday.HTML_USE_XHTML |
		blackfriday.HTML_SKIP_HTML |
		blackfriday.HTML_SAFELINK |
		blackfriday.HTML_HREF_TARGET_BLANK

	extensions = blackfriday.EXTENSION_NO_INTRA_EMPHASIS |
		blackfriday.EXTENSION_TABLES |
		blackfriday.EXTENSION_FENCED_CODE |
		blackfriday.EXTENSION_AUTOLINK |
		blackfriday.EXTENSION_STRIKETHROUGH
)

// HTML renders markdown text. Raw HTML in the input is dropped.
func HTML(text string) string {
	renderer := blackfriday.HtmlRenderer(htmlFlags, "", "")
	return string(blackfriday.Markdown([]byte(text), renderer, extensions))
}
