package render

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizerStrict = bluemonday.StrictPolicy()
var sanitizerUGC = bluemonday.UGCPolicy()

// SafeText strips all markup from user-entered text such as titles and
// comments.
func SafeText(s string) string {
	return sanitizerStrict.Sanitize(s)
}

// SafeMarkdown renders a post body from markdown to sanitized HTML.
func SafeMarkdown(md string) template.HTML {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	maybeUnsafeHTML := markdown.Render(doc, renderer)
	return template.HTML(sanitizerUGC.SanitizeBytes(maybeUnsafeHTML))
}
