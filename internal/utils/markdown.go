package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	ugcPolicy = bluemonday.UGCPolicy()
)

func init() {
	ugcPolicy.AllowImages()
	ugcPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	ugcPolicy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts author markdown to sanitized HTML. Used for the
// compose form's live preview; the API stores whatever HTML we send it, so
// everything passes through the UGC policy first.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	sanitized := ugcPolicy.SanitizeBytes(buf.Bytes())
	return EnhanceHTMLContent(string(sanitized))
}

// SanitizeHTML cleans a rich-HTML body fetched from the API before rendering.
func SanitizeHTML(source string) template.HTML {
	return EnhanceHTMLContent(ugcPolicy.Sanitize(source))
}
