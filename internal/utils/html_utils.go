package utils

import (
	"html"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripHTML reduces a rich-HTML post body to its plain text, for search
// matching and excerpt fallbacks.
func StripHTML(htmlStr string) string {
	if htmlStr == "" {
		return ""
	}
	text := stripPolicy.Sanitize(htmlStr)
	text = html.UnescapeString(text)
	return strings.TrimSpace(text)
}

// Truncate cuts plain text to max runes, appending an ellipsis when cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// EnhanceHTMLContent post-processes a post body for display: images get lazy
// loading plus a fallback, and external links open in a new tab.
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if htmlStr == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		s.SetAttr("loading", "lazy")
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("onerror", "this.onerror=null; this.src='/static/img/cover-fallback.svg'")
	})

	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			s.SetAttr("target", "_blank")
			s.SetAttr("rel", "noopener noreferrer")
		}
	})

	// goquery wraps fragments in html/body tags; return only the body content.
	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return template.HTML(out)
}
