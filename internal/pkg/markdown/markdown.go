package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
	),
)

var (
	scriptTagPattern = regexp.MustCompile(`(?is)<script[\s\S]*?>[\s\S]*?</script>`)
	onAttrDQPattern  = regexp.MustCompile(`(?i)\son\w+="[^"]*"`)
	onAttrSQPattern  = regexp.MustCompile(`(?i)\son\w+='[^']*'`)
)

// Render converts note text to HTML.
func Render(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := engine.Convert([]byte(trimmed), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// SanitizeHTML strips script tags and inline event handlers from
// caller-supplied HTML.
func SanitizeHTML(input string) string {
	out := scriptTagPattern.ReplaceAllString(input, "")
	out = onAttrDQPattern.ReplaceAllString(out, "")
	out = onAttrSQPattern.ReplaceAllString(out, "")
	return out
}
