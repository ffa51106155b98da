package view

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/portfolio/internal/catalog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	descriptionSanitizer = bluemonday.UGCPolicy()
	inlineSanitizer      = buildInlineSanitizer()
)

// buildInlineSanitizer allows the emphasis tags used in biography paragraphs and nothing else.
func buildInlineSanitizer() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("strong", "em", "b", "i", "br")
	return policy
}

// InlineHTML keeps inline emphasis markup of a paragraph and strips everything else.
func InlineHTML(raw string) template.HTML {
	return template.HTML(inlineSanitizer.Sanitize(raw))
}

// Markdown renders a description as sanitized HTML. Falls back to escaped text when rendering fails.
func Markdown(raw string) template.HTML {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(trimmed), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(trimmed))
	}
	return template.HTML(descriptionSanitizer.SanitizeBytes(buf.Bytes()))
}

// FuncMap exposes the helpers to html templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"inlineHTML":   InlineHTML,
		"markdown":     Markdown,
		"displayURL":   DisplayURL,
		"projectImage": catalog.ProjectImage,
		"circularText": CircularText,
		"toJSON":       toJSON,
	}
}

func toJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
