package main

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/knightofkalki/portfolio/internal/content"
)

// Raw HTML in content is not rendered; goldmark omits it unless
// html.WithUnsafe is set.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
)

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

var templateFuncs = template.FuncMap{
	// markdown renders inline content, falling back to escaped text.
	"markdown": func(src string) template.HTML {
		out, err := renderMarkdown(src)
		if err != nil {
			return template.HTML(template.HTMLEscapeString(src))
		}
		return out
	},
	"caretClass": func(typing bool) string {
		if typing {
			return "caret animate-blink"
		}
		return "caret"
	},
	"join": strings.Join,
	// animated looks up an animated tagline; nil hides the widget.
	"animated": func(site *content.Content, slug string) *content.Animated {
		if a, ok := site.FindAnimated(slug); ok {
			return &a
		}
		return nil
	},
}
