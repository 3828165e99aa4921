// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// markdown renders converted notes to HTML. Notes carry inline HTML for
// spans, underline and alignment, so raw HTML passes through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
		gmhtml.WithXHTML(),
		gmhtml.WithUnsafe(),
	),
)

// toHTML wraps the rendered body of a converted note in a standalone
// HTML5 document.
func toHTML(title, body string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return fmt.Sprintf(htmlTemplate, html.EscapeString(title), buf.String()), nil
}
