// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"html"
	"strconv"
	"strings"

	"github.com/pdiddy/notes-export/pkg/types"
)

// defaultEmojiFont is set on emoji runs and is not worth carrying over.
const defaultEmojiFont = ".AppleColorEmojiUI"

// pointSizeCorrections maps stored heading point sizes to the sizes the
// notes app actually displays.
var pointSizeCorrections = map[float64]float64{
	24: 18,
	18: 14,
}

// needsHTML reports whether the run uses a feature Markdown cannot express.
func needsHTML(run *types.AttributeRun, state SpanState) bool {
	return run.Superscript == types.BaselineSuper ||
		run.Superscript == types.BaselineSub ||
		run.Underlined ||
		run.Color != nil ||
		run.Font != nil ||
		state == SpanAlignment
}

// formatHTMLAttr renders a fragment with HTML tags. Markdown emphasis
// inside inline HTML is unreliable, so this path never mixes the two.
func (c *NoteConverter) formatHTMLAttr(ctx context.Context, frag Fragment) (string, error) {
	run := frag.Run
	text := frag.Text

	if run.Strikethrough != 0 {
		text = "<s>" + text + "</s>"
	}
	if run.Underlined {
		text = "<u>" + text + "</u>"
	}

	switch run.Superscript {
	case types.BaselineSuper:
		text = "<sup>" + text + "</sup>"
	case types.BaselineSub:
		text = "<sub>" + text + "</sub>"
	}

	text = htmlWeight(run.FontWeight, text)
	style := inlineStyle(run)

	if run.Link != "" && !isInternalLink(run.Link) {
		attr := ""
		if style != "" {
			attr = ` style="` + style + `"`
		}
		text = `<a href="` + html.EscapeString(run.Link) + `" rel="noopener" class="external-link" target="_blank"` + attr + `>` + text + `</a>`
	} else {
		if run.Link != "" {
			var err error
			if text, err = c.resolver.internalLink(ctx, run.Link, text); err != nil {
				return "", err
			}
		}
		if style != "" {
			text = `<span style="` + style + `">` + text + `</span>`
		}
	}

	if frag.AtLineStart {
		return c.formatParagraph(run, text), nil
	}
	return text, nil
}

// formatAttr renders a fragment with Markdown emphasis, or with the
// equivalent HTML tags when the converter is configured for HTML.
func (c *NoteConverter) formatAttr(ctx context.Context, frag Fragment) (string, error) {
	run := frag.Run
	text := frag.Text

	if c.env.Config.HTML {
		text = htmlWeight(run.FontWeight, text)
	} else {
		text = markdownWeight(run.FontWeight, text)
	}

	if run.Strikethrough != 0 {
		if c.env.Config.HTML {
			text = "<s>" + text + "</s>"
		} else {
			text = "~~" + text + "~~"
		}
	}

	if run.Link != "" && run.Link != frag.Text {
		if isInternalLink(run.Link) {
			var err error
			if text, err = c.resolver.internalLink(ctx, run.Link, text); err != nil {
				return "", err
			}
		} else {
			text = "[" + text + "](" + run.Link + ")"
		}
	}

	if frag.AtLineStart {
		return c.formatParagraph(run, text), nil
	}
	return text, nil
}

func markdownWeight(w types.FontWeight, text string) string {
	switch w {
	case types.WeightBold:
		return "**" + text + "**"
	case types.WeightItalic:
		return "*" + text + "*"
	case types.WeightBoldItalic:
		return "***" + text + "***"
	}
	return text
}

func htmlWeight(w types.FontWeight, text string) string {
	switch w {
	case types.WeightBold:
		return "<b>" + text + "</b>"
	case types.WeightItalic:
		return "<i>" + text + "</i>"
	case types.WeightBoldItalic:
		return "<b><i>" + text + "</i></b>"
	}
	return text
}

// inlineStyle collects the CSS declarations for a run's font and color.
func inlineStyle(run *types.AttributeRun) string {
	var b strings.Builder

	if f := run.Font; f != nil {
		if f.FontName != "" && f.FontName != defaultEmojiFont {
			b.WriteString("font-family:" + f.FontName + ";")
		}
		if f.PointSize > 0 {
			size := f.PointSize
			if corrected, ok := pointSizeCorrections[size]; ok {
				size = corrected
			}
			b.WriteString("font-size:" + strconv.FormatFloat(size, 'f', -1, 64) + "pt;")
		}
	}

	if run.Color != nil {
		b.WriteString("color:" + convertColor(*run.Color) + ";")
	}

	return b.String()
}
