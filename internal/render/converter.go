// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"strings"
	"unicode"

	"github.com/pdiddy/notes-export/pkg/types"
)

// NoteConverter renders one note. Its list and span state lives for the
// duration of a single Format call.
type NoteConverter struct {
	env      Env
	note     types.Note
	resolver *resolver

	listNumber uint
	listIndent uint
	span       SpanState
}

// New returns a converter for note. The note is read, never modified.
func New(env Env, note types.Note) *NoteConverter {
	return &NoteConverter{
		env:      env,
		note:     note,
		resolver: newResolver(env),
	}
}

// tableCellEscaper makes converted text safe inside a Markdown table cell.
var tableCellEscaper = strings.NewReplacer("\n", "<br>", "|", "&#124;")

// Format converts the note. With table set the output is escaped for use
// inside a table cell and the omit-first-line setting is ignored.
func (c *NoteConverter) Format(ctx context.Context, table bool) (string, error) {
	c.listNumber, c.listIndent, c.span = 0, 0, SpanNone

	fragments := Fragments(c.note)
	skipFirstLine := !table && c.env.Config.OmitFirstLine && strings.Contains(c.note.Text, "\n")

	var b strings.Builder
	for _, frag := range fragments {
		run := frag.Run

		if skipFirstLine {
			if !strings.Contains(frag.Text, "\n") && run.AttachmentInfo == nil {
				continue
			}
			skipFirstLine = false
		}

		var prefix string
		c.span, prefix = nextSpan(c.span, run)
		b.WriteString(prefix)

		var (
			out string
			err error
		)
		switch {
		case isBlank(frag.Text) || c.span == SpanMonospace:
			out = frag.Text
		case run.AttachmentInfo != nil:
			out, err = c.resolver.attachment(ctx, run.AttachmentInfo)
			if err == nil && frag.AtLineStart && run.AttachmentInfo.IsInline() {
				out = c.formatParagraph(run, out)
			}
		case needsHTML(run, c.span):
			out, err = c.formatHTMLAttr(ctx, frag)
		default:
			out, err = c.formatAttr(ctx, frag)
		}
		if err != nil {
			return "", err
		}
		b.WriteString(out)
	}

	if c.span != SpanNone {
		var closing string
		c.span, closing = nextSpan(c.span, &types.AttributeRun{})
		b.WriteString(closing)
	}

	converted := strings.TrimFunc(b.String(), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	if table {
		converted = tableCellEscaper.Replace(converted)
	}
	return converted, nil
}
