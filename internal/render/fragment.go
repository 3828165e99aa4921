// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pdiddy/notes-export/pkg/types"
)

// Fragment is a renderable piece of note text together with the run that
// formats it. Run points into the source note and must not be modified.
type Fragment struct {
	Run  *types.AttributeRun
	Text string

	// AtLineStart is true for the first fragment and for every fragment
	// that follows one containing a newline.
	AtLineStart bool
}

// Fragments merges adjacent runs whose attributes are equal apart from
// their length, then splits each merged span at leading and trailing
// whitespace and at whitespace containing a newline. Concatenating the
// Text of the result reproduces the covered note text.
func Fragments(note types.Note) []Fragment {
	units := utf16.Encode([]rune(note.Text))
	runs := note.AttributeRuns

	var (
		out    []Fragment
		offset int
	)

	for i := 0; i < len(runs); {
		start := offset
		var run *types.AttributeRun
		for {
			run = &runs[i]
			offset += int(run.Length)
			i++
			if i >= len(runs) || !RunsEqual(run, &runs[i]) {
				break
			}
		}

		text := string(utf16.Decode(units[clampIndex(start, len(units)):clampIndex(offset, len(units))]))
		for _, piece := range splitFragment(text) {
			out = append(out, Fragment{Run: run, Text: piece})
		}
	}

	for j := range out {
		out[j].AtLineStart = j == 0 || strings.Contains(out[j-1].Text, "\n")
	}
	return out
}

func clampIndex(i, n int) int {
	if i > n {
		return n
	}
	return i
}

// splitFragment isolates a leading whitespace run, a trailing whitespace
// run, and every interior whitespace run that holds a newline. Delimiters
// are kept as their own pieces; empty pieces are dropped.
func splitFragment(s string) []string {
	var (
		parts []string
		pos   int
	)

	for pos < len(s) {
		r, w := utf8.DecodeRuneInString(s[pos:])
		if !isSpace(r) {
			break
		}
		pos += w
	}
	if pos > 0 {
		parts = append(parts, s[:pos])
	}
	pending := pos

	for pos < len(s) {
		r, w := utf8.DecodeRuneInString(s[pos:])
		if !isSpace(r) {
			pos += w
			continue
		}

		end, newline := pos, false
		for end < len(s) {
			r, w := utf8.DecodeRuneInString(s[end:])
			if !isSpace(r) {
				break
			}
			if r == '\n' {
				newline = true
			}
			end += w
		}

		if newline || end == len(s) {
			if pos > pending {
				parts = append(parts, s[pending:pos])
			}
			parts = append(parts, s[pos:end])
			pending = end
		}
		pos = end
	}

	if pending < len(s) {
		parts = append(parts, s[pending:])
	}
	return parts
}

// isSpace matches the whitespace class of ECMAScript regular expressions,
// which the note format's own tooling splits on.
func isSpace(r rune) bool {
	if r == '\ufeff' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}

// RunsEqual reports whether two runs carry the same attributes, ignoring
// their lengths.
func RunsEqual(a, b *types.AttributeRun) bool {
	if a == nil || b == nil {
		return a == b
	}
	return paragraphStylesEqual(a.ParagraphStyle, b.ParagraphStyle) &&
		fontsEqual(a.Font, b.Font) &&
		a.FontWeight == b.FontWeight &&
		a.Underlined == b.Underlined &&
		a.Strikethrough == b.Strikethrough &&
		a.Superscript == b.Superscript &&
		a.Link == b.Link &&
		colorsEqual(a.Color, b.Color) &&
		attachmentsEqual(a.AttachmentInfo, b.AttachmentInfo)
}

func paragraphStylesEqual(a, b *types.ParagraphStyle) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StyleType == b.StyleType &&
		a.Alignment == b.Alignment &&
		a.IndentAmount == b.IndentAmount &&
		a.Blockquote == b.Blockquote &&
		checklistsEqual(a.Checklist, b.Checklist)
}

func checklistsEqual(a, b *types.Checklist) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fontsEqual(a, b *types.Font) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func colorsEqual(a, b *types.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func attachmentsEqual(a, b *types.AttachmentInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
