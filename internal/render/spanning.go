// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"

	"github.com/pdiddy/notes-export/pkg/types"
)

// SpanState names the block construct that is open across fragments.
type SpanState int

const (
	SpanNone SpanState = iota
	SpanMonospace
	SpanAlignment
	SpanList
)

func (s SpanState) String() string {
	switch s {
	case SpanMonospace:
		return "monospace"
	case SpanAlignment:
		return "alignment"
	case SpanList:
		return "list"
	default:
		return "none"
	}
}

const (
	fenceOpen       = "\n```\n"
	fenceClose      = "```\n"
	alignClose      = "</p>\n"
	listPlaceholder = "\n- &nbsp;\n"
)

// nextSpan returns the state after run begins and the markup to emit
// before the run's fragment. Closing happens before opening, so one
// construct can end and another begin on the same fragment.
func nextSpan(state SpanState, run *types.AttributeRun) (SpanState, string) {
	var (
		style  types.StyleType
		indent uint
		prefix string
	)
	if ps := run.ParagraphStyle; ps != nil {
		style = ps.StyleType
		indent = ps.IndentAmount
	}

	switch state {
	case SpanList:
		if (indent == 0 && !style.IsList()) || isBlockAttachment(run) {
			state = SpanNone
		}
	case SpanMonospace:
		if style != types.StyleMonospaced {
			state = SpanNone
			prefix += fenceClose
		}
	case SpanAlignment:
		if !hasAlignment(run.ParagraphStyle) {
			state = SpanNone
			prefix += alignClose
		}
	}

	if state != SpanNone {
		return state, prefix
	}

	switch {
	case style == types.StyleMonospaced:
		state = SpanMonospace
		prefix += fenceOpen
	case style.IsList():
		state = SpanList
		// A list may start indented; give it a non-indented parent item.
		if indent > 0 {
			prefix += listPlaceholder
		}
	case hasAlignment(run.ParagraphStyle):
		state = SpanAlignment
		prefix += fmt.Sprintf("\n<p style=\"text-align:%s;margin:0\">", convertAlign(run.ParagraphStyle.Alignment))
	}

	return state, prefix
}

// hasAlignment reports whether the style asks for an alignment other than
// the natural left flow.
func hasAlignment(ps *types.ParagraphStyle) bool {
	return ps != nil && ps.Alignment != "" && ps.Alignment != types.AlignLeft
}

func isBlockAttachment(run *types.AttributeRun) bool {
	return run.AttachmentInfo != nil && !run.AttachmentInfo.IsInline()
}
