// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strconv"
	"strings"

	"github.com/pdiddy/notes-export/pkg/types"
)

const indentUnit = "\t"

// formatParagraph adds the line-start markup for the run's paragraph
// style to text, the already formatted first fragment of a line.
func (c *NoteConverter) formatParagraph(run *types.AttributeRun, text string) string {
	var (
		style  types.StyleType
		indent uint
		done   bool
		prefix string
	)
	if ps := run.ParagraphStyle; ps != nil {
		style = ps.StyleType
		indent = ps.IndentAmount
		done = ps.Checklist != nil && ps.Checklist.Done
		if ps.Blockquote {
			prefix = "> "
		}
	}
	tabs := strings.Repeat(indentUnit, int(indent))

	if c.listNumber != 0 && (style != types.StyleNumberedList || c.listIndent != indent) {
		c.listNumber = 0
	}

	switch style {
	case types.StyleTitle:
		return prefix + c.heading(1, text)
	case types.StyleHeading:
		return prefix + c.heading(2, text)
	case types.StyleSubheading:
		return prefix + c.heading(3, text)
	case types.StyleDashedList, types.StyleDottedList:
		return prefix + tabs + "- " + text
	case types.StyleNumberedList:
		if c.listNumber == 0 {
			c.listIndent = indent
		}
		c.listNumber++
		return prefix + tabs + strconv.FormatUint(uint64(c.listNumber), 10) + ". " + text
	case types.StyleCheckbox:
		box := "[ ]"
		if done {
			box = "[x]"
		}
		return prefix + tabs + "- " + box + " " + text
	}

	// Continuation line of a list item: indent without a bullet.
	if c.span == SpanList {
		prefix += tabs
	}
	return prefix + text
}

func (c *NoteConverter) heading(level int, text string) string {
	if c.env.Config.HTML {
		tag := "h" + strconv.Itoa(level)
		return "<" + tag + ">" + text + "</" + tag + ">"
	}
	return strings.Repeat("#", level) + " " + text
}
