// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/notes-export/pkg/types"
)

// minColumnWidth keeps the header separator a valid "---".
const minColumnWidth = 3

// TableConverter renders a decoded table as a Markdown table whose first
// row is the header. Every cell is converted by its own NoteConverter in
// table mode.
type TableConverter struct {
	env   Env
	table types.Table
}

// NewTableConverter returns a converter for table.
func NewTableConverter(env Env, table types.Table) *TableConverter {
	return &TableConverter{env: env, table: table}
}

// Format implements Decodable.
func (t *TableConverter) Format(ctx context.Context) (string, error) {
	columns := 0
	for _, row := range t.table.Rows {
		columns = max(columns, len(row))
	}
	if columns == 0 {
		return "", nil
	}

	cells := make([][]string, len(t.table.Rows))
	widths := make([]int, columns)
	for i := range widths {
		widths[i] = minColumnWidth
	}

	for i, row := range t.table.Rows {
		cells[i] = make([]string, columns)
		for j, cell := range row {
			text, err := New(t.env, cell).Format(ctx, true)
			if err != nil {
				return "", fmt.Errorf("converting table cell %d,%d: %w", i, j, err)
			}
			cells[i][j] = text
			widths[j] = max(widths[j], runewidth.StringWidth(text))
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, row := range cells {
		writeTableRow(&b, row, widths)
		if i == 0 {
			sep := make([]string, columns)
			for j, w := range widths {
				sep[j] = strings.Repeat("-", w)
			}
			writeTableRow(&b, sep, widths)
		}
	}
	b.WriteString("\n")
	return b.String(), nil
}

func writeTableRow(b *strings.Builder, row []string, widths []int) {
	b.WriteString("|")
	for j, text := range row {
		b.WriteString(" " + runewidth.FillRight(text, widths[j]) + " |")
	}
	b.WriteString("\n")
}
