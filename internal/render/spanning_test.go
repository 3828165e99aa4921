// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"testing"

	"github.com/pdiddy/notes-export/pkg/types"
)

func TestNextSpan(t *testing.T) {
	centred := types.AttributeRun{ParagraphStyle: &types.ParagraphStyle{Alignment: types.AlignCentre}}

	tests := []struct {
		name       string
		state      SpanState
		run        types.AttributeRun
		wantState  SpanState
		wantPrefix string
	}{
		{"none stays none", SpanNone, types.AttributeRun{}, SpanNone, ""},
		{"open monospace", SpanNone, styled(types.StyleMonospaced, 0), SpanMonospace, "\n```\n"},
		{"monospace continues", SpanMonospace, styled(types.StyleMonospaced, 0), SpanMonospace, ""},
		{"close monospace", SpanMonospace, types.AttributeRun{}, SpanNone, "```\n"},
		{"open list", SpanNone, styled(types.StyleDottedList, 0), SpanList, ""},
		{"open indented list", SpanNone, styled(types.StyleNumberedList, 2), SpanList, "\n- &nbsp;\n"},
		{"list continues on indented text", SpanList, styled(types.StyleDefault, 1), SpanList, ""},
		{"list closes on unindented text", SpanList, styled(types.StyleDefault, 0), SpanNone, ""},
		{"list closes on plain run", SpanList, types.AttributeRun{}, SpanNone, ""},
		{"list closes on block attachment", SpanList, attachment("T1", types.UTITable), SpanNone, ""},
		{"list survives inline attachment", SpanList, func() types.AttributeRun {
			r := attachment("H1", types.UTIHashtag)
			r.ParagraphStyle = &types.ParagraphStyle{StyleType: types.StyleCheckbox}
			return r
		}(), SpanList, ""},
		{"open alignment", SpanNone, centred, SpanAlignment, "\n<p style=\"text-align:center;margin:0\">"},
		{"left is not an alignment block", SpanNone, types.AttributeRun{ParagraphStyle: &types.ParagraphStyle{Alignment: types.AlignLeft}}, SpanNone, ""},
		{"alignment continues", SpanAlignment, centred, SpanAlignment, ""},
		{"close alignment", SpanAlignment, types.AttributeRun{}, SpanNone, "</p>\n"},
		{"monospace hands over to list", SpanMonospace, styled(types.StyleDashedList, 0), SpanList, "```\n"},
		{"alignment hands over to monospace", SpanAlignment, styled(types.StyleMonospaced, 0), SpanMonospace, "</p>\n\n```\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := tt.run
			gotState, gotPrefix := nextSpan(tt.state, &run)
			if gotState != tt.wantState {
				t.Errorf("state = %v, want %v", gotState, tt.wantState)
			}
			if gotPrefix != tt.wantPrefix {
				t.Errorf("prefix = %q, want %q", gotPrefix, tt.wantPrefix)
			}
		})
	}
}

func TestSpanStateString(t *testing.T) {
	for state, want := range map[SpanState]string{
		SpanNone: "none", SpanMonospace: "monospace", SpanAlignment: "alignment", SpanList: "list",
	} {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}

func TestConvertColor(t *testing.T) {
	tests := []struct {
		in   types.Color
		want string
	}{
		{types.Color{Red: 1, Green: 0, Blue: 0, Alpha: 1}, "#ff0000ff"},
		{types.Color{Red: 0.5, Green: 0.25, Blue: 0, Alpha: 1}, "#7f3f00ff"},
		{types.Color{Red: 2, Green: -1, Blue: 0.0039, Alpha: 0}, "#ff000000"},
	}
	for _, tt := range tests {
		if got := convertColor(tt.in); got != tt.want {
			t.Errorf("convertColor(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConvertAlign(t *testing.T) {
	tests := map[types.Alignment]string{
		types.AlignLeft:    "left",
		types.AlignCentre:  "center",
		types.AlignRight:   "right",
		types.AlignJustify: "justify",
		"":                 "left",
	}
	for in, want := range tests {
		if got := convertAlign(in); got != want {
			t.Errorf("convertAlign(%q) = %q, want %q", in, got, want)
		}
	}
}
