// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// StyleType is the paragraph style of a line in a note.
type StyleType string

const (
	StyleDefault      StyleType = "default"
	StyleTitle        StyleType = "title"
	StyleHeading      StyleType = "heading"
	StyleSubheading   StyleType = "subheading"
	StyleMonospaced   StyleType = "monospaced"
	StyleDottedList   StyleType = "dotted_list"
	StyleDashedList   StyleType = "dashed_list"
	StyleNumberedList StyleType = "numbered_list"
	StyleCheckbox     StyleType = "checkbox"
)

// IsList reports whether the style renders as a list item.
func (s StyleType) IsList() bool {
	switch s {
	case StyleDottedList, StyleDashedList, StyleNumberedList, StyleCheckbox:
		return true
	}
	return false
}

// Alignment is the horizontal alignment of a paragraph.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCentre  Alignment = "centre"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// FontWeight selects bold and italic rendering.
type FontWeight string

const (
	WeightRegular    FontWeight = "regular"
	WeightBold       FontWeight = "bold"
	WeightItalic     FontWeight = "italic"
	WeightBoldItalic FontWeight = "bold_italic"
)

// Baseline selects superscript or subscript rendering.
type Baseline string

const (
	BaselineSub     Baseline = "sub"
	BaselineDefault Baseline = "default"
	BaselineSuper   Baseline = "super"
)

// Attachment type identifiers with dedicated handling. Any other type
// identifier is treated as a file attachment.
const (
	UTIDrawing        = "com.apple.paper"
	UTIDrawingLegacy  = "com.apple.drawing"
	UTIDrawingLegacy2 = "com.apple.drawing.2"
	UTIHashtag        = "com.apple.notes.inlinetextattachment.hashtag"
	UTIMention        = "com.apple.notes.inlinetextattachment.mention"
	UTIInternalLink   = "com.apple.notes.inlinetextattachment.link"
	UTIModifiedScan   = "com.apple.paper.doc.scan"
	UTIScan           = "com.apple.notes.gallery"
	UTITable          = "com.apple.notes.table"
	UTIURLCard        = "public.url"

	// utiInlinePrefix is shared by attachments that sit inside a line of text.
	utiInlinePrefix = "com.apple.notes.inlinetextattachment"
)

// Checklist holds the state of a checkbox paragraph.
type Checklist struct {
	Done bool   `json:"done" yaml:"done"`
	UUID string `json:"uuid,omitempty" yaml:"uuid,omitempty"`
}

// ParagraphStyle holds line-level attributes.
type ParagraphStyle struct {
	StyleType    StyleType  `json:"style_type,omitempty" yaml:"style_type,omitempty"`
	Alignment    Alignment  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	IndentAmount uint       `json:"indent_amount,omitempty" yaml:"indent_amount,omitempty"`
	Checklist    *Checklist `json:"checklist,omitempty" yaml:"checklist,omitempty"`
	Blockquote   bool       `json:"blockquote,omitempty" yaml:"blockquote,omitempty"`
}

// Font names a typeface and size. A zero PointSize means unset.
type Font struct {
	FontName  string  `json:"font_name,omitempty" yaml:"font_name,omitempty"`
	PointSize float64 `json:"point_size,omitempty" yaml:"point_size,omitempty"`
}

// Color is an RGBA color with channels in [0,1].
type Color struct {
	Red   float64 `json:"red" yaml:"red"`
	Green float64 `json:"green" yaml:"green"`
	Blue  float64 `json:"blue" yaml:"blue"`
	Alpha float64 `json:"alpha" yaml:"alpha"`
}

// AttachmentInfo points at an object embedded in the note text.
type AttachmentInfo struct {
	AttachmentIdentifier string `json:"attachment_identifier" yaml:"attachment_identifier"`
	TypeUTI              string `json:"type_uti" yaml:"type_uti"`
}

// IsInline reports whether the attachment renders inside a line of text
// (hashtags, mentions, internal links) rather than as its own block.
func (a *AttachmentInfo) IsInline() bool {
	return strings.Contains(a.TypeUTI, utiInlinePrefix)
}

// AttributeRun describes the formatting of the next Length characters of
// the note text. Lengths count UTF-16 code units.
type AttributeRun struct {
	Length         uint            `json:"length" yaml:"length"`
	ParagraphStyle *ParagraphStyle `json:"paragraph_style,omitempty" yaml:"paragraph_style,omitempty"`
	Font           *Font           `json:"font,omitempty" yaml:"font,omitempty"`
	FontWeight     FontWeight      `json:"font_weight,omitempty" yaml:"font_weight,omitempty"`
	Underlined     bool            `json:"underlined,omitempty" yaml:"underlined,omitempty"`
	Strikethrough  int             `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`
	Superscript    Baseline        `json:"superscript,omitempty" yaml:"superscript,omitempty"`
	Link           string          `json:"link,omitempty" yaml:"link,omitempty"`
	Color          *Color          `json:"color,omitempty" yaml:"color,omitempty"`
	AttachmentInfo *AttachmentInfo `json:"attachment_info,omitempty" yaml:"attachment_info,omitempty"`
}

// Note is the text of a note plus its attribute runs.
type Note struct {
	Text          string         `json:"note_text" yaml:"note_text"`
	AttributeRuns []AttributeRun `json:"attribute_runs" yaml:"attribute_runs"`
}

// Document is a decoded note as handed to the converter.
type Document struct {
	// Name identifies the document; batch export uses it as the output file name.
	Name string `json:"name" yaml:"name"`

	// RowKey is the note's primary key in the note store, if known.
	RowKey int64 `json:"row_key,omitempty" yaml:"row_key,omitempty"`

	Note Note `json:"note" yaml:"note"`
}

// Table is a decoded table attachment: a grid of cells, each a small note.
// The first row is rendered as the header.
type Table struct {
	Rows [][]Note `json:"rows" yaml:"rows"`
}

// Scan is a decoded document-scan gallery: an ordered list of page images.
type Scan struct {
	Pages []AttachmentInfo `json:"pages" yaml:"pages"`
}
