// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render converts a note's attribute runs into Markdown or
// HTML-flavoured Markdown. Attachments and links to other notes are
// resolved through capabilities supplied by the caller; tables and scans
// are rendered by nested sub-conversions.
//
// A NoteConverter is not safe for concurrent use. Independent notes may be
// converted in parallel with separate converters sharing one Env, provided
// the capabilities in Env are safe for concurrent reads.
package render

import (
	"context"

	"go.uber.org/zap"

	"github.com/pdiddy/notes-export/pkg/types"
)

// Store answers lookups against the note database. Every method reports
// found=false with a nil error when no row matches the identifier.
// Implementations must accept identifiers in either their stored or
// upper-cased form.
type Store interface {
	// AltText returns the display text of a hashtag or mention.
	AltText(ctx context.Context, id string) (text string, found bool, err error)

	// TokenContentIdentifier returns the note URI behind an inline link.
	TokenContentIdentifier(ctx context.Context, id string) (uri string, found bool, err error)

	// MergeableData returns the serialized payload of a table or scan.
	MergeableData(ctx context.Context, id string) (payload []byte, found bool, err error)

	// URLCard returns the title and URL of a link card.
	URLCard(ctx context.Context, id string) (row types.URLCardRow, found bool, err error)

	// Drawing returns the row key and handwriting summary of a drawing.
	Drawing(ctx context.Context, id string) (row types.DrawingRow, found bool, err error)

	// MediaKey returns the row key of the media object behind a file attachment.
	MediaKey(ctx context.Context, id string) (key int64, found bool, err error)

	// NoteRowKey returns the row key of the note with the given identifier.
	NoteRowKey(ctx context.Context, id string) (key int64, found bool, err error)
}

// AttachmentResolver turns a media row key into a reference (typically a
// relative path or URI) that the output can embed.
type AttachmentResolver interface {
	ResolveAttachment(ctx context.Context, key int64, typeUTI string) (ref string, found bool, err error)
}

// NoteResolver finds where a note identified by its row key is exported.
type NoteResolver interface {
	ResolveNote(ctx context.Context, key int64) (dest types.Destination, found bool, err error)
}

// LinkRenderer writes a link to another note. An empty label means the
// renderer picks one.
type LinkRenderer interface {
	RenderLink(dest types.Destination, label string) string
}

// Decoder turns serialized table and scan payloads into structured data.
type Decoder interface {
	DecodeTable(payload []byte) (types.Table, error)
	DecodeScan(payload []byte) (types.Scan, error)
}

// Decodable is a nested structure that renders itself to markup.
type Decodable interface {
	Format(ctx context.Context) (string, error)
}

// Env bundles the capabilities and settings shared by a conversion and
// every sub-conversion it spawns.
type Env struct {
	Store       Store
	Attachments AttachmentResolver
	Notes       NoteResolver
	Links       LinkRenderer
	Decoder     Decoder
	Config      types.RenderConfig
	Logger      *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Inline markers written in place of content that could not be resolved.
const (
	markerUnreadable  = " **(error reading attachment)**"
	markerUnknownLink = "(unknown file link)"
)

func unknownAttachment(typeUTI string) string {
	return " **(unknown attachment: " + typeUTI + ")** "
}
