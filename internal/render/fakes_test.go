// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/notes-export/pkg/types"
)

// fakeStore implements Store over in-memory maps. When err is set every
// lookup fails with it.
type fakeStore struct {
	altText  map[string]string
	tokens   map[string]string
	payloads map[string][]byte
	cards    map[string]types.URLCardRow
	drawings map[string]types.DrawingRow
	media    map[string]int64
	notes    map[string]int64
	err      error
}

func lookup[V any](m map[string]V, id string, err error) (V, bool, error) {
	var zero V
	if err != nil {
		return zero, false, err
	}
	v, ok := m[id]
	return v, ok, nil
}

func (f *fakeStore) AltText(_ context.Context, id string) (string, bool, error) {
	return lookup(f.altText, id, f.err)
}

func (f *fakeStore) TokenContentIdentifier(_ context.Context, id string) (string, bool, error) {
	return lookup(f.tokens, id, f.err)
}

func (f *fakeStore) MergeableData(_ context.Context, id string) ([]byte, bool, error) {
	return lookup(f.payloads, id, f.err)
}

func (f *fakeStore) URLCard(_ context.Context, id string) (types.URLCardRow, bool, error) {
	return lookup(f.cards, id, f.err)
}

func (f *fakeStore) Drawing(_ context.Context, id string) (types.DrawingRow, bool, error) {
	return lookup(f.drawings, id, f.err)
}

func (f *fakeStore) MediaKey(_ context.Context, id string) (int64, bool, error) {
	return lookup(f.media, id, f.err)
}

func (f *fakeStore) NoteRowKey(_ context.Context, id string) (int64, bool, error) {
	return lookup(f.notes, id, f.err)
}

type fakeAttachments map[int64]string

func (f fakeAttachments) ResolveAttachment(_ context.Context, key int64, _ string) (string, bool, error) {
	ref, ok := f[key]
	return ref, ok, nil
}

type fakeNotes map[int64]types.Destination

func (f fakeNotes) ResolveNote(_ context.Context, key int64) (types.Destination, bool, error) {
	d, ok := f[key]
	return d, ok, nil
}

type fakeLinks struct{}

func (fakeLinks) RenderLink(dest types.Destination, label string) string {
	if label == "" {
		label = dest.Title
	}
	return "[" + label + "](" + dest.Path + ")"
}

// fakeDecoder maps payload bytes to prepared tables and scans.
type fakeDecoder struct {
	tables map[string]types.Table
	scans  map[string]types.Scan
}

func (f *fakeDecoder) DecodeTable(payload []byte) (types.Table, error) {
	t, ok := f.tables[string(payload)]
	if !ok {
		return types.Table{}, fmt.Errorf("bad table payload %q", payload)
	}
	return t, nil
}

func (f *fakeDecoder) DecodeScan(payload []byte) (types.Scan, error) {
	s, ok := f.scans[string(payload)]
	if !ok {
		return types.Scan{}, fmt.Errorf("bad scan payload %q", payload)
	}
	return s, nil
}

var errStoreDown = errors.New("store unavailable")

func testEnv(store *fakeStore) Env {
	return Env{
		Store:       store,
		Attachments: fakeAttachments{},
		Notes:       fakeNotes{},
		Links:       fakeLinks{},
		Decoder:     &fakeDecoder{},
	}
}

// --- note builders ---

// plain builds a note whose whole text is one run.
func plain(text string, run types.AttributeRun) types.Note {
	run.Length = utf16Len(text)
	return types.Note{Text: text, AttributeRuns: []types.AttributeRun{run}}
}

// spans builds a note from (text, run) pairs, setting each run's length.
func spans(parts ...any) types.Note {
	var note types.Note
	for i := 0; i < len(parts); i += 2 {
		text := parts[i].(string)
		run := parts[i+1].(types.AttributeRun)
		run.Length = utf16Len(text)
		note.Text += text
		note.AttributeRuns = append(note.AttributeRuns, run)
	}
	return note
}

func utf16Len(s string) uint {
	var n uint
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func styled(style types.StyleType, indent uint) types.AttributeRun {
	return types.AttributeRun{ParagraphStyle: &types.ParagraphStyle{StyleType: style, IndentAmount: indent}}
}

func attachment(id, uti string) types.AttributeRun {
	return types.AttributeRun{AttachmentInfo: &types.AttachmentInfo{AttachmentIdentifier: id, TypeUTI: uti}}
}

const objectReplacement = "\ufffc"
