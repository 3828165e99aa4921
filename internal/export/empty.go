// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"

	"github.com/pdiddy/notes-export/internal/notestore"
	"github.com/pdiddy/notes-export/pkg/types"
)

// emptyStore stands in for a missing database: every lookup misses.
type emptyStore struct{}

func (emptyStore) AltText(context.Context, string) (string, bool, error) { return "", false, nil }

func (emptyStore) TokenContentIdentifier(context.Context, string) (string, bool, error) {
	return "", false, nil
}

func (emptyStore) MergeableData(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (emptyStore) URLCard(context.Context, string) (types.URLCardRow, bool, error) {
	return types.URLCardRow{}, false, nil
}

func (emptyStore) Drawing(context.Context, string) (types.DrawingRow, bool, error) {
	return types.DrawingRow{}, false, nil
}

func (emptyStore) MediaKey(context.Context, string) (int64, bool, error) { return 0, false, nil }

func (emptyStore) NoteRowKey(context.Context, string) (int64, bool, error) { return 0, false, nil }

func (emptyStore) MediaFile(context.Context, int64) (types.MediaFile, error) {
	return types.MediaFile{}, notestore.ErrNotFound
}

func (emptyStore) NoteTitle(context.Context, int64) (string, error) {
	return "", notestore.ErrNotFound
}
