// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notestore reads the notes database (NoteStore.sqlite). Every
// object the converter needs (attachments, link tokens, media, other
// notes) lives in the single ZICCLOUDSYNCINGOBJECT table and is looked up
// by its ZIDENTIFIER or Z_PK.
package notestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notes-export/internal/render"
	"github.com/pdiddy/notes-export/pkg/types"
)

// ErrNotFound is returned when no row matches a lookup.
var ErrNotFound = errors.New("notestore: no matching row")

const objectTable = "ZICCLOUDSYNCINGOBJECT"

// Store serves lookups against a notes database opened read-only.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB

	// Older databases have no handwriting column.
	hasHandwriting bool
}

var _ render.Store = (*Store)(nil)

// Open opens the database at cfg.Path read-only and checks that it holds
// the object table.
func Open(ctx context.Context, cfg types.StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("notestore: no database path configured")
	}

	dsn := "file:" + (&url.URL{Path: cfg.Path}).EscapedPath() + "?mode=ro&_query_only=true"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.inspectSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) inspectSchema(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?)`, objectTable)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	defer rows.Close()

	columns := 0
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("reading schema: %w", err)
		}
		columns++
		if name == "ZHANDWRITINGSUMMARY" {
			s.hasHandwriting = true
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	if columns == 0 {
		return fmt.Errorf("database has no %s table", objectTable)
	}
	return nil
}

// byIdentifier runs query with the identifier bound twice: once as given
// and once upper-cased. Queries select from objectTable and end with
// "WHERE ZIDENTIFIER IN (?, upper(?))".
func (s *Store) byIdentifier(ctx context.Context, query, id string, dest ...any) error {
	err := s.db.QueryRowContext(ctx, query+" LIMIT 1", id, id).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Store) byKey(ctx context.Context, query string, key int64, dest ...any) error {
	err := s.db.QueryRowContext(ctx, query, key).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// found converts a lookup error into the found/err pair of render.Store.
func found(what, id string, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("querying %s %s: %w", what, id, err)
	}
}

// AltText implements render.Store.
func (s *Store) AltText(ctx context.Context, id string) (string, bool, error) {
	var text sql.NullString
	err := s.byIdentifier(ctx,
		`SELECT ZALTTEXT FROM ZICCLOUDSYNCINGOBJECT WHERE ZIDENTIFIER IN (?, upper(?))`, id, &text)
	ok, err := found("alt text", id, err)
	return text.String, ok && text.Valid, err
}

// TokenContentIdentifier implements render.Store.
func (s *Store) TokenContentIdentifier(ctx context.Context, id string) (string, bool, error) {
	var uri sql.NullString
	err := s.byIdentifier(ctx,
		`SELECT ZTOKENCONTENTIDENTIFIER FROM ZICCLOUDSYNCINGOBJECT WHERE ZIDENTIFIER IN (?, upper(?))`, id, &uri)
	ok, err := found("link token", id, err)
	return uri.String, ok && uri.Valid, err
}

// MergeableData implements render.Store.
func (s *Store) MergeableData(ctx context.Context, id string) ([]byte, bool, error) {
	var payload []byte
	err := s.byIdentifier(ctx,
		`SELECT ZMERGEABLEDATA1 FROM ZICCLOUDSYNCINGOBJECT WHERE ZIDENTIFIER IN (?, upper(?))`, id, &payload)
	ok, err := found("payload", id, err)
	return payload, ok && payload != nil, err
}

// URLCard implements render.Store.
func (s *Store) URLCard(ctx context.Context, id string) (types.URLCardRow, bool, error) {
	var title, link sql.NullString
	err := s.byIdentifier(ctx,
		`SELECT ZTITLE, ZURLSTRING FROM ZICCLOUDSYNCINGOBJECT WHERE ZIDENTIFIER IN (?, upper(?))`, id, &title, &link)
	ok, err := found("url card", id, err)
	return types.URLCardRow{Title: title.String, URL: link.String}, ok, err
}

// Drawing implements render.Store.
func (s *Store) Drawing(ctx context.Context, id string) (types.DrawingRow, bool, error) {
	summary := "NULL"
	if s.hasHandwriting {
		summary = "ZHANDWRITINGSUMMARY"
	}

	var (
		key  int64
		text sql.NullString
	)
	err := s.byIdentifier(ctx,
		`SELECT Z_PK, `+summary+` FROM ZICCLOUDSYNCINGOBJECT WHERE ZIDENTIFIER IN (?, upper(?))`, id, &key, &text)
	ok, err := found("drawing", id, err)
	return types.DrawingRow{RowKey: key, HandwritingSummary: text.String}, ok, err
}

// MediaKey implements render.Store.
func (s *Store) MediaKey(ctx context.Context, id string) (int64, bool, error) {
	var key sql.NullInt64
	err := s.byIdentifier(ctx,
		`SELECT ZMEDIA FROM ZICCLOUDSYNCINGOBJECT WHERE ZIDENTIFIER IN (?, upper(?))`, id, &key)
	ok, err := found("media", id, err)
	return key.Int64, ok && key.Valid, err
}

// NoteRowKey implements render.Store.
func (s *Store) NoteRowKey(ctx context.Context, id string) (int64, bool, error) {
	var key int64
	err := s.byIdentifier(ctx,
		`SELECT Z_PK FROM ZICCLOUDSYNCINGOBJECT WHERE ZIDENTIFIER IN (?, upper(?))`, id, &key)
	ok, err := found("note", id, err)
	return key, ok, err
}

// MediaFile returns the identifier and file name of the object with row
// key key, or ErrNotFound.
func (s *Store) MediaFile(ctx context.Context, key int64) (types.MediaFile, error) {
	var identifier, filename sql.NullString
	err := s.byKey(ctx,
		`SELECT ZIDENTIFIER, ZFILENAME FROM ZICCLOUDSYNCINGOBJECT WHERE Z_PK = ?`, key, &identifier, &filename)
	if err != nil {
		return types.MediaFile{}, err
	}
	if !identifier.Valid {
		return types.MediaFile{}, ErrNotFound
	}
	return types.MediaFile{Identifier: identifier.String, Filename: filename.String}, nil
}

// NoteTitle returns the title of the note with row key key, or
// ErrNotFound. A note without a title yields an empty string.
func (s *Store) NoteTitle(ctx context.Context, key int64) (string, error) {
	var title sql.NullString
	if err := s.byKey(ctx,
		`SELECT ZTITLE1 FROM ZICCLOUDSYNCINGOBJECT WHERE Z_PK = ?`, key, &title); err != nil {
		return "", err
	}
	return title.String, nil
}
