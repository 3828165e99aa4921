// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/pdiddy/notes-export/internal/notestore"
	"github.com/pdiddy/notes-export/internal/render"
	"github.com/pdiddy/notes-export/pkg/types"
)

// fallbackImagesDir holds the rendered images of drawings, which have no
// original file of their own.
const fallbackImagesDir = "FallbackImages"

// ObjectStore is the part of notestore.Store the resolvers read. Misses
// are reported as notestore.ErrNotFound.
type ObjectStore interface {
	MediaFile(ctx context.Context, key int64) (types.MediaFile, error)
	NoteTitle(ctx context.Context, key int64) (string, error)
}

// AttachmentResolver maps media row keys to paths under the attachments
// directory, laid out as <dir>/<identifier>/<filename>.
type AttachmentResolver struct {
	store ObjectStore
	dir   string
}

var _ render.AttachmentResolver = (*AttachmentResolver)(nil)

// NewAttachmentResolver returns a resolver producing references relative
// to the export root.
func NewAttachmentResolver(store ObjectStore, dir string) *AttachmentResolver {
	return &AttachmentResolver{store: store, dir: dir}
}

// ResolveAttachment implements render.AttachmentResolver.
func (r *AttachmentResolver) ResolveAttachment(ctx context.Context, key int64, _ string) (string, bool, error) {
	media, err := r.store.MediaFile(ctx, key)
	if errors.Is(err, notestore.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolving media %d: %w", key, err)
	}

	if media.Filename == "" {
		return path.Join(r.dir, fallbackImagesDir, media.Identifier+".jpg"), true, nil
	}
	return path.Join(r.dir, media.Identifier, media.Filename), true, nil
}

// NoteResolver finds the exported file of a linked note. Notes exported in
// the current batch are looked up in the index; any other note is named
// after its title in the store.
type NoteResolver struct {
	store ObjectStore
	index map[int64]types.Destination
	ext   string
}

var _ render.NoteResolver = (*NoteResolver)(nil)

// NewNoteResolver returns a resolver whose destinations carry ext.
// index may be nil.
func NewNoteResolver(store ObjectStore, index map[int64]types.Destination, ext string) *NoteResolver {
	return &NoteResolver{store: store, index: index, ext: ext}
}

// ResolveNote implements render.NoteResolver.
func (r *NoteResolver) ResolveNote(ctx context.Context, key int64) (types.Destination, bool, error) {
	if dest, ok := r.index[key]; ok {
		return dest, true, nil
	}
	if r.store == nil {
		return types.Destination{}, false, nil
	}

	title, err := r.store.NoteTitle(ctx, key)
	if errors.Is(err, notestore.ErrNotFound) {
		return types.Destination{}, false, nil
	}
	if err != nil {
		return types.Destination{}, false, fmt.Errorf("resolving note %d: %w", key, err)
	}
	return destination(title, r.ext), true, nil
}

func destination(title, ext string) types.Destination {
	if title == "" {
		title = untitled
	}
	return types.Destination{Title: title, Path: FileName(title) + ext}
}

// MarkdownLinks writes note links as [label](path).
type MarkdownLinks struct{}

// RenderLink implements render.LinkRenderer.
func (MarkdownLinks) RenderLink(dest types.Destination, label string) string {
	if label == "" {
		label = dest.Title
	}
	return "[" + label + "](" + (&url.URL{Path: dest.Path}).EscapedPath() + ")"
}

// WikiLinks writes note links as [[name]] or [[name|label]].
type WikiLinks struct{}

// RenderLink implements render.LinkRenderer.
func (WikiLinks) RenderLink(dest types.Destination, label string) string {
	name := strings.TrimSuffix(dest.Path, path.Ext(dest.Path))
	if label == "" || label == name {
		return "[[" + name + "]]"
	}
	return "[[" + name + "|" + label + "]]"
}

// NewLinkRenderer returns the renderer for style. An empty style selects
// Markdown links.
func NewLinkRenderer(style types.LinkStyle) (render.LinkRenderer, error) {
	switch style {
	case "", types.LinkMarkdown:
		return MarkdownLinks{}, nil
	case types.LinkWiki:
		return WikiLinks{}, nil
	}
	return nil, fmt.Errorf("unknown link style %q", style)
}
