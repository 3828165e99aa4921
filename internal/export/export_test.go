// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes-export/internal/notedoc"
	"github.com/pdiddy/notes-export/internal/notestore"
	"github.com/pdiddy/notes-export/pkg/types"
)

// fakeStore serves note row keys, media keys and objects from maps.
// Lookups not covered here miss.
type fakeStore struct {
	emptyStore
	notes  map[string]int64
	media  map[string]int64
	files  map[int64]types.MediaFile
	titles map[int64]string
	err    error
}

func (f *fakeStore) NoteRowKey(_ context.Context, id string) (int64, bool, error) {
	k, ok := f.notes[id]
	return k, ok, nil
}

func (f *fakeStore) MediaKey(_ context.Context, id string) (int64, bool, error) {
	k, ok := f.media[id]
	return k, ok, nil
}

func (f *fakeStore) MediaFile(_ context.Context, key int64) (types.MediaFile, error) {
	if f.err != nil {
		return types.MediaFile{}, f.err
	}
	m, ok := f.files[key]
	if !ok {
		return types.MediaFile{}, notestore.ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) NoteTitle(_ context.Context, key int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	t, ok := f.titles[key]
	if !ok {
		return "", notestore.ErrNotFound
	}
	return t, nil
}

func plainNote(text string, run types.AttributeRun) types.Note {
	run.Length = uint(len(text))
	return types.Note{Text: text, AttributeRuns: []types.AttributeRun{run}}
}

func writeDoc(t *testing.T, dir, file string, doc types.Document) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, notedoc.Write(path, doc))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Groceries", "Groceries"},
		{"a/b: c?", "a-b- c-"},
		{"  .hidden. ", "hidden"},
		{"two\nlines", "two lines"},
		{"", "Untitled"},
		{"???", "---"},
		{"Cafe\u0301", "Caf\u00e9"},
		{strings.Repeat("x", 200), strings.Repeat("x", maxNameRunes)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.in), "FileName(%q)", tt.in)
	}
}

func TestAttachmentResolver(t *testing.T) {
	store := &fakeStore{files: map[int64]types.MediaFile{
		6: {Identifier: "MEDIA-6", Filename: "photo 1.png"},
		8: {Identifier: "DRAW-1"},
	}}
	r := NewAttachmentResolver(store, "attachments")
	ctx := context.Background()

	ref, ok, err := r.ResolveAttachment(ctx, 6, "public.png")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "attachments/MEDIA-6/photo 1.png", ref)

	ref, ok, err = r.ResolveAttachment(ctx, 8, types.UTIDrawing)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "attachments/FallbackImages/DRAW-1.jpg", ref)

	_, ok, err = r.ResolveAttachment(ctx, 99, "public.png")
	require.NoError(t, err)
	assert.False(t, ok)

	down := errors.New("disk on fire")
	_, _, err = NewAttachmentResolver(&fakeStore{err: down}, "a").ResolveAttachment(ctx, 6, "public.png")
	assert.ErrorIs(t, err, down)
}

func TestNoteResolver(t *testing.T) {
	store := &fakeStore{titles: map[int64]string{1: "From Store", 2: ""}}
	index := map[int64]types.Destination{3: {Title: "Batch", Path: "Batch 2.md"}}
	r := NewNoteResolver(store, index, ".md")
	ctx := context.Background()

	tests := []struct {
		key    int64
		want   types.Destination
		wantOK bool
	}{
		{1, types.Destination{Title: "From Store", Path: "From Store.md"}, true},
		{2, types.Destination{Title: "Untitled", Path: "Untitled.md"}, true},
		{3, types.Destination{Title: "Batch", Path: "Batch 2.md"}, true},
		{4, types.Destination{}, false},
	}
	for _, tt := range tests {
		dest, ok, err := r.ResolveNote(ctx, tt.key)
		require.NoError(t, err)
		assert.Equal(t, tt.wantOK, ok, "key %d", tt.key)
		assert.Equal(t, tt.want, dest, "key %d", tt.key)
	}
}

func TestLinkRenderers(t *testing.T) {
	dest := types.Destination{Title: "Beta Note", Path: "Beta Note.md"}

	md, err := NewLinkRenderer(types.LinkMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "[Beta Note](Beta%20Note.md)", md.RenderLink(dest, ""))
	assert.Equal(t, "[see](Beta%20Note.md)", md.RenderLink(dest, "see"))

	wiki, err := NewLinkRenderer(types.LinkWiki)
	require.NoError(t, err)
	assert.Equal(t, "[[Beta Note]]", wiki.RenderLink(dest, ""))
	assert.Equal(t, "[[Beta Note|see]]", wiki.RenderLink(dest, "see"))

	def, err := NewLinkRenderer("")
	require.NoError(t, err)
	assert.IsType(t, MarkdownLinks{}, def)

	_, err = NewLinkRenderer("html")
	assert.Error(t, err)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(types.ExportConfig{}, nil, nil)
	assert.Error(t, err, "missing output directory")

	_, err = New(types.ExportConfig{OutputDir: "out", Format: "pdf"}, nil, nil)
	assert.Error(t, err)

	_, err = New(types.ExportConfig{OutputDir: "out", LinkStyle: "bbcode"}, nil, nil)
	assert.Error(t, err)

	e, err := New(types.ExportConfig{OutputDir: "out"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, types.OutputMarkdown, e.cfg.Format)
	assert.Equal(t, defaultWorkers, e.cfg.Workers)
	assert.Equal(t, defaultAttachmentsDir, e.cfg.AttachmentsDir)
}

func TestExportBatch(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	store := &fakeStore{
		notes: map[string]int64{"ABC": 7},
		media: map[string]int64{"IMG": 6},
		files: map[int64]types.MediaFile{6: {Identifier: "M6", Filename: "cat.png"}},
	}

	linking := types.Document{Name: "Alpha", Note: types.Note{
		Text: "see\n\ufffc",
		AttributeRuns: []types.AttributeRun{
			{Length: 3, Link: "applenotes:note/abc"},
			{Length: 1},
			{Length: 1, AttachmentInfo: &types.AttachmentInfo{AttachmentIdentifier: "IMG", TypeUTI: "public.png"}},
		},
	}}
	target := types.Document{Name: "Beta Note", RowKey: 7, Note: plainNote("hello", types.AttributeRun{FontWeight: types.WeightBold})}
	existing := types.Document{Name: "Gamma", Note: plainNote("new", types.AttributeRun{})}

	paths := []string{
		writeDoc(t, srcDir, "alpha.yaml", linking),
		writeDoc(t, srcDir, "beta.yaml", target),
		writeDoc(t, srcDir, "gamma.yaml", existing),
		filepath.Join(srcDir, "missing.yaml"),
	}
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "Gamma.md"), []byte("old"), 0o644))

	e, err := New(types.ExportConfig{OutputDir: outDir, Workers: 2}, store, nil)
	require.NoError(t, err)

	var log bytes.Buffer
	result := e.ExportBatch(context.Background(), paths, &log)

	assert.Equal(t, BatchResult{Exported: 2, Skipped: 1, Failed: 1}, result)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 4, result.Total())

	output := log.String()
	assert.Contains(t, output, "exported: Alpha")
	assert.Contains(t, output, "exported: Beta Note")
	assert.Contains(t, output, "skipped: Gamma (already exists)")
	assert.Contains(t, output, "failed:  "+paths[3])
	assert.Contains(t, output, "Batch summary: 2 exported, 1 skipped, 1 failed (total: 4)")

	alpha := readFile(t, filepath.Join(outDir, "Alpha.md"))
	assert.True(t, strings.HasSuffix(alpha, "---\n\n[see](Beta%20Note.md)\n![](attachments/M6/cat.png)\n"), alpha)

	beta := readFile(t, filepath.Join(outDir, "Beta Note.md"))
	require.True(t, strings.HasPrefix(beta, "---\n"))
	parts := strings.SplitN(strings.TrimPrefix(beta, "---\n"), "---\n\n", 2)
	require.Len(t, parts, 2)

	var fm frontmatter
	require.NoError(t, yaml.Unmarshal([]byte(parts[0]), &fm))
	assert.Equal(t, "Beta Note", fm.Title)
	assert.Equal(t, paths[1], fm.Source)
	assert.Equal(t, int64(7), fm.RowKey)
	assert.NotEmpty(t, fm.ExportedAt)
	assert.Equal(t, "**hello**\n", parts[1])

	assert.Equal(t, "old", readFile(t, filepath.Join(outDir, "Gamma.md")))
}

func TestExportBatchForceAndDuplicateNames(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	paths := []string{
		writeDoc(t, srcDir, "one.yaml", types.Document{Name: "Note", Note: plainNote("first", types.AttributeRun{})}),
		writeDoc(t, srcDir, "two.yaml", types.Document{Name: "note", Note: plainNote("second", types.AttributeRun{})}),
	}
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "Note.md"), []byte("old"), 0o644))

	e, err := New(types.ExportConfig{OutputDir: outDir, Force: true}, nil, nil)
	require.NoError(t, err)

	var log bytes.Buffer
	result := e.ExportBatch(context.Background(), paths, &log)
	assert.Equal(t, BatchResult{Exported: 2}, result)

	assert.Contains(t, readFile(t, filepath.Join(outDir, "Note.md")), "first")
	assert.Contains(t, readFile(t, filepath.Join(outDir, "note 2.md")), "second")

	paths = []string{
		writeDoc(t, srcDir, "three.yaml", types.Document{Name: "Todo 2", Note: plainNote("titled", types.AttributeRun{})}),
		writeDoc(t, srcDir, "four.yaml", types.Document{Name: "Todo", Note: plainNote("plain", types.AttributeRun{})}),
		writeDoc(t, srcDir, "five.yaml", types.Document{Name: "Todo", Note: plainNote("again", types.AttributeRun{})}),
	}
	log.Reset()
	result = e.ExportBatch(context.Background(), paths, &log)
	assert.Equal(t, BatchResult{Exported: 3}, result)

	assert.Contains(t, readFile(t, filepath.Join(outDir, "Todo 2.md")), "titled")
	assert.Contains(t, readFile(t, filepath.Join(outDir, "Todo.md")), "plain")
	assert.Contains(t, readFile(t, filepath.Join(outDir, "Todo 3.md")), "again")
}

func TestExportHTML(t *testing.T) {
	outDir := t.TempDir()
	e, err := New(types.ExportConfig{OutputDir: outDir, Format: types.OutputHTML}, nil, nil)
	require.NoError(t, err)

	doc := types.Document{Name: "Tom & Jerry", Note: types.Note{
		Text: "Title\nbody",
		AttributeRuns: []types.AttributeRun{
			{Length: 6, ParagraphStyle: &types.ParagraphStyle{StyleType: types.StyleTitle}},
			{Length: 4, Underlined: true},
		},
	}}

	var log bytes.Buffer
	assert.Equal(t, StatusExported, e.ExportDocument(context.Background(), doc, &log))

	page := readFile(t, filepath.Join(outDir, "Tom & Jerry.html"))
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Tom &amp; Jerry</title>")
	assert.Contains(t, page, "<h1>Title</h1>")
	assert.Contains(t, page, "<u>body</u>")
}

func TestExportBatchCancelled(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	var paths []string
	for _, name := range []string{"a", "b", "c"} {
		paths = append(paths, writeDoc(t, srcDir, name+".yaml", types.Document{Name: name, Note: plainNote(name, types.AttributeRun{})}))
	}

	e, err := New(types.ExportConfig{OutputDir: outDir, Workers: 1}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	result := e.ExportBatch(ctx, paths, &log)
	assert.Equal(t, BatchResult{Failed: 3}, result)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlanNamesSkipsTakenSuffixes(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"case-insensitive duplicates", []string{"Note", "note"}, []string{"Note", "note 2"}},
		{"suffix already a title", []string{"Note 2", "Note", "Note"}, []string{"Note 2", "Note", "Note 3"}},
		{"suffix taken later", []string{"Note", "Note", "Note 2"}, []string{"Note", "Note 2", "Note 2 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := make([]job, len(tt.input))
			for i, title := range tt.input {
				jobs[i] = job{doc: types.Document{Name: title, RowKey: int64(i + 1)}}
			}

			index := planNames(jobs, ".md")

			for i, want := range tt.want {
				assert.Equal(t, want, jobs[i].name)
				assert.Equal(t, want+".md", index[int64(i+1)].Path)
			}
		})
	}
}
