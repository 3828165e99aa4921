// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export converts batches of note documents and writes one
// Markdown (or standalone HTML) file per note. It wires the note database
// into the converter as the attachment, note and link capabilities.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes-export/internal/notedoc"
	"github.com/pdiddy/notes-export/internal/render"
	"github.com/pdiddy/notes-export/pkg/types"
)

const (
	defaultWorkers        = 4
	defaultAttachmentsDir = "attachments"
)

// Store is everything the exporter reads from the note database.
type Store interface {
	render.Store
	ObjectStore
}

// Status is the outcome of exporting one document.
type Status string

const (
	StatusExported Status = "exported"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// BatchResult holds the outcome of a batch export run.
type BatchResult struct {
	Exported int
	Skipped  int
	Failed   int
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Exported + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed to export.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(s Status) {
	switch s {
	case StatusExported:
		r.Exported++
	case StatusSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
}

// Exporter writes converted documents under cfg.OutputDir.
type Exporter struct {
	cfg   types.ExportConfig
	store Store
	env   render.Env
	log   *zap.Logger
}

// New validates cfg, fills its defaults and returns an exporter reading
// from store. store may be nil, in which case every lookup misses.
func New(cfg types.ExportConfig, store Store, logger *zap.Logger) (*Exporter, error) {
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("no output directory configured")
	}
	switch cfg.Format {
	case "":
		cfg.Format = types.OutputMarkdown
	case types.OutputMarkdown, types.OutputHTML:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.AttachmentsDir == "" {
		cfg.AttachmentsDir = defaultAttachmentsDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = emptyStore{}
	}

	env, err := NewEnv(cfg, store, logger)
	if err != nil {
		return nil, err
	}
	return &Exporter{cfg: cfg, store: store, env: env, log: logger}, nil
}

// NewEnv assembles the converter capabilities for cfg over store. A nil
// store makes every lookup miss, which suits documents without
// attachments or note links.
func NewEnv(cfg types.ExportConfig, store Store, logger *zap.Logger) (render.Env, error) {
	if store == nil {
		store = emptyStore{}
	}
	links, err := NewLinkRenderer(cfg.LinkStyle)
	if err != nil {
		return render.Env{}, err
	}
	return render.Env{
		Store:       store,
		Attachments: NewAttachmentResolver(store, cfg.AttachmentsDir),
		Notes:       NewNoteResolver(store, nil, fileExt(cfg.Format)),
		Links:       links,
		Decoder:     notedoc.Decoder{},
		Config:      cfg.Render,
		Logger:      logger,
	}, nil
}

func fileExt(f types.OutputFormat) string {
	if f == types.OutputHTML {
		return ".html"
	}
	return ".md"
}

// job is one document scheduled for export.
type job struct {
	doc    types.Document
	source string
	name   string
}

// ExportBatch loads the documents at paths, converts them with
// cfg.Workers goroutines and writes the results. It prints per-document
// status lines and a summary to w. A failing document never stops the
// batch; a cancelled context leaves unstarted documents counted as failed.
func (e *Exporter) ExportBatch(ctx context.Context, paths []string, w io.Writer) BatchResult {
	out := &syncWriter{w: w}
	var result BatchResult

	var jobs []job
	for _, p := range paths {
		doc, err := notedoc.Load(p)
		if err != nil {
			fmt.Fprintf(out, "failed:  %s (%v)\n", p, err)
			e.log.Warn("document unreadable", zap.String("path", p), zap.Error(err))
			result.Failed++
			continue
		}
		jobs = append(jobs, job{doc: doc, source: p})
	}

	ext := fileExt(e.cfg.Format)
	index := planNames(jobs, ext)

	env := e.env
	env.Notes = NewNoteResolver(e.store, index, ext)

	for s := range e.run(ctx, env, jobs, out) {
		result.add(s)
	}

	fmt.Fprintf(out, "\nBatch summary: %d exported, %d skipped, %d failed (total: %d)\n",
		result.Exported, result.Skipped, result.Failed, result.Total())
	return result
}

// run fans jobs out to the worker pool and returns a channel carrying one
// status per job.
func (e *Exporter) run(ctx context.Context, env render.Env, jobs []job, w io.Writer) <-chan Status {
	queue := make(chan job)
	results := make(chan Status, len(jobs))

	var wg sync.WaitGroup
	for range min(e.cfg.Workers, max(len(jobs), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				results <- e.export(ctx, env, j, w)
			}
		}()
	}

	go func() {
		defer close(queue)
		for i, j := range jobs {
			select {
			case queue <- j:
			case <-ctx.Done():
				for _, skipped := range jobs[i:] {
					fmt.Fprintf(w, "failed:  %s (%v)\n", skipped.name, ctx.Err())
					results <- StatusFailed
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// planNames assigns every job a unique output name and returns the
// destinations of the documents that carry a row key, so links between
// notes of the same batch point at each other's files.
func planNames(jobs []job, ext string) map[int64]types.Destination {
	index := make(map[int64]types.Destination)
	used := make(map[string]bool)

	for i := range jobs {
		base := FileName(jobs[i].doc.Name)
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = base + " " + strconv.Itoa(n)
		}
		used[strings.ToLower(name)] = true
		jobs[i].name = name

		if jobs[i].doc.RowKey != 0 {
			index[jobs[i].doc.RowKey] = types.Destination{Title: jobs[i].doc.Name, Path: name + ext}
		}
	}
	return index
}

// ExportDocument converts and writes a single document named after
// doc.Name, using the exporter's default capabilities.
func (e *Exporter) ExportDocument(ctx context.Context, doc types.Document, w io.Writer) Status {
	return e.export(ctx, e.env, job{doc: doc, name: FileName(doc.Name)}, w)
}

func (e *Exporter) export(ctx context.Context, env render.Env, j job, w io.Writer) Status {
	outPath := filepath.Join(e.cfg.OutputDir, j.name+fileExt(e.cfg.Format))

	if err := ctx.Err(); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", j.name, err)
		return StatusFailed
	}

	if !e.cfg.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", j.name)
			return StatusSkipped
		}
	}

	content, err := e.compose(ctx, env, j)
	if err == nil {
		err = writeFile(outPath, content)
	}
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", j.name, err)
		e.log.Warn("export failed", zap.String("note", j.name), zap.Error(err))
		return StatusFailed
	}

	fmt.Fprintf(w, "exported: %s\n", j.name)
	e.log.Debug("note exported", zap.String("note", j.name), zap.String("path", outPath))
	return StatusExported
}

func (e *Exporter) compose(ctx context.Context, env render.Env, j job) (string, error) {
	body, err := render.New(env, j.doc.Note).Format(ctx, false)
	if err != nil {
		return "", fmt.Errorf("converting: %w", err)
	}

	if e.cfg.Format == types.OutputHTML {
		return toHTML(j.doc.Name, body)
	}
	return addFrontmatter(j.doc, j.source, body)
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

type frontmatter struct {
	Title      string `yaml:"title"`
	Source     string `yaml:"source,omitempty"`
	RowKey     int64  `yaml:"row_key,omitempty"`
	ExportedAt string `yaml:"exported_at"`
}

// addFrontmatter prepends YAML frontmatter to the converted Markdown.
func addFrontmatter(doc types.Document, source, body string) (string, error) {
	data, err := yaml.Marshal(frontmatter{
		Title:      doc.Name,
		Source:     source,
		RowKey:     doc.RowKey,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String(), nil
}

// syncWriter serializes status lines written by concurrent workers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
