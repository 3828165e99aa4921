// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RenderConfig holds settings for converting a single note.
type RenderConfig struct {
	// HTML selects HTML tags over Markdown emphasis and heading syntax.
	HTML bool `json:"html" yaml:"html"`

	// OmitFirstLine skips the note's first line (usually the title, which
	// is already represented by the output file name).
	OmitFirstLine bool `json:"omit_first_line" yaml:"omit_first_line"`

	// IncludeHandwriting prepends the handwriting summary of drawings as a
	// callout block.
	IncludeHandwriting bool `json:"include_handwriting" yaml:"include_handwriting"`
}

// StoreConfig locates the note database.
type StoreConfig struct {
	// Path is the filesystem path to the note database (NoteStore.sqlite).
	Path string `json:"path" yaml:"path"`
}

// OutputFormat selects the export file format.
type OutputFormat string

const (
	OutputMarkdown OutputFormat = "markdown"
	OutputHTML     OutputFormat = "html"
)

// LinkStyle selects how links to other notes are written.
type LinkStyle string

const (
	LinkMarkdown LinkStyle = "markdown"
	LinkWiki     LinkStyle = "wikilink"
)

// ExportConfig holds settings for the batch export.
type ExportConfig struct {
	Render RenderConfig `json:"render" yaml:"render"`
	Store  StoreConfig  `json:"store" yaml:"store"`

	// OutputDir receives one file per exported note.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects Markdown or a standalone HTML document per note.
	Format OutputFormat `json:"format" yaml:"format"`

	// LinkStyle selects how internal note links are rendered.
	LinkStyle LinkStyle `json:"link_style" yaml:"link_style"`

	// AttachmentsDir is the directory, relative to OutputDir, that media
	// references point into.
	AttachmentsDir string `json:"attachments_dir" yaml:"attachments_dir"`

	// Workers is the number of notes converted concurrently (default 4).
	Workers int `json:"workers" yaml:"workers"`

	// Force re-exports notes whose output file already exists.
	Force bool `json:"force" yaml:"force"`
}

// LogConfig holds logging settings shared by all commands.
type LogConfig struct {
	// File, when set, receives JSON logs with size-based rotation.
	File string `json:"file" yaml:"file"`

	// Verbose lowers the console level from warn to debug.
	Verbose bool `json:"verbose" yaml:"verbose"`
}
