// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// URLCardRow is the store projection for a URL card attachment.
type URLCardRow struct {
	Title string
	URL   string
}

// DrawingRow is the store projection for drawings and modified scans.
// HandwritingSummary is empty when the database has no recognized text.
type DrawingRow struct {
	RowKey             int64
	HandwritingSummary string
}

// Destination is where an internal note link points once resolved.
type Destination struct {
	// Title is the display title of the target note.
	Title string

	// Path is the target's path relative to the export root.
	Path string
}

// MediaFile is the store projection for a media object: the directory
// identifier it is filed under and its original file name. Filename is
// empty for drawings, which only have a rendered fallback image.
type MediaFile struct {
	Identifier string
	Filename   string
}
