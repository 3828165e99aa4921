// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	untitled = "Untitled"

	// maxNameRunes keeps file names well inside common filesystem limits.
	maxNameRunes = 120
)

// FileName derives a portable file name (without extension) from a note
// title. The title is NFC-normalized so names typed on different systems
// compare equal; path separators, reserved characters and control
// characters become "-".
func FileName(title string) string {
	title = norm.NFC.String(title)

	var b strings.Builder
	n := 0
	for _, r := range title {
		if n == maxNameRunes {
			break
		}
		switch {
		case r == '\n', r == '\t':
			b.WriteRune(' ')
		case strings.ContainsRune(`/\:*?"<>|`, r), unicode.IsControl(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
		n++
	}

	name := strings.Trim(b.String(), " .")
	if name == "" {
		return untitled
	}
	return name
}
