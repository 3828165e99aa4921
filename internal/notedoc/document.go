// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notedoc reads decoded notes from disk and decodes the embedded
// table and scan payloads that the converter renders as sub-documents.
//
// Documents are YAML files; JSON documents are accepted as well since
// JSON is valid YAML.
package notedoc

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes-export/pkg/types"
)

// documentExts lists the file extensions Find treats as documents.
var documentExts = map[string]bool{".yaml": true, ".yml": true, ".json": true}

// Load reads one document. A document without a name is named after its
// file.
func Load(path string) (types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading document: %w", err)
	}

	var doc types.Document
	if err := decodeStrict(data, &doc); err != nil {
		return types.Document{}, fmt.Errorf("parsing document %s: %w", path, err)
	}

	if doc.Name == "" {
		base := filepath.Base(path)
		doc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return doc, nil
}

// Write saves doc as YAML at path.
func Write(path string, doc types.Document) error {
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Find expands paths into the sorted list of document files they name.
// Directories are walked recursively; files are returned as given
// regardless of extension.
func Find(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && documentExts[strings.ToLower(filepath.Ext(path))] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// decodeStrict unmarshals data into v, rejecting unknown fields.
func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}
