// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/notes-export/pkg/types"
)

// defaultScanUTI is assumed for scan pages that carry no type.
const defaultScanUTI = "public.jpeg"

// ScanConverter renders a decoded scan gallery, one page image per line.
type ScanConverter struct {
	resolver *resolver
	scan     types.Scan
}

// NewScanConverter returns a converter for scan.
func NewScanConverter(env Env, scan types.Scan) *ScanConverter {
	return newScanConverter(newResolver(env), scan)
}

func newScanConverter(r *resolver, scan types.Scan) *ScanConverter {
	return &ScanConverter{resolver: r, scan: scan}
}

// Format implements Decodable.
func (s *ScanConverter) Format(ctx context.Context) (string, error) {
	pages := make([]string, 0, len(s.scan.Pages))
	for _, page := range s.scan.Pages {
		uti := page.TypeUTI
		if uti == "" {
			uti = defaultScanUTI
		}

		key, ok, err := s.resolver.env.Store.MediaKey(ctx, page.AttachmentIdentifier)
		if err != nil {
			return "", fmt.Errorf("looking up scan page %s: %w", page.AttachmentIdentifier, err)
		}
		if !ok || key == 0 {
			pages = append(pages, s.resolver.unknown(uti, page.AttachmentIdentifier))
			continue
		}

		ref, err := s.resolver.media(ctx, key, uti, "")
		if err != nil {
			return "", err
		}
		pages = append(pages, ref)
	}
	return strings.Join(pages, "\n"), nil
}
