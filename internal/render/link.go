// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// noteURI matches links to other notes, e.g.
// applenotes:note/8a6c7c1e-...?ownerIdentifier=...
var noteURI = regexp.MustCompile(`applenotes:note/([-0-9a-f]+)(?:\?ownerIdentifier=.*)?`)

func isInternalLink(link string) bool {
	return noteURI.MatchString(link)
}

// internalLink resolves a note URI to a link to the exported note. A URI
// that does not match the note pattern is rendered as an ordinary link.
func (r *resolver) internalLink(ctx context.Context, uri, label string) (string, error) {
	m := noteURI.FindStringSubmatch(uri)
	if m == nil {
		if label == "" {
			return uri, nil
		}
		return "[" + label + "](" + uri + ")", nil
	}

	identifier := strings.ToUpper(m[1])
	key, ok, err := r.env.Store.NoteRowKey(ctx, identifier)
	if err != nil {
		return "", fmt.Errorf("looking up note %s: %w", identifier, err)
	}
	if !ok || r.env.Notes == nil || r.env.Links == nil {
		r.log.Debug("note link unresolved", zap.String("identifier", identifier))
		return markerUnknownLink, nil
	}

	dest, ok, err := r.env.Notes.ResolveNote(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolving note %d: %w", key, err)
	}
	if !ok {
		r.log.Debug("note link unresolved", zap.Int64("key", key))
		return markerUnknownLink, nil
	}
	return r.env.Links.RenderLink(dest, label), nil
}
