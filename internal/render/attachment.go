// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/notes-export/pkg/types"
)

// resolver dispatches attachments and internal links to the capabilities
// in Env. It holds no per-note state, so nested conversions share it.
type resolver struct {
	env Env
	log *zap.Logger
}

func newResolver(env Env) *resolver {
	return &resolver{env: env, log: env.logger()}
}

// attachment renders one embedded attachment. Lookup misses and
// undecodable payloads become inline markers; store and resolver errors
// are returned.
func (r *resolver) attachment(ctx context.Context, info *types.AttachmentInfo) (string, error) {
	id := info.AttachmentIdentifier
	uti := info.TypeUTI

	var (
		key     int64
		found   bool
		summary string
		err     error
	)

	switch uti {
	case types.UTIHashtag, types.UTIMention:
		text, ok, err := r.env.Store.AltText(ctx, id)
		if err != nil {
			return "", fmt.Errorf("looking up alt text for %s: %w", id, err)
		}
		if !ok {
			return r.unknown(uti, id), nil
		}
		return text, nil

	case types.UTIInternalLink:
		uri, ok, err := r.env.Store.TokenContentIdentifier(ctx, id)
		if err != nil {
			return "", fmt.Errorf("looking up link target for %s: %w", id, err)
		}
		if !ok {
			return r.unknown(uti, id), nil
		}
		return r.internalLink(ctx, uri, "")

	case types.UTITable:
		return r.table(ctx, id, uti)

	case types.UTIURLCard:
		card, ok, err := r.env.Store.URLCard(ctx, id)
		if err != nil {
			return "", fmt.Errorf("looking up url card %s: %w", id, err)
		}
		if !ok {
			return r.unknown(uti, id), nil
		}
		return "[**" + card.Title + "**](" + card.URL + ")", nil

	case types.UTIScan:
		return r.scan(ctx, id, uti)

	case types.UTIModifiedScan, types.UTIDrawing, types.UTIDrawingLegacy, types.UTIDrawingLegacy2:
		var row types.DrawingRow
		row, found, err = r.env.Store.Drawing(ctx, id)
		if err != nil {
			return "", fmt.Errorf("looking up drawing %s: %w", id, err)
		}
		key, summary = row.RowKey, row.HandwritingSummary

	default:
		// A file on disk: image, audio, video, PDF, vCard and so on.
		r.log.Debug("file attachment", zap.String("uti", uti), zap.String("id", id))
		key, found, err = r.env.Store.MediaKey(ctx, id)
		if err != nil {
			return "", fmt.Errorf("looking up media for %s: %w", id, err)
		}
	}

	if !found || key == 0 {
		return r.unknown(uti, id), nil
	}
	return r.media(ctx, key, uti, summary)
}

// media renders a reference to a resolved media object, preceded by the
// handwriting callout when configured.
func (r *resolver) media(ctx context.Context, key int64, uti, summary string) (string, error) {
	ref, ok, err := r.env.Attachments.ResolveAttachment(ctx, key, uti)
	if err != nil {
		return "", fmt.Errorf("resolving attachment %d: %w", key, err)
	}

	link := markerUnreadable
	if ok {
		r.log.Debug("attachment resolved", zap.Int64("key", key), zap.String("ref", ref))
		if r.env.Config.HTML {
			link = "\n<img src=\"" + encodeURI(ref) + "\">\n"
		} else {
			link = "![](" + encodeURI(ref) + ")"
		}
	} else {
		r.log.Debug("attachment unreadable", zap.Int64("key", key), zap.String("uti", uti))
	}

	if r.env.Config.IncludeHandwriting && summary != "" {
		link = "\n> [!Handwriting]-\n> " + strings.ReplaceAll(summary, "\n", "\n> ") + "\n\n" + link
	}
	return link, nil
}

func (r *resolver) table(ctx context.Context, id, uti string) (string, error) {
	payload, ok, err := r.env.Store.MergeableData(ctx, id)
	if err != nil {
		return "", fmt.Errorf("looking up table %s: %w", id, err)
	}
	if !ok || r.env.Decoder == nil {
		return r.unknown(uti, id), nil
	}

	table, err := r.env.Decoder.DecodeTable(payload)
	if err != nil {
		r.log.Warn("table payload undecodable", zap.String("id", id), zap.Error(err))
		return markerUnreadable, nil
	}
	return NewTableConverter(r.env, table).Format(ctx)
}

func (r *resolver) scan(ctx context.Context, id, uti string) (string, error) {
	payload, ok, err := r.env.Store.MergeableData(ctx, id)
	if err != nil {
		return "", fmt.Errorf("looking up scan %s: %w", id, err)
	}
	if !ok || r.env.Decoder == nil {
		return r.unknown(uti, id), nil
	}

	scan, err := r.env.Decoder.DecodeScan(payload)
	if err != nil {
		r.log.Warn("scan payload undecodable", zap.String("id", id), zap.Error(err))
		return markerUnreadable, nil
	}
	return newScanConverter(r, scan).Format(ctx)
}

func (r *resolver) unknown(uti, id string) string {
	r.log.Debug("unknown attachment", zap.String("uti", uti), zap.String("id", id))
	return unknownAttachment(uti)
}

// encodeURI percent-encodes a path reference so it survives inside
// Markdown link syntax.
func encodeURI(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return u.String()
	}
	return (&url.URL{Path: ref}).EscapedPath()
}
