// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notedoc

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/notes-export/internal/render"
	"github.com/pdiddy/notes-export/pkg/types"
)

// maxPayloadSize bounds a decompressed payload.
const maxPayloadSize = 32 << 20

var errEmptyPayload = errors.New("empty payload")

// Decoder decodes table and scan payloads stored as YAML, optionally
// gzip-compressed the way the notes database stores mergeable data.
type Decoder struct{}

var _ render.Decoder = Decoder{}

// DecodeTable implements render.Decoder.
func (Decoder) DecodeTable(payload []byte) (types.Table, error) {
	var t types.Table
	if err := decodePayload(payload, &t); err != nil {
		return types.Table{}, fmt.Errorf("decoding table: %w", err)
	}
	return t, nil
}

// DecodeScan implements render.Decoder.
func (Decoder) DecodeScan(payload []byte) (types.Scan, error) {
	var s types.Scan
	if err := decodePayload(payload, &s); err != nil {
		return types.Scan{}, fmt.Errorf("decoding scan: %w", err)
	}
	return s, nil
}

func decodePayload(payload []byte, v any) error {
	data, err := inflate(payload)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errEmptyPayload
	}
	return decodeStrict(data, v)
}

// inflate returns payload unchanged unless it starts with the gzip magic.
func inflate(payload []byte) ([]byte, error) {
	if len(payload) < 2 || payload[0] != 0x1f || payload[1] != 0x8b {
		return payload, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("opening gzip payload: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(io.LimitReader(zr, maxPayloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("inflating payload: %w", err)
	}
	if len(data) > maxPayloadSize {
		return nil, fmt.Errorf("payload exceeds %d bytes", maxPayloadSize)
	}
	return data, nil
}
