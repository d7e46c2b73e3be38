// Package tmx decodes Tiled layer-data payloads into the flat
// row-major arrays of packed tile references the grid engine consumes.
package tmx

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Layer data encodings.
const (
	EncodingCSV    = "csv"
	EncodingBase64 = "base64"
)

// Base64 payload compressions.
const (
	CompressionNone = ""
	CompressionGzip = "gzip"
	CompressionZlib = "zlib"
)

// DecodeLayerData decodes a TMX <data> payload. CSV payloads are
// comma-separated decimal GIDs; base64 payloads are little-endian
// uint32s, optionally gzip- or zlib-compressed.
func DecodeLayerData(content, encoding, compression string) ([]uint32, error) {
	switch encoding {
	case EncodingCSV:
		return decodeCSV(content)
	case EncodingBase64:
		return decodeBase64(content, compression)
	default:
		return nil, fmt.Errorf("unsupported layer data encoding %q", encoding)
	}
}

func decodeCSV(content string) ([]uint32, error) {
	fields := strings.Split(content, ",")
	gids := make([]uint32, 0, len(fields))
	for i, field := range fields {
		s := strings.TrimSpace(field)
		if s == "" {
			continue
		}
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing csv entry %d (%q): %w", i, s, err)
		}
		gids = append(gids, uint32(v))
	}
	return gids, nil
}

func decodeBase64(content, compression string) ([]uint32, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(content))
	if err != nil {
		return nil, fmt.Errorf("decoding base64 layer data: %w", err)
	}

	switch compression {
	case CompressionNone:
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("opening gzip layer data: %w", err)
		}
		defer r.Close()
		if raw, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("decompressing gzip layer data: %w", err)
		}
	case CompressionZlib:
		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("opening zlib layer data: %w", err)
		}
		defer r.Close()
		if raw, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("decompressing zlib layer data: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layer data compression %q", compression)
	}

	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("layer data length %d is not a multiple of 4", len(raw))
	}

	gids := make([]uint32, len(raw)/4)
	for i := range gids {
		gids[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return gids, nil
}

// EncodeLayerData is the inverse of DecodeLayerData for base64 without
// compression: the storage layer round-trips grids through it.
func EncodeLayerData(gids []uint32) string {
	raw := make([]byte, len(gids)*4)
	for i, gid := range gids {
		binary.LittleEndian.PutUint32(raw[i*4:], gid)
	}
	return base64.StdEncoding.EncodeToString(raw)
}
