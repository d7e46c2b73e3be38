package tmx

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packGIDs(gids []uint32) []byte {
	raw := make([]byte, len(gids)*4)
	for i, gid := range gids {
		binary.LittleEndian.PutUint32(raw[i*4:], gid)
	}
	return raw
}

func TestDecodeCSV(t *testing.T) {
	content := "0, 7,\n0, 3\n"
	gids, err := DecodeLayerData(content, EncodingCSV, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 7, 0, 3}, gids)
}

func TestDecodeCSVWithFlipBits(t *testing.T) {
	// 0x80000005: horizontal flip + raw id 5.
	gids, err := DecodeLayerData("2147483653", EncodingCSV, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x80000005}, gids)
}

func TestDecodeCSVInvalid(t *testing.T) {
	_, err := DecodeLayerData("1,two,3", EncodingCSV, CompressionNone)
	assert.Error(t, err)
}

func TestDecodeBase64(t *testing.T) {
	want := []uint32{0, 7, 0, 3}
	content := base64.StdEncoding.EncodeToString(packGIDs(want))

	gids, err := DecodeLayerData(content, EncodingBase64, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, want, gids)
}

func TestDecodeBase64Gzip(t *testing.T) {
	want := []uint32{1, 2, 3, 0x80000005}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(packGIDs(want))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content := base64.StdEncoding.EncodeToString(buf.Bytes())
	gids, err := DecodeLayerData(content, EncodingBase64, CompressionGzip)
	require.NoError(t, err)
	assert.Equal(t, want, gids)
}

func TestDecodeBase64Zlib(t *testing.T) {
	want := []uint32{42, 0, 42}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(packGIDs(want))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content := base64.StdEncoding.EncodeToString(buf.Bytes())
	gids, err := DecodeLayerData(content, EncodingBase64, CompressionZlib)
	require.NoError(t, err)
	assert.Equal(t, want, gids)
}

func TestDecodeBase64TruncatedPayload(t *testing.T) {
	content := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	_, err := DecodeLayerData(content, EncodingBase64, CompressionNone)
	assert.Error(t, err)
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := DecodeLayerData("", "hex", CompressionNone)
	assert.Error(t, err)

	_, err = DecodeLayerData("", EncodingBase64, "zstd")
	assert.Error(t, err)
}

func TestEncodeLayerDataRoundTrip(t *testing.T) {
	want := []uint32{0, 7, 0x80000005, 3}
	gids, err := DecodeLayerData(EncodeLayerData(want), EncodingBase64, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, want, gids)
}
