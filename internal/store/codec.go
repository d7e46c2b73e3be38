package store

import (
	"encoding/binary"
	"fmt"
)

// packWords serializes packed tile references into the byte layout
// stored in the database: 4 bytes per reference,
// little-endian, same as the editor's base64 tile data.
func packWords(words []uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// unpackWords is the inverse of packWords.
func unpackWords(data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("tile data length %d is not a multiple of 4", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[4*i:])
	}
	return words, nil
}
