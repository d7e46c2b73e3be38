package tilemap

// GID flip flag bits, packed into the top 3 bits of a 32-bit tile
// reference (TMX convention). The low 29 bits carry the raw id.
const (
	FlipHorizontalFlag uint32 = 1 << 31
	FlipVerticalFlag   uint32 = 1 << 30
	FlipDiagonalFlag   uint32 = 1 << 29

	flipMask = FlipHorizontalFlag | FlipVerticalFlag | FlipDiagonalFlag

	// MaxRawID is the largest id representable alongside the flip bits.
	MaxRawID = 1<<29 - 1
)

// FlipFlags carries the three independent flip transforms of a placed tile.
type FlipFlags struct {
	Horizontal bool
	Vertical   bool
	Diagonal   bool
}

// DecodeGID splits a packed tile reference into the raw id and flip flags.
func DecodeGID(packed uint32) (uint32, FlipFlags) {
	flags := FlipFlags{
		Horizontal: packed&FlipHorizontalFlag != 0,
		Vertical:   packed&FlipVerticalFlag != 0,
		Diagonal:   packed&FlipDiagonalFlag != 0,
	}
	return packed &^ flipMask, flags
}

// EncodeGID packs a raw id and flip flags back into a tile reference.
// The exact inverse of DecodeGID for any id <= MaxRawID.
func EncodeGID(id uint32, flags FlipFlags) uint32 {
	packed := id &^ flipMask
	if flags.Horizontal {
		packed |= FlipHorizontalFlag
	}
	if flags.Vertical {
		packed |= FlipVerticalFlag
	}
	if flags.Diagonal {
		packed |= FlipDiagonalFlag
	}
	return packed
}
