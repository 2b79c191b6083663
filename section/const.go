package section

import "math"

// Preamble fields, in file order.
const (
	MagicByte    = 0x93    // MagicByte is the first byte of every .npy file.
	MagicString  = "NUMPY" // MagicString follows the magic byte.
	MajorVersion = 0x01    // MajorVersion is the format major version written.
	MinorVersion = 0x00    // MinorVersion is the format minor version written.
)

// offset and section sizes in the header
const (
	PreambleSize     = 10                     // magic byte, name, version, dictionary length
	DictLenOffset    = 8                      // byte offset of the 2-byte little-endian dictionary length
	HeaderAlignment  = 16                     // preamble + dictionary is a multiple of this
	MaxDictLen       = math.MaxUint16         // largest dictionary the length field can describe
	PlaceholderCount = uint64(math.MaxUint64) // count rendered into the reserved header
)
