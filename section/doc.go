// Package section renders the header of a .npy file.
//
// # Header Format
//
// A header is a fixed 10-byte preamble followed by a textual dictionary:
//
//	Bytes  | Field          | Description
//	-------|----------------|---------------------------------------------
//	0      | magic          | 0x93
//	1-5    | format name    | ASCII "NUMPY"
//	6      | major version  | 0x01
//	7      | minor version  | 0x00
//	8-9    | dictionary len | uint16, little-endian on every host
//	10-    | dictionary     | ASCII, space padded, ends with '\n'
//
// The whole header is a multiple of 16 bytes. The dictionary takes one of two
// shapes, depending on whether the schema is structured:
//
//	{'descr': '<f8', 'fortran_order': False, 'shape': (1000,), }
//	{'descr': [('x', '<i4'), ('y', '<i4')], 'fortran_order': False, 'shape': (1023,), }
//
// The first character of each type string is the endianness tag of the host
// (see package endian). Single-element tuples and single-element descr lists
// carry a trailing comma.
//
// # Reservation and Patching
//
// A stream does not know its final element count when it starts writing, so
// it first writes a placeholder header rendered with PlaceholderCount, the
// largest count possible. No real count renders more decimal digits, so the
// placeholder is never shorter than the final header. On close the stream
// renders the real header and widens it with PadTo to exactly the reserved
// length before writing it over the placeholder:
//
//	reserved, _ := section.RenderPlaceholder(schema, format.OrderC)
//	// ... write reserved, then data ...
//	final, _ := section.Render([]uint64{count}, schema, format.OrderC)
//	patched, _ := final.PadTo(reserved.Len())
//
// Reading headers is not supported.
package section
