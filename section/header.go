package section

import (
	"fmt"
	"strconv"

	"github.com/arloliu/npystream/endian"
	"github.com/arloliu/npystream/errs"
	"github.com/arloliu/npystream/format"
	"github.com/arloliu/npystream/layout"
)

// Header is a fully rendered .npy header: preamble plus padded dictionary.
type Header []byte

// Render renders the header for an array of the given shape and schema,
// tagged with the host byte order.
//
// Returns:
//   - errs.ErrInvalidShape if shape is empty
//   - errs.ErrEmptySchema if schema is nil
//   - errs.ErrInvalidMemoryOrder if order is not C or Fortran
//   - errs.ErrHeaderTooLarge if the padded dictionary exceeds MaxDictLen bytes
func Render(shape []uint64, schema *layout.Schema, order format.MemoryOrder) (Header, error) {
	return render(shape, schema, order, endian.NativeTag())
}

// RenderPlaceholder renders the 1-D header with PlaceholderCount elements,
// the longest header the schema can produce.
func RenderPlaceholder(schema *layout.Schema, order format.MemoryOrder) (Header, error) {
	return Render([]uint64{PlaceholderCount}, schema, order)
}

func render(shape []uint64, schema *layout.Schema, order format.MemoryOrder, tag byte) (Header, error) {
	if len(shape) == 0 {
		return nil, errs.ErrInvalidShape
	}

	if schema == nil {
		return nil, errs.ErrEmptySchema
	}

	if !order.Valid() {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidMemoryOrder, order)
	}

	dict := make([]byte, 0, 64+24*schema.NumColumns())
	dict = append(dict, "{'descr': "...)
	dict = appendDescr(dict, schema, tag)
	dict = append(dict, ", 'fortran_order': "...)
	dict = append(dict, order.FortranOrder()...)
	dict = append(dict, ", 'shape': ("...)
	for i, n := range shape {
		if i > 0 {
			dict = append(dict, ", "...)
		}
		dict = strconv.AppendUint(dict, n, 10)
	}
	if len(shape) == 1 {
		dict = append(dict, ',')
	}
	dict = append(dict, "), }"...)

	return finalize(dict)
}

func appendDescr(dict []byte, schema *layout.Schema, tag byte) []byte {
	if !schema.Structured() {
		dict = append(dict, '\'')
		dict = append(dict, schema.Descriptor(0).Descr(tag)...)

		return append(dict, '\'')
	}

	n := schema.NumColumns()
	dict = append(dict, '[')
	for i := range n {
		dict = append(dict, "('"...)
		dict = append(dict, schema.Label(i)...)
		dict = append(dict, "', '"...)
		dict = append(dict, schema.Descriptor(i).Descr(tag)...)
		dict = append(dict, "')"...)
		if i+1 != n {
			dict = append(dict, ", "...)
		}
	}
	if n == 1 {
		dict = append(dict, ',')
	}

	return append(dict, ']')
}

// finalize pads dict so preamble+dict is a multiple of HeaderAlignment, ends
// it with a newline and prepends the preamble.
func finalize(dict []byte) (Header, error) {
	pad := HeaderAlignment - (PreambleSize+len(dict))%HeaderAlignment
	for range pad {
		dict = append(dict, ' ')
	}
	dict[len(dict)-1] = '\n'

	if len(dict) > MaxDictLen {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrHeaderTooLarge, len(dict))
	}

	h := make(Header, 0, PreambleSize+len(dict))
	h = append(h, MagicByte)
	h = append(h, MagicString...)
	h = append(h, MajorVersion, MinorVersion)
	h = endian.GetLittleEndianEngine().AppendUint16(h, uint16(len(dict)))
	h = append(h, dict...)

	return h, nil
}

// Len returns the total header length in bytes.
func (h Header) Len() int {
	return len(h)
}

// DictLen returns the dictionary length recorded in the preamble.
func (h Header) DictLen() int {
	return int(endian.GetLittleEndianEngine().Uint16(h[DictLenOffset:PreambleSize]))
}

// Dict returns the dictionary text including padding and the final newline.
func (h Header) Dict() []byte {
	return h[PreambleSize:]
}

// Bytes returns the raw header bytes.
func (h Header) Bytes() []byte {
	return h
}

// PadTo returns a copy of h widened to exactly size bytes by inserting spaces
// before the final newline, with the dictionary length field updated.
//
// Returns errs.ErrHeaderOverflow if h is already longer than size.
func (h Header) PadTo(size int) (Header, error) {
	if len(h) > size {
		return nil, fmt.Errorf("%w: header is %d bytes, reserved %d", errs.ErrHeaderOverflow, len(h), size)
	}

	if size-PreambleSize > MaxDictLen {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrHeaderTooLarge, size-PreambleSize)
	}

	out := make(Header, size)
	n := copy(out, h[:len(h)-1])
	for i := n; i < size-1; i++ {
		out[i] = ' '
	}
	out[size-1] = '\n'
	endian.GetLittleEndianEngine().PutUint16(out[DictLenOffset:PreambleSize], uint16(size-PreambleSize))

	return out, nil
}
