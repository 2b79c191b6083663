package layout

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	"github.com/arloliu/npystream/dtype"
	"github.com/arloliu/npystream/errs"
)

// TagName is the struct tag key that sets a column label.
//
//	type Point struct {
//	    X int32   `npy:"x"`
//	    Y int32   `npy:"y"`
//	    W float64 `npy:"-"` // not written
//	}
const TagName = "npy"

// RecordLayout maps a Go row type (struct or fixed-size array of scalars) onto
// a structured schema. It records where each column lives inside the Go value
// so rows can be copied into the packed layout without reflection per row.
type RecordLayout struct {
	schema  *Schema
	rowType reflect.Type
	src     []uintptr
}

// ForRecord derives the layout of row type t.
//
// Struct fields become columns in declaration order. Fields named "_" or
// tagged `npy:"-"` are skipped; a field's label is its tag name (the part
// before any comma), or fK for column K when untagged. Arrays contribute one
// column per element, labeled f0 .. f{N-1}. Non-empty labels override the
// derived ones.
func ForRecord(t reflect.Type, labels []string) (*RecordLayout, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil> row type", errs.ErrUnsupportedType)
	}

	var (
		descs   []dtype.Descriptor
		derived []string
		src     []uintptr
	)

	switch t.Kind() { //nolint: exhaustive
	case reflect.Struct:
		for i := range t.NumField() {
			field := t.Field(i)
			tag := field.Tag.Get(TagName)
			if field.Name == "_" || tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")

			d, err := dtype.FromType(field.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}

			label := name
			if label == "" {
				label = "f" + strconv.Itoa(len(descs))
			}

			descs = append(descs, d)
			derived = append(derived, label)
			src = append(src, field.Offset)
		}
	case reflect.Array:
		elem, err := dtype.FromType(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("array element: %w", err)
		}

		for i := range t.Len() {
			descs = append(descs, elem)
			src = append(src, uintptr(i)*t.Elem().Size())
		}
		derived = AutoLabels(len(descs))
	default:
		return nil, fmt.Errorf("%w: row type %v must be a struct or array", errs.ErrUnsupportedType, t)
	}

	if len(labels) == 0 {
		labels = derived
	}

	schema, err := NewStructuredSchema(descs, labels)
	if err != nil {
		return nil, err
	}

	return &RecordLayout{schema: schema, rowType: t, src: src}, nil
}

// ForRecordOf derives the layout of R.
func ForRecordOf[R any](labels []string) (*RecordLayout, error) {
	return ForRecord(reflect.TypeFor[R](), labels)
}

// Schema returns the structured schema of the row type.
func (l *RecordLayout) Schema() *Schema {
	return l.schema
}

// RowType returns the Go row type this layout was derived from.
func (l *RecordLayout) RowType() reflect.Type {
	return l.rowType
}

// SourceOffsets returns the byte offset of each column inside the Go value.
func (l *RecordLayout) SourceOffsets() []uintptr {
	return append([]uintptr(nil), l.src...)
}

// EncodeRecord copies the columns of row into dst at their packed offsets.
//
// dst must be exactly RowSize bytes and R must be the row type of l; both are
// guaranteed by the stream front-ends and checked here as defects.
func EncodeRecord[R any](l *RecordLayout, dst []byte, row *R) {
	if len(dst) != l.schema.rowSize {
		panic(fmt.Sprintf("layout: row buffer is %d bytes, want %d", len(dst), l.schema.rowSize))
	}

	base := unsafe.Pointer(row)
	for i, off := range l.src {
		w := l.schema.descs[i].Width
		copy(dst[l.schema.offsets[i]:], unsafe.Slice((*byte)(unsafe.Add(base, off)), w))
	}
}
