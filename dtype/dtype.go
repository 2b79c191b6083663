// Package dtype maps Go scalar types to npy element type descriptors.
//
// The set of accepted types is closed: booleans, fixed-width signed and unsigned
// integers, IEEE 754 floats and complex numbers. The Scalar constraint enforces
// the set at compile time for generic callers; FromType and FromValue enforce it
// at validation time for reflective callers and return errs.ErrUnsupportedType
// for anything else.
//
// Each accepted type maps to exactly one Descriptor, a type class code plus the
// in-memory byte width of the type:
//
//	bool       -> b1
//	int32      -> i4
//	uint16     -> u2
//	float64    -> f8
//	complex128 -> c16
package dtype

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/arloliu/npystream/endian"
	"github.com/arloliu/npystream/errs"
	"github.com/arloliu/npystream/format"
)

// Scalar is the closed set of Go types that can be written as npy elements.
//
// int and uint are accepted with their platform width (8 bytes on 64-bit hosts).
type Scalar interface {
	~bool |
		~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// Descriptor describes a single element type: its class code and byte width.
type Descriptor struct {
	Class format.TypeClass
	Width int
}

// Of returns the descriptor of T.
func Of[T Scalar]() Descriptor {
	d, err := FromType(reflect.TypeFor[T]())
	if err != nil {
		// unreachable: every type in the Scalar set has a mapping
		panic(fmt.Sprintf("dtype: no mapping for %v: %v", reflect.TypeFor[T](), err))
	}

	return d
}

// FromType returns the descriptor of the Go type t.
//
// Returns errs.ErrUnsupportedType if t is nil or not one of the accepted kinds.
func FromType(t reflect.Type) (Descriptor, error) {
	if t == nil {
		return Descriptor{}, fmt.Errorf("%w: <nil>", errs.ErrUnsupportedType)
	}

	class, ok := classOf(t.Kind())
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %v", errs.ErrUnsupportedType, t)
	}

	return Descriptor{Class: class, Width: int(t.Size())}, nil
}

// FromValue returns the descriptor of the dynamic type of v.
func FromValue(v any) (Descriptor, error) {
	return FromType(reflect.TypeOf(v))
}

// Valid reports whether d names a width that some accepted Go type has.
func (d Descriptor) Valid() bool {
	switch d.Class {
	case format.ClassBool:
		return d.Width == 1
	case format.ClassSigned, format.ClassUnsigned:
		return d.Width == 1 || d.Width == 2 || d.Width == 4 || d.Width == 8
	case format.ClassFloat:
		return d.Width == 4 || d.Width == 8
	case format.ClassComplex:
		return d.Width == 8 || d.Width == 16
	default:
		return false
	}
}

// Code returns the code without an endianness tag, e.g. "f8".
func (d Descriptor) Code() string {
	return string(rune(d.Class)) + strconv.Itoa(d.Width)
}

// Descr returns the type string used in the header dictionary with the given
// endianness tag, e.g. "<f8".
func (d Descriptor) Descr(tag byte) string {
	b := make([]byte, 0, 4)
	b = append(b, tag, byte(d.Class))
	b = strconv.AppendInt(b, int64(d.Width), 10)

	return string(b)
}

// String returns the type string tagged with the host byte order.
func (d Descriptor) String() string {
	return d.Descr(endian.NativeTag())
}

func classOf(k reflect.Kind) (format.TypeClass, bool) {
	switch k { //nolint: exhaustive
	case reflect.Bool:
		return format.ClassBool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return format.ClassSigned, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return format.ClassUnsigned, true
	case reflect.Float32, reflect.Float64:
		return format.ClassFloat, true
	case reflect.Complex64, reflect.Complex128:
		return format.ClassComplex, true
	default:
		return 0, false
	}
}
