package stream

import (
	"io"
	"iter"
	"unsafe"

	"github.com/arloliu/npystream/dtype"
	"github.com/arloliu/npystream/layout"
)

// Scalar is a stream of single values of type T.
//
// Values are written in their native in-memory representation; no row buffer
// is involved, and WriteSlice hands the whole slice to the output in one write.
//
// Note: Scalar is NOT thread-safe.
type Scalar[T dtype.Scalar] struct {
	w       *Writer
	width   int
	scratch [16]byte
}

// CreateScalar creates (or truncates) the file at path and starts a stream of T.
// See Create for file ownership and header reservation.
func CreateScalar[T dtype.Scalar](path string, opts ...Option) (*Scalar[T], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	schema, err := scalarSchema[T]()
	if err != nil {
		return nil, err
	}

	w, err := create(path, schema, cfg)
	if err != nil {
		return nil, err
	}

	return newScalar[T](w), nil
}

// NewScalar starts a stream of T on ws. See New for ownership of ws.
func NewScalar[T dtype.Scalar](ws io.WriteSeeker, opts ...Option) (*Scalar[T], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	schema, err := scalarSchema[T]()
	if err != nil {
		return nil, err
	}

	w, err := newWriter(ws, schema, cfg)
	if err != nil {
		return nil, err
	}

	return newScalar[T](w), nil
}

func scalarSchema[T dtype.Scalar]() (*layout.Schema, error) {
	return layout.NewSchema([]dtype.Descriptor{dtype.Of[T]()}, nil)
}

func newScalar[T dtype.Scalar](w *Writer) *Scalar[T] {
	return &Scalar[T]{w: w, width: int(unsafe.Sizeof(*new(T)))}
}

// Write appends a single value.
func (s *Scalar[T]) Write(v T) error {
	b := s.scratch[:s.width]
	copy(b, unsafe.Slice((*byte)(unsafe.Pointer(&v)), s.width))

	return s.w.core.append(b, 1)
}

// WriteSlice appends a contiguous block of values with a single write.
func (s *Scalar[T]) WriteSlice(values []T) error {
	if len(values) == 0 {
		return s.w.core.checkOpen()
	}

	raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), len(values)*s.width)

	return s.w.core.append(raw, uint64(len(values)))
}

// WriteSeq appends every value produced by seq, one write per value.
// It stops at the first error.
func (s *Scalar[T]) WriteSeq(seq iter.Seq[T]) error {
	for v := range seq {
		if err := s.Write(v); err != nil {
			return err
		}
	}

	return nil
}

// Close finalizes the stream. See Writer.Close.
func (s *Scalar[T]) Close() error {
	return s.w.Close()
}

// Count returns the number of values written so far.
func (s *Scalar[T]) Count() uint64 {
	return s.w.Count()
}

// Writer returns the underlying untyped writer.
func (s *Scalar[T]) Writer() *Writer {
	return s.w
}
