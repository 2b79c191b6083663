// Package layout computes the packed binary layout of npy rows.
//
// A Schema is an ordered list of element descriptors, optionally labeled. From
// it the layout engine derives, once, each column's type code, byte width and
// byte offset inside a row, plus the total row size. Columns are tightly packed:
// offsets are the exclusive prefix sum of widths, with no alignment padding.
//
//	schema, _ := layout.NewSchema(
//	    []dtype.Descriptor{dtype.Of[int32](), dtype.Of[int32](), dtype.Of[float64]()},
//	    []string{"x", "y", "v"},
//	)
//	schema.Offsets() // [0 4 8]
//	schema.RowSize() // 16
//
// A Schema is immutable after construction and safe for concurrent use.
package layout

import (
	"fmt"
	"strconv"

	"github.com/arloliu/npystream/dtype"
	"github.com/arloliu/npystream/errs"
	"github.com/arloliu/npystream/internal/collision"
)

// Schema is the immutable row layout of a stream.
type Schema struct {
	descs   []dtype.Descriptor
	labels  []string
	offsets []int
	rowSize int
}

// NewSchema builds a schema from descriptors and optional labels.
//
// With no labels, a single descriptor yields a plain (non-structured) schema
// and several descriptors yield a structured schema labeled f0, f1, ... .
// With labels, their count must equal the descriptor count and the schema is
// structured even for a single column.
//
// Returns:
//   - errs.ErrEmptySchema if descs is empty
//   - errs.ErrUnsupportedType if a descriptor is not a valid element type
//   - errs.ErrLabelCountMismatch if labels and descriptors differ in count
//   - errs.ErrInvalidLabel or errs.ErrDuplicateLabel for bad labels
func NewSchema(descs []dtype.Descriptor, labels []string) (*Schema, error) {
	if len(labels) == 0 && len(descs) > 1 {
		labels = AutoLabels(len(descs))
	}

	return newSchema(descs, labels)
}

// NewStructuredSchema is like NewSchema but always produces a structured
// schema, generating labels when none are given.
func NewStructuredSchema(descs []dtype.Descriptor, labels []string) (*Schema, error) {
	if len(labels) == 0 {
		labels = AutoLabels(len(descs))
	}

	return newSchema(descs, labels)
}

func newSchema(descs []dtype.Descriptor, labels []string) (*Schema, error) {
	if len(descs) == 0 {
		return nil, errs.ErrEmptySchema
	}

	if len(labels) != 0 && len(labels) != len(descs) {
		return nil, fmt.Errorf("%w: %d labels for %d columns", errs.ErrLabelCountMismatch, len(labels), len(descs))
	}

	for i, d := range descs {
		if !d.Valid() {
			return nil, fmt.Errorf("%w: column %d is %c%d", errs.ErrUnsupportedType, i, d.Class, d.Width)
		}
	}

	s := &Schema{
		descs:   append([]dtype.Descriptor(nil), descs...),
		offsets: make([]int, len(descs)),
	}

	if len(labels) > 0 {
		tracker := collision.NewTracker(len(labels))
		for _, label := range labels {
			if err := tracker.Track(label); err != nil {
				return nil, err
			}
		}
		s.labels = append([]string(nil), tracker.Labels()...)
	}

	for i, d := range s.descs {
		s.offsets[i] = s.rowSize
		s.rowSize += d.Width
	}

	return s, nil
}

// AutoLabels returns the default column labels f0 .. f{n-1}.
func AutoLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "f" + strconv.Itoa(i)
	}

	return labels
}

// Relabel returns a copy of the schema with new labels.
// The result is always structured.
func (s *Schema) Relabel(labels []string) (*Schema, error) {
	return NewStructuredSchema(s.descs, labels)
}

// NumColumns returns the number of columns per row.
func (s *Schema) NumColumns() int {
	return len(s.descs)
}

// Structured reports whether the header describes the dtype as a list of
// labeled fields rather than a single type string.
func (s *Schema) Structured() bool {
	return len(s.labels) > 0
}

// Descriptor returns the descriptor of column i.
func (s *Schema) Descriptor(i int) dtype.Descriptor {
	return s.descs[i]
}

// Descriptors returns a copy of the column descriptors.
func (s *Schema) Descriptors() []dtype.Descriptor {
	return append([]dtype.Descriptor(nil), s.descs...)
}

// Labels returns a copy of the column labels, or nil for a plain schema.
func (s *Schema) Labels() []string {
	if s.labels == nil {
		return nil
	}

	return append([]string(nil), s.labels...)
}

// Label returns the label of column i, or "" for a plain schema.
func (s *Schema) Label(i int) string {
	if s.labels == nil {
		return ""
	}

	return s.labels[i]
}

// Codes returns the type class code of each column.
func (s *Schema) Codes() []byte {
	codes := make([]byte, len(s.descs))
	for i, d := range s.descs {
		codes[i] = byte(d.Class)
	}

	return codes
}

// Widths returns the byte width of each column.
func (s *Schema) Widths() []int {
	widths := make([]int, len(s.descs))
	for i, d := range s.descs {
		widths[i] = d.Width
	}

	return widths
}

// Offset returns the byte offset of column i within a row.
func (s *Schema) Offset(i int) int {
	return s.offsets[i]
}

// Offsets returns a copy of the column byte offsets.
func (s *Schema) Offsets() []int {
	return append([]int(nil), s.offsets...)
}

// RowSize returns the number of bytes in one encoded row.
func (s *Schema) RowSize() int {
	return s.rowSize
}
