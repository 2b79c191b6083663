// Package npystream writes NumPy .npy files incrementally, without knowing the
// number of elements up front.
//
// A stream reserves a header large enough for any element count, appends
// element data as it arrives and rewrites the header in place on Close. The
// resulting file loads with numpy.load like any other .npy file.
//
// # Core Features
//
//   - Scalar streams of bool, signed and unsigned integers, floats and complex numbers
//   - Structured streams from Go structs or fixed-size arrays, one column per field
//   - Column labels from `npy:"name"` struct tags, options or generated f0, f1, ...
//   - Appends of single values, slices (one write per slice) and iter.Seq sequences
//   - Output to a path or any io.WriteSeeker
//   - Optional slog logging of stream lifecycle events
//
// # Basic Usage
//
// Streaming scalars:
//
//	s, err := npystream.Create[float32]("float.npy")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, v := range readings {
//	    if err := s.Write(v); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	if err := s.Close(); err != nil {
//	    log.Fatal(err)
//	}
//
// Streaming structured rows:
//
//	type point struct {
//	    X int32 `npy:"x"`
//	    Y int32 `npy:"y"`
//	}
//
//	r, err := npystream.CreateRecords[point]("points.npy")
//	...
//	r.Write(point{X: 1, Y: 2})
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the stream package.
// For io.WriteSeeker targets, explicit schemas and pre-encoded rows, use the
// stream package directly.
package npystream

import (
	"errors"

	"github.com/arloliu/npystream/dtype"
	"github.com/arloliu/npystream/layout"
	"github.com/arloliu/npystream/stream"
)

// Create creates (or truncates) the file at path and starts a stream of T values.
//
// Parameters:
//   - path: Output file path
//   - opts: Optional configuration (see stream.Option)
//
// Available options:
//   - stream.WithLabels(name): single label, writes a one-column structured array
//   - stream.WithMemoryOrder(format.RowMajor|format.ColumnMajor)
//   - stream.WithLogger(logger)
//
// Example:
//
//	s, err := npystream.Create[uint32]("unsigned.npy")
func Create[T dtype.Scalar](path string, opts ...stream.Option) (*stream.Scalar[T], error) {
	return stream.CreateScalar[T](path, opts...)
}

// CreateRecords creates (or truncates) the file at path and starts a structured
// stream of R rows. R must be a struct of scalar fields or a fixed-size array of
// scalars.
//
// Example:
//
//	r, err := npystream.CreateRecords[[3]int32]("int-structured.npy",
//	    stream.WithLabels("x", "y", "z"),
//	)
func CreateRecords[R any](path string, opts ...stream.Option) (*stream.Record[R], error) {
	return stream.CreateRecord[R](path, opts...)
}

// CreateStructured creates (or truncates) the file at path and starts a
// structured stream with the given column types and labels. Rows are written
// with Writer.WriteRow, one value per column.
//
// A nil labels slice generates f0, f1, ... labels.
//
// Example:
//
//	w, err := npystream.CreateStructured("mixed.npy",
//	    []dtype.Descriptor{dtype.Of[int64](), dtype.Of[float32]()},
//	    []string{"id", "score"},
//	)
//	w.WriteRow(int64(1), float32(0.5))
func CreateStructured(path string, descs []dtype.Descriptor, labels []string, opts ...stream.Option) (*stream.Writer, error) {
	schema, err := layout.NewStructuredSchema(descs, labels)
	if err != nil {
		return nil, err
	}

	return stream.Create(path, schema, opts...)
}

// Save writes values to path as a complete one-dimensional array.
//
// Example:
//
//	err := npystream.Save("float.npy", []float64{1, 2, 3})
func Save[T dtype.Scalar](path string, values []T, opts ...stream.Option) error {
	s, err := Create[T](path, opts...)
	if err != nil {
		return err
	}

	return errors.Join(s.WriteSlice(values), s.Close())
}

// SaveRecords writes rows to path as a complete structured array.
func SaveRecords[R any](path string, rows []R, opts ...stream.Option) error {
	r, err := CreateRecords[R](path, opts...)
	if err != nil {
		return err
	}

	return errors.Join(r.WriteSlice(rows), r.Close())
}
