// Package stream writes .npy files whose element count is not known in advance.
//
// # Lifecycle
//
// A stream is either Open or Closed:
//
//	Create/New ──► Open ──(Write*, WriteSlice, WriteSeq, WriteRow, WriteRaw)──► Open
//	                 │
//	                 └──Close──► Closed (terminal; further Close calls are no-ops)
//
// On construction the stream renders a placeholder header sized for the
// largest possible count and writes it, pinning the start of the data region.
// Every append writes encoded rows at the end of the output and bumps the
// count. Close renders the header again with the real count, pads it with
// spaces to exactly the reserved length and writes it over the placeholder.
// No byte of the data region is ever rewritten.
//
// A process that dies before Close leaves a file whose header still claims
// the placeholder count (18446744073709551615 elements).
//
// # Front-ends
//
//   - Scalar[T]: one value per row, T constrained to dtype.Scalar
//   - Record[R]: one struct or array value per row, columns derived by layout.ForRecord
//   - Writer:    explicit layout.Schema, rows given as ...any or pre-encoded bytes
//
// Example:
//
//	s, err := stream.CreateScalar[float32]("float.npy")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.WriteSlice(values); err != nil {
//	    return err
//	}
//
// Element data is written in the host byte order; the header records which.
package stream
