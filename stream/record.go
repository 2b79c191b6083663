package stream

import (
	"io"
	"iter"

	"github.com/arloliu/npystream/internal/pool"
	"github.com/arloliu/npystream/layout"
)

// Record is a structured stream whose rows are values of R, a struct or a
// fixed-size array of scalars. See layout.ForRecord for how R maps to columns.
//
// Note: Record is NOT thread-safe.
type Record[R any] struct {
	w         *Writer
	layout    *layout.RecordLayout
	row       []byte
	batchSize int
}

// CreateRecord creates (or truncates) the file at path and starts a stream
// of R rows. WithLabels overrides the labels derived from R.
func CreateRecord[R any](path string, opts ...Option) (*Record[R], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	rl, err := recordLayout[R](cfg)
	if err != nil {
		return nil, err
	}

	w, err := create(path, rl.Schema(), cfg)
	if err != nil {
		return nil, err
	}

	return newRecord[R](w, rl, cfg), nil
}

// NewRecord starts a stream of R rows on ws. See New for ownership of ws.
func NewRecord[R any](ws io.WriteSeeker, opts ...Option) (*Record[R], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	rl, err := recordLayout[R](cfg)
	if err != nil {
		return nil, err
	}

	w, err := newWriter(ws, rl.Schema(), cfg)
	if err != nil {
		return nil, err
	}

	return newRecord[R](w, rl, cfg), nil
}

// recordLayout consumes the label option, so the writer does not relabel.
func recordLayout[R any](cfg *config) (*layout.RecordLayout, error) {
	rl, err := layout.ForRecordOf[R](cfg.labels)
	if err != nil {
		return nil, err
	}
	cfg.labels = nil

	return rl, nil
}

func newRecord[R any](w *Writer, rl *layout.RecordLayout, cfg *config) *Record[R] {
	return &Record[R]{
		w:         w,
		layout:    rl,
		row:       make([]byte, rl.Schema().RowSize()),
		batchSize: cfg.batchSize,
	}
}

// Write appends one row.
func (r *Record[R]) Write(row R) error {
	if err := r.w.core.checkOpen(); err != nil {
		return err
	}

	layout.EncodeRecord(r.layout, r.row, &row)

	return r.w.core.append(r.row, 1)
}

// WriteSlice appends rows, packing them into a pooled buffer and issuing one
// write per batch of up to the configured batch buffer size.
func (r *Record[R]) WriteSlice(rows []R) error {
	c := r.w.core
	if err := c.checkOpen(); err != nil {
		return err
	}

	if len(rows) == 0 {
		return nil
	}

	rowSize := c.schema.RowSize()
	perBatch := max(1, r.batchSize/rowSize)

	bb := pool.GetBatchBuffer()
	defer pool.PutBatchBuffer(bb)

	for start := 0; start < len(rows); start += perBatch {
		end := min(start+perBatch, len(rows))

		bb.Reset()
		for i := start; i < end; i++ {
			layout.EncodeRecord(r.layout, bb.ExtendOrGrow(rowSize), &rows[i])
		}

		if err := c.append(bb.Bytes(), uint64(end-start)); err != nil {
			return err
		}
	}

	return nil
}

// WriteSeq appends every row produced by seq, one write per row.
// It stops at the first error.
func (r *Record[R]) WriteSeq(seq iter.Seq[R]) error {
	for row := range seq {
		if err := r.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// Close finalizes the stream. See Writer.Close.
func (r *Record[R]) Close() error {
	return r.w.Close()
}

// Count returns the number of rows written so far.
func (r *Record[R]) Count() uint64 {
	return r.w.Count()
}

// Layout returns the row layout derived from R.
func (r *Record[R]) Layout() *layout.RecordLayout {
	return r.layout
}

// Writer returns the underlying untyped writer.
func (r *Record[R]) Writer() *Writer {
	return r.w
}
