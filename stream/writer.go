package stream

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/arloliu/npystream/dtype"
	"github.com/arloliu/npystream/errs"
	"github.com/arloliu/npystream/format"
	"github.com/arloliu/npystream/layout"
	"github.com/arloliu/npystream/section"
)

// Writer is an open .npy stream with an explicit schema.
//
// Rows are appended with WriteRow or WriteRaw; Close finalizes the header
// with the number of rows written. The typed front-ends Scalar and Record
// wrap a Writer for compile-time checked element and row types.
//
// Note: The Writer is NOT thread-safe. Each Writer should be used by a single goroutine.
type Writer struct {
	core    *core
	cleanup runtime.Cleanup
}

// core holds the stream state. It is kept apart from Writer so a cleanup
// attached to the Writer can finalize it once the Writer is unreachable.
type core struct {
	ws     io.WriteSeeker
	closer io.Closer
	name   string
	schema *layout.Schema
	order  format.MemoryOrder
	logger *slog.Logger

	headerEnd int    // reserved header length, start of the data region
	count     uint64 // rows written so far
	closed    bool

	row []byte // scratch row for WriteRow
}

// Create creates (or truncates) the file at path and starts a stream of rows
// described by schema.
//
// The header is reserved for the largest possible row count before any row is
// written, so the data region starts at a fixed offset. The file is owned by
// the Writer and closed by Close. If a Writer becomes unreachable without
// Close, its header is still finalized by a runtime cleanup, but callers
// should not rely on that: always Close.
//
// Schema and option errors are reported before the file is opened.
func Create(path string, schema *layout.Schema, opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return create(path, schema, cfg)
}

// New starts a stream on ws. The header is written at offset 0 of ws; any
// existing content of ws is overwritten, but not truncated.
//
// The caller keeps ownership of ws: Close finalizes the header and leaves
// ws positioned at its end, without closing it. As with Create, a Writer
// dropped without Close has its header finalized by a runtime cleanup, so ws
// must stay usable until Close is called or the Writer is unreachable.
func New(ws io.WriteSeeker, schema *layout.Schema, opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newWriter(ws, schema, cfg)
}

func create(path string, schema *layout.Schema, cfg *config) (*Writer, error) {
	schema, reserved, err := prepare(schema, cfg)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	c, err := start(f, path, schema, reserved, cfg)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	c.closer = f

	return attach(c), nil
}

func newWriter(ws io.WriteSeeker, schema *layout.Schema, cfg *config) (*Writer, error) {
	if ws == nil {
		return nil, errors.New("nil io.WriteSeeker")
	}

	schema, reserved, err := prepare(schema, cfg)
	if err != nil {
		return nil, err
	}

	if _, err := ws.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start: %w", err)
	}

	c, err := start(ws, "", schema, reserved, cfg)
	if err != nil {
		return nil, err
	}

	return attach(c), nil
}

// attach wraps c in a Writer whose cleanup closes c once the Writer is unreachable.
func attach(c *core) *Writer {
	w := &Writer{core: c}
	w.cleanup = runtime.AddCleanup(w, (*core).finalize, c)

	return w
}

// prepare applies label options to schema and renders the placeholder header.
// Nothing is written.
func prepare(schema *layout.Schema, cfg *config) (*layout.Schema, section.Header, error) {
	if schema == nil {
		return nil, nil, errs.ErrEmptySchema
	}

	if len(cfg.labels) > 0 {
		relabeled, err := schema.Relabel(cfg.labels)
		if err != nil {
			return nil, nil, err
		}
		schema = relabeled
	}

	reserved, err := section.RenderPlaceholder(schema, cfg.order)
	if err != nil {
		return nil, nil, err
	}

	return schema, reserved, nil
}

func start(ws io.WriteSeeker, name string, schema *layout.Schema, reserved section.Header, cfg *config) (*core, error) {
	if _, err := ws.Write(reserved); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	c := &core{
		ws:        ws,
		name:      name,
		schema:    schema,
		order:     cfg.order,
		logger:    cfg.logger,
		headerEnd: reserved.Len(),
		row:       make([]byte, schema.RowSize()),
	}

	c.logger.Debug("stream opened",
		"name", name,
		"descr", describe(schema),
		"row_size", schema.RowSize(),
		"header_len", c.headerEnd,
	)

	return c, nil
}

// WriteRow appends one row given as one value per column.
//
// Each value's type must map to exactly the column's descriptor: an int64
// value does not fill an int32 column.
//
// Returns:
//   - errs.ErrRowArityMismatch if the number of values differs from the column count
//   - errs.ErrRowTypeMismatch or errs.ErrUnsupportedType for a mismatched value
//   - errs.ErrStreamClosed after Close
func (w *Writer) WriteRow(values ...any) error {
	c := w.core
	if c.closed {
		return errs.ErrStreamClosed
	}

	if len(values) != c.schema.NumColumns() {
		return fmt.Errorf("%w: got %d values, want %d", errs.ErrRowArityMismatch, len(values), c.schema.NumColumns())
	}

	for i, v := range values {
		d, err := dtype.FromValue(v)
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}

		want := c.schema.Descriptor(i)
		if d != want {
			return fmt.Errorf("%w: column %d is %s, got %s (%T)", errs.ErrRowTypeMismatch, i, want.Code(), d.Code(), v)
		}

		off := c.schema.Offset(i)
		if err := dtype.PutValue(c.row[off:off+want.Width], v); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}

	return c.append(c.row, 1)
}

// WriteRaw appends rows that are already encoded in the packed layout.
// len(rows) must be a multiple of the schema row size.
func (w *Writer) WriteRaw(rows []byte) error {
	c := w.core
	if c.closed {
		return errs.ErrStreamClosed
	}

	rowSize := c.schema.RowSize()
	if len(rows)%rowSize != 0 {
		return fmt.Errorf("%w: %d bytes, row size %d", errs.ErrRowSizeMismatch, len(rows), rowSize)
	}

	if len(rows) == 0 {
		return nil
	}

	return c.append(rows, uint64(len(rows)/rowSize))
}

// Close finalizes the header with the number of rows written and, for streams
// opened with Create, closes the file.
//
// Close is idempotent: calls after the first return nil and do not touch the
// output again. The output is released even when the header patch fails.
func (w *Writer) Close() error {
	w.cleanup.Stop()

	return w.core.close()
}

// Count returns the number of rows written so far.
func (w *Writer) Count() uint64 {
	return w.core.count
}

// HeaderLen returns the reserved header length, which is also the byte offset
// of the first row.
func (w *Writer) HeaderLen() int {
	return w.core.headerEnd
}

// Schema returns the row schema of the stream.
func (w *Writer) Schema() *layout.Schema {
	return w.core.schema
}

// Closed reports whether Close has been called.
func (w *Writer) Closed() bool {
	return w.core.closed
}

// append writes p, holding rows whole rows, at the end of the stream.
func (c *core) append(p []byte, rows uint64) error {
	if c.closed {
		return errs.ErrStreamClosed
	}

	if rows > math.MaxUint64-c.count {
		return errs.ErrCountOverflow
	}

	if _, err := c.ws.Write(p); err != nil {
		return fmt.Errorf("write %d rows: %w", rows, err)
	}
	c.count += rows

	return nil
}

func (c *core) checkOpen() error {
	if c.closed {
		return errs.ErrStreamClosed
	}

	return nil
}

func (c *core) close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.patchHeader()

	if c.closer != nil {
		if cerr := c.closer.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close %s: %w", c.name, cerr))
		}
	}

	if err != nil {
		c.logger.Error("stream close failed", "name", c.name, "values_written", c.count, "error", err)
		return err
	}

	c.logger.Debug("stream closed", "name", c.name, "values_written", c.count, "header_len", c.headerEnd)

	return nil
}

// patchHeader overwrites the reserved header with one carrying the real count.
// Bytes at or beyond headerEnd are never touched.
func (c *core) patchHeader() error {
	h, err := section.Render([]uint64{c.count}, c.schema, c.order)
	if err != nil {
		return fmt.Errorf("render header: %w", err)
	}

	patched, err := h.PadTo(c.headerEnd)
	if err != nil {
		return err
	}

	if patched.Len() != c.headerEnd {
		panic(fmt.Sprintf("stream: patched header is %d bytes, reserved %d", patched.Len(), c.headerEnd))
	}

	if _, err := c.ws.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek to header: %w", err)
	}

	if _, err := c.ws.Write(patched); err != nil {
		return fmt.Errorf("patch header: %w", err)
	}

	if c.closer == nil {
		if _, err := c.ws.Seek(0, io.SeekEnd); err != nil {
			return fmt.Errorf("seek to end: %w", err)
		}
	}

	return nil
}

// finalize runs as a runtime cleanup for streams dropped without Close.
func (c *core) finalize() {
	if c.closed {
		return
	}

	c.logger.Warn("stream finalized without Close", "name", c.name, "values_written", c.count)
	_ = c.close()
}

func describe(schema *layout.Schema) string {
	if !schema.Structured() {
		return schema.Descriptor(0).String()
	}

	var sb strings.Builder
	for i := range schema.NumColumns() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(schema.Label(i))
		sb.WriteByte(':')
		sb.WriteString(schema.Descriptor(i).String())
	}

	return sb.String()
}
