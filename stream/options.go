package stream

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/npystream/errs"
	"github.com/arloliu/npystream/format"
	"github.com/arloliu/npystream/internal/options"
	"github.com/arloliu/npystream/internal/pool"
)

// Option configures a stream at construction.
type Option = options.Option[*config]

type config struct {
	labels    []string
	order     format.MemoryOrder
	logger    *slog.Logger
	batchSize int
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		order:     format.OrderC,
		logger:    slog.New(slog.DiscardHandler),
		batchSize: pool.BatchBufferDefaultSize,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLabels sets the column labels. The number of labels must match the
// number of columns; a single label on a scalar stream makes it a one-column
// structured stream.
func WithLabels(labels ...string) Option {
	return options.NoError(func(c *config) {
		c.labels = append([]string(nil), labels...)
	})
}

// WithMemoryOrder sets the 'fortran_order' flag of the header.
// Defaults to format.OrderC.
func WithMemoryOrder(order format.MemoryOrder) Option {
	return options.New(func(c *config) error {
		if !order.Valid() {
			return fmt.Errorf("%w: %v", errs.ErrInvalidMemoryOrder, order)
		}
		c.order = order

		return nil
	})
}

// WithLogger sets the logger for stream lifecycle events.
// Streams are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithBatchBufferSize sets the largest number of bytes a record slice write
// assembles before issuing one write. Defaults to 64KiB.
func WithBatchBufferSize(size int) Option {
	return options.New(func(c *config) error {
		if size <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidBufferSize, size)
		}
		c.batchSize = size

		return nil
	})
}
