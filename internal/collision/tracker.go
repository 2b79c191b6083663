package collision

import (
	"fmt"
	"strings"

	"github.com/arloliu/npystream/errs"
	"github.com/arloliu/npystream/internal/hash"
)

// Tracker records the column labels of a structured schema and rejects
// duplicates. Labels are bucketed by their xxHash64; names sharing a bucket
// are compared directly, so a hash collision never rejects a distinct label.
type Tracker struct {
	buckets map[uint64][]string
	labels  []string
}

// NewTracker creates a new label tracker sized for n labels.
func NewTracker(n int) *Tracker {
	return &Tracker{
		buckets: make(map[uint64][]string, n),
		labels:  make([]string, 0, n),
	}
}

// Track adds a label.
//
// Returns:
//   - errs.ErrInvalidLabel if the label is empty or contains a quote, backslash
//     or newline, any of which would corrupt the header dictionary literal
//   - errs.ErrDuplicateLabel if the same label was already tracked
func (t *Tracker) Track(label string) error {
	if label == "" || strings.ContainsAny(label, "'\\\n") {
		return fmt.Errorf("%w: %q", errs.ErrInvalidLabel, label)
	}

	id := hash.ID(label)
	bucket := t.buckets[id]
	for _, existing := range bucket {
		if existing == label {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateLabel, label)
		}
	}

	t.buckets[id] = append(bucket, label)
	t.labels = append(t.labels, label)

	return nil
}

// Labels returns the tracked labels in insertion order.
func (t *Tracker) Labels() []string {
	return t.labels
}
