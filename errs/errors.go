// Package errs defines the sentinel errors returned by npystream packages.
//
// Callers should match errors with errors.Is; most call sites wrap these
// sentinels with additional context.
package errs

import "errors"

// Schema construction errors.
var (
	ErrEmptySchema        = errors.New("schema has no columns")
	ErrLabelCountMismatch = errors.New("labels size does not match number of elements in structured type")
	ErrDuplicateLabel     = errors.New("duplicate column label")
	ErrInvalidLabel       = errors.New("invalid column label")
	ErrUnsupportedType    = errors.New("unsupported element type")
)

// Header encoding errors.
var (
	ErrHeaderTooLarge     = errors.New("dictionary too large for .npy header")
	ErrHeaderOverflow     = errors.New("rendered header exceeds reserved header space")
	ErrInvalidShape       = errors.New("invalid array shape")
	ErrInvalidMemoryOrder = errors.New("invalid memory order")
)

// Stream errors.
var (
	ErrStreamClosed      = errors.New("stream already closed")
	ErrRowArityMismatch  = errors.New("row arity does not match schema")
	ErrRowTypeMismatch   = errors.New("row member type does not match schema")
	ErrRowSizeMismatch   = errors.New("raw data is not a whole number of rows")
	ErrCountOverflow     = errors.New("element count overflow")
	ErrInvalidBufferSize = errors.New("invalid batch buffer size")
)
