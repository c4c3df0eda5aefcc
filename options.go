package propset

import (
	"log/slog"

	"github.com/arloliu/propset/variant"
)

// ReadOption configures Parse and Read.
type ReadOption = variant.DecodeOption

// WriteOption configures Write and Bytes.
type WriteOption = variant.EncodeOption

// Tally counts the unsupported variant types seen while reading.
type Tally = variant.Tally

// WithLogger sets the logger that reports unsupported types and tolerated malformations.
// The default discards everything.
func WithLogger(l *slog.Logger) ReadOption {
	return variant.WithLogger(l)
}

// WithUnsupportedTally records every unsupported variant type seen while reading in t.
func WithUnsupportedTally(t *Tally) ReadOption {
	return variant.WithTally(t)
}

// WithStrictTypes makes an unsupported variant type fail the read instead of being kept
// as an opaque value.
func WithStrictTypes(strict bool) ReadOption {
	return variant.WithStrictTypes(strict)
}

// WithOpaquePassthrough lets values kept opaque on read be written back byte for byte.
// Without it writing an opaque value fails.
func WithOpaquePassthrough(enabled bool) WriteOption {
	return variant.WithOpaquePassthrough(enabled)
}
