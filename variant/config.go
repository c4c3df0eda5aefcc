package variant

import (
	"log/slog"
	"slices"

	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/internal/options"
)

// Tally counts unsupported variant types seen while decoding.
// A nil *Tally ignores all additions.
type Tally struct {
	counts map[format.VarType]int
	total  int
}

// Add records one occurrence of vt.
func (t *Tally) Add(vt format.VarType) {
	if t == nil {
		return
	}
	if t.counts == nil {
		t.counts = make(map[format.VarType]int)
	}
	t.counts[vt]++
	t.total++
}

// Total returns the number of unsupported values seen.
func (t *Tally) Total() int {
	if t == nil {
		return 0
	}

	return t.total
}

// Count returns how often vt was seen.
func (t *Tally) Count(vt format.VarType) int {
	if t == nil {
		return 0
	}

	return t.counts[vt]
}

// Types returns the distinct unsupported types seen, in ascending order.
func (t *Tally) Types() []format.VarType {
	if t == nil {
		return nil
	}
	types := make([]format.VarType, 0, len(t.counts))
	for vt := range t.counts {
		types = append(types, vt)
	}
	slices.Sort(types)

	return types
}

var discardLogger = slog.New(slog.DiscardHandler)

// DecodeConfig holds the settings threaded through every decode call.
// The zero value is silent and lenient.
type DecodeConfig struct {
	logger *slog.Logger
	tally  *Tally
	strict bool
}

// DecodeOption configures a DecodeConfig.
type DecodeOption = options.Option[*DecodeConfig]

// NewDecodeConfig builds a DecodeConfig from opts.
func NewDecodeConfig(opts ...DecodeOption) (*DecodeConfig, error) {
	cfg := &DecodeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger
	}

	return cfg, nil
}

// WithLogger reports unsupported types to l at warn level. A nil logger disables reporting.
func WithLogger(l *slog.Logger) DecodeOption {
	return options.NoError(func(c *DecodeConfig) { c.logger = l })
}

// WithTally counts unsupported types in t.
func WithTally(t *Tally) DecodeOption {
	return options.NoError(func(c *DecodeConfig) { c.tally = t })
}

// WithStrictTypes makes unsupported types a decode error instead of an Opaque value.
func WithStrictTypes(strict bool) DecodeOption {
	return options.NoError(func(c *DecodeConfig) { c.strict = strict })
}

// Strict reports whether unsupported types fail decoding.
func (c *DecodeConfig) Strict() bool {
	return c != nil && c.strict
}

// Logger returns the configured logger, or a logger that discards everything.
func (c *DecodeConfig) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return discardLogger
	}

	return c.logger
}

// Tally returns the configured tally, possibly nil.
func (c *DecodeConfig) Tally() *Tally {
	if c == nil {
		return nil
	}

	return c.tally
}

// EncodeConfig holds the settings of an encode call.
type EncodeConfig struct {
	passthrough bool
}

// EncodeOption configures an EncodeConfig.
type EncodeOption = options.Option[*EncodeConfig]

// WithOpaquePassthrough allows Opaque values to be written back verbatim under their
// original type tag. Without it, encoding an Opaque value fails.
func WithOpaquePassthrough(enabled bool) EncodeOption {
	return options.NoError(func(c *EncodeConfig) { c.passthrough = enabled })
}

// NewEncodeConfig builds an EncodeConfig from opts.
func NewEncodeConfig(opts ...EncodeOption) (*EncodeConfig, error) {
	cfg := &EncodeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Passthrough reports whether Opaque values may be written.
func (c *EncodeConfig) Passthrough() bool {
	return c != nil && c.passthrough
}
