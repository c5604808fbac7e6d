package typedkv

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/hashicorp/go-multierror"

	"github.com/arloliu/typedkv/discovery"
	"github.com/arloliu/typedkv/format"
)

// Literal is a value in text form together with the logical type it encodes.
type Literal struct {
	Type format.LogicalType
	Text string
}

// Classify inspects every key the provider yields.
//
// Duplicate keys are dropped and Long companion keys are folded into their
// base key, so a Long shows up once. Foreign data never causes a failure; it
// is simply classified as whatever it most resembles.
//
// Returns:
//   - []Detection: One detection per distinct key, in provider order
func (c *Codec) Classify(p discovery.Provider) []Detection {
	keys := discovery.Normalize(p)

	out := make([]Detection, 0, len(keys))
	for _, key := range keys {
		out = append(out, c.Inspect(key))
	}

	c.logger.Debug("classified keys", slog.Int("count", len(out)))

	return out
}

// Import writes every literal in entries, in key order.
//
// A literal that fails to parse or encode is skipped and the rest are still
// written.
//
// Returns:
//   - error: Wraps a *multierror.Error holding one error per failed key, or nil
func (c *Codec) Import(entries map[string]Literal) error {
	var result *multierror.Error
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		lit := entries[key]
		if err := c.EncodeLiteral(key, lit.Type, lit.Text); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		c.logger.Warn("import finished with errors",
			slog.Int("failed", result.Len()),
			slog.Int("total", len(entries)),
		)

		return fmt.Errorf("import: %w", err)
	}

	return nil
}
