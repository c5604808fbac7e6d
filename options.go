package typedkv

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/typedkv/endian"
	"github.com/arloliu/typedkv/internal/options"
)

// DefaultQuaternionTolerance is the maximum distance from 1.0 at which the
// norm of a four-component value is still taken as a unit quaternion.
const DefaultQuaternionTolerance = 1e-3

// Option configures a Codec.
type Option = options.Option[*Codec]

// WithLogger sets the logger used for soft-failed decodes and bulk
// operations. A nil logger is ignored; the default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithQuaternionTolerance sets how far from 1.0 the norm of a four-component
// value may be for DetectType to classify it as a Quaternion rather than a Color.
//
// Parameters:
//   - tol: Non-negative tolerance (default DefaultQuaternionTolerance)
//
// Returns:
//   - Option: Fails for a negative, NaN or infinite tolerance
func WithQuaternionTolerance(tol float64) Option {
	return options.New(func(c *Codec) error {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			return fmt.Errorf("invalid quaternion tolerance %v", tol)
		}
		c.tolerance = tol

		return nil
	})
}

// WithWordCodec overrides the word codec used for every 4-byte component.
// Only tests simulating another host byte order need this.
func WithWordCodec(words endian.WordCodec) Option {
	return options.NoError(func(c *Codec) {
		c.words = words
	})
}
