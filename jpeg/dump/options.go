package dump

import (
	"fmt"

	"github.com/Patty-OFurniture/jpegdump/jpeg/sniff"
)

// Options controls a Dumper.
type Options struct {
	// IRBPadding selects the alignment rule for Photoshop resource names
	// and resource data inside APP13 segments.
	IRBPadding sniff.Padding

	// SkipUnknownSegments reads the length of DQT, DHT, DAC, DNL, DHP, EXP,
	// JPGn and SOFk segments and skips their payload. When false these
	// markers are reported by name only and their bytes are scanned like
	// any other data.
	SkipUnknownSegments bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		IRBPadding: sniff.PadEven,
	}
}

// Validate checks the options
func (o *Options) Validate() error {
	switch o.IRBPadding {
	case sniff.PadEven, sniff.PadNone:
	default:
		return fmt.Errorf("invalid IRB padding: %v", o.IRBPadding)
	}
	return nil
}

func (o *Options) sniffOptions() sniff.Options {
	return sniff.Options{Padding: o.IRBPadding}
}

// Option configures a Dumper.
type Option func(*Options)

// WithIRBPadding sets the Photoshop resource block alignment rule.
func WithIRBPadding(p sniff.Padding) Option {
	return func(o *Options) {
		o.IRBPadding = p
	}
}

// WithSkipUnknownSegments enables skipping the payload of length-prefixed
// segments that are not decoded.
func WithSkipUnknownSegments(skip bool) Option {
	return func(o *Options) {
		o.SkipUnknownSegments = skip
	}
}

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}
