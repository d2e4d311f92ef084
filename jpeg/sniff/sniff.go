// Package sniff recognizes vendor payloads embedded in JPEG application data
// segments: SPIFF headers and directory entries, HP JPEG-LS color space and
// color transform extensions, the Adobe APP14 segment and Photoshop image
// resource blocks with their nested IPTC-IIM records.
//
// Sniffers work on a payload that has already been read from the stream.
// A sniffer whose structural precondition does not hold returns false and
// has no other effect.
package sniff

import (
	"fmt"

	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// Padding selects how Photoshop resource blocks are aligned.
type Padding int

const (
	// PadEven pads the Pascal resource name (length byte included) and the
	// resource data to an even number of bytes. An empty name takes 2 bytes.
	PadEven Padding = iota
	// PadNone reads names and data without alignment. An empty name takes
	// 1 byte.
	PadNone
)

func (p Padding) String() string {
	switch p {
	case PadEven:
		return "even"
	case PadNone:
		return "none"
	}
	return fmt.Sprintf("Padding(%d)", int(p))
}

// ParsePadding converts "even" or "none" to a Padding.
func ParsePadding(s string) (Padding, error) {
	switch s {
	case "even":
		return PadEven, nil
	case "none":
		return PadNone, nil
	}
	return PadEven, fmt.Errorf("invalid padding %q (must be even or none)", s)
}

// Options controls the sniffers.
type Options struct {
	Padding Padding
}

// SubFormat is a decoded embedded payload.
type SubFormat interface {
	// Report emits the decoded fields. base is the stream offset of the
	// first payload byte.
	Report(base int64, e *report.Emitter)
}

// Sniffer tries to decode a payload as one sub-format.
type Sniffer func(payload []byte, opts Options) (SubFormat, bool)

// Candidate sniffers per APPn index, in precedence order.
var appSniffers = map[int][]Sniffer{
	7:  {sniffHPColorSpace},
	8:  {sniffSpiffHeader, sniffSpiffEndOfDirectory, sniffHPColorTransform},
	13: {sniffPhotoshop},
	14: {sniffAdobe},
}

// ForApp returns the sniffer chain for application segment n (0-15).
func ForApp(n int) []Sniffer {
	return appSniffers[n]
}

// Run applies the chain to payload and returns the first match.
func Run(chain []Sniffer, payload []byte, opts Options) (SubFormat, bool) {
	for _, s := range chain {
		if f, ok := s(payload, opts); ok {
			return f, true
		}
	}
	return nil, false
}

func sniffSpiffHeader(p []byte, _ Options) (SubFormat, bool) {
	if h, ok := DecodeSpiffHeader(p); ok {
		return h, true
	}
	return nil, false
}

func sniffSpiffEndOfDirectory(p []byte, _ Options) (SubFormat, bool) {
	if d, ok := DecodeSpiffEndOfDirectory(p); ok {
		return d, true
	}
	return nil, false
}

func sniffHPColorTransform(p []byte, _ Options) (SubFormat, bool) {
	if x, ok := DecodeHPColorTransform(p); ok {
		return x, true
	}
	return nil, false
}

func sniffHPColorSpace(p []byte, _ Options) (SubFormat, bool) {
	if c, ok := DecodeHPColorSpace(p); ok {
		return c, true
	}
	return nil, false
}

func sniffAdobe(p []byte, _ Options) (SubFormat, bool) {
	if a, ok := DecodeAdobe(p); ok {
		return a, true
	}
	return nil, false
}

func sniffPhotoshop(p []byte, opts Options) (SubFormat, bool) {
	if irb, ok := DecodePhotoshop(p, opts.Padding); ok {
		return irb, true
	}
	return nil, false
}

// lookup returns the table entry for v, or fallback.
func lookup(table map[uint8]string, v uint8, fallback string) string {
	if name, ok := table[v]; ok {
		return name
	}
	return fallback
}
