package sniff

import (
	"bytes"
	"encoding/binary"

	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// SPIFF header layout (ISO/IEC 10918-3 Annex F), offsets within the payload
const (
	spiffHeaderSize = 30

	spiffHighVersion           = 6
	spiffLowVersion            = 7
	spiffProfileID             = 8
	spiffComponentCount        = 9
	spiffHeight                = 10
	spiffWidth                 = 14
	spiffColorSpace            = 18
	spiffBitsPerSample         = 19
	spiffCompressionType       = 20
	spiffResolutionUnitsOffset = 21
	spiffVerticalRes           = 22
	spiffHorizontalRes         = 26
)

var spiffMagic = []byte("SPIFF")

var spiffColorSpaces = map[uint8]string{
	0:  "Bi-level black",
	1:  "ITU-R BT.709 Video",
	2:  "None",
	3:  "ITU-R BT.601-1. (RGB)",
	4:  "ITU-R BT.601-1. (video)",
	8:  "Gray-scale",
	9:  "Photo CD",
	10: "RGB",
	11: "CMY",
	12: "CMYK",
	13: "Transformed CMYK",
	14: "CIE 1976(L * a * b *)",
	15: "Bi-level white",
}

var spiffCompressionTypes = map[uint8]string{
	0: "Uncompressed",
	1: "Modified Huffman",
	2: "Modified READ",
	3: "Modified Modified READ",
	4: "ISO/IEC 11544 (JBIG)",
	5: "ISO/IEC 10918-1 or ISO/IEC 10918-3 (JPEG)",
	6: "ISO/IEC 14495-1 or ISO/IEC 14495-2 (JPEG-LS)",
}

var spiffResolutionUnits = map[uint8]string{
	0: "Aspect Ratio",
	1: "Dots per Inch",
	2: "Dots per Centimeter",
}

// SpiffHeader is a SPIFF header carried in an APP8 segment.
type SpiffHeader struct {
	HighVersion          uint8
	LowVersion           uint8
	ProfileID            uint8
	ComponentCount       uint8
	Height               uint32
	Width                uint32
	ColorSpace           uint8
	BitsPerSample        uint8
	CompressionType      uint8
	ResolutionUnits      uint8
	VerticalResolution   uint32
	HorizontalResolution uint32
}

// DecodeSpiffHeader decodes p if it is at least 30 bytes and starts with
// "SPIFF".
func DecodeSpiffHeader(p []byte) (*SpiffHeader, bool) {
	if len(p) < spiffHeaderSize || !bytes.HasPrefix(p, spiffMagic) {
		return nil, false
	}
	be := binary.BigEndian
	return &SpiffHeader{
		HighVersion:          p[spiffHighVersion],
		LowVersion:           p[spiffLowVersion],
		ProfileID:            p[spiffProfileID],
		ComponentCount:       p[spiffComponentCount],
		Height:               be.Uint32(p[spiffHeight:]),
		Width:                be.Uint32(p[spiffWidth:]),
		ColorSpace:           p[spiffColorSpace],
		BitsPerSample:        p[spiffBitsPerSample],
		CompressionType:      p[spiffCompressionType],
		ResolutionUnits:      p[spiffResolutionUnitsOffset],
		VerticalResolution:   be.Uint32(p[spiffVerticalRes:]),
		HorizontalResolution: be.Uint32(p[spiffHorizontalRes:]),
	}, true
}

// ColorSpaceName returns the SPIFF name of the color space.
func (h *SpiffHeader) ColorSpaceName() string {
	return lookup(spiffColorSpaces, h.ColorSpace, "Unknown")
}

// CompressionTypeName returns the SPIFF name of the compression type.
func (h *SpiffHeader) CompressionTypeName() string {
	return lookup(spiffCompressionTypes, h.CompressionType, "Unknown")
}

// ResolutionUnitsName returns the SPIFF name of the resolution units.
func (h *SpiffHeader) ResolutionUnitsName() string {
	return lookup(spiffResolutionUnits, h.ResolutionUnits, "Unknown")
}

// Report implements SubFormat.
func (h *SpiffHeader) Report(base int64, e *report.Emitter) {
	e.Printf(base, 1, "SPIFF Header, defined in ISO/IEC 10918-3, Annex F")
	e.Printf(base+spiffHighVersion, 1, "High version = %d", h.HighVersion)
	e.Printf(base+spiffLowVersion, 1, "Low version = %d", h.LowVersion)
	e.Printf(base+spiffProfileID, 1, "Profile id = %d", h.ProfileID)
	e.Printf(base+spiffComponentCount, 1, "Component count = %d", h.ComponentCount)
	e.Printf(base+spiffHeight, 1, "Height = %d", h.Height)
	e.Printf(base+spiffWidth, 1, "Width = %d", h.Width)
	e.Printf(base+spiffColorSpace, 1, "Color Space = %d (%s)", h.ColorSpace, h.ColorSpaceName())
	e.Printf(base+spiffBitsPerSample, 1, "Bits per sample = %d", h.BitsPerSample)
	e.Printf(base+spiffCompressionType, 1, "Compression Type = %d (%s)", h.CompressionType, h.CompressionTypeName())
	e.Printf(base+spiffResolutionUnitsOffset, 1, "Resolution Units = %d (%s)", h.ResolutionUnits, h.ResolutionUnitsName())
	e.Printf(base+spiffVerticalRes, 1, "Vertical resolution = %d", h.VerticalResolution)
	e.Printf(base+spiffHorizontalRes, 1, "Horizontal resolution = %d", h.HorizontalResolution)
}

// SpiffEndOfDirectory is the SPIFF directory entry that ends the directory.
type SpiffEndOfDirectory struct{}

// DecodeSpiffEndOfDirectory matches a 6-byte payload whose big-endian entry
// tag is 1.
func DecodeSpiffEndOfDirectory(p []byte) (*SpiffEndOfDirectory, bool) {
	if len(p) != 6 || binary.BigEndian.Uint32(p) != 1 {
		return nil, false
	}
	return &SpiffEndOfDirectory{}, true
}

// Report implements SubFormat.
func (*SpiffEndOfDirectory) Report(base int64, e *report.Emitter) {
	e.Printf(base, 1, "SPIFF EndOfDirectory Entry, defined in ISO/IEC 10918-3, Annex F")
}
