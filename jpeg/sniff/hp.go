package sniff

import (
	"bytes"

	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// HP JPEG-LS extensions store a 4-character tag as a little-endian integer,
// so "colr" and "xfrm" appear reversed in the byte stream.
var (
	hpColorSpaceTag     = []byte{0x72, 0x6C, 0x6F, 0x63}
	hpColorTransformTag = []byte{0x6D, 0x72, 0x66, 0x78}
)

const hpPayloadSize = 5

var hpColorSpaces = map[uint8]string{
	1: "Gray",
	2: "Palettized",
	3: "RGB",
	4: "YUV",
	5: "HSV",
	6: "HSB",
	7: "HSL",
	8: "LAB",
	9: "CMYK",
}

var hpColorTransforms = map[uint8]string{
	1: "HP1",
	2: "HP2",
	3: "HP3",
	4: "RGB as YUV lossy",
	5: "Matrix",
}

// HPColorSpace is the HP APP7 color space extension.
type HPColorSpace struct {
	ColorSpace uint8
}

// DecodeHPColorSpace matches a 5-byte payload tagged "colr".
func DecodeHPColorSpace(p []byte) (*HPColorSpace, bool) {
	if len(p) != hpPayloadSize || !bytes.Equal(p[:4], hpColorSpaceTag) {
		return nil, false
	}
	return &HPColorSpace{ColorSpace: p[4]}, true
}

// Name returns the name of the color space.
func (c *HPColorSpace) Name() string {
	return lookup(hpColorSpaces, c.ColorSpace, "Unknown")
}

// Report implements SubFormat.
func (c *HPColorSpace) Report(base int64, e *report.Emitter) {
	e.Printf(base, 1, "HP colorspace extension (colr)")
	e.Printf(base+4, 1, "Color space = %d (%s)", c.ColorSpace, c.Name())
}

// HPColorTransform is the HP APP8 color transformation extension.
type HPColorTransform struct {
	Transformation uint8
}

// DecodeHPColorTransform matches a 5-byte payload tagged "xfrm".
func DecodeHPColorTransform(p []byte) (*HPColorTransform, bool) {
	if len(p) != hpPayloadSize || !bytes.Equal(p[:4], hpColorTransformTag) {
		return nil, false
	}
	return &HPColorTransform{Transformation: p[4]}, true
}

// Name returns the name of the transformation.
func (x *HPColorTransform) Name() string {
	return lookup(hpColorTransforms, x.Transformation, "Unknown")
}

// Report implements SubFormat.
func (x *HPColorTransform) Report(base int64, e *report.Emitter) {
	e.Printf(base, 1, "HP colorXForm extension (xfrm)")
	e.Printf(base+4, 1, "Transformation = %d (%s)", x.Transformation, x.Name())
}
