package sniff

import (
	"bytes"
	"encoding/binary"

	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

const adobeSize = 12

var adobeMagic = []byte("Adobe")

var adobeTransforms = map[uint8]string{
	0: "Unknown",
	1: "YCbCr",
	2: "YCCK",
}

// Adobe is the Adobe APP14 segment.
type Adobe struct {
	Version   uint16
	Flags0    uint16
	Flags1    uint16
	Transform uint8
}

// DecodeAdobe matches a payload of exactly 12 bytes starting with "Adobe".
func DecodeAdobe(p []byte) (*Adobe, bool) {
	if len(p) != adobeSize || !bytes.HasPrefix(p, adobeMagic) {
		return nil, false
	}
	be := binary.BigEndian
	return &Adobe{
		Version:   be.Uint16(p[5:]),
		Flags0:    be.Uint16(p[7:]),
		Flags1:    be.Uint16(p[9:]),
		Transform: p[11],
	}, true
}

// TransformName returns the name of the color transform.
func (a *Adobe) TransformName() string {
	return lookup(adobeTransforms, a.Transform, "Invalid")
}

// Report implements SubFormat.
func (a *Adobe) Report(base int64, e *report.Emitter) {
	e.Printf(base, 1, "Adobe APP14 segment")
	e.Printf(base+5, 1, "Version = %d", a.Version)
	e.Printf(base+7, 1, "Flags0 = 0x%04X", a.Flags0)
	e.Printf(base+9, 1, "Flags1 = 0x%04X", a.Flags1)
	e.Printf(base+11, 1, "Transform = %d (%s)", a.Transform, a.TransformName())
}
