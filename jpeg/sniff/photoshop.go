package sniff

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// APP13 signatures. Photoshop 3.0 and later write "Photoshop 3.0\0"; the
// 2.5 format starts with "Adobe_Photoshop2.5:". The terminator is optional.
var irbSignatures = []struct {
	name       string
	terminator byte
}{
	{"Photoshop 3.0", 0x00},
	{"Adobe_Photoshop2.5", ':'},
}

// OSType signatures seen in image resource blocks.
var knownOSTypes = map[string]bool{
	"8BIM": true,
	"PHUT": true,
	"AgHg": true,
	"DCSR": true,
	"MeSa": true,
}

// minimum block: OSType(4) + id(2) + name length byte(1) + size(4)
const minResourceBlock = 11

// ResourceBlock is one Photoshop image resource block. Offsets are relative
// to the start of the APP13 payload.
type ResourceBlock struct {
	Offset     int
	OSType     string
	ID         uint16
	Name       string
	SizeOffset int
	Size       uint32
	DataOffset int
	IPTC       *IPTC
}

// Description returns the long form of the resource id.
func (b *ResourceBlock) Description() string {
	return ResourceName(b.ID)
}

// PhotoshopIRB is an APP13 payload holding Photoshop image resource blocks.
type PhotoshopIRB struct {
	Signature string
	Blocks    []ResourceBlock

	// StopOffset and StopReason are set when the walk halted before the
	// end of the payload.
	StopOffset int
	StopReason string
}

// DecodePhotoshop walks the image resource blocks of an APP13 payload. It
// advances strictly by declared sizes and never reads past the payload.
func DecodePhotoshop(p []byte, pad Padding) (*PhotoshopIRB, bool) {
	irb := &PhotoshopIRB{}
	pos := -1
	for _, sig := range irbSignatures {
		if bytes.HasPrefix(p, []byte(sig.name)) {
			irb.Signature = sig.name
			pos = len(sig.name)
			if pos < len(p) && p[pos] == sig.terminator {
				pos++
			}
			break
		}
	}
	if pos < 0 {
		return nil, false
	}

	for pos < len(p) {
		if len(p)-pos < minResourceBlock {
			// Trailing alignment bytes are not a block.
			if !allZero(p[pos:]) {
				irb.stop(pos, "truncated resource block header")
			}
			break
		}
		blk := ResourceBlock{
			Offset: pos,
			OSType: string(p[pos : pos+4]),
			ID:     binary.BigEndian.Uint16(p[pos+4:]),
		}
		if !knownOSTypes[blk.OSType] {
			irb.stop(pos, fmt.Sprintf("unexpected OSType %q", blk.OSType))
			break
		}

		nameLen := int(p[pos+6])
		nameField := 1 + nameLen
		if pad == PadEven && nameField%2 == 1 {
			nameField++
		}
		blk.SizeOffset = pos + 6 + nameField
		if blk.SizeOffset+4 > len(p) {
			irb.stop(pos, "resource name overruns segment")
			break
		}
		blk.Name = macRoman(p[pos+7 : pos+7+nameLen])
		blk.Size = binary.BigEndian.Uint32(p[blk.SizeOffset:])
		blk.DataOffset = blk.SizeOffset + 4
		if uint64(blk.Size) > uint64(len(p)-blk.DataOffset) {
			irb.Blocks = append(irb.Blocks, blk)
			irb.stop(blk.DataOffset, fmt.Sprintf("resource data of %d bytes overruns segment", blk.Size))
			break
		}

		data := p[blk.DataOffset : blk.DataOffset+int(blk.Size)]
		if blk.ID == ResourceIPTC {
			blk.IPTC = DecodeIPTC(data, blk.DataOffset)
		}
		irb.Blocks = append(irb.Blocks, blk)

		pos = blk.DataOffset + int(blk.Size)
		if pad == PadEven && blk.Size%2 == 1 {
			pos++
		}
	}
	return irb, true
}

func (irb *PhotoshopIRB) stop(offset int, reason string) {
	irb.StopOffset = offset
	irb.StopReason = reason
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// Report implements SubFormat.
func (irb *PhotoshopIRB) Report(base int64, e *report.Emitter) {
	e.Printf(base, 1, "Adobe Photoshop Image Resource Blocks (%s)", irb.Signature)
	for i := range irb.Blocks {
		b := &irb.Blocks[i]
		off := base + int64(b.Offset)
		e.Printf(off, 2, "OSType = %s", b.OSType)
		e.Printf(off+4, 2, "Resource type = 0x%04X %s", b.ID, b.Description())
		e.Printf(off+6, 2, "Resource name = %q", b.Name)
		e.Printf(base+int64(b.SizeOffset), 2, "Resource size = %d", b.Size)
		if b.IPTC != nil {
			b.IPTC.Report(base, e)
		}
	}
	if irb.StopReason != "" {
		e.Printf(base+int64(irb.StopOffset), 2, "Resource walk stopped: %s", irb.StopReason)
	}
}
