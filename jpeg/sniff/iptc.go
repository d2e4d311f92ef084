package sniff

import (
	"encoding/binary"
	"fmt"

	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

const (
	iimTagMarker  = 0x1C
	iimHeaderSize = 5 // tag marker(1) + record(1) + dataset(1) + size(2)
)

// IPTC-IIM application record datasets with a dedicated report.
const (
	DatasetSpecialInstructions           uint8 = 0x28
	DatasetOriginatingProgram            uint8 = 0x41
	DatasetOriginalTransmissionReference uint8 = 0x67
)

var iimDatasets = map[uint8]string{
	DatasetSpecialInstructions:           "Special Instructions",
	DatasetOriginatingProgram:            "Originating Program",
	DatasetOriginalTransmissionReference: "Original Transmission Reference",
}

// IPTCRecord is one IPTC-IIM dataset. Offsets are relative to the start of
// the APP13 payload.
type IPTCRecord struct {
	Offset  int
	Record  uint8
	Dataset uint8
	Size    uint16
	Text    string
	FBMD    *FBMD
}

// Name returns the dataset name used in reports.
func (r *IPTCRecord) Name() string {
	return lookup(iimDatasets, r.Dataset, "Text")
}

// IPTC is the sequence of IPTC-IIM records inside an IPTC-NAA resource.
type IPTC struct {
	Records    []IPTCRecord
	StopOffset int
	StopReason string
}

// DecodeIPTC walks the IIM records in data. offset is the position of data
// within the enclosing payload.
func DecodeIPTC(data []byte, offset int) *IPTC {
	iptc := &IPTC{}
	pos := 0
	for pos < len(data) {
		if len(data)-pos < iimHeaderSize {
			if !allZero(data[pos:]) {
				iptc.stop(offset+pos, "truncated IPTC record header")
			}
			break
		}
		if data[pos] != iimTagMarker {
			iptc.stop(offset+pos, fmt.Sprintf("unexpected IPTC tag marker 0x%02X", data[pos]))
			break
		}
		rec := IPTCRecord{
			Offset:  offset + pos,
			Record:  data[pos+1],
			Dataset: data[pos+2],
			Size:    binary.BigEndian.Uint16(data[pos+3:]),
		}
		if rec.Size&0x8000 != 0 {
			iptc.stop(offset+pos, "extended IPTC dataset size not supported")
			break
		}
		start := pos + iimHeaderSize
		end := start + int(rec.Size)
		if end > len(data) {
			iptc.stop(offset+pos, fmt.Sprintf("IPTC record of %d bytes overruns resource", rec.Size))
			break
		}
		text := data[start:end]
		rec.Text = iimText(text)
		if rec.Dataset == DatasetSpecialInstructions {
			rec.FBMD = DecodeFBMD(text, offset+start)
		}
		iptc.Records = append(iptc.Records, rec)
		pos = end
	}
	return iptc
}

func (iptc *IPTC) stop(offset int, reason string) {
	iptc.StopOffset = offset
	iptc.StopReason = reason
}

// Report emits the records. base is the stream offset of the payload.
func (iptc *IPTC) Report(base int64, e *report.Emitter) {
	for i := range iptc.Records {
		r := &iptc.Records[i]
		off := base + int64(r.Offset)
		e.Printf(off, 3, "IPTC %d:%d %s (%d bytes) = %q", r.Record, r.Dataset, r.Name(), r.Size, r.Text)
		if r.FBMD != nil {
			r.FBMD.Report(base, e)
		}
	}
	if iptc.StopReason != "" {
		e.Printf(base+int64(iptc.StopOffset), 3, "IPTC walk stopped: %s", iptc.StopReason)
	}
}
