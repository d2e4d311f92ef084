package dump

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Patty-OFurniture/jpegdump/jpeg/common"
)

// segment is the length-prefixed part of a marker segment, read into memory
// before its fields are decoded.
type segment struct {
	offset        int64 // offset of the 0xFF prefix
	marker        common.Marker
	length        uint16 // declared length, including the length field
	payloadOffset int64
	payload       []byte
	r             *common.Reader // reads payload, offsets relative to the stream
}

func (s *segment) consumed() int {
	return int(s.r.Offset() - s.payloadOffset)
}

func (s *segment) remaining() int {
	return len(s.payload) - s.consumed()
}

// field reads a big-endian value of width bytes and returns its offset.
func (s *segment) field(width int) (int64, uint32, error) {
	off := s.r.Offset()
	v, err := s.r.ReadUint(width)
	return off, v, err
}

type decodeFunc func(s *segment) error

// dispatch reports one marker and decodes its segment.
func (d *Dumper) dispatch(offset int64, m common.Marker) error {
	switch {
	case m == common.SOI, m == common.EOI, m == common.TEM, common.IsRST(m):
		d.markerLine(offset, m)
		return d.out.Err()

	case m == common.SOF55:
		d.enterJPEGLS()
		return d.segment(offset, m, d.decodeSOF55)

	case m == common.LSE:
		return d.segment(offset, m, d.decodeLSE)

	case m == common.SOS:
		return d.segment(offset, m, d.decodeSOS)

	case m == common.DRI:
		return d.segment(offset, m, d.decodeDRI)

	case common.IsAPP(m):
		return d.segment(offset, m, d.decodeAPP)

	case m == common.COM:
		return d.segment(offset, m, d.decodeCOM)

	case common.IsSOF(m):
		if d.opts.SkipUnknownSegments {
			return d.segment(offset, m, d.skipPayload)
		}
		d.markerLine(offset, m)
		return d.out.Err()

	default:
		if d.opts.SkipUnknownSegments && skippable(m) {
			return d.segment(offset, m, d.skipPayload)
		}
		d.fallbackLine(offset, m)
		return d.out.Err()
	}
}

// skippable reports whether m is a T.81 marker known to carry a length
// field that this package does not decode.
func skippable(m common.Marker) bool {
	switch m {
	case common.DQT, common.DHT, common.DAC, common.DNL, common.DHP, common.EXP, common.JPG:
		return true
	}
	return m >= common.JPG0 && m <= common.JPG13 && m != common.SOF55 && m != common.LSE
}

func (d *Dumper) markerLine(offset int64, m common.Marker) {
	d.out.Printf(offset, 0, "Marker %s: %s (%s), defined in %s", m, m.Name(), m.Description(), m.Standard())
}

func (d *Dumper) fallbackLine(offset int64, m common.Marker) {
	if m.Known() {
		d.out.Printf(offset, 0, "Marker %s: %s", m, m.Name())
		return
	}
	d.out.Printf(offset, 0, "Marker %s", m)
}

// segment reports the marker and length of a length-prefixed segment, reads
// its payload and runs decode over it. Whatever decode does, the stream is
// left at the declared end of the segment.
func (d *Dumper) segment(offset int64, m common.Marker, decode decodeFunc) error {
	d.markerLine(offset, m)

	sizeOffset := d.r.Offset()
	length, err := d.r.ReadUint16()
	if err != nil {
		return fmt.Errorf("failed to read %s length: %w", m.Name(), err)
	}
	d.out.Printf(sizeOffset, 1, "Size = %d", length)
	if length < 2 {
		d.warn(&common.StructuralWarning{
			Offset: offset,
			Marker: m,
			Reason: fmt.Sprintf("length %d is below the minimum of 2", length),
		})
		return d.out.Err()
	}

	payloadOffset := d.r.Offset()
	payload, err := d.r.ReadBytes(int(length) - 2)
	if err != nil {
		return fmt.Errorf("failed to read %s segment: %w", m.Name(), err)
	}

	s := &segment{
		offset:        offset,
		marker:        m,
		length:        length,
		payloadOffset: payloadOffset,
		payload:       payload,
		r:             common.NewReaderAt(bytes.NewReader(payload), payloadOffset),
	}
	if err := decode(s); err != nil {
		if !errors.Is(err, common.ErrTruncated) && !errors.Is(err, common.ErrEndOfStream) {
			return fmt.Errorf("failed to decode %s: %w", m.Name(), err)
		}
		d.warn(&common.StructuralWarning{
			Offset:   offset,
			Marker:   m,
			Declared: len(payload),
			Consumed: s.consumed(),
			Reason:   "segment ends inside a field",
		})
		return d.out.Err()
	}
	if n := s.consumed(); n != len(payload) {
		d.warn(&common.StructuralWarning{
			Offset:   offset,
			Marker:   m,
			Declared: len(payload),
			Consumed: n,
		})
	}
	return d.out.Err()
}

func (d *Dumper) skipPayload(s *segment) error {
	return s.r.Skip(len(s.payload))
}
