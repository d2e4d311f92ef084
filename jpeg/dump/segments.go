package dump

import (
	"github.com/Patty-OFurniture/jpegdump/jpeg/common"
	"github.com/Patty-OFurniture/jpegdump/jpeg/sniff"
)

// LSE parameter types (ITU T.87 Table C.3)
const (
	lsePresetCodingParameters = 1
	lseMappingTable           = 2
	lseMappingTableContinued  = 3
	lseOversizeDimension      = 4
)

var lseTypeNames = map[uint32]string{
	lsePresetCodingParameters: "Preset coding parameters",
	lseMappingTable:           "Mapping table specification",
	lseMappingTableContinued:  "Mapping table continuation",
	lseOversizeDimension:      "Oversize image dimension",
}

var interleaveModes = map[uint32]string{
	0: "None",
	1: "Line interleaved",
	2: "Sample interleaved",
}

// uintField reads a width-byte field and reports it with format, which must
// take the value as its only argument.
func (d *Dumper) uintField(s *segment, width, depth int, format string) (uint32, error) {
	off, v, err := s.field(width)
	if err != nil {
		return 0, err
	}
	d.out.Printf(off, depth, format, v)
	return v, nil
}

// decodeSOF55 decodes the JPEG-LS frame header (ITU T.87 C.2.2).
func (d *Dumper) decodeSOF55(s *segment) error {
	if _, err := d.uintField(s, 1, 1, "Sample precision (P) = %d"); err != nil {
		return err
	}
	if _, err := d.uintField(s, 2, 1, "Number of lines (Y) = %d"); err != nil {
		return err
	}
	if _, err := d.uintField(s, 2, 1, "Number of samples per line (X) = %d"); err != nil {
		return err
	}
	count, err := d.uintField(s, 1, 1, "Number of image components in a frame (Nf) = %d")
	if err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		if _, err := d.uintField(s, 1, 2, "Component identifier (Ci) = %d"); err != nil {
			return err
		}
		off, sampling, err := s.field(1)
		if err != nil {
			return err
		}
		d.out.Printf(off, 2, "H and V sampling factor (Hi + Vi) = %d (%d + %d)", sampling, sampling>>4, sampling&0x0F)
		if _, err := d.uintField(s, 1, 2, "Quantization table (Tqi) [reserved, should be 0] = %d"); err != nil {
			return err
		}
	}
	return nil
}

// decodeLSE decodes a JPEG-LS preset parameters segment (ITU T.87 C.2.4).
func (d *Dumper) decodeLSE(s *segment) error {
	off, typ, err := s.field(1)
	if err != nil {
		return err
	}
	name, ok := lseTypeNames[typ]
	if !ok {
		name = "Unknown"
	}
	d.out.Printf(off, 1, "Type = %d (%s)", typ, name)

	switch typ {
	case lsePresetCodingParameters:
		for _, label := range []string{
			"MaximumSampleValue = %d",
			"Threshold 1 = %d",
			"Threshold 2 = %d",
			"Threshold 3 = %d",
			"Reset value = %d",
		} {
			if _, err := d.uintField(s, 2, 1, label); err != nil {
				return err
			}
		}
		return nil

	case lseMappingTable, lseMappingTableContinued:
		if _, err := d.uintField(s, 1, 1, "Table identifier (TID) = %d"); err != nil {
			return err
		}
		width, err := d.uintField(s, 1, 1, "Entry width (Wt) = %d")
		if err != nil {
			return err
		}
		if width > 0 {
			d.out.Printf(s.r.Offset(), 1, "Table entries = %d", uint32(s.remaining())/width)
		}
		return s.r.Skip(s.remaining())

	case lseOversizeDimension:
		width, err := d.uintField(s, 1, 1, "Dimension width (Wxy) = %d")
		if err != nil {
			return err
		}
		if width < 2 || width > 4 {
			return s.r.Skip(s.remaining())
		}
		if _, err := d.uintField(s, int(width), 1, "Number of lines (Y) = %d"); err != nil {
			return err
		}
		_, err = d.uintField(s, int(width), 1, "Number of samples per line (X) = %d")
		return err

	default:
		return s.r.Skip(s.remaining())
	}
}

// decodeSOS decodes a scan header. JPEG-LS (ITU T.87 C.2.3) and T.81 (B.2.3)
// share the layout; the labels follow the stream mode.
func (d *Dumper) decodeSOS(s *segment) error {
	count, err := d.uintField(s, 1, 1, "Component Count = %d")
	if err != nil {
		return err
	}

	jpegLS := d.mode == ModeJPEGLSEntropy
	for i := uint32(0); i < count; i++ {
		if jpegLS {
			_, err = d.uintField(s, 1, 2, "Component identifier (Ci) = %d")
		} else {
			_, err = d.uintField(s, 1, 2, "Scan component selector (Csj) = %d")
		}
		if err != nil {
			return err
		}

		off, sel, err := s.field(1)
		if err != nil {
			return err
		}
		switch {
		case !jpegLS:
			d.out.Printf(off, 2, "DC and AC entropy coding table selector (Tdj + Taj) = %d (%d + %d)", sel, sel>>4, sel&0x0F)
		case sel == 0:
			d.out.Printf(off, 2, "Mapping table selector = %d (None)", sel)
		default:
			d.out.Printf(off, 2, "Mapping table selector = %d", sel)
		}
	}

	if !jpegLS {
		if _, err := d.uintField(s, 1, 1, "Start of spectral selection (Ss) = %d"); err != nil {
			return err
		}
		if _, err := d.uintField(s, 1, 1, "End of spectral selection (Se) = %d"); err != nil {
			return err
		}
		off, approx, err := s.field(1)
		if err != nil {
			return err
		}
		d.out.Printf(off, 1, "Successive approximation (Ah + Al) = %d (%d + %d)", approx, approx>>4, approx&0x0F)
		return nil
	}

	if _, err := d.uintField(s, 1, 1, "Near lossless (NEAR parameter) = %d"); err != nil {
		return err
	}
	off, ilv, err := s.field(1)
	if err != nil {
		return err
	}
	mode, ok := interleaveModes[ilv]
	if !ok {
		mode = "Invalid"
	}
	d.out.Printf(off, 1, "Interleave mode (ILV parameter) = %d (%s)", ilv, mode)
	_, err = d.uintField(s, 1, 1, "Point Transform = %d")
	return err
}

// decodeDRI decodes the restart interval. JPEG-LS allows the interval to be
// 2, 3 or 4 bytes wide; the width follows from the segment length.
func (d *Dumper) decodeDRI(s *segment) error {
	var width int
	switch s.length {
	case 4:
		width = 2
	case 5:
		width = 3
	case 6:
		width = 4
	default:
		return nil
	}
	_, err := d.uintField(s, width, 1, "Restart interval (Ri) = %d")
	return err
}

// decodeAPP consumes an application data payload and reports any sub-format
// a sniffer recognizes in it.
func (d *Dumper) decodeAPP(s *segment) error {
	if err := s.r.Skip(len(s.payload)); err != nil {
		return err
	}
	chain := sniff.ForApp(int(s.marker - common.APP0))
	if f, ok := sniff.Run(chain, s.payload, d.opts.sniffOptions()); ok {
		f.Report(s.payloadOffset, d.out)
	}
	return nil
}

func (d *Dumper) decodeCOM(s *segment) error {
	return s.r.Skip(len(s.payload))
}
