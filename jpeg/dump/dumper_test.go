package dump

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Patty-OFurniture/jpegdump/jpeg/common"
	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// seg builds a marker segment with a correct length field.
func seg(marker byte, payload ...byte) []byte {
	n := len(payload) + 2
	return append([]byte{0xFF, marker, byte(n >> 8), byte(n)}, payload...)
}

func join(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

var (
	soi = []byte{0xFF, 0xD8}
	eoi = []byte{0xFF, 0xD9}

	// SOF_55, 8-bit, 16 lines, 32 samples per line, one component
	sof55 = []byte{0xFF, 0xF7, 0x00, 0x0B, 0x08, 0x00, 0x10, 0x00, 0x20, 0x01, 0x01, 0x11, 0x00}
)

func run(t *testing.T, data []byte, opts ...Option) (*Dumper, *report.Collector) {
	t.Helper()
	c := &report.Collector{}
	d := New(bytes.NewReader(data), c, opts...)
	if err := d.Dump(); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	return d, c
}

func wantLine(t *testing.T, c *report.Collector, prefix string, offset int64) {
	t.Helper()
	l, ok := c.Find(prefix)
	if !ok {
		t.Errorf("no line starting with %q in:\n%s", prefix, strings.Join(c.Texts(), "\n"))
		return
	}
	if l.Offset != offset {
		t.Errorf("line %q at offset %d, want %d", l.Text, l.Offset, offset)
	}
}

func TestDumpSOIEOI(t *testing.T) {
	_, c := run(t, []byte{0xFF, 0xD8, 0xFF, 0xD9})

	if len(c.Lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(c.Lines), c.Texts())
	}
	want := []report.Line{
		{Offset: 0, Depth: 0, Text: "Marker 0xFFD8: SOI (Start Of Image), defined in ITU T.81/IEC 10918-1"},
		{Offset: 2, Depth: 0, Text: "Marker 0xFFD9: EOI (End Of Image), defined in ITU T.81/IEC 10918-1"},
	}
	if !reflect.DeepEqual(c.Lines, want) {
		t.Errorf("lines = %+v, want %+v", c.Lines, want)
	}
}

func TestDumpSOF55(t *testing.T) {
	d, c := run(t, sof55)

	want := []report.Line{
		{Offset: 0, Depth: 0, Text: "Marker 0xFFF7: SOF_55 (Start Of Frame JPEG-LS), defined in ITU T.87/IEC 14495-1 JPEG LS"},
		{Offset: 2, Depth: 1, Text: "Size = 11"},
		{Offset: 4, Depth: 1, Text: "Sample precision (P) = 8"},
		{Offset: 5, Depth: 1, Text: "Number of lines (Y) = 16"},
		{Offset: 7, Depth: 1, Text: "Number of samples per line (X) = 32"},
		{Offset: 9, Depth: 1, Text: "Number of image components in a frame (Nf) = 1"},
		{Offset: 10, Depth: 2, Text: "Component identifier (Ci) = 1"},
		{Offset: 11, Depth: 2, Text: "H and V sampling factor (Hi + Vi) = 17 (1 + 1)"},
		{Offset: 12, Depth: 2, Text: "Quantization table (Tqi) [reserved, should be 0] = 0"},
	}
	if !reflect.DeepEqual(c.Lines, want) {
		t.Errorf("lines:\n%v\nwant:\n%v", c.Lines, want)
	}
	if d.Mode() != ModeJPEGLSEntropy {
		t.Errorf("Mode() = %v, want %v", d.Mode(), ModeJPEGLSEntropy)
	}
	if len(d.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", d.Warnings())
	}
}

func TestMarkerValidityByMode(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		wantFF33  bool
		wantCount int
	}{
		{
			name:      "standard mode reports 0xFF33",
			data:      join(soi, []byte{0xFF, 0x33}, eoi),
			wantFF33:  true,
			wantCount: 3,
		},
		{
			name:      "JPEG-LS mode rejects 0xFF33",
			data:      join(soi, sof55, []byte{0x12, 0xFF, 0x33, 0x45}, eoi),
			wantFF33:  false,
			wantCount: 1 + 9 + 1,
		},
		{
			name:      "standard mode skips stuffed zero",
			data:      join(soi, []byte{0x12, 0xFF, 0x00, 0x34}, eoi),
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := run(t, tt.data)
			_, found := c.Find("Marker 0xFF33")
			if found != tt.wantFF33 {
				t.Errorf("0xFF33 reported = %v, want %v", found, tt.wantFF33)
			}
			if len(c.Lines) != tt.wantCount {
				t.Errorf("got %d lines, want %d: %v", len(c.Lines), tt.wantCount, c.Texts())
			}
		})
	}
}

func TestRejectedCodeIsNotReexamined(t *testing.T) {
	// In JPEG-LS mode 0xFF 0x7F is rejected; the 0x7F is dropped and the
	// following 0xFF 0xD9 is still found.
	data := join(sof55, []byte{0xFF, 0x7F, 0xFF, 0xD9})
	_, c := run(t, data)
	wantLine(t, c, "Marker 0xFFD9", int64(len(sof55)+2))
}

func TestModeIsMonotonic(t *testing.T) {
	sos := seg(0xDA, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00)
	data := join(soi, sof55, sos, []byte{0x01, 0x02}, seg(0xE0, 'J', 'F', 'I', 'F', 0), []byte{0xFF, 0x10}, eoi)

	d, c := run(t, data)
	if d.Mode() != ModeJPEGLSEntropy {
		t.Errorf("Mode() = %v after SOF_55, want %v", d.Mode(), ModeJPEGLSEntropy)
	}
	if _, ok := c.Find("Marker 0xFF10"); ok {
		t.Error("0xFF10 reported after SOF_55")
	}
	if _, ok := c.Find("Marker 0xFFD9"); !ok {
		t.Error("EOI not reported")
	}
}

func TestFillBytes(t *testing.T) {
	_, c := run(t, []byte{0xFF, 0xFF, 0xD8, 0xFF, 0xFF, 0xFF, 0xD9})
	if len(c.Lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(c.Lines), c.Texts())
	}
	wantLine(t, c, "Marker 0xFFD8", 1)
	wantLine(t, c, "Marker 0xFFD9", 5)
}

func TestNoPayloadMarkersConsumeTwoBytes(t *testing.T) {
	for _, code := range []byte{0xD8, 0xD9, 0xD0, 0xD7, 0x01} {
		d := New(bytes.NewReader([]byte{0xFF, code, 0x00, 0x10}), &report.Collector{})
		offset, m, err := d.nextMarker()
		if err != nil {
			t.Fatalf("nextMarker: %v", err)
		}
		if err := d.dispatch(offset, m); err != nil {
			t.Fatalf("dispatch(%s): %v", m, err)
		}
		if d.Offset() != 2 {
			t.Errorf("marker %s consumed %d bytes, want 2", m, d.Offset())
		}
	}
}

func TestRestartAndTEMNames(t *testing.T) {
	_, c := run(t, []byte{0xFF, 0xD3, 0xFF, 0x01})
	wantLine(t, c, "Marker 0xFFD3: RST3 (Restart Marker 3)", 0)
	wantLine(t, c, "Marker 0xFF01: TEM", 2)
}

func TestDRIWidths(t *testing.T) {
	tests := []struct {
		name     string
		payload  []byte
		want     string
		warnings int
	}{
		{"length 4", []byte{0x00, 0x40}, "Restart interval (Ri) = 64", 0},
		{"length 5", []byte{0x01, 0x00, 0x00}, "Restart interval (Ri) = 65536", 0},
		{"length 6", []byte{0x01, 0x00, 0x00, 0x00}, "Restart interval (Ri) = 16777216", 0},
		{"length 2", nil, "", 0},
		{"length 7", []byte{0, 0, 0, 0, 1}, "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, c := run(t, join(seg(0xDD, tt.payload...), eoi))
			l, ok := c.Find("Restart interval")
			if tt.want == "" {
				if ok {
					t.Errorf("unexpected interval line %q", l.Text)
				}
			} else if !ok || l.Text != tt.want || l.Offset != 4 {
				t.Errorf("interval line = %+v, want %q at offset 4", l, tt.want)
			}
			if len(d.Warnings()) != tt.warnings {
				t.Errorf("got %d warnings, want %d", len(d.Warnings()), tt.warnings)
			}
			wantLine(t, c, "Marker 0xFFD9", int64(4+len(tt.payload)))
		})
	}
}

func TestSOSJPEGLS(t *testing.T) {
	sos := seg(0xDA,
		0x03,       // Ns
		0x01, 0x00, // C1, mapping table none
		0x02, 0x05, // C2, mapping table 5
		0x03, 0x00, // C3
		0x02, // NEAR
		0x01, // ILV
		0x00, // point transform
	)
	data := join(sof55, sos)
	base := int64(len(sof55))
	_, c := run(t, data)

	wantLine(t, c, "Component Count = 3", base+4)
	wantLine(t, c, "Mapping table selector = 0 (None)", base+6)
	wantLine(t, c, "Mapping table selector = 5", base+8)
	wantLine(t, c, "Near lossless (NEAR parameter) = 2", base+11)
	wantLine(t, c, "Interleave mode (ILV parameter) = 1 (Line interleaved)", base+12)
	wantLine(t, c, "Point Transform = 0", base+13)
}

func TestSOSInterleaveNames(t *testing.T) {
	tests := []struct {
		ilv  byte
		want string
	}{
		{0, "(None)"},
		{1, "(Line interleaved)"},
		{2, "(Sample interleaved)"},
		{3, "(Invalid)"},
	}
	for _, tt := range tests {
		_, c := run(t, join(sof55, seg(0xDA, 0x01, 0x01, 0x00, 0x00, tt.ilv, 0x00)))
		l, ok := c.Find("Interleave mode")
		if !ok || !strings.HasSuffix(l.Text, tt.want) {
			t.Errorf("ILV %d: line %q, want suffix %q", tt.ilv, l.Text, tt.want)
		}
	}
}

func TestSOSStandardLabels(t *testing.T) {
	sos := seg(0xDA, 0x01, 0x01, 0x10, 0x00, 0x3F, 0x00)
	_, c := run(t, join(soi, sos, []byte{0x12, 0x34}, eoi))

	wantLine(t, c, "Scan component selector (Csj) = 1", 7)
	wantLine(t, c, "DC and AC entropy coding table selector (Tdj + Taj) = 16 (1 + 0)", 8)
	wantLine(t, c, "Start of spectral selection (Ss) = 0", 9)
	wantLine(t, c, "End of spectral selection (Se) = 63", 10)
	wantLine(t, c, "Successive approximation (Ah + Al) = 0 (0 + 0)", 11)
	for _, l := range c.Lines {
		if strings.Contains(l.Text, "(None)") || strings.Contains(l.Text, "Interleave") {
			t.Errorf("JPEG-LS label in standard scan: %q", l.Text)
		}
	}
}

func TestLSE(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		lines   []string
	}{
		{
			name:    "preset coding parameters",
			payload: []byte{0x01, 0x00, 0xFF, 0x00, 0x03, 0x00, 0x07, 0x00, 0x15, 0x00, 0x40},
			lines: []string{
				"Type = 1 (Preset coding parameters)",
				"MaximumSampleValue = 255",
				"Threshold 1 = 3",
				"Threshold 2 = 7",
				"Threshold 3 = 21",
				"Reset value = 64",
			},
		},
		{
			name:    "mapping table",
			payload: []byte{0x02, 0x05, 0x02, 0x00, 0x01, 0x00, 0x02, 0x00, 0x03},
			lines: []string{
				"Type = 2 (Mapping table specification)",
				"Table identifier (TID) = 5",
				"Entry width (Wt) = 2",
				"Table entries = 3",
			},
		},
		{
			name:    "oversize dimension",
			payload: []byte{0x04, 0x03, 0x01, 0x00, 0x00, 0x02, 0x00, 0x00},
			lines: []string{
				"Type = 4 (Oversize image dimension)",
				"Dimension width (Wxy) = 3",
				"Number of lines (Y) = 65536",
				"Number of samples per line (X) = 131072",
			},
		},
		{
			name:    "unknown type",
			payload: []byte{0x09, 0xAA, 0xBB, 0xCC},
			lines:   []string{"Type = 9 (Unknown)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, c := run(t, join(seg(0xF8, tt.payload...), eoi))
			texts := c.Texts()
			// marker, size, fields..., EOI
			if len(texts) != len(tt.lines)+3 {
				t.Fatalf("got %d lines, want %d: %v", len(texts), len(tt.lines)+3, texts)
			}
			for i, want := range tt.lines {
				if texts[i+2] != want {
					t.Errorf("line %d = %q, want %q", i+2, texts[i+2], want)
				}
			}
			if len(d.Warnings()) != 0 {
				t.Errorf("unexpected warnings: %v", d.Warnings())
			}
		})
	}
}

func TestStructuralWarnings(t *testing.T) {
	tests := []struct {
		name         string
		segment      []byte
		wantDeclared int
		wantConsumed int
		wantReason   string
	}{
		{
			// Nf = 1 but the component is missing
			name:         "segment shorter than its fields",
			segment:      seg(0xF7, 0x08, 0x00, 0x10, 0x00, 0x20, 0x01),
			wantDeclared: 6,
			wantConsumed: 6,
		},
		{
			name:         "segment longer than its fields",
			segment:      seg(0xF7, 0x08, 0x00, 0x10, 0x00, 0x20, 0x01, 0x01, 0x11, 0x00, 0xEE, 0xEE),
			wantDeclared: 11,
			wantConsumed: 9,
		},
		{
			name:         "length below minimum",
			segment:      []byte{0xFF, 0xDD, 0x00, 0x01},
			wantDeclared: 0,
			wantConsumed: 0,
			wantReason:   "length 1 is below the minimum of 2",
		},
		{
			name:         "zero length",
			segment:      []byte{0xFF, 0xDD, 0x00, 0x00},
			wantDeclared: 0,
			wantConsumed: 0,
			wantReason:   "length 0 is below the minimum of 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, c := run(t, join(tt.segment, eoi))
			if len(d.Warnings()) != 1 {
				t.Fatalf("got %d warnings, want 1", len(d.Warnings()))
			}
			w := d.Warnings()[0]
			if w.Offset != 0 || w.Declared != tt.wantDeclared || w.Consumed != tt.wantConsumed {
				t.Errorf("warning = %+v, want offset 0 declared %d consumed %d", w, tt.wantDeclared, tt.wantConsumed)
			}
			if tt.wantReason != "" && w.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", w.Reason, tt.wantReason)
			}
			if strings.Contains(w.Error(), "declared -") {
				t.Errorf("negative declared size in %q", w.Error())
			}
			wantLine(t, c, "WARNING:", 0)
			// resynchronized to the declared end
			wantLine(t, c, "Marker 0xFFD9", int64(len(tt.segment)))
		})
	}
}

func TestTruncatedStream(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"payload", []byte{0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I'}},
		{"length field", []byte{0xFF, 0xD8, 0xFF, 0xDA, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Dump(bytes.NewReader(tt.data), &report.Collector{})
			if !errors.Is(err, common.ErrTruncated) {
				t.Errorf("Dump() error = %v, want %v", err, common.ErrTruncated)
			}
		})
	}
}

func TestEndOfStreamAfterPrefix(t *testing.T) {
	_, c := run(t, []byte{0xFF, 0xD8, 0x00, 0xFF})
	if len(c.Lines) != 1 {
		t.Errorf("got %d lines, want 1: %v", len(c.Lines), c.Texts())
	}
}

func TestFallbackReport(t *testing.T) {
	_, c := run(t, []byte{0xFF, 0xC4, 0xFF, 0xC0})
	want := []string{
		"Marker 0xFFC4: DHT",
		"Marker 0xFFC0: SOF0 (Start Of Frame, Baseline DCT), defined in ITU T.81/IEC 10918-1",
	}
	if !reflect.DeepEqual(c.Texts(), want) {
		t.Errorf("lines = %q, want %q", c.Texts(), want)
	}
}

func TestSkipUnknownSegments(t *testing.T) {
	// DQT payload holding the bytes 0xFF 0xC4
	data := join(soi, seg(0xDB, 0x00, 0xFF, 0xC4), eoi)

	_, c := run(t, data)
	if _, ok := c.Find("Marker 0xFFC4"); !ok {
		t.Error("without skipping, the DQT payload should be scanned for markers")
	}

	_, c = run(t, data, WithSkipUnknownSegments(true))
	if _, ok := c.Find("Marker 0xFFC4"); ok {
		t.Error("with skipping, 0xFFC4 inside the DQT payload was reported")
	}
	wantLine(t, c, "Size = 5", 4)
	wantLine(t, c, "Marker 0xFFD9", 9)
}

func TestIdempotent(t *testing.T) {
	data := join(soi, sof55, seg(0xE8, 0x00, 0x00, 0x00, 0x01, 0xFF, 0xD8),
		seg(0xDA, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00), []byte{0xFF, 0x12, 0x77}, eoi)

	_, first := run(t, data)
	_, second := run(t, data)
	if !reflect.DeepEqual(first.Lines, second.Lines) {
		t.Errorf("two runs differ:\n%v\n%v", first.Texts(), second.Texts())
	}
}

func TestDumpTwice(t *testing.T) {
	d := New(bytes.NewReader(soi), &report.Collector{})
	if err := d.Dump(); err != nil {
		t.Fatalf("first Dump: %v", err)
	}
	if err := d.Dump(); !errors.Is(err, ErrAlreadyDumped) {
		t.Errorf("second Dump() = %v, want %v", err, ErrAlreadyDumped)
	}
}

func TestInvalidOptions(t *testing.T) {
	err := Dump(bytes.NewReader(soi), &report.Collector{}, WithIRBPadding(7))
	if err == nil {
		t.Error("Dump with invalid padding succeeded")
	}
}
