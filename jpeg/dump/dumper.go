// Package dump renders the marker segments of a JPEG or JPEG-LS stream as
// offset-annotated text lines.
//
// A Dumper makes a single forward pass: it scans for 0xFF marker prefixes,
// decodes the fields of the segments it knows and hands application data
// payloads to the sniffers in package sniff. Entropy-coded data is skipped
// over without being decoded.
package dump

import (
	"errors"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/Patty-OFurniture/jpegdump/jpeg/common"
	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// ErrAlreadyDumped is returned when Dump is called a second time.
var ErrAlreadyDumped = errors.New("dumper has already been run")

// Mode decides which bytes following 0xFF are accepted as marker codes.
type Mode int

const (
	// ModeStandard accepts any non-zero code; 0xFF00 is a stuffed zero.
	ModeStandard Mode = iota
	// ModeJPEGLSEntropy accepts only codes with the high bit set, matching
	// the JPEG-LS bit stuffing rule. Entered on SOF_55, never left.
	ModeJPEGLSEntropy
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "Standard"
	case ModeJPEGLSEntropy:
		return "JpegLSEntropy"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Dumper dumps one stream. It is not safe for concurrent use and cannot be
// reused; create a new Dumper for every input.
type Dumper struct {
	r        *common.Reader
	out      *report.Emitter
	opts     Options
	mode     Mode
	warnings []*common.StructuralWarning
	done     bool
}

// New creates a Dumper reading r and writing lines to sink
func New(r io.Reader, sink report.Sink, opts ...Option) *Dumper {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dumper{
		r:    common.NewReader(r),
		out:  report.NewEmitter(sink),
		opts: o,
		mode: ModeStandard,
	}
}

// Dump runs a fresh Dumper over r.
func Dump(r io.Reader, sink report.Sink, opts ...Option) error {
	return New(r, sink, opts...).Dump()
}

// Mode returns the current stream mode.
func (d *Dumper) Mode() Mode {
	return d.mode
}

// Warnings returns the structural warnings raised so far.
func (d *Dumper) Warnings() []*common.StructuralWarning {
	return d.warnings
}

// Offset returns the offset of the next unread byte.
func (d *Dumper) Offset() int64 {
	return d.r.Offset()
}

// Dump scans the stream to its end. Running out of input while looking for
// a marker ends the dump normally; running out inside a segment returns an
// error wrapping common.ErrTruncated.
func (d *Dumper) Dump() error {
	if d.done {
		return ErrAlreadyDumped
	}
	d.done = true
	if err := d.opts.Validate(); err != nil {
		return err
	}

	for {
		offset, marker, err := d.nextMarker()
		if err != nil {
			if errors.Is(err, common.ErrEndOfStream) {
				return d.out.Err()
			}
			return err
		}
		glog.V(2).Infof("found marker %s (%s) at offset %d", marker, marker.Name(), offset)

		if err := d.dispatch(offset, marker); err != nil {
			return err
		}
	}
}

// nextMarker reads up to and including the next valid marker code and
// returns the offset of its 0xFF prefix. A rejected code is dropped and the
// scan continues with the byte after it. 0xFF fill bytes are skipped and the
// last one becomes the prefix.
func (d *Dumper) nextMarker() (int64, common.Marker, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		if b != 0xFF {
			continue
		}

		offset := d.r.Offset() - 1
		code, err := d.r.ReadByte()
		for err == nil && code == byte(common.Fill) {
			offset = d.r.Offset() - 1
			code, err = d.r.ReadByte()
		}
		if err != nil {
			return 0, 0, err
		}
		if d.isMarkerCode(code) {
			return offset, common.Marker(code), nil
		}
	}
}

func (d *Dumper) isMarkerCode(code byte) bool {
	// JPEG-LS encoders stuff a zero bit after 0xFF in coded data, so only a
	// code with the high bit set can be a marker.
	if d.mode == ModeJPEGLSEntropy {
		return code&0x80 != 0
	}
	return code > 0
}

func (d *Dumper) enterJPEGLS() {
	if d.mode != ModeJPEGLSEntropy {
		glog.V(2).Infof("switching to %s mode at offset %d", ModeJPEGLSEntropy, d.r.Offset())
	}
	d.mode = ModeJPEGLSEntropy
}

func (d *Dumper) warn(w *common.StructuralWarning) {
	d.warnings = append(d.warnings, w)
	glog.V(1).Infof("structural warning: %v", w)
	d.out.Printf(w.Offset, 1, "WARNING: %v", w)
}
