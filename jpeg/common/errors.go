package common

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrEndOfStream     = errors.New("end of stream")
	ErrTruncated       = errors.New("truncated data")
	ErrInvalidLength   = errors.New("invalid segment length")
	ErrNotDICOM        = errors.New("not a DICOM file")
	ErrNotEncapsulated = errors.New("transfer syntax is not encapsulated")
	ErrNoPixelData     = errors.New("no encapsulated pixel data")
)

// StructuralWarning reports a segment whose declared length does not match
// the bytes its decoder consumed. The dump continues at the declared end of
// the segment.
type StructuralWarning struct {
	Offset   int64  // offset of the 0xFF byte of the segment's marker
	Marker   Marker
	Declared int    // declared payload size (length field - 2)
	Consumed int    // payload bytes consumed by the decoder
	Reason   string // optional detail
}

func (w *StructuralWarning) Error() string {
	msg := fmt.Sprintf("%s segment at offset %d: declared %d payload bytes, decoded %d",
		w.Marker.Name(), w.Offset, w.Declared, w.Consumed)
	if w.Reason != "" {
		msg += " (" + w.Reason + ")"
	}
	return msg
}
