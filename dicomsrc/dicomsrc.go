// Package dicomsrc extracts encapsulated JPEG and JPEG-LS codestreams from
// DICOM Part 10 files so they can be dumped like plain JPEG files.
package dicomsrc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cocosip/go-dicom/pkg/dicom/element"
	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
	"github.com/golang/glog"

	"github.com/Patty-OFurniture/jpegdump/jpeg/common"
)

const (
	preambleSize = 128
	headerSize   = preambleSize + 4

	maxPixelDataSize = 1024 * 1024 * 1024
)

var (
	dicomMagic = []byte("DICM")
	soi        = []byte{0xFF, byte(common.SOI)}
)

// Family groups the transfer syntaxes whose codestreams share a marker syntax.
type Family string

const (
	FamilyJPEG   Family = "JPEG"
	FamilyJPEGLS Family = "JPEG-LS"
	FamilyOther  Family = "Other"
)

var families = map[string]Family{
	transfer.JPEGBaseline8Bit.UID().UID():   FamilyJPEG,
	transfer.JPEGExtended12Bit.UID().UID():  FamilyJPEG,
	transfer.JPEGLossless.UID().UID():       FamilyJPEG,
	transfer.JPEGLosslessSV1.UID().UID():    FamilyJPEG,
	transfer.JPEGLSLossless.UID().UID():     FamilyJPEGLS,
	transfer.JPEGLSNearLossless.UID().UID(): FamilyJPEGLS,
}

// FamilyOf returns the codestream family of a transfer syntax UID.
func FamilyOf(uid string) Family {
	if f, ok := families[uid]; ok {
		return f
	}
	return FamilyOther
}

// Source is the encapsulated pixel data of one DICOM file.
type Source struct {
	Path              string
	TransferSyntaxUID string
	Family            Family
	Rows              uint16
	Columns           uint16
	BitsStored        uint16

	// Codestreams holds one entry per frame, fragments already joined.
	Codestreams [][]byte
}

// IsDICOM reports whether header starts with a DICOM Part 10 preamble, i.e.
// "DICM" at byte 128.
func IsDICOM(header []byte) bool {
	return len(header) >= headerSize && bytes.Equal(header[preambleSize:headerSize], dicomMagic)
}

// IsDICOMFile reads the preamble of path and calls IsDICOM.
func IsDICOMFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, headerSize)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return IsDICOM(header[:n]), nil
}

// ReadFile parses a DICOM file and returns its encapsulated codestreams.
func ReadFile(path string) (*Source, error) {
	ok, err := IsDICOMFile(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, common.ErrNotDICOM)
	}

	result, err := parser.ParseFile(path,
		parser.WithReadOption(parser.ReadAll),
		parser.WithLargeObjectSize(maxPixelDataSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	ds := result.Dataset
	ts := result.TransferSyntax
	src := &Source{
		Path:              path,
		TransferSyntaxUID: ts.UID().UID(),
		Rows:              ds.TryGetUInt16(tag.Rows, 0),
		Columns:           ds.TryGetUInt16(tag.Columns, 0),
		BitsStored:        ds.TryGetUInt16(tag.BitsStored, 0),
	}
	src.Family = FamilyOf(src.TransferSyntaxUID)

	if !ts.IsEncapsulated() {
		return nil, fmt.Errorf("%s: %w: %s", path, common.ErrNotEncapsulated, src.TransferSyntaxUID)
	}

	pd, ok := ds.Get(tag.PixelData)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, common.ErrNoPixelData)
	}

	var fragments [][]byte
	switch v := pd.(type) {
	case *element.OtherByteFragment:
		for _, frag := range v.Fragments() {
			fragments = append(fragments, frag.Data())
		}
	case *element.OtherWordFragment:
		for _, frag := range v.Fragments() {
			fragments = append(fragments, frag.Data())
		}
	default:
		return nil, fmt.Errorf("%s: %w: unexpected pixel data type %T", path, common.ErrNoPixelData, pd)
	}

	src.Codestreams = SplitCodestreams(fragments)
	glog.V(1).Infof("%s: transfer syntax %s (%s), %d fragments, %d codestreams",
		path, src.TransferSyntaxUID, src.Family, len(fragments), len(src.Codestreams))
	return src, nil
}

// SplitCodestreams groups pixel data fragments into codestreams. A fragment
// starting with an SOI marker begins a new codestream; any other fragment
// continues the current one. Empty fragments are ignored.
func SplitCodestreams(fragments [][]byte) [][]byte {
	var streams [][]byte
	for _, frag := range fragments {
		if len(frag) == 0 {
			continue
		}
		if len(streams) == 0 || bytes.HasPrefix(frag, soi) {
			streams = append(streams, append([]byte(nil), frag...))
			continue
		}
		last := len(streams) - 1
		streams[last] = append(streams[last], frag...)
	}
	return streams
}
