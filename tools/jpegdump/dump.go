package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Patty-OFurniture/jpegdump/dicomsrc"
	"github.com/Patty-OFurniture/jpegdump/jpeg/dump"
	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// dumpFile writes the dump of one file to w. DICOM files are dumped frame by
// frame when c.dicom is set.
func dumpFile(w io.Writer, path string, c config) error {
	fmt.Fprintf(w, "Dumping JPEG file: %s\n", path)
	fmt.Fprintln(w, strings.Repeat("=", 80))

	if c.dicom {
		isDICOM, err := dicomsrc.IsDICOMFile(path)
		if err != nil {
			return err
		}
		if isDICOM {
			return dumpDICOM(w, path, c)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return dumpStream(w, bufio.NewReader(f), c)
}

func dumpDICOM(w io.Writer, path string, c config) error {
	src, err := dicomsrc.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Transfer syntax: %s (%s), %d x %d, %d bits stored\n",
		src.TransferSyntaxUID, src.Family, src.Columns, src.Rows, src.BitsStored)

	for i, cs := range src.Codestreams {
		fmt.Fprintf(w, "Frame %d (%d bytes)\n", i+1, len(cs))
		if err := dumpStream(w, bytes.NewReader(cs), c); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
	}
	return nil
}

// dumpStream runs a fresh Dumper over r. Output lines already written stay
// in w when the dump fails part way.
func dumpStream(w io.Writer, r io.Reader, c config) error {
	d := dump.New(r, report.NewTextSink(w, c.hex), dump.WithOptions(c.opts))
	err := d.Dump()
	if n := len(d.Warnings()); n > 0 {
		fmt.Fprintf(w, "%d structural warning(s)\n", n)
	}
	return err
}
