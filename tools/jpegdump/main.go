// jpegdump prints the marker segments of JPEG and JPEG-LS files, one
// offset-tagged line per field.
//
// Usage:
//
//	jpegdump [flags] file...
//
// DICOM files with encapsulated JPEG or JPEG-LS pixel data are recognized by
// their preamble and every frame is dumped separately.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/Patty-OFurniture/jpegdump/jpeg/dump"
	"github.com/Patty-OFurniture/jpegdump/jpeg/sniff"
)

type config struct {
	hex        bool
	dicom      bool
	opts       dump.Options
	irbPadding string
}

func main() {
	var c config
	flag.BoolVar(&c.hex, "hex", false, "print offsets in hexadecimal")
	flag.BoolVar(&c.opts.SkipUnknownSegments, "skip-unknown", false, "skip the payload of DQT, DHT, SOFn and other segments that are not decoded")
	flag.StringVar(&c.irbPadding, "irb-padding", "even", "Photoshop resource block alignment: even or none")
	flag.BoolVar(&c.dicom, "dicom", true, "dump DICOM files (detected by the DICM preamble) frame by frame; when false their raw bytes are scanned")

	// glog writes to files in the temp directory unless told otherwise.
	_ = flag.Set("logtostderr", "true")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	pad, err := sniff.ParsePadding(c.irbPadding)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	c.opts.IRBPadding = pad

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	w := bufio.NewWriter(os.Stdout)
	failed := 0
	for _, path := range flag.Args() {
		if err := dumpFile(w, path, c); err != nil {
			// flush what was dumped before the failure so it stays in order
			w.Flush()
			glog.Errorf("%s: %v", path, err)
			failed++
		}
	}
	if err := w.Flush(); err != nil {
		glog.Errorf("failed to write output: %v", err)
		failed++
	}
	if failed > 0 {
		glog.Flush()
		os.Exit(1)
	}
}
