// Package report formats decoded JPEG structure as offset-tagged text lines.
package report

import (
	"fmt"
	"io"
	"strings"
)

// Line is one line of a dump: the stream offset the line describes, its
// nesting depth and the field text.
type Line struct {
	Offset int64
	Depth  int
	Text   string
}

// String formats the line with an 8-digit decimal offset.
func (l Line) String() string {
	return fmt.Sprintf("%08d %s%s", l.Offset, indent(l.Depth), l.Text)
}

func indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth)
}

// Sink receives the lines of a dump in order.
type Sink interface {
	WriteLine(Line) error
}

// Emitter writes lines to a Sink. The first sink error is kept and all later
// writes are dropped, so decoders can emit freely and check Err once.
type Emitter struct {
	sink  Sink
	err   error
	count int
}

// NewEmitter creates an Emitter writing to s
func NewEmitter(s Sink) *Emitter {
	return &Emitter{sink: s}
}

// Printf emits one formatted line at the given offset and depth.
func (e *Emitter) Printf(offset int64, depth int, format string, args ...any) {
	if e.err != nil {
		return
	}
	line := Line{Offset: offset, Depth: depth, Text: fmt.Sprintf(format, args...)}
	if err := e.sink.WriteLine(line); err != nil {
		e.err = err
		return
	}
	e.count++
}

// Err returns the first error returned by the sink.
func (e *Emitter) Err() error {
	return e.err
}

// Count returns the number of lines written successfully.
func (e *Emitter) Count() int {
	return e.count
}

// TextSink writes lines to an io.Writer, one per text line.
type TextSink struct {
	w   io.Writer
	hex bool
}

// NewTextSink creates a TextSink. With hex set, offsets are printed as
// 8-digit hexadecimal numbers instead of decimal.
func NewTextSink(w io.Writer, hex bool) *TextSink {
	return &TextSink{w: w, hex: hex}
}

// WriteLine implements Sink.
func (s *TextSink) WriteLine(l Line) error {
	var err error
	if s.hex {
		_, err = fmt.Fprintf(s.w, "%08X %s%s\n", l.Offset, indent(l.Depth), l.Text)
	} else {
		_, err = fmt.Fprintln(s.w, l.String())
	}
	return err
}

// Collector is a Sink that keeps every line in memory.
type Collector struct {
	Lines []Line
}

// WriteLine implements Sink.
func (c *Collector) WriteLine(l Line) error {
	c.Lines = append(c.Lines, l)
	return nil
}

// Texts returns the text of every collected line, without offsets.
func (c *Collector) Texts() []string {
	texts := make([]string, len(c.Lines))
	for i, l := range c.Lines {
		texts[i] = l.Text
	}
	return texts
}

// Find returns the first collected line whose text starts with prefix.
func (c *Collector) Find(prefix string) (Line, bool) {
	for _, l := range c.Lines {
		if strings.HasPrefix(l.Text, prefix) {
			return l, true
		}
	}
	return Line{}, false
}
