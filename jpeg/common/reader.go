package common

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// byteReader is the source a Reader consumes: bytes one at a time and in
// runs for payloads.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// Reader is a forward-only cursor over a JPEG stream. It tracks the offset
// of the next byte and reads big-endian integers. It never seeks backwards.
type Reader struct {
	r      byteReader
	offset int64
	buf    [4]byte
}

// NewReader creates a new Reader positioned at offset 0
func NewReader(r io.Reader) *Reader {
	return NewReaderAt(r, 0)
}

// NewReaderAt creates a Reader whose first byte is reported at offset base.
// It is used to decode an already materialized payload while keeping
// offsets relative to the enclosing stream.
func NewReaderAt(r io.Reader, base int64) *Reader {
	br, ok := r.(byteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br, offset: base}
}

// Offset returns the stream offset of the next byte to be read.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadByte reads a single byte. It returns ErrEndOfStream when the source is
// exhausted.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrEndOfStream
		}
		return 0, err
	}
	r.offset++
	return b, nil
}

// ReadUint16 reads a 16-bit big-endian value
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.fill(r.buf[:2]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadUint24 reads a 24-bit big-endian value
func (r *Reader) ReadUint24() (uint32, error) {
	if err := r.fill(r.buf[:3]); err != nil {
		return 0, err
	}
	return uint32(r.buf[0])<<16 | uint32(r.buf[1])<<8 | uint32(r.buf[2]), nil
}

// ReadUint32 reads a 32-bit big-endian value
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.fill(r.buf[:4]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

// ReadUint reads a big-endian value of width 1 to 4 bytes.
func (r *Reader) ReadUint(width int) (uint32, error) {
	switch width {
	case 1:
		b, err := r.ReadByte()
		return uint32(b), err
	case 2:
		v, err := r.ReadUint16()
		return uint32(v), err
	case 3:
		return r.ReadUint24()
	case 4:
		return r.ReadUint32()
	}
	return 0, fmt.Errorf("unsupported integer width %d", width)
}

// ReadBytes reads exactly n bytes. It returns ErrTruncated if fewer than n
// bytes remain; the offset still advances past the bytes that were read.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read of %d bytes", ErrInvalidLength, n)
	}
	data := make([]byte, n)
	if err := r.fill(data); err != nil {
		return nil, err
	}
	return data, nil
}

// Skip discards n bytes with the same truncation rules as ReadBytes.
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	got, err := io.CopyN(io.Discard, r.r, int64(n))
	r.offset += got
	if err != nil {
		if errors.Is(err, io.EOF) {
			return r.truncated(n, int(got))
		}
		return err
	}
	return nil
}

// fill reads len(p) bytes or fails with ErrTruncated.
func (r *Reader) fill(p []byte) error {
	start := r.offset
	got, err := io.ReadFull(r.r, p)
	r.offset += int64(got)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrTruncated, len(p), start, got)
		}
		return err
	}
	return nil
}

func (r *Reader) truncated(want, got int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, got %d", ErrTruncated, want, r.offset-int64(got), got)
}
