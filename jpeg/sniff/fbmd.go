package sniff

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/Patty-OFurniture/jpegdump/jpeg/report"
)

// FBMD text layout: "FBMD", 2-char prefix, 4-char hex count, then count
// tokens of 8 hex chars each.
const (
	fbmdPrefixOffset = 4
	fbmdCountOffset  = 6
	fbmdTokenOffset  = 10
	fbmdTokenSize    = 8
)

var fbmdMagic = []byte("FBMD")

// FBMDToken is one 8-char hex token. The hex digits encode a little-endian
// uint32.
type FBMDToken struct {
	Offset int
	Hex    string
	Value  uint32
}

// FBMD is the sub-record found in an IPTC Special Instructions text.
type FBMD struct {
	Offset   int
	Prefix   string
	CountHex string
	Count    int
	Tokens   []FBMDToken

	StopReason string
}

// DecodeFBMD decodes text if it starts with "FBMD". offset is the position
// of text within the APP13 payload. Tokens are decoded until count is
// reached or the text runs out.
func DecodeFBMD(text []byte, offset int) *FBMD {
	if !bytes.HasPrefix(text, fbmdMagic) || len(text) < fbmdTokenOffset {
		return nil
	}
	f := &FBMD{
		Offset:   offset,
		Prefix:   string(text[fbmdPrefixOffset:fbmdCountOffset]),
		CountHex: string(text[fbmdCountOffset:fbmdTokenOffset]),
	}
	count, err := strconv.ParseUint(f.CountHex, 16, 16)
	if err != nil {
		f.StopReason = "invalid hex count"
		return f
	}
	f.Count = int(count)

	for i := 0; i < f.Count; i++ {
		start := fbmdTokenOffset + i*fbmdTokenSize
		end := start + fbmdTokenSize
		if end > len(text) {
			f.StopReason = "text ends before last token"
			break
		}
		tok := string(text[start:end])
		raw, err := hex.DecodeString(tok)
		if err != nil {
			f.StopReason = "invalid hex token " + strconv.Quote(tok)
			break
		}
		f.Tokens = append(f.Tokens, FBMDToken{
			Offset: offset + start,
			Hex:    tok,
			Value:  binary.LittleEndian.Uint32(raw),
		})
	}
	return f
}

// Report emits the FBMD fields. base is the stream offset of the payload.
func (f *FBMD) Report(base int64, e *report.Emitter) {
	off := base + int64(f.Offset)
	e.Printf(off, 4, "FBMD sub-record")
	e.Printf(off+fbmdPrefixOffset, 4, "Prefix = %s", f.Prefix)
	e.Printf(off+fbmdCountOffset, 4, "Count = %d (%s)", f.Count, f.CountHex)
	for i, t := range f.Tokens {
		e.Printf(base+int64(t.Offset), 5, "[%d] %s = %d", i, t.Hex, t.Value)
	}
	if f.StopReason != "" {
		e.Printf(off, 4, "FBMD decoding stopped: %s", f.StopReason)
	}
}
