package sniff

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// macRoman decodes a Photoshop Pascal string. Photoshop writes resource
// names in the Mac OS Roman encoding.
func macRoman(b []byte) string {
	s, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

// iimText decodes IPTC-IIM text. Records written with the UTF-8 coded
// character set are kept; everything else is read as ISO 8859-1.
func iimText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
