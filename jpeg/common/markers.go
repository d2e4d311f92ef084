package common

import "fmt"

// Marker is the code byte following the 0xFF prefix of a JPEG marker.
type Marker uint8

// JPEG marker codes (ITU T.81 Table B.1, ITU T.87 Table C.1)
const (
	// Temporary private use in arithmetic coding
	TEM Marker = 0x01

	// Start of Frame markers, SOFn = SOF0+n, n = 0-15 excluding 4, 8 and 12
	SOF0  Marker = 0xC0 // Baseline DCT
	SOF1  Marker = 0xC1 // Extended Sequential DCT
	SOF2  Marker = 0xC2 // Progressive DCT
	SOF3  Marker = 0xC3 // Lossless (Sequential)
	SOF5  Marker = 0xC5 // Differential Sequential DCT
	SOF6  Marker = 0xC6 // Differential Progressive DCT
	SOF7  Marker = 0xC7 // Differential Lossless
	SOF9  Marker = 0xC9 // Extended Sequential DCT, Arithmetic coding
	SOF10 Marker = 0xCA // Progressive DCT, Arithmetic coding
	SOF11 Marker = 0xCB // Lossless, Arithmetic coding
	SOF13 Marker = 0xCD // Differential Sequential DCT, Arithmetic coding
	SOF14 Marker = 0xCE // Differential Progressive DCT, Arithmetic coding
	SOF15 Marker = 0xCF // Differential Lossless, Arithmetic coding

	DHT Marker = 0xC4 // Define Huffman Table
	JPG Marker = 0xC8 // Reserved for JPEG extensions
	DAC Marker = 0xCC // Define Arithmetic Coding conditioning

	// Restart markers, RSTn = RST0+n, n = 0-7
	RST0 Marker = 0xD0
	RST7 Marker = 0xD7

	SOI Marker = 0xD8 // Start of Image
	EOI Marker = 0xD9 // End of Image
	SOS Marker = 0xDA // Start of Scan
	DQT Marker = 0xDB // Define Quantization Table
	DNL Marker = 0xDC // Define Number of Lines
	DRI Marker = 0xDD // Define Restart Interval
	DHP Marker = 0xDE // Define Hierarchical Progression
	EXP Marker = 0xDF // Expand reference components

	// Application segments, APPn = APP0+n, n = 0-15
	APP0  Marker = 0xE0
	APP7  Marker = 0xE7
	APP8  Marker = 0xE8
	APP13 Marker = 0xED
	APP14 Marker = 0xEE
	APP15 Marker = 0xEF

	// JPEG extensions, JPGn = JPG0+n, n = 0-13
	JPG0 Marker = 0xF0

	// JPEG-LS markers take two of the JPGn codes
	SOF55 Marker = 0xF7 // Start of Frame, JPEG-LS
	LSE   Marker = 0xF8 // JPEG-LS preset parameters

	JPG13 Marker = 0xFD
	COM   Marker = 0xFE // Comment

	// Fill is not a marker: a 0xFF after the prefix is a fill byte.
	Fill Marker = 0xFF
)

const (
	stdT81 = "ITU T.81/IEC 10918-1"
	stdT87 = "ITU T.87/IEC 14495-1 JPEG LS"
)

type markerInfo struct {
	name        string
	description string
	standard    string
}

var markerTable [256]markerInfo

func init() {
	markerTable[TEM] = markerInfo{"TEM", "Temporary private use in arithmetic coding", stdT81}
	markerTable[DHT] = markerInfo{"DHT", "Define Huffman Table", stdT81}
	markerTable[JPG] = markerInfo{"JPG", "Reserved for JPEG extensions", stdT81}
	markerTable[DAC] = markerInfo{"DAC", "Define Arithmetic Coding conditioning", stdT81}
	markerTable[SOI] = markerInfo{"SOI", "Start Of Image", stdT81}
	markerTable[EOI] = markerInfo{"EOI", "End Of Image", stdT81}
	markerTable[SOS] = markerInfo{"SOS", "Start Of Scan", stdT81}
	markerTable[DQT] = markerInfo{"DQT", "Define Quantization Table", stdT81}
	markerTable[DNL] = markerInfo{"DNL", "Define Number of Lines", stdT81}
	markerTable[DRI] = markerInfo{"DRI", "Define Restart Interval", stdT81}
	markerTable[DHP] = markerInfo{"DHP", "Define Hierarchical Progression", stdT81}
	markerTable[EXP] = markerInfo{"EXP", "Expand Reference Components", stdT81}
	markerTable[COM] = markerInfo{"COM", "Comment", stdT81}

	sofNames := map[Marker]string{
		SOF0:  "Baseline DCT",
		SOF1:  "Extended Sequential DCT",
		SOF2:  "Progressive DCT",
		SOF3:  "Lossless",
		SOF5:  "Differential Sequential DCT",
		SOF6:  "Differential Progressive DCT",
		SOF7:  "Differential Lossless",
		SOF9:  "Extended Sequential DCT, Arithmetic coding",
		SOF10: "Progressive DCT, Arithmetic coding",
		SOF11: "Lossless, Arithmetic coding",
		SOF13: "Differential Sequential DCT, Arithmetic coding",
		SOF14: "Differential Progressive DCT, Arithmetic coding",
		SOF15: "Differential Lossless, Arithmetic coding",
	}
	for m, kind := range sofNames {
		markerTable[m] = markerInfo{
			fmt.Sprintf("SOF%d", m-SOF0),
			fmt.Sprintf("Start Of Frame, %s", kind),
			stdT81,
		}
	}
	for m := RST0; m <= RST7; m++ {
		markerTable[m] = markerInfo{
			fmt.Sprintf("RST%d", m-RST0),
			fmt.Sprintf("Restart Marker %d", m-RST0),
			stdT81,
		}
	}
	for m := APP0; m <= APP15; m++ {
		markerTable[m] = markerInfo{
			fmt.Sprintf("APP%d", m-APP0),
			fmt.Sprintf("Application Data %d", m-APP0),
			stdT81,
		}
	}
	for m := JPG0; m <= JPG13; m++ {
		markerTable[m] = markerInfo{
			fmt.Sprintf("JPG%d", m-JPG0),
			"Reserved for JPEG extensions",
			stdT81,
		}
	}
	markerTable[SOF55] = markerInfo{"SOF_55", "Start Of Frame JPEG-LS", stdT87}
	markerTable[LSE] = markerInfo{"LSE", "JPEG-LS Preset Parameters", stdT87}

	for m := Marker(0x02); m <= 0xBF; m++ {
		markerTable[m] = markerInfo{fmt.Sprintf("RES%02X", uint8(m)), "Reserved", stdT81}
	}
}

// Name returns the short symbolic name of the marker, or "" if unknown.
func (m Marker) Name() string {
	return markerTable[m].name
}

// Description returns the long name of the marker, or "" if unknown.
func (m Marker) Description() string {
	return markerTable[m].description
}

// Standard returns the document that defines the marker.
func (m Marker) Standard() string {
	return markerTable[m].standard
}

// Known reports whether the marker has an entry in the name table.
func (m Marker) Known() bool {
	return markerTable[m].name != ""
}

// String formats the marker as it appears in the byte stream, e.g. "0xFFD8".
func (m Marker) String() string {
	return fmt.Sprintf("0xFF%02X", uint8(m))
}

// IsSOF returns true if the marker is one of the T.81 Start of Frame markers
func IsSOF(m Marker) bool {
	return (m >= SOF0 && m <= SOF3) ||
		(m >= SOF5 && m <= SOF7) ||
		(m >= SOF9 && m <= SOF11) ||
		(m >= SOF13 && m <= SOF15)
}

// IsRST returns true if the marker is a Restart marker
func IsRST(m Marker) bool {
	return m >= RST0 && m <= RST7
}

// IsAPP returns true if the marker is an application data marker
func IsAPP(m Marker) bool {
	return m >= APP0 && m <= APP15
}

// HasLength returns true if the marker is followed by a length field
func (m Marker) HasLength() bool {
	// Markers without length: SOI, EOI, RSTn and TEM
	switch {
	case m == SOI, m == EOI, m == TEM, IsRST(m):
		return false
	case m == 0, m == Fill:
		return false
	}
	return true
}
