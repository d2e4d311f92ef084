package sniff

// Image resource ids (Adobe Photoshop File Formats Specification, Image
// Resource IDs)
const (
	ResourceIPTC uint16 = 0x0404
)

var photoshopResources = map[uint16]string{
	0x03E8: "Obsolete--Photoshop 2.0 only. Contains five 2-byte values: number of channels, rows, columns, depth, and mode",
	0x03E9: "Macintosh print manager print info record",
	0x03EA: "Macintosh page format information. No longer read by Photoshop. (Obsolete)",
	0x03EB: "Obsolete--Photoshop 2.0 only. Contains the indexed color table",
	0x03ED: "ResolutionInfo structure",
	0x03EE: "Names of the alpha channels as a series of Pascal strings",
	0x03EF: "(Obsolete) DisplayInfo structure",
	0x03F0: "The caption as a Pascal string",
	0x03F1: "Border information",
	0x03F2: "Background color",
	0x03F3: "Print flags",
	0x03F4: "Grayscale and multichannel halftoning information",
	0x03F5: "Color halftoning information",
	0x03F6: "Duotone halftoning information",
	0x03F7: "Grayscale and multichannel transfer function",
	0x03F8: "Color transfer functions",
	0x03F9: "Duotone transfer functions",
	0x03FA: "Duotone image information",
	0x03FB: "Two bytes for the effective black and white values for the dot range",
	0x03FC: "(Obsolete)",
	0x03FD: "EPS options",
	0x03FE: "Quick Mask information",
	0x03FF: "(Obsolete)",
	0x0400: "Layer state information",
	0x0401: "Working path (not saved)",
	0x0402: "Layers group information",
	0x0403: "(Obsolete)",
	0x0404: "IPTC-NAA record",
	0x0405: "Image mode for raw format files",
	0x0406: "JPEG quality. Private",
	0x0407: "(Unused)",
	0x0408: "Grid and guides information",
	0x0409: "(Obsolete) Photoshop 4.0 Thumbnail resource",
	0x040A: "Copyright flag",
	0x040B: "URL",
	0x040C: "Thumbnail resource",
	0x040D: "Global Angle",
	0x040E: "(Obsolete) Color samplers resource",
	0x040F: "ICC Profile",
	0x0410: "Watermark",
	0x0411: "ICC Untagged Profile",
	0x0412: "Effects visible",
	0x0413: "Spot Halftone",
	0x0414: "Document-specific IDs seed number",
	0x0415: "Unicode Alpha Names",
	0x0416: "Indexed Color Table Count",
	0x0417: "Transparency Index",
	0x0418: "(Unused)",
	0x0419: "Global Altitude",
	0x041A: "Slices",
	0x041B: "Workflow URL",
	0x041C: "Jump To XPEP",
	0x041D: "Alpha Identifiers",
	0x041E: "URL List",
	0x041F: "(Unused)",
	0x0420: "(Unused)",
	0x0421: "Version Info",
	0x0422: "EXIF data 1",
	0x0423: "EXIF data 3",
	0x0424: "XMP metadata",
	0x0425: "Caption digest",
	0x0426: "Print scale",
	0x0427: "(Unused)",
	0x0428: "Pixel Aspect Ratio",
	0x0429: "Layer Comps",
	0x042A: "Alternate Duotone Colors",
	0x042B: "Alternate Spot Colors",
	0x042C: "(Unused)",
	0x042D: "Layer Selection ID(s)",
	0x042E: "HDR Toning information",
	0x042F: "Print info",
	0x0430: "Layer Group(s) Enabled ID",
	0x0431: "Color samplers resource",
	0x0432: "Measurement Scale",
	0x0433: "Timeline Information",
	0x0434: "Sheet Disclosure",
	0x0435: "DisplayInfo structure to support floating point colors",
	0x0436: "Onion Skins",
	0x0437: "(Unused)",
	0x0438: "Count Information",
	0x0439: "(Unused)",
	0x043A: "Print Information",
	0x043B: "Print Style",
	0x043C: "Macintosh NSPrintInfo",
	0x043D: "Windows DEVMODE",
	0x043E: "Auto Save File Path",
	0x043F: "Auto Save Format",
	0x0440: "Path Selection State",
	0x0BB7: "Name of clipping path",
	0x0BB8: "Origin Path Info",
	0x1B58: "Image Ready variables",
	0x1B59: "Image Ready data sets",
	0x1B5A: "Image Ready default selected state",
	0x1B5B: "Image Ready 7 rollover expanded state",
	0x1B5C: "Image Ready rollover expanded state",
	0x1B5D: "Image Ready save layer settings",
	0x1B5E: "Image Ready version",
	0x1F40: "Lightroom workflow",
	0x2710: "Print flags information",
}

type resourceRange struct {
	first, last uint16
	description string
}

var photoshopResourceRanges = []resourceRange{
	{0x07D0, 0x0BB6, "Path information"},
	{0x0FA0, 0x1387, "Plug-in resources"},
}

// ResourceName returns the description of a Photoshop image resource id, or
// "[UNKNOWN]".
func ResourceName(id uint16) string {
	if name, ok := photoshopResources[id]; ok {
		return name
	}
	for _, r := range photoshopResourceRanges {
		if id >= r.first && id <= r.last {
			return r.description
		}
	}
	return "[UNKNOWN]"
}
