/*
NAME
  pixelformat.go

DESCRIPTION
  pixelformat.go enumerates every pixel arrangement SAIL can represent, and
  the bit-depth/channel-order arithmetic shared by the conversion and
  scaling engines.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pixelformat enumerates the pixel formats, compressions,
// orientations and chroma-subsampling schemes SAIL understands, along with
// bits-per-pixel arithmetic and canonical string forms.
package pixelformat

import "fmt"

// PixelFormat is a closed sum type enumerating every supported pixel
// arrangement. The zero value is Unknown.
type PixelFormat int

const (
	Unknown PixelFormat = iota

	// Indexed, 1 to 16 bpp. Sub-8-bpp values pack multiple pixels per byte,
	// MSB-first.
	Indexed1
	Indexed2
	Indexed4
	Indexed8
	Indexed16

	// Grayscale without alpha.
	Gray1
	Gray2
	Gray4
	Gray8
	Gray16

	// Grayscale with alpha.
	GrayAlpha8  // 8 bits gray + 8 bits alpha, packed 16 bpp total.
	GrayAlpha16 // 16 bits gray + 16 bits alpha, packed 32 bpp total.
	GrayAlpha32 // reserved wide variant (2x16 treated distinctly from GrayAlpha16 by callers that need it).

	// Packed 16-bit RGB.
	RGB555
	BGR555
	RGB565
	BGR565

	// 24-bit.
	RGB24
	BGR24

	// 48-bit.
	RGB48
	BGR48

	// 32-bit RGB family (all eight channel orderings).
	RGBX32
	BGRX32
	XRGB32
	XBGR32
	RGBA32
	BGRA32
	ARGB32
	ABGR32

	// 64-bit equivalents.
	RGBX64
	BGRX64
	XRGB64
	XBGR64
	RGBA64
	BGRA64
	ARGB64
	ABGR64

	// CMYK.
	CMYK32
	CMYK64

	// YCbCr / YCCK, used natively by some codecs and by the scaling
	// back-end's YUV intermediates.
	YCbCr24
	YCCK32
	YUV24
	YUVA32
)

// canonical is the string form used in descriptor files and by String/Parse,
// matching spec.md's examples (BPP24-RGB, BPP32-RGBA, BPP8-INDEXED, ...).
var canonical = map[PixelFormat]string{
	Unknown:    "UNKNOWN",
	Indexed1:   "BPP1-INDEXED",
	Indexed2:   "BPP2-INDEXED",
	Indexed4:   "BPP4-INDEXED",
	Indexed8:   "BPP8-INDEXED",
	Indexed16:  "BPP16-INDEXED",
	Gray1:      "BPP1-GRAYSCALE",
	Gray2:      "BPP2-GRAYSCALE",
	Gray4:      "BPP4-GRAYSCALE",
	Gray8:      "BPP8-GRAYSCALE",
	Gray16:     "BPP16-GRAYSCALE",
	GrayAlpha8:  "BPP16-GRAYSCALE-ALPHA",
	GrayAlpha16: "BPP32-GRAYSCALE-ALPHA",
	GrayAlpha32: "BPP64-GRAYSCALE-ALPHA",
	RGB555:     "BPP16-RGB555",
	BGR555:     "BPP16-BGR555",
	RGB565:     "BPP16-RGB565",
	BGR565:     "BPP16-BGR565",
	RGB24:      "BPP24-RGB",
	BGR24:      "BPP24-BGR",
	RGB48:      "BPP48-RGB",
	BGR48:      "BPP48-BGR",
	RGBX32:     "BPP32-RGBX",
	BGRX32:     "BPP32-BGRX",
	XRGB32:     "BPP32-XRGB",
	XBGR32:     "BPP32-XBGR",
	RGBA32:     "BPP32-RGBA",
	BGRA32:     "BPP32-BGRA",
	ARGB32:     "BPP32-ARGB",
	ABGR32:     "BPP32-ABGR",
	RGBX64:     "BPP64-RGBX",
	BGRX64:     "BPP64-BGRX",
	XRGB64:     "BPP64-XRGB",
	XBGR64:     "BPP64-XBGR",
	RGBA64:     "BPP64-RGBA",
	BGRA64:     "BPP64-BGRA",
	ARGB64:     "BPP64-ARGB",
	ABGR64:     "BPP64-ABGR",
	CMYK32:     "BPP32-CMYK",
	CMYK64:     "BPP64-CMYK",
	YCbCr24:    "BPP24-YCBCR",
	YCCK32:     "BPP32-YCCK",
	YUV24:      "BPP24-YUV",
	YUVA32:     "BPP32-YUVA",
}

var fromCanonical map[string]PixelFormat

func init() {
	fromCanonical = make(map[string]PixelFormat, len(canonical))
	for pf, s := range canonical {
		fromCanonical[s] = pf
	}
}

// String returns the canonical name of pf. String and Parse are mutual
// inverses for every value in the enum (spec.md §8's injectivity property).
func (pf PixelFormat) String() string {
	if s, ok := canonical[pf]; ok {
		return s
	}
	return fmt.Sprintf("PixelFormat(%d)", int(pf))
}

// Parse is the inverse of String.
func Parse(s string) (PixelFormat, error) {
	if pf, ok := fromCanonical[s]; ok {
		return pf, nil
	}
	return Unknown, fmt.Errorf("pixelformat: unknown name %q", s)
}

// bppTable holds the constant bits-per-pixel for every format.
var bppTable = map[PixelFormat]int{
	Unknown:     0,
	Indexed1:    1,
	Indexed2:    2,
	Indexed4:    4,
	Indexed8:    8,
	Indexed16:   16,
	Gray1:       1,
	Gray2:       2,
	Gray4:       4,
	Gray8:       8,
	Gray16:      16,
	GrayAlpha8:  16,
	GrayAlpha16: 32,
	GrayAlpha32: 64,
	RGB555:      16,
	BGR555:      16,
	RGB565:      16,
	BGR565:      16,
	RGB24:       24,
	BGR24:       24,
	RGB48:       48,
	BGR48:       48,
	RGBX32:      32,
	BGRX32:      32,
	XRGB32:      32,
	XBGR32:      32,
	RGBA32:      32,
	BGRA32:      32,
	ARGB32:      32,
	ABGR32:      32,
	RGBX64:      64,
	BGRX64:      64,
	XRGB64:      64,
	XBGR64:      64,
	RGBA64:      64,
	BGRA64:      64,
	ARGB64:      64,
	ABGR64:      64,
	CMYK32:      32,
	CMYK64:      64,
	YCbCr24:     24,
	YCCK32:      32,
	YUV24:       24,
	YUVA32:      32,
}

// BitsPerPixel returns the constant number of bits a single pixel occupies
// in this format.
func (pf PixelFormat) BitsPerPixel() int {
	return bppTable[pf]
}

// BytesPerLine returns ceil(width*bpp/8), the minimum stride for width
// pixels in this format. Panics never occur; width <= 0 yields 0.
func BytesPerLine(width int, pf PixelFormat) int {
	if width <= 0 {
		return 0
	}
	bpp := pf.BitsPerPixel()
	return (width*bpp + 7) / 8
}

// IsIndexed reports whether pf requires a palette to render.
func (pf PixelFormat) IsIndexed() bool {
	switch pf {
	case Indexed1, Indexed2, Indexed4, Indexed8, Indexed16:
		return true
	default:
		return false
	}
}

// IsByteAligned reports whether bits-per-pixel is divisible by 8 -- the
// scaling engine's precondition (spec.md §4.6).
func (pf PixelFormat) IsByteAligned() bool {
	bpp := pf.BitsPerPixel()
	return bpp != 0 && bpp%8 == 0
}

// HasAlpha reports whether pf carries an alpha (or padding-as-no-alpha)
// channel that is a genuine alpha channel.
func (pf PixelFormat) HasAlpha() bool {
	switch pf {
	case GrayAlpha8, GrayAlpha16, GrayAlpha32,
		RGBA32, BGRA32, ARGB32, ABGR32,
		RGBA64, BGRA64, ARGB64, ABGR64,
		YUVA32:
		return true
	default:
		return false
	}
}

// Family groups pixel formats for closest-format selection (spec.md §4.5).
type Family int

const (
	FamilyUnknown Family = iota
	FamilyIndexed
	FamilyGrayscale
	FamilyRGB
	FamilyYCbCr
	FamilyCMYK
	FamilyYUV
)

// FamilyOf classifies pf.
func FamilyOf(pf PixelFormat) Family {
	switch pf {
	case Indexed1, Indexed2, Indexed4, Indexed8, Indexed16:
		return FamilyIndexed
	case Gray1, Gray2, Gray4, Gray8, Gray16, GrayAlpha8, GrayAlpha16, GrayAlpha32:
		return FamilyGrayscale
	case RGB555, BGR555, RGB565, BGR565,
		RGB24, BGR24, RGB48, BGR48,
		RGBX32, BGRX32, XRGB32, XBGR32, RGBA32, BGRA32, ARGB32, ABGR32,
		RGBX64, BGRX64, XRGB64, XBGR64, RGBA64, BGRA64, ARGB64, ABGR64:
		return FamilyRGB
	case YCbCr24:
		return FamilyYCbCr
	case CMYK32, CMYK64, YCCK32:
		return FamilyCMYK
	case YUV24, YUVA32:
		return FamilyYUV
	default:
		return FamilyUnknown
	}
}

// Compression is a closed enum of pixel-data compression schemes, surfaced
// in source-image metadata and save options.
type Compression int

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionRLE
	CompressionDeflate
	CompressionLZW
	CompressionJPEG
	CompressionPNG
	CompressionLZMA
	CompressionZSTD
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "NONE"
	case CompressionRLE:
		return "RLE"
	case CompressionDeflate:
		return "DEFLATE"
	case CompressionLZW:
		return "LZW"
	case CompressionJPEG:
		return "JPEG"
	case CompressionPNG:
		return "PNG"
	case CompressionLZMA:
		return "LZMA"
	case CompressionZSTD:
		return "ZSTD"
	default:
		return "UNKNOWN"
	}
}

// Orientation mirrors EXIF orientation semantics: eight values covering the
// four rotations and their horizontal mirrors.
type Orientation int

const (
	OrientationNormal Orientation = iota
	OrientationMirroredHorizontally
	OrientationRotated180
	OrientationMirroredVertically
	OrientationMirroredHorizontallyRotated270
	OrientationRotated90
	OrientationMirroredHorizontallyRotated90
	OrientationRotated270
)

// ChromaSubsampling is a closed enum of chroma subsampling schemes.
type ChromaSubsampling int

const (
	ChromaUnknown ChromaSubsampling = iota
	Chroma444
	Chroma440
	Chroma422
	Chroma420
	Chroma411
	Chroma410
)
