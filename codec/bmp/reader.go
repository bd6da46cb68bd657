/*
NAME
  reader.go

DESCRIPTION
  reader.go implements BMP decoding: DIB file header, header versions 2-5,
  palette expansion for 1/4/8-bit indexed sources, and direct 24/32-bit
  reads, always expanding to the codec's default 32-bit output format
  (RGBA32).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package bmp

import (
	"encoding/binary"

	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/meta"
	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/status"
	"github.com/ausocean/sail/streamio"
)

type dibFileHeader struct {
	fileType  uint16
	size      uint32
	reserved1 uint16
	reserved2 uint16
	offset    uint32
}

type dibHeaderV2 struct {
	size     uint32
	width    int32
	height   int32
	planes   uint16
	bitCount uint16
}

type dibHeaderV3 struct {
	compression      uint32
	bitmapSize       uint32
	xPixelsPerMeter  int32
	yPixelsPerMeter  int32
	colorsUsed       uint32
	colorsImportant  uint32
}

// loadState is the per-load private state: the BMP reference codec's
// associated type for codec.LoadState.
type loadState struct {
	opts *codec.LoadOptions

	outputFormat pixelformat.PixelFormat

	fileHeader   dibFileHeader
	v2           dibHeaderV2
	v3           dibHeaderV3
	bitCount     uint16
	compression  uint32

	sourceFormat pixelformat.PixelFormat
	palette      []byte // RGBA32-ordered, 4 bytes per entry.
	paletteCount int
	padBytes     int

	frameRead bool
}

func (c *bmpCodec) LoadInit(io streamio.Stream, opts *codec.LoadOptions) (codec.LoadState, error) {
	if opts == nil {
		opts = codec.LoadOptionsFromFeatures(c.i.LoadFeatures)
	}

	var magic uint16
	if err := readLE(io, &magic); err != nil {
		return nil, err
	}
	if err := io.Seek(0, streamio.SeekSet); err != nil {
		return nil, err
	}
	if magic == ddbIdentifier {
		return nil, status.New(status.UnsupportedCompression, "BMP: device-dependent bitmaps (v1) are not supported")
	}
	if magic != dibIdentifier {
		return nil, status.New(status.UnsupportedCompression, "BMP: 0x%x is not a valid magic number", magic)
	}

	st := &loadState{opts: opts, outputFormat: c.i.LoadFeatures.DefaultOutputPixelFormat}

	if err := readDIBFileHeader(io, &st.fileHeader); err != nil {
		return nil, err
	}
	if err := readV2(io, &st.v2); err != nil {
		return nil, err
	}

	switch st.v2.size {
	case dibHeaderV2Size:
		// V2: no compression field; defaults to BI_RGB.
	case dibHeaderV3Size, dibHeaderV4Size, dibHeaderV5Size:
		if err := readV3(io, &st.v3); err != nil {
			return nil, err
		}
		// V4/V5 color-mask and ICC fields are read but not acted upon: the
		// reader always expands to a plain RGBA32/BGRA32 output regardless of
		// the source's embedded color space, matching the original codec.
		if st.v2.size >= dibHeaderV4Size {
			if err := skipBytes(io, 17*4); err != nil {
				return nil, err
			}
		}
		if st.v2.size == dibHeaderV5Size {
			if err := skipBytes(io, 4*4); err != nil {
				return nil, err
			}
		}
	default:
		return nil, status.New(status.UnsupportedCompression, "BMP: unsupported DIB header size %d", st.v2.size)
	}

	st.bitCount = st.v2.bitCount
	st.compression = st.v3.compression

	if st.v2.size >= dibHeaderV3Size {
		if (st.bitCount == 16 || st.bitCount == 32) && st.compression != biBitfields && st.compression != biRGB {
			return nil, status.New(status.UnsupportedCompression, "BMP: unsupported compression %d for %d-bit images", st.compression, st.bitCount)
		}
		if st.bitCount != 16 && st.bitCount != 32 && st.compression != biRGB {
			return nil, status.New(status.UnsupportedCompression, "BMP: unsupported compression %d", st.compression)
		}
	}

	sf, err := bitCountToPixelFormat(st.bitCount)
	if err != nil {
		return nil, err
	}
	st.sourceFormat = sf

	if st.bitCount < 16 {
		st.paletteCount = 1 << st.bitCount
		st.palette = make([]byte, st.paletteCount*4)
		entrySize := 4
		if st.v2.size == dibHeaderV2Size {
			entrySize = 3
		}
		buf := make([]byte, entrySize)
		for i := 0; i < st.paletteCount; i++ {
			if err := io.StrictRead(buf); err != nil {
				return nil, err
			}
			// File order is B,G,R[,reserved]; store as R,G,B,A=255.
			st.palette[i*4+0] = buf[2]
			st.palette[i*4+1] = buf[1]
			st.palette[i*4+2] = buf[0]
			st.palette[i*4+3] = 255
		}
	}

	bytesInRow, err := bytesInRow(int(st.v2.width), int(st.bitCount))
	if err != nil {
		return nil, err
	}
	if r := bytesInRow % 4; r != 0 {
		st.padBytes = 4 - r
	}

	return st, nil
}

func (st *loadState) SeekNextFrame(io streamio.Stream) (*image.Image, error) {
	if st.frameRead {
		return nil, status.New(status.NoMoreFrames, "BMP: no more frames")
	}
	st.frameRead = true

	width, height := int(st.v2.width), int(st.v2.height)
	if width <= 0 || height <= 0 {
		return nil, status.New(status.IncorrectImageDimensions, "BMP: incorrect image dimensions %dx%d", width, height)
	}

	img := image.New()
	img.Width = width
	img.Height = height
	img.PixelFormat = st.outputFormat
	img.BytesPerLine = pixelformat.BytesPerLine(width, st.outputFormat)
	if st.opts.IOOptions&codec.IOSourceImage != 0 {
		img.SourceImage = &meta.SourceImage{
			PixelFormat: st.sourceFormat,
			Compression: pixelformat.CompressionNone,
			Properties:  meta.PropertyFlippedVertically,
		}
	}

	if err := io.Seek(int64(st.fileHeader.offset), streamio.SeekSet); err != nil {
		return nil, err
	}

	return img, nil
}

func (st *loadState) SeekNextPass(io streamio.Stream, img *image.Image, pass int) error {
	return nil
}

func (st *loadState) Frame(io streamio.Stream, img *image.Image) error {
	bgra := st.outputFormat == pixelformat.BGRA32

	for y := img.Height - 1; y >= 0; y-- {
		scan := img.Row(y)
		x := 0
		for x < img.Width {
			switch st.bitCount {
			case 1:
				var b [1]byte
				if err := io.StrictRead(b[:]); err != nil {
					return err
				}
				for bit := 7; bit >= 0 && x < img.Width; bit-- {
					idx := (b[0] >> uint(bit)) & 0x1
					writePixel(scan, x*4, st.palette[idx*4:idx*4+4], bgra)
					x++
				}
			case 4:
				var b [1]byte
				if err := io.StrictRead(b[:]); err != nil {
					return err
				}
				idx1 := b[0] >> 4
				writePixel(scan, x*4, st.palette[idx1*4:idx1*4+4], bgra)
				x++
				if x < img.Width {
					idx2 := b[0] & 0xf
					writePixel(scan, x*4, st.palette[idx2*4:idx2*4+4], bgra)
					x++
				}
			case 8:
				var b [1]byte
				if err := io.StrictRead(b[:]); err != nil {
					return err
				}
				writePixel(scan, x*4, st.palette[b[0]*4:b[0]*4+4], bgra)
				x++
			case 24:
				var rgb [3]byte
				if err := io.StrictRead(rgb[:]); err != nil {
					return err
				}
				writePixel(scan, x*4, []byte{rgb[2], rgb[1], rgb[0], 255}, bgra)
				x++
			case 32:
				var px [4]byte
				if err := io.StrictRead(px[:]); err != nil {
					return err
				}
				writePixel(scan, x*4, []byte{px[2], px[1], px[0], px[3]}, bgra)
				x++
			default:
				return status.New(status.UnsupportedPixelFormat, "BMP: unsupported bit count %d", st.bitCount)
			}
		}
		if st.padBytes > 0 {
			if err := io.Seek(int64(st.padBytes), streamio.SeekCur); err != nil {
				return err
			}
		}
	}

	return nil
}

func (st *loadState) Finish(io streamio.Stream) error { return nil }

// writePixel writes a decoded RGBA-ordered quad into scan at offset off, in
// RGBA or BGRA channel order depending on bgra.
func writePixel(scan []byte, off int, rgba []byte, bgra bool) {
	if !bgra {
		copy(scan[off:off+4], rgba)
		return
	}
	scan[off+0] = rgba[2]
	scan[off+1] = rgba[1]
	scan[off+2] = rgba[0]
	scan[off+3] = rgba[3]
}

func bitCountToPixelFormat(bitCount uint16) (pixelformat.PixelFormat, error) {
	switch bitCount {
	case 1:
		return pixelformat.Indexed1, nil
	case 4:
		return pixelformat.Indexed4, nil
	case 8:
		return pixelformat.Indexed8, nil
	case 16:
		return pixelformat.Gray16, nil
	case 24:
		return pixelformat.RGB24, nil
	case 32:
		return pixelformat.RGBA32, nil
	default:
		return pixelformat.Unknown, status.New(status.UnsupportedPixelFormat, "BMP: unsupported bit count %d", bitCount)
	}
}

func bytesInRow(width, bitCount int) (int, error) {
	switch bitCount {
	case 1:
		return (width + 7) / 8, nil
	case 4:
		return (width + 1) / 2, nil
	case 8:
		return width, nil
	case 16:
		return width * 2, nil
	case 24:
		return width * 3, nil
	case 32:
		return width * 4, nil
	default:
		return 0, status.New(status.UnsupportedPixelFormat, "BMP: unsupported bit count %d", bitCount)
	}
}

func readLE(io streamio.Stream, v interface{}) error {
	var buf []byte
	switch v.(type) {
	case *uint16:
		buf = make([]byte, 2)
	case *uint32:
		buf = make([]byte, 4)
	default:
		panic("bmp: unsupported readLE type")
	}
	if err := io.StrictRead(buf); err != nil {
		return err
	}
	switch p := v.(type) {
	case *uint16:
		*p = binary.LittleEndian.Uint16(buf)
	case *uint32:
		*p = binary.LittleEndian.Uint32(buf)
	}
	return nil
}

func readDIBFileHeader(io streamio.Stream, fh *dibFileHeader) error {
	if err := readLE(io, &fh.fileType); err != nil {
		return err
	}
	if err := readLE(io, &fh.size); err != nil {
		return err
	}
	if err := readLE(io, &fh.reserved1); err != nil {
		return err
	}
	if err := readLE(io, &fh.reserved2); err != nil {
		return err
	}
	return readLE(io, &fh.offset)
}

func readV2(io streamio.Stream, v2 *dibHeaderV2) error {
	if err := readLE(io, &v2.size); err != nil {
		return err
	}
	var w, h uint32
	if err := readLE(io, &w); err != nil {
		return err
	}
	if err := readLE(io, &h); err != nil {
		return err
	}
	v2.width, v2.height = int32(w), int32(h)
	if err := readLE(io, &v2.planes); err != nil {
		return err
	}
	return readLE(io, &v2.bitCount)
}

func readV3(io streamio.Stream, v3 *dibHeaderV3) error {
	if err := readLE(io, &v3.compression); err != nil {
		return err
	}
	if err := readLE(io, &v3.bitmapSize); err != nil {
		return err
	}
	var x, y uint32
	if err := readLE(io, &x); err != nil {
		return err
	}
	if err := readLE(io, &y); err != nil {
		return err
	}
	v3.xPixelsPerMeter, v3.yPixelsPerMeter = int32(x), int32(y)
	if err := readLE(io, &v3.colorsUsed); err != nil {
		return err
	}
	return readLE(io, &v3.colorsImportant)
}

func skipBytes(io streamio.Stream, n int) error {
	return io.Seek(int64(n), streamio.SeekCur)
}
