/*
NAME
  writer.go

DESCRIPTION
  writer.go implements BMP encoding. The original codec left
  sail_codec_write_*_v4_bmp unimplemented (SAIL_ERROR_NOT_IMPLEMENTED); this
  file supplies a real encoder for the RGB24/BGR24/RGBA32/BGRA32 pixel
  formats so that the load-save-load round trip (spec.md §8 scenario 2) is
  exercisable, writing the mirror image of what reader.go reads.

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
	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/status"
	"github.com/ausocean/sail/streamio"
)

const fileHeaderSize = 14

type saveState struct {
	opts        *codec.SaveOptions
	frameWritten bool
}

func (c *bmpCodec) SaveInit(io streamio.Stream, opts *codec.SaveOptions) (codec.SaveState, error) {
	if opts == nil {
		opts = codec.SaveOptionsFromFeatures(c.i.SaveFeatures)
	}
	return &saveState{opts: opts}, nil
}

func (st *saveState) SeekNextFrame(io streamio.Stream, img *image.Image) error {
	if st.frameWritten {
		return status.New(status.UnsupportedImageProperty, "BMP: only a single frame may be written")
	}
	st.frameWritten = true

	hasAlpha := img.PixelFormat == pixelformat.RGBA32 || img.PixelFormat == pixelformat.BGRA32
	bitCount := 24
	if hasAlpha {
		bitCount = 32
	}

	bytesInRow, err := bytesInRow(img.Width, bitCount)
	if err != nil {
		return err
	}
	padBytes := 0
	if r := bytesInRow % 4; r != 0 {
		padBytes = 4 - r
	}
	pixelDataSize := (bytesInRow + padBytes) * img.Height

	compression := uint32(biRGB)
	if hasAlpha {
		compression = biBitfields
	}
	headerSize := uint32(dibHeaderV3Size)
	if hasAlpha {
		headerSize = dibHeaderV4Size
	}
	pixelOffset := uint32(fileHeaderSize) + headerSize
	fileSize := pixelOffset + uint32(pixelDataSize)

	if err := writeLE16(io, dibIdentifier); err != nil {
		return err
	}
	if err := writeLE32(io, fileSize); err != nil {
		return err
	}
	if err := writeLE16(io, 0); err != nil {
		return err
	}
	if err := writeLE16(io, 0); err != nil {
		return err
	}
	if err := writeLE32(io, pixelOffset); err != nil {
		return err
	}

	if err := writeLE32(io, headerSize); err != nil {
		return err
	}
	if err := writeLE32(io, uint32(int32(img.Width))); err != nil {
		return err
	}
	if err := writeLE32(io, uint32(int32(img.Height))); err != nil {
		return err
	}
	if err := writeLE16(io, 1); err != nil {
		return err
	}
	if err := writeLE16(io, uint16(bitCount)); err != nil {
		return err
	}
	if err := writeLE32(io, compression); err != nil {
		return err
	}
	if err := writeLE32(io, uint32(pixelDataSize)); err != nil {
		return err
	}
	if err := writeLE32(io, 2835); err != nil { // ~72 DPI
		return err
	}
	if err := writeLE32(io, 2835); err != nil {
		return err
	}
	if err := writeLE32(io, 0); err != nil {
		return err
	}
	if err := writeLE32(io, 0); err != nil {
		return err
	}

	if hasAlpha {
		// red_mask, green_mask, blue_mask, alpha_mask, color_space_type, then
		// the 9 CIEXYZ endpoint fields and 3 gamma fields (all left zero).
		masks := []uint32{0x00FF0000, 0x0000FF00, 0x000000FF, 0xFF000000, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
		for _, m := range masks {
			if err := writeLE32(io, m); err != nil {
				return err
			}
		}
	}

	return nil
}

func (st *saveState) SeekNextPass(io streamio.Stream, img *image.Image, pass int) error {
	return nil
}

func (st *saveState) Frame(io streamio.Stream, img *image.Image) error {
	bgrSrc := img.PixelFormat == pixelformat.BGR24 || img.PixelFormat == pixelformat.BGRA32
	hasAlpha := img.PixelFormat == pixelformat.RGBA32 || img.PixelFormat == pixelformat.BGRA32
	bitCount := 24
	if hasAlpha {
		bitCount = 32
	}
	bytesInRow, err := bytesInRow(img.Width, bitCount)
	if err != nil {
		return err
	}
	padBytes := 0
	if r := bytesInRow % 4; r != 0 {
		padBytes = 4 - r
	}
	pad := make([]byte, padBytes)

	srcStride := 3
	if hasAlpha {
		srcStride = 4
	}

	for y := img.Height - 1; y >= 0; y-- {
		scan := img.Row(y)
		out := make([]byte, bytesInRow)
		for x := 0; x < img.Width; x++ {
			so := x * srcStride
			var r, g, b, a byte
			if bgrSrc {
				b, g, r = scan[so], scan[so+1], scan[so+2]
			} else {
				r, g, b = scan[so], scan[so+1], scan[so+2]
			}
			if hasAlpha {
				a = scan[so+3]
			}
			do := x * (bitCount / 8)
			out[do+0] = b
			out[do+1] = g
			out[do+2] = r
			if hasAlpha {
				out[do+3] = a
			}
		}
		if _, err := io.Write(out); err != nil {
			return err
		}
		if padBytes > 0 {
			if _, err := io.Write(pad); err != nil {
				return err
			}
		}
	}

	return nil
}

func (st *saveState) Finish(io streamio.Stream) error {
	return io.Flush()
}

func writeLE16(io streamio.Stream, v uint16) error {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, v)
	_, err := io.Write(buf)
	return err
}

func writeLE32(io streamio.Stream, v uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	_, err := io.Write(buf)
	return err
}
