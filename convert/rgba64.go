/*
NAME
  rgba64.go

DESCRIPTION
  rgba64.go implements the 64-bit-per-pixel RGBA intermediate every
  conversion stages through: decodeToRGBA64 unpacks any supported source
  format into it, encodeFromRGBA64 packs it into any supported
  destination format, applying the alpha-drop/alpha-blend policy when the
  destination has no alpha channel of its own.

  Ported from original_source/src/libsail-manip/convert_to_64.c (the
  per-format unpack logic) and convert_to_32.c (the 8-bit channel-offset
  tables, generalized here to serve both 32- and 64-bit RGB families).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package convert

import (
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/meta"
	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/status"
)

// supported reports whether convert.go's decode/encode paths know pf.
func supported(pf pixelformat.PixelFormat) bool {
	switch pf {
	case pixelformat.Indexed1, pixelformat.Indexed2, pixelformat.Indexed4, pixelformat.Indexed8,
		pixelformat.Gray1, pixelformat.Gray2, pixelformat.Gray4, pixelformat.Gray8, pixelformat.Gray16,
		pixelformat.GrayAlpha8, pixelformat.GrayAlpha16,
		pixelformat.RGB555, pixelformat.BGR555, pixelformat.RGB565, pixelformat.BGR565,
		pixelformat.RGB24, pixelformat.BGR24, pixelformat.RGB48, pixelformat.BGR48,
		pixelformat.RGBX32, pixelformat.BGRX32, pixelformat.XRGB32, pixelformat.XBGR32,
		pixelformat.RGBA32, pixelformat.BGRA32, pixelformat.ARGB32, pixelformat.ABGR32,
		pixelformat.RGBX64, pixelformat.BGRX64, pixelformat.XRGB64, pixelformat.XBGR64,
		pixelformat.RGBA64, pixelformat.BGRA64, pixelformat.ARGB64, pixelformat.ABGR64,
		pixelformat.CMYK32, pixelformat.CMYK64,
		pixelformat.YCbCr24:
		return true
	default:
		return false
	}
}

// channelOffsets returns the R,G,B,A component index (0-based, in units
// of the format's channel width) within one pixel of a 32-/64-bit RGB
// family format. a == -1 means no alpha channel (an X/padding slot).
// Ported from convert_to_32.c's per-format case list.
func channelOffsets(pf pixelformat.PixelFormat) (r, g, b, a int) {
	switch pf {
	case pixelformat.RGBX32, pixelformat.RGBX64:
		return 0, 1, 2, -1
	case pixelformat.BGRX32, pixelformat.BGRX64:
		return 2, 1, 0, -1
	case pixelformat.XRGB32, pixelformat.XRGB64:
		return 1, 2, 3, -1
	case pixelformat.XBGR32, pixelformat.XBGR64:
		return 3, 2, 1, -1
	case pixelformat.RGBA32, pixelformat.RGBA64:
		return 0, 1, 2, 3
	case pixelformat.BGRA32, pixelformat.BGRA64:
		return 2, 1, 0, 3
	case pixelformat.ARGB32, pixelformat.ARGB64:
		return 1, 2, 3, 0
	case pixelformat.ABGR32, pixelformat.ABGR64:
		return 3, 2, 1, 0
	default:
		return 0, 1, 2, -1
	}
}

func is64Family(pf pixelformat.PixelFormat) bool {
	switch pf {
	case pixelformat.RGBX64, pixelformat.BGRX64, pixelformat.XRGB64, pixelformat.XBGR64,
		pixelformat.RGBA64, pixelformat.BGRA64, pixelformat.ARGB64, pixelformat.ABGR64:
		return true
	default:
		return false
	}
}

// to16 scales an 8-bit channel to 16-bit (spec.md §4.5 "×257" rule).
func to16(v byte) uint16 { return uint16(v) * 257 }

// to8 scales a 16-bit channel down to 8-bit (spec.md §4.5 "÷257" rule).
func to8(v uint16) byte { return byte(v / 257) }

// decodeToRGBA64 unpacks img into a flat width*height*4 uint16 buffer, in
// R,G,B,A order, every channel scaled to 16 bits.
func decodeToRGBA64(img *image.Image) ([]uint16, error) {
	out := make([]uint16, img.Width*img.Height*4)

	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		base := y * img.Width * 4

		switch {
		case img.PixelFormat.IsIndexed():
			if err := decodeIndexedRow(row, img.Width, img.PixelFormat, img.Palette, out[base:]); err != nil {
				return nil, err
			}
		default:
			if err := decodeDirectRow(row, img.Width, img.PixelFormat, out[base:]); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// decodeIndexedRow unpacks one row of 1/2/4/8-bit indexed pixels,
// MSB-first (spec.md §4.5 "Indexed and sub-byte formats"), resolving
// each index through pal, which must itself be RGB24 or RGBA32.
func decodeIndexedRow(row []byte, width int, pf pixelformat.PixelFormat, pal *meta.Palette, out []uint16) error {
	if pal == nil {
		return status.New(status.BrokenImage, "convert: indexed image has no palette")
	}

	bpp := pf.BitsPerPixel()
	for x := 0; x < width; x++ {
		idx, err := unpackIndex(row, x, bpp)
		if err != nil {
			return err
		}
		r, g, b, a, ok := pal.Entry(idx)
		if !ok {
			return status.New(status.BrokenImage, "convert: palette index %d out of range [0, %d)", idx, pal.EntryCount)
		}
		o := x * 4
		out[o+0], out[o+1], out[o+2], out[o+3] = to16(r), to16(g), to16(b), to16(a)
	}
	return nil
}

func unpackIndex(row []byte, x, bpp int) (int, error) {
	switch bpp {
	case 8:
		return int(row[x]), nil
	case 4:
		b := row[x/2]
		if x%2 == 0 {
			return int(b >> 4), nil
		}
		return int(b & 0xf), nil
	case 2:
		b := row[x/4]
		shift := uint(6 - 2*(x%4))
		return int((b >> shift) & 0x3), nil
	case 1:
		b := row[x/8]
		shift := uint(7 - x%8)
		return int((b >> shift) & 0x1), nil
	default:
		return 0, status.New(status.UnsupportedPixelFormat, "convert: unsupported indexed bit depth %d", bpp)
	}
}

// decodeDirectRow unpacks one row of a non-indexed format into out.
func decodeDirectRow(row []byte, width int, pf pixelformat.PixelFormat, out []uint16) error {
	switch pf {
	case pixelformat.Gray1, pixelformat.Gray2, pixelformat.Gray4:
		return decodeSubByteGrayRow(row, width, pf, out)
	case pixelformat.Gray8:
		for x := 0; x < width; x++ {
			v := to16(row[x])
			o := x * 4
			out[o+0], out[o+1], out[o+2], out[o+3] = v, v, v, 65535
		}
		return nil
	case pixelformat.Gray16:
		for x := 0; x < width; x++ {
			v := be16(row[x*2 : x*2+2])
			o := x * 4
			out[o+0], out[o+1], out[o+2], out[o+3] = v, v, v, 65535
		}
		return nil
	case pixelformat.GrayAlpha8:
		for x := 0; x < width; x++ {
			v, a := to16(row[x*2]), to16(row[x*2+1])
			o := x * 4
			out[o+0], out[o+1], out[o+2], out[o+3] = v, v, v, a
		}
		return nil
	case pixelformat.GrayAlpha16:
		for x := 0; x < width; x++ {
			v, a := be16(row[x*4:x*4+2]), be16(row[x*4+2:x*4+4])
			o := x * 4
			out[o+0], out[o+1], out[o+2], out[o+3] = v, v, v, a
		}
		return nil
	case pixelformat.RGB555, pixelformat.BGR555, pixelformat.RGB565, pixelformat.BGR565:
		return decodePacked16Row(row, width, pf, out)
	case pixelformat.RGB24, pixelformat.BGR24:
		bgr := pf == pixelformat.BGR24
		for x := 0; x < width; x++ {
			c := row[x*3 : x*3+3]
			o := x * 4
			if bgr {
				out[o+0], out[o+1], out[o+2] = to16(c[2]), to16(c[1]), to16(c[0])
			} else {
				out[o+0], out[o+1], out[o+2] = to16(c[0]), to16(c[1]), to16(c[2])
			}
			out[o+3] = 65535
		}
		return nil
	case pixelformat.RGB48, pixelformat.BGR48:
		bgr := pf == pixelformat.BGR48
		for x := 0; x < width; x++ {
			c := row[x*6 : x*6+6]
			r, g, b := be16(c[0:2]), be16(c[2:4]), be16(c[4:6])
			o := x * 4
			if bgr {
				out[o+0], out[o+1], out[o+2] = b, g, r
			} else {
				out[o+0], out[o+1], out[o+2] = r, g, b
			}
			out[o+3] = 65535
		}
		return nil
	case pixelformat.CMYK32:
		for x := 0; x < width; x++ {
			c := row[x*4 : x*4+4]
			r, g, b := cmykToRGB(c[0], c[1], c[2], c[3])
			o := x * 4
			out[o+0], out[o+1], out[o+2], out[o+3] = to16(r), to16(g), to16(b), 65535
		}
		return nil
	case pixelformat.CMYK64:
		for x := 0; x < width; x++ {
			c := row[x*8 : x*8+8]
			r, g, b := cmykToRGB(to8(be16(c[0:2])), to8(be16(c[2:4])), to8(be16(c[4:6])), to8(be16(c[6:8])))
			o := x * 4
			out[o+0], out[o+1], out[o+2], out[o+3] = to16(r), to16(g), to16(b), 65535
		}
		return nil
	case pixelformat.YCbCr24:
		for x := 0; x < width; x++ {
			c := row[x*3 : x*3+3]
			r, g, b := ycbcrToRGB(c[0], c[1], c[2])
			o := x * 4
			out[o+0], out[o+1], out[o+2], out[o+3] = to16(r), to16(g), to16(b), 65535
		}
		return nil
	default:
		if is64Family(pf) {
			r, g, b, a := channelOffsets(pf)
			for x := 0; x < width; x++ {
				c := row[x*8 : x*8+8]
				o := x * 4
				out[o+0] = be16(c[r*2 : r*2+2])
				out[o+1] = be16(c[g*2 : g*2+2])
				out[o+2] = be16(c[b*2 : b*2+2])
				if a < 0 {
					out[o+3] = 65535
				} else {
					out[o+3] = be16(c[a*2 : a*2+2])
				}
			}
			return nil
		}
		r, g, b, a := channelOffsets(pf)
		for x := 0; x < width; x++ {
			c := row[x*4 : x*4+4]
			o := x * 4
			out[o+0] = to16(c[r])
			out[o+1] = to16(c[g])
			out[o+2] = to16(c[b])
			if a < 0 {
				out[o+3] = 65535
			} else {
				out[o+3] = to16(c[a])
			}
		}
		return nil
	}
}

// decodeSubByteGrayRow handles 1/2/4-bit grayscale, MSB-first, scaling
// linearly per spec.md §4.5: 1-bit {0->0, 1->255}, 2-bit ×85, 4-bit ×17.
func decodeSubByteGrayRow(row []byte, width int, pf pixelformat.PixelFormat, out []uint16) error {
	bpp := pf.BitsPerPixel()
	var scale byte
	switch bpp {
	case 1:
		scale = 255
	case 2:
		scale = 85
	case 4:
		scale = 17
	default:
		return status.New(status.UnsupportedPixelFormat, "convert: unsupported grayscale bit depth %d", bpp)
	}
	for x := 0; x < width; x++ {
		raw, err := unpackIndex(row, x, bpp)
		if err != nil {
			return err
		}
		v := to16(byte(raw) * scale)
		o := x * 4
		out[o+0], out[o+1], out[o+2], out[o+3] = v, v, v, 65535
	}
	return nil
}

// decodePacked16Row extracts R5G6B5/R5G5B5-family channels and scales
// them to 8 bits by multiplying up to the full range (v*255/max), the
// precise inverse of encodePacked16Pixel's downscale.
func decodePacked16Row(row []byte, width int, pf pixelformat.PixelFormat, out []uint16) error {
	bgr := pf == pixelformat.BGR555 || pf == pixelformat.BGR565
	is565 := pf == pixelformat.RGB565 || pf == pixelformat.BGR565

	for x := 0; x < width; x++ {
		v := uint16(row[x*2]) | uint16(row[x*2+1])<<8

		var r, g, b byte
		if is565 {
			r = scaleUp(byte((v>>11)&0x1f), 31)
			g = scaleUp(byte((v>>5)&0x3f), 63)
			b = scaleUp(byte(v&0x1f), 31)
		} else {
			r = scaleUp(byte((v>>10)&0x1f), 31)
			g = scaleUp(byte((v>>5)&0x1f), 31)
			b = scaleUp(byte(v&0x1f), 31)
		}
		if bgr {
			r, b = b, r
		}

		o := x * 4
		out[o+0], out[o+1], out[o+2], out[o+3] = to16(r), to16(g), to16(b), 65535
	}
	return nil
}

func scaleUp(v, max byte) byte {
	return byte((uint16(v)*255 + uint16(max)/2) / uint16(max))
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }

// encodeFromRGBA64 packs rgba (decodeToRGBA64's output layout) into a
// freshly-allocated image of pixel format to, applying opts' alpha policy
// if to has no alpha channel of its own.
func encodeFromRGBA64(rgba []uint16, width, height int, to pixelformat.PixelFormat, opts *Options) (*image.Image, error) {
	if to.IsIndexed() {
		return nil, status.New(status.UnsupportedPixelFormat, "convert: conversion to an indexed pixel format is not supported")
	}

	img, err := image.NewWithPixels(width, height, to)
	if err != nil {
		return nil, err
	}

	alphaOpt := opts.alpha()
	bg24 := opts.background24()
	bg48 := opts.background48()
	hasOutAlpha := to.HasAlpha()

	for y := 0; y < height; y++ {
		srcBase := y * width * 4
		dst := img.Row(y)
		for x := 0; x < width; x++ {
			so := srcBase + x*4
			r, g, b, a := rgba[so], rgba[so+1], rgba[so+2], rgba[so+3]

			if !hasOutAlpha && alphaOpt&BlendAlpha != 0 {
				r, g, b = blend(r, g, b, a, bg48, bg24, to)
			}

			if err := encodePixel(dst, x, to, r, g, b, a); err != nil {
				return nil, err
			}
		}
	}

	return img, nil
}

// blend implements spec.md §4.5's BLEND_ALPHA formula: output = opacity *
// input + (1-opacity) * background, opacity = alpha/max_alpha.
func blend(r, g, b, a uint16, bg48 [3]uint16, bg24 [3]byte, to pixelformat.PixelFormat) (uint16, uint16, uint16) {
	var bgR, bgG, bgB uint16
	if is64Family(to) {
		bgR, bgG, bgB = bg48[0], bg48[1], bg48[2]
	} else {
		bgR, bgG, bgB = to16(bg24[0]), to16(bg24[1]), to16(bg24[2])
	}

	blendOne := func(src, bg uint16) uint16 {
		return uint16((uint32(src)*uint32(a) + uint32(bg)*uint32(65535-a)) / 65535)
	}
	return blendOne(r, bgR), blendOne(g, bgG), blendOne(b, bgB)
}

// encodePixel writes one pixel of rgba values into dst (the destination
// row) at column x, in to's native layout.
func encodePixel(dst []byte, x int, to pixelformat.PixelFormat, r, g, b, a uint16) error {
	switch to {
	case pixelformat.Gray8, pixelformat.GrayAlpha8:
		gray := to8(grayOf(r, g, b))
		if to == pixelformat.Gray8 {
			dst[x] = gray
		} else {
			dst[x*2], dst[x*2+1] = gray, to8(a)
		}
		return nil
	case pixelformat.Gray16, pixelformat.GrayAlpha16:
		gray := grayOf(r, g, b)
		if to == pixelformat.Gray16 {
			putBE16(dst[x*2:x*2+2], gray)
		} else {
			putBE16(dst[x*4:x*4+2], gray)
			putBE16(dst[x*4+2:x*4+4], a)
		}
		return nil
	case pixelformat.RGB555, pixelformat.BGR555, pixelformat.RGB565, pixelformat.BGR565:
		encodePacked16Pixel(dst, x, to, to8(r), to8(g), to8(b))
		return nil
	case pixelformat.RGB24, pixelformat.BGR24:
		o := x * 3
		if to == pixelformat.BGR24 {
			dst[o], dst[o+1], dst[o+2] = to8(b), to8(g), to8(r)
		} else {
			dst[o], dst[o+1], dst[o+2] = to8(r), to8(g), to8(b)
		}
		return nil
	case pixelformat.RGB48, pixelformat.BGR48:
		o := x * 6
		if to == pixelformat.BGR48 {
			putBE16(dst[o:o+2], b)
			putBE16(dst[o+2:o+4], g)
			putBE16(dst[o+4:o+6], r)
		} else {
			putBE16(dst[o:o+2], r)
			putBE16(dst[o+2:o+4], g)
			putBE16(dst[o+4:o+6], b)
		}
		return nil
	case pixelformat.CMYK32:
		c, m, ye, k := rgbToCMYK(to8(r), to8(g), to8(b))
		o := x * 4
		dst[o], dst[o+1], dst[o+2], dst[o+3] = c, m, ye, k
		return nil
	case pixelformat.YCbCr24:
		yy, cb, cr := rgbToYCbCr(to8(r), to8(g), to8(b))
		o := x * 3
		dst[o], dst[o+1], dst[o+2] = yy, cb, cr
		return nil
	default:
		if is64Family(to) {
			ro, go_, bo, ao := channelOffsets(to)
			o := x * 8
			putBE16(dst[o+ro*2:o+ro*2+2], r)
			putBE16(dst[o+go_*2:o+go_*2+2], g)
			putBE16(dst[o+bo*2:o+bo*2+2], b)
			if ao >= 0 {
				putBE16(dst[o+ao*2:o+ao*2+2], a)
			}
			return nil
		}
		ro, go_, bo, ao := channelOffsets(to)
		o := x * 4
		dst[o+ro] = to8(r)
		dst[o+go_] = to8(g)
		dst[o+bo] = to8(b)
		if ao >= 0 {
			dst[o+ao] = to8(a)
		}
		return nil
	}
}

func grayOf(r, g, b uint16) uint16 {
	return uint16((uint32(r) + uint32(g) + uint32(b)) / 3)
}

func putBE16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}

func encodePacked16Pixel(dst []byte, x int, to pixelformat.PixelFormat, r, g, b byte) {
	is565 := to == pixelformat.RGB565 || to == pixelformat.BGR565
	bgr := to == pixelformat.BGR555 || to == pixelformat.BGR565
	if bgr {
		r, b = b, r
	}

	var v uint16
	if is565 {
		v = uint16(scaleDown(r, 31))<<11 | uint16(scaleDown(g, 63))<<5 | uint16(scaleDown(b, 31))
	} else {
		v = uint16(scaleDown(r, 31))<<10 | uint16(scaleDown(g, 31))<<5 | uint16(scaleDown(b, 31))
	}
	dst[x*2] = byte(v)
	dst[x*2+1] = byte(v >> 8)
}

func scaleDown(v byte, max byte) byte {
	return byte((uint16(v)*uint16(max) + 127) / 255)
}

func canUpdateInPlace(from, to pixelformat.PixelFormat) bool {
	if from.BitsPerPixel() != to.BitsPerPixel() {
		return false
	}
	switch {
	case !is64Family(from) && !is64Family(to):
		if from.BitsPerPixel() != 32 || pixelformat.FamilyOf(from) != pixelformat.FamilyRGB || pixelformat.FamilyOf(to) != pixelformat.FamilyRGB {
			return false
		}
		_, _, _, a1 := channelOffsets(from)
		_, _, _, a2 := channelOffsets(to)
		return (a1 >= 0) == (a2 >= 0)
	case is64Family(from) && is64Family(to):
		_, _, _, a1 := channelOffsets(from)
		_, _, _, a2 := channelOffsets(to)
		return (a1 >= 0) == (a2 >= 0)
	default:
		return false
	}
}

// updateInPlace re-orders channels within img's existing buffer for a
// same-depth, same-alpha-presence channel-order swap (e.g. RGBA32 <->
// BGRA32), avoiding a fresh allocation.
func updateInPlace(img *image.Image, to pixelformat.PixelFormat) (*image.Image, error) {
	stride := to.BitsPerPixel() / 8
	unit := 1
	if is64Family(to) {
		unit = 2
	}

	fr, fg, fb, fa := channelOffsets(img.PixelFormat)
	tr, tg, tb, ta := channelOffsets(to)

	pixel := make([]byte, stride)
	for y := 0; y < img.Height; y++ {
		row := img.Row(y)
		for x := 0; x < img.Width; x++ {
			o := x * stride
			copy(pixel, row[o:o+stride])
			copy(row[o+tr*unit:o+tr*unit+unit], pixel[fr*unit:fr*unit+unit])
			copy(row[o+tg*unit:o+tg*unit+unit], pixel[fg*unit:fg*unit+unit])
			copy(row[o+tb*unit:o+tb*unit+unit], pixel[fb*unit:fb*unit+unit])
			if fa >= 0 && ta >= 0 {
				copy(row[o+ta*unit:o+ta*unit+unit], pixel[fa*unit:fa*unit+unit])
			}
		}
	}

	img.PixelFormat = to
	return img, nil
}
