/*
NAME
  fastpath.go

DESCRIPTION
  fastpath.go is the scaling engine's optional accelerated back end: when
  available, golang.org/x/image/draw's native Go scalers take the first
  attempt at a resize, with kernel.go's portable implementation as the
  fallback for anything the back end doesn't cover exactly. This is the
  shape of scale.c's "try swscale first, fall back to manual" dispatch
  (SAIL_MANIP_SWSCALE_ENABLED), substituting golang.org/x/image/draw for
  swscale since this is a pure-Go port with no cgo dependency.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package scale

import (
	goimage "image"

	"golang.org/x/image/draw"

	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/pixelformat"
)

// scaleWithDraw attempts to resize img using golang.org/x/image/draw.
// It only handles Nearest and Bilinear: those map onto draw.NearestNeighbor
// and draw.BiLinear exactly, while Bicubic and Lanczos name specific
// kernels (Keys a=-0.5, Lanczos a=3) draw's CatmullRom interpolator does
// not reproduce, so those always fall through to kernel.go's portable
// implementation to honor the documented algorithm precisely.
func scaleWithDraw(img *image.Image, newWidth, newHeight int, algorithm Algorithm) (*image.Image, bool) {
	var interp draw.Interpolator
	switch algorithm {
	case Nearest:
		interp = draw.NearestNeighbor
	case Bilinear:
		interp = draw.BiLinear
	default:
		return nil, false
	}

	src, ok := wrapAsDrawImage(img)
	if !ok {
		return nil, false
	}

	out := img.SkeletonCopy()
	out.Width = newWidth
	out.Height = newHeight
	out.BytesPerLine = pixelformat.BytesPerLine(newWidth, img.PixelFormat)
	out.Pixels = image.NewOwnedPixels(make([]byte, newHeight*out.BytesPerLine))

	dst, ok := wrapAsDrawImage(out)
	if !ok {
		return nil, false
	}

	interp.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return out, true
}

// wrapAsDrawImage wraps an RGBA32/RGBA64 image's pixel buffer directly
// (no copy) as a standard library draw.Image, relying on SAIL's RGBA32
// and RGBA64 byte layouts being bit-for-bit identical to image.NRGBA and
// image.NRGBA64 respectively (non-premultiplied, R/G/B/A channel order).
func wrapAsDrawImage(img *image.Image) (draw.Image, bool) {
	bounds := goimage.Rect(0, 0, img.Width, img.Height)
	switch img.PixelFormat {
	case pixelformat.RGBA32:
		return &goimage.NRGBA{Pix: img.Pixels.Bytes(), Stride: img.BytesPerLine, Rect: bounds}, true
	case pixelformat.RGBA64:
		return &goimage.NRGBA64{Pix: img.Pixels.Bytes(), Stride: img.BytesPerLine, Rect: bounds}, true
	default:
		return nil, false
	}
}
