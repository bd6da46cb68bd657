/*
NAME
  orientation.go

DESCRIPTION
  orientation.go provides a pure geometry helper that rotates/mirrors an
  Image according to its Orientation field, ported from the reference
  viewer's display-time correction (examples/c/sail-sdl-viewer/sail-sdl-viewer.c
  in the original source). Not wired into load/save: per spec.md §1 this is
  metadata-driven geometry a caller opts into, not an editing filter.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package image

import "github.com/ausocean/sail/pixelformat"

// ApplyOrientation returns a new Image with img's pixels rotated/mirrored
// so that Orientation becomes OrientationNormal. img is left untouched. Only
// byte-aligned pixel formats are supported; sub-byte grayscale/indexed
// formats return img unchanged (callers needing those should convert first).
func ApplyOrientation(img *Image) *Image {
	if img.Orientation == pixelformat.OrientationNormal || !img.PixelFormat.IsByteAligned() {
		return img
	}

	bypp := img.PixelFormat.BitsPerPixel() / 8
	mirror := false
	rotate := 0 // clockwise degrees

	switch img.Orientation {
	case pixelformat.OrientationMirroredHorizontally:
		mirror = true
	case pixelformat.OrientationRotated180:
		rotate = 180
	case pixelformat.OrientationMirroredVertically:
		mirror = true
		rotate = 180
	case pixelformat.OrientationMirroredHorizontallyRotated270:
		mirror = true
		rotate = 270
	case pixelformat.OrientationRotated90:
		rotate = 90
	case pixelformat.OrientationMirroredHorizontallyRotated90:
		mirror = true
		rotate = 90
	case pixelformat.OrientationRotated270:
		rotate = 270
	}

	w, h := img.Width, img.Height
	outW, outH := w, h
	if rotate == 90 || rotate == 270 {
		outW, outH = h, w
	}

	out := img.SkeletonCopy()
	out.Width, out.Height = outW, outH
	out.BytesPerLine = pixelformat.BytesPerLine(outW, img.PixelFormat)
	out.Orientation = pixelformat.OrientationNormal
	out.Pixels = NewOwnedPixels(make([]byte, out.BytesPerLine*outH))

	// mx,my apply the mirror to source coordinates before rotation; rotation
	// is then applied as a pure coordinate transform from (mx,my) in a
	// w x h frame to (dx,dy) in the (possibly transposed) output frame.
	for y := 0; y < h; y++ {
		src := img.Row(y)
		for x := 0; x < w; x++ {
			mx, my := x, y
			if mirror {
				mx = w - 1 - x
			}

			var dx, dy int
			switch rotate {
			case 90:
				dx, dy = h-1-my, mx
			case 180:
				dx, dy = w-1-mx, h-1-my
			case 270:
				dx, dy = my, w-1-mx
			default:
				dx, dy = mx, my
			}

			so := x * bypp
			doff := dy*out.BytesPerLine + dx*bypp
			copy(out.Pixels.Bytes()[doff:doff+bypp], src[so:so+bypp])
		}
	}

	return out
}
