/*
NAME
  image.go

DESCRIPTION
  image.go defines the central SAIL value type: an in-memory image with its
  pixel buffer, palette, and metadata, plus its lifecycle operations
  (allocate, copy, skeleton-copy, destroy).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package image provides the Image value type around which every other
// SAIL component operates.
package image

import (
	"fmt"

	"github.com/ausocean/sail/meta"
	"github.com/ausocean/sail/pixelformat"
)

// Pixels is the sum type `Pixels ∈ {Owned(bytes), Borrowed(&bytes)}` called
// for by spec.md §9: a shallow image points into caller memory it must
// never free. Go's GC means "free" is a no-op either way, but the
// distinction still matters for Transfer. convert.Update does not consult
// it: it rewrites a shallow buffer in place just as it does an owned one.
type Pixels struct {
	data    []byte
	shallow bool
}

// NewOwnedPixels wraps data as an owned buffer.
func NewOwnedPixels(data []byte) Pixels { return Pixels{data: data} }

// NewShallowPixels wraps data as a borrowed (caller-owned) buffer.
func NewShallowPixels(data []byte) Pixels { return Pixels{data: data, shallow: true} }

// Bytes returns the underlying buffer.
func (p Pixels) Bytes() []byte { return p.data }

// Shallow reports whether this buffer is borrowed.
func (p Pixels) Shallow() bool { return p.shallow }

// Transfer returns an equivalent Owned Pixels, copying data if p was
// shallow. This is the "transferring from shallow to owned clears the
// shallow flag" operation from spec.md §3.
func (p Pixels) Transfer() Pixels {
	if !p.shallow {
		return p
	}
	cp := make([]byte, len(p.data))
	copy(cp, p.data)
	return Pixels{data: cp}
}

// Image is the central SAIL value: dimensions, stride, pixel format, pixel
// buffer, and the metadata records that travel with it.
type Image struct {
	Width         int
	Height        int
	BytesPerLine  int
	PixelFormat   pixelformat.PixelFormat
	Pixels        Pixels
	Delay         int // milliseconds; <=0 unless this is an animation frame.
	Gamma         float64
	Palette       *meta.Palette
	MetaData      meta.List
	ICCP          *meta.Iccp
	Resolution    *meta.Resolution
	SourceImage   *meta.SourceImage
	Orientation   pixelformat.Orientation

	// InterlacedPasses is the number of load/save passes a codec requires
	// to produce this frame when SourceImage.Interlaced is set. It is
	// meaningless (and ignored) otherwise. Mirrors the original's
	// image->interlaced_passes field (spec.md §4.4).
	InterlacedPasses int
}

// New allocates an empty image skeleton: zero dimensions, Unknown pixel
// format, no pixels. Callers populate fields before use, matching the
// original's sail_alloc_image, which likewise returns a blank struct.
func New() *Image {
	return &Image{PixelFormat: pixelformat.Unknown}
}

// NewWithPixels allocates an image of the given dimensions and pixel
// format, with bytesPerLine computed as the minimum stride and an owned,
// zero-filled pixel buffer.
func NewWithPixels(width, height int, pf pixelformat.PixelFormat) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image: incorrect dimensions %dx%d", width, height)
	}
	bpl := pixelformat.BytesPerLine(width, pf)
	if bpl == 0 {
		return nil, fmt.Errorf("image: unsupported pixel format %s", pf)
	}
	img := &Image{
		Width:        width,
		Height:       height,
		BytesPerLine: bpl,
		PixelFormat:  pf,
		Pixels:       NewOwnedPixels(make([]byte, bpl*height)),
	}
	return img, nil
}

// PixelsSize returns height*bytesPerLine, the expected size of an owned
// pixel buffer (spec.md §3's pixels_size invariant).
func (img *Image) PixelsSize() int {
	return img.Height * img.BytesPerLine
}

// Validate checks the structural invariants from spec.md §3.
func (img *Image) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("image: incorrect dimensions %dx%d", img.Width, img.Height)
	}
	minBpl := pixelformat.BytesPerLine(img.Width, img.PixelFormat)
	if img.BytesPerLine*8 < img.Width*img.PixelFormat.BitsPerPixel() {
		return fmt.Errorf("image: bytes_per_line %d too small for width %d at %s (need >= %d)", img.BytesPerLine, img.Width, img.PixelFormat, minBpl)
	}
	if img.PixelFormat.IsIndexed() {
		if img.Palette == nil {
			return fmt.Errorf("image: indexed pixel format %s requires a palette", img.PixelFormat)
		}
		if err := img.Palette.Validate(); err != nil {
			return err
		}
	}
	if !img.Pixels.Shallow() && len(img.Pixels.Bytes()) != 0 && len(img.Pixels.Bytes()) != img.PixelsSize() {
		return fmt.Errorf("image: owned pixel buffer is %d bytes, want %d", len(img.Pixels.Bytes()), img.PixelsSize())
	}
	return nil
}

// Copy returns a deep copy of img, including its pixel buffer (always
// owned in the result, even if img's was shallow) and all metadata.
func (img *Image) Copy() *Image {
	cp := img.skeletonCopy()
	data := make([]byte, len(img.Pixels.Bytes()))
	copy(data, img.Pixels.Bytes())
	cp.Pixels = NewOwnedPixels(data)
	return cp
}

// SkeletonCopy returns a copy of img's metadata (dimensions, format,
// palette, ICC, resolution, source image, orientation, gamma, delay) but
// with an empty pixel buffer, for callers that will fill pixels themselves
// (mirrors the conversion/scaling engines' internal allocation pattern).
func (img *Image) SkeletonCopy() *Image {
	return img.skeletonCopy()
}

func (img *Image) skeletonCopy() *Image {
	return &Image{
		Width:        img.Width,
		Height:       img.Height,
		BytesPerLine: img.BytesPerLine,
		PixelFormat:  img.PixelFormat,
		Delay:        img.Delay,
		Gamma:        img.Gamma,
		Palette:      img.Palette.Clone(),
		MetaData:     img.MetaData.Clone(),
		ICCP:         img.ICCP.Clone(),
		Resolution:   cloneResolution(img.Resolution),
		SourceImage:      img.SourceImage.Clone(),
		Orientation:      img.Orientation,
		InterlacedPasses: img.InterlacedPasses,
	}
}

func cloneResolution(r *meta.Resolution) *meta.Resolution {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

// Destroy releases img's resources. It is a documented no-op: Go's garbage
// collector reclaims the buffer and metadata once img is unreachable, but
// Destroy exists so call sites written against the original's
// alloc/use/destroy discipline (and the "destroying a null image is a
// no-op" boundary behavior, spec.md §8) read the same way in Go. Destroy is
// idempotent and safe on a nil *Image.
func (img *Image) Destroy() {
	if img == nil {
		return
	}
	img.Pixels = Pixels{}
	img.Palette = nil
	img.MetaData = nil
	img.ICCP = nil
	img.Resolution = nil
	img.SourceImage = nil
}

// RowOffset returns the byte offset of row y within the pixel buffer.
func (img *Image) RowOffset(y int) int { return y * img.BytesPerLine }

// Row returns the y'th row of the pixel buffer, sliced to exactly
// bytesPerLine bytes.
func (img *Image) Row(y int) []byte {
	off := img.RowOffset(y)
	return img.Pixels.Bytes()[off : off+img.BytesPerLine]
}
