/*
NAME
  convert.go

DESCRIPTION
  convert.go is the Conversion Engine's public surface: AlphaOption,
  Options, ConvertTo/ConvertClosest/Update, and closest-pixel-format
  selection, grounded on original_source/src/libsail-manip/convert.c and
  conversion_options.c.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package convert implements SAIL's pixel-format conversion engine
// (spec.md §4.5): staging any supported input format through a 64-bit
// RGBA intermediate and back out to any supported output format, with a
// configurable alpha-drop/alpha-blend policy.
package convert

import (
	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/status"
)

// AlphaOption is a bitmask of SAIL_CONVERSION_OPTION_* (manip_common.h):
// how to handle a source alpha channel when the destination format has
// none.
type AlphaOption int

const (
	// DropAlpha discards the source alpha channel. The default when
	// Options.Alpha is zero (conversion_options.c's documented "if zero,
	// DROP_ALPHA is assumed").
	DropAlpha AlphaOption = 1 << iota
	// BlendAlpha blends the source pixel over Options.Background using
	// opacity = alpha/max_alpha. Wins over DropAlpha if both are set.
	BlendAlpha
)

// Options controls conversion behavior.
type Options struct {
	Alpha AlphaOption

	// Background24 and Background48 are the blend background colors used
	// by BlendAlpha, for 8-bit and 16-bit destination formats
	// respectively (conversion_options.h's background24/background48).
	Background24 [3]byte
	Background48 [3]uint16
}

func (o *Options) alpha() AlphaOption {
	if o == nil || o.Alpha == 0 {
		return DropAlpha
	}
	return o.Alpha
}

func (o *Options) background24() [3]byte {
	if o == nil {
		return [3]byte{}
	}
	return o.Background24
}

func (o *Options) background48() [3]uint16 {
	if o == nil {
		return [3]uint16{}
	}
	return o.Background48
}

// CanConvert reports whether a direct path exists between from and to.
// Every format convert.go knows how to decode/encode (see rgba64.go)
// qualifies, so this is effectively "is this format supported at all".
func CanConvert(from, to pixelformat.PixelFormat) bool {
	return supported(from) && supported(to)
}

// ConvertTo converts img to the output pixel format, staging through the
// 64-bit RGBA intermediate (spec.md §4.5). The source image is never
// modified.
func ConvertTo(img *image.Image, to pixelformat.PixelFormat, opts *Options) (*image.Image, error) {
	if !supported(img.PixelFormat) {
		return nil, status.New(status.UnsupportedPixelFormat, "convert: unsupported input pixel format %s", img.PixelFormat)
	}
	if !supported(to) {
		return nil, status.New(status.UnsupportedPixelFormat, "convert: unsupported output pixel format %s", to)
	}

	rgba, err := decodeToRGBA64(img)
	if err != nil {
		return nil, err
	}

	return encodeFromRGBA64(rgba, img.Width, img.Height, to, opts)
}

// ConvertClosest converts img into the closest pixel format found in
// candidates, per closestPixelFormat's family/depth preference order
// (spec.md §4.5 "closest_pixel_format").
func ConvertClosest(img *image.Image, candidates []pixelformat.PixelFormat, opts *Options) (*image.Image, error) {
	to, err := closestPixelFormat(img.PixelFormat, candidates)
	if err != nil {
		return nil, err
	}
	return ConvertTo(img, to, opts)
}

// ConvertForSaving converts img to a format the codec's declared save
// features can write, consulting the per-input-format output-format
// mapping node (SPEC_FULL.md §E.4 item 6). An input format with no
// mapping entry fails unconditionally with UnsupportedPixelFormat,
// carrying forward the pre-v3 boundary decision recorded in DESIGN.md.
func ConvertForSaving(img *image.Image, sf *codec.SaveFeatures, opts *Options) (*image.Image, error) {
	candidates := sf.OutputFormatsFor(img.PixelFormat)
	if len(candidates) == 0 {
		return nil, status.New(status.UnsupportedPixelFormat, "convert: codec declares no output formats for input %s", img.PixelFormat)
	}
	for _, c := range candidates {
		if c == img.PixelFormat {
			return img, nil
		}
	}
	return ConvertClosest(img, candidates, opts)
}

// Update converts img in place when straightforward (identical bit depth
// and channel count, e.g. RGBA32 -> BGRA32, a pure channel-order swap with
// no precision loss); otherwise behaves exactly like ConvertTo. This
// mirrors the original's sail_update_image's "reuse the buffer when the
// layout allows it" optimization.
func Update(img *image.Image, to pixelformat.PixelFormat, opts *Options) (*image.Image, error) {
	if img.PixelFormat == to {
		return img, nil
	}
	if canUpdateInPlace(img.PixelFormat, to) {
		return updateInPlace(img, to)
	}
	return ConvertTo(img, to, opts)
}

// closestPixelFormat picks the first candidate in the same Family as
// from, preferring equal-or-greater bit depth over a lossy downgrade; if
// none share a family, the first candidate with alpha matching from's
// HasAlpha is used; otherwise the first candidate.
func closestPixelFormat(from pixelformat.PixelFormat, candidates []pixelformat.PixelFormat) (pixelformat.PixelFormat, error) {
	if len(candidates) == 0 {
		return pixelformat.Unknown, status.New(status.UnsupportedPixelFormat, "convert: no candidate pixel formats to choose from")
	}

	family := pixelformat.FamilyOf(from)
	bestSameFamily := pixelformat.Unknown
	bestSameFamilyBpp := -1
	for _, c := range candidates {
		if pixelformat.FamilyOf(c) != family {
			continue
		}
		bpp := c.BitsPerPixel()
		switch {
		case bestSameFamilyBpp == -1:
			bestSameFamily, bestSameFamilyBpp = c, bpp
		case bpp >= from.BitsPerPixel() && (bestSameFamilyBpp < from.BitsPerPixel() || bpp < bestSameFamilyBpp):
			bestSameFamily, bestSameFamilyBpp = c, bpp
		}
	}
	if bestSameFamily != pixelformat.Unknown {
		return bestSameFamily, nil
	}

	for _, c := range candidates {
		if c.HasAlpha() == from.HasAlpha() {
			return c, nil
		}
	}

	return candidates[0], nil
}
