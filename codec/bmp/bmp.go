/*
NAME
  bmp.go

DESCRIPTION
  bmp.go registers the BMP codec descriptor and Codec factory: SAIL's
  reference, always-present codec, used to exercise the registry and
  pipeline end-to-end.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bmp implements SAIL's reference codec: Windows/OS2 DIB bitmaps,
// DIB header versions 2 through 5, ported from
// sail-codecs/bmp/bmp.c in the original source.
package bmp

import (
	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/pixelformat"
)

// Name is the codec's registered name.
const Name = "BMP"

// Compression identifiers from the BMP DIB header, ported verbatim from
// bmp.c's SAIL_BI_* constants.
const (
	biRGB            = 0
	biRLE8           = 1
	biRLE4           = 2
	biBitfields      = 3
	biJPEG           = 4
	biPNG            = 5
	biAlphaBitfields = 6
)

const (
	ddbIdentifier = 0x02
	dibIdentifier = 0x4D42 // "BM"
)

// dibHeaderV2Size and friends are DIB header struct sizes, used to detect
// which header version follows the file header.
const (
	dibHeaderV2Size = 12
	dibHeaderV3Size = 40
	dibHeaderV4Size = 108
	dibHeaderV5Size = 124
)

// info builds this codec's descriptor. Unlike most codecs, BMP is a
// statically-linked reference codec: its descriptor is built in Go rather
// than parsed from an on-disk .conf file (see DESIGN.md for the tradeoff),
// though the same fields an on-disk descriptor would declare are set here.
func info() *codec.Info {
	return &codec.Info{
		Layout:      codec.CurrentLayout,
		Version:     "1.0.0",
		Name:        Name,
		Description: "Windows/OS2 Bitmap",
		Priority:    50,
		MagicNumbers: []string{
			"42 4d", // "BM"
		},
		Extensions: []string{"bmp", "dib"},
		MimeTypes:  []string{"image/bmp", "image/x-bmp", "image/x-ms-bmp"},
		LoadFeatures: &codec.LoadFeatures{
			OutputPixelFormats:       []pixelformat.PixelFormat{pixelformat.RGBA32, pixelformat.BGRA32},
			DefaultOutputPixelFormat: pixelformat.RGBA32,
			Features:                codec.FeatureStatic | codec.FeatureMetaData,
		},
		SaveFeatures: &codec.SaveFeatures{
			Features:                codec.FeatureStatic,
			Properties:              codec.PropertyFlippedVertically,
			InterlacedPasses:        1,
			Compressions:            []pixelformat.Compression{pixelformat.CompressionNone},
			DefaultCompression:      pixelformat.CompressionNone,
			CompressionLevelMin:     0,
			CompressionLevelMax:     0,
			CompressionLevelDefault: 0,
			CompressionLevelStep:    0,
			PixelFormatMapping: map[pixelformat.PixelFormat][]pixelformat.PixelFormat{
				pixelformat.RGB24:  {pixelformat.RGB24},
				pixelformat.BGR24:  {pixelformat.BGR24},
				pixelformat.RGBA32: {pixelformat.RGBA32},
				pixelformat.BGRA32: {pixelformat.BGRA32},
			},
		},
	}
}

// Register adds the BMP codec to r.
func Register(r *codec.Registry) {
	r.Register(info(), newCodec)
}

func init() {
	Register(codec.Default)
}

type bmpCodec struct {
	i *codec.Info
}

func newCodec(i *codec.Info) codec.Codec { return &bmpCodec{i: i} }

func (c *bmpCodec) Info() *codec.Info { return c.i }
