/*
NAME
  vtable.go

DESCRIPTION
  vtable.go defines the Codec capability set every image codec implements,
  reimplementing the original's function-pointer vtable (spec.md §9) as a
  pair of small interfaces returned from per-operation init calls.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package codec

import (
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/streamio"
)

// LoadState is the per-codec private state returned by Codec.LoadInit. It
// is the associated type spec.md §9 calls for in place of a void* state
// pointer.
type LoadState interface {
	// SeekNextFrame produces the next frame's header: dimensions, pixel
	// format, source image, metadata, ICC, and palette if indexed, with no
	// pixel data. Returns a *status.Error with status.NoMoreFrames when the
	// stream is exhausted.
	SeekNextFrame(io streamio.Stream) (*image.Image, error)

	// SeekNextPass positions the codec to decode pass (0-indexed) of img's
	// interlaced_passes.
	SeekNextPass(io streamio.Stream, img *image.Image, pass int) error

	// Frame fills img's pre-allocated pixel buffer for the current pass.
	Frame(io streamio.Stream, img *image.Image) error

	// Finish releases any per-load codec resources.
	Finish(io streamio.Stream) error
}

// SaveState is the per-codec private state returned by Codec.SaveInit.
type SaveState interface {
	// SeekNextFrame writes/prepares for writing img's header.
	SeekNextFrame(io streamio.Stream, img *image.Image) error

	// SeekNextPass positions the codec to encode pass (0-indexed).
	SeekNextPass(io streamio.Stream, img *image.Image, pass int) error

	// Frame writes img's pixel data for the current pass.
	Frame(io streamio.Stream, img *image.Image) error

	// Finish flushes and releases any per-save codec resources.
	Finish(io streamio.Stream) error
}

// Codec is the capability set a codec module implements: the load and save
// quintuples of spec.md §4.3, collapsed to two init calls that hand back a
// state value good for exactly one load or save operation.
type Codec interface {
	Info() *Info
	LoadInit(io streamio.Stream, opts *LoadOptions) (LoadState, error)
	SaveInit(io streamio.Stream, opts *SaveOptions) (SaveState, error)
}

// Factory constructs a fresh, unbound Codec value for info. Codec packages
// register one Factory per descriptor via Register, matching the "codecs
// are modules registered at startup (statically linked) or discovered from
// a directory (dynamically loaded)" guidance in spec.md §9 -- this module
// supports the statically-linked half of that abstraction; see DESIGN.md
// for why dynamic loading was not carried over.
type Factory func(info *Info) Codec
