/*
NAME
  advanced.go

DESCRIPTION
  advanced.go is the Advanced facade (spec.md §4.7 tier 2): explicit
  state-handle load/save suitable for animations and paged formats,
  grounded on original_source/src/libsail/src/sail_advanced.c.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package sail

import (
	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/pipeline"
)

// LoadState is an in-progress Advanced-tier load: the caller drives it with
// LoadNextFrame until it returns NO_MORE_FRAMES, then calls StopLoading.
type LoadState = pipeline.Load

// SaveState is the Advanced-tier save counterpart of LoadState.
type SaveState = pipeline.Save

// StartLoadingFromFile begins loading path with default options, codec
// selected by extension.
func StartLoadingFromFile(path string) (*LoadState, error) {
	return pipeline.StartLoadingFile(codec.Default, path, nil, nil)
}

// StartLoadingFromMemory begins loading buf with default options, codec
// selected by magic-number sniffing.
func StartLoadingFromMemory(buf []byte) (*LoadState, error) {
	return pipeline.StartLoadingMemory(codec.Default, buf, nil, nil)
}

// LoadNextFrame returns the next frame of an in-progress load, or a
// NoMoreFrames status error once the stream is exhausted (spec.md §7's
// documented non-error "end of stream" signal).
func LoadNextFrame(state *LoadState) (*image.Image, error) {
	return state.NextFrame()
}

// StopLoading ends state's load sequence. Stopping a nil state is a no-op,
// matching spec.md §8's "stop_loading(null) returns OK".
func StopLoading(state *LoadState) error {
	if state == nil {
		return nil
	}
	return state.Stop()
}

// StartSavingToFile begins saving to path with default options, codec
// selected by extension.
func StartSavingToFile(path string) (*SaveState, error) {
	return pipeline.StartSavingFile(codec.Default, path, nil, nil)
}

// StartSavingToMemory begins saving into *buf (grown as needed) using info,
// the codec descriptor to save with (there is no path to infer one from).
func StartSavingToMemory(buf *[]byte, info *codec.Info) (*SaveState, error) {
	return pipeline.StartSavingMemory(codec.Default, buf, info, nil, nil)
}

// SaveNextFrame writes img as the next frame of an in-progress save.
func SaveNextFrame(state *SaveState, img *image.Image) error {
	return state.WriteFrame(img)
}

// StopSaving ends state's save sequence. Stopping a nil state is a no-op.
func StopSaving(state *SaveState) error {
	if state == nil {
		return nil
	}
	return state.Stop()
}
