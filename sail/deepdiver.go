/*
NAME
  deepdiver.go

DESCRIPTION
  deepdiver.go is the Deep-Diver facade (spec.md §4.7 tier 3): like
  Advanced, but the caller supplies an explicit codec_info and explicit
  load/save options, whose ownership passes to the call (deep-copied
  internally), grounded on
  original_source/src/libsail/src/sail_deep_diver.c.

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
	"github.com/ausocean/sail/pipeline"
	"github.com/ausocean/sail/streamio"
)

// StartLoadingFromFileWithOptions begins loading path against the given
// codec descriptor and options (opts is cloned, so the caller's copy
// remains theirs to reuse or mutate; info is used as given).
func StartLoadingFromFileWithOptions(path string, info *codec.Info, opts *codec.LoadOptions) (*LoadState, error) {
	stream, err := streamio.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return pipeline.StartLoadingFromIO(codec.Default, stream, true, info, opts.Clone(), nil)
}

// StartLoadingFromMemoryWithOptions is the in-memory counterpart of
// StartLoadingFromFileWithOptions.
func StartLoadingFromMemoryWithOptions(buf []byte, info *codec.Info, opts *codec.LoadOptions) (*LoadState, error) {
	stream := streamio.OpenMemoryReader(buf)
	return pipeline.StartLoadingFromIO(codec.Default, stream, true, info, opts.Clone(), nil)
}

// StartSavingToFileWithOptions begins saving to path against the given
// codec descriptor and options (opts is cloned; info is used as given).
func StartSavingToFileWithOptions(path string, info *codec.Info, opts *codec.SaveOptions) (*SaveState, error) {
	stream, err := streamio.CreateFile(path)
	if err != nil {
		return nil, err
	}
	return pipeline.StartSavingToIO(codec.Default, stream, true, info, opts.Clone(), nil)
}

// StartSavingToMemoryWithOptions is the in-memory counterpart of
// StartSavingToFileWithOptions.
func StartSavingToMemoryWithOptions(buf *[]byte, info *codec.Info, opts *codec.SaveOptions) (*SaveState, error) {
	stream := streamio.OpenMemoryWriter(buf)
	return pipeline.StartSavingToIO(codec.Default, stream, true, info, opts.Clone(), nil)
}
