/*
NAME
  technicaldiver.go

DESCRIPTION
  technicaldiver.go is the Technical-Diver facade (spec.md §4.7 tier 4):
  accepts an arbitrary I/O handle built by the caller (including custom
  transports); the pipeline never owns it. Grounded on
  original_source/src/libsail/src/sail_technical_diver.c and
  sail_technical_diver_private.c.

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

// StartLoadingFromIO begins a load sequence against an already-open
// stream the caller owns. If info is nil, the codec is selected by
// sniffing stream's magic number. Stop never closes stream.
func StartLoadingFromIO(stream streamio.Stream, info *codec.Info, opts *codec.LoadOptions) (*LoadState, error) {
	return pipeline.StartLoadingFromIO(codec.Default, stream, false, info, opts.Clone(), nil)
}

// StartSavingToIO begins a save sequence against an already-open stream
// the caller owns. Stop never closes stream.
func StartSavingToIO(stream streamio.Stream, info *codec.Info, opts *codec.SaveOptions) (*SaveState, error) {
	return pipeline.StartSavingToIO(codec.Default, stream, false, info, opts.Clone(), nil)
}

// ProbeIO probes an already-open, caller-owned stream; info may be nil to
// sniff by magic number. The stream is left open regardless of outcome;
// its position is not restored after the header read.
func ProbeIO(stream streamio.Stream, info *codec.Info) (*pipeline.ProbeResult, error) {
	return pipeline.ProbeIO(codec.Default, stream, info, nil)
}

// WithRegistry scopes a Technical-Diver call to an explicit registry
// instead of codec.Default -- the one knob every other tier hides, for
// callers embedding SAIL with a private codec set (e.g. tests).
type WithRegistry struct {
	Registry *codec.Registry
}

// StartLoadingFromIO is WithRegistry's registry-scoped counterpart of the
// package-level StartLoadingFromIO.
func (w WithRegistry) StartLoadingFromIO(stream streamio.Stream, info *codec.Info, opts *codec.LoadOptions) (*LoadState, error) {
	return pipeline.StartLoadingFromIO(w.Registry, stream, false, info, opts.Clone(), nil)
}

// StartSavingToIO is WithRegistry's registry-scoped counterpart of the
// package-level StartSavingToIO.
func (w WithRegistry) StartSavingToIO(stream streamio.Stream, info *codec.Info, opts *codec.SaveOptions) (*SaveState, error) {
	return pipeline.StartSavingToIO(w.Registry, stream, false, info, opts.Clone(), nil)
}
