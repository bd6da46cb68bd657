/*
NAME
  load.go

DESCRIPTION
  load.go implements the load half of the Frame Pipeline state machine
  (spec.md §4.4): start/next_frame/stop, built on top of a codec.Codec's
  LoadState vtable.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pipeline is the outer driver every SAIL facade is built on: the
// load and save sequences described in spec.md §4.4, plus a probe
// shortcut. It owns codec selection, I/O lifetime, and interlaced-pass
// iteration so facades only deal with images and options.
package pipeline

import (
	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/status"
	"github.com/ausocean/sail/streamio"
)

// Load is a started load pipeline: the I/O reference (and whether the
// pipeline owns it), the selected codec info, the loaded codec and its
// private per-load state, and the effective options. It corresponds to
// the original's "hidden_state" (spec.md §4.4).
type Load struct {
	stream     streamio.Stream
	ownsStream bool
	info       *codec.Info
	state      codec.LoadState
	opts       *codec.LoadOptions
	logger     status.Logger
	stopped    bool
}

// StartLoadingFromIO begins a load sequence against an already-open
// stream. If info is nil, the codec is selected by sniffing stream's
// magic number (ported from sail_technical_diver_private.c's
// codec-info-or-path resolution helper, SPEC_FULL.md §E.4 item 7); stream
// is seeked back to its start either way, so the codec's LoadInit sees the
// whole file. If opts is nil, effective options are filled in from the
// codec's declared load features.
func StartLoadingFromIO(r *codec.Registry, stream streamio.Stream, ownsStream bool, info *codec.Info, opts *codec.LoadOptions, logger status.Logger) (_ *Load, err error) {
	if logger == nil {
		logger = status.NopLogger{}
	}

	defer func() {
		if err != nil && ownsStream {
			stream.Close()
		}
	}()

	if info == nil {
		info, err = r.FromMagicNumber(stream)
		if err != nil {
			return nil, err
		}
	}

	c, err := r.Load(info)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = codec.LoadOptionsFromFeatures(info.LoadFeatures)
	}

	logger.Debug("pipeline: starting load", "codec", info.Name)

	st, err := c.LoadInit(stream, opts)
	if err != nil {
		return nil, err
	}

	return &Load{stream: stream, ownsStream: ownsStream, info: info, state: st, opts: opts, logger: logger}, nil
}

// StartLoadingFile opens path and begins a load sequence, selecting the
// codec by path extension (spec.md §4.4 step 1's "explicit or by
// path/magic"; Junior and Advanced both select by path, matching
// sail_junior.c/sail_start_reading_file).
func StartLoadingFile(r *codec.Registry, path string, opts *codec.LoadOptions, logger status.Logger) (*Load, error) {
	info, err := r.FromPath(path)
	if err != nil {
		return nil, err
	}
	stream, err := streamio.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return StartLoadingFromIO(r, stream, true, info, opts, logger)
}

// StartLoadingMemory begins a load sequence over an in-memory buffer,
// selecting the codec by magic number sniffing (there is no path to
// derive an extension from).
func StartLoadingMemory(r *codec.Registry, buf []byte, opts *codec.LoadOptions, logger status.Logger) (*Load, error) {
	stream := streamio.OpenMemoryReader(buf)
	return StartLoadingFromIO(r, stream, true, nil, opts, logger)
}

// Info returns the codec descriptor selected for this load.
func (p *Load) Info() *codec.Info { return p.info }

// NextFrame implements spec.md §4.4 step 2: obtain the header via
// load_seek_next_frame, allocate height×bytes_per_line pixels, iterate the
// pass sequence, and return the populated image. Errors drop back to
// caller-driven Stop cleanup; a partially-filled image is never returned.
func (p *Load) NextFrame() (*image.Image, error) {
	hdr, err := p.state.SeekNextFrame(p.stream)
	if err != nil {
		return nil, err
	}

	passes := 1
	if hdr.SourceImage != nil && hdr.SourceImage.Interlaced {
		passes = hdr.InterlacedPasses
		if passes < 1 {
			return nil, status.New(status.InterlacedUnsupported, "codec %q reported an interlaced image with %d passes", p.info.Name, passes)
		}
	}

	size := hdr.Height * hdr.BytesPerLine
	hdr.Pixels = image.NewOwnedPixels(make([]byte, size))

	for pass := 0; pass < passes; pass++ {
		if err := p.state.SeekNextPass(p.stream, hdr, pass); err != nil {
			return nil, err
		}
		if err := p.state.Frame(p.stream, hdr); err != nil {
			return nil, err
		}
	}

	return hdr, nil
}

// Stop implements spec.md §4.4 step 3: load_finish, then release the
// stream if the pipeline owns it. Stop is idempotent and a no-op on an
// already-stopped pipeline, matching the "stop is a no-op on null state"
// boundary (spec.md §4.4 "Cancellation").
func (p *Load) Stop() error {
	if p.stopped {
		return nil
	}
	p.stopped = true

	err := p.state.Finish(p.stream)
	if p.ownsStream {
		if cerr := p.stream.Close(); err == nil {
			err = cerr
		}
	}
	p.logger.Debug("pipeline: load stopped", "codec", p.info.Name)
	return err
}
