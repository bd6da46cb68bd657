/*
NAME
  save.go

DESCRIPTION
  save.go implements the save half of the Frame Pipeline state machine
  (spec.md §4.4): start/next_frame/stop, built on top of a codec.Codec's
  SaveState vtable.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pipeline

import (
	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/status"
	"github.com/ausocean/sail/streamio"
)

// Save is a started save pipeline, the write-side mirror of Load.
type Save struct {
	stream     streamio.Stream
	ownsStream bool
	info       *codec.Info
	state      codec.SaveState
	opts       *codec.SaveOptions
	logger     status.Logger
	stopped    bool
}

// StartSavingToIO begins a save sequence against an already-open stream
// for the given codec descriptor. If opts is nil, effective options are
// filled in from the codec's declared save features.
func StartSavingToIO(r *codec.Registry, stream streamio.Stream, ownsStream bool, info *codec.Info, opts *codec.SaveOptions, logger status.Logger) (_ *Save, err error) {
	if logger == nil {
		logger = status.NopLogger{}
	}

	defer func() {
		if err != nil && ownsStream {
			stream.Close()
		}
	}()

	c, err := r.Load(info)
	if err != nil {
		return nil, err
	}

	if opts == nil {
		opts = codec.SaveOptionsFromFeatures(info.SaveFeatures)
	}

	logger.Debug("pipeline: starting save", "codec", info.Name)

	st, err := c.SaveInit(stream, opts)
	if err != nil {
		return nil, err
	}

	return &Save{stream: stream, ownsStream: ownsStream, info: info, state: st, opts: opts, logger: logger}, nil
}

// StartSavingFile creates (or truncates) path and begins a save sequence,
// selecting the codec by path extension.
func StartSavingFile(r *codec.Registry, path string, opts *codec.SaveOptions, logger status.Logger) (*Save, error) {
	info, err := r.FromPath(path)
	if err != nil {
		return nil, err
	}
	stream, err := streamio.CreateFile(path)
	if err != nil {
		return nil, err
	}
	return StartSavingToIO(r, stream, true, info, opts, logger)
}

// StartSavingMemory begins a save sequence into *buf (grown as needed),
// the codec selected explicitly since there is no path to infer one from.
func StartSavingMemory(r *codec.Registry, buf *[]byte, info *codec.Info, opts *codec.SaveOptions, logger status.Logger) (*Save, error) {
	stream := streamio.OpenMemoryWriter(buf)
	return StartSavingToIO(r, stream, true, info, opts, logger)
}

// Info returns the codec descriptor selected for this save.
func (p *Save) Info() *codec.Info { return p.info }

// WriteFrame implements spec.md §4.4's save sequence: checks the image's
// pixel format against is_pixel_format_supported_for_saving, checks
// interlaced capability if requested, then drives
// save_seek_next_frame/save_seek_next_pass/save_frame for each pass.
func (p *Save) WriteFrame(img *image.Image) error {
	if !p.info.SaveFeatures.IsPixelFormatSupportedForSaving(img.PixelFormat) {
		return status.New(status.UnsupportedPixelFormat, "codec %q cannot save pixel format %s", p.info.Name, img.PixelFormat)
	}

	passes := 1
	if interlacedRequested(p.opts) {
		passes = p.info.SaveFeatures.InterlacedPasses
		if passes < 1 {
			return status.New(status.InterlacedUnsupported, "codec %q does not support interlaced saving", p.info.Name)
		}
	}

	if err := p.state.SeekNextFrame(p.stream, img); err != nil {
		return err
	}

	for pass := 0; pass < passes; pass++ {
		if err := p.state.SeekNextPass(p.stream, img, pass); err != nil {
			return err
		}
		if err := p.state.Frame(p.stream, img); err != nil {
			return err
		}
	}

	return nil
}

// interlacedRequested reports whether the caller asked for an interlaced
// save via the "interlaced" boolean tuning key (there is no dedicated
// IOOptions bit for it; spec.md §4.4 only says "if options request
// interlaced", leaving the exact carrier to the implementation).
func interlacedRequested(opts *codec.SaveOptions) bool {
	if opts == nil || opts.Tuning == nil {
		return false
	}
	v, ok := opts.Tuning["interlaced"]
	return ok && v.Kind == codec.TuningBool && v.Bool
}

// Stop implements the save mirror of Load.Stop: save_finish, then release
// the stream if owned. Idempotent.
func (p *Save) Stop() error {
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
	p.logger.Debug("pipeline: save stopped", "codec", p.info.Name)
	return err
}
