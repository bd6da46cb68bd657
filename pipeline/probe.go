/*
NAME
  probe.go

DESCRIPTION
  probe.go implements the fast metadata-only load described in spec.md
  §4.4 "Probe": start, one next_frame with pixel allocation skipped, stop.

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

// ProbeResult is what Probe returns: the header image (no pixel data) and
// the codec descriptor that was selected for it.
type ProbeResult struct {
	Image *image.Image
	Info  *codec.Info
}

// ProbeFile opens path, selects a codec by extension, and reads just the
// first frame's header, never allocating or filling a pixel buffer
// (mirrors sail_probe's "leave the pixel data as is" / zero-allocate
// behavior).
func ProbeFile(r *codec.Registry, path string, logger status.Logger) (*ProbeResult, error) {
	info, err := r.FromPath(path)
	if err != nil {
		return nil, err
	}
	stream, err := streamio.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return probe(r, stream, info, logger)
}

// ProbeMemory is ProbeFile's in-memory counterpart, selecting a codec by
// magic number.
func ProbeMemory(r *codec.Registry, buf []byte, logger status.Logger) (*ProbeResult, error) {
	stream := streamio.OpenMemoryReader(buf)
	return probe(r, stream, nil, logger)
}

// ProbeIO probes an already-open stream, reusing info if non-nil or
// sniffing by magic number otherwise. Ownership of stream stays with the
// caller: probe reads and seeks but never closes it.
func ProbeIO(r *codec.Registry, stream streamio.Stream, info *codec.Info, logger status.Logger) (*ProbeResult, error) {
	if info == nil {
		var err error
		info, err = r.FromMagicNumber(stream)
		if err != nil {
			return nil, err
		}
	}
	c, err := r.Load(info)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = status.NopLogger{}
	}
	return probeWithCodec(c, stream, info, logger)
}

func probe(r *codec.Registry, stream streamio.Stream, info *codec.Info, logger status.Logger) (res *ProbeResult, err error) {
	defer func() {
		if cerr := stream.Close(); err == nil {
			err = cerr
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
	if logger == nil {
		logger = status.NopLogger{}
	}
	return probeWithCodec(c, stream, info, logger)
}

func probeWithCodec(c codec.Codec, stream streamio.Stream, info *codec.Info, logger status.Logger) (*ProbeResult, error) {
	opts := codec.LoadOptionsFromFeatures(info.LoadFeatures)

	logger.Debug("pipeline: probing", "codec", info.Name)

	st, err := c.LoadInit(stream, opts)
	if err != nil {
		return nil, err
	}

	hdr, err := st.SeekNextFrame(stream)
	finishErr := st.Finish(stream)
	if err != nil {
		return nil, err
	}
	if finishErr != nil {
		return nil, finishErr
	}

	return &ProbeResult{Image: hdr, Info: info}, nil
}
