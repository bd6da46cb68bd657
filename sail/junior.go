/*
NAME
  junior.go

DESCRIPTION
  junior.go is the Junior facade (spec.md §4.7 tier 1): the simplest,
  single-frame, default-everything entry points, grounded on
  original_source/src/libsail/src/sail_junior.c.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package sail is SAIL's public facade (spec.md §4.7): four layered entry
// point groups -- Junior, Advanced, Deep-Diver, Technical-Diver -- all
// built on the pipeline package's load/save/probe state machine. Codecs
// register themselves against codec.Default via their own init functions
// (e.g. importing codec/bmp for its side effect); sail itself names no
// specific codec.
package sail

import (
	"github.com/ausocean/sail/codec"
	"github.com/ausocean/sail/image"
	"github.com/ausocean/sail/pipeline"
)

// Probe reads just enough of path to populate an image header (dimensions,
// pixel format, metadata) without allocating or decoding pixel data, along
// with the codec descriptor that would be used to load it.
func Probe(path string) (*image.Image, *codec.Info, error) {
	res, err := pipeline.ProbeFile(codec.Default, path, nil)
	if err != nil {
		return nil, nil, err
	}
	return res.Image, res.Info, nil
}

// LoadFromFile loads the first frame of path using default options and the
// codec selected by its extension.
func LoadFromFile(path string) (*image.Image, error) {
	p, err := pipeline.StartLoadingFile(codec.Default, path, nil, nil)
	if err != nil {
		return nil, err
	}
	defer p.Stop()

	img, err := p.NextFrame()
	if err != nil {
		return nil, err
	}
	return img, p.Stop()
}

// LoadFromMemory loads the first frame of buf using default options, the
// codec selected by sniffing buf's magic number.
func LoadFromMemory(buf []byte) (*image.Image, error) {
	p, err := pipeline.StartLoadingMemory(codec.Default, buf, nil, nil)
	if err != nil {
		return nil, err
	}
	defer p.Stop()

	img, err := p.NextFrame()
	if err != nil {
		return nil, err
	}
	return img, p.Stop()
}

// SaveToFile saves img as a single frame to path using default options and
// the codec selected by path's extension.
func SaveToFile(path string, img *image.Image) error {
	p, err := pipeline.StartSavingFile(codec.Default, path, nil, nil)
	if err != nil {
		return err
	}
	defer p.Stop()

	if err := p.WriteFrame(img); err != nil {
		return err
	}
	return p.Stop()
}

// SaveToMemory saves img as a single frame and returns the written bytes.
// The codec is selected from info, the descriptor an earlier Probe/List
// call returned.
func SaveToMemory(info *codec.Info, img *image.Image) ([]byte, error) {
	var buf []byte
	p, err := pipeline.StartSavingMemory(codec.Default, &buf, info, nil, nil)
	if err != nil {
		return nil, err
	}
	defer p.Stop()

	if err := p.WriteFrame(img); err != nil {
		return nil, err
	}
	if err := p.Stop(); err != nil {
		return nil, err
	}
	return buf, nil
}
