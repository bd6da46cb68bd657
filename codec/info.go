/*
NAME
  info.go

DESCRIPTION
  info.go defines the immutable per-codec descriptor (CodecInfo in spec
  terms) and its load/save feature tables, plus the INI-style descriptor
  parser that produces them.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package codec provides the codec descriptor registry, the codec vtable
// contract, and per-call load/save options -- the discovery and dispatch
// layer every facade and the frame pipeline are built on.
package codec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ausocean/sail/pixelformat"
	"github.com/ausocean/sail/status"
)

// CurrentLayout is the only codec descriptor layout version this registry
// understands. A descriptor declaring any other layout fails to parse with
// UnsupportedCodecLayout, matching the original's SAIL_CODEC_LAYOUT_V3 gate.
const CurrentLayout = 3

// CodecFeature is a bitmask of capabilities a codec's load or save side may
// declare.
type CodecFeature int

const (
	FeatureStatic CodecFeature = 1 << iota
	FeatureMultiPaged
	FeatureAnimated
	FeatureMetaData
	FeatureInterlaced
	FeatureICCP
	FeatureSourceImage
)

var featureNames = map[string]CodecFeature{
	"STATIC":       FeatureStatic,
	"MULTI-PAGED":  FeatureMultiPaged,
	"ANIMATED":     FeatureAnimated,
	"META-DATA":    FeatureMetaData,
	"INTERLACED":   FeatureInterlaced,
	"ICCP":         FeatureICCP,
	"SOURCE-IMAGE": FeatureSourceImage,
}

// ImageProperty is a bitmask of structural properties a save side may
// produce in the encoded file.
type ImageProperty int

const (
	PropertyFlippedVertically ImageProperty = 1 << iota
	PropertyInterlaced
)

var propertyNames = map[string]ImageProperty{
	"FLIPPED-VERTICALLY": PropertyFlippedVertically,
	"INTERLACED":         PropertyInterlaced,
}

// LoadFeatures describes what a codec's load side can produce.
type LoadFeatures struct {
	OutputPixelFormats       []pixelformat.PixelFormat
	DefaultOutputPixelFormat pixelformat.PixelFormat
	Features                 CodecFeature
}

// SaveFeatures describes what a codec's save side accepts, including the
// per-input-format mapping of acceptable output formats (spec.md §E.4 item
// 6, ported from pixel_formats_mapping_node).
type SaveFeatures struct {
	Features                CodecFeature
	Properties              ImageProperty
	InterlacedPasses        int
	Compressions            []pixelformat.Compression
	DefaultCompression      pixelformat.Compression
	CompressionLevelMin     float64
	CompressionLevelMax     float64
	CompressionLevelDefault float64
	CompressionLevelStep    float64
	PixelFormatMapping      map[pixelformat.PixelFormat][]pixelformat.PixelFormat
}

// OutputFormatsFor returns the acceptable save pixel formats for an image
// currently in format from, or nil if from has no mapping entry.
func (sf *SaveFeatures) OutputFormatsFor(from pixelformat.PixelFormat) []pixelformat.PixelFormat {
	if sf == nil {
		return nil
	}
	return sf.PixelFormatMapping[from]
}

// IsPixelFormatSupportedForSaving reports whether pf appears anywhere in
// sf's pixel format mapping, matching the pipeline's save-time guard
// (spec.md §4.4).
func (sf *SaveFeatures) IsPixelFormatSupportedForSaving(pf pixelformat.PixelFormat) bool {
	if sf == nil {
		return false
	}
	for _, outs := range sf.PixelFormatMapping {
		for _, o := range outs {
			if o == pf {
				return true
			}
		}
	}
	return false
}

// Info is the immutable, parsed-once-per-codec descriptor (CodecInfo in
// spec terms): name, version, priority, discovery keys, and feature tables.
type Info struct {
	Path         string
	Layout       int
	Version      string
	Name         string
	Description  string
	Priority     int
	MagicNumbers []string // lowercased space-separated hex tokens, "xx" = wildcard.
	Extensions   []string // lowercased, no leading dot.
	MimeTypes    []string // lowercased.
	LoadFeatures *LoadFeatures
	SaveFeatures *SaveFeatures
}

// HasExtension reports whether ext (case-insensitive, no leading dot)
// appears in info's extension list.
func (info *Info) HasExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range info.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ParseInfo parses an INI-style descriptor (sections [codec],
// [load-features], [save-features], [save-pixel-formats-mapping]) from r,
// ported from codec_info_private.c's inih_handler. There was no INI parsing
// library anywhere in the example pack to ground this on, so it is
// hand-rolled over bufio.Scanner (see DESIGN.md).
func ParseInfo(r io.Reader, path string) (*Info, error) {
	info := &Info{
		Path:         path,
		LoadFeatures: &LoadFeatures{},
		SaveFeatures: &SaveFeatures{PixelFormatMapping: map[pixelformat.PixelFormat][]pixelformat.PixelFormat{}},
	}

	scanner := bufio.NewScanner(r)
	section := ""
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, status.New(status.ParseFileError, "%s:%d: expected key=value", path, lineNo)
		}
		key := strings.TrimSpace(line[:eq])
		value := strings.TrimSpace(line[eq+1:])
		if value == "" {
			continue // Silently ignore empty values, matching inih_handler_sail_error.
		}
		if err := applyDescriptorKey(info, section, key, value); err != nil {
			return nil, status.Wrap(status.ParseFileError, err, path)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, status.Wrap(status.IOReadError, err, "read codec descriptor")
	}

	if info.Layout != CurrentLayout {
		return nil, status.New(status.UnsupportedCodecLayout, "unsupported codec layout version %d in %s", info.Layout, path)
	}
	if err := checkInfo(info); err != nil {
		return nil, err
	}
	return info, nil
}

func applyDescriptorKey(info *Info, section, key, value string) error {
	switch section {
	case "codec":
		return applyCodecKey(info, key, value)
	case "load-features":
		return applyLoadFeatureKey(info.LoadFeatures, key, value)
	case "save-features":
		return applySaveFeatureKey(info.SaveFeatures, key, value)
	case "save-pixel-formats-mapping":
		in, err := pixelformat.Parse(key)
		if err != nil {
			return err
		}
		outs, err := parsePixelFormatList(value)
		if err != nil {
			return err
		}
		info.SaveFeatures.PixelFormatMapping[in] = outs
		return nil
	default:
		return status.New(status.ParseFileError, "unsupported codec descriptor section %q", section)
	}
}

func applyCodecKey(info *Info, key, value string) error {
	switch key {
	case "layout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		info.Layout = n
	case "version":
		info.Version = value
	case "name":
		info.Name = value
	case "description":
		info.Description = value
	case "priority":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		info.Priority = n
	case "magic-numbers":
		for _, tok := range splitSemicolon(value) {
			info.MagicNumbers = append(info.MagicNumbers, strings.ToLower(tok))
		}
	case "extensions":
		for _, tok := range splitSemicolon(value) {
			info.Extensions = append(info.Extensions, strings.ToLower(tok))
		}
	case "mime-types":
		for _, tok := range splitSemicolon(value) {
			info.MimeTypes = append(info.MimeTypes, strings.ToLower(tok))
		}
	default:
		return status.New(status.ParseFileError, "unsupported codec info key %q in [codec]", key)
	}
	return nil
}

func applyLoadFeatureKey(lf *LoadFeatures, key, value string) error {
	switch key {
	case "output-pixel-formats":
		pfs, err := parsePixelFormatList(value)
		if err != nil {
			return err
		}
		lf.OutputPixelFormats = pfs
	case "default-output-pixel-format":
		pf, err := pixelformat.Parse(value)
		if err != nil {
			return err
		}
		lf.DefaultOutputPixelFormat = pf
	case "features":
		f, err := parseFeatureFlags(value)
		if err != nil {
			return err
		}
		lf.Features = f
	default:
		return status.New(status.ParseFileError, "unsupported codec info key %q in [load-features]", key)
	}
	return nil
}

func applySaveFeatureKey(sf *SaveFeatures, key, value string) error {
	switch key {
	case "features":
		f, err := parseFeatureFlags(value)
		if err != nil {
			return err
		}
		sf.Features = f
	case "properties":
		p, err := parsePropertyFlags(value)
		if err != nil {
			return err
		}
		sf.Properties = p
	case "interlaced-passes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		sf.InterlacedPasses = n
	case "compression-types":
		cs, err := parseCompressionList(value)
		if err != nil {
			return err
		}
		sf.Compressions = cs
	case "default-compression":
		c, err := parseCompression(value)
		if err != nil {
			return err
		}
		sf.DefaultCompression = c
	case "compression-level-min":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		sf.CompressionLevelMin = f
	case "compression-level-max":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		sf.CompressionLevelMax = f
	case "compression-level-default":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		sf.CompressionLevelDefault = f
	case "compression-level-step":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		sf.CompressionLevelStep = f
	default:
		return status.New(status.ParseFileError, "unsupported codec info key %q in [save-features]", key)
	}
	return nil
}

func splitSemicolon(value string) []string {
	var out []string
	for _, tok := range strings.Split(value, ";") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func parsePixelFormatList(value string) ([]pixelformat.PixelFormat, error) {
	var out []pixelformat.PixelFormat
	for _, tok := range splitSemicolon(value) {
		pf, err := pixelformat.Parse(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, pf)
	}
	return out, nil
}

func parseCompression(s string) (pixelformat.Compression, error) {
	switch s {
	case "NONE":
		return pixelformat.CompressionNone, nil
	case "RLE":
		return pixelformat.CompressionRLE, nil
	case "DEFLATE":
		return pixelformat.CompressionDeflate, nil
	case "LZW":
		return pixelformat.CompressionLZW, nil
	case "JPEG":
		return pixelformat.CompressionJPEG, nil
	case "PNG":
		return pixelformat.CompressionPNG, nil
	case "LZMA":
		return pixelformat.CompressionLZMA, nil
	case "ZSTD":
		return pixelformat.CompressionZSTD, nil
	default:
		return pixelformat.CompressionUnknown, status.New(status.ParseFileError, "unknown compression %q", s)
	}
}

func parseCompressionList(value string) ([]pixelformat.Compression, error) {
	var out []pixelformat.Compression
	for _, tok := range splitSemicolon(value) {
		c, err := parseCompression(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseFeatureFlags(value string) (CodecFeature, error) {
	var f CodecFeature
	for _, tok := range splitSemicolon(value) {
		flag, ok := featureNames[tok]
		if !ok {
			return 0, status.New(status.ParseFileError, "unknown codec feature %q", tok)
		}
		f |= flag
	}
	return f, nil
}

func parsePropertyFlags(value string) (ImageProperty, error) {
	var p ImageProperty
	for _, tok := range splitSemicolon(value) {
		flag, ok := propertyNames[tok]
		if !ok {
			return 0, status.New(status.ParseFileError, "unknown image property %q", tok)
		}
		p |= flag
	}
	return p, nil
}

// checkInfo runs the "paranoid error checks" from codec_info_private.c's
// check_codec_info: a codec able to write images needs a non-empty pixel
// format mapping, a non-empty compressions list, and compression
// types/levels must be mutually exclusive when more than one type is
// listed. This file preserves the §E.5 open-question reading: any
// STATIC/ANIMATED/MULTI_PAGED save feature without a mapping fails
// unconditionally, with no escape hatch.
func checkInfo(info *Info) error {
	wf := info.SaveFeatures
	if wf.Features&(FeatureStatic|FeatureAnimated|FeatureMultiPaged) != 0 && len(wf.PixelFormatMapping) == 0 {
		return status.New(status.IncompleteCodecInfo, "codec %s can write images but declares no output pixel format mappings", info.Name)
	}
	if len(wf.Compressions) < 1 {
		return status.New(status.IncompleteCodecInfo, "codec %s declares an empty compressions list", info.Name)
	}
	if len(wf.Compressions) > 1 && (wf.CompressionLevelMin != 0 || wf.CompressionLevelMax != 0) {
		return status.New(status.IncompleteCodecInfo, "codec %s declares multiple compression types and non-zero compression levels", info.Name)
	}
	return nil
}
