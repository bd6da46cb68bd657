/*
NAME
  options.go

DESCRIPTION
  options.go defines the per-call LoadOptions/SaveOptions tuning maps and
  their deep-copy semantics, and the LoadOptionsFromFeatures/
  SaveOptionsFromFeatures constructors supplemented from spec.md §E.4 item
  2 (original_source's sail_alloc_load_options_from_features equivalents).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package codec

import "github.com/ausocean/sail/pixelformat"

// IOOptions is a bitmask of which optional metadata a load or save should
// populate/emit.
type IOOptions int

const (
	IOMetaData IOOptions = 1 << iota
	IOICCP
	IOSourceImage
)

// TuningKind tags which field of TuningValue is populated.
type TuningKind int

const (
	TuningBool TuningKind = iota
	TuningInt
	TuningFloat
	TuningString
)

// TuningValue is the small variant codec-specific tuning hints are carried
// in, matching spec.md §9's "dynamic tuning maps" design note.
type TuningValue struct {
	Kind   TuningKind
	Bool   bool
	Int    int64
	Float  float64
	String string
}

func cloneTuning(m map[string]TuningValue) map[string]TuningValue {
	if m == nil {
		return nil
	}
	out := make(map[string]TuningValue, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// LoadOptions is the per-call load configuration.
type LoadOptions struct {
	IOOptions IOOptions
	Tuning    map[string]TuningValue
}

// Clone returns a deep copy of o, or nil if o is nil. The Deep-Diver facade
// deep-copies options handed to it (spec.md §4.7) so the caller's map
// cannot be mutated out from under a running pipeline.
func (o *LoadOptions) Clone() *LoadOptions {
	if o == nil {
		return nil
	}
	return &LoadOptions{IOOptions: o.IOOptions, Tuning: cloneTuning(o.Tuning)}
}

// LoadOptionsFromFeatures derives default load options from a codec's
// declared load features: every optional metadata kind the codec can
// produce is requested.
func LoadOptionsFromFeatures(lf *LoadFeatures) *LoadOptions {
	opts := &LoadOptions{}
	if lf == nil {
		return opts
	}
	if lf.Features&FeatureMetaData != 0 {
		opts.IOOptions |= IOMetaData
	}
	if lf.Features&FeatureICCP != 0 {
		opts.IOOptions |= IOICCP
	}
	if lf.Features&FeatureSourceImage != 0 {
		opts.IOOptions |= IOSourceImage
	}
	return opts
}

// SaveOptions is the per-call save configuration. When a caller does not
// supply one, defaults derive from the codec's save features (spec.md
// §3).
type SaveOptions struct {
	IOOptions        IOOptions
	Compression      pixelformat.Compression
	CompressionLevel float64
	Tuning           map[string]TuningValue
}

// Clone returns a deep copy of o, or nil if o is nil.
func (o *SaveOptions) Clone() *SaveOptions {
	if o == nil {
		return nil
	}
	return &SaveOptions{
		IOOptions:        o.IOOptions,
		Compression:      o.Compression,
		CompressionLevel: o.CompressionLevel,
		Tuning:           cloneTuning(o.Tuning),
	}
}

// SaveOptionsFromFeatures derives default save options from a codec's
// declared save features: default compression and level, and every
// optional metadata kind the codec can emit.
func SaveOptionsFromFeatures(sf *SaveFeatures) *SaveOptions {
	opts := &SaveOptions{}
	if sf == nil {
		return opts
	}
	opts.Compression = sf.DefaultCompression
	opts.CompressionLevel = sf.CompressionLevelDefault
	if sf.Features&FeatureMetaData != 0 {
		opts.IOOptions |= IOMetaData
	}
	if sf.Features&FeatureICCP != 0 {
		opts.IOOptions |= IOICCP
	}
	return opts
}
