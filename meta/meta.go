/*
NAME
  meta.go

DESCRIPTION
  meta.go defines the small value records an Image carries alongside its
  pixels: key/value metadata, resolution, palette, ICC profile, and the
  source-image descriptor produced on load.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package meta defines the metadata records (MetaData, Resolution, Palette,
// Iccp, SourceImage) carried by a SAIL image.
package meta

import (
	"fmt"

	"github.com/ausocean/sail/pixelformat"
)

// Key identifies a metadata entry, either one of the well-known tags below
// or Custom with a caller-supplied name.
type Key int

const (
	Custom Key = iota
	Artist
	Author
	Comment
	Copyright
	CreationTime
	EXIF
	IPTC
	XMP
	Software
	Title
	URL
)

// ValueKind tags which field of Value is populated.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindString
	KindBytes
)

// Value is a tagged variant holding exactly one of the scalar/string/bytes
// payloads, matching the original's meta_entry_node value union.
type Value struct {
	Kind ValueKind

	Bool   bool
	I8     int8
	U8     uint8
	I16    int16
	U16    uint16
	I32    int32
	U32    uint32
	I64    int64
	U64    uint64
	F32    float32
	F64    float64
	String string
	Bytes  []byte
}

// StringValue is a convenience constructor for the overwhelmingly common
// string-valued metadata entry.
func StringValue(s string) Value { return Value{Kind: KindString, String: s} }

// Entry is one key/value metadata pair. A Custom key carries its name in
// CustomKey; any other Key ignores CustomKey.
type Entry struct {
	Key       Key
	CustomKey string
	Value     Value
}

func (e Entry) String() string {
	if e.Key == Custom {
		return fmt.Sprintf("%s=%v", e.CustomKey, e.Value)
	}
	return fmt.Sprintf("%d=%v", e.Key, e.Value)
}

// List is an insertion-ordered sequence of metadata entries. Reimplemented
// as a growable slice rather than the original's linked list (spec.md §9),
// with Clone for the Deep-Diver facade's copy-on-handoff requirement.
type List []Entry

// Clone returns a deep copy of l (the Bytes payload of each entry is
// copied, not aliased).
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	out := make(List, len(l))
	for i, e := range l {
		if e.Value.Bytes != nil {
			b := make([]byte, len(e.Value.Bytes))
			copy(b, e.Value.Bytes)
			e.Value.Bytes = b
		}
		out[i] = e
	}
	return out
}

// ResolutionUnit is the physical unit a Resolution's x/y values are
// expressed in.
type ResolutionUnit int

const (
	UnitUnknown ResolutionUnit = iota
	UnitMicrometer
	UnitCentimeter
	UnitInch
	UnitMeter
)

// Resolution is an optional physical pixel density.
type Resolution struct {
	X, Y float64
	Unit ResolutionUnit
}

// Palette is an owned color table for indexed pixel formats. Its pixel
// format must be byte-aligned (RGB24 or RGBA32 per spec.md §3).
type Palette struct {
	Format     pixelformat.PixelFormat
	EntryCount int
	Bytes      []byte
}

// Clone returns a deep copy of p, or nil if p is nil.
func (p *Palette) Clone() *Palette {
	if p == nil {
		return nil
	}
	b := make([]byte, len(p.Bytes))
	copy(b, p.Bytes)
	return &Palette{Format: p.Format, EntryCount: p.EntryCount, Bytes: b}
}

// Validate checks the palette pixel-format invariant from spec.md §3.
func (p *Palette) Validate() error {
	if p == nil {
		return nil
	}
	switch p.Format {
	case pixelformat.RGB24, pixelformat.RGBA32:
		// OK.
	default:
		return fmt.Errorf("meta: palette pixel format %s is not byte-aligned RGB", p.Format)
	}
	want := p.EntryCount * (p.Format.BitsPerPixel() / 8)
	if len(p.Bytes) < want {
		return fmt.Errorf("meta: palette has %d bytes, want at least %d for %d entries", len(p.Bytes), want, p.EntryCount)
	}
	return nil
}

// Entry returns the RGB(A) bytes for palette index i. ok is false if i is
// out of range (the broken-image condition spec.md §4.5 describes).
func (p *Palette) Entry(i int) (r, g, b, a byte, ok bool) {
	if p == nil || i < 0 || i >= p.EntryCount {
		return 0, 0, 0, 0, false
	}
	stride := p.Format.BitsPerPixel() / 8
	off := i * stride
	if off+stride > len(p.Bytes) {
		return 0, 0, 0, 0, false
	}
	switch p.Format {
	case pixelformat.RGB24:
		return p.Bytes[off], p.Bytes[off+1], p.Bytes[off+2], 255, true
	case pixelformat.RGBA32:
		return p.Bytes[off], p.Bytes[off+1], p.Bytes[off+2], p.Bytes[off+3], true
	default:
		return 0, 0, 0, 0, false
	}
}

// Iccp is an opaque ICC color profile, carried through load and save
// verbatim (spec.md §1 Non-goals: ICC transforms are never applied).
type Iccp struct {
	Name  string
	Bytes []byte
}

// Clone returns a deep copy of i, or nil if i is nil.
func (i *Iccp) Clone() *Iccp {
	if i == nil {
		return nil
	}
	b := make([]byte, len(i.Bytes))
	copy(b, i.Bytes)
	return &Iccp{Name: i.Name, Bytes: b}
}

// SourceImageProperty is a bitfield of special properties a codec may
// report about the file's native representation.
type SourceImageProperty int

const (
	PropertyNone              SourceImageProperty = 0
	PropertyFlippedVertically SourceImageProperty = 1 << 0
)

// SourceImage describes a file's native representation before any
// conversion performed on load.
type SourceImage struct {
	PixelFormat       pixelformat.PixelFormat
	Compression       pixelformat.Compression
	Orientation       pixelformat.Orientation
	ChromaSubsampling pixelformat.ChromaSubsampling
	Interlaced        bool
	Properties        SourceImageProperty
}

// Clone returns a shallow copy of s (SourceImage has no owned pointers), or
// nil if s is nil.
func (s *SourceImage) Clone() *SourceImage {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
