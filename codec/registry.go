/*
NAME
  registry.go

DESCRIPTION
  registry.go implements the process-wide, lazily-initialized codec-info
  table: registration, priority ordering, the public from_path/
  from_extension/from_mime_type/from_magic_number lookups, and the
  load/flush lifecycle for cached codec instances.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package codec

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ausocean/sail/status"
	"github.com/ausocean/sail/streamio"
)

// MagicBufferSize is the number of leading bytes read for magic-number
// matching (spec.md §4.2).
const MagicBufferSize = 16

type entry struct {
	info    *Info
	factory Factory
	codec   Codec // cached once loaded; nil until first use or preload.
}

// Registry is the process-wide codec table. The zero value is not usable;
// construct with NewRegistry. A single *Registry is normally shared across
// a process via a package-level instance (see Default below), matching
// spec.md §9's "process-wide lazy-initialized context" design note, but
// Registry itself holds no global state so tests can construct isolated
// instances.
type Registry struct {
	mu          sync.Mutex
	entries     []*entry
	initialized bool
	logger      status.Logger
}

// NewRegistry returns an empty, uninitialized Registry.
func NewRegistry() *Registry {
	return &Registry{logger: status.NopLogger{}}
}

// Option configures Registry.Init.
type Option func(*Registry)

// WithPreload causes Init to eagerly construct every registered codec
// instead of deferring construction to first use.
func WithPreload() Option {
	return func(r *Registry) {
		for _, e := range r.entries {
			if e.codec == nil {
				e.codec = e.factory(e.info)
			}
		}
	}
}

// WithLogger attaches a log sink, matching spec.md §7's pluggable log
// sink.
func WithLogger(l status.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// Register adds a codec descriptor and its factory to the registry. It may
// be called before or after Init; Init itself does not discover codecs (no
// directory scan occurs unless the caller explicitly parses descriptors
// with ParseInfo and registers them), matching the statically-linked half
// of spec.md §9's registration design note.
func (r *Registry) Register(info *Info, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, &entry{info: info, factory: factory})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].info.Priority > r.entries[j].info.Priority
	})
}

// Init marks the registry ready for use and applies opts. Init is
// idempotent and safe to call repeatedly; re-calling re-applies opts
// (e.g. a second WithPreload call) without discarding existing
// registrations.
func (r *Registry) Init(opts ...Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initialized = true
	for _, opt := range opts {
		opt(r)
	}
	return nil
}

// Finish unloads every cached codec instance without forgetting
// registrations; the next lookup reloads lazily. Finish is idempotent and
// safe to call on a registry that was never Init'd.
func (r *Registry) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		e.codec = nil
	}
	r.initialized = false
	return nil
}

// List returns every registered descriptor, in priority order.
func (r *Registry) List() []*Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Info, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.info
	}
	return out
}

// FromExtension returns the highest-priority codec whose extension list
// contains ext (case-insensitive).
func (r *Registry) FromExtension(ext string) (*Info, error) {
	ext = strings.ToLower(ext)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.info.HasExtension(ext) {
			return e.info, nil
		}
	}
	return nil, status.New(status.CodecNotFound, "no codec registered for extension %q", ext)
}

// FromPath returns the codec matching path's extension (the characters
// after the last '.'), case-insensitive.
func (r *Registry) FromPath(path string) (*Info, error) {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 || dot == len(path)-1 {
		return nil, status.New(status.InvalidArgument, "path %q has no extension", path)
	}
	return r.FromExtension(path[dot+1:])
}

// FromMimeType returns the highest-priority codec whose MIME type list
// contains mime (case-insensitive).
func (r *Registry) FromMimeType(mime string) (*Info, error) {
	mime = strings.ToLower(mime)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		for _, m := range e.info.MimeTypes {
			if m == mime {
				return e.info, nil
			}
		}
	}
	return nil, status.New(status.CodecNotFound, "no codec registered for mime type %q", mime)
}

// FromMagicNumber reads MagicBufferSize bytes from io, matches them
// against every registered codec's magic patterns in priority order, and
// seeks io back to offset 0 before returning.
func (r *Registry) FromMagicNumber(io streamio.Stream) (*Info, error) {
	buf := make([]byte, MagicBufferSize)
	if err := io.StrictRead(buf); err != nil {
		return nil, err
	}
	if err := io.Seek(0, streamio.SeekSet); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		for _, pattern := range e.info.MagicNumbers {
			if matchMagic(buf, pattern) {
				return e.info, nil
			}
		}
	}
	return nil, status.New(status.CodecNotFound, "no codec matches the magic number")
}

// FromMagicNumberPath is a convenience wrapper opening path for reading.
func (r *Registry) FromMagicNumberPath(path string) (*Info, error) {
	s, err := streamio.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return r.FromMagicNumber(s)
}

// FromMagicNumberMemory is a convenience wrapper over an in-memory buffer.
func (r *Registry) FromMagicNumberMemory(buf []byte) (*Info, error) {
	return r.FromMagicNumber(streamio.OpenMemoryReader(buf))
}

// matchMagic compares the leading bytes of buf against pattern, a
// whitespace-separated hex byte list (max MagicBufferSize bytes) where
// "xx" means wildcard, matching spec.md §6's magic-pattern format.
func matchMagic(buf []byte, pattern string) bool {
	tokens := strings.Fields(pattern)
	if len(tokens) > len(buf) {
		return false
	}
	for i, tok := range tokens {
		if strings.EqualFold(tok, "xx") {
			continue
		}
		n, err := strconv.ParseUint(tok, 16, 8)
		if err != nil || byte(n) != buf[i] {
			return false
		}
	}
	return true
}

// Load returns the loaded Codec for info, constructing and caching it on
// first use.
func (r *Registry) Load(info *Info) (Codec, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.info == info {
			if e.codec == nil {
				e.codec = e.factory(e.info)
			}
			return e.codec, nil
		}
	}
	return nil, status.New(status.CodecLoadFailed, "codec %q is not registered on this registry", info.Name)
}

// Default is the process-wide registry instance the public facade uses
// when no explicit *Registry is supplied (only Technical-Diver's
// sail.WithRegistry accepts an explicit one; Junior, Advanced and
// Deep-Diver use Default).
var Default = NewRegistry()
