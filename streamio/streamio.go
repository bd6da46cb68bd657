/*
NAME
  streamio.go

DESCRIPTION
  streamio.go provides the uniform read/write/seek/tell/flush/close/eof
  abstraction every codec and the frame pipeline operate through, plus its
  file and in-memory constructors.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package streamio provides the uniform I/O abstraction used throughout
// SAIL: a single Stream interface over files and in-memory buffers.
package streamio

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/ausocean/sail/status"
)

// Whence mirrors io.Seek{Start,Current,End} under SAIL's own naming, so
// that Stream doesn't leak a raw io constant without a SAIL status wrapping
// seek failures.
type Whence int

const (
	SeekSet Whence = iota
	SeekCur
	SeekEnd
)

// Stream is a single-threaded I/O handle. Every operation's error on
// failure is or wraps a *status.Error (reachable with errors.As or
// status.CodeOf), using the specific I/O status code (read, write, seek,
// tell, flush, close, eof) from spec.md §7.
type Stream interface {
	// Read reads up to len(buf) bytes, returning the number read. Short
	// reads are not an error; Read behaves like io.Reader.
	Read(buf []byte) (n int, err error)

	// StrictRead reads exactly len(buf) bytes or fails with an IOReadError
	// distinct from EOF -- a short read never silently succeeds.
	StrictRead(buf []byte) error

	// Write writes buf, returning the number of bytes written.
	Write(buf []byte) (n int, err error)

	Seek(offset int64, whence Whence) error
	Tell() (int64, error)
	Flush() error
	Close() error
	EOF() (bool, error)
}

// file is a seekable, unbuffered Stream over an *os.File, grounding
// io_file.c's fopen/fread/fseek/ftell/fflush/fclose/feof sequence.
type file struct {
	f       *os.File
	atEOF   bool
	writeOK bool
}

// OpenFile opens path for reading, matching alloc_io_read_file's "rb" mode.
func OpenFile(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, status.Wrap(status.OpenFileFailed, err, "open file for reading")
	}
	return &file{f: f}, nil
}

// CreateFile opens path for writing (and reading back), truncating any
// existing content, matching alloc_io_write_file's "w+b" mode.
func CreateFile(path string) (Stream, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, status.Wrap(status.OpenFileFailed, err, "open file for writing")
	}
	return &file{f: f, writeOK: true}, nil
}

// CreateTempFile opens a file write-temp at the caller-chosen path, the
// third IO constructor required by spec.md §4.1.
func CreateTempFile(path string) (Stream, error) {
	return CreateFile(path)
}

func (s *file) Read(buf []byte) (int, error) {
	n, err := s.f.Read(buf)
	if err == io.EOF {
		s.atEOF = true
		return n, nil
	}
	if err != nil {
		return n, status.Wrap(status.IOReadError, err, "read file")
	}
	return n, nil
}

func (s *file) StrictRead(buf []byte) error {
	_, err := io.ReadFull(s.f, buf)
	if err != nil {
		return status.Wrap(status.IOReadError, err, "strict read file")
	}
	return nil
}

func (s *file) Write(buf []byte) (int, error) {
	if !s.writeOK {
		return 0, status.New(status.InvalidIO, "stream is not writable")
	}
	n, err := s.f.Write(buf)
	if err != nil {
		return n, status.Wrap(status.IOWriteError, err, "write file")
	}
	return n, nil
}

func (s *file) Seek(offset int64, whence Whence) error {
	s.atEOF = false
	_, err := s.f.Seek(offset, int(whence))
	if err != nil {
		return status.Wrap(status.IOSeekError, err, "seek file")
	}
	return nil
}

func (s *file) Tell() (int64, error) {
	off, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, status.Wrap(status.IOTellError, err, "tell file")
	}
	return off, nil
}

func (s *file) Flush() error {
	if !s.writeOK {
		return nil
	}
	if err := s.f.Sync(); err != nil {
		return status.Wrap(status.IOFlushError, err, "flush file")
	}
	return nil
}

func (s *file) Close() error {
	if err := s.f.Close(); err != nil {
		return status.Wrap(status.IOCloseError, err, "close file")
	}
	return nil
}

func (s *file) EOF() (bool, error) {
	return s.atEOF, nil
}

// memBuffer is the shared position-tracking state for the read and write
// in-memory streams, mirroring mem_io_buffer_info in the original source.
type memBuffer struct {
	pos int64
}

func (m *memBuffer) seek(offset int64, whence Whence, length int64) {
	switch whence {
	case SeekSet:
		switch {
		case offset < 0:
			m.pos = 0
		case offset > length:
			m.pos = length
		default:
			m.pos = offset
		}
	case SeekCur:
		switch {
		case offset < 0 && -offset > m.pos:
			m.pos = 0
		case m.pos+offset > length:
			m.pos = length
		default:
			m.pos += offset
		}
	case SeekEnd:
		switch {
		case offset >= 0:
			m.pos = length
		case -offset > length:
			m.pos = 0
		default:
			m.pos = length + offset
		}
	}
}

// memReader is a read-only Stream over a caller-supplied byte slice.
type memReader struct {
	memBuffer
	buf []byte
}

// OpenMemoryReader wraps buf (not copied) as a read-only Stream.
func OpenMemoryReader(buf []byte) Stream {
	return &memReader{buf: buf}
}

func (s *memReader) Read(buf []byte) (int, error) {
	if s.pos >= int64(len(s.buf)) {
		return 0, nil
	}
	n := copy(buf, s.buf[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *memReader) StrictRead(buf []byte) error {
	if s.pos+int64(len(buf)) > int64(len(s.buf)) {
		return status.New(status.IOReadError, "short read: need %d bytes, have %d", len(buf), int64(len(s.buf))-s.pos)
	}
	n := copy(buf, s.buf[s.pos:s.pos+int64(len(buf))])
	s.pos += int64(n)
	return nil
}

func (s *memReader) Write([]byte) (int, error) {
	return NoopWrite()
}

func (s *memReader) Seek(offset int64, whence Whence) error {
	s.memBuffer.seek(offset, whence, int64(len(s.buf)))
	return nil
}

func (s *memReader) Tell() (int64, error) { return s.pos, nil }
func (s *memReader) Flush() error         { return nil }
func (s *memReader) Close() error         { return nil }
func (s *memReader) EOF() (bool, error)   { return s.pos >= int64(len(s.buf)), nil }

// memWriter is a write-only, growable Stream over a caller-supplied byte
// slice pointer, tracking the current written length as the original's
// mem_io_write_stream does.
type memWriter struct {
	memBuffer
	buf *[]byte
}

// OpenMemoryWriter wraps *buf as a write-only Stream. Writes append to and
// grow *buf.
func OpenMemoryWriter(buf *[]byte) Stream {
	return &memWriter{buf: buf}
}

func (s *memWriter) Read([]byte) (int, error) {
	return NoopRead()
}

func (s *memWriter) StrictRead([]byte) error {
	return status.New(status.InvalidIO, "stream is not readable")
}

func (s *memWriter) Write(buf []byte) (int, error) {
	end := s.pos + int64(len(buf))
	if end > int64(len(*s.buf)) {
		grown := make([]byte, end)
		copy(grown, *s.buf)
		*s.buf = grown
	}
	n := copy((*s.buf)[s.pos:end], buf)
	s.pos += int64(n)
	return n, nil
}

func (s *memWriter) Seek(offset int64, whence Whence) error {
	s.memBuffer.seek(offset, whence, int64(len(*s.buf)))
	return nil
}

func (s *memWriter) Tell() (int64, error) { return s.pos, nil }
func (s *memWriter) Flush() error         { return nil }
func (s *memWriter) Close() error         { return nil }
func (s *memWriter) EOF() (bool, error)   { return s.pos >= int64(len(*s.buf)), nil }

// NoopRead and NoopWrite are the read-only/write-only stub bodies ported
// from io_noop.c (spec.md §E.4 item 3): calling the unsupported direction
// fails immediately with InvalidIO rather than panicking or blocking.
func NoopRead() (int, error) {
	return 0, errors.WithStack(status.New(status.InvalidIO, "stream does not support reading"))
}

func NoopWrite() (int, error) {
	return 0, errors.WithStack(status.New(status.InvalidIO, "stream does not support writing"))
}
