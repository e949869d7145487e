package recordio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// RecordTooLarge is returned by LineReader.ReadRecord when an input
// record exceeds the configured buffer size (spec section 4.1).
type RecordTooLarge struct {
	Limit int
}

func (e *RecordTooLarge) Error() string {
	return fmt.Sprintf("record exceeds buffer size of %d bytes", e.Limit)
}

// LineReader yields one record at a time, excluding the terminating
// separator, from an underlying byte stream.
type LineReader struct {
	r     io.Reader
	sep   Separator
	limit int
	buf   []byte
	chunk []byte
	eof   bool
}

// NewLineReader wraps r, splitting it into records on sep, failing any
// record that grows past bufSize unconsumed bytes.
func NewLineReader(r io.Reader, sep Separator, bufSize int) *LineReader {
	return &LineReader{
		r:     r,
		sep:   sep,
		limit: bufSize,
		buf:   make([]byte, 0, bufSize),
		chunk: make([]byte, bufSize),
	}
}

// ReadRecord returns the next record and true, or (nil, false, nil) once
// the stream is exhausted with no partial record left to flush.
func (lr *LineReader) ReadRecord() ([]byte, bool, error) {
	for {
		if idx := bytes.IndexByte(lr.buf, byte(lr.sep)); idx >= 0 {
			record := append([]byte(nil), lr.buf[:idx]...)
			lr.buf = lr.buf[idx+1:]
			return record, true, nil
		}
		if len(lr.buf) > lr.limit {
			return nil, false, &RecordTooLarge{Limit: lr.limit}
		}
		if lr.eof {
			if len(lr.buf) == 0 {
				return nil, false, nil
			}
			record := append([]byte(nil), lr.buf...)
			lr.buf = lr.buf[:0]
			return record, true, nil
		}
		n, err := lr.r.Read(lr.chunk)
		if n > 0 {
			lr.buf = append(lr.buf, lr.chunk[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				lr.eof = true
				continue
			}
			return nil, false, err
		}
	}
}

// ChunkReader yields raw byte chunks up to its buffer size with no
// record-boundary semantics; used by the pattern executor's stdin
// forwarder (spec section 4.1 and 4.5).
type ChunkReader struct {
	r    io.Reader
	size int
}

func NewChunkReader(r io.Reader, size int) *ChunkReader {
	return &ChunkReader{r: r, size: size}
}

// ReadChunk returns up to the configured size of bytes, or (nil, false,
// nil) at end of stream.
func (cr *ChunkReader) ReadChunk() ([]byte, bool, error) {
	buf := make([]byte, cr.size)
	for {
		n, err := cr.r.Read(buf)
		if n > 0 {
			return buf[:n], true, nil
		}
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
	}
}
