package recordio

import (
	"bufio"
	"io"
)

// Writer writes records terminated by the configured separator,
// flushing per the buffer policy in spec section 4.1: every record in
// line mode, only when the internal buffer fills in full mode.
type Writer struct {
	w    *bufio.Writer
	sep  Separator
	full bool
}

func NewWriter(w io.Writer, sep Separator, mode BufMode, bufSize int) *Writer {
	return &Writer{w: bufio.NewWriterSize(w, bufSize), sep: sep, full: mode.IsFull()}
}

// WriteRecord emits p followed by the separator, then flushes unless
// running in full-flush mode.
func (wr *Writer) WriteRecord(p []byte) error {
	if _, err := wr.w.Write(p); err != nil {
		return err
	}
	if err := wr.w.WriteByte(byte(wr.sep)); err != nil {
		return err
	}
	if !wr.full {
		return wr.w.Flush()
	}
	return nil
}

// Drop flushes any records still held in the buffer. Callers call it
// once they finish writing; a caller that returns early on an error
// without calling it leaves records buffered in full-flush mode
// unwritten.
func (wr *Writer) Drop() error {
	return wr.w.Flush()
}
