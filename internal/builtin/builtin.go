// Package builtin implements the trivial command suite rew ships
// in-process: the commands internal/registry re-execs this same binary
// for instead of spawning an external program. Each one reads records
// via internal/recordio and is deliberately simple -- none of them is
// part of the pattern-executor's concurrency model, they are just
// arguments a resolved Command's pipeline can name.
//
// Grounded on the built-in list from
// original_source/src/commands/mod.rs's get_meta, adapted to the Go
// record-processing idiom established in internal/recordio.
package builtin

import (
	"io"

	"github.com/jpikl/mmvv/internal/recordio"
)

// Context is the I/O and configuration a built-in command runs with.
type Context struct {
	Args    []string
	In      io.Reader
	Out     io.Writer
	Sep     recordio.Separator
	BufMode recordio.BufMode
	BufSize int
}

func (c Context) reader() *recordio.LineReader {
	return recordio.NewLineReader(c.In, c.Sep, c.BufSize)
}

func (c Context) writer() *recordio.Writer {
	return recordio.NewWriter(c.Out, c.Sep, c.BufMode, c.BufSize)
}

// Func is one built-in command's entry point.
type Func func(ctx Context) error

var funcs = map[string]Func{
	"ascii":  Ascii,
	"cat":    Cat,
	"first":  First,
	"loop":   Loop,
	"lower":  Lower,
	"seq":    Seq,
	"skip":   Skip,
	"stream": Stream,
	"trim":   Trim,
	"upper":  Upper,
}

// Lookup returns the Func implementing name, or (nil, false).
func Lookup(name string) (Func, bool) {
	f, ok := funcs[name]
	return f, ok
}

// mapRecords is the common shape most built-ins share: transform every
// record independently, in order, until EOF.
func mapRecords(ctx Context, transform func([]byte) []byte) error {
	r := ctx.reader()
	w := ctx.writer()
	for {
		record, ok, err := r.ReadRecord()
		if err != nil {
			return err
		}
		if !ok {
			return w.Drop()
		}
		if err := w.WriteRecord(transform(record)); err != nil {
			return err
		}
	}
}
