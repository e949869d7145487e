// Package recordio implements the record-oriented stdin/stdout layer
// every rew command reads and writes through: a configurable separator
// byte, line- or full-buffered flushing, and readers that yield whole
// records rather than raw bytes.
//
// Grounded on original_source/src/env.rs (separator/BufMode defaults)
// and on execx's own small, single-purpose file layout (one concern per
// file: separator.go, bufmode.go, reader.go, writer.go).
package recordio

// Separator is the record delimiter: newline by default, or NUL when
// -0/--null is given (spec section 3's Record model).
type Separator byte

const (
	Newline Separator = '\n'
	Null    Separator = 0
)

func (s Separator) IsNull() bool { return s == Null }

func (s Separator) String() string {
	if s.IsNull() {
		return "null"
	}
	return "newline"
}
