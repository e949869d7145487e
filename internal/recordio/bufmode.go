package recordio

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// BufMode controls how often a Writer flushes its underlying buffer
// (spec section 3's Buffer policy).
type BufMode int

const (
	BufLine BufMode = iota
	BufFull
)

func (m BufMode) IsFull() bool { return m == BufFull }

func (m BufMode) String() string {
	if m == BufFull {
		return "full"
	}
	return "line"
}

// ParseBufMode parses the --buf-mode flag / REW_BUF_MODE value.
func ParseBufMode(s string) (BufMode, error) {
	switch s {
	case "line":
		return BufLine, nil
	case "full":
		return BufFull, nil
	default:
		return 0, fmt.Errorf("invalid buffer mode %q (expected \"line\" or \"full\")", s)
	}
}

// DefaultBufMode is line-flush when stdout is a terminal, full-flush
// otherwise, matching original_source/src/env.rs's BufMode::default and
// reusing the same TTY check execx itself uses (execx.go's
// isTerminalFunc = term.IsTerminal) to pick the corpus's established
// library over a hand-rolled isatty check.
func DefaultBufMode() BufMode {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return BufLine
	}
	return BufFull
}
