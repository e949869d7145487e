// Package shelldiag renders a raw `{# ...}` shell command line into a
// normalized one-line string for diagnostic messages. It never executes
// anything; the configured shell is what actually runs the text (spec
// section 4.5). Parsing is best-effort: a shell fragment the parser
// can't handle degrades to the raw text verbatim rather than blocking
// execution.
//
// Grounded on kazz187-taskguild/backend/pkg/shellformat/format.go, which
// wraps the same mvdan.cc/sh/v3/syntax package for the same
// parse-then-print purpose (there: reformatting a shell one-liner for
// readability; here: normalizing it for a diagnostic line).
package shelldiag

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Normalize parses raw as a POSIX shell command line and renders it back
// as a single-line string with consistent spacing. If raw does not parse
// as valid shell syntax, it is returned unchanged.
func Normalize(raw string) string {
	parser := syntax.NewParser(syntax.KeepComments(false))
	file, err := parser.Parse(strings.NewReader(raw), "")
	if err != nil {
		return raw
	}

	var buf strings.Builder
	printer := syntax.NewPrinter(syntax.Minify(true))
	if err := printer.Print(&buf, file); err != nil {
		return raw
	}

	return strings.TrimSpace(buf.String())
}
