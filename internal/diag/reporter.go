// Package diag renders errors the way a user invokes rew from a shell
// expects: a bold "<binary> <subcommand>" prefix (plus a "(spawned by
// '...')" suffix when this process is itself a re-exec'd child), a red
// "error:" label, and one dedented "└─> cause" line per link in the
// diagnostic chain.
//
// Grounded on original_source/src/error.rs's Reporter::print_error /
// build_prefix, translated from anstream/anyhow's chain() to
// procx.Chain and from clap's BOLD/BOLD_RED constants to
// github.com/fatih/color.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jpikl/mmvv/internal/procx"
	"github.com/jpikl/mmvv/internal/rewenv"
)

// Reporter prints errors to an io.Writer (ordinarily os.Stderr) with a
// prefix identifying which rew invocation raised them.
type Reporter struct {
	BinName    string
	Subcommand string
	Out        io.Writer
}

// NewReporter builds a Reporter for subcommand (empty for the top-level
// invocation before a subcommand is known), using rewenv.RootBinName
// for the binary name component of the prefix.
func NewReporter(subcommand string, out io.Writer) Reporter {
	return Reporter{BinName: rewenv.RootBinName(), Subcommand: subcommand, Out: out}
}

func (r Reporter) prefix() string {
	name := r.BinName
	if r.Subcommand != "" {
		name = name + " " + r.Subcommand
	}
	bold := color.New(color.Bold).SprintFunc()
	return bold(name) + rewenv.SpawnedBySuffix()
}

// PrintError writes one error report: the prefix, a red "error:" label
// and the error's top-level message, then one "└─> cause" line per
// remaining link in err's diagnostic chain.
func (r Reporter) PrintError(err error) {
	if err == nil {
		return
	}
	prefix := r.prefix()
	label := color.New(color.Bold, color.FgRed).SprintFunc()("error:")

	chain := procx.Chain(err)
	if len(chain) == 0 {
		chain = []string{err.Error()}
	}

	fmt.Fprintf(r.Out, "%s: %s %s\n", prefix, label, chain[0])
	for _, cause := range chain[1:] {
		fmt.Fprintf(r.Out, "%s: └─> %s\n", prefix, cause)
	}
}

// PrintUsageError reports a command-line usage error (flag parsing
// failure, missing argument) with a shorter "invalid usage" label
// instead of the diagnostic chain rendering used for runtime failures
// (original_source/src/error.rs's print_invalid_usage).
func (r Reporter) PrintUsageError(message string) {
	prefix := r.prefix()
	label := color.New(color.Bold, color.FgRed).SprintFunc()("invalid usage:")
	fmt.Fprintf(r.Out, "%s: %s %s\n", prefix, label, message)
}
