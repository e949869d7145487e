// Package registry is the command resolver: it decides, for one pattern
// Command, whether to run a built-in in-process-equivalent (by
// re-exec'ing rew with a subcommand), a literal external program, or to
// unwrap a self-referential invocation into its sub-command.
//
// Grounded on original_source/src/command.rs (Group, Meta) and
// src/commands/x.rs's build_command / build_internal_command, which
// this package's Resolve mirrors almost one for one.
package registry

import (
	"os"

	"github.com/jpikl/mmvv/internal/procx"
	"github.com/jpikl/mmvv/internal/rewenv"
)

// Group classifies a built-in command for stdin-mode purposes (spec
// section 4.4): Generators never read stdin, everything else does.
type Group int

const (
	General Group = iota
	Transformers
	Mappers
	Paths
	Filters
	Generators
)

func (g Group) StdinMode() procx.StdinMode {
	if g == Generators {
		return procx.StdinDisconnected
	}
	return procx.StdinConnected
}

// Meta describes one built-in command.
type Meta struct {
	Name  string
	Group Group
}

// metas is the ordered built-in list, matching
// original_source/src/commands/mod.rs's get_meta order exactly so
// --help output and error suggestions stay stable across a port.
var metas = []Meta{
	{Name: "ascii", Group: Mappers},
	{Name: "cat", Group: General},
	{Name: "first", Group: Filters},
	{Name: "loop", Group: Generators},
	{Name: "lower", Group: Mappers},
	{Name: "seq", Group: Generators},
	{Name: "skip", Group: Filters},
	{Name: "stream", Group: General},
	{Name: "trim", Group: Mappers},
	{Name: "upper", Group: Mappers},
}

// Lookup returns the Meta for name, or (Meta{}, false) if it is not a
// built-in.
func Lookup(name string) (Meta, bool) {
	for _, m := range metas {
		if m.Name == name {
			return m, true
		}
	}
	return Meta{}, false
}

// All returns the built-in command list in registration order.
func All() []Meta {
	out := make([]Meta, len(metas))
	copy(out, metas)
	return out
}

// Resolution is the outcome of resolving one pattern Command to an
// actual program to spawn.
type Resolution struct {
	Program   string
	Args      []string
	StdinMode procx.StdinMode
	Env       map[string]string
}

// Resolve decides how to spawn name/args/external, per spec section
// 4.4:
//
//   - external == false and name matches a built-in: re-exec this binary
//     with name as its subcommand (Internal).
//   - external == false and name equals the running binary's own name:
//     unwrap args[0] as the sub-command to re-exec, or, if args is empty
//     or args[0] isn't a built-in, re-exec with args passed through
//     verbatim and let the re-exec'd process's own parser reject them.
//   - otherwise: name is a literal external program, with stdbuf/
//     PYTHONUNBUFFERED injected when the pipeline wants line buffering.
//
// The external flag always wins first -- a Command explicitly marked
// external is never unwrapped, even when its name equals the running
// binary's own name (section 12, item 2).
func Resolve(name string, args []string, external bool, opts rewenv.Options, subcommand string) Resolution {
	if !external {
		if meta, ok := Lookup(name); ok {
			return internalResolution(meta, name, args, opts, subcommand)
		}
		if name == selfName() {
			if len(args) > 0 {
				if meta, ok := Lookup(args[0]); ok {
					return internalResolution(meta, args[0], args[1:], opts, subcommand)
				}
			}
			// No built-in matches args[0] (or there are no args at all):
			// re-exec with the caller's args passed through verbatim and
			// let the re-exec'd process's own arg parser reject them,
			// rather than discarding what the caller actually asked for.
			return Resolution{
				Program:   selfExecutable(),
				Args:      args,
				StdinMode: General.StdinMode(),
				Env:       opts.Internal(rewenv.SpawnedBy(subcommand)),
			}
		}
	}

	stdbuf := rewenv.NewStdBuf()
	prog, wrappedArgs := name, args
	if !opts.BufMode.IsFull() {
		prog, wrappedArgs = stdbuf.Wrap(name, args)
	}
	return Resolution{
		Program:   prog,
		Args:      wrappedArgs,
		StdinMode: procx.StdinConnected,
		Env:       opts.External(),
	}
}

func internalResolution(meta Meta, name string, args []string, opts rewenv.Options, subcommand string) Resolution {
	fullArgs := append([]string{name}, args...)
	return Resolution{
		Program:   selfExecutable(),
		Args:      fullArgs,
		StdinMode: meta.Group.StdinMode(),
		Env:       opts.Internal(rewenv.SpawnedBy(subcommand)),
	}
}

func selfName() string {
	return rewenv.RootBinName()
}

func selfExecutable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return os.Args[0]
}
