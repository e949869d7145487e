// Package cli wires kingpin's command parsing to the pattern executor
// (internal/engine) and the built-in command suite (internal/builtin),
// the way kazz187-taskguild/cmd/taskguild/main.go wires one
// kingpin.CmdClause per subcommand to its handler.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jpikl/mmvv/internal/builtin"
	"github.com/jpikl/mmvv/internal/diag"
	"github.com/jpikl/mmvv/internal/engine"
	"github.com/jpikl/mmvv/internal/pattern"
	"github.com/jpikl/mmvv/internal/recordio"
	"github.com/jpikl/mmvv/internal/registry"
	"github.com/jpikl/mmvv/internal/rewenv"
)

// App is the top-level rew binary: one global flag set (section 6's
// "global options") shared by every subcommand, plus the x subcommand
// and one subcommand per built-in.
type App struct {
	app     *kingpin.Application
	null    *bool
	bufMode *string
	bufSize *int

	xCmd     *kingpin.CmdClause
	escape   *string
	shell    *string
	quote    quoteCount
	patterns *[]string

	builtinArgs map[string]*[]string
}

// NewApp declares every flag and subcommand. Parsing and dispatch happen
// in Run.
func NewApp() *App {
	app := kingpin.New("rew", "Rewrite text records using patterns of constants and commands.")
	app.HelpFlag.Short('h')

	a := &App{app: app, builtinArgs: map[string]*[]string{}}

	a.null = app.Flag("null", "use NUL as the record separator instead of newline").Short('0').Envar(rewenv.EnvNull).Bool()
	a.bufMode = app.Flag("buf-mode", `output buffering policy: "line" or "full" (default: line when stdout is a terminal, full otherwise)`).Envar(rewenv.EnvBufMode).Default("").String()
	a.bufSize = app.Flag("buf-size", "IO buffer size in bytes; records larger than this are rejected").Envar(rewenv.EnvBufSize).Default(strconv.Itoa(rewenv.DefaultBufSize)).Int()

	a.xCmd = app.Command("x", "Compose one output record per input record from a pattern.")
	a.escape = a.xCmd.Flag("escape", "escape character used inside the pattern").Short('e').Default(`\`).String()
	a.shell = a.xCmd.Flag("shell", "shell used to run {# ...} raw shell expressions (default: $SHELL, else sh)").Short('s').Envar("SHELL").String()
	a.xCmd.Flag("quote", "wrap every expression's output in quotes (repeat for double quotes)").Short('q').SetValue(&a.quote)
	a.patterns = a.xCmd.Arg("pattern", "pattern fragment(s), joined by a single space").Strings()

	for _, meta := range registry.All() {
		cmd := app.Command(meta.Name, "")
		a.builtinArgs[meta.Name] = cmd.Arg("args", "").Strings()
	}

	return a
}

// Run parses args (ordinarily os.Args[1:]) and executes the selected
// subcommand, returning the process exit code.
func (a *App) Run(args []string) int {
	command, err := a.app.Parse(args)
	if err != nil {
		diag.NewReporter(command, os.Stderr).PrintUsageError(err.Error())
		return 2
	}

	reporter := diag.NewReporter(command, os.Stderr)

	opts, err := a.globalOptions()
	if err != nil {
		reporter.PrintUsageError(err.Error())
		return 2
	}

	var runErr error
	switch {
	case command == a.xCmd.FullCommand():
		runErr = a.runX(opts)
	default:
		runErr = a.runBuiltin(command, opts)
	}

	if runErr != nil {
		reporter.PrintError(runErr)
		return 1
	}
	return 0
}

func (a *App) globalOptions() (rewenv.Options, error) {
	opts := rewenv.Options{Null: *a.null, BufSize: *a.bufSize}
	if *a.bufMode == "" {
		opts.BufMode = recordio.DefaultBufMode()
		return opts, nil
	}
	mode, err := recordio.ParseBufMode(*a.bufMode)
	if err != nil {
		return opts, err
	}
	opts.BufMode = mode
	return opts, nil
}

func (a *App) runX(opts rewenv.Options) error {
	escapeRunes := []rune(*a.escape)
	esc := '\\'
	if len(escapeRunes) > 0 {
		esc = escapeRunes[0]
	}

	src := strings.Join(*a.patterns, " ")
	pat, err := pattern.Parse(src, esc)
	if err != nil {
		return err
	}

	if q := a.quote.QuoteByte(); q != 0 {
		pat = pattern.QuoteExpressions(pat, q)
	}

	shellProgram := *a.shell
	if shellProgram == "" {
		shellProgram = "sh"
	}
	shell := engine.Shell{Program: shellProgram}

	in := recordio.NewLineReader(os.Stdin, opts.Separator(), opts.BufSize)
	rawIn := recordio.NewChunkReader(os.Stdin, opts.BufSize)
	out := recordio.NewWriter(os.Stdout, opts.Separator(), opts.BufMode, opts.BufSize)

	return engine.Execute(pat, opts, shell, "x", in, rawIn, out)
}

func (a *App) runBuiltin(command string, opts rewenv.Options) error {
	fn, ok := builtin.Lookup(command)
	if !ok {
		return fmt.Errorf("unknown internal command %q", command)
	}
	ctx := builtin.Context{
		Args:    *a.builtinArgs[command],
		In:      os.Stdin,
		Out:     os.Stdout,
		Sep:     opts.Separator(),
		BufMode: opts.BufMode,
		BufSize: opts.BufSize,
	}
	return fn(ctx)
}
