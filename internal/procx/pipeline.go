package procx

import (
	"errors"
	"os/exec"
)

// StdinMode decides whether a pipeline stage's stdin connects to the
// previous stage (or an external writer) or is nulled out entirely.
// Generators (spec section 4.4's command groups) always report
// Disconnected; everything else reports Connected.
type StdinMode int

const (
	StdinConnected StdinMode = iota
	StdinDisconnected
)

// Pipeline is the live process graph for one pattern Expression: every
// spawned child, plus, when connected, a writable handle to the first
// stage's stdin and a readable handle to the last stage's stdout.
type Pipeline struct {
	Children []*SpawnedChild
	Stdin    *SpawnedStdin
	Stdout   *SpawnedStdout
}

// AddContext annotates every handle in the pipeline with one more
// diagnostic entry, e.g. "expression: {...}". Grounded on
// original_source/src/pipeline.rs's Pipeline::context, which applies a
// context string to every child, stdin, and stdout handle in one call.
func (p *Pipeline) AddContext(entry string) {
	for _, child := range p.Children {
		child.Ctx = child.Ctx.Add(entry)
	}
	if p.Stdin != nil {
		p.Stdin.Ctx = p.Stdin.Ctx.Add(entry)
	}
	if p.Stdout != nil {
		p.Stdout.Ctx = p.Stdout.Ctx.Add(entry)
	}
}

// Builder incrementally spawns one Pipeline, chaining each command's
// stdout into the next command's stdin. Grounded on
// original_source/src/pipeline.rs's Builder::command, including its
// less obvious rule that a Disconnected stage anywhere in the chain (not
// only the first) nulls that stage's own stdin, closing the previous
// stage's stdout, and sets the builder's stdin mode to Disconnected. A
// Stdin handle already taken from a connected first stage is kept.
type Builder struct {
	stdinMode     StdinMode
	children      []*SpawnedChild
	stdin         *SpawnedStdin
	pendingStdout *SpawnedStdout
}

func NewBuilder(mode StdinMode) *Builder {
	return &Builder{stdinMode: mode}
}

// IsEmpty reports whether any command has been added yet.
func (b *Builder) IsEmpty() bool { return len(b.children) == 0 }

// Command spawns cmd as the next pipeline stage under ctx, wiring its
// stdin per mode and its stdout into the next Command call (or into the
// finished Pipeline's Stdout).
func (b *Builder) Command(cmd *exec.Cmd, ctx Context, mode StdinMode) error {
	first := b.pendingStdout == nil && len(b.children) == 0

	switch {
	case mode == StdinDisconnected:
		if b.pendingStdout != nil {
			_ = b.pendingStdout.Close()
			b.pendingStdout = nil
		}
		cmd.Stdin = nil
		b.stdinMode = StdinDisconnected
	case !first:
		cmd.Stdin = b.pendingStdout.R
	default:
		stdinPipe, err := cmd.StdinPipe()
		if err != nil {
			return ctx.Apply(err, "failed to spawn child process")
		}
		if b.stdinMode == StdinDisconnected {
			_ = stdinPipe.Close()
		} else {
			b.stdin = &SpawnedStdin{w: stdinPipe, Ctx: ctx}
		}
	}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return ctx.Apply(err, "failed to spawn child process")
	}

	if err := cmd.Start(); err != nil {
		return ctx.Apply(err, "failed to spawn child process")
	}

	b.pendingStdout = &SpawnedStdout{R: stdoutPipe, Ctx: ctx}
	b.children = append(b.children, newSpawnedChild(cmd, ctx))
	return nil
}

// Build finishes the pipeline. It is an error to call Build before any
// Command has succeeded.
func (b *Builder) Build() (*Pipeline, error) {
	if b.pendingStdout == nil {
		return nil, errors.New("pipeline has no stages")
	}
	return &Pipeline{
		Children: b.children,
		Stdin:    b.stdin,
		Stdout:   b.pendingStdout,
	}, nil
}
