package engine

import (
	"os"

	"github.com/jpikl/mmvv/internal/pattern"
	"github.com/jpikl/mmvv/internal/procx"
	"github.com/jpikl/mmvv/internal/recordio"
	"github.com/jpikl/mmvv/internal/registry"
	"github.com/jpikl/mmvv/internal/rewenv"
	"github.com/jpikl/mmvv/internal/shelldiag"
)

// Graph is the live process graph for one whole pattern: one Producer
// per Item (Constant or Expression), one Consumer per Expression whose
// pipeline has a connected stdin, and every spawned child across every
// Expression, flattened for the shutdown sequence.
type Graph struct {
	Producers []Producer
	Consumers []*procx.SpawnedStdin
	Children  []*procx.SpawnedChild
}

// BuildGraph spawns every Expression's pipeline exactly once, up front:
// the same child processes handle every input record for the lifetime
// of the invocation (spec section 4.5 / section 5 -- pipelines are not
// respawned per record).
func BuildGraph(pat *pattern.Pattern, env rewenv.Options, shell Shell, subcommand string) (*Graph, error) {
	g := &Graph{}
	for _, item := range pat.Items {
		switch item.Kind {
		case pattern.ItemConstant:
			g.Producers = append(g.Producers, ConstantProducer{Text: item.Constant})
		case pattern.ItemExpression:
			pipeline, err := buildExpressionPipeline(item.Expression, env, shell, subcommand)
			if err != nil {
				return nil, err
			}
			reader := recordio.NewLineReader(pipeline.Stdout.R, env.Separator(), env.BufSize)
			g.Producers = append(g.Producers, &ChildProducer{Reader: reader, Ctx: pipeline.Stdout.Ctx})
			if pipeline.Stdin != nil {
				g.Consumers = append(g.Consumers, pipeline.Stdin)
			}
			g.Children = append(g.Children, pipeline.Children...)
		}
	}
	return g, nil
}

func buildExpressionPipeline(expr pattern.Expression, env rewenv.Options, shell Shell, subcommand string) (*procx.Pipeline, error) {
	var pipeline *procx.Pipeline
	var err error

	switch expr.Body.Kind {
	case pattern.BodyRawShell:
		pipeline, err = buildRawShellPipeline(expr, env, shell)
	default:
		commands := expr.Body.Pipeline
		if len(commands) == 0 {
			// spec section 12, item 5: an empty pipeline substitutes the
			// built-in identity stage rather than a no-op passthrough.
			commands = []pattern.Command{{Name: "cat"}}
		}
		pipeline, err = buildCommandPipeline(expr, commands, env, subcommand)
	}
	if err != nil {
		return nil, err
	}
	pipeline.AddContext("expression: " + expr.Raw)
	return pipeline, nil
}

func buildRawShellPipeline(expr pattern.Expression, env rewenv.Options, shell Shell) (*procx.Pipeline, error) {
	program, args := shell.Command(expr.Body.RawShell)
	execCmd, ctx := procx.NewCommand(program, args, env.External())
	execCmd.Stderr = os.Stderr

	mode := procx.StdinConnected
	if expr.NoStdin {
		mode = procx.StdinDisconnected
	}

	builder := procx.NewBuilder(procx.StdinConnected)
	if err := builder.Command(execCmd, ctx, mode); err != nil {
		return nil, err
	}
	pipeline, err := builder.Build()
	if err != nil {
		return nil, err
	}
	pipeline.AddContext("shell: " + shelldiag.Normalize(expr.Body.RawShell))
	return pipeline, nil
}

func buildCommandPipeline(expr pattern.Expression, commands []pattern.Command, env rewenv.Options, subcommand string) (*procx.Pipeline, error) {
	builder := procx.NewBuilder(procx.StdinConnected)
	for i, cmd := range commands {
		res := registry.Resolve(cmd.Name, cmd.Args, cmd.External, env, subcommand)
		mode := res.StdinMode
		if i == 0 && expr.NoStdin {
			mode = procx.StdinDisconnected
		}

		execCmd, ctx := procx.NewCommand(res.Program, res.Args, res.Env)
		execCmd.Stderr = os.Stderr

		if err := builder.Command(execCmd, ctx, mode); err != nil {
			return nil, err
		}
	}
	return builder.Build()
}
