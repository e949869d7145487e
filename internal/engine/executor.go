package engine

import (
	"github.com/jpikl/mmvv/internal/pattern"
	"github.com/jpikl/mmvv/internal/recordio"
	"github.com/jpikl/mmvv/internal/rewenv"
)

// Execute runs pat against in, writing assembled records to out. It
// dispatches between the zero-process simple path and the general
// path, mirroring original_source/src/commands/x.rs's run, which picks
// eval_simple_pattern only when the whole pattern survives
// simplification.
func Execute(pat *pattern.Pattern, env rewenv.Options, shell Shell, subcommand string, in *recordio.LineReader, rawIn *recordio.ChunkReader, out *recordio.Writer) error {
	if sp, ok := pattern.Simplify(pat); ok {
		return RunSimple(sp, in, out)
	}
	return RunGeneral(pat, env, shell, subcommand, rawIn, out)
}

// RunGeneral is the two-thread general path (spec section 4.5 /
// section 5): it spawns every expression's pipeline up front, starts
// the forwarder goroutine copying raw stdin to every pipeline's stdin,
// runs the output-collection loop on the calling goroutine, then tears
// every child down.
//
// The forwarder's outcome is checked opportunistically, never joined
// unconditionally: if it is still blocked in a stdin Read when
// CollectOutput finishes (the abandoned-forwarder case documented on
// Forward), this function returns without waiting for it.
func RunGeneral(pat *pattern.Pattern, env rewenv.Options, shell Shell, subcommand string, rawIn *recordio.ChunkReader, out *recordio.Writer) error {
	graph, err := BuildGraph(pat, env, shell, subcommand)
	if err != nil {
		return err
	}

	forwarderDone := spawnForwarder(rawIn, graph.Consumers)

	collectErr := CollectOutput(graph.Producers, out)

	waitErr := waitChildren(graph.Children)

	select {
	case ferr := <-forwarderDone:
		if collectErr == nil {
			collectErr = ferr
		}
	default:
		// Forwarder is still running, most likely blocked reading
		// stdin with no consumers left to feed; abandon it per Forward's
		// documented tradeoff rather than block shutdown on it.
	}

	if collectErr != nil {
		return collectErr
	}
	return waitErr
}
