package engine

import (
	"github.com/jpikl/mmvv/internal/procx"
	"github.com/jpikl/mmvv/internal/recordio"
	"github.com/sourcegraph/conc/panics"
)

// Forward is the forwarder goroutine's body: it copies raw byte chunks
// (not records -- the chunking here has nothing to do with record
// boundaries) from the process's stdin to every live consumer's stdin,
// dropping any consumer that reports a broken pipe. It returns once
// input is exhausted or every consumer has hung up.
//
// If input is an interactive terminal and the last consumer hangs up
// while Forward is blocked inside a Read call, Forward cannot return
// until that Read unblocks -- there is no way to cancel a blocking
// os.Stdin.Read from outside. Spec section 9 treats this as an accepted
// tradeoff rather than a bug: spawnForwarder's caller never joins this
// goroutine unconditionally, only opportunistically (see executor.go).
func Forward(reader *recordio.ChunkReader, consumers []*procx.SpawnedStdin) error {
	live := append([]*procx.SpawnedStdin(nil), consumers...)
	if len(live) == 0 {
		return nil
	}
	for {
		chunk, ok, err := reader.ReadChunk()
		if err != nil {
			return err
		}
		if !ok {
			for _, c := range live {
				_ = c.Close()
			}
			return nil
		}

		stillLive := live[:0]
		for _, c := range live {
			wrote, err := c.WriteAll(chunk)
			if err != nil {
				return err
			}
			if wrote {
				stillLive = append(stillLive, c)
			}
		}
		live = stillLive
		if len(live) == 0 {
			return nil
		}
	}
}

// spawnForwarder runs Forward in a background goroutine, catching any
// panic the way kazz187-taskguild/backend/pkg/panicerr.Safe wraps
// background work, and reports the outcome (panic or plain error) on
// the returned channel -- the Go equivalent of Rust's
// thread::spawn(...).join() surfacing a resume_unwind panic as a normal
// error.
func spawnForwarder(reader *recordio.ChunkReader, consumers []*procx.SpawnedStdin) <-chan error {
	done := make(chan error, 1)
	go func() {
		var catcher panics.Catcher
		var ferr error
		catcher.Try(func() {
			ferr = Forward(reader, consumers)
		})
		if r := catcher.Recovered(); r != nil {
			done <- r.AsError()
			return
		}
		done <- ferr
	}()
	return done
}
