package engine

import (
	"time"

	"github.com/jpikl/mmvv/internal/procx"
)

// stragglerGrace is how long waitChildren gives every child a chance to
// exit on its own (because the forwarder already closed its stdin, or
// because it hit EOF on its own stdin chain) before it starts killing
// whatever is still alive. Grounded on original_source/src/commands/x.rs's
// wait_for_children, which sleeps briefly between a first non-blocking
// poll pass and a forced kill pass.
const stragglerGrace = 100 * time.Millisecond

// waitChildren reaps every child in children, killing stragglers that
// haven't exited shortly after the output loop stopped reading from
// them. It returns the first non-nil error from a child that exited
// unsuccessfully on its own, but always finishes reaping every child
// first so none are left as zombies. A straggler killed by this
// function is still reaped via Wait, but its resulting "terminated by
// signal" exit is expected, not an error -- matching
// original_source/src/commands/x.rs's wait_for_children, which returns
// Ok(()) after killing and never surfaces a killed child's exit status.
func waitChildren(children []*procx.SpawnedChild) error {
	pending := make([]*procx.SpawnedChild, 0, len(children))
	for _, c := range children {
		exited, err := c.TryWait()
		if err != nil {
			return firstErrAfterReap(children, err)
		}
		if !exited {
			pending = append(pending, c)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	time.Sleep(stragglerGrace)

	killed := make(map[*procx.SpawnedChild]bool, len(pending))
	for _, c := range pending {
		exited, err := c.TryWait()
		if err != nil {
			return firstErrAfterReap(children, err)
		}
		if !exited {
			_ = c.Kill()
			killed[c] = true
		}
	}

	var first error
	for _, c := range children {
		err := c.Wait()
		if err != nil && !killed[c] && first == nil {
			first = err
		}
	}
	return first
}

// firstErrAfterReap returns err after blocking on every remaining child
// in children so none are left unreaped, preserving err as the reported
// failure even if a later child also fails.
func firstErrAfterReap(children []*procx.SpawnedChild, err error) error {
	for _, c := range children {
		_ = c.Wait()
	}
	return err
}
