// Package procx is the process supervisor: spawning child processes,
// chaining them into pipelines, and carrying a diagnostic Context along
// every handle so a failure deep inside a pipeline renders as "failed to
// ... / command ".../ environment "..." rather than a bare OS error.
//
// Adapted from goforj/execx's Cmd/pipeline builder (execx.go,
// pipeline.go) and from original_source/src/spawn.rs's Context/Spawned
// message-append model: the diagnostic chain is a flat, ordered list of
// strings rather than a shared-owner tree, exactly so a pipeline's
// handles can each carry their own copy without synchronization.
package procx

// Context is an ordered chain of diagnostic annotations attached to one
// spawned handle. Entries are appended as a handle is built up (command,
// then environment, then enclosing expression); Apply wraps an error
// with every entry, most-recently-added outermost, then with a final
// lead message on top -- mirroring spawn.rs's Context::apply followed by
// one more .context(lead) call at each call site.
type Context struct {
	entries []string
}

// NewContext starts a chain with one entry, typically "command: ...".
func NewContext(entry string) Context {
	return Context{entries: []string{entry}}
}

// Add returns a new Context with entry appended; the receiver is left
// unmodified so sibling handles can diverge after a shared prefix.
func (c Context) Add(entry string) Context {
	next := make([]string, len(c.entries), len(c.entries)+1)
	copy(next, c.entries)
	return Context{entries: append(next, entry)}
}

// Apply wraps err with every context entry, then with lead, returning
// nil if err is nil. The result's error chain (via errors.Unwrap) reads,
// outermost first: lead, the most recently added entry, ..., the first
// entry, err.
func (c Context) Apply(err error, lead string) error {
	if err == nil {
		return nil
	}
	wrapped := err
	for _, entry := range c.entries {
		wrapped = &causeError{msg: entry, cause: wrapped}
	}
	if lead != "" {
		wrapped = &causeError{msg: lead, cause: wrapped}
	}
	return wrapped
}

type causeError struct {
	msg   string
	cause error
}

func (e *causeError) Error() string { return e.msg + ": " + e.cause.Error() }
func (e *causeError) Unwrap() error { return e.cause }

// Chain returns err's messages from outermost to root cause, one string
// per link, for internal/diag's "bold prefix + dedented cause lines"
// rendering (spec section 7).
func Chain(err error) []string {
	var out []string
	for err != nil {
		ce, ok := err.(*causeError)
		if !ok {
			out = append(out, err.Error())
			break
		}
		out = append(out, ce.msg)
		err = ce.cause
	}
	return out
}
