package rewenv

import "os/exec"

// StdBuf wraps an external command's argv with stdbuf -oL (force
// line-buffered stdout) when both the pipeline wants line-buffering and
// stdbuf is actually available on $PATH, falling back to no wrapping
// otherwise -- PYTHONUNBUFFERED from Options.External still applies
// regardless, covering Python children even without stdbuf.
//
// Supplements spec section 4.4's "stdin mode derivation" paragraph with
// the libc-preload trick original_source's upstream rew performs (its
// stdbuf.rs was filtered out of the retrieved source set, so the
// lookup-then-degrade shape here is an Open Question resolution,
// documented in DESIGN.md, rather than a direct port).
type StdBuf struct {
	path string
}

// NewStdBuf looks up stdbuf on $PATH once; a missing binary disables
// wrapping without error, since PYTHONUNBUFFERED alone is still useful.
func NewStdBuf() StdBuf {
	path, _ := exec.LookPath("stdbuf")
	return StdBuf{path: path}
}

func (s StdBuf) Available() bool { return s.path != "" }

// Wrap prepends "stdbuf -oL --" to name/args when available, leaving
// them untouched otherwise.
func (s StdBuf) Wrap(name string, args []string) (string, []string) {
	if !s.Available() {
		return name, args
	}
	wrapped := make([]string, 0, len(args)+3)
	wrapped = append(wrapped, "-oL", "--", name)
	wrapped = append(wrapped, args...)
	return s.path, wrapped
}
