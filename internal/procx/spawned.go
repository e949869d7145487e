package procx

import (
	"errors"
	"io"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
)

// SpawnedStdin is a child process's stdin pipe paired with the Context
// that explains which command and environment it belongs to.
type SpawnedStdin struct {
	w   io.WriteCloser
	Ctx Context
}

// WriteAll writes buf to the child's stdin. A broken pipe -- the child
// exited or closed stdin early -- is reported as (false, nil), never as
// an error: spec section 4.3 requires this path be silent, since a
// consumer hanging up early is routine, not a failure. Any other error
// is wrapped with the handle's Context.
func (s *SpawnedStdin) WriteAll(buf []byte) (bool, error) {
	_, err := s.w.Write(buf)
	if err == nil {
		return true, nil
	}
	if isBrokenPipe(err) {
		return false, nil
	}
	return false, s.Ctx.Apply(err, "failed to write to child process stdin")
}

func (s *SpawnedStdin) Close() error { return s.w.Close() }

func isBrokenPipe(err error) bool {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, fs.ErrClosed) {
		return true
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, syscall.EPIPE) {
		return true
	}
	return strings.Contains(err.Error(), "broken pipe") || strings.Contains(err.Error(), "closed pipe")
}

// SpawnedStdout is a child process's stdout pipe paired with Context.
// It is handed to internal/engine, which wraps it in a
// recordio.LineReader -- procx stays agnostic of record framing.
type SpawnedStdout struct {
	R   io.ReadCloser
	Ctx Context
}

func (s *SpawnedStdout) Close() error { return s.R.Close() }

// SpawnedChild is a running child process paired with Context. It
// exposes a non-blocking TryWait in addition to a blocking Wait, backed
// by a single background goroutine that calls os.Process.Wait exactly
// once -- Go's os/exec has no native try_wait, unlike the Rust
// std::process::Child this is grounded on (original_source/src/spawn.rs
// impl Spawned<Child>).
type SpawnedChild struct {
	cmd  *exec.Cmd
	Ctx  Context
	once sync.Once
	done chan struct{}
	res  error
}

// newSpawnedChild wraps cmd, which must already have been started.
func newSpawnedChild(cmd *exec.Cmd, ctx Context) *SpawnedChild {
	c := &SpawnedChild{cmd: cmd, Ctx: ctx, done: make(chan struct{})}
	c.startWaiter()
	return c
}

func (s *SpawnedChild) startWaiter() {
	s.once.Do(func() {
		go func() {
			// os.Process.Wait rather than exec.Cmd.Wait: the latter also
			// closes the parent's ends of the stdin/stdout pipes as soon
			// as the child exits, before its output has been read.
			state, err := s.cmd.Process.Wait()
			if err == nil && !state.Success() {
				err = &exec.ExitError{ProcessState: state}
			}
			s.res = err
			close(s.done)
		}()
	})
}

// Wait blocks until the child exits, returning an annotated error on
// non-zero exit or signal death.
func (s *SpawnedChild) Wait() error {
	<-s.done
	return s.exitErr()
}

// TryWait reports true if the child already exited successfully, false
// if it is still running, or an annotated error if it already exited
// unsuccessfully (spec section 4.3 / section 4.5's shutdown sequence).
func (s *SpawnedChild) TryWait() (bool, error) {
	select {
	case <-s.done:
		if err := s.exitErr(); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// Kill sends the child an unconditional termination signal.
func (s *SpawnedChild) Kill() error {
	if s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return s.Ctx.Apply(err, "failed to kill child process")
	}
	return nil
}

func (s *SpawnedChild) exitErr() error {
	if s.res == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(s.res, &exitErr) {
		if exitErr.ExitCode() >= 0 {
			return s.Ctx.Apply(errors.New(exitCodeMessage(exitErr.ExitCode())), "child process execution failed")
		}
		return s.Ctx.Apply(errors.New("child process was terminated by a signal"), "child process execution failed")
	}
	return s.Ctx.Apply(s.res, "child process execution failed")
}

func exitCodeMessage(code int) string {
	return "child process exited with code " + strconv.Itoa(code)
}
