// Package rewenv carries the three global options (separator, buffer
// mode, buffer size) through both re-exec'd internal commands and
// spawned external commands, and derives the diagnostic "spawned by"
// chain used in error prefixes.
//
// Grounded on original_source/src/env.rs: the env var names, defaults,
// and the internal()/external() env-injection split are carried over
// unchanged; DEFAULT_BUF_SIZE and the three REW_* names are literal
// interface contracts from spec section 6.
package rewenv

import (
	"os"
	"strconv"
	"strings"

	"github.com/jpikl/mmvv/internal/recordio"
)

const (
	EnvNull      = "REW_NULL"
	EnvBufMode   = "REW_BUF_MODE"
	EnvBufSize   = "REW_BUF_SIZE"
	EnvSpawnedBy = "_REW_SPAWNED_BY"

	DefaultBufSize = 32 * 1024
)

// Options is the resolved set of global flags/env vars shared by every
// rew invocation in a process tree.
type Options struct {
	Null    bool
	BufMode recordio.BufMode
	BufSize int
}

func (o Options) Separator() recordio.Separator {
	if o.Null {
		return recordio.Null
	}
	return recordio.Newline
}

// FromEnviron reads REW_NULL/REW_BUF_MODE/REW_BUF_SIZE as fallback
// values for flags the user didn't pass explicitly -- kingpin's
// .Envar() bindings in internal/cli do this automatically for flags,
// this constructor exists for code paths (tests, internal re-exec
// construction) that build Options directly.
func FromEnviron() Options {
	opts := Options{BufMode: recordio.DefaultBufMode(), BufSize: DefaultBufSize}
	if v, ok := os.LookupEnv(EnvNull); ok {
		opts.Null = v != "" && v != "0" && strings.ToLower(v) != "false"
	}
	if v, ok := os.LookupEnv(EnvBufMode); ok {
		if mode, err := recordio.ParseBufMode(v); err == nil {
			opts.BufMode = mode
		}
	}
	if v, ok := os.LookupEnv(EnvBufSize); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.BufSize = n
		}
	}
	return opts
}

// Internal returns the env vars an internally re-exec'd rew subcommand
// needs to inherit the parent's global options plus the spawned-by
// chain (original_source/src/env.rs's Env::internal).
func (o Options) Internal(spawnedBy string) map[string]string {
	env := map[string]string{
		EnvBufMode:   o.BufMode.String(),
		EnvBufSize:   strconv.Itoa(o.BufSize),
		EnvSpawnedBy: spawnedBy,
	}
	if o.Null {
		env[EnvNull] = "1"
	}
	return env
}

// External returns the env vars an external (non-rew) command needs so
// its own buffering matches the pipeline's chosen BufMode -- see
// StdBuf for the stdbuf-preload half of this (section 12, item 3).
func (o Options) External() map[string]string {
	if o.BufMode.IsFull() {
		return nil
	}
	return map[string]string{"PYTHONUNBUFFERED": "1"}
}

// SpawnedBy returns the _REW_SPAWNED_BY value a subcommand should set
// when it re-execs a child rew process: "<root binary name> <subcommand>".
func SpawnedBy(subcommand string) string {
	return RootBinName() + " " + subcommand
}

// RootBinName returns the name of the original top-level rew binary,
// trimming any inherited _REW_SPAWNED_BY chain back to its root rather
// than accumulating one segment per re-exec level (section 12, item 4,
// grounded on original_source/src/env.rs's get_bin_name: it always
// trims the chain back to the root, never chains deeply).
func RootBinName() string {
	if v, ok := os.LookupEnv(EnvSpawnedBy); ok && v != "" {
		if idx := strings.LastIndexByte(v, ' '); idx >= 0 {
			return v[:idx]
		}
		return v
	}
	if len(os.Args) > 0 {
		return baseName(os.Args[0])
	}
	return "rew"
}

func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// SpawnedBySuffix returns the "(spawned by '...')" suffix internal/diag
// appends to its prefix when this process was itself launched by
// another rew invocation, or "" when it was launched directly by a user.
func SpawnedBySuffix() string {
	if v, ok := os.LookupEnv(EnvSpawnedBy); ok && v != "" {
		return " (spawned by '" + v + "')"
	}
	return ""
}
