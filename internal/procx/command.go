package procx

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// NewCommand builds an *exec.Cmd for name/args and the Context its
// diagnostic chain should start from: "command: ..." always, plus
// "environment: ..." when env carries overrides on top of the ambient
// environment. Grounded on original_source/src/spawn.rs's
// format_command/format_env, adapted to Go's explicit-Env-slice model.
func NewCommand(name string, args []string, env map[string]string) (*exec.Cmd, Context) {
	cmd := exec.Command(name, args...)
	ctx := NewContext(formatCommand(name, args))
	if len(env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), env)
		ctx = ctx.Add(formatEnv(env))
	}
	return cmd, ctx
}

func formatCommand(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, fmt.Sprintf("%q", name))
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%q", a))
	}
	return "command: " + strings.Join(parts, " ")
}

func formatEnv(env map[string]string) string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, env[k]))
	}
	return "environment: " + strings.Join(parts, " ")
}

func mergeEnv(base []string, overrides map[string]string) []string {
	out := append([]string{}, base...)
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}
