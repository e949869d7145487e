package engine

// Shell resolves the external program a raw `{# ...}` expression body
// runs through: the configured shell invoked as `<program> -c <script>`.
// Grounded on original_source/src/shell.rs's role in build_pipeline's
// RawShell branch; the -s/--shell flag (default from $SHELL, falling
// back to "sh") is resolved one layer up, in internal/cli.
type Shell struct {
	Program string
}

// Command returns the program and argv to spawn for script.
func (s Shell) Command(script string) (string, []string) {
	program := s.Program
	if program == "" {
		program = "sh"
	}
	return program, []string{"-c", script}
}
