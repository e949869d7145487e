package procx

import (
	"io"
	"os/exec"
	"testing"
)

func TestBuilderChainsStdoutToNextStdin(t *testing.T) {
	b := NewBuilder(StdinConnected)

	first := exec.Command("sh", "-c", "cat")
	_, ctx1 := NewCommand("sh", []string{"-c", "cat"}, nil)
	if err := b.Command(first, ctx1, StdinConnected); err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	second := exec.Command("sh", "-c", "tr a-z A-Z")
	_, ctx2 := NewCommand("sh", []string{"-c", "tr a-z A-Z"}, nil)
	if err := b.Command(second, ctx2, StdinConnected); err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	pipeline, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if pipeline.Stdin == nil {
		t.Fatal("pipeline.Stdin = nil, want a connected first stage")
	}
	if len(pipeline.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(pipeline.Children))
	}

	if _, err := pipeline.Stdin.WriteAll([]byte("hello\n")); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	pipeline.Stdin.Close()

	out, err := io.ReadAll(pipeline.Stdout.R)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(out) != "HELLO\n" {
		t.Errorf("got %q, want %q", out, "HELLO\n")
	}
	for _, c := range pipeline.Children {
		c.Wait()
	}
}

func TestBuilderDisconnectedFirstStageNullsStdin(t *testing.T) {
	b := NewBuilder(StdinConnected)
	cmd := exec.Command("sh", "-c", "echo generated")
	_, ctx := NewCommand("sh", []string{"-c", "echo generated"}, nil)
	if err := b.Command(cmd, ctx, StdinDisconnected); err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	pipeline, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if pipeline.Stdin != nil {
		t.Error("pipeline.Stdin != nil, want nil for a disconnected first stage")
	}
	out, err := io.ReadAll(pipeline.Stdout.R)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(out) != "generated\n" {
		t.Errorf("got %q, want %q", out, "generated\n")
	}
	pipeline.Children[0].Wait()
}

func TestBuilderAddContextAnnotatesEveryHandle(t *testing.T) {
	b := NewBuilder(StdinConnected)
	cmd := exec.Command("sh", "-c", "cat")
	_, ctx := NewCommand("sh", []string{"-c", "cat"}, nil)
	if err := b.Command(cmd, ctx, StdinConnected); err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	pipeline, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	pipeline.AddContext("expression: \"{cat}\"")

	pipeline.Stdin.Close()
	io.ReadAll(pipeline.Stdout.R)
	for _, c := range pipeline.Children {
		c.Wait()
	}

	if len(Chain(pipeline.Stdin.Ctx.Apply(errOf("x"), ""))) != 3 {
		t.Error("expected stdin context to carry command + expression entries (plus the root error)")
	}
}
