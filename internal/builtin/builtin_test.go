package builtin

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpikl/mmvv/internal/recordio"
)

func run(t *testing.T, fn Func, args []string, in string) string {
	t.Helper()
	var out bytes.Buffer
	ctx := Context{
		Args:    args,
		In:      strings.NewReader(in),
		Out:     &out,
		Sep:     recordio.Newline,
		BufMode: recordio.BufLine,
		BufSize: 4096,
	}
	if err := fn(ctx); err != nil {
		t.Fatalf("builtin returned error: %v", err)
	}
	return out.String()
}

func TestLookupKnownAndUnknown(t *testing.T) {
	if _, ok := Lookup("upper"); !ok {
		t.Error("Lookup(\"upper\") not found")
	}
	if _, ok := Lookup("bogus"); ok {
		t.Error("Lookup(\"bogus\") unexpectedly found")
	}
}

func TestCatCopiesStdinVerbatim(t *testing.T) {
	got := run(t, Cat, nil, "a\nb\n")
	if got != "a\nb\n" {
		t.Errorf("got %q", got)
	}
}

func TestUpperLowerTrim(t *testing.T) {
	if got := run(t, Upper, nil, "hello\n"); got != "HELLO\n" {
		t.Errorf("Upper: got %q", got)
	}
	if got := run(t, Lower, nil, "HELLO\n"); got != "hello\n" {
		t.Errorf("Lower: got %q", got)
	}
	if got := run(t, Trim, nil, "  hi  \n"); got != "hi\n" {
		t.Errorf("Trim: got %q", got)
	}
}

func TestAsciiTransliteratesAccents(t *testing.T) {
	if got := run(t, Ascii, nil, "café\n"); got != "cafe\n" {
		t.Errorf("got %q", got)
	}
}

func TestFirstDefaultAndExplicitCount(t *testing.T) {
	if got := run(t, First, nil, "a\nb\nc\n"); got != "a\n" {
		t.Errorf("default First: got %q", got)
	}
	if got := run(t, First, []string{"2"}, "a\nb\nc\n"); got != "a\nb\n" {
		t.Errorf("First 2: got %q", got)
	}
}

func TestSkipDefaultAndExplicitCount(t *testing.T) {
	if got := run(t, Skip, nil, "a\nb\nc\n"); got != "b\nc\n" {
		t.Errorf("default Skip: got %q", got)
	}
	if got := run(t, Skip, []string{"2"}, "a\nb\nc\n"); got != "c\n" {
		t.Errorf("Skip 2: got %q", got)
	}
}

func TestSeqOneArgForm(t *testing.T) {
	if got := run(t, Seq, []string{"3"}, ""); got != "1\n2\n3\n" {
		t.Errorf("got %q", got)
	}
}

func TestSeqTwoArgForm(t *testing.T) {
	if got := run(t, Seq, []string{"2", "4"}, ""); got != "2\n3\n4\n" {
		t.Errorf("got %q", got)
	}
}

func TestSeqThreeArgFormWithNegativeStep(t *testing.T) {
	if got := run(t, Seq, []string{"5", "-2", "1"}, ""); got != "5\n3\n1\n" {
		t.Errorf("got %q", got)
	}
}

func TestSeqNoArgsCountsUpForever(t *testing.T) {
	ctx := Context{
		Args:    nil,
		In:      strings.NewReader(""),
		Out:     &failAfterWriter{remaining: 3},
		Sep:     recordio.Newline,
		BufMode: recordio.BufLine,
		BufSize: 4096,
	}
	if err := Seq(ctx); err == nil {
		t.Fatal("expected Seq to stop once the writer fails, since it never exhausts on its own")
	}
}

func TestSeqRejectsZeroStep(t *testing.T) {
	ctx := Context{Args: []string{"1", "0", "2"}, In: strings.NewReader(""), Out: &bytes.Buffer{}, Sep: recordio.Newline, BufMode: recordio.BufLine, BufSize: 4096}
	if err := Seq(ctx); err == nil {
		t.Fatal("expected an error for a zero step")
	}
}

func TestSeqRejectsWrongArgCount(t *testing.T) {
	ctx := Context{Args: []string{"1", "2", "3", "4"}, In: strings.NewReader(""), Out: &bytes.Buffer{}, Sep: recordio.Newline, BufMode: recordio.BufLine, BufSize: 4096}
	if err := Seq(ctx); err == nil {
		t.Fatal("expected an error for too many arguments")
	}
}

func TestLoopWithNoArgsEmitsNothing(t *testing.T) {
	if got := run(t, Loop, nil, ""); got != "" {
		t.Errorf("got %q, want empty output", got)
	}
}

type failAfterWriter struct {
	remaining int
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.remaining <= 0 {
		return 0, errShortWrite
	}
	w.remaining--
	return len(p), nil
}

type shortWriteErr string

func (e shortWriteErr) Error() string { return string(e) }

const errShortWrite = shortWriteErr("short write")

func TestLoopCyclesThroughArgsUntilWriterFails(t *testing.T) {
	ctx := Context{
		Args:    []string{"a", "b"},
		In:      strings.NewReader(""),
		Out:     &failAfterWriter{remaining: 3},
		Sep:     recordio.Newline,
		BufMode: recordio.BufLine,
		BufSize: 4096,
	}
	err := Loop(ctx)
	if err == nil {
		t.Fatal("expected Loop to stop once the writer fails")
	}
}

func TestStreamJoinsRecordsWithSeparator(t *testing.T) {
	if got := run(t, Stream, nil, "a\nb\nc\n"); got != "a\nb\nc\n" {
		t.Errorf("got %q", got)
	}
}

func TestStreamOnEmptyInputEmitsOneEmptyRecord(t *testing.T) {
	if got := run(t, Stream, nil, ""); got != "\n" {
		t.Errorf("got %q, want a single empty record", got)
	}
}
