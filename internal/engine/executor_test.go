package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jpikl/mmvv/internal/pattern"
	"github.com/jpikl/mmvv/internal/recordio"
	"github.com/jpikl/mmvv/internal/rewenv"
)

func TestExecuteTakesSimplePathForPureEcho(t *testing.T) {
	pat, err := pattern.Parse("Hello {}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	in := recordio.NewLineReader(strings.NewReader("world\n"), recordio.Newline, 4096)
	rawIn := recordio.NewChunkReader(strings.NewReader(""), 4096)
	var buf bytes.Buffer
	out := recordio.NewWriter(&buf, recordio.Newline, recordio.BufLine, 4096)

	err = Execute(pat, rewenv.Options{}, Shell{}, "x", in, rawIn, out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if buf.String() != "Hello world\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestExecuteGeneralPathRunsChildCommand(t *testing.T) {
	pat, err := pattern.Parse("Hello {tr a-z A-Z}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for i, item := range pat.Items {
		if item.Kind == pattern.ItemExpression {
			pat.Items[i].Expression.Body.Pipeline[0].External = true
		}
	}

	in := recordio.NewLineReader(strings.NewReader("world\n"), recordio.Newline, 4096)
	rawIn := recordio.NewChunkReader(strings.NewReader("world\n"), 4096)
	var buf bytes.Buffer
	out := recordio.NewWriter(&buf, recordio.Newline, recordio.BufLine, 4096)

	err = Execute(pat, rewenv.Options{BufSize: 4096}, Shell{Program: "sh"}, "x", in, rawIn, out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if buf.String() != "Hello WORLD\n" {
		t.Errorf("got %q", buf.String())
	}
}
