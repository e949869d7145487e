package pattern

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseConstantOnly(t *testing.T) {
	p, err := Parse("hello world", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := &Pattern{Items: []Item{
		{Kind: ItemConstant, Start: 0, End: 11, Constant: []byte("hello world")},
	}}
	if diff := cmp.Diff(want, p, cmpopts.IgnoreFields(Item{}, "Start", "End")); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSimpleExpression(t *testing.T) {
	p, err := Parse("Hello {}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Items) != 2 {
		t.Fatalf("len(p.Items) = %d, want 2", len(p.Items))
	}
	if p.Items[1].Kind != ItemExpression {
		t.Fatalf("Items[1].Kind = %v, want ItemExpression", p.Items[1].Kind)
	}
	if len(p.Items[1].Expression.Body.Pipeline) != 0 {
		t.Errorf("expected empty pipeline, got %v", p.Items[1].Expression.Body.Pipeline)
	}
}

func TestParsePipeline(t *testing.T) {
	p, err := Parse("{upper|trim}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cmds := p.Items[0].Expression.Body.Pipeline
	want := []Command{{Name: "upper"}, {Name: "trim"}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("pipeline mismatch (-want +got):\n%s", diff)
	}
}

func TestParseModifiers(t *testing.T) {
	p, err := Parse("{:!seq}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	expr := p.Items[0].Expression
	if !expr.NoStdin {
		t.Error("expected NoStdin = true")
	}
	if len(expr.Body.Pipeline) != 1 || !expr.Body.Pipeline[0].External {
		t.Errorf("expected one external command, got %+v", expr.Body.Pipeline)
	}
}

func TestParseRawShell(t *testing.T) {
	// The \n here is the pattern-language escape sequence, decoded to an
	// actual newline byte like any other escape -- raw-shell bodies share
	// the same escape processing as constants, they just skip pipeline
	// syntax (|, quoting) entirely.
	p, err := Parse("{# printf '%s\\n' a b c}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	expr := p.Items[0].Expression
	if expr.Body.Kind != BodyRawShell {
		t.Fatalf("Body.Kind = %v, want BodyRawShell", expr.Body.Kind)
	}
	if want := " printf '%s\n' a b c"; expr.Body.RawShell != want {
		t.Errorf("RawShell = %q, want %q", expr.Body.RawShell, want)
	}
}

func TestParseRawShellNestedBraces(t *testing.T) {
	p, err := Parse("{#echo {a,b}}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	expr := p.Items[0].Expression
	if expr.Body.RawShell != "echo {a,b}" {
		t.Errorf("RawShell = %q", expr.Body.RawShell)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  ErrorKind
		start int
		end   int
	}{
		{"bare pipe", "|", PipeOutsideExpr, 0, 1},
		{"unmatched start", "{", UnmatchedExprStart, 0, 1},
		{"unmatched end", "}", UnmatchedExprEnd, 0, 1},
		{"nested expr", "{a{b}}", ExprStartInsideExpr, 2, 3},
		{"empty command after pipe", "{a|}", ExpectedFilter, 3, 4},
		{"empty command name", "{''}", EmptyCommandName, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src, '\\')
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.src)
			}
			pe, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if pe.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", pe.Kind, tt.kind)
			}
			if pe.Start != tt.start || pe.End != tt.end {
				t.Errorf("range = %d..%d, want %d..%d", pe.Start, pe.End, tt.start, tt.end)
			}
		})
	}
}

func TestParseEscapes(t *testing.T) {
	p, err := Parse(`a\nb\{c`, '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(p.Items) != 1 {
		t.Fatalf("len(p.Items) = %d, want 1", len(p.Items))
	}
	got := string(p.Items[0].Constant)
	want := "a\nb{c"
	if got != want {
		t.Errorf("Constant = %q, want %q", got, want)
	}
}

// TestParseRangesCoverSource checks spec section 8's parse/print
// identity invariant: Item ranges concatenate to the original source
// with no gaps or overlaps.
func TestParseRangesCoverSource(t *testing.T) {
	srcs := []string{
		"Hello {}",
		"{seq}. {upper}",
		`mv {} {lower}`,
		"{# printf '%s\\n' a b c}. {}",
	}
	for _, src := range srcs {
		p, err := Parse(src, '\\')
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		pos := 0
		for _, item := range p.Items {
			if item.Start != pos {
				t.Fatalf("Parse(%q): item starts at %d, want %d", src, item.Start, pos)
			}
			pos = item.End
		}
		if pos != len(src) {
			t.Fatalf("Parse(%q): items cover up to %d, want %d", src, pos, len(src))
		}
	}
}
