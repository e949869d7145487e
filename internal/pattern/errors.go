package pattern

import "fmt"

// ErrorKind identifies the reason a Parse call failed, independent of the
// exact source that triggered it (spec section 4.2's Parser contract:
// errors are distinguished for messaging, not type identity).
type ErrorKind int

const (
	// UnmatchedExprStart: a '{' with no matching '}' before the pattern
	// ends (also raised for unterminated quotes inside an expression).
	UnmatchedExprStart ErrorKind = iota
	// UnmatchedExprEnd: a '}' outside of any open expression.
	UnmatchedExprEnd
	// PipeOutsideExpr: a '|' outside of any open expression.
	PipeOutsideExpr
	// ExprStartInsideExpr: a second, unescaped '{' while already inside
	// a pipeline body.
	ExprStartInsideExpr
	// ExpectedFilter: a '|' followed directly by the expression's closing
	// '}' (other empty stages after '|' report EmptyCommandName).
	ExpectedFilter
	// ExpectedPipeOrExprEnd: a pipeline stage was parsed but the next
	// significant character is neither '|' nor '}'.
	ExpectedPipeOrExprEnd
	// EmptyCommandName: a pipeline stage resolved to a zero-length name.
	EmptyCommandName
)

func (k ErrorKind) String() string {
	switch k {
	case UnmatchedExprStart:
		return "unmatched '{'"
	case UnmatchedExprEnd:
		return "unmatched '}'"
	case PipeOutsideExpr:
		return "'|' outside an expression"
	case ExprStartInsideExpr:
		return "nested '{' inside an expression"
	case ExpectedFilter:
		return "expected a pipeline stage after '|'"
	case ExpectedPipeOrExprEnd:
		return "expected '|' or '}'"
	case EmptyCommandName:
		return "empty command name"
	default:
		return "pattern parse error"
	}
}

// ParseError is a structured parser error carrying the exact byte range
// of the offending input, per spec section 4.2's "Parser contract".
type ParseError struct {
	Kind  ErrorKind
	Start int
	End   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at byte %d..%d", e.Kind, e.Start, e.End)
}
