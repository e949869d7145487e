// Package pattern implements the rew x pattern language: a lexer/parser
// producing a flat list of constant and expression items, plus the
// simplification pass that detects patterns needing no child processes.
//
// Grounded on the grammar in spec section 4.2 and, for ambiguous or
// unspecified corners, on the behavior of original_source's
// src/bin/rew/pattern/parser.rs and src/commands/x.rs.
package pattern

// Pattern is an ordered, immutable sequence of Items produced by parsing
// one pattern source string. Every byte of the source is covered by
// exactly one Item; Item ranges do not overlap and concatenate to the
// original source (spec section 3's invariant).
type Pattern struct {
	Items []Item
}

// ItemKind distinguishes the two forms an Item can take.
type ItemKind int

const (
	ItemConstant ItemKind = iota
	ItemExpression
)

// Item is one constant run of literal bytes or one `{...}` expression.
// Start and End are byte offsets into the original source string.
type Item struct {
	Kind       ItemKind
	Start      int
	End        int
	Constant   []byte
	Expression Expression
}

// Expression is a parsed `{...}` fragment.
type Expression struct {
	// Raw is the exact source text of the expression, including the
	// enclosing braces and any modifiers, for diagnostics.
	Raw string

	// NoStdin is the ':' modifier: a hint that the expression's pipeline
	// will be spawned with its stdin disconnected.
	NoStdin bool

	Body Body
}

// BodyKind distinguishes a raw shell command line from a command
// pipeline.
type BodyKind int

const (
	BodyPipeline BodyKind = iota
	BodyRawShell
)

// Body is either a verbatim shell command line (the '#' marker) or an
// ordered list of piped Commands.
type Body struct {
	Kind     BodyKind
	RawShell string
	Pipeline []Command
}

// Command is one stage of a pipeline: a command name, its arguments, and
// whether it must be resolved as an external program regardless of any
// built-in of the same name.
type Command struct {
	Name     string
	Args     []string
	External bool
}

// SimplePattern is produced by Simplify when every Expression in a
// Pattern is an empty pipeline `{}` with no modifiers at all (spec
// section 4.2's Simplification).
type SimplePattern struct {
	Items []SimpleItem
}

// SimpleItemKind distinguishes the two forms a SimpleItem can take.
type SimpleItemKind int

const (
	SimpleConstant SimpleItemKind = iota
	SimpleInputEcho
)

// SimpleItem is either a literal constant or a placeholder for the
// current input record.
type SimpleItem struct {
	Kind     SimpleItemKind
	Constant []byte
}
