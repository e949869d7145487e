package pattern

import "unicode/utf8"

// Parse lexes and parses src into a Pattern, using escape as the escape
// rune (default '\\', bound to -e/--escape at the CLI layer).
func Parse(src string, escape rune) (*Pattern, error) {
	p := &parser{src: []byte(src), escape: escape}
	items, err := p.parseItems()
	if err != nil {
		return nil, err
	}
	return &Pattern{Items: items}, nil
}

type parser struct {
	src       []byte
	pos       int
	escape    rune
	exprStart int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpaces() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// decodeEscape decodes one escape sequence starting at p.pos (which must
// hold the escape rune) and returns the literal bytes it represents plus
// the number of source bytes consumed. A trailing escape rune with
// nothing following it is taken literally. Mapping n/r/t to control
// characters and everything else to itself matches spec section 3's
// constant-escaping rule.
func (p *parser) decodeEscape() ([]byte, int) {
	_, escSize := utf8.DecodeRune(p.src[p.pos:])
	if p.pos+escSize >= len(p.src) {
		return []byte(string(p.escape)), escSize
	}
	next, nextSize := utf8.DecodeRune(p.src[p.pos+escSize:])
	total := escSize + nextSize
	switch next {
	case 'n':
		return []byte{'\n'}, total
	case 'r':
		return []byte{'\r'}, total
	case 't':
		return []byte{'\t'}, total
	default:
		buf := make([]byte, nextSize)
		utf8.EncodeRune(buf, next)
		return buf, total
	}
}

// atEscape reports whether the rune at p.pos is the configured escape
// rune, without advancing.
func (p *parser) atEscape() bool {
	if p.eof() {
		return false
	}
	r, _ := utf8.DecodeRune(p.src[p.pos:])
	return r == p.escape
}

// parseItems is the top-level scan: it alternates between constant runs
// and expressions, and rejects '}' and '|' appearing outside any
// expression.
func (p *parser) parseItems() ([]Item, error) {
	var items []Item
	for !p.eof() {
		start := p.pos
		constant := p.scanConstant()
		if len(constant) > 0 {
			items = append(items, Item{Kind: ItemConstant, Start: start, End: p.pos, Constant: constant})
		}
		if p.eof() {
			break
		}
		switch p.peek() {
		case '{':
			item, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case '}':
			return nil, &ParseError{Kind: UnmatchedExprEnd, Start: p.pos, End: p.pos + 1}
		case '|':
			return nil, &ParseError{Kind: PipeOutsideExpr, Start: p.pos, End: p.pos + 1}
		}
	}
	return items, nil
}

// scanConstant reads literal bytes until an unescaped '{', '}', or '|',
// or end of input, decoding escape sequences as it goes.
func (p *parser) scanConstant() []byte {
	var out []byte
	for !p.eof() {
		c := p.src[p.pos]
		if p.atEscape() {
			decoded, n := p.decodeEscape()
			out = append(out, decoded...)
			p.pos += n
			continue
		}
		if c == '{' || c == '}' || c == '|' {
			break
		}
		_, size := utf8.DecodeRune(p.src[p.pos:])
		out = append(out, p.src[p.pos:p.pos+size]...)
		p.pos += size
	}
	return out
}

// parseExpression parses one `{...}` fragment; p.pos must point at the
// opening brace on entry.
func (p *parser) parseExpression() (Item, error) {
	start := p.pos
	prevExprStart := p.exprStart
	p.exprStart = start
	defer func() { p.exprStart = prevExprStart }()

	p.pos++ // consume '{'

	var noStdin, forceExternal, rawShell bool
modifiers:
	for !p.eof() {
		switch p.src[p.pos] {
		case ':':
			noStdin = true
			p.pos++
		case '!':
			forceExternal = true
			p.pos++
		case '#':
			rawShell = true
			p.pos++
			break modifiers
		default:
			break modifiers
		}
	}

	var body Body
	if rawShell {
		raw, err := p.scanRawShell()
		if err != nil {
			return Item{}, err
		}
		body = Body{Kind: BodyRawShell, RawShell: raw}
	} else {
		commands, err := p.parsePipeline()
		if err != nil {
			return Item{}, err
		}
		if forceExternal && len(commands) > 0 {
			commands[0].External = true
		}
		body = Body{Kind: BodyPipeline, Pipeline: commands}
	}

	if p.eof() || p.src[p.pos] != '}' {
		return Item{}, &ParseError{Kind: UnmatchedExprStart, Start: start, End: start + 1}
	}
	end := p.pos + 1
	raw := string(p.src[start:end])
	p.pos = end

	return Item{
		Kind:  ItemExpression,
		Start: start,
		End:   end,
		Expression: Expression{
			Raw:     raw,
			NoStdin: noStdin,
			Body:    body,
		},
	}, nil
}

// scanRawShell consumes shell text verbatim up to the '}' matching the
// already-open expression, tracking nested brace depth so constructs
// like shell brace expansion don't end the expression early. Escaped
// braces never count toward depth.
func (p *parser) scanRawShell() (string, error) {
	var out []byte
	depth := 1
	for !p.eof() {
		c := p.src[p.pos]
		if p.atEscape() {
			decoded, n := p.decodeEscape()
			out = append(out, decoded...)
			p.pos += n
			continue
		}
		if c == '{' {
			depth++
		} else if c == '}' {
			depth--
			if depth == 0 {
				return string(out), nil
			}
		}
		_, size := utf8.DecodeRune(p.src[p.pos:])
		out = append(out, p.src[p.pos:p.pos+size]...)
		p.pos += size
	}
	return "", &ParseError{Kind: UnmatchedExprStart, Start: p.exprStart, End: p.exprStart + 1}
}

// parsePipeline parses the pipeline body of an expression: zero or more
// Commands separated by '|', ending at the expression's closing '}'.
// A pipeline with no commands at all (the raw text is just "{}", modulo
// whitespace) is the empty pipeline the executor substitutes `cat` for.
func (p *parser) parsePipeline() ([]Command, error) {
	p.skipSpaces()
	if p.eof() {
		return nil, &ParseError{Kind: UnmatchedExprStart, Start: p.exprStart, End: p.exprStart + 1}
	}
	if p.src[p.pos] == '}' {
		return nil, nil
	}

	var commands []Command
	for {
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)

		p.skipSpaces()
		if p.eof() {
			return nil, &ParseError{Kind: UnmatchedExprStart, Start: p.exprStart, End: p.exprStart + 1}
		}
		switch p.src[p.pos] {
		case '}':
			return commands, nil
		case '|':
			p.pos++
			p.skipSpaces()
			if !p.eof() && p.src[p.pos] == '}' {
				return nil, &ParseError{Kind: ExpectedFilter, Start: p.pos, End: p.pos + 1}
			}
			continue
		case '{':
			return nil, &ParseError{Kind: ExprStartInsideExpr, Start: p.pos, End: p.pos + 1}
		default:
			return nil, &ParseError{Kind: ExpectedPipeOrExprEnd, Start: p.pos, End: p.pos + 1}
		}
	}
}

// parseCommand parses one pipeline stage: an optional leading '!', a
// name, and zero or more whitespace-separated args.
func (p *parser) parseCommand() (Command, error) {
	start := p.pos
	external := false
	if !p.eof() && p.src[p.pos] == '!' {
		external = true
		p.pos++
	}

	name, err := p.parseWord()
	if err != nil {
		return Command{}, err
	}
	if name == "" {
		return Command{}, &ParseError{Kind: EmptyCommandName, Start: start, End: p.pos}
	}

	var args []string
	for {
		p.skipSpaces()
		if p.eof() {
			break
		}
		c := p.src[p.pos]
		if c == '|' || c == '}' {
			break
		}
		arg, err := p.parseWord()
		if err != nil {
			return Command{}, err
		}
		args = append(args, arg)
	}

	return Command{Name: name, Args: args, External: external}, nil
}

// parseWord parses one argument or command-name token: a single-quoted
// string, a double-quoted string, or a bareword. The three forms never
// mix within one token (spec section 4.2's grammar: arg is a pure
// alternation).
func (p *parser) parseWord() (string, error) {
	if p.eof() {
		return "", nil
	}
	switch p.src[p.pos] {
	case '\'':
		return p.parseQuoted('\'')
	case '"':
		return p.parseQuoted('"')
	default:
		return p.parseBareword()
	}
}

func (p *parser) parseQuoted(quote byte) (string, error) {
	p.pos++ // consume opening quote
	var out []byte
	for {
		if p.eof() {
			return "", &ParseError{Kind: UnmatchedExprStart, Start: p.exprStart, End: p.exprStart + 1}
		}
		c := p.src[p.pos]
		if p.atEscape() {
			decoded, n := p.decodeEscape()
			out = append(out, decoded...)
			p.pos += n
			continue
		}
		if c == quote {
			p.pos++
			return string(out), nil
		}
		_, size := utf8.DecodeRune(p.src[p.pos:])
		out = append(out, p.src[p.pos:p.pos+size]...)
		p.pos += size
	}
}

func (p *parser) parseBareword() (string, error) {
	var out []byte
	for !p.eof() {
		c := p.src[p.pos]
		if p.atEscape() {
			decoded, n := p.decodeEscape()
			out = append(out, decoded...)
			p.pos += n
			continue
		}
		if c == ' ' || c == '\t' || c == '|' || c == '}' {
			break
		}
		if c == '{' {
			return "", &ParseError{Kind: ExprStartInsideExpr, Start: p.pos, End: p.pos + 1}
		}
		_, size := utf8.DecodeRune(p.src[p.pos:])
		out = append(out, p.src[p.pos:p.pos+size]...)
		p.pos += size
	}
	return string(out), nil
}
