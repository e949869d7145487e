package pattern

// Simplify attempts to reduce p to a SimplePattern: this only succeeds
// when every Expression is an empty pipeline `{}` with no modifiers at
// all (spec section 4.2's Simplification). A NoStdin marker, a raw shell
// body, or any non-empty pipeline disqualifies the whole pattern, since
// any of those require spawning a child process.
func Simplify(p *Pattern) (*SimplePattern, bool) {
	items := make([]SimpleItem, 0, len(p.Items))
	for _, it := range p.Items {
		switch it.Kind {
		case ItemConstant:
			items = append(items, SimpleItem{Kind: SimpleConstant, Constant: it.Constant})
		case ItemExpression:
			e := it.Expression
			if e.NoStdin || e.Body.Kind != BodyPipeline || len(e.Body.Pipeline) != 0 {
				return nil, false
			}
			items = append(items, SimpleItem{Kind: SimpleInputEcho})
		}
	}
	return &SimplePattern{Items: items}, true
}
