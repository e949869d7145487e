package pattern

// QuoteExpressions returns a new Pattern where every Expression item is
// wrapped in a leading and trailing Constant(quote) item. This is the
// one optional in-place transform a Pattern supports after parsing
// (spec section 3's Lifecycle), driven by the repeatable -q/--quote
// flag. Wrapping happens here, at the pattern level, rather than inside
// the executor, so the simple and general execution paths share one
// rendering rule (section 4.2's "Quote wrapping").
func QuoteExpressions(p *Pattern, quote byte) *Pattern {
	out := make([]Item, 0, len(p.Items)*3)
	q := []byte{quote}
	for _, it := range p.Items {
		if it.Kind != ItemExpression {
			out = append(out, it)
			continue
		}
		out = append(out, Item{Kind: ItemConstant, Constant: q, Start: it.Start, End: it.Start})
		out = append(out, it)
		out = append(out, Item{Kind: ItemConstant, Constant: q, Start: it.End, End: it.End})
	}
	return &Pattern{Items: out}
}
