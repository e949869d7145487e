package pattern

import "testing"

func TestQuoteExpressionsWrapsEachExpression(t *testing.T) {
	p, err := Parse("mv {} {lower}", '\\')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	quoted := QuoteExpressions(p, '\'')

	var kinds []ItemKind
	var constants []string
	for _, it := range quoted.Items {
		kinds = append(kinds, it.Kind)
		if it.Kind == ItemConstant {
			constants = append(constants, string(it.Constant))
		}
	}

	want := []ItemKind{
		ItemConstant, ItemConstant, ItemExpression, ItemConstant,
		ItemConstant, ItemConstant, ItemExpression, ItemConstant,
	}
	if len(kinds) != len(want) {
		t.Fatalf("len(kinds) = %d, want %d (%v)", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
	for _, c := range []string{"'", "mv "} {
		found := false
		for _, got := range constants {
			if got == c {
				found = true
			}
		}
		if !found {
			t.Errorf("expected a constant %q among %v", c, constants)
		}
	}
}
