package engine

import (
	"github.com/jpikl/mmvv/internal/pattern"
	"github.com/jpikl/mmvv/internal/recordio"
)

// RunSimple is the zero-child-process fast path: every Expression in
// the pattern is a pure echo of the current record, so each output
// record is assembled directly from the input record and the pattern's
// constant text, with no pipelines at all (spec section 4.5's
// Simplification fast path).
func RunSimple(sp *pattern.SimplePattern, in *recordio.LineReader, out *recordio.Writer) error {
	for {
		record, ok, err := in.ReadRecord()
		if err != nil {
			return err
		}
		if !ok {
			return out.Drop()
		}

		var assembled []byte
		for _, item := range sp.Items {
			switch item.Kind {
			case pattern.SimpleConstant:
				assembled = append(assembled, item.Constant...)
			case pattern.SimpleInputEcho:
				assembled = append(assembled, record...)
			}
		}
		if err := out.WriteRecord(assembled); err != nil {
			return err
		}
	}
}
