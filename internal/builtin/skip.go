package builtin

import "strconv"

// Skip discards the first N records (default 1, from args[0] if given)
// and passes through everything after.
func Skip(ctx Context) error {
	n := 1
	if len(ctx.Args) > 0 {
		if v, err := strconv.Atoi(ctx.Args[0]); err == nil && v >= 0 {
			n = v
		}
	}
	r := ctx.reader()
	w := ctx.writer()
	for i := 0; i < n; i++ {
		if _, ok, err := r.ReadRecord(); err != nil {
			return err
		} else if !ok {
			return w.Drop()
		}
	}
	for {
		record, ok, err := r.ReadRecord()
		if err != nil {
			return err
		}
		if !ok {
			return w.Drop()
		}
		if err := w.WriteRecord(record); err != nil {
			return err
		}
	}
}
