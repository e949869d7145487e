package builtin

import "strconv"

// First passes through the first N records (default 1, from args[0] if
// given) and then stops, leaving any further input unread.
func First(ctx Context) error {
	n := 1
	if len(ctx.Args) > 0 {
		if v, err := strconv.Atoi(ctx.Args[0]); err == nil && v >= 0 {
			n = v
		}
	}
	r := ctx.reader()
	w := ctx.writer()
	for i := 0; i < n; i++ {
		record, ok, err := r.ReadRecord()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := w.WriteRecord(record); err != nil {
			return err
		}
	}
	return w.Drop()
}
