package builtin

// Stream collapses every input record into a single output record,
// joined back together with the configured separator byte rather than
// being split on it -- the inverse of Cat's record-preserving
// passthrough, useful as the last stage of a pipeline that wants one
// combined blob per input line instead of one record per pipeline
// record.
func Stream(ctx Context) error {
	r := ctx.reader()
	w := ctx.writer()
	var combined []byte
	for n := 0; ; n++ {
		record, ok, err := r.ReadRecord()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if n > 0 {
			combined = append(combined, byte(ctx.Sep))
		}
		combined = append(combined, record...)
	}
	if err := w.WriteRecord(combined); err != nil {
		return err
	}
	return w.Drop()
}
