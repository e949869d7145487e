package builtin

// Loop is a Generator: it ignores stdin and cycles through its
// arguments forever, one per record, typically paired with First or
// Skip downstream to bound the otherwise-infinite output.
func Loop(ctx Context) error {
	if len(ctx.Args) == 0 {
		return nil
	}
	w := ctx.writer()
	for i := 0; ; i = (i + 1) % len(ctx.Args) {
		if err := w.WriteRecord([]byte(ctx.Args[i])); err != nil {
			return err
		}
	}
}
