package builtin

import "io"

// Cat copies stdin to stdout unchanged, without interpreting records --
// it is the default stage substituted for an empty pipeline `{}` (spec
// section 4.5 / SPEC_FULL.md section 12, item 5), so it must behave as a
// true identity regardless of buffer or separator settings.
func Cat(ctx Context) error {
	_, err := io.Copy(ctx.Out, ctx.In)
	return err
}
