package builtin

import "strconv"

// Seq is a Generator: it ignores stdin (internal/registry gives it a
// Disconnected stdin mode) and writes a sequence of integers, one per
// record, in the coreutils seq(1) shape: end, start end, or start step
// end (a negative step counts down). With no arguments it counts up from 1 forever, relying on the
// executor's "first exhausted producer ends the record" rule (spec
// section 4.5) to bound it -- e.g. `{seq}. {upper}` stops once the
// paired expression runs dry.
func Seq(ctx Context) error {
	start, end, step := 1, 0, 1
	switch len(ctx.Args) {
	case 0:
		w := ctx.writer()
		for n := start; ; n++ {
			if err := w.WriteRecord([]byte(strconv.Itoa(n))); err != nil {
				return err
			}
		}
	case 1:
		v, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return err
		}
		end = v
	case 2:
		a, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return err
		}
		b, err := strconv.Atoi(ctx.Args[1])
		if err != nil {
			return err
		}
		start, end = a, b
	case 3:
		a, err := strconv.Atoi(ctx.Args[0])
		if err != nil {
			return err
		}
		b, err := strconv.Atoi(ctx.Args[1])
		if err != nil {
			return err
		}
		c, err := strconv.Atoi(ctx.Args[2])
		if err != nil {
			return err
		}
		start, end, step = a, c, b
	default:
		return errSeqArgs
	}
	if step == 0 {
		return errSeqStep
	}

	w := ctx.writer()
	if step > 0 {
		for n := start; n <= end; n += step {
			if err := w.WriteRecord([]byte(strconv.Itoa(n))); err != nil {
				return err
			}
		}
	} else {
		for n := start; n >= end; n += step {
			if err := w.WriteRecord([]byte(strconv.Itoa(n))); err != nil {
				return err
			}
		}
	}
	return w.Drop()
}

type seqError string

func (e seqError) Error() string { return string(e) }

const (
	errSeqArgs seqError = "seq: expected 0 to 3 arguments"
	errSeqStep seqError = "seq: step must not be zero"
)
