// Package engine is the pattern executor: it turns a parsed pattern
// into either the zero-child-process simple path or the general path's
// two-thread choreography (one forwarder goroutine, one main-thread
// output loop) described in spec section 4.5 and section 5.
//
// Grounded on original_source/src/commands/x.rs's eval_simple_pattern /
// eval_pattern, with the explicit two-thread model translated to a
// goroutine plus the calling goroutine, wrapped for panic safety the way
// kazz187-taskguild/backend/pkg/panicerr wraps background work.
package engine

import (
	"github.com/jpikl/mmvv/internal/procx"
	"github.com/jpikl/mmvv/internal/recordio"
)

// Producer yields one fragment of the current output record on each
// call. A Constant producer never runs dry; a Child producer reports
// ok=false the moment its process closes its stdout, which ends the
// current record's assembly (spec section 4.5's "collect_output"
// choreography: the first exhausted producer silently ends the run,
// there is no partial-record flush).
type Producer interface {
	Next() ([]byte, bool, error)
}

// ConstantProducer re-emits the same literal bytes every record: the
// text between (or before/after) pattern Expressions.
type ConstantProducer struct {
	Text []byte
}

func (c ConstantProducer) Next() ([]byte, bool, error) {
	return c.Text, true, nil
}

// ChildProducer reads one record at a time from a spawned pipeline's
// stdout.
type ChildProducer struct {
	Reader *recordio.LineReader
	Ctx    procx.Context
}

func (c *ChildProducer) Next() ([]byte, bool, error) {
	record, ok, err := c.Reader.ReadRecord()
	if err != nil {
		return nil, false, c.Ctx.Apply(err, "failed to read from child process stdout")
	}
	return record, ok, nil
}
