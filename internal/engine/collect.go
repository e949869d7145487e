package engine

import "github.com/jpikl/mmvv/internal/recordio"

// CollectOutput is the main thread's half of the general path: for each
// round, ask every Producer for its next fragment, concatenate them into
// one output record, and write it. The instant any Producer is
// exhausted -- even mid-round, after some earlier producers already
// contributed -- the whole run ends there; the partially assembled
// record is discarded, matching original_source/src/commands/x.rs's
// collect_output, which returns as soon as any child's LineReader hits
// EOF.
func CollectOutput(producers []Producer, w *recordio.Writer) error {
	for {
		var assembled []byte
		for _, p := range producers {
			chunk, ok, err := p.Next()
			if err != nil {
				return err
			}
			if !ok {
				return w.Drop()
			}
			assembled = append(assembled, chunk...)
		}
		if err := w.WriteRecord(assembled); err != nil {
			return err
		}
	}
}
