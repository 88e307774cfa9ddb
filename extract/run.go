package extract

import (
	"context"
	"time"

	"github.com/opencae/fil2ensight/fil"
	"github.com/opencae/fil2ensight/format"
)

// TruncatedRetryInterval is how long Run sleeps before retrying a
// zero-progress truncated record while a tail lock file is present (spec
// §4.3 "sleep 5s and retry the batch").
var TruncatedRetryInterval = 5 * time.Second

// Run drives engine from the .fil file at path until the input ends
// cleanly (no tail lock file) or ctx is cancelled. It owns the frame
// reader and record decoder, re-batching at record boundaries and handling
// tail-mode truncation exactly as spec §4.1–§4.3 describe.
//
// ctx is observed between batches and during the truncated-record retry
// wait. A tail-mode wait inside Reader.Next (EOF reached while the lock
// file exists) does not observe ctx: it keeps polling until the file grows
// or the lock file is removed.
func Run(ctx context.Context, path string, engine *Engine) error {
	reader := fil.NewReader(path)
	decoder := fil.NewDecoder()

	var fileIdx int64
	var resumeWordIdx int

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		words, nextIdx, done, err := reader.Next(fileIdx)
		if err != nil {
			return err
		}
		if done {
			engine.MarkDone()
			return nil
		}

		progress, err := decoder.Decode(words, resumeWordIdx, engine.Handle)
		if err != nil {
			return err
		}

		if progress.Truncated && progress.BlocksConsumed == 0 {
			resumeWordIdx = progress.ResumeWordIdx
			if reader.TailLockPresent() {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(TruncatedRetryInterval):
				}
				continue
			}
			engine.MarkDone()
			return nil
		}

		fileIdx += int64(progress.BlocksConsumed) * format.BlockBytes
		resumeWordIdx = progress.ResumeWordIdx
		if progress.BlocksConsumed == 0 {
			// Defensive: a non-truncated, zero-block result would spin the
			// loop forever re-reading the same bytes. Fall back to the
			// reader's own batch end, which always makes progress.
			fileIdx = nextIdx
			resumeWordIdx = 0
		}
	}
}
