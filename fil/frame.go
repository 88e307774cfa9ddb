package fil

import (
	"io"
	"os"
	"time"

	"github.com/opencae/fil2ensight/errs"
	"github.com/opencae/fil2ensight/format"
	"github.com/opencae/fil2ensight/internal/pool"
)

// BatchBytes bounds how much of the input a single Reader.Next call will
// materialise (spec §4.1): 513 × 8 × 4096 × 32 = 537,919,488 bytes (513MiB).
const BatchBytes = format.BlockBytes * 4096 * 32

// TailPollInterval is how long the reader sleeps between tail-mode retries
// when the input has not grown but a lock file is still present (spec §4.1,
// §5).
var TailPollInterval = 10 * time.Second

// Reader turns the raw .fil byte stream at Path into batches of logical
// words, stripping the 513-word physical block's 4 leading and 4 trailing
// padding bytes. It tolerates a still-growing file: when a sibling lock
// file is present at EOF, Next blocks until more bytes arrive instead of
// reporting end of stream.
type Reader struct {
	path     string
	lockPath string
}

// NewReader opens a frame reader over path. A sibling "<path>.lck" file, if
// present at EOF, puts the reader into tail mode (spec §4.1).
func NewReader(path string) *Reader {
	return &Reader{path: path, lockPath: path + ".lck"}
}

func (r *Reader) lockPresent() bool {
	_, err := os.Stat(r.lockPath)
	return err == nil
}

// TailLockPresent reports whether the sibling lock file exists. The run
// loop consults it after a zero-progress truncated record (spec §4.3) to
// decide between retrying and stopping cleanly.
func (r *Reader) TailLockPresent() bool {
	return r.lockPresent()
}

// Next produces the next batch of logical words starting at byte offset
// fileIdx, which must be block-aligned (a multiple of 513×8 bytes) — the
// value returned by the previous call satisfies this by construction. It
// returns the words, the new fileIdx pointing at the first unconsumed byte,
// and done=true once the stream has ended cleanly (EOF with no lock file).
//
// The returned word slice length is always a multiple of 512 (spec §4.1
// invariant).
func (r *Reader) Next(fileIdx int64) (words []Word, nextIdx int64, done bool, err error) {
	for {
		f, openErr := os.Open(r.path)
		if openErr != nil {
			return nil, fileIdx, false, openErr
		}

		info, statErr := f.Stat()
		if statErr != nil {
			f.Close()
			return nil, fileIdx, false, statErr
		}
		fileSize := info.Size()

		if fileIdx >= fileSize {
			f.Close()
			if r.lockPresent() {
				time.Sleep(TailPollInterval)
				continue
			}
			return nil, fileIdx, true, nil
		}

		idxEnd := fileIdx + BatchBytes
		if idxEnd > fileSize {
			idxEnd = fileSize
		}
		idxEnd -= idxEnd % format.BlockBytes

		if idxEnd <= fileIdx {
			// Less than one whole block available; wait for more bytes if
			// the run is still live, otherwise this is a truncated tail.
			f.Close()
			if r.lockPresent() {
				time.Sleep(TailPollInterval)
				continue
			}
			return nil, fileIdx, false, errs.ErrInputFraming
		}

		rawBuf := pool.GetWordBatchBuffer()
		defer pool.PutWordBatchBuffer(rawBuf)
		rawBuf.Reset()
		rawBuf.ExtendOrGrow(int(idxEnd - fileIdx))
		raw := rawBuf.Bytes()

		if _, readErr := f.ReadAt(raw, fileIdx); readErr != nil && readErr != io.EOF {
			f.Close()
			return nil, fileIdx, false, readErr
		}
		f.Close()

		logical := stripBlockPadding(raw)
		return reshapeWords(logical), idxEnd, false, nil
	}
}

// stripBlockPadding removes the 4 leading and 4 trailing padding bytes of
// each 513-word physical block, returning the concatenated logical stream.
func stripBlockPadding(raw []byte) []byte {
	nBlocks := len(raw) / format.BlockBytes
	out := make([]byte, 0, nBlocks*(format.BlockBytes-2*format.BlockPaddingBytes))

	for i := 0; i < nBlocks; i++ {
		block := raw[i*format.BlockBytes : (i+1)*format.BlockBytes]
		out = append(out, block[format.BlockPaddingBytes:len(block)-format.BlockPaddingBytes]...)
	}

	return out
}
