package fil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opencae/fil2ensight/format"
	"github.com/stretchr/testify/require"
)

// buildBlock returns one physical 513-word block: 4 bytes padding, 512
// logical words, 4 bytes padding.
func buildBlock(logical []byte) []byte {
	require_ := len(logical) == format.BlockBytes-2*format.BlockPaddingBytes
	if !require_ {
		panic("buildBlock: logical payload must be exactly one block's worth")
	}

	block := make([]byte, 0, format.BlockBytes)
	block = append(block, make([]byte, format.BlockPaddingBytes)...)
	block = append(block, logical...)
	block = append(block, make([]byte, format.BlockPaddingBytes)...)
	return block
}

func TestReader_SingleBlockRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.fil")

	logical := make([]byte, format.BlockBytes-2*format.BlockPaddingBytes)
	for i := range logical {
		logical[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, buildBlock(logical), 0o644))

	r := NewReader(path)
	words, nextIdx, done, err := r.Next(0)

	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, int64(format.BlockBytes), nextIdx)
	require.Len(t, words, logicalWordsPerBlock)

	for i, w := range words {
		expected := logical[i*WordSize : (i+1)*WordSize]
		require.Equal(t, expected, w[:])
	}
}

func TestReader_MultipleBlocks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.fil")

	var content []byte
	for b := 0; b < 3; b++ {
		logical := make([]byte, format.BlockBytes-2*format.BlockPaddingBytes)
		for i := range logical {
			logical[i] = byte(b)
		}
		content = append(content, buildBlock(logical)...)
	}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	r := NewReader(path)
	words, nextIdx, done, err := r.Next(0)

	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, int64(len(content)), nextIdx)
	require.Len(t, words, logicalWordsPerBlock*3)
}

func TestReader_EOFWithoutLockFileIsDone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.fil")

	logical := make([]byte, format.BlockBytes-2*format.BlockPaddingBytes)
	require.NoError(t, os.WriteFile(path, buildBlock(logical), 0o644))

	r := NewReader(path)
	_, nextIdx, _, err := r.Next(0)
	require.NoError(t, err)

	_, _, done, err := r.Next(nextIdx)
	require.NoError(t, err)
	require.True(t, done)
}

func TestReader_TailModeWaitsForLockFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.fil")
	lockPath := path + ".lck"

	logical := make([]byte, format.BlockBytes-2*format.BlockPaddingBytes)
	require.NoError(t, os.WriteFile(path, buildBlock(logical), 0o644))
	require.NoError(t, os.WriteFile(lockPath, nil, 0o644))

	r := NewReader(path)
	TailPollInterval = 0 // don't actually sleep in the test

	_, nextIdx, _, err := r.Next(0)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		// Drop the lock mid-poll so Next eventually returns "done".
		os.Remove(lockPath)
		close(done)
	}()

	_, _, isDone, err := r.Next(nextIdx)
	<-done
	require.NoError(t, err)
	require.True(t, isDone)
}
