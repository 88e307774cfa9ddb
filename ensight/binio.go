package ensight

import (
	"io"
	"math"

	"github.com/opencae/fil2ensight/endian"
	"github.com/opencae/fil2ensight/internal/pool"
)

var le = endian.GetLittleEndianEngine()

// c80 is the fixed width of every EnSight Gold ASCII header line (spec
// §4.5): "C Binary", "BEGIN TIME STEP", "part", "coordinates", cell-type
// names, and part descriptions are all written space-padded to this width.
const c80 = 80

// blockWriter assembles one geometry or variable chunk into a pooled
// buffer before handing it to the underlying file, so a single part or
// variable block never does more than one syscall (spec §4.1's buffering
// idiom, reused here for the write side).
type blockWriter struct {
	buf *pool.ByteBuffer
}

func newBlockWriter() *blockWriter {
	return &blockWriter{buf: pool.GetRecordBuffer()}
}

func (w *blockWriter) release() {
	pool.PutRecordBuffer(w.buf)
}

// writeC80 appends an 80-byte, space-padded (or truncated) ASCII field.
func (w *blockWriter) writeC80(s string) {
	field := make([]byte, c80)
	for i := range field {
		field[i] = ' '
	}
	copy(field, s)
	w.buf.MustWrite(field)
}

// writeInt32 appends one little-endian int32.
func (w *blockWriter) writeInt32(v int32) {
	var b [4]byte
	le.PutUint32(b[:], uint32(v))
	w.buf.MustWrite(b[:])
}

// writeInt32s appends a little-endian int32 per value.
func (w *blockWriter) writeInt32s(values []int32) {
	for _, v := range values {
		w.writeInt32(v)
	}
}

// writeFloat32s appends a little-endian float32 per value, narrowing from
// float64 (spec §4.5: coordinates and variable components are float32).
func (w *blockWriter) writeFloat32s(values []float64) {
	for _, v := range values {
		var b [4]byte
		le.PutUint32(b[:], math.Float32bits(float32(v)))
		w.buf.MustWrite(b[:])
	}
}

// flush writes the assembled buffer to f and resets it for reuse.
func (w *blockWriter) flush(f io.Writer) error {
	_, err := f.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}
