package fil

import "github.com/opencae/fil2ensight/format"

// logicalWordsPerBlock is the word count that remains in one physical block
// after the 4+4 byte padding is stripped (513 words in, 512 words out).
const logicalWordsPerBlock = 512

// Record is one decoded (type, length, body) unit from the word stream
// (spec §3, §4.2). Body is a zero-copy slice into the batch's word buffer;
// it must not be retained past the batch's lifetime without copying.
type Record struct {
	Type   format.RecordType
	Length int
	Body   []Word
}

// Progress reports how far into a word batch decoding got before running
// out of a complete record. BlocksConsumed, multiplied by the physical
// block size, is the byte offset the frame reader should resume its next
// batch from (spec §4.2 step 2). ResumeWordIdx is the word offset, within
// that next batch, of the record that couldn't be completed here — the
// caller must pass it as Decode's wordIdx on the next call, or the words
// between the rewound block boundary and the original split point get
// decoded and dispatched a second time. Truncated signals a zero-content
// record header or a straddling record with no prior whole block consumed
// in this batch — the two cases §4.3 says to handle identically.
type Progress struct {
	BlocksConsumed int
	ResumeWordIdx  int
	Truncated      bool
}

// Decoder groups a batch's words into records.
type Decoder struct{}

// NewDecoder creates a record decoder. Decoder carries no state between
// batches; all progress is reported back through Progress so the caller can
// decide how to re-batch.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode walks words from wordIdx, invoking yield for each complete record,
// until the buffer is exhausted or a record cannot be completed from this
// batch. An error returned by yield aborts decoding and is returned as-is.
func (d *Decoder) Decode(words []Word, wordIdx int, yield func(Record) error) (Progress, error) {
	for wordIdx < len(words) {
		start := wordIdx
		length := int(words[wordIdx].AsFlag())

		if length <= 2 {
			blocksConsumed := start / logicalWordsPerBlock
			resumeWordIdx := start - blocksConsumed*logicalWordsPerBlock
			return Progress{BlocksConsumed: blocksConsumed, ResumeWordIdx: resumeWordIdx, Truncated: true}, nil
		}

		if wordIdx+length > len(words) {
			blocksConsumed := start / logicalWordsPerBlock
			resumeWordIdx := start - blocksConsumed*logicalWordsPerBlock
			if blocksConsumed == 0 {
				// No whole block completed yet in this batch: re-batching
				// would make no forward progress, so this is truncation.
				return Progress{Truncated: true, ResumeWordIdx: resumeWordIdx}, nil
			}
			return Progress{BlocksConsumed: blocksConsumed, ResumeWordIdx: resumeWordIdx}, nil
		}

		recType := format.RecordType(words[wordIdx+1].AsFlag())
		body := words[wordIdx+2 : wordIdx+length]
		wordIdx += length

		if err := yield(Record{Type: recType, Length: length, Body: body}); err != nil {
			return Progress{}, err
		}
	}

	return Progress{BlocksConsumed: len(words) / logicalWordsPerBlock}, nil
}
