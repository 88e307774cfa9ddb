// Package format holds the wire-level constants shared by the fil, model,
// extract and ensight packages: physical framing sizes (spec §6.1), record
// type codes (spec §4.3), and the EnSight Gold cell-type and variable-kind
// tables (spec §4.5).
package format

const (
	// WordSize is the size, in bytes, of one .fil word.
	WordSize = 8

	// BlockWords is the number of words in one physical .fil block.
	BlockWords = 513

	// BlockBytes is the size, in bytes, of one physical .fil block.
	BlockBytes = BlockWords * WordSize

	// BlockPaddingBytes is the number of framing bytes stripped from the
	// start and from the end of each physical block.
	BlockPaddingBytes = 4

	// BatchBytes bounds the number of bytes (whole physical blocks)
	// materialized by one frame-reader batch: 513 words/block * 8
	// bytes/word * 4096 * 32 blocks per batch, 513 MiB.
	BatchBytes = BlockBytes * 4096 * 32

	// PhantomNodeLabel is the solver-synthesized node Abaqus falls back to
	// when it creates a node in place (e.g. for hex27 elements in contact).
	PhantomNodeLabel int64 = 0

	// AllSetName is the name of the element set auto-created after model
	// setup, containing every defined element.
	AllSetName = "ALL"
)

// RecordType identifies the kind of a decoded .fil record (spec §4.3).
type RecordType int32

const (
	RecordElementHeader        RecordType = 1
	RecordSDVOutput            RecordType = 5
	RecordSOutput              RecordType = 11
	RecordEOutput              RecordType = 21
	RecordPEOutput             RecordType = 22
	RecordLocalCoordSys        RecordType = 85
	RecordLEOutput             RecordType = 89
	RecordUOutput              RecordType = 101
	RecordVOutput              RecordType = 102
	RecordAOutput              RecordType = 103
	RecordRFOutput             RecordType = 104
	RecordPOROutput            RecordType = 108
	RecordNTOutput             RecordType = 201
	RecordSurfaceDefHeader     RecordType = 1501
	RecordSurfaceFacet         RecordType = 1502
	RecordElementDefinition    RecordType = 1900
	RecordNodeDefinition       RecordType = 1901
	RecordActiveDOF           RecordType = 1902
	RecordOutputDefinition     RecordType = 1911
	RecordHeading              RecordType = 1921
	RecordHeadingCont          RecordType = 1922
	RecordNodeSetDefinition    RecordType = 1931
	RecordNodeSetDefinitionCont RecordType = 1932
	RecordElSetDefinition      RecordType = 1933
	RecordElSetDefinitionCont  RecordType = 1934
	RecordLabelCrossReference  RecordType = 1940
	RecordEnergySummary        RecordType = 1999
	RecordStartIncrement       RecordType = 2000
	RecordEndIncrement         RecordType = 2001
)

// perElementOutputNames maps the per-element output record types to the
// result name they carry (spec §4.3's dispatch table, types 5/11/21/22/89).
var perElementOutputNames = map[RecordType]string{
	RecordSDVOutput: "SDV",
	RecordSOutput:   "S",
	RecordEOutput:   "E",
	RecordPEOutput:  "PE",
	RecordLEOutput:  "LE",
}

// PerElementOutputName reports the result name for a per-element output
// record type, and whether the type is one at all.
func PerElementOutputName(t RecordType) (string, bool) {
	name, ok := perElementOutputNames[t]
	return name, ok
}

// perNodeOutputNames maps the per-node output record types to the result
// name they carry (spec §4.3's dispatch table, types 101/102/103/104/108/201).
var perNodeOutputNames = map[RecordType]string{
	RecordUOutput:   "U",
	RecordVOutput:   "V",
	RecordAOutput:   "A",
	RecordRFOutput:  "RF",
	RecordPOROutput: "POR",
	RecordNTOutput:  "NT",
}

// PerNodeOutputName reports the result name for a per-node output record
// type, and whether the type is one at all.
func PerNodeOutputName(t RecordType) (string, bool) {
	name, ok := perNodeOutputNames[t]
	return name, ok
}
