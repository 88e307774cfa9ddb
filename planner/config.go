// Package planner translates an externally-parsed configuration dictionary
// into the ordered per-node and per-element export-job lists the
// extraction engine drives at every increment commit (spec §4.4, §6.3).
package planner

// Config mirrors spec.md §6.3's keyword table one field per keyword, plus
// the supplemented knobs from SPEC_FULL.md (SubstituteElSet,
// DiscardTimeMarks). Building it from the textual export-definition
// language is the excluded external parser's job; Build only ever consumes
// the already-parsed struct.
type Config struct {
	DefineElementType                 []ElementTypeEntry
	IgnoreLastNodesForElementType      []IgnoreLastNodesEntry
	SubstituteElSet                    []SubstituteElSetEntry
	UELSDVToQuadraturePoints           []QPUnpackEntry
	ComputeAverageOverQuadraturePoints []AverageEntry
	EnsightPerNodeVariableJob          []PerNodeJobEntry
	EnsightPerNodeVariableJobEntry     []PerNodeJobEntryEntry
	EnsightPerElementVariableJob       []PerElementJobEntry
	EnsightPerElementVariableJobEntry  []PerElementJobEntryEntry

	// DiscardTimeMarks replaces .case time values with 1-based commit
	// ordinals instead of physical time (spec §4.5, §9 SUPPLEMENTED
	// FEATURES *ensightCaseOptions/discardTime).
	DiscardTimeMarks bool
}

// ElementTypeEntry is one `defineElementType` entry: element shape ->
// target cell type.
type ElementTypeEntry struct {
	Element string
	Shape   string
}

// IgnoreLastNodesEntry is one `ignoreLastNodesForElementType` entry.
type IgnoreLastNodesEntry struct {
	Element string
	Number  int
}

// SubstituteElSetEntry is one `*substituteElSet` entry: an element set
// defined directly from literal labels, bypassing the .fil stream (spec §9
// SUPPLEMENTED FEATURES).
type SubstituteElSetEntry struct {
	ElSet string
	Data  []int64
}

// QPUnpackEntry is one `UELSDVToQuadraturePoints` entry (spec §4.3 derived
// job 1).
type QPUnpackEntry struct {
	Set             string
	Destination     string
	QpCount         int
	QpDistance      int
	QpInitialOffset int
}

// AverageEntry is one `computeAverageOverQuadraturePoints` entry (spec §4.3
// derived job 2).
type AverageEntry struct {
	Set    string
	Result string
}

// PerNodeJobEntry is one `ensightPerNodeVariableJob` entry.
type PerNodeJobEntry struct {
	Name       string
	Dimensions int
	TimeSet    int // defaults to 1 when zero
}

// PerNodeJobEntryEntry is one `ensightPerNodeVariableJobEntry` entry.
type PerNodeJobEntryEntry struct {
	Job                  string
	Set                  string
	Result               string
	SetType              string // "elSet" or "nSet", defaults to "nSet"
	Values               string
	Expression           string
	FillMissingValuesTo  *float64
}

// PerElementJobEntry is one `ensightPerElementVariableJob` entry.
type PerElementJobEntry struct {
	Name       string
	Dimensions int
	TimeSet    int
}

// PerElementJobEntryEntry is one `ensightPerElementVariableJobEntry` entry.
type PerElementJobEntryEntry struct {
	Job        string
	Set        string
	Result     string
	Location   string // "qps" or "computed"
	Which      string // int for "qps", string for "computed"
	SetType    string
	Values     string
	Expression string
}
