// Package extract interprets a decoded .fil record stream as a sequence of
// commands against a model store, driving derived-field computation and a
// writer hand-off at each committed increment (spec §4.3).
package extract

// ParseCursor carries the context that is implicit in the flat .fil record
// stream — the element/ipt an output record belongs to, and the set/shape
// an output-definition record most recently selected — as an explicit value
// threaded through the dispatch table, replacing the source's global
// mutable fields (spec §9 "Global mutable current-set/element/ipt fields").
type ParseCursor struct {
	CurrentSet     string
	CurrentShape   string
	CurrentElement int64
	CurrentIpt     int

	// DefSetName and DefSetKind track the set most recently opened by a
	// 1931/1933 definition record, so a following 1932/1934 continuation
	// record (which carries no name of its own) knows which set to grow.
	DefSetName string
	DefSetKind DefSetKind
}

// DefSetKind distinguishes which kind of set a continuation record appends
// to.
type DefSetKind int

const (
	DefSetNone DefSetKind = iota
	DefSetElement
	DefSetNode
)
