package model

// Element is one element definition: a label, the solver shape string as
// read from the stream (mapped to a target cell type later by the planner),
// and its ordered node labels (spec §3).
type Element struct {
	Label      int64
	Shape      string
	NodeLabels []int64
}
