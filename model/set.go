package model

// AllSetName is the element set synthesized after model setup containing
// every defined element (spec §3).
const AllSetName = "ALL"

// LabelSet is a named collection of labels — an element set or a node set.
// Both kinds share this shape; Store keeps them in separate maps since an
// element-set name and a node-set name may legitimately collide (spec §3).
type LabelSet struct {
	Name   string
	Labels []int64
}

// Append adds labels to the set, preserving definition order. Continuation
// records (types 1932/1934) call this on the set opened by the preceding
// definition record.
func (s *LabelSet) Append(labels ...int64) {
	s.Labels = append(s.Labels, labels...)
}
