package model

// PhantomNodeLabel is the solver-synthesized node at the origin that is
// always present regardless of whether the input ever defines it (spec §3).
const PhantomNodeLabel int64 = 0

// Node is one mesh vertex: a label and its 3-D coordinates (spec §3).
type Node struct {
	Label  int64
	Coords [3]float64
}
