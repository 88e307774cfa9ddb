// Package ensight implements the chunk-wise EnSight Gold writer (spec
// §4.5, C6): it renumbers the model store's sets into writer-owned parts,
// serializes geometry once at the end of model setup, and appends one
// variable block per export job at every committed increment.
package ensight

import (
	"github.com/opencae/fil2ensight/format"
	"github.com/opencae/fil2ensight/internal/hash"
)

// partElement is one element (or, for a node-set part, one synthesized
// single-node element) rewritten into a part's local node numbering.
type partElement struct {
	Label      int64
	LocalNodes []int
}

// cellGroup is one cell-type bucket within a part, in first-encountered
// order (spec §4.5 "one block per cell type").
type cellGroup struct {
	Type     format.CellType
	Elements []partElement
}

// Part is a writer-owned, renumbered view of one element set or node set
// (spec §3 "Part"): a compact local node index 0..N-1 in first-seen order
// across the set's elements, the matching 3-D coordinates, and elements
// grouped by target cell type with node references already rewritten to
// local indices.
type Part struct {
	ID          int
	Description string
	IsNodeSet   bool

	NodeLabels []int64
	Coords     [][3]float64
	Groups     []cellGroup
}

// PartIndex is the external bidirectional set<->partID map spec §9 calls
// for in place of the source's back-pointer on the set object ("Back-
// references from sets to writer parts... break encapsulation. Use an
// external bidirectional map set ↔ partID owned by the writer"). It is
// keyed by a hash of the set's resolved name plus its elSet/nSet kind,
// rather than by any identity carried on model.LabelSet, so a lookup never
// needs to reach back into the store.
type PartIndex struct {
	toID   map[uint64]int
	toName map[int]string
	toKind map[int]bool // true = node set
}

func newPartIndex() *PartIndex {
	return &PartIndex{
		toID:   make(map[uint64]int),
		toName: make(map[int]string),
		toKind: make(map[int]bool),
	}
}

func setKey(name string, isNodeSet bool) uint64 {
	prefix := "el:"
	if isNodeSet {
		prefix = "ns:"
	}
	return hash.ID(prefix + name)
}

func (p *PartIndex) assign(name string, isNodeSet bool, id int) {
	p.toID[setKey(name, isNodeSet)] = id
	p.toName[id] = name
	p.toKind[id] = isNodeSet
}

// PartID looks up the partID assigned to a set, by its resolved name and
// whether it is a node set.
func (p *PartIndex) PartID(name string, isNodeSet bool) (int, bool) {
	id, ok := p.toID[setKey(name, isNodeSet)]
	return id, ok
}

// SetName reverses a partID back to the set name and kind it was assigned
// to.
func (p *PartIndex) SetName(id int) (name string, isNodeSet bool, ok bool) {
	name, ok = p.toName[id]
	return name, p.toKind[id], ok
}
