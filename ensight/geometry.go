package ensight

import (
	"fmt"

	"github.com/opencae/fil2ensight/errs"
	"github.com/opencae/fil2ensight/format"
	"github.com/opencae/fil2ensight/model"
	"github.com/opencae/fil2ensight/planner"
)

// Geometry is the complete, frozen set of writer-owned parts built once, at
// the end of model setup (spec §4.5 "Geometry emission").
type Geometry struct {
	Parts []*Part
}

// BuildGeometry renumbers every element set then every node set into
// Parts, in definition order (spec §5 "Part IDs are assigned in
// element-set-then-node-set definition order ... stable across restarts
// that consume the same input").
func BuildGeometry(store *model.Store, plan *planner.Plan) (*Geometry, *PartIndex, error) {
	idx := newPartIndex()
	geom := &Geometry{}
	nextID := 1

	for _, name := range store.ElSetNamesInOrder() {
		set, ok := store.ElSet(name)
		if !ok {
			continue
		}
		part, err := buildElementSetPart(store, plan, set, nextID)
		if err != nil {
			return nil, nil, err
		}
		idx.assign(name, false, nextID)
		geom.Parts = append(geom.Parts, part)
		nextID++
	}

	for _, name := range store.NSetNamesInOrder() {
		set, ok := store.NSet(name)
		if !ok {
			continue
		}
		part, err := buildNodeSetPart(store, plan, set, nextID)
		if err != nil {
			return nil, nil, err
		}
		idx.assign(name, true, nextID)
		geom.Parts = append(geom.Parts, part)
		nextID++
	}

	return geom, idx, nil
}

// buildElementSetPart computes an element set's local node list (first-seen
// order across its elements), coordinates, and elements-by-target-cell-type
// grouping with node references rewritten to local indices (spec §4.5 step
// 1).
func buildElementSetPart(store *model.Store, plan *planner.Plan, set *model.LabelSet, partID int) (*Part, error) {
	part := &Part{ID: partID, Description: set.Name}
	localIndex := make(map[int64]int)
	groupIndex := make(map[format.CellType]int)

	for _, elLabel := range set.Labels {
		el, ok := store.Element(elLabel)
		if !ok {
			continue
		}
		cellType, ok := plan.ElementTypeMap[el.Shape]
		if !ok {
			return nil, fmt.Errorf("%w: element shape %q has no defineElementType mapping", errs.ErrConfigError, el.Shape)
		}

		localNodes := make([]int, 0, len(el.NodeLabels))
		for _, nodeLabel := range el.NodeLabels {
			li, ok := localIndex[nodeLabel]
			if !ok {
				node, ok := store.Node(nodeLabel)
				if !ok {
					return nil, fmt.Errorf("%w: element %d references undefined node %d", errs.ErrConfigError, elLabel, nodeLabel)
				}
				li = len(part.NodeLabels)
				localIndex[nodeLabel] = li
				part.NodeLabels = append(part.NodeLabels, nodeLabel)
				part.Coords = append(part.Coords, node.Coords)
			}
			localNodes = append(localNodes, li)
		}

		gi, ok := groupIndex[format.CellType(cellType)]
		if !ok {
			gi = len(part.Groups)
			groupIndex[format.CellType(cellType)] = gi
			part.Groups = append(part.Groups, cellGroup{Type: format.CellType(cellType)})
		}
		part.Groups[gi].Elements = append(part.Groups[gi].Elements, partElement{Label: elLabel, LocalNodes: localNodes})
	}

	return part, nil
}

// writeGeometryBlock serializes every part's binary block in order (spec
// §4.5 step 3): a "part" header, coordinates block, then one block per
// target cell type with node references rewritten to 1-based local
// indices.
func writeGeometryBlock(w *blockWriter, geom *Geometry) {
	for _, part := range geom.Parts {
		w.writeC80("part")
		w.writeInt32(int32(part.ID))
		w.writeC80(part.Description)
		w.writeC80("coordinates")
		w.writeInt32(int32(len(part.NodeLabels)))

		labels := make([]int32, len(part.NodeLabels))
		for i, l := range part.NodeLabels {
			labels[i] = int32(l)
		}
		w.writeInt32s(labels)

		xs := make([]float64, len(part.Coords))
		ys := make([]float64, len(part.Coords))
		zs := make([]float64, len(part.Coords))
		for i, coord := range part.Coords {
			xs[i], ys[i], zs[i] = coord[0], coord[1], coord[2]
		}
		w.writeFloat32s(xs)
		w.writeFloat32s(ys)
		w.writeFloat32s(zs)

		for _, group := range part.Groups {
			w.writeC80(string(group.Type))
			w.writeInt32(int32(len(group.Elements)))

			elLabels := make([]int32, len(group.Elements))
			for i, el := range group.Elements {
				elLabels[i] = int32(el.Label)
			}
			w.writeInt32s(elLabels)

			for _, el := range group.Elements {
				nodes := make([]int32, len(el.LocalNodes))
				for i, n := range el.LocalNodes {
					nodes[i] = int32(n + 1)
				}
				w.writeInt32s(nodes)
			}
		}
	}
}

// buildNodeSetPart turns a node set directly into a part: the node list is
// the set itself (spec §4.5 step 2), and each node becomes a synthesized
// single-node element of the "node" target cell type (plan.ElementTypeMap
// defaults that to "point", spec §4.4's implicit entry), labeled by its
// 1-based position in the set.
func buildNodeSetPart(store *model.Store, plan *planner.Plan, set *model.LabelSet, partID int) (*Part, error) {
	part := &Part{ID: partID, Description: "NSET_" + set.Name, IsNodeSet: true}

	cellType, ok := plan.ElementTypeMap["node"]
	if !ok {
		cellType = string(format.CellPoint)
	}
	group := cellGroup{Type: format.CellType(cellType)}

	for i, nodeLabel := range set.Labels {
		node, ok := store.Node(nodeLabel)
		if !ok {
			return nil, fmt.Errorf("%w: node set %q references undefined node %d", errs.ErrConfigError, set.Name, nodeLabel)
		}
		part.NodeLabels = append(part.NodeLabels, nodeLabel)
		part.Coords = append(part.Coords, node.Coords)
		group.Elements = append(group.Elements, partElement{Label: int64(i + 1), LocalNodes: []int{i}})
	}
	part.Groups = append(part.Groups, group)

	return part, nil
}
