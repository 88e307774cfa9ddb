package format

// CellType is an EnSight Gold unstructured element type name, the target a
// solver shape string (spec §3 "Element definition") is mapped to via
// configuration (spec §6.3 *defineElementType).
type CellType string

// The EnSight Gold unstructured cell types this module is prepared to
// write. Arity is the number of node references the writer emits per
// element of that type (spec §4.5).
const (
	CellPoint    CellType = "point"
	CellBar2     CellType = "bar2"
	CellBar3     CellType = "bar3"
	CellTria3    CellType = "tria3"
	CellTria6    CellType = "tria6"
	CellQuad4    CellType = "quad4"
	CellQuad8    CellType = "quad8"
	CellTetra4   CellType = "tetra4"
	CellTetra10  CellType = "tetra10"
	CellPyramid5 CellType = "pyramid5"
	CellPyramid13 CellType = "pyramid13"
	CellPenta6   CellType = "penta6"
	CellPenta15  CellType = "penta15"
	CellHexa8    CellType = "hexa8"
	CellHexa20   CellType = "hexa20"
)

// cellArity is the number of node references EnSight Gold expects per
// element of a given cell type.
var cellArity = map[CellType]int{
	CellPoint:     1,
	CellBar2:      2,
	CellBar3:      3,
	CellTria3:     3,
	CellTria6:     6,
	CellQuad4:     4,
	CellQuad8:     8,
	CellTetra4:    4,
	CellTetra10:   10,
	CellPyramid5:  5,
	CellPyramid13: 13,
	CellPenta6:    6,
	CellPenta15:   15,
	CellHexa8:     8,
	CellHexa20:    20,
}

// Arity reports the number of node references EnSight Gold expects per
// element of this cell type, and whether the type is a recognized one.
func (c CellType) Arity() (int, bool) {
	n, ok := cellArity[c]
	return n, ok
}

// VariableKind names the line-prefix the .case file uses for a variable
// trend of the given dimensionality and placement (spec §4.5, "VARIABLE"
// section).
func VariableKind(dimensions int, perElement bool) (string, bool) {
	var table map[int]string
	if perElement {
		table = perElementVariableKinds
	} else {
		table = perNodeVariableKinds
	}
	kind, ok := table[dimensions]
	return kind, ok
}

var perNodeVariableKinds = map[int]string{
	1: "scalar per node",
	3: "vector per node",
	6: "tensor per node",
	9: "tensor9 per node",
}

var perElementVariableKinds = map[int]string{
	1: "scalar per element",
	3: "vector per element",
	6: "tensor per element",
	9: "tensor9 per element",
}
