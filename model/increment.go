package model

// ElementResult holds one result's values for one element, keyed either by
// quadrature-point index ("qps") or by a computed string key ("computed"),
// matching the explicit, typed replacement for the source's autovivifying
// nested maps (spec §9).
type ElementResult struct {
	Qps      map[int][]float64
	Computed map[string][]float64
}

func newElementResult() *ElementResult {
	return &ElementResult{
		Qps:      make(map[int][]float64),
		Computed: make(map[string][]float64),
	}
}

// AppendQps concatenates values onto the vector stored at quadrature-point
// index ipt — element-output records may be split across multiple records
// by the emitter, so later payloads extend rather than replace (spec §4.3).
func (r *ElementResult) AppendQps(ipt int, values []float64) {
	r.Qps[ipt] = append(r.Qps[ipt], values...)
}

// IncrementResults is the per-increment result table: element results keyed
// by result name, set name, shape, and element label; node results keyed by
// result name and node label (spec §3, §9).
type IncrementResults struct {
	Elements map[string]map[string]map[string]map[int64]*ElementResult
	Nodes    map[string]map[int64][]float64
}

func newIncrementResults() *IncrementResults {
	return &IncrementResults{
		Elements: make(map[string]map[string]map[string]map[int64]*ElementResult),
		Nodes:    make(map[string]map[int64][]float64),
	}
}

// ElementResultFor returns the ElementResult for (result, set, shape,
// element), creating the nested maps and the entry itself on first access.
func (r *IncrementResults) ElementResultFor(result, set, shape string, element int64) *ElementResult {
	bySet, ok := r.Elements[result]
	if !ok {
		bySet = make(map[string]map[string]map[int64]*ElementResult)
		r.Elements[result] = bySet
	}

	byShape, ok := bySet[set]
	if !ok {
		byShape = make(map[string]map[int64]*ElementResult)
		bySet[set] = byShape
	}

	byElement, ok := byShape[shape]
	if !ok {
		byElement = make(map[int64]*ElementResult)
		byShape[shape] = byElement
	}

	er, ok := byElement[element]
	if !ok {
		er = newElementResult()
		byElement[element] = er
	}

	return er
}

// FindElementResult locates the ElementResult for (result, set, element)
// without knowing the element's shape in advance, returning the shape it was
// found under. Derived-field jobs (spec §4.3) name only a set and a result,
// not a shape, since one element set can span several element shapes.
func (r *IncrementResults) FindElementResult(result, set string, element int64) (*ElementResult, string, bool) {
	bySet, ok := r.Elements[result]
	if !ok {
		return nil, "", false
	}
	byShape, ok := bySet[set]
	if !ok {
		return nil, "", false
	}
	for shape, byElement := range byShape {
		if er, ok := byElement[element]; ok {
			return er, shape, true
		}
	}
	return nil, "", false
}

// AppendNodeResult concatenates values onto the vector stored for (result,
// nodeLabel).
func (r *IncrementResults) AppendNodeResult(result string, nodeLabel int64, values []float64) {
	byNode, ok := r.Nodes[result]
	if !ok {
		byNode = make(map[int64][]float64)
		r.Nodes[result] = byNode
	}
	byNode[nodeLabel] = append(byNode[nodeLabel], values...)
}

// Increment is one committed time step: its solver-reported time bookkeeping
// plus the results accumulated while it was open (spec §3).
type Increment struct {
	TTotal  float64
	TStep   float64
	NStep   int64
	NInc    int64
	TimeInc float64

	Results *IncrementResults
}

func newIncrement() *Increment {
	return &Increment{Results: newIncrementResults()}
}
