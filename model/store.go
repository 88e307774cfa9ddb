package model

import "github.com/opencae/fil2ensight/internal/dedup"

// Store owns every node, element definition, set, the label alias table,
// and the currently-open increment. It is the sole mutator of mesh and
// result state (spec §3 "Ownership").
type Store struct {
	nodes     map[int64]*Node
	nodeOrder []int64
	nodeSeen  *dedup.Tracker

	elements     map[int64]*Element
	elementOrder []int64

	elSets    map[string]*LabelSet
	elSetOrder []string
	nSets     map[string]*LabelSet
	nSetOrder []string

	aliases *AliasTable

	heading    *Heading
	committed  bool
	current    *Increment
}

// NewStore creates an empty model store, pre-seeding the phantom node at
// the origin (spec §3, §9 "Phantom node 0").
func NewStore() *Store {
	s := &Store{
		nodes:    make(map[int64]*Node),
		elements: make(map[int64]*Element),
		elSets:   make(map[string]*LabelSet),
		nSets:    make(map[string]*LabelSet),
		aliases:  NewAliasTable(),
		nodeSeen: dedup.NewTracker(),
	}

	s.nodes[PhantomNodeLabel] = &Node{Label: PhantomNodeLabel}
	s.nodeOrder = append(s.nodeOrder, PhantomNodeLabel)
	_ = s.nodeSeen.Track(PhantomNodeLabel)

	return s
}

// AddNode defines a node. A re-definition of an existing label (including
// the phantom label 0) is a non-fatal warning; the first-seen coordinates
// are kept (spec §3, §7 DuplicateNode).
func (s *Store) AddNode(label int64, coords [3]float64) {
	if err := s.nodeSeen.Track(label); err != nil {
		Warnf("model: duplicate node %d, keeping first-seen coordinates", label)
		return
	}

	s.nodes[label] = &Node{Label: label, Coords: coords}
	s.nodeOrder = append(s.nodeOrder, label)
}

// Node looks up a defined node by label.
func (s *Store) Node(label int64) (*Node, bool) {
	n, ok := s.nodes[label]
	return n, ok
}

// AddElement defines an element. Node labels should already have had any
// configured tail-trimming applied by the caller (spec §3 "ignore last N
// nodes").
func (s *Store) AddElement(label int64, shape string, nodeLabels []int64) {
	s.elements[label] = &Element{Label: label, Shape: shape, NodeLabels: nodeLabels}
	s.elementOrder = append(s.elementOrder, label)
}

// Element looks up a defined element by label.
func (s *Store) Element(label int64) (*Element, bool) {
	e, ok := s.elements[label]
	return e, ok
}

// ElementLabelsInOrder returns every defined element label in definition
// order — the basis for the synthesized ALL set.
func (s *Store) ElementLabelsInOrder() []int64 {
	return s.elementOrder
}

// DefineAlias records that intKey stands for logicalName in later A8
// set-name fields (type-1940 records, spec §3 "Label alias table").
func (s *Store) DefineAlias(intKey int64, logicalName string) {
	s.aliases.Define(intKey, logicalName)
}

// ResolveSetName resolves a raw A8 set-name field read from the stream: an
// empty field means "ALL" (spec §4.3, record 1911); otherwise it is passed
// through the alias table, which returns raw unchanged if it is not a known
// alias key.
func (s *Store) ResolveSetName(raw string) string {
	if raw == "" {
		return AllSetName
	}
	return s.aliases.Resolve(raw)
}

// UpsertElSet creates (on first reference) or grows an element set under
// its raw, possibly-aliased name. Alias resolution is deferred to
// CommitSetup (spec §3 "resolution happens once, at model-setup commit").
func (s *Store) UpsertElSet(rawName string, labels ...int64) *LabelSet {
	set, ok := s.elSets[rawName]
	if !ok {
		set = &LabelSet{Name: rawName}
		s.elSets[rawName] = set
		s.elSetOrder = append(s.elSetOrder, rawName)
	}
	set.Append(labels...)
	return set
}

// UpsertNSet is UpsertElSet for node sets.
func (s *Store) UpsertNSet(rawName string, labels ...int64) *LabelSet {
	set, ok := s.nSets[rawName]
	if !ok {
		set = &LabelSet{Name: rawName}
		s.nSets[rawName] = set
		s.nSetOrder = append(s.nSetOrder, rawName)
	}
	set.Append(labels...)
	return set
}

// ElSet looks up a (post-commit, resolved-name) element set.
func (s *Store) ElSet(name string) (*LabelSet, bool) {
	set, ok := s.elSets[name]
	return set, ok
}

// NSet looks up a (post-commit) node set.
func (s *Store) NSet(name string) (*LabelSet, bool) {
	set, ok := s.nSets[name]
	return set, ok
}

// ElSetNamesInOrder returns resolved element-set names in definition order
// — the basis for part-ID assignment (spec §5 "element-set-then-node-set
// definition order").
func (s *Store) ElSetNamesInOrder() []string {
	return s.elSetOrder
}

// NSetNamesInOrder returns resolved node-set names in definition order.
func (s *Store) NSetNamesInOrder() []string {
	return s.nSetOrder
}

// SetHeading records the parsed type-1921 heading record.
func (s *Store) SetHeading(h Heading) {
	s.heading = &h
}

// Heading returns the parsed heading, if one was present in the stream.
func (s *Store) Heading() (Heading, bool) {
	if s.heading == nil {
		return Heading{}, false
	}
	return *s.heading, true
}

// CommitSetup finalises model-setup state: it merges any configured
// substitute element sets (spec §9 SUPPLEMENTED FEATURES
// *substituteElSet), resolves every set name through the alias table,
// drops set members that reference undefined labels (warning once per set,
// spec §7 MissingSetMember), and synthesizes the "ALL" element set. It must
// be called exactly once, at the synthetic end-of-setup commit.
func (s *Store) CommitSetup(substituteElSets map[string][]int64) {
	for name, labels := range substituteElSets {
		set := &LabelSet{Name: name, Labels: append([]int64(nil), labels...)}
		if _, exists := s.elSets[name]; !exists {
			s.elSetOrder = append(s.elSetOrder, name)
		}
		s.elSets[name] = set
	}

	s.elSets, s.elSetOrder = resolveAndValidate(s.elSets, s.elSetOrder, s.aliases, s.elementExists)
	s.nSets, s.nSetOrder = resolveAndValidate(s.nSets, s.nSetOrder, s.aliases, s.nodeExists)

	allSet := &LabelSet{Name: AllSetName, Labels: append([]int64(nil), s.elementOrder...)}
	if _, exists := s.elSets[AllSetName]; !exists {
		s.elSetOrder = append(s.elSetOrder, AllSetName)
	}
	s.elSets[AllSetName] = allSet

	s.committed = true
}

// Committed reports whether CommitSetup has run.
func (s *Store) Committed() bool {
	return s.committed
}

func (s *Store) elementExists(label int64) bool {
	_, ok := s.elements[label]
	return ok
}

func (s *Store) nodeExists(label int64) bool {
	_, ok := s.nodes[label]
	return ok
}

// resolveAndValidate rekeys sets from their raw (possibly-aliased) names to
// resolved logical names, merging sets that alias to the same logical name,
// and drops members that fail exists.
func resolveAndValidate(sets map[string]*LabelSet, order []string, aliases *AliasTable, exists func(int64) bool) (map[string]*LabelSet, []string) {
	resolved := make(map[string]*LabelSet, len(sets))
	var resolvedOrder []string

	for _, rawName := range order {
		set := sets[rawName]
		logicalName := aliases.Resolve(rawName)

		known := make([]int64, 0, len(set.Labels))
		missing := 0
		for _, label := range set.Labels {
			if exists(label) {
				known = append(known, label)
			} else {
				missing++
			}
		}
		if missing > 0 {
			Warnf("model: set %q references %d unknown label(s); continuing with the known ones", logicalName, missing)
		}

		if existing, ok := resolved[logicalName]; ok {
			existing.Labels = append(existing.Labels, known...)
			continue
		}

		resolved[logicalName] = &LabelSet{Name: logicalName, Labels: known}
		resolvedOrder = append(resolvedOrder, logicalName)
	}

	return resolved, resolvedOrder
}

// OpenIncrement starts a new increment, discarding any previous one that
// was not explicitly closed (spec §3 "Increment" lifecycle).
func (s *Store) OpenIncrement(tTotal, tStep float64, nStep, nInc int64, timeInc float64) {
	inc := newIncrement()
	inc.TTotal = tTotal
	inc.TStep = tStep
	inc.NStep = nStep
	inc.NInc = nInc
	inc.TimeInc = timeInc
	s.current = inc
}

// CurrentIncrement returns the open increment, or nil if none is open.
func (s *Store) CurrentIncrement() *Increment {
	return s.current
}

// CloseIncrement drops the currently open increment. The caller (the
// extraction engine) must have already run derived-field jobs and handed
// the increment to the writer before calling this (spec §4.3).
func (s *Store) CloseIncrement() {
	s.current = nil
}
