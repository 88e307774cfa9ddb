package planner

import (
	"fmt"

	"github.com/opencae/fil2ensight/errs"
)

// Plan is the compiled result of Build: the per-node and per-element job
// lists the extraction engine drives at every increment commit, plus the
// element-shape and ignore-last-nodes lookups the extraction engine and
// writer need
// (spec §4.4, §6.3).
type Plan struct {
	PerNodeJobs    map[string]*ExportJob
	PerElementJobs map[string]*ExportJob

	// ElementTypeMap maps an element-type label read from the .fil stream
	// (e.g. "C3D8") to the EnSight cell shape it should be written as.
	ElementTypeMap map[string]string

	// IgnoreLastNodesMap maps an element-type label to the count of
	// trailing node labels that are not true geometric nodes (dummy nodes
	// on some UEL definitions) and must be dropped from connectivity.
	IgnoreLastNodesMap map[string]int

	SubstituteElSets map[string][]int64

	QPUnpack        []QPUnpackEntry
	AverageOverQP    []AverageEntry
	DiscardTimeMarks bool
}

// Build validates cfg and compiles it into a Plan. Every reference between
// config sections (a job entry naming a job that was never declared, a
// second entry for the same set in one job) is checked here, once, so the extraction
// engine never has to guard against a malformed configuration mid-run.
func Build(cfg *Config) (*Plan, error) {
	plan := &Plan{
		PerNodeJobs:    make(map[string]*ExportJob),
		PerElementJobs: make(map[string]*ExportJob),
		// "node" -> "point" is implicit: a plain node, not a true element,
		// still needs a cell type when it is written into a part (spec
		// §4.4).
		ElementTypeMap:     map[string]string{"node": "point"},
		IgnoreLastNodesMap: make(map[string]int),
		SubstituteElSets:   make(map[string][]int64),
		DiscardTimeMarks:   cfg.DiscardTimeMarks,
	}

	for _, e := range cfg.DefineElementType {
		if e.Element == "" || e.Shape == "" {
			return nil, fmt.Errorf("%w: defineElementType requires element and shape", errs.ErrConfigError)
		}
		plan.ElementTypeMap[e.Element] = e.Shape
	}

	for _, e := range cfg.IgnoreLastNodesForElementType {
		if e.Number < 0 {
			return nil, fmt.Errorf("%w: ignoreLastNodesForElementType %q: negative count", errs.ErrConfigError, e.Element)
		}
		plan.IgnoreLastNodesMap[e.Element] = e.Number
	}

	for _, e := range cfg.SubstituteElSet {
		if e.ElSet == "" {
			return nil, fmt.Errorf("%w: substituteElSet requires an elSet name", errs.ErrConfigError)
		}
		plan.SubstituteElSets[e.ElSet] = append(plan.SubstituteElSets[e.ElSet], e.Data...)
	}

	plan.QPUnpack = cfg.UELSDVToQuadraturePoints
	plan.AverageOverQP = cfg.ComputeAverageOverQuadraturePoints

	for _, jobDef := range cfg.EnsightPerNodeVariableJob {
		if jobDef.Name == "" {
			return nil, fmt.Errorf("%w: ensightPerNodeVariableJob requires a name", errs.ErrConfigError)
		}
		if _, exists := plan.PerNodeJobs[jobDef.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate per-node job %q", errs.ErrConfigError, jobDef.Name)
		}
		timeSet := jobDef.TimeSet
		if timeSet == 0 {
			timeSet = 1
		}
		plan.PerNodeJobs[jobDef.Name] = newExportJob(jobDef.Name, jobDef.Dimensions, timeSet)
	}

	for _, jobDef := range cfg.EnsightPerElementVariableJob {
		if jobDef.Name == "" {
			return nil, fmt.Errorf("%w: ensightPerElementVariableJob requires a name", errs.ErrConfigError)
		}
		if _, exists := plan.PerElementJobs[jobDef.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate per-element job %q", errs.ErrConfigError, jobDef.Name)
		}
		timeSet := jobDef.TimeSet
		if timeSet == 0 {
			timeSet = 1
		}
		plan.PerElementJobs[jobDef.Name] = newExportJob(jobDef.Name, jobDef.Dimensions, timeSet)
	}

	for _, entryDef := range cfg.EnsightPerNodeVariableJobEntry {
		if err := addPerNodeEntry(plan, entryDef); err != nil {
			return nil, err
		}
	}

	for _, entryDef := range cfg.EnsightPerElementVariableJobEntry {
		if err := addPerElementEntry(plan, entryDef); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func addPerNodeEntry(plan *Plan, def PerNodeJobEntryEntry) error {
	job, ok := plan.PerNodeJobs[def.Job]
	if !ok {
		return fmt.Errorf("%w: ensightPerNodeVariableJobEntry references unknown job %q", errs.ErrConfigError, def.Job)
	}
	if def.Set == "" || def.Result == "" {
		return fmt.Errorf("%w: ensightPerNodeVariableJobEntry for job %q requires set and result", errs.ErrConfigError, def.Job)
	}

	setKind, err := parseSetKind(def.SetType, NSetKind)
	if err != nil {
		return err
	}

	entry := &Entry{SetName: def.Set, SetKind: setKind, Result: def.Result, FillMissingValuesTo: def.FillMissingValuesTo}

	// Resolved Open Question (spec §9): per-node extraction order is
	// slice, then expression, then fill — both Slice and Expression are
	// honored when given, and fill always applies last, regardless of
	// declaration order in the config.
	if def.Values != "" {
		sl, err := ParseSlice(def.Values)
		if err != nil {
			return err
		}
		entry.Slice = &sl
	}
	if def.Expression != "" {
		expr, err := CompileExpression(def.Expression)
		if err != nil {
			return err
		}
		entry.Expression = expr
	}

	if _, exists := job.Entries[def.Set]; exists {
		return fmt.Errorf("%w: job %q already has an entry for set %q", errs.ErrConfigError, def.Job, def.Set)
	}
	job.Entries[def.Set] = entry
	return nil
}

func addPerElementEntry(plan *Plan, def PerElementJobEntryEntry) error {
	job, ok := plan.PerElementJobs[def.Job]
	if !ok {
		return fmt.Errorf("%w: ensightPerElementVariableJobEntry references unknown job %q", errs.ErrConfigError, def.Job)
	}
	if def.Set == "" || def.Result == "" {
		return fmt.Errorf("%w: ensightPerElementVariableJobEntry for job %q requires set and result", errs.ErrConfigError, def.Job)
	}
	if def.Location != "qps" && def.Location != "computed" && def.Location != "" {
		return fmt.Errorf("%w: ensightPerElementVariableJobEntry for job %q has unknown location %q", errs.ErrConfigError, def.Job, def.Location)
	}

	setKind, err := parseSetKind(def.SetType, ElSetKind)
	if err != nil {
		return err
	}

	entry := &Entry{SetName: def.Set, SetKind: setKind, Result: def.Result, Location: def.Location, Which: def.Which}

	// Resolved Open Question (spec §9): per-element extraction order is
	// offset (Which, applied by the extraction engine against the raw
	// quadrature-point layout), then slice, then expression.
	if def.Values != "" {
		sl, err := ParseSlice(def.Values)
		if err != nil {
			return err
		}
		entry.Slice = &sl
	}
	if def.Expression != "" {
		expr, err := CompileExpression(def.Expression)
		if err != nil {
			return err
		}
		entry.Expression = expr
	}

	if _, exists := job.Entries[def.Set]; exists {
		return fmt.Errorf("%w: job %q already has an entry for set %q", errs.ErrConfigError, def.Job, def.Set)
	}
	job.Entries[def.Set] = entry
	return nil
}

func parseSetKind(setType string, def SetKind) (SetKind, error) {
	switch setType {
	case "":
		return def, nil
	case "nSet":
		return NSetKind, nil
	case "elSet":
		return ElSetKind, nil
	default:
		return 0, fmt.Errorf("%w: unknown setType %q", errs.ErrConfigError, setType)
	}
}
