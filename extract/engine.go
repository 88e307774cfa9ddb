package extract

import (
	"fmt"
	"strings"

	"github.com/opencae/fil2ensight/fil"
	"github.com/opencae/fil2ensight/format"
	"github.com/opencae/fil2ensight/model"
	"github.com/opencae/fil2ensight/planner"
)

// Writer is the subset of the EnSight writer the extraction engine drives:
// one geometry emission at the end of model setup, and one commit per
// closed increment (spec §4.3, §4.5).
type Writer interface {
	EmitGeometry(store *model.Store) error
	CommitIncrement(store *model.Store, inc *model.Increment) error
}

// Engine interprets decoded records as commands against a model store,
// dispatching on record type the way spec §4.3's table prescribes.
type Engine struct {
	store  *model.Store
	plan   *planner.Plan
	writer Writer

	state  State
	cursor ParseCursor

	geometryEmitted bool
	lastEnergy      *model.EnergySummary
}

// NewEngine builds an engine ready to consume a record stream from the
// start of a .fil file (state model_setup).
func NewEngine(store *model.Store, plan *planner.Plan, writer Writer) *Engine {
	return &Engine{store: store, plan: plan, writer: writer, state: StateModelSetup}
}

// State reports the engine's current state.
func (e *Engine) State() State { return e.state }

// LastEnergySummary returns the most recently reported energy summary
// (type 1999), if any (spec §9 SUPPLEMENTED FEATURES: energy summaries are
// reported, never interpreted).
func (e *Engine) LastEnergySummary() (model.EnergySummary, bool) {
	if e.lastEnergy == nil {
		return model.EnergySummary{}, false
	}
	return *e.lastEnergy, true
}

// Handle dispatches one decoded record (spec §4.3's dispatch table).
func (e *Engine) Handle(rec fil.Record) error {
	// The state transition for startIncrement happens before the record
	// is otherwise handled, so a following endIncrement can tell apart
	// "first commit out of model setup" from "ordinary increment commit"
	// (spec §4.3).
	if rec.Type == format.RecordStartIncrement {
		e.state = StateIncrementParsing
	}

	switch rec.Type {
	case format.RecordElementHeader:
		e.handleElementHeader(rec)
	case format.RecordSDVOutput, format.RecordSOutput, format.RecordEOutput,
		format.RecordPEOutput, format.RecordLEOutput:
		e.handleElementOutput(rec)
	case format.RecordLocalCoordSys:
		// ignored (spec §4.3 type 85)
	case format.RecordUOutput, format.RecordVOutput, format.RecordAOutput,
		format.RecordRFOutput, format.RecordPOROutput, format.RecordNTOutput:
		e.handleNodeOutput(rec)
	case format.RecordSurfaceDefHeader:
		e.state = StateSurfaceDefinition
	case format.RecordSurfaceFacet:
		// ignored (spec §4.3 type 1502)
	case format.RecordElementDefinition:
		e.handleElementDefinition(rec)
	case format.RecordNodeDefinition:
		e.handleNodeDefinition(rec)
	case format.RecordActiveDOF:
		// ignored (spec §4.3 type 1902)
	case format.RecordHeading:
		e.handleHeading(rec)
	case format.RecordHeadingCont:
		// ignored: the heading layout this module reads (spec §9
		// SUPPLEMENTED FEATURES) fits in the single 1921 record.
	case format.RecordNodeSetDefinition:
		e.handleSetDefinition(rec, DefSetNode)
	case format.RecordNodeSetDefinitionCont:
		e.handleSetContinuation(rec, DefSetNode)
	case format.RecordElSetDefinition:
		e.handleSetDefinition(rec, DefSetElement)
	case format.RecordElSetDefinitionCont:
		e.handleSetContinuation(rec, DefSetElement)
	case format.RecordLabelCrossReference:
		e.handleLabelCrossReference(rec)
	case format.RecordEnergySummary:
		e.handleEnergySummary(rec)
	case format.RecordOutputDefinition:
		e.handleOutputDefinition(rec)
	case format.RecordStartIncrement:
		e.handleStartIncrement(rec)
	case format.RecordEndIncrement:
		return e.handleEndIncrement()
	default:
		model.Warnf("extract: skipping unknown record type %d (length %d)", rec.Type, rec.Length)
	}

	return nil
}

func bodyFloats(body []fil.Word) []float64 {
	values := make([]float64, len(body))
	for i, w := range body {
		values[i] = w.AsF64()
	}
	return values
}

func (e *Engine) handleElementHeader(rec fil.Record) {
	if len(rec.Body) < 2 {
		return
	}
	e.cursor.CurrentElement = rec.Body[0].AsInt64()
	e.cursor.CurrentIpt = int(rec.Body[1].AsFlag())
}

func (e *Engine) handleElementOutput(rec fil.Record) {
	name, ok := format.PerElementOutputName(rec.Type)
	if !ok {
		return
	}
	inc := e.store.CurrentIncrement()
	if inc == nil {
		return
	}
	result := inc.Results.ElementResultFor(name, e.cursor.CurrentSet, e.cursor.CurrentShape, e.cursor.CurrentElement)
	result.AppendQps(e.cursor.CurrentIpt, bodyFloats(rec.Body))
}

func (e *Engine) handleNodeOutput(rec fil.Record) {
	if len(rec.Body) < 1 {
		return
	}
	name, ok := format.PerNodeOutputName(rec.Type)
	if !ok {
		return
	}
	inc := e.store.CurrentIncrement()
	if inc == nil {
		return
	}
	nodeLabel := rec.Body[0].AsInt64()
	inc.Results.AppendNodeResult(name, nodeLabel, bodyFloats(rec.Body[1:]))
}

func (e *Engine) handleElementDefinition(rec fil.Record) {
	if len(rec.Body) < 2 {
		return
	}
	label := rec.Body[0].AsInt64()
	shape := rec.Body[1].AsA8()

	nodeLabels := make([]int64, 0, len(rec.Body)-2)
	for _, w := range rec.Body[2:] {
		nodeLabels = append(nodeLabels, w.AsInt64())
	}

	if ignore, ok := e.plan.IgnoreLastNodesMap[shape]; ok && ignore > 0 && ignore < len(nodeLabels) {
		nodeLabels = nodeLabels[:len(nodeLabels)-ignore]
	}

	e.store.AddElement(label, shape, nodeLabels)
}

func (e *Engine) handleNodeDefinition(rec fil.Record) {
	if len(rec.Body) < 1 {
		return
	}
	label := rec.Body[0].AsInt64()

	var coords [3]float64
	for i := 0; i < 3 && i+1 < len(rec.Body); i++ {
		coords[i] = rec.Body[i+1].AsF64()
	}

	e.store.AddNode(label, coords)
}

func (e *Engine) handleHeading(rec fil.Record) {
	if len(rec.Body) < 7 {
		return
	}
	e.store.SetHeading(model.Heading{
		AbaqusRelease: rec.Body[0].AsA8(),
		Date:          rec.Body[1].AsA8() + rec.Body[2].AsA8(),
		Time:          rec.Body[3].AsA8(),
		NElements:     rec.Body[4].AsInt64(),
		NNodes:        rec.Body[5].AsInt64(),
		ElementLength: rec.Body[6].AsF64(),
	})
}

func (e *Engine) handleSetDefinition(rec fil.Record, kind DefSetKind) {
	if len(rec.Body) < 1 {
		return
	}
	rawName := rec.Body[0].AsA8()
	labels := wordsToLabels(rec.Body[1:])

	e.cursor.DefSetName = rawName
	e.cursor.DefSetKind = kind

	if kind == DefSetElement {
		e.store.UpsertElSet(rawName, labels...)
	} else {
		e.store.UpsertNSet(rawName, labels...)
	}
}

func (e *Engine) handleSetContinuation(rec fil.Record, kind DefSetKind) {
	if e.cursor.DefSetKind != kind || e.cursor.DefSetName == "" {
		return
	}
	labels := wordsToLabels(rec.Body)

	if kind == DefSetElement {
		e.store.UpsertElSet(e.cursor.DefSetName, labels...)
	} else {
		e.store.UpsertNSet(e.cursor.DefSetName, labels...)
	}
}

func wordsToLabels(body []fil.Word) []int64 {
	labels := make([]int64, len(body))
	for i, w := range body {
		labels[i] = w.AsInt64()
	}
	return labels
}

func (e *Engine) handleLabelCrossReference(rec fil.Record) {
	if len(rec.Body) < 2 {
		return
	}
	intKey := rec.Body[0].AsInt64()
	// The logical name may be longer than one A8 word; it is carried in all
	// remaining body words, space-padded on the right.
	var name strings.Builder
	for _, w := range rec.Body[1:] {
		name.Write(w[:])
	}
	logicalName := strings.TrimRight(name.String(), " ")
	e.store.DefineAlias(intKey, logicalName)
}

func (e *Engine) handleEnergySummary(rec fil.Record) {
	summary := model.NewEnergySummary(bodyFloats(rec.Body))
	e.lastEnergy = &summary
}

func (e *Engine) handleOutputDefinition(rec fil.Record) {
	if len(rec.Body) < 2 {
		return
	}
	e.cursor.CurrentSet = e.store.ResolveSetName(rec.Body[0].AsA8())
	e.cursor.CurrentShape = rec.Body[1].AsA8()
}

func (e *Engine) handleStartIncrement(rec fil.Record) {
	if len(rec.Body) < 5 {
		e.store.OpenIncrement(0, 0, 0, 0, 0)
		return
	}
	e.store.OpenIncrement(
		rec.Body[0].AsF64(),
		rec.Body[1].AsF64(),
		int64(rec.Body[2].AsFlag()),
		int64(rec.Body[3].AsFlag()),
		rec.Body[4].AsF64(),
	)
}

func (e *Engine) handleEndIncrement() error {
	switch e.state {
	case StateModelSetup:
		if e.geometryEmitted {
			return nil
		}
		e.store.CommitSetup(e.plan.SubstituteElSets)
		if err := e.writer.EmitGeometry(e.store); err != nil {
			return fmt.Errorf("extract: emit geometry: %w", err)
		}
		e.geometryEmitted = true
		return nil

	case StateSurfaceDefinition:
		// No-op (spec §4.3): a surface definition's endIncrement neither
		// commits the mesh nor an increment. Surface definitions only
		// occur within model setup, so control returns there.
		e.state = StateModelSetup
		return nil

	case StateIncrementParsing:
		if err := runDerivedJobs(e.store, e.plan); err != nil {
			return err
		}
		inc := e.store.CurrentIncrement()
		if inc == nil {
			return nil
		}
		if err := e.writer.CommitIncrement(e.store, inc); err != nil {
			return fmt.Errorf("extract: commit increment: %w", err)
		}
		e.store.CloseIncrement()
		return nil

	default:
		return nil
	}
}

// MarkDone transitions the engine to its terminal state once the reader has
// signalled a clean end of input.
func (e *Engine) MarkDone() {
	e.state = StateDone
}
