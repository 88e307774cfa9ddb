package extract

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencae/fil2ensight/endian"
	"github.com/opencae/fil2ensight/fil"
	"github.com/opencae/fil2ensight/format"
	"github.com/opencae/fil2ensight/model"
	"github.com/opencae/fil2ensight/planner"
)

var le = endian.GetLittleEndianEngine()

func wordInt64(v int64) fil.Word {
	var w fil.Word
	le.PutUint64(w[:], uint64(v))
	return w
}

func wordF64(v float64) fil.Word {
	var w fil.Word
	le.PutUint64(w[:], math.Float64bits(v))
	return w
}

func wordA8(s string) fil.Word {
	var w fil.Word
	copy(w[:], []byte(s+"        ")[:8])
	return w
}

func wordFlag(v int32) fil.Word {
	var w fil.Word
	le.PutUint32(w[:4], uint32(v))
	return w
}

type fakeWriter struct {
	geometryCalls int
	committed     []*model.Increment
}

func (f *fakeWriter) EmitGeometry(store *model.Store) error {
	f.geometryCalls++
	return nil
}

func (f *fakeWriter) CommitIncrement(store *model.Store, inc *model.Increment) error {
	f.committed = append(f.committed, inc)
	return nil
}

func newTestEngine() (*Engine, *model.Store, *fakeWriter) {
	store := model.NewStore()
	plan := &planner.Plan{
		ElementTypeMap:     map[string]string{},
		IgnoreLastNodesMap: map[string]int{},
		SubstituteElSets:   map[string][]int64{},
	}
	writer := &fakeWriter{}
	return NewEngine(store, plan, writer), store, writer
}

func TestEngine_NodeAndElementDefinition(t *testing.T) {
	engine, store, _ := newTestEngine()

	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordNodeDefinition,
		Body: []fil.Word{wordInt64(1), wordF64(0), wordF64(0), wordF64(0)},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordNodeDefinition,
		Body: []fil.Word{wordInt64(2), wordF64(1), wordF64(0), wordF64(0)},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordElementDefinition,
		Body: []fil.Word{wordInt64(10), wordA8("B21"), wordInt64(1), wordInt64(2)},
	}))

	n1, ok := store.Node(1)
	require.True(t, ok)
	assert.Equal(t, [3]float64{0, 0, 0}, n1.Coords)

	el, ok := store.Element(10)
	require.True(t, ok)
	assert.Equal(t, "B21", el.Shape)
	assert.Equal(t, []int64{1, 2}, el.NodeLabels)
}

func TestEngine_IgnoreLastNodesTrimsConnectivity(t *testing.T) {
	engine, store, _ := newTestEngine()
	engine.plan.IgnoreLastNodesMap["U1"] = 1

	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordElementDefinition,
		Body: []fil.Word{wordInt64(5), wordA8("U1"), wordInt64(1), wordInt64(2), wordInt64(3)},
	}))

	el, ok := store.Element(5)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, el.NodeLabels)
}

func TestEngine_AliasResolutionAcrossSetDefinition(t *testing.T) {
	engine, store, _ := newTestEngine()

	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordLabelCrossReference,
		Body: []fil.Word{wordInt64(7), wordA8("LOAD_SUR"), wordA8("FACE")},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordElSetDefinition,
		Body: []fil.Word{wordA8("7"), wordInt64(10)},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordElementDefinition,
		Body: []fil.Word{wordInt64(10), wordA8("B21"), wordInt64(1), wordInt64(2)},
	}))
	require.NoError(t, engine.Handle(fil.Record{Type: format.RecordEndIncrement}))

	_, ok := store.ElSet("7")
	assert.False(t, ok)
	set, ok := store.ElSet("LOAD_SURFACE")
	require.True(t, ok)
	assert.Equal(t, []int64{10}, set.Labels)
}

func TestEngine_EndIncrementInModelSetupEmitsGeometryOnce(t *testing.T) {
	engine, _, writer := newTestEngine()

	require.NoError(t, engine.Handle(fil.Record{Type: format.RecordEndIncrement}))
	assert.Equal(t, 1, writer.geometryCalls)
	assert.Equal(t, StateModelSetup, engine.State())

	require.NoError(t, engine.Handle(fil.Record{Type: format.RecordEndIncrement}))
	assert.Equal(t, 1, writer.geometryCalls, "geometry is emitted only once")
}

func TestEngine_IncrementLifecycleCommitsAndClosesIncrement(t *testing.T) {
	engine, store, writer := newTestEngine()

	require.NoError(t, engine.Handle(fil.Record{Type: format.RecordEndIncrement}))

	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordStartIncrement,
		Body: []fil.Word{wordF64(0.1), wordF64(0.1), wordFlag(1), wordFlag(1), wordF64(0.1)},
	}))
	assert.Equal(t, StateIncrementParsing, engine.State())
	require.NotNil(t, store.CurrentIncrement())

	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordOutputDefinition,
		Body: []fil.Word{wordA8(""), wordA8("B21")},
	}))
	assert.Equal(t, "ALL", engine.cursor.CurrentSet)

	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordUOutput,
		Body: []fil.Word{wordInt64(1), wordF64(0), wordF64(0), wordF64(0)},
	}))

	require.NoError(t, engine.Handle(fil.Record{Type: format.RecordEndIncrement}))

	require.Len(t, writer.committed, 1)
	assert.InDelta(t, 0.1, writer.committed[0].TTotal, 1e-9)
	assert.Equal(t, []float64{0, 0, 0}, writer.committed[0].Results.Nodes["U"][1])
	assert.Nil(t, store.CurrentIncrement())
}

func TestEngine_ElementOutputAccumulatesUnderCursor(t *testing.T) {
	engine, store, _ := newTestEngine()
	require.NoError(t, engine.Handle(fil.Record{Type: format.RecordEndIncrement}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordStartIncrement,
		Body: []fil.Word{wordF64(0.1), wordF64(0.1), wordFlag(1), wordFlag(1), wordF64(0.1)},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordOutputDefinition,
		Body: []fil.Word{wordA8("ALL"), wordA8("C3D8")},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordElementHeader,
		Body: []fil.Word{wordInt64(10), wordFlag(1)},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordSDVOutput,
		Body: []fil.Word{wordF64(1), wordF64(2)},
	}))
	require.NoError(t, engine.Handle(fil.Record{
		Type: format.RecordSDVOutput,
		Body: []fil.Word{wordF64(3), wordF64(4)},
	}))

	result, _, ok := store.CurrentIncrement().Results.FindElementResult("SDV", "ALL", 10)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3, 4}, result.Qps[1])
}

func TestEngine_UnknownRecordTypeIsSkipped(t *testing.T) {
	engine, _, _ := newTestEngine()
	err := engine.Handle(fil.Record{Type: format.RecordType(999999)})
	assert.NoError(t, err)
}

func TestEngine_EnergySummaryIsReported(t *testing.T) {
	engine, _, _ := newTestEngine()
	values := make([]fil.Word, 18)
	for i := range values {
		values[i] = wordF64(float64(i))
	}
	require.NoError(t, engine.Handle(fil.Record{Type: format.RecordEnergySummary, Body: values}))

	summary, ok := engine.LastEnergySummary()
	require.True(t, ok)
	assert.Equal(t, 0.0, summary.Values["ALLKE"])
	assert.Equal(t, 17.0, summary.Values["ALLHF"])
}
