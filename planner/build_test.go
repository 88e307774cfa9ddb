package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ElementTypeAndIgnoreLastNodes(t *testing.T) {
	cfg := &Config{
		DefineElementType:             []ElementTypeEntry{{Element: "U1", Shape: "C3D8"}},
		IgnoreLastNodesForElementType: []IgnoreLastNodesEntry{{Element: "U1", Number: 2}},
	}
	plan, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, "C3D8", plan.ElementTypeMap["U1"])
	assert.Equal(t, "point", plan.ElementTypeMap["node"])
	assert.Equal(t, 2, plan.IgnoreLastNodesMap["U1"])
}

func TestBuild_SubstituteElSetMergesAcrossEntries(t *testing.T) {
	cfg := &Config{
		SubstituteElSet: []SubstituteElSetEntry{
			{ElSet: "CUSTOM", Data: []int64{1, 2}},
			{ElSet: "CUSTOM", Data: []int64{3}},
		},
	}
	plan, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, plan.SubstituteElSets["CUSTOM"])
}

func TestBuild_PerNodeJobWithSlice(t *testing.T) {
	cfg := &Config{
		EnsightPerNodeVariableJob: []PerNodeJobEntry{{Name: "displacement", Dimensions: 3}},
		EnsightPerNodeVariableJobEntry: []PerNodeJobEntryEntry{
			{Job: "displacement", Set: "ALL", Result: "U", Values: "0:3"},
		},
	}
	plan, err := Build(cfg)
	require.NoError(t, err)

	job, ok := plan.PerNodeJobs["displacement"]
	require.True(t, ok)
	assert.Equal(t, 3, job.Dimensions)
	assert.Equal(t, 1, job.TimeSetID)

	entry, ok := job.Entries["ALL"]
	require.True(t, ok)
	assert.Equal(t, NSetKind, entry.SetKind)
	require.NotNil(t, entry.Slice)
	assert.Equal(t, Slice{Start: 0, End: 3}, *entry.Slice)
}

func TestBuild_PerNodeJobFillAppliesAlongsideSlice(t *testing.T) {
	fill := 0.0
	cfg := &Config{
		EnsightPerNodeVariableJob: []PerNodeJobEntry{{Name: "displacement", Dimensions: 3}},
		EnsightPerNodeVariableJobEntry: []PerNodeJobEntryEntry{
			{Job: "displacement", Set: "TOP", Result: "U", Values: "0:3", FillMissingValuesTo: &fill},
		},
	}
	plan, err := Build(cfg)
	require.NoError(t, err)

	entry := plan.PerNodeJobs["displacement"].Entries["TOP"]
	require.NotNil(t, entry.FillMissingValuesTo)
	assert.Equal(t, 0.0, *entry.FillMissingValuesTo)
	require.NotNil(t, entry.Slice)
}

func TestBuild_PerElementJobWithQpsLocation(t *testing.T) {
	cfg := &Config{
		EnsightPerElementVariableJob: []PerElementJobEntry{{Name: "stress", Dimensions: 6}},
		EnsightPerElementVariableJobEntry: []PerElementJobEntryEntry{
			{Job: "stress", Set: "ALL", Result: "S", Location: "qps", Which: "0"},
		},
	}
	plan, err := Build(cfg)
	require.NoError(t, err)

	entry := plan.PerElementJobs["stress"].Entries["ALL"]
	assert.Equal(t, "qps", entry.Location)
	assert.Equal(t, "0", entry.Which)
	assert.Equal(t, ElSetKind, entry.SetKind)
}

func TestBuild_PerElementJobWithExpression(t *testing.T) {
	cfg := &Config{
		EnsightPerElementVariableJob: []PerElementJobEntry{{Name: "vonmises", Dimensions: 1}},
		EnsightPerElementVariableJobEntry: []PerElementJobEntryEntry{
			{Job: "vonmises", Set: "ALL", Result: "S", Location: "computed", Which: "average", Expression: "mean(x)"},
		},
	}
	plan, err := Build(cfg)
	require.NoError(t, err)

	entry := plan.PerElementJobs["vonmises"].Entries["ALL"]
	require.NotNil(t, entry.Expression)
	out, err := entry.Expression.Eval([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, out)
}

func TestBuild_UnknownJobReferenceRejected(t *testing.T) {
	cfg := &Config{
		EnsightPerNodeVariableJobEntry: []PerNodeJobEntryEntry{
			{Job: "missing", Set: "ALL", Result: "U"},
		},
	}
	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuild_DuplicateJobNameRejected(t *testing.T) {
	cfg := &Config{
		EnsightPerNodeVariableJob: []PerNodeJobEntry{
			{Name: "displacement", Dimensions: 3},
			{Name: "displacement", Dimensions: 3},
		},
	}
	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuild_DuplicateSetEntryRejected(t *testing.T) {
	cfg := &Config{
		EnsightPerNodeVariableJob: []PerNodeJobEntry{{Name: "displacement", Dimensions: 3}},
		EnsightPerNodeVariableJobEntry: []PerNodeJobEntryEntry{
			{Job: "displacement", Set: "ALL", Result: "U"},
			{Job: "displacement", Set: "ALL", Result: "U"},
		},
	}
	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuild_InvalidLocationRejected(t *testing.T) {
	cfg := &Config{
		EnsightPerElementVariableJob: []PerElementJobEntry{{Name: "stress", Dimensions: 6}},
		EnsightPerElementVariableJobEntry: []PerElementJobEntryEntry{
			{Job: "stress", Set: "ALL", Result: "S", Location: "bogus"},
		},
	}
	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuild_UnknownSetTypeRejected(t *testing.T) {
	cfg := &Config{
		EnsightPerNodeVariableJob: []PerNodeJobEntry{{Name: "displacement", Dimensions: 3}},
		EnsightPerNodeVariableJobEntry: []PerNodeJobEntryEntry{
			{Job: "displacement", Set: "ALL", Result: "U", SetType: "bogus"},
		},
	}
	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuild_DiscardTimeMarksPassthrough(t *testing.T) {
	cfg := &Config{DiscardTimeMarks: true}
	plan, err := Build(cfg)
	require.NoError(t, err)
	assert.True(t, plan.DiscardTimeMarks)
}
