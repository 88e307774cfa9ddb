package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PhantomNodePreseeded(t *testing.T) {
	s := NewStore()
	n, ok := s.Node(PhantomNodeLabel)
	require.True(t, ok)
	assert.Equal(t, [3]float64{0, 0, 0}, n.Coords)
}

func TestStore_AddNode_DuplicateKeepsFirst(t *testing.T) {
	s := NewStore()
	s.AddNode(1, [3]float64{0, 0, 0})
	s.AddNode(1, [3]float64{9, 9, 9})

	n, ok := s.Node(1)
	require.True(t, ok)
	assert.Equal(t, [3]float64{0, 0, 0}, n.Coords, "first-seen coordinates must be kept")
}

func TestStore_AddElement_AndAllSetSynthesis(t *testing.T) {
	s := NewStore()
	s.AddNode(1, [3]float64{0, 0, 0})
	s.AddNode(2, [3]float64{1, 0, 0})
	s.AddElement(10, "B21", []int64{1, 2})
	s.AddElement(11, "B21", []int64{2, 1})

	s.CommitSetup(nil)

	all, ok := s.ElSet(AllSetName)
	require.True(t, ok)
	assert.Equal(t, []int64{10, 11}, all.Labels)
}

func TestStore_AliasResolution(t *testing.T) {
	// Scenario S3: a 1940 record maps int 7 -> "LOAD_SURFACE"; a later 1933
	// uses the A8 text "7".
	s := NewStore()
	s.AddElement(1, "S4", []int64{1, 2, 3, 4})
	s.DefineAlias(7, "LOAD_SURFACE")
	s.UpsertElSet("7", 1)

	s.CommitSetup(nil)

	_, rawExists := s.ElSet("7")
	assert.False(t, rawExists, "set must not remain keyed by its alias key")

	resolved, ok := s.ElSet("LOAD_SURFACE")
	require.True(t, ok)
	assert.Equal(t, []int64{1}, resolved.Labels)
}

func TestStore_ResolveSetName_EmptyMeansAll(t *testing.T) {
	s := NewStore()
	assert.Equal(t, AllSetName, s.ResolveSetName(""))
}

func TestStore_CommitSetup_MissingSetMemberIsFiltered(t *testing.T) {
	s := NewStore()
	s.AddElement(1, "S4", []int64{1, 2, 3, 4})
	s.UpsertElSet("PART1", 1, 999) // 999 never defined

	s.CommitSetup(nil)

	set, ok := s.ElSet("PART1")
	require.True(t, ok)
	assert.Equal(t, []int64{1}, set.Labels)
}

func TestStore_CommitSetup_SubstituteElSet(t *testing.T) {
	s := NewStore()
	s.AddElement(5, "S4", []int64{1, 2, 3, 4})

	s.CommitSetup(map[string][]int64{"EXTRA": {5}})

	set, ok := s.ElSet("EXTRA")
	require.True(t, ok)
	assert.Equal(t, []int64{5}, set.Labels)
}

func TestStore_ElSetNamesInOrder(t *testing.T) {
	s := NewStore()
	s.AddElement(1, "S4", []int64{1})
	s.UpsertElSet("B", 1)
	s.UpsertElSet("A", 1)
	s.CommitSetup(nil)

	order := s.ElSetNamesInOrder()
	assert.Equal(t, []string{"B", "A", AllSetName}, order)
}

func TestStore_IncrementLifecycle(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.CurrentIncrement())

	s.OpenIncrement(0.1, 0.1, 1, 1, 0.1)
	inc := s.CurrentIncrement()
	require.NotNil(t, inc)
	assert.Equal(t, 0.1, inc.TTotal)

	s.CloseIncrement()
	assert.Nil(t, s.CurrentIncrement())
}

func TestStore_Heading(t *testing.T) {
	s := NewStore()
	_, ok := s.Heading()
	assert.False(t, ok)

	s.SetHeading(Heading{AbaqusRelease: "2024", NElements: 2, NNodes: 4})
	h, ok := s.Heading()
	require.True(t, ok)
	assert.Equal(t, int64(2), h.NElements)
}
