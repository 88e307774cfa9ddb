package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrementResults_ElementResultFor_CreatesOnDemand(t *testing.T) {
	r := newIncrementResults()
	er := r.ElementResultFor("SDV", "ALL", "C3D8", 10)
	require.NotNil(t, er)

	er2 := r.ElementResultFor("SDV", "ALL", "C3D8", 10)
	assert.Same(t, er, er2, "repeated access must return the same entry")
}

func TestElementResult_AppendQps_Concatenates(t *testing.T) {
	er := newElementResult()
	er.AppendQps(1, []float64{1, 2})
	er.AppendQps(1, []float64{3, 4})

	assert.Equal(t, []float64{1, 2, 3, 4}, er.Qps[1])
}

func TestIncrementResults_AppendNodeResult_Concatenates(t *testing.T) {
	r := newIncrementResults()
	r.AppendNodeResult("U", 1, []float64{0, 0})
	r.AppendNodeResult("U", 1, []float64{1})

	assert.Equal(t, []float64{0, 0, 1}, r.Nodes["U"][1])
}

func TestNewEnergySummary(t *testing.T) {
	values := make([]float64, len(energyFieldNames))
	for i := range values {
		values[i] = float64(i)
	}

	s := NewEnergySummary(values)
	assert.Equal(t, float64(0), s.Values["ALLKE"])
	assert.Equal(t, float64(len(energyFieldNames)-1), s.Values["ALLHF"])
}

func TestNewEnergySummary_ShortInput(t *testing.T) {
	s := NewEnergySummary([]float64{1, 2})
	assert.Equal(t, float64(1), s.Values["ALLKE"])
	assert.Equal(t, float64(2), s.Values["ALLSE"])
	assert.Len(t, s.Values, 2)
}
