package ensight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeSet_AppendOnlyStrictlyIncreasing(t *testing.T) {
	ts := newTimeSet(1)
	ts.Append(0.1)
	ts.Append(0.2)
	ts.Append(0.2)
	ts.Append(0.15)
	ts.Append(0.3)

	assert.Equal(t, []float64{0.1, 0.2, 0.3}, ts.Values)
	assert.Equal(t, 3, ts.Steps())
}
