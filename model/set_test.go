package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelSet_Append(t *testing.T) {
	s := &LabelSet{Name: "PART1"}
	s.Append(1, 2)
	s.Append(3)
	assert.Equal(t, []int64{1, 2, 3}, s.Labels)
}
