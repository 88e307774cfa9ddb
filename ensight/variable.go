package ensight

import (
	"fmt"
	"strconv"

	"github.com/opencae/fil2ensight/errs"
	"github.com/opencae/fil2ensight/model"
	"github.com/opencae/fil2ensight/planner"
)

// extractPerNodeRow resolves one node's value row for a per-node export
// entry, applying the resolved extraction order (spec §9 Open Question):
// slice, then expression, then fill. A node with no stored result, or a
// result narrower than dimensions, is only ever tolerated when the entry
// configures fillMissingValuesTo (spec §8.7 "Fill-missing law"); otherwise
// it is the fatal MissingResultForEntry / ResultShapeMismatch condition
// spec §7 names.
func extractPerNodeRow(inc *model.Increment, entry *planner.Entry, dimensions int, nodeLabel int64) ([]float64, error) {
	byNode := inc.Results.Nodes[entry.Result]
	var row []float64
	if raw, ok := byNode[nodeLabel]; ok {
		row = append([]float64(nil), raw...)
	}

	if row != nil && entry.Slice != nil {
		row = entry.Slice.Apply(row)
	}
	if row != nil && entry.Expression != nil {
		out, err := entry.Expression.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("ensight: result %q node %d: %w", entry.Result, nodeLabel, err)
		}
		row = out
	}

	if row == nil {
		if entry.FillMissingValuesTo == nil {
			return nil, fmt.Errorf("%w: result %q set %q has no value for node %d", errs.ErrMissingResultForEntry, entry.Result, entry.SetName, nodeLabel)
		}
		return filledRow(dimensions, *entry.FillMissingValuesTo), nil
	}

	switch {
	case len(row) == dimensions:
		return row, nil
	case len(row) < dimensions:
		if entry.FillMissingValuesTo == nil {
			return nil, fmt.Errorf("%w: result %q set %q node %d has width %d, job wants %d", errs.ErrResultShapeMismatch, entry.Result, entry.SetName, nodeLabel, len(row), dimensions)
		}
		padded := make([]float64, dimensions)
		copy(padded, row)
		for k := len(row); k < dimensions; k++ {
			padded[k] = *entry.FillMissingValuesTo
		}
		return padded, nil
	default:
		return nil, fmt.Errorf("%w: result %q set %q node %d has width %d, job wants %d", errs.ErrResultShapeMismatch, entry.Result, entry.SetName, nodeLabel, len(row), dimensions)
	}
}

// extractPerElementRow resolves one element's value row for a per-element
// export entry, applying the resolved extraction order (spec §9 Open
// Question): offset (Which, selecting a quadrature-point vector or a
// computed key), then slice, then expression. Per-element entries never
// carry fillMissingValuesTo (spec §4.4), so any missing or mismatched
// result is always fatal.
func extractPerElementRow(inc *model.Increment, entry *planner.Entry, dimensions int, elementLabel int64) ([]float64, error) {
	result, _, ok := inc.Results.FindElementResult(entry.Result, entry.SetName, elementLabel)

	var row []float64
	if ok {
		switch entry.Location {
		case "qps":
			which, err := strconv.Atoi(entry.Which)
			if err != nil {
				return nil, fmt.Errorf("%w: per-element entry which=%q is not an integer quadrature-point index", errs.ErrConfigError, entry.Which)
			}
			if v, ok := result.Qps[which]; ok {
				row = append([]float64(nil), v...)
			}
		case "computed":
			if v, ok := result.Computed[entry.Which]; ok {
				row = append([]float64(nil), v...)
			}
		}
	}

	if row != nil && entry.Slice != nil {
		row = entry.Slice.Apply(row)
	}
	if row != nil && entry.Expression != nil {
		out, err := entry.Expression.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("ensight: result %q element %d: %w", entry.Result, elementLabel, err)
		}
		row = out
	}

	if row == nil {
		return nil, fmt.Errorf("%w: result %q set %q element %d location %s which %s", errs.ErrMissingResultForEntry, entry.Result, entry.SetName, elementLabel, entry.Location, entry.Which)
	}
	if len(row) != dimensions {
		return nil, fmt.Errorf("%w: result %q set %q element %d has width %d, job wants %d", errs.ErrResultShapeMismatch, entry.Result, entry.SetName, elementLabel, len(row), dimensions)
	}
	return row, nil
}

func filledRow(dimensions int, k float64) []float64 {
	row := make([]float64, dimensions)
	for i := range row {
		row[i] = k
	}
	return row
}
