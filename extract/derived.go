package extract

import (
	"fmt"

	"github.com/opencae/fil2ensight/model"
	"github.com/opencae/fil2ensight/planner"
)

// runDerivedJobs runs both derived-field computations (spec §4.3) against
// the currently open increment, in the only order the spec defines: SDV
// unpacking first (since an average job may target its destination), then
// quadrature-point averaging.
func runDerivedJobs(store *model.Store, plan *planner.Plan) error {
	inc := store.CurrentIncrement()
	if inc == nil {
		return nil
	}

	for _, entry := range plan.QPUnpack {
		if err := unpackQuadraturePoints(store, inc, entry); err != nil {
			return err
		}
	}

	for _, entry := range plan.AverageOverQP {
		averageOverQuadraturePoints(store, inc, entry)
	}

	return nil
}

// unpackQuadraturePoints implements spec §4.3 derived job 1: split each
// element's SDV["qps"][1] vector into qpCount equal slices and store them
// as destination[...]["qps"][i+1] (spec §8 law 5).
func unpackQuadraturePoints(store *model.Store, inc *model.Increment, entry planner.QPUnpackEntry) error {
	setName := store.ResolveSetName(entry.Set)
	set, ok := store.ElSet(setName)
	if !ok {
		return nil
	}

	for _, element := range set.Labels {
		source, shape, ok := inc.Results.FindElementResult("SDV", setName, element)
		if !ok {
			continue
		}
		raw, ok := source.Qps[1]
		if !ok {
			continue
		}
		if entry.QpInitialOffset+entry.QpCount*entry.QpDistance > len(raw) {
			return fmt.Errorf("extract: SDV vector too short to unpack %d quadrature points for element %d", entry.QpCount, element)
		}

		dest := inc.Results.ElementResultFor(entry.Destination, setName, shape, element)
		for i := 0; i < entry.QpCount; i++ {
			start := entry.QpInitialOffset + i*entry.QpDistance
			end := start + entry.QpDistance
			dest.Qps[i+1] = append([]float64(nil), raw[start:end]...)
		}
	}

	return nil
}

// averageOverQuadraturePoints implements spec §4.3 derived job 2: the
// component-wise mean across an element's quadrature-point vectors,
// stored under ["computed"]["average"] (spec §8 law 6).
func averageOverQuadraturePoints(store *model.Store, inc *model.Increment, entry planner.AverageEntry) {
	setName := store.ResolveSetName(entry.Set)
	set, ok := store.ElSet(setName)
	if !ok {
		return
	}

	for _, element := range set.Labels {
		result, _, ok := inc.Results.FindElementResult(entry.Result, setName, element)
		if !ok || len(result.Qps) == 0 {
			continue
		}

		var width int
		for _, v := range result.Qps {
			width = len(v)
			break
		}

		sum := make([]float64, width)
		count := 0
		for _, v := range result.Qps {
			if len(v) != width {
				continue
			}
			for i, x := range v {
				sum[i] += x
			}
			count++
		}
		if count == 0 {
			continue
		}
		for i := range sum {
			sum[i] /= float64(count)
		}

		result.Computed["average"] = sum
	}
}
