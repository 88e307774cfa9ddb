package model

// Heading is the run header carried by a type-1921 record: supplemented
// from the original tool's pretty-printed banner (not reproduced here —
// pretty-printing is out of scope), kept only as structured data for
// callers that want it (spec §9 SUPPLEMENTED FEATURES).
type Heading struct {
	AbaqusRelease string
	Date          string
	Time          string
	NElements     int64
	NNodes        int64
	ElementLength float64
}

// energyFieldNames is the fixed, ordered set of quantities carried by a
// type-1999 energy-summary record.
var energyFieldNames = []string{
	"ALLKE", "ALLSE", "ALLWK", "ALLPD", "ALLCD", "ALLVD", "ALLKL", "ALLAE",
	"ALLDC", "ALLEE", "ALLIE", "ETOTAL", "ALLFD", "ALLJD", "DMASS", "ALLDMD",
	"ALLIHE", "ALLHF",
}

// EnergySummary is the set of whole-model energy totals carried by a
// type-1999 record, keyed by their Abaqus field name (spec §9 SUPPLEMENTED
// FEATURES).
type EnergySummary struct {
	Values map[string]float64
}

// NewEnergySummary builds an EnergySummary from the record's raw doubles, in
// the fixed field order the solver always emits them in.
func NewEnergySummary(values []float64) EnergySummary {
	s := EnergySummary{Values: make(map[string]float64, len(energyFieldNames))}
	for i, name := range energyFieldNames {
		if i >= len(values) {
			break
		}
		s.Values[name] = values[i]
	}
	return s
}
