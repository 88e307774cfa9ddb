package ensight

// TimeSet is the ordered list of time values (or, with DiscardTimeMarks,
// commit ordinals) a variable trend reports to the .case index (spec §4.5
// "Time/file bookkeeping").
type TimeSet struct {
	ID                  int
	Description         string
	FileNameStartNumber int
	FileNameIncrement   int
	Values              []float64
}

func newTimeSet(id int) *TimeSet {
	return &TimeSet{ID: id, Description: "timeSet", FileNameIncrement: 1}
}

// Append records timeValue if it is strictly greater than the last
// recorded value; a duplicate commit at the same time is a no-op for the
// set (spec §4.5).
func (ts *TimeSet) Append(timeValue float64) {
	if len(ts.Values) > 0 && timeValue <= ts.Values[len(ts.Values)-1] {
		return
	}
	ts.Values = append(ts.Values, timeValue)
}

// Steps reports the number of steps currently recorded.
func (ts *TimeSet) Steps() int {
	return len(ts.Values)
}
