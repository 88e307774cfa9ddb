package planner

// SetKind distinguishes an entry's set as an element set or a node set
// (spec §3 "Export job").
type SetKind int

const (
	ElSetKind SetKind = iota
	NSetKind
)

// Entry is one per-set member of an ExportJob (spec §3, §4.4).
type Entry struct {
	SetName string
	SetKind SetKind
	Result  string

	// Location and Which apply to per-element entries only. Location is
	// "qps" (Which is the decimal quadrature-point index) or "computed"
	// (Which is a string key, e.g. "average").
	Location string
	Which    string

	Slice      *Slice
	Expression *Expression

	// FillMissingValuesTo applies to per-node entries only.
	FillMissingValuesTo *float64
}

// ExportJob is one export-job definition: a name, a result width, the time
// set it reports to, and one Entry per set it draws from (spec §3).
type ExportJob struct {
	Name       string
	Dimensions int
	TimeSetID  int
	Entries    map[string]*Entry
}

func newExportJob(name string, dimensions, timeSetID int) *ExportJob {
	return &ExportJob{Name: name, Dimensions: dimensions, TimeSetID: timeSetID, Entries: make(map[string]*Entry)}
}
