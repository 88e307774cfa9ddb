package ensight

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/opencae/fil2ensight/extract"
	"github.com/opencae/fil2ensight/format"
	"github.com/opencae/fil2ensight/model"
	"github.com/opencae/fil2ensight/planner"
)

var _ extract.Writer = (*Case)(nil)

// caseFileFlushPeriod is how often (in commits) Case rewrites the .case
// text index while keeping trend file handles open (spec §4.5 "Every
// tenth commit the writer additionally flushes the .case index").
const caseFileFlushPeriod = 10

// varTrend is the case-index bookkeeping for one export job's variable
// trend: which time set it reports to and which VARIABLE-section keyword
// describes its dimensionality and placement.
type varTrend struct {
	timeSetID  int
	kind       string
	perElement bool
}

// Case is the chunk-wise EnSight Gold writer (spec §4.5 C6): it implements
// extract.Writer, owning one geometry trend file, one variable trend file
// per export job, and the textual .case index, all rooted at dir/name.
type Case struct {
	dir  string
	name string
	plan *planner.Plan

	geomFile *os.File
	varFiles map[string]*os.File

	geometry *Geometry
	partIdx  *PartIndex

	timeSets  map[int]*TimeSet
	varTrends map[string]*varTrend
	varOrder  []string

	commits int
}

// NewCase creates a writer rooted at dir, naming its files with the given
// case name (dir/name.case, dir/name.geo, dir/<job>.var).
func NewCase(dir, name string, plan *planner.Plan) *Case {
	return &Case{
		dir:       dir,
		name:      name,
		plan:      plan,
		varFiles:  make(map[string]*os.File),
		timeSets:  make(map[int]*TimeSet),
		varTrends: make(map[string]*varTrend),
	}
}

// EmitGeometry renumbers the store's sets into Parts and writes the
// geometry trend file's single time step (spec §4.5 "Geometry emission").
// It satisfies extract.Writer.
func (c *Case) EmitGeometry(store *model.Store) error {
	geom, idx, err := BuildGeometry(store, c.plan)
	if err != nil {
		return err
	}
	c.geometry = geom
	c.partIdx = idx

	f, err := os.Create(filepath.Join(c.dir, c.name+".geo"))
	if err != nil {
		return fmt.Errorf("ensight: create geometry file: %w", err)
	}
	c.geomFile = f

	w := newBlockWriter()
	defer w.release()

	w.writeC80("C Binary")
	w.writeC80("BEGIN TIME STEP")
	writeGeometryBlock(w, geom)
	w.writeC80("END TIME STEP")

	if err := w.flush(f); err != nil {
		return fmt.Errorf("ensight: write geometry file: %w", err)
	}
	return nil
}

// CommitIncrement writes one time step of every configured export job's
// variable trend and periodically flushes the .case index (spec §4.5
// "Variable emission", "Time/file bookkeeping"). It satisfies
// extract.Writer.
func (c *Case) CommitIncrement(store *model.Store, inc *model.Increment) error {
	if c.geometry == nil {
		return fmt.Errorf("ensight: commit increment called before geometry was emitted")
	}

	for _, name := range sortedJobNames(c.plan.PerNodeJobs) {
		job := c.plan.PerNodeJobs[name]
		if err := c.commitJob(name, job, false, inc); err != nil {
			return err
		}
	}
	for _, name := range sortedJobNames(c.plan.PerElementJobs) {
		job := c.plan.PerElementJobs[name]
		if err := c.commitJob(name, job, true, inc); err != nil {
			return err
		}
	}

	c.commits++
	if c.commits%caseFileFlushPeriod == 0 {
		if err := c.writeCaseFile(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Case) commitJob(name string, job *planner.ExportJob, perElement bool, inc *model.Increment) error {
	kind, ok := format.VariableKind(job.Dimensions, perElement)
	if !ok {
		return fmt.Errorf("ensight: export job %q has unsupported dimensions %d", name, job.Dimensions)
	}
	trend, ok := c.varTrends[name]
	if !ok {
		trend = &varTrend{timeSetID: job.TimeSetID, kind: kind, perElement: perElement}
		c.varTrends[name] = trend
		c.varOrder = append(c.varOrder, name)
	}

	f, err := c.varFile(name)
	if err != nil {
		return err
	}

	w := newBlockWriter()
	defer w.release()

	w.writeC80("BEGIN TIME STEP")
	var writeErr error
	if perElement {
		writeErr = c.writePerElementVariable(w, job, name, inc)
	} else {
		writeErr = c.writePerNodeVariable(w, job, name, inc)
	}
	if writeErr != nil {
		return writeErr
	}
	w.writeC80("END TIME STEP")

	if err := w.flush(f); err != nil {
		return fmt.Errorf("ensight: write variable file %q: %w", name, err)
	}

	ts, ok := c.timeSets[job.TimeSetID]
	if !ok {
		ts = newTimeSet(job.TimeSetID)
		c.timeSets[job.TimeSetID] = ts
	}
	ts.Append(inc.TTotal)

	return nil
}

func (c *Case) varFile(name string) (*os.File, error) {
	if f, ok := c.varFiles[name]; ok {
		return f, nil
	}
	f, err := os.Create(filepath.Join(c.dir, name+".var"))
	if err != nil {
		return nil, fmt.Errorf("ensight: create variable file %q: %w", name, err)
	}
	c.varFiles[name] = f
	return f, nil
}

func (c *Case) jobEntriesByPart(job *planner.ExportJob) map[int]*planner.Entry {
	out := make(map[int]*planner.Entry, len(job.Entries))
	for _, entry := range job.Entries {
		isNodeSet := entry.SetKind == planner.NSetKind
		if id, ok := c.partIdx.PartID(entry.SetName, isNodeSet); ok {
			out[id] = entry
		}
	}
	return out
}

func (c *Case) writePerNodeVariable(w *blockWriter, job *planner.ExportJob, name string, inc *model.Increment) error {
	w.writeC80(name)
	entries := c.jobEntriesByPart(job)

	for _, part := range c.geometry.Parts {
		entry, ok := entries[part.ID]
		if !ok {
			continue
		}

		rows := make([][]float64, len(part.NodeLabels))
		for i, label := range part.NodeLabels {
			row, err := extractPerNodeRow(inc, entry, job.Dimensions, label)
			if err != nil {
				return err
			}
			rows[i] = row
		}

		w.writeC80("part")
		w.writeInt32(int32(part.ID))
		w.writeC80("coordinates")
		for k := 0; k < job.Dimensions; k++ {
			col := make([]float64, len(rows))
			for i, row := range rows {
				col[i] = row[k]
			}
			w.writeFloat32s(col)
		}
	}
	return nil
}

func (c *Case) writePerElementVariable(w *blockWriter, job *planner.ExportJob, name string, inc *model.Increment) error {
	w.writeC80(name)
	entries := c.jobEntriesByPart(job)

	for _, part := range c.geometry.Parts {
		entry, ok := entries[part.ID]
		if !ok {
			continue
		}

		w.writeC80("part")
		w.writeInt32(int32(part.ID))

		for _, group := range part.Groups {
			rows := make([][]float64, len(group.Elements))
			for i, el := range group.Elements {
				row, err := extractPerElementRow(inc, entry, job.Dimensions, el.Label)
				if err != nil {
					return err
				}
				rows[i] = row
			}

			w.writeC80(string(group.Type))
			col := make([]float64, 0, job.Dimensions*len(rows))
			for k := 0; k < job.Dimensions; k++ {
				for _, row := range rows {
					col = append(col, row[k])
				}
			}
			w.writeFloat32s(col)
		}
	}
	return nil
}

// Finalize closes every open trend file and rewrites the .case index one
// last time (spec §4.5, §5 "the final commit closes all handles").
func (c *Case) Finalize() error {
	var firstErr error
	if c.geomFile != nil {
		if err := c.geomFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, f := range c.varFiles {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := c.writeCaseFile(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func sortedJobNames(jobs map[string]*planner.ExportJob) []string {
	names := make([]string, 0, len(jobs))
	for name := range jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
