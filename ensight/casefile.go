package ensight

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// writeCaseFile (re)writes the whole textual .case index from current
// writer state (spec §4.5 "Case index format"). It is called periodically
// and once more at finalisation, always as a full rewrite, so a reader
// sees a consistent index even if the run is cancelled mid-trend (spec §5
// "the .case text has been rewritten at the last periodic flush").
func (c *Case) writeCaseFile() error {
	path := filepath.Join(c.dir, c.name+".case")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ensight: write case file: %w", err)
	}
	defer f.Close()

	timeSetIDs := make([]int, 0, len(c.timeSets))
	for id := range c.timeSets {
		timeSetIDs = append(timeSetIDs, id)
	}
	sort.Ints(timeSetIDs)

	fmt.Fprintln(f, "FORMAT")
	fmt.Fprintln(f, "type: ensight gold")

	fmt.Fprintln(f, "TIME")
	for _, id := range timeSetIDs {
		ts := c.timeSets[id]
		fmt.Fprintf(f, "time set: %d %s\n", ts.ID, ts.Description)
		fmt.Fprintf(f, "number of steps: %d\n", ts.Steps())
		fmt.Fprintf(f, "filename start number: %d\n", ts.FileNameStartNumber)
		fmt.Fprintf(f, "filename increment: %d\n", ts.FileNameIncrement)
		fmt.Fprint(f, "time values: ")
		for i, v := range ts.Values {
			if c.plan.DiscardTimeMarks {
				fmt.Fprintln(f, strconv.Itoa(i+1))
			} else {
				fmt.Fprintln(f, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
	}

	fmt.Fprintln(f, "FILE")
	for _, id := range timeSetIDs {
		ts := c.timeSets[id]
		fmt.Fprintf(f, "file set: %d\n", ts.ID)
		fmt.Fprintf(f, "number of steps: %d\n", ts.Steps())
	}

	fmt.Fprintln(f, "GEOMETRY")
	fmt.Fprintf(f, "model: %s.geo\n", c.name)

	if len(c.varOrder) > 0 {
		fmt.Fprintln(f, "VARIABLE")
		for _, name := range c.varOrder {
			trend := c.varTrends[name]
			fmt.Fprintf(f, "%s: %d %d %s %s.var\n", trend.kind, trend.timeSetID, trend.timeSetID, name, name)
		}
	}

	return nil
}
