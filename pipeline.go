// Package fil2ensight wires the .fil frame reader, record decoder,
// extraction engine, and EnSight Gold writer into the single entry point
// an external caller (e.g. the excluded CLI) drives (spec §1 "pipeline").
package fil2ensight

import (
	"context"
	"fmt"

	"github.com/opencae/fil2ensight/ensight"
	"github.com/opencae/fil2ensight/extract"
	"github.com/opencae/fil2ensight/model"
	"github.com/opencae/fil2ensight/planner"
)

// Run translates the .fil stream at path into an EnSight Gold case
// directory at caseDir, with files named caseName, under the export
// behavior cfg describes. It blocks until the input is exhausted (or, in
// tail mode, until the sibling lock file disappears) or ctx is cancelled
// (at the points extract.Run documents); on every exit, including an
// error, it finalises the case so every previously committed increment is
// left in a valid, readable state (spec §5 "Suspension points").
func Run(ctx context.Context, path string, cfg *planner.Config, caseDir, caseName string) error {
	plan, err := planner.Build(cfg)
	if err != nil {
		return fmt.Errorf("fil2ensight: %w", err)
	}

	store := model.NewStore()
	writer := ensight.NewCase(caseDir, caseName, plan)
	engine := extract.NewEngine(store, plan, writer)

	runErr := extract.Run(ctx, path, engine)

	if finalizeErr := writer.Finalize(); finalizeErr != nil {
		if runErr != nil {
			return fmt.Errorf("fil2ensight: %w (finalize also failed: %v)", runErr, finalizeErr)
		}
		return fmt.Errorf("fil2ensight: finalize case: %w", finalizeErr)
	}

	if runErr != nil {
		return fmt.Errorf("fil2ensight: %w", runErr)
	}
	return nil
}
