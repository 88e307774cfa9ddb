// Package errs collects the sentinel errors the rest of this module wraps
// with context via fmt.Errorf and "%w". Callers branch on these with
// errors.Is rather than matching on error strings.
package errs

import "errors"

var (
	// ErrTruncated indicates a record declared a length <= 2, or a final
	// record overflowed the batch with no progress made in it. Recoverable
	// in tail mode (the batch is retried while the lock file is present);
	// otherwise the parse loop stops cleanly with previously committed
	// increments intact.
	ErrTruncated = errors.New("fil: truncated record")

	// ErrInputFraming indicates a block-misaligned tail that tail mode does
	// not explain. Recovered by re-batching at the last whole block unless
	// it recurs with zero progress and no lock file, in which case it is
	// returned as a fatal error.
	ErrInputFraming = errors.New("fil: input not aligned to a physical block")

	// ErrUnknownRecord is reported (never returned) for a record type not
	// present in the dispatch table; the record is skipped.
	ErrUnknownRecord = errors.New("fil: unknown record type")

	// ErrDuplicateNode is reported (never returned) when a node label is
	// redefined; the first-seen coordinates are retained.
	ErrDuplicateNode = errors.New("model: duplicate node definition")

	// ErrMissingSetMember is reported (never returned) when a set
	// references a label not present in the mesh; the set is still
	// created from the labels that do exist.
	ErrMissingSetMember = errors.New("model: set references unknown label")

	// ErrResultShapeMismatch is fatal: a job's per-set results have an
	// inner dimension different from the job's declared dimensions, and no
	// fillMissingValuesTo was configured.
	ErrResultShapeMismatch = errors.New("ensight: result dimension does not match job dimensions")

	// ErrMissingResultForEntry is fatal: a per-element job references a
	// (result, set, location, which) that yields no data, or a per-node
	// entry without fillMissingValuesTo finds no result for a node.
	ErrMissingResultForEntry = errors.New("ensight: no data for export entry")

	// ErrConfigError is fatal and reported before any I/O: an unknown
	// keyword, an unknown option within a recognized entry, or a value
	// that doesn't convert to its declared type.
	ErrConfigError = errors.New("planner: invalid configuration")
)
