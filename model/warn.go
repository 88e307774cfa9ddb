package model

import "log"

// Warnf reports a non-fatal condition (duplicate node, missing set member)
// without aborting the parse (spec §7). It defaults to the standard log
// package; callers that want the warnings routed elsewhere (a CLI's own
// logger, a test's captured buffer) can replace it.
var Warnf = func(format string, args ...any) {
	log.Printf(format, args...)
}
