package tablebase

import "errors"

// Error taxonomy surfaced by Load. Probe never errors: a missing table is reported by a
// boolean "ok" return instead, since an unloaded table is an expected, not exceptional, outcome.
var (
	// ErrNotSyzygy is returned when a file's magic number does not match the Syzygy WDL format.
	ErrNotSyzygy = errors.New("tablebase: not a Syzygy WDL file")

	// ErrUnknownMaterial is returned when a filename stem or material string cannot be parsed.
	ErrUnknownMaterial = errors.New("tablebase: unparseable material key")

	// ErrTruncated is returned when a table file ends before a required field or section.
	ErrTruncated = errors.New("tablebase: truncated table data")
)
