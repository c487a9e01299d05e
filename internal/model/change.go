package model

// ChangeKind distinguishes in-place updates from appended lines.
type ChangeKind string

// Change kind constants.
const (
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeAppend ChangeKind = "APPEND"
)

// Change records one mutation the reconciler applied to a declaration-line
// set, kept for auditing and dry-run previews.
type Change struct {
	Kind      ChangeKind
	LineIndex int    // Index into the merged line set
	Field     string // For updates: which field changed
	Before    string
	After     string
}
