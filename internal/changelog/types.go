package changelog

// Sentinel values used by the classifier.
const (
	// Empty marks a commit whose subject carried no structured prefix.
	// It is used for both the type and the category of such commits.
	Empty = "EMPTY"
	// Global marks a structured commit with no category, an empty "()" or the "(*)" wildcard.
	Global = "GLOBAL"
)

// RawCommit is a single commit record as produced by a Source.
// Records are immutable; their order is not relied upon for output.
type RawCommit struct {
	Subject string
	ShortID string
	LongID  string
}

// ClassifiedCommit is a RawCommit with its subject parsed into type, category and text.
type ClassifiedCommit struct {
	Type     string
	Category string
	Subject  string
	ShortID  string
	LongID   string
}

// Section holds the commits of one type in rendering order.
// Heading is the human-readable label for Type; unknown types carry "Other".
type Section struct {
	Type    string
	Heading string
	Commits []ClassifiedCommit
}

// Range is one tag window ready for rendering.
// StartTag is the exclusive lower bound (empty when the window starts at the root),
// EndTag is the tag (or "Unreleased") named in the heading.
type Range struct {
	StartTag string
	EndTag   string
	Date     string
	LinkBase string
	Sections []Section
}

// CommitCount returns the number of commits across all sections.
func (r Range) CommitCount() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Commits)
	}
	return n
}

// IsEmpty returns true if the range has no commits to list.
func (r Range) IsEmpty() bool {
	return r.CommitCount() == 0
}
