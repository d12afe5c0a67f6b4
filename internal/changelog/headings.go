package changelog

import (
	"fmt"
	"sort"
	"strings"
)

// OtherHeading is the section heading for types missing from the heading table.
const OtherHeading = "Other"

// defaultLabels is copied into every Headings value and never mutated.
var defaultLabels = map[string]string{
	"chore":    "Chores",
	"docs":     "Documentation Changes",
	"feat":     "New Features",
	"fix":      "Bug Fixes",
	"other":    "Miscellaneous Tasks",
	"perf":     "Performance Enhancements",
	"refactor": "Code Improvements",
	"revert":   "Revert a Change",
	"style":    "Stylistic Enhancements",
	"test":     "Tests",
}

// Headings maps commit types to section headings.
// A Headings value is immutable; WithLabels returns a modified copy.
type Headings struct {
	labels map[string]string
}

// UnknownTypeError is returned when a relabel targets a type outside the fixed table.
type UnknownTypeError struct {
	Type  string
	Known []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown commit type %q (known: %s)", e.Type, strings.Join(e.Known, ", "))
}

// DefaultHeadings returns the fixed ten-entry type to heading table.
func DefaultHeadings() Headings {
	labels := make(map[string]string, len(defaultLabels))
	for k, v := range defaultLabels {
		labels[k] = v
	}
	return Headings{labels: labels}
}

// Lookup returns the heading for a commit type, or OtherHeading when the type is unknown.
func (h Headings) Lookup(commitType string) string {
	if label, ok := h.labels[commitType]; ok {
		return label
	}
	return OtherHeading
}

// Has reports whether the type is one of the table's keys.
func (h Headings) Has(commitType string) bool {
	_, ok := h.labels[commitType]
	return ok
}

// Types returns the table's keys in ascending order.
func (h Headings) Types() []string {
	types := make([]string, 0, len(h.labels))
	for k := range h.labels {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// WithLabels returns a copy of h with the given headings replaced.
// Only existing types can be relabelled; blank labels are rejected.
func (h Headings) WithLabels(overrides map[string]string) (Headings, error) {
	labels := make(map[string]string, len(h.labels))
	for k, v := range h.labels {
		labels[k] = v
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := labels[k]; !ok {
			return Headings{}, &UnknownTypeError{Type: k, Known: h.Types()}
		}
		label := strings.TrimSpace(overrides[k])
		if label == "" {
			return Headings{}, fmt.Errorf("heading for %q cannot be empty", k)
		}
		labels[k] = label
	}

	return Headings{labels: labels}, nil
}
