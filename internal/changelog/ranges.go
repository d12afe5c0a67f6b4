package changelog

import (
	"context"
	"fmt"
)

// HeadRef is the revision used as the upper bound of the unreleased window.
const HeadRef = "HEAD"

// UnreleasedTitle names the window of commits past the newest tag.
const UnreleasedTitle = "Unreleased"

// Source supplies commit records for a repository.
// internal/git.Repository is the production implementation.
type Source interface {
	// ListTagsByDate returns tag names, newest first.
	ListTagsByDate(ctx context.Context) ([]string, error)
	// TagDate returns the author date (YYYY-MM-DD) of the commit a tag or revision points to.
	TagDate(ctx context.Context, ref string) (string, error)
	// ListCommits returns one record per commit reachable from to and not from from.
	// An empty from walks back to the root commits.
	ListCommits(ctx context.Context, from, to string) ([]RawCommit, error)
	// InitialCommitID returns the id of the repository's first commit.
	InitialCommitID(ctx context.Context) (string, error)
	// InitialTaggedCommitID returns the id of the commit the oldest tag points to.
	InitialTaggedCommitID(ctx context.Context) (string, error)
}

// Window is one planned tag range before its commits are read.
type Window struct {
	// From is the exclusive lower revision passed to Source.ListCommits; empty means root.
	From string
	// To is the inclusive upper revision (a tag or HEAD).
	To string
	// Start labels the lower bound in the rendered Range. For the oldest tag it is the
	// initial commit id, or empty when the tag sits on the initial commit itself.
	Start string
	// Title is the heading text: the tag name or UnreleasedTitle.
	Title string
	// Date is the author date of the commit To points at.
	Date string
}

// PlanOptions controls range planning.
type PlanOptions struct {
	// Unreleased adds a leading window for commits after the newest tag.
	Unreleased bool
}

// NoTagsError is returned when the repository has no tags and no unreleased window was requested.
type NoTagsError struct{}

func (e *NoTagsError) Error() string {
	return "repository has no tags"
}

// PlanRanges builds the windows to render, newest first.
//
// For tags t0 (newest) .. tn (oldest), window i spans t(i+1)..ti and the oldest
// window spans everything reachable from tn. A tag on the initial commit makes
// that oldest window zero-width in from..to terms; it still lists the initial commit.
func PlanRanges(ctx context.Context, src Source, opts PlanOptions) ([]Window, error) {
	tags, err := src.ListTagsByDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	logDebug("[changelog] PlanRanges: %d tags", len(tags))

	if len(tags) == 0 && !opts.Unreleased {
		return nil, &NoTagsError{}
	}

	windows := make([]Window, 0, len(tags)+1)

	if opts.Unreleased {
		w := Window{To: HeadRef, Title: UnreleasedTitle}
		if len(tags) > 0 {
			w.From = tags[0]
			w.Start = tags[0]
		}
		windows = append(windows, w)
	}

	for i, tag := range tags {
		w := Window{To: tag, Title: tag}
		if i+1 < len(tags) {
			w.From = tags[i+1]
			w.Start = tags[i+1]
		}
		windows = append(windows, w)
	}

	if len(tags) > 0 {
		if err := markOldest(ctx, src, &windows[len(windows)-1]); err != nil {
			return nil, err
		}
	}

	for i := range windows {
		date, err := src.TagDate(ctx, windows[i].To)
		if err != nil {
			return nil, fmt.Errorf("reading date of %s: %w", windows[i].To, err)
		}
		windows[i].Date = date
	}

	return windows, nil
}

// markOldest labels the oldest tag window with the initial commit it starts from.
func markOldest(ctx context.Context, src Source, w *Window) error {
	initial, err := src.InitialCommitID(ctx)
	if err != nil {
		return fmt.Errorf("finding initial commit: %w", err)
	}
	tagged, err := src.InitialTaggedCommitID(ctx)
	if err != nil {
		return fmt.Errorf("finding initial tagged commit: %w", err)
	}

	if tagged == initial {
		logDebug("[changelog] PlanRanges: %s tags the initial commit (zero-width range)", w.To)
		w.Start = ""
		return nil
	}
	w.Start = initial
	return nil
}
