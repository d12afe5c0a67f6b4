// Package git reads tags and commit history from a local repository.
// It uses the go-git library for all operations, so no git binary is required.
package git

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/tagchangelog/internal/changelog"
)

// ShortIDLength is the number of hex digits kept in abbreviated commit ids.
const ShortIDLength = 7

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ErrEmptyRepository is returned when HEAD does not point at any commit yet.
var ErrEmptyRepository = errors.New("repository has no commits")

// Repository is a read-only view of a git repository.
// It implements changelog.Source. A Repository is not safe for concurrent use.
type Repository struct {
	repo *git.Repository
	root string
}

var _ changelog.Source = (*Repository)(nil)

// taggedCommit is a tag name resolved to the commit it marks.
type taggedCommit struct {
	name   string
	commit *object.Commit
	when   time.Time
}

// Open opens the repository containing path.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
func Open(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	logDebug("[git] opening repository at %s", abs)

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", abs, err)
	}

	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}

	logDebug("[git] repository opened successfully (root %s)", root)
	return &Repository{repo: repo, root: root}, nil
}

// Root returns the absolute path of the working tree (or the opened path for bare repositories).
func (r *Repository) Root() string {
	return r.root
}

// ListTagsByDate returns tag names, newest first.
// Annotated tags are dated by their tagger, lightweight tags by the tagged commit's
// committer. Tags with the same date are ordered by name, descending.
func (r *Repository) ListTagsByDate(ctx context.Context) ([]string, error) {
	tags, err := r.taggedCommits(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name
	}

	logDebug("[git] ListTagsByDate: %v", names)
	return names, nil
}

// TagDate returns the author date (YYYY-MM-DD) of the commit ref resolves to.
func (r *Repository) TagDate(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c, err := r.resolveCommit(ref)
	if err != nil {
		return "", err
	}
	return c.Author.When.Format("2006-01-02"), nil
}

// ListCommits returns the commits reachable from to but not from from.
// An empty from lists every commit reachable from to, root commits included.
func (r *Repository) ListCommits(ctx context.Context, from, to string) ([]changelog.RawCommit, error) {
	toCommit, err := r.resolveCommit(to)
	if err != nil {
		return nil, err
	}

	exclude := map[plumbing.Hash]bool{}
	if from != "" {
		fromCommit, err := r.resolveCommit(from)
		if err != nil {
			return nil, err
		}
		err = object.NewCommitPreorderIter(fromCommit, nil, nil).ForEach(func(c *object.Commit) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			exclude[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking history of %s: %w", from, err)
		}
	}

	var commits []changelog.RawCommit
	err = object.NewCommitPreorderIter(toCommit, exclude, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, rawCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history of %s: %w", to, err)
	}

	logDebug("[git] ListCommits %s..%s: %d commits", from, to, len(commits))
	return commits, nil
}

// InitialCommitID returns the id of the oldest root commit reachable from HEAD.
func (r *Repository) InitialCommitID(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", ErrEmptyRepository
		}
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}

	start, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("reading HEAD commit: %w", err)
	}

	var initial *object.Commit
	err = object.NewCommitPreorderIter(start, nil, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.NumParents() == 0 && (initial == nil || olderCommit(c, initial)) {
			initial = c
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("walking history of HEAD: %w", err)
	}
	if initial == nil {
		return "", ErrEmptyRepository
	}

	logDebug("[git] InitialCommitID: %s", initial.Hash)
	return initial.Hash.String(), nil
}

// InitialTaggedCommitID returns the id of the commit the oldest tag points to.
func (r *Repository) InitialTaggedCommitID(ctx context.Context) (string, error) {
	tags, err := r.taggedCommits(ctx)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("repository has no tags")
	}

	oldest := tags[len(tags)-1]
	logDebug("[git] InitialTaggedCommitID: %s -> %s", oldest.name, oldest.commit.Hash)
	return oldest.commit.Hash.String(), nil
}

// taggedCommits resolves every tag to its commit and sorts them newest first.
func (r *Repository) taggedCommits(ctx context.Context) ([]taggedCommit, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []taggedCommit
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		tc, ok, err := r.peelTag(ref)
		if err != nil {
			return err
		}
		if ok {
			tags = append(tags, tc)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Slice(tags, func(i, j int) bool {
		if !tags[i].when.Equal(tags[j].when) {
			return tags[i].when.After(tags[j].when)
		}
		return tags[i].name > tags[j].name
	})

	return tags, nil
}

// peelTag resolves a tag reference to a commit. Tags of trees or blobs are skipped.
func (r *Repository) peelTag(ref *plumbing.Reference) (taggedCommit, bool, error) {
	name := ref.Name().Short()

	tag, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		c, err := tag.Commit()
		if err != nil {
			if errors.Is(err, object.ErrUnsupportedObject) {
				logDebug("[git] skipping tag %s: target is a %s", name, tag.TargetType)
				return taggedCommit{}, false, nil
			}
			return taggedCommit{}, false, fmt.Errorf("peeling tag %s: %w", name, err)
		}
		return taggedCommit{name: name, commit: c, when: tag.Tagger.When}, true, nil

	case errors.Is(err, plumbing.ErrObjectNotFound):
		c, err := r.repo.CommitObject(ref.Hash())
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				logDebug("[git] skipping tag %s: not a commit", name)
				return taggedCommit{}, false, nil
			}
			return taggedCommit{}, false, fmt.Errorf("reading commit of tag %s: %w", name, err)
		}
		return taggedCommit{name: name, commit: c, when: c.Committer.When}, true, nil

	default:
		return taggedCommit{}, false, fmt.Errorf("reading tag %s: %w", name, err)
	}
}

// resolveCommit resolves a tag name, branch, HEAD or hash to a commit.
// Annotated tags are peeled to the commit they mark.
func (r *Repository) resolveCommit(ref string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}

	c, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", ref, err)
	}
	return c, nil
}

// rawCommit converts a go-git commit into the record the changelog consumes.
func rawCommit(c *object.Commit) changelog.RawCommit {
	long := c.Hash.String()
	return changelog.RawCommit{
		Subject: subjectLine(c.Message),
		ShortID: long[:ShortIDLength],
		LongID:  long,
	}
}

// subjectLine returns the first line of a commit message.
func subjectLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(line, "\r")
}

// olderCommit orders root commits by committer date, then by hash.
func olderCommit(a, b *object.Commit) bool {
	if !a.Committer.When.Equal(b.Committer.When) {
		return a.Committer.When.Before(b.Committer.When)
	}
	return a.Hash.String() < b.Hash.String()
}
