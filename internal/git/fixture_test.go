package git

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// fixture builds a throwaway repository with go-git, so tests need no git binary.
type fixture struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	wt   *git.Worktree
	n    int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &fixture{t: t, dir: dir, repo: repo, wt: wt}
}

func signature(when time.Time) *object.Signature {
	return &object.Signature{Name: "Test User", Email: "test@test.com", When: when}
}

func day(s string) time.Time {
	when, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return when.Add(12 * time.Hour)
}

// commit writes a new file and commits it with the given message and author date.
func (f *fixture) commit(message, date string) plumbing.Hash {
	f.t.Helper()

	f.n++
	name := fmt.Sprintf("file%d.txt", f.n)
	require.NoError(f.t, os.WriteFile(filepath.Join(f.dir, name), []byte(message), 0o644))

	_, err := f.wt.Add(name)
	require.NoError(f.t, err)

	hash, err := f.wt.Commit(message, &git.CommitOptions{Author: signature(day(date))})
	require.NoError(f.t, err)
	return hash
}

func (f *fixture) lightweightTag(name string, target plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, target, nil)
	require.NoError(f.t, err)
}

func (f *fixture) annotatedTag(name string, target plumbing.Hash, date string) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, target, &git.CreateTagOptions{
		Tagger:  signature(day(date)),
		Message: "release " + name,
	})
	require.NoError(f.t, err)
}

func (f *fixture) open() *Repository {
	f.t.Helper()
	r, err := Open(f.dir)
	require.NoError(f.t, err)
	return r
}

// releaseHistory is a five commit history with a lightweight v1.0.0,
// an annotated v1.1.0 and one unreleased commit.
type releaseHistory struct {
	*fixture
	initial, cli, fix, flag, docs plumbing.Hash
}

func newReleaseHistory(t *testing.T) *releaseHistory {
	f := newFixture(t)
	h := &releaseHistory{fixture: f}

	h.initial = f.commit("Initial commit - add .gitignore, README", "2024-01-01")
	h.cli = f.commit("feat(main): add CLI parsing", "2024-01-02")
	f.lightweightTag("v1.0.0", h.cli)

	h.fix = f.commit("fix(git): peel annotated tags\n\nLonger body text.", "2024-02-01")
	h.flag = f.commit("feat(cli): add --output", "2024-02-02")
	f.annotatedTag("v1.1.0", h.flag, "2024-02-03")

	h.docs = f.commit("docs: describe flags", "2024-03-01")
	return h
}
