package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/tagchangelog/internal/cli/shared"
)

// cliResult is the captured outcome of one command line.
type cliResult struct {
	stdout string
	stderr string
	code   int
	err    error
}

// runCLI executes a fresh command tree with the given arguments.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := execute(context.Background(), cmd)
	return cliResult{
		stdout: stdout.String(),
		stderr: stderr.String(),
		code:   shared.ExitCode(err),
		err:    err,
	}
}

// testRepo is a go-git repository built in a temp dir.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	return newTestRepoIn(t, t.TempDir())
}

// newTestRepoIn initializes the repository in dir, creating dir if needed.
func newTestRepoIn(t *testing.T, dir string) *testRepo {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755))
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) commit(message, date string) plumbing.Hash {
	r.t.Helper()

	when, err := time.Parse("2006-01-02", date)
	require.NoError(r.t, err)

	r.n++
	name := filepath.Join("src", string(rune('a'+r.n))+".txt")
	require.NoError(r.t, os.MkdirAll(filepath.Join(r.dir, "src"), 0o755))
	require.NoError(r.t, os.WriteFile(filepath.Join(r.dir, name), []byte(message), 0o644))
	_, err = r.wt.Add(name)
	require.NoError(r.t, err)

	hash, err := r.wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Dev", Email: "dev@example.com", When: when.Add(9 * time.Hour)},
	})
	require.NoError(r.t, err)
	return hash
}

func (r *testRepo) tag(name string, target plumbing.Hash) {
	r.t.Helper()
	_, err := r.repo.CreateTag(name, target, nil)
	require.NoError(r.t, err)
}

// bullet renders the expected changelog line for a commit.
func bullet(prefix string, hash plumbing.Hash, base string) string {
	long := hash.String()
	return "* " + prefix + " [" + long[:7] + "](" + base + "/" + long + ")\n"
}

// twoReleases has v0.1.0 on the initial commit and v0.2.0 two commits later.
type twoReleases struct {
	*testRepo
	initial, feat, fix plumbing.Hash
}

func newTwoReleases(t *testing.T) *twoReleases {
	r := &twoReleases{testRepo: newTestRepo(t)}
	r.initial = r.commit("Initial commit", "2024-01-01")
	r.tag("v0.1.0", r.initial)
	r.feat = r.commit("feat(cli): add flag", "2024-02-01")
	r.fix = r.commit("fix: crash on empty repo", "2024-02-02")
	r.tag("v0.2.0", r.fix)
	return r
}

func (r *twoReleases) document(base string) string {
	return "## v0.2.0 (2024-02-02)\n" +
		"\n### New Features\n" +
		bullet("**cli**:add flag", r.feat, base) +
		"\n### Bug Fixes\n" +
		bullet("**GLOBAL**:crash on empty repo", r.fix, base) +
		"\n" +
		"## v0.1.0 (2024-01-01)\n" +
		"\n### Other\n" +
		bullet("Initial commit", r.initial, base)
}
