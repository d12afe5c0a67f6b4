package changelog

import (
	"context"
	"fmt"
	"sync"
)

// fakeSource is an in-memory Source keyed by "from..to" ranges.
type fakeSource struct {
	tags          []string
	dates         map[string]string
	commits       map[string][]RawCommit
	initial       string
	initialTagged string

	tagsErr    error
	commitsErr error

	mu    sync.Mutex
	calls []string
}

func (f *fakeSource) ListTagsByDate(ctx context.Context) ([]string, error) {
	if f.tagsErr != nil {
		return nil, f.tagsErr
	}
	return append([]string(nil), f.tags...), nil
}

func (f *fakeSource) TagDate(ctx context.Context, ref string) (string, error) {
	date, ok := f.dates[ref]
	if !ok {
		return "", fmt.Errorf("unknown ref %q", ref)
	}
	return date, nil
}

func (f *fakeSource) ListCommits(ctx context.Context, from, to string) ([]RawCommit, error) {
	key := from + ".." + to
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	if f.commitsErr != nil {
		return nil, f.commitsErr
	}
	return f.commits[key], nil
}

func (f *fakeSource) InitialCommitID(ctx context.Context) (string, error) {
	return f.initial, nil
}

func (f *fakeSource) InitialTaggedCommitID(ctx context.Context) (string, error) {
	return f.initialTagged, nil
}

// threeTagSource has tags v1.2.0 (newest), v1.1.0 and v1.0.0, plus unreleased work.
func threeTagSource() *fakeSource {
	return &fakeSource{
		tags: []string{"v1.2.0", "v1.1.0", "v1.0.0"},
		dates: map[string]string{
			"v1.2.0": "2024-03-01",
			"v1.1.0": "2024-02-01",
			"v1.0.0": "2024-01-01",
			HeadRef:  "2024-04-01",
		},
		commits: map[string][]RawCommit{
			"v1.2.0..HEAD": {
				{Subject: "feat: unreleased work", ShortID: "eeeeeee", LongID: "eeeeeee0"},
			},
			"v1.1.0..v1.2.0": {
				{Subject: "fix(git): peel annotated tags", ShortID: "ccccccc", LongID: "ccccccc0"},
				{Subject: "feat(cli): add --output", ShortID: "ddddddd", LongID: "ddddddd0"},
			},
			"v1.0.0..v1.1.0": {
				{Subject: "perf: faster walks", ShortID: "bbbbbbb", LongID: "bbbbbbb0"},
			},
			"..v1.0.0": {
				{Subject: "feat(main): add CLI parsing", ShortID: "aaaaaa2", LongID: "aaaaaa20"},
				{Subject: "Initial commit - add .gitignore, README", ShortID: "aaaaaa1", LongID: "aaaaaa10"},
			},
		},
		initial:       "aaaaaa10",
		initialTagged: "aaaaaa20",
	}
}
