package changelog

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// renderString renders ranges into a string.
func renderString(ranges []Range) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(ranges, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func TestRenderRange_Exact(t *testing.T) {
	t.Parallel()

	r := Range{
		EndTag:   "v1.1.0",
		Date:     "2024-03-01",
		LinkBase: "file:///home/dev/repo",
		Sections: []Section{
			{
				Type:    Empty,
				Heading: OtherHeading,
				Commits: []ClassifiedCommit{
					{Type: Empty, Category: Empty, Subject: "Initial commit - add .gitignore, README", ShortID: "0a1b2c3", LongID: "0a1b2c3d4e"},
				},
			},
			{
				Type:    "feat",
				Heading: "New Features",
				Commits: []ClassifiedCommit{
					{Type: "feat", Category: Global, Subject: "render links", ShortID: "a1a1a1a", LongID: "a1a1a1a1a1"},
					{Type: "feat", Category: "main", Subject: "add CLI parsing", ShortID: "b2b2b2b", LongID: "b2b2b2b2b2"},
				},
			},
		},
	}

	want := "## v1.1.0 (2024-03-01)\n" +
		"\n### Other\n" +
		"* Initial commit - add .gitignore, README [0a1b2c3](file:///home/dev/repo/0a1b2c3d4e)\n" +
		"\n### New Features\n" +
		"* **GLOBAL**:render links [a1a1a1a](file:///home/dev/repo/a1a1a1a1a1)\n" +
		"* **main**:add CLI parsing [b2b2b2b](file:///home/dev/repo/b2b2b2b2b2)\n"

	var b strings.Builder
	require.NoError(t, RenderRange(&r, &b))
	assert.Equal(t, want, b.String())
}

func TestRenderMarkdown_Content(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		ranges      []Range
		contains    []string
		notContains []string
	}{
		"remote link base used verbatim": {
			ranges: []Range{{
				EndTag: "v2.0.0", Date: "2024-05-05", LinkBase: "https://example.com/org/repo/commit",
				Sections: Group(ClassifyAll([]RawCommit{
					{Subject: "fix(api): handle nil", ShortID: "abc1234", LongID: "abc1234fff"},
				}), DefaultHeadings()),
			}},
			contains: []string{
				"## v2.0.0 (2024-05-05)",
				"### Bug Fixes",
				"* **api**:handle nil [abc1234](https://example.com/org/repo/commit/abc1234fff)",
			},
		},
		"unknown type under Other": {
			ranges: []Range{{
				EndTag: "v0.1.0", Date: "2024-01-01", LinkBase: "file:///r",
				Sections: Group(ClassifyAll([]RawCommit{
					{Subject: "oddtype: something", ShortID: "1234567", LongID: "1234567aaa"},
				}), DefaultHeadings()),
			}},
			contains:    []string{"### Other", "* **GLOBAL**:something [1234567](file:///r/1234567aaa)"},
			notContains: []string{"### oddtype"},
		},
		"multiple spaces survive rendering": {
			ranges: []Range{{
				EndTag: "v0.2.0", Date: "2024-01-02", LinkBase: "file:///r",
				Sections: Group(ClassifyAll([]RawCommit{
					{Subject: "docs(readme): fix   the    table", ShortID: "7654321", LongID: "7654321bbb"},
				}), DefaultHeadings()),
			}},
			contains: []string{"* **readme**:fix   the    table [7654321]"},
		},
		"empty sections are skipped": {
			ranges: []Range{{
				EndTag: "v0.3.0", Date: "2024-01-03", LinkBase: "file:///r",
				Sections: []Section{{Type: "feat", Heading: "New Features"}},
			}},
			contains:    []string{"## v0.3.0 (2024-01-03)"},
			notContains: []string{"###"},
		},
		"ranges in given order": {
			ranges: []Range{
				{EndTag: "v2.0.0", Date: "2024-02-01"},
				{EndTag: "v1.0.0", Date: "2024-01-01"},
			},
			contains: []string{"## v2.0.0 (2024-02-01)\n\n## v1.0.0 (2024-01-01)\n"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := renderString(tt.ranges)
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderMarkdown_ByteIdenticalAcrossInsertionOrder(t *testing.T) {
	t.Parallel()

	raws := []RawCommit{
		{Subject: "feat(main): add CLI parsing", ShortID: "b2b2b2b", LongID: "b2b2b2b0"},
		{Subject: "refactor: rename all functions", ShortID: "c3c3c3c", LongID: "c3c3c3c0"},
		{Subject: "docs(*): change section header fonts", ShortID: "d4d4d4d", LongID: "d4d4d4d0"},
		{Subject: "style(): alter commentary", ShortID: "e5e5e5e", LongID: "e5e5e5e0"},
		{Subject: "Initial commit - add .gitignore, README", ShortID: "f6f6f6f", LongID: "f6f6f6f0"},
		{Subject: "oddtype: something", ShortID: "a0a0a0a", LongID: "a0a0a0a0"},
		{Subject: "fix(main): same subject", ShortID: "1111111", LongID: "11111110"},
		{Subject: "fix(main): same subject", ShortID: "2222222", LongID: "22222220"},
	}
	w := Window{To: "v1.0.0", Title: "v1.0.0", Date: "2024-01-01"}

	render := func(in []RawCommit) string {
		r := BuildRange(w, in, "file:///repo", DefaultHeadings())
		out, err := renderString([]Range{r})
		require.NoError(t, err)
		return out
	}

	want := render(raws)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		shuffled := append([]RawCommit(nil), raws...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, render(shuffled))
	}
	assert.Equal(t, 2, strings.Count(want, "same subject"))
}

func TestRenderMarkdown_MarkdownStructure(t *testing.T) {
	t.Parallel()

	ranges := []Range{
		{
			EndTag: "v1.1.0", Date: "2024-03-01", LinkBase: "file:///repo",
			Sections: Group(ClassifyAll([]RawCommit{
				{Subject: "feat(main): add CLI parsing", ShortID: "b2b2b2b", LongID: "b2b2b2b0"},
				{Subject: "fix: handle empty tags", ShortID: "c3c3c3c", LongID: "c3c3c3c0"},
			}), DefaultHeadings()),
		},
		{
			EndTag: "v1.0.0", Date: "2024-01-01", LinkBase: "file:///repo",
			Sections: Group(ClassifyAll([]RawCommit{
				{Subject: "Initial commit", ShortID: "a1a1a1a", LongID: "a1a1a1a0"},
			}), DefaultHeadings()),
		},
	}

	out, err := renderString(ranges)
	require.NoError(t, err)

	src := []byte(out)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []string
	var links []string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			headings = append(headings, strings.Repeat("#", node.Level)+" "+string(node.Text(src)))
		case *ast.Link:
			links = append(links, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"## v1.1.0 (2024-03-01)",
		"### New Features",
		"### Bug Fixes",
		"## v1.0.0 (2024-01-01)",
		"### Other",
	}, headings)
	assert.Equal(t, []string{
		"file:///repo/b2b2b2b0",
		"file:///repo/c3c3c3c0",
		"file:///repo/a1a1a1a0",
	}, links)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderMarkdown_WriteError(t *testing.T) {
	t.Parallel()

	err := RenderMarkdown([]Range{{EndTag: "v1.0.0", Date: "2024-01-01"}}, failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v1.0.0")
	assert.Contains(t, err.Error(), "disk full")
}
