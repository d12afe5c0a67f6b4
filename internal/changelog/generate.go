package changelog

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for changelog generation.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// DefaultWorkers is the default number of ranges classified and rendered at once.
const DefaultWorkers = 4

// Generator produces a complete changelog document from a Source.
//
// Commits are read from the Source one window at a time. Classification and
// grouping then run concurrently per window; the ranges keep planning order,
// so concurrency never reorders the document.
type Generator struct {
	source     Source
	linkBase   string
	headings   Headings
	workers    int
	unreleased bool
	onWindow   func(w Window, index, total int)
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers sets the maximum number of windows processed concurrently.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n >= 1 {
			g.workers = n
		}
	}
}

// WithHeadings replaces the default heading table.
func WithHeadings(h Headings) Option {
	return func(g *Generator) {
		g.headings = h
	}
}

// WithUnreleased adds a leading window for commits after the newest tag.
func WithUnreleased(enabled bool) Option {
	return func(g *Generator) {
		g.unreleased = enabled
	}
}

// WithProgress registers a callback invoked before each window's commits are read.
func WithProgress(fn func(w Window, index, total int)) Option {
	return func(g *Generator) {
		g.onWindow = fn
	}
}

// NewGenerator creates a Generator reading from src. linkBase prefixes every
// commit link and is used verbatim.
func NewGenerator(src Source, linkBase string, opts ...Option) *Generator {
	g := &Generator{
		source:   src,
		linkBase: linkBase,
		headings: DefaultHeadings(),
		workers:  DefaultWorkers,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Ranges plans the windows, reads their commits and returns the grouped ranges
// newest first.
func (g *Generator) Ranges(ctx context.Context) ([]Range, error) {
	windows, batches, err := g.collect(ctx)
	if err != nil {
		return nil, err
	}

	ranges := make([]Range, len(windows))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i := range windows {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			ranges[i] = BuildRange(windows[i], batches[i], g.linkBase, g.headings)
			logDebug("[changelog] built %s: %d commits in %d sections", ranges[i].EndTag, ranges[i].CommitCount(), len(ranges[i].Sections))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return ranges, nil
}

// Generate writes the changelog document to w.
func (g *Generator) Generate(ctx context.Context, w io.Writer) error {
	ranges, err := g.Ranges(ctx)
	if err != nil {
		return err
	}
	if err := RenderMarkdown(ranges, w); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// collect plans the windows and reads each window's commits sequentially.
func (g *Generator) collect(ctx context.Context) ([]Window, [][]RawCommit, error) {
	windows, err := PlanRanges(ctx, g.source, PlanOptions{Unreleased: g.unreleased})
	if err != nil {
		return nil, nil, err
	}

	batches := make([][]RawCommit, len(windows))
	for i, w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if g.onWindow != nil {
			g.onWindow(w, i, len(windows))
		}

		commits, err := g.source.ListCommits(ctx, w.From, w.To)
		if err != nil {
			return nil, nil, fmt.Errorf("listing commits %s..%s: %w", w.From, w.To, err)
		}
		logDebug("[changelog] %s..%s: %d commits", w.From, w.To, len(commits))
		batches[i] = commits
	}

	return windows, batches, nil
}
