package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Parser reads a PokerStars VR match log and turns it into hands.
type Parser struct {
	path string
	file *os.File
}

// ParseCallback is called during parsing to report progress. It may be
// invoked from several workers at once.
type ParseCallback func(stage string, done, total int, pct float64)

// Options controls a bulk parse.
type Options struct {
	// Workers bounds the number of hands parsed at once; <= 0 uses NumCPU.
	Workers int
	// FailFast stops at the first hand that fails and returns its error.
	FailFast bool
	// MaxFailures stops submitting hands once this many have failed; 0 means no limit.
	MaxFailures int
	// Hands selects hand indexes to parse; nil parses every hand.
	Hands []int
}

// Result is the outcome of one hand. Exactly one of Hand and Err is set.
type Result struct {
	Index int
	Hand  *Hand
	Err   error
}

// Report collects the results of a bulk parse, ordered by hand index.
type Report struct {
	Total   int
	Parsed  int
	Failed  int
	Stopped bool
	Results []Result
}

// Hands returns the successfully parsed hands in index order.
func (r *Report) Hands() []*Hand {
	hands := make([]*Hand, 0, r.Parsed)
	for _, res := range r.Results {
		if res.Hand != nil {
			hands = append(hands, res.Hand)
		}
	}
	return hands
}

// Failures returns the per-hand errors in index order.
func (r *Report) Failures() []*HandError {
	var out []*HandError
	for _, res := range r.Results {
		if res.Err == nil {
			continue
		}
		he, ok := res.Err.(*HandError)
		if !ok {
			he = &HandError{Index: res.Index, Err: res.Err}
		}
		out = append(out, he)
	}
	return out
}

// NewParser creates a new parser for the given log file.
func NewParser(path string) (*Parser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access log file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("log path %s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Parser{path: path, file: f}, nil
}

// Path returns the log file path.
func (p *Parser) Path() string {
	return p.path
}

// Close releases the log file. It is safe to call more than once.
func (p *Parser) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// Blocks reads the whole log and segments it into hands.
func (p *Parser) Blocks() ([]Block, error) {
	if p.file == nil {
		return nil, fmt.Errorf("log file %s already closed", p.path)
	}
	if _, err := p.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind log file: %w", err)
	}
	data, err := io.ReadAll(p.file)
	if err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return Segment(string(data))
}

// Parse segments the log and parses the selected hands.
func (p *Parser) Parse(ctx context.Context, opts Options, callback ParseCallback) (*Report, error) {
	blocks, err := p.Blocks()
	if err != nil {
		return nil, err
	}
	if callback != nil {
		callback("segment", len(blocks), len(blocks), 1.0)
	}
	selected, err := Select(blocks, opts.Hands)
	if err != nil {
		return nil, err
	}
	return ParseAll(ctx, selected, opts, callback)
}

// Select picks blocks by hand index. The result is in log order with
// duplicates dropped, whatever order the indices were given in. A nil
// selection returns every block.
func Select(blocks []Block, hands []int) ([]Block, error) {
	if hands == nil {
		return blocks, nil
	}
	picked := make([]bool, len(blocks))
	for _, i := range hands {
		if i < 0 || i >= len(blocks) {
			return nil, fmt.Errorf("hand index %d out of range: log holds %d hands", i, len(blocks))
		}
		picked[i] = true
	}
	out := make([]Block, 0, len(hands))
	for i, ok := range picked {
		if ok {
			out = append(out, blocks[i])
		}
	}
	return out, nil
}

// ParseAll parses blocks in parallel. Hands share no state, so workers only
// coordinate on the failure count. Without FailFast a failing hand is
// recorded in the report and the run continues.
func ParseAll(ctx context.Context, blocks []Block, opts Options, callback ParseCallback) (*Report, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]Result, len(blocks))
	var failures, done atomic.Int64
	submitted := 0
	stopped := false

	for i, b := range blocks {
		if gctx.Err() != nil {
			stopped = true
			break
		}
		if opts.MaxFailures > 0 && failures.Load() >= int64(opts.MaxFailures) {
			stopped = true
			break
		}
		submitted = i + 1

		i, b := i, b
		g.Go(func() error {
			hand, err := ParseHand(b.Index, b.Lines)
			results[i] = Result{Index: b.Index, Hand: hand, Err: err}
			if err != nil {
				failures.Add(1)
				if opts.FailFast {
					return err
				}
			}
			n := done.Add(1)
			if callback != nil {
				callback("parse", int(n), len(blocks), float64(n)/float64(len(blocks)))
			}
			return nil
		})
	}

	waitErr := g.Wait()

	report := &Report{Total: len(blocks), Stopped: stopped, Results: results[:submitted]}
	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Index < report.Results[j].Index
	})
	for _, res := range report.Results {
		if res.Err != nil {
			report.Failed++
		} else {
			report.Parsed++
		}
	}

	if waitErr != nil {
		return report, waitErr
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}
