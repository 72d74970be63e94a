package checker

import (
	"context"
	"runtime"
	"sync"
)

// CheckAll checks paths concurrently on a worker pool limited to GOMAXPROCS.
// Results are returned in the order of paths. Once ctx is done no further
// documents are dispatched; those left over get StatusError with ctx's error.
func (c *Checker) CheckAll(ctx context.Context, paths []string) []DocumentResult {
	if len(paths) == 0 {
		return nil
	}

	workers := min(runtime.GOMAXPROCS(0), len(paths))

	results := make([]DocumentResult, len(paths))
	dispatched := make([]bool, len(paths))
	work := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = c.Check(paths[i])
			}
		}()
	}

dispatch:
	for i := range paths {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case work <- i:
			dispatched[i] = true
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i, ok := range dispatched {
			if ok {
				continue
			}
			c.logger.Debug("document not checked", "path", paths[i], "error", err)
			results[i] = DocumentResult{Path: paths[i], Status: StatusError, Err: err}
		}
	}
	return results
}

// Summary counts results by outcome.
type Summary struct {
	Total         int `json:"total"`
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`
	NoFrontmatter int `json:"no_frontmatter"`
	NoRules       int `json:"no_rules"`
	Errors        int `json:"errors"`
}

// Summarize tallies results.
func Summarize(results []DocumentResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusNoFrontmatter:
			s.NoFrontmatter++
		case StatusNoRules:
			s.NoRules++
		case StatusError:
			s.Errors++
		}
		if r.Passes {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// OK reports whether every document passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}
