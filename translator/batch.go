package translator

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one input of a batch. Index is the position of
// the input in the slice handed to TranslateAll.
type Result struct {
	Index int
	Text  string
	Err   error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// TranslateAll translates texts concurrently using the client's worker count.
func (c *Client) TranslateAll(ctx context.Context, texts []string, from, to string) []Result {
	return c.TranslateAllWithWorkers(ctx, texts, from, to, c.workers)
}

// TranslateAllWithWorkers translates texts with at most workers requests in
// flight. The returned slice always has len(texts) entries in input order;
// a failed item never stops the others.
func (c *Client) TranslateAllWithWorkers(ctx context.Context, texts []string, from, to string, workers int) []Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	batchID := uuid.NewString()
	started := time.Now()
	results := make([]Result, len(texts))

	c.logger.Debug("batch started",
		zap.String("batch_id", batchID),
		zap.Int("items", len(texts)),
		zap.Int("workers", workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Index: i, Err: err}
				return nil
			}
			translated, err := c.Translate(gctx, text, from, to)
			results[i] = Result{Index: i, Text: translated, Err: err}
			return nil
		})
	}
	_ = g.Wait() // errors are carried per item

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	c.logger.Info("batch finished",
		zap.String("batch_id", batchID),
		zap.Int("ok", len(results)-failed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(started)),
	)
	return results
}
