package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/octobees/backlink-outreach/internal/entity"
)

const (
	defaultBatchWorkers  = 3
	defaultBatchDeadline = 12 * time.Second

	timeoutMessage = "Processing timed out"
)

// Orchestrator fans a batch of URLs out over a bounded worker pool and
// collects exactly one result per input URL, in completion order.
//
// The batch waits at most the configured deadline; any task still running
// when it elapses is reported as a "Processing timed out" ExtractionError.
// Late tasks are abandoned, not cancelled: they hold their worker slot
// until the in-flight fetch finishes. The result channel is buffered for
// the whole batch so an abandoned task never blocks on send.
type Orchestrator struct {
	scraper  *Scraper
	workers  int
	deadline time.Duration
	logger   *zap.Logger
}

// NewOrchestrator builds a batch orchestrator. Non-positive workers or
// deadline fall back to 3 workers and 12s.
func NewOrchestrator(scraper *Scraper, workers int, deadline time.Duration, logger *zap.Logger) *Orchestrator {
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	if deadline <= 0 {
		deadline = defaultBatchDeadline
	}
	return &Orchestrator{
		scraper:  scraper,
		workers:  workers,
		deadline: deadline,
		logger:   logger,
	}
}

type taskResult struct {
	index  int
	result entity.Result
}

// Process scrapes every URL and drafts an outreach email for each
// successful extraction. The returned slice always has one entry per input
// URL; a nil drafter skips the drafting step.
func (o *Orchestrator) Process(ctx context.Context, urls []string, campaign entity.CampaignContext, drafter Drafter) []entity.Result {
	results := make(chan taskResult, len(urls))

	p := pool.New().WithMaxGoroutines(o.workers)
	for i, u := range urls {
		i, u := i, u
		p.Go(func() {
			results <- taskResult{index: i, result: o.runTask(ctx, u, campaign, drafter)}
		})
	}
	go p.Wait()

	collected := make([]entity.Result, 0, len(urls))
	pending := make(map[int]struct{}, len(urls))
	for i := range urls {
		pending[i] = struct{}{}
	}

	timer := time.NewTimer(o.deadline)
	defer timer.Stop()

	for len(pending) > 0 {
		select {
		case r := <-results:
			delete(pending, r.index)
			collected = append(collected, r.result)
		case <-timer.C:
			o.logger.Warn("batch deadline elapsed",
				zap.Int("pending", len(pending)),
				zap.Duration("deadline", o.deadline))
			for i := range pending {
				collected = append(collected, extractionError(urls[i], timeoutMessage))
			}
			return collected
		}
	}
	return collected
}

// runTask is the per-URL unit of work: extraction, then drafting for
// successful records. Panics from the task machinery become error records
// so a single bad URL can never abort its siblings.
func (o *Orchestrator) runTask(ctx context.Context, rawURL string, campaign entity.CampaignContext, drafter Drafter) (result entity.Result) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("task panicked", zap.String("url", rawURL), zap.Any("panic", r))
			result = extractionError(rawURL, fmt.Sprintf("%v", r))
		}
	}()

	result = o.scraper.ScrapeURL(ctx, rawURL)

	record, ok := result.(entity.BusinessRecord)
	if !ok || drafter == nil {
		return result
	}

	email, err := drafter.Draft(ctx, record.BusinessName, campaign)
	if err != nil {
		email = DraftFailureMessage(err)
	}
	record.OutreachEmail = email
	return record
}
