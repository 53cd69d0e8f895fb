package report

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kvk/backend/internal/domain/hierarchy"
	"github.com/kvk/backend/internal/domain/report"
)

const (
	minConcurrentFetches = 1
	maxConcurrentFetches = 16
)

// Aggregator fans a section fetch out over the scoped KVKs with bounded
// parallelism and folds the per-KVK results back into one payload. A
// fetch failure for one KVK is contained as a per-KVK error; only context
// cancellation aborts the whole section.
type Aggregator struct {
	fetcher     *SectionFetcher
	concurrency int
	logger      *zap.Logger
}

// NewAggregator creates a new Aggregator. The concurrency limit is
// clamped to [1, 16].
func NewAggregator(fetcher *SectionFetcher, concurrency int, logger *zap.Logger) *Aggregator {
	if concurrency < minConcurrentFetches {
		concurrency = minConcurrentFetches
	}
	if concurrency > maxConcurrentFetches {
		concurrency = maxConcurrentFetches
	}
	return &Aggregator{fetcher: fetcher, concurrency: concurrency, logger: logger}
}

// AggregateSection fetches one section for every KVK in scope and builds
// the section payload. Rows follow the canonical order of the kvks slice
// regardless of fetch completion order.
func (a *Aggregator) AggregateSection(ctx context.Context, d report.SectionDescriptor, kvks []hierarchy.Kvk, filter report.Filter) (*report.SectionPayload, error) {
	results := make([]*FetchResult, len(kvks))
	fetchErrs := make([]error, len(kvks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i := range kvks {
		g.Go(func() error {
			res, err := a.fetcher.Fetch(gctx, d, kvks[i], filter)
			if err != nil {
				// Cancellation aborts the whole report. Anything else is
				// contained so the other KVKs still report.
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				a.logger.Warn("section fetch failed for kvk",
					zap.String("section_id", d.ID),
					zap.String("kvk_id", kvks[i].ID.String()),
					zap.Error(err),
				)
				fetchErrs[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate section %s: %w", d.ID, err)
	}

	payload := &report.SectionPayload{
		SectionID: d.ID,
		Title:     d.Title,
		Format:    d.Format,
		Columns:   d.Columns(),
		GroupBy:   d.GroupBy,
	}
	for i, kvk := range kvks {
		if fetchErrs[i] != nil {
			payload.PerKvkErrors = append(payload.PerKvkErrors, report.KvkError{
				KvkID:  kvk.ID,
				Reason: fetchErrs[i].Error(),
			})
			continue
		}
		res := results[i]
		rows := res.Rows
		if d.Format == report.FormatNarrative && len(rows) > 1 {
			payload.Warnings = append(payload.Warnings, fmt.Sprintf(
				"%s: narrative section returned %d records, keeping the first", kvk.Name, len(rows)))
			rows = rows[:1]
		}
		payload.Rows = append(payload.Rows, rows...)
		payload.Warnings = append(payload.Warnings, res.Warnings...)
	}
	if len(payload.Rows) == 0 && len(payload.PerKvkErrors) == 0 {
		payload.Warnings = append(payload.Warnings, "no records found for the selected scope and filter")
	}
	return payload, nil
}
