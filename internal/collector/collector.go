// Package collector scans the configured regions' popular charts and merges
// the results into one deduplicated pool.
package collector

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"vision/internal/logger"
	"vision/internal/metrics"
	"vision/internal/video"
)

// CatalogClient is the slice of the API surface the collector needs.
type CatalogClient interface {
	FetchTrending(ctx context.Context, region string, max int64) ([]video.Video, error)
	FetchDetails(ctx context.Context, ids []string) ([]video.Video, error)
}

type Collector struct {
	client    CatalogClient
	regions   []string
	perRegion int64
	workers   int
}

// Result is the deduplicated pool plus skip counts for observability.
type Result struct {
	Videos        []video.Video
	RegionsFailed int
}

func New(client CatalogClient, regions []string, perRegion int64, workers int) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{client: client, regions: regions, perRegion: perRegion, workers: workers}
}

// Collect fetches every region's chart in parallel and merges the results.
// One region failing never aborts the run: it is logged, counted, and the
// remaining regions proceed. First-seen wins on duplicate ids — the origin
// region tag of the first sighting is kept.
func (c *Collector) Collect(ctx context.Context) Result {
	var (
		mu     sync.Mutex
		seen   = make(map[string]struct{})
		pool   []video.Video
		failed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, region := range c.regions {
		region := region
		g.Go(func() error {
			items, err := c.client.FetchTrending(gctx, region, c.perRegion)
			metrics.Global.AddRegionScanned()
			if err != nil {
				logger.Warn("region scan failed, skipping", "region", region, "error", err)
				metrics.Global.AddRegionFailed()
				mu.Lock()
				failed++
				mu.Unlock()
				if len(items) == 0 {
					return nil
				}
				// Partial page results are still worth merging.
			}

			mu.Lock()
			for _, v := range items {
				if _, dup := seen[v.ID]; dup {
					metrics.Global.AddDuplicateFiltered()
					continue
				}
				seen[v.ID] = struct{}{}
				pool = append(pool, v)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, fault isolation is per region

	metrics.Global.AddVideosCollected(len(pool))
	logger.Info("regional scan merged", "regions", len(c.regions), "failed", failed, "pool", len(pool))

	return Result{Videos: c.enrichDetails(ctx, pool), RegionsFailed: failed}
}

// enrichDetails re-resolves the pool through the batched details lookup.
// The chart call does not reliably populate statistics and content metadata,
// so the pool's ids go through videos.list again in 50-id chunks. The
// first-seen region tag survives the overlay.
func (c *Collector) enrichDetails(ctx context.Context, pool []video.Video) []video.Video {
	if len(pool) == 0 {
		return pool
	}

	ids := make([]string, len(pool))
	for i, v := range pool {
		ids[i] = v.ID
	}

	details, err := c.client.FetchDetails(ctx, ids)
	if err != nil {
		logger.Warn("detail enrichment incomplete", "resolved", len(details), "error", err)
	}

	byID := make(map[string]video.Video, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	out := make([]video.Video, 0, len(pool))
	for _, v := range pool {
		if d, ok := byID[v.ID]; ok {
			d.Region = v.Region
			out = append(out, d)
			continue
		}
		out = append(out, v) // chart data is better than nothing
	}
	return out
}
