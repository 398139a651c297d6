// Package comments optionally enriches selected items with one top comment
// each. This is the least essential remote work of the run: it stops first
// when the quota gate trips, and everything already ranked still renders.
package comments

import (
	"context"
	"time"

	"vision/internal/cache"
	"vision/internal/logger"
	"vision/internal/metrics"
	"vision/internal/rank"
	"vision/internal/storage"
)

type Client interface {
	FetchTopComment(ctx context.Context, videoID string) (string, error)
}

// QuotaGate reports whether non-essential calls should stop.
type QuotaGate interface {
	Exhausted() bool
}

type Enricher struct {
	client Client
	gate   QuotaGate
	mem    *cache.Cache          // dedups across views within the run
	disk   *storage.CommentCache // survives across runs, may be nil
}

func New(client Client, gate QuotaGate, disk *storage.CommentCache) *Enricher {
	return &Enricher{client: client, gate: gate, mem: cache.New(), disk: disk}
}

// Enrich fills TopComment on every ranked item, best effort. A failed or
// skipped lookup leaves the field empty; nothing propagates to the caller.
func (e *Enricher) Enrich(ctx context.Context, rankings []rank.Ranking) {
	for ri := range rankings {
		items := rankings[ri].Items
		for i := range items {
			id := items[i].ID

			if c, ok := e.mem.Get(id); ok {
				items[i].TopComment = c
				continue
			}
			if e.disk != nil {
				if c, ok := e.disk.Get(id); ok {
					items[i].TopComment = c
					e.mem.Set(id, c, time.Hour)
					metrics.Global.AddCommentCacheHit()
					continue
				}
			}

			if ctx.Err() != nil {
				return
			}
			if e.gate != nil && e.gate.Exhausted() {
				logger.Info("quota exhausted, comment enrichment stopped")
				return
			}

			c, err := e.client.FetchTopComment(ctx, id)
			if err != nil {
				logger.Debug("top comment unavailable", "video", id, "error", err)
				// Negative-cache within the run so other views don't retry.
				e.mem.Set(id, "", time.Hour)
				continue
			}
			items[i].TopComment = c
			e.mem.Set(id, c, time.Hour)
			if e.disk != nil && c != "" {
				e.disk.Put(id, c)
			}
			metrics.Global.AddCommentFetched()
		}
	}
}
