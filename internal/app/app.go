// Package app wires the pipeline: collect, enrich, classify, score, select,
// optionally attach comments, then hand the finalized rankings to the
// renderer. Partial remote failures shrink the candidate pool; only a
// missing credential aborts the run.
package app

import (
	"context"
	"fmt"
	"time"

	"vision/internal/classify"
	"vision/internal/collector"
	"vision/internal/comments"
	"vision/internal/config"
	"vision/internal/enrich"
	"vision/internal/logger"
	"vision/internal/metrics"
	"vision/internal/quota"
	"vision/internal/rank"
	"vision/internal/render"
	"vision/internal/retry"
	"vision/internal/roster"
	"vision/internal/score"
	"vision/internal/storage"
	"vision/internal/video"
	"vision/internal/youtube"
)

func Run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	acct := quota.New(cfg.QuotaBudget)
	rc := retry.RetryConfig{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}

	client, err := youtube.NewClient(ctx, cfg.APIKey, acct, rc, cfg.RequestTimeout)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("construct catalog client: %w", err)
	}

	// Regional trending pipeline.
	var rankings []rank.Ranking
	if len(cfg.Regions) > 0 {
		pool := collector.New(client, cfg.Regions, cfg.PerRegionMax, cfg.FetchWorkers).Collect(ctx)
		enriched := enrich.Enrich(ctx, client, pool.Videos)
		kept := classify.New(cfg.MinDurationSec, cfg.CategoryBlacklist).Classify(enriched)
		scored := score.Apply(kept, score.Config{
			RatioThreshold: cfg.BreakoutRatio,
			ViewFloor:      cfg.BreakoutViewFloor,
		})
		rankings = rank.Select(scored, viewsFromConfig(cfg.Views))
		logger.Info("selection done",
			"pool", len(pool.Videos), "kept", len(kept), "views", len(rankings))
	}

	// Roster pipeline, sharing the client but bypassing classify/score.
	var zones []roster.ZoneResult
	if len(cfg.Zones) > 0 {
		fetcher := roster.New(client, roster.NewRSSFeed(), cfg.PerChannelMax, cfg.FetchWorkers)
		zones = fetcher.Fetch(ctx, zonesFromConfig(cfg.Zones))
	}

	// Comment enrichment is the first thing to go when quota runs low.
	if cfg.CommentsEnabled && len(rankings) > 0 {
		disk := storage.NewCommentCache(cfg.CommentCachePath, cfg.CommentTTLHours)
		if err := disk.Load(); err != nil {
			logger.Warn("comment cache unreadable, starting cold", "error", err)
		}
		comments.New(client, acct, disk).Enrich(ctx, rankings)
		if err := disk.Save(); err != nil {
			logger.Warn("comment cache not persisted", "error", err)
		}
	}

	now := time.Now()
	page := render.BuildPage(rankings, zones, now)
	if err := render.WriteFile(cfg.OutputHTMLPath, page); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	if cfg.SnapshotPath != "" {
		if err := render.WriteSnapshot(cfg.SnapshotPath, rankings, zones, now); err != nil {
			logger.Warn("snapshot not written", "error", err)
		}
	}

	metrics.Global.RecordRun(time.Since(start))
	logger.Info("run complete",
		"duration", time.Since(start).Round(time.Millisecond),
		"quota_used", acct.Used(),
		"html", cfg.OutputHTMLPath)
	return nil
}

func viewsFromConfig(views []config.ViewConfig) []rank.View {
	out := make([]rank.View, 0, len(views))
	for _, v := range views {
		out = append(out, rank.View{
			Bucket: video.Bucket(v.Bucket),
			Metric: video.Metric(v.Metric),
			Quota:  v.Quota,
		})
	}
	return out
}

func zonesFromConfig(zones []config.ZoneConfig) []roster.Zone {
	out := make([]roster.Zone, 0, len(zones))
	for _, z := range zones {
		out = append(out, roster.Zone{Name: z.Name, Channels: z.Channels})
	}
	return out
}
