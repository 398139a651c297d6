// Package roster pulls the most recent uploads from a fixed list of
// channels, grouped into named zones. It shares the catalog client with the
// regional collector but bypasses classification and scoring.
package roster

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"vision/internal/logger"
	"vision/internal/metrics"
	"vision/internal/video"
	"vision/internal/youtube"
)

// Client is the slice of the API surface the roster fetcher needs.
type Client interface {
	ResolveUploads(ctx context.Context, channelIDs []string) (map[string]string, error)
	FetchUploads(ctx context.Context, playlistID string, max int64) ([]string, error)
	FetchDetails(ctx context.Context, ids []string) ([]video.Video, error)
}

// FeedReader resolves recent video ids without spending API quota. Used as
// a fallback once the quota gate trips mid-roster.
type FeedReader interface {
	RecentVideoIDs(ctx context.Context, channelID string, max int) ([]string, error)
}

// Zone is a named group of channels rendered as its own tab.
type Zone struct {
	Name     string
	Channels []string
}

// ZoneResult carries one zone's resolved videos plus the number of channels
// that had to be skipped.
type ZoneResult struct {
	Name    string
	Videos  []video.Video
	Skipped int
}

type Fetcher struct {
	client     Client
	feeds      FeedReader // may be nil
	perChannel int64
	workers    int
}

func New(client Client, feeds FeedReader, perChannel int64, workers int) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{client: client, feeds: feeds, perChannel: perChannel, workers: workers}
}

// Fetch resolves every zone's channels to their uploads feeds, pulls the
// most recent items per channel, then batch-resolves statistics for the
// union of pulled ids. One channel failing never aborts the rest.
func (f *Fetcher) Fetch(ctx context.Context, zones []Zone) []ZoneResult {
	var all []string
	for _, z := range zones {
		all = append(all, z.Channels...)
	}
	if len(all) == 0 {
		return nil
	}

	uploads, err := f.client.ResolveUploads(ctx, all)
	if err != nil {
		logger.Warn("uploads resolution incomplete", "resolved", len(uploads), "error", err)
	}

	// Per-channel pulls cannot be batched: each channel has a distinct feed.
	var (
		mu        sync.Mutex
		byChannel = make(map[string][]string, len(all))
		skipped   = make(map[string]bool, len(all))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for _, channelID := range all {
		channelID := channelID
		g.Go(func() error {
			ids, err := f.recentIDs(gctx, channelID, uploads[channelID])
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("channel pull failed, skipping", "channel", channelID, "error", err)
				metrics.Global.AddSourceSkipped()
				skipped[channelID] = true
				return nil
			}
			byChannel[channelID] = ids
			return nil
		})
	}
	_ = g.Wait()

	// One chunked statistics pass over the union of everything pulled.
	var union []string
	for _, ids := range byChannel {
		union = append(union, ids...)
	}
	details, err := f.client.FetchDetails(ctx, union)
	if err != nil {
		logger.Warn("roster detail enrichment incomplete", "resolved", len(details), "error", err)
	}
	byID := make(map[string]video.Video, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	out := make([]ZoneResult, 0, len(zones))
	for _, z := range zones {
		res := ZoneResult{Name: z.Name}
		for _, channelID := range z.Channels {
			if skipped[channelID] {
				res.Skipped++
				continue
			}
			for _, id := range byChannel[channelID] {
				if v, ok := byID[id]; ok {
					res.Videos = append(res.Videos, v)
				}
			}
		}
		out = append(out, res)
	}
	return out
}

// recentIDs pulls the channel's newest uploads, falling back to the public
// RSS feed when the API path is unavailable or the quota is exhausted.
func (f *Fetcher) recentIDs(ctx context.Context, channelID, playlistID string) ([]string, error) {
	var apiErr error
	if playlistID != "" {
		ids, err := f.client.FetchUploads(ctx, playlistID, f.perChannel)
		if err == nil {
			return ids, nil
		}
		apiErr = err
	}

	if f.feeds != nil && (playlistID == "" || apiErr != nil) {
		if apiErr != nil && !errors.Is(apiErr, youtube.ErrQuotaExhausted) && !errors.Is(apiErr, youtube.ErrNotFound) {
			// Transport failures are worth the fallback too.
			logger.Debug("falling back to RSS feed", "channel", channelID, "error", apiErr)
		}
		ids, ferr := f.feeds.RecentVideoIDs(ctx, channelID, int(f.perChannel))
		if ferr == nil {
			return ids, nil
		}
		if apiErr == nil {
			apiErr = ferr
		}
	}

	if apiErr == nil {
		apiErr = errors.New("no uploads playlist resolved")
	}
	return nil, apiErr
}
