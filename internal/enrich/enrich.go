// Package enrich attaches channel statistics and normalized durations to
// the collected pool.
package enrich

import (
	"context"

	"vision/internal/logger"
	"vision/internal/video"
)

// StatsClient resolves subscriber counts for a set of channel ids.
type StatsClient interface {
	FetchChannelStats(ctx context.Context, channelIDs []string) (map[string]video.ChannelStat, error)
}

// Enrich resolves every distinct owning channel's subscriber count in one
// chunked pass and parses the duration field. A failed stats lookup never
// fails the item: unknown or zero subscriber counts get the sentinel so the
// reach ratio can never divide by zero.
func Enrich(ctx context.Context, client StatsClient, pool []video.Video) []video.Scored {
	channelIDs := make([]string, 0, len(pool))
	for _, v := range pool {
		channelIDs = append(channelIDs, v.ChannelID)
	}

	stats, err := client.FetchChannelStats(ctx, channelIDs)
	if err != nil {
		logger.Warn("channel stats incomplete", "resolved", len(stats), "error", err)
	}
	if stats == nil {
		stats = map[string]video.ChannelStat{}
	}

	out := make([]video.Scored, 0, len(pool))
	for _, v := range pool {
		subs := video.UnknownSubscribers
		if st, ok := stats[v.ChannelID]; ok && st.Subscribers > 0 {
			subs = st.Subscribers
		}
		out = append(out, video.Scored{
			Video:       v,
			DurationSec: ParseISODuration(v.Duration),
			Subscribers: subs,
		})
	}
	return out
}
