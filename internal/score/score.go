// Package score computes reach ratios and flags breakout items.
package score

import "vision/internal/video"

type Config struct {
	// RatioThreshold is exclusive: a ratio of exactly this value does not
	// qualify.
	RatioThreshold float64
	// ViewFloor is exclusive as well. It keeps near-zero-subscriber,
	// near-zero-view channels from dominating the breakout class on ratio
	// alone.
	ViewFloor uint64
}

// Apply computes each item's reach ratio (views over subscribers) and marks
// breakout items. Breakout is additive: the item keeps its topical bucket.
func Apply(items []video.Scored, cfg Config) []video.Scored {
	out := make([]video.Scored, len(items))
	for i, item := range items {
		subs := item.Subscribers
		if subs == 0 {
			// Enrichment substitutes the sentinel, so this should not
			// happen; guard anyway rather than divide by zero.
			subs = video.UnknownSubscribers
		}
		item.ReachRatio = float64(item.Views) / float64(subs)
		item.Breakout = item.ReachRatio > cfg.RatioThreshold && item.Views > cfg.ViewFloor
		out[i] = item
	}
	return out
}
