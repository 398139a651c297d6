// Package rank orders each bucket's candidates by a configured metric and
// truncates to the view's quota.
package rank

import (
	"sort"

	"vision/internal/video"
)

// View names one ordered slice of the digest: a bucket, the metric it is
// sorted by, and how many items it may present. Views over the same bucket
// are independent — each sorts and truncates its own copy of the pool.
type View struct {
	Bucket video.Bucket
	Metric video.Metric
	Quota  int
}

// Ranking is one finalized, ordered item list handed to the renderer.
type Ranking struct {
	View
	Items []video.Scored
}

// Select builds every configured view from the scored pool. The sort is
// stable, so items tied on the metric keep their collection order. The
// breakout bucket draws from the breakout flag rather than topic.
func Select(items []video.Scored, views []View) []Ranking {
	out := make([]Ranking, 0, len(views))
	for _, view := range views {
		candidates := filter(items, view.Bucket)
		sortByMetric(candidates, view.Metric)
		if view.Quota > 0 && len(candidates) > view.Quota {
			candidates = candidates[:view.Quota]
		}
		out = append(out, Ranking{View: view, Items: candidates})
	}
	return out
}

func filter(items []video.Scored, bucket video.Bucket) []video.Scored {
	var out []video.Scored
	for _, item := range items {
		if bucket == video.BucketBreakout {
			if item.Breakout {
				out = append(out, item)
			}
			continue
		}
		if item.Bucket == bucket {
			out = append(out, item)
		}
	}
	return out
}

func sortByMetric(items []video.Scored, metric video.Metric) {
	switch metric {
	case video.MetricComments:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Comments > items[j].Comments
		})
	case video.MetricReach:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ReachRatio > items[j].ReachRatio
		})
	default: // MetricLikes
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Likes > items[j].Likes
		})
	}
}
