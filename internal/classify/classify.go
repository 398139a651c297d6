// Package classify applies the inclusion rules and assigns each surviving
// item to exactly one topical bucket.
package classify

import (
	"vision/internal/logger"
	"vision/internal/video"
)

// bucketByCategory is the fixed category-to-bucket table. Category codes are
// the Data API videoCategoryId values; anything not listed falls through to
// the general bucket.
var bucketByCategory = map[string]video.Bucket{
	"10": video.BucketMusic,         // Music
	"23": video.BucketEntertainment, // Comedy
	"24": video.BucketEntertainment, // Entertainment
}

type Classifier struct {
	minDurationSec int64
	blacklist      map[string]struct{}
}

func New(minDurationSec int64, blacklist []string) *Classifier {
	bl := make(map[string]struct{}, len(blacklist))
	for _, c := range blacklist {
		bl[c] = struct{}{}
	}
	return &Classifier{minDurationSec: minDurationSec, blacklist: bl}
}

// Classify filters and buckets the enriched pool. Rules apply in order:
// minimum duration (drops short-form content, including anything that failed
// duration parsing), category blacklist, then the bucket table. Rejected
// items are dropped entirely. Deterministic: the same input always produces
// the same membership.
func (c *Classifier) Classify(items []video.Scored) []video.Scored {
	out := make([]video.Scored, 0, len(items))
	for _, item := range items {
		if item.DurationSec < c.minDurationSec {
			continue
		}
		if _, banned := c.blacklist[item.CategoryID]; banned {
			continue
		}
		item.Bucket = BucketFor(item.CategoryID)
		out = append(out, item)
	}
	logger.Debug("classification done", "in", len(items), "kept", len(out))
	return out
}

// BucketFor maps a category code to its topical bucket.
func BucketFor(categoryID string) video.Bucket {
	if b, ok := bucketByCategory[categoryID]; ok {
		return b
	}
	return video.BucketGeneral
}
