// Package video holds the core data model shared by every pipeline stage.
package video

// Bucket is a topical partition of the final digest. Breakout is a
// cross-cutting class evaluated independently of topic.
type Bucket string

const (
	BucketMusic         Bucket = "music"
	BucketEntertainment Bucket = "entertainment"
	BucketGeneral       Bucket = "general"
	BucketBreakout      Bucket = "breakout"
)

// Metric selects how a bucket view is ordered.
type Metric string

const (
	MetricLikes    Metric = "likes"
	MetricComments Metric = "comments"
	MetricReach    Metric = "reach"
)

// UnknownSubscribers is substituted when a channel's subscriber count is
// hidden, missing, or zero. Large enough that the reach ratio of such a
// channel can never spike on a near-zero divisor.
const UnknownSubscribers uint64 = 1_000_000_000

// Video is one piece of catalog content. Instances are rebuilt from remote
// data on every run; the ID is the deduplication key for the whole pass.
type Video struct {
	ID           string
	Title        string
	ChannelID    string
	ChannelTitle string
	CategoryID   string
	Duration     string // raw ISO-8601 value, e.g. "PT4M13S"
	Views        uint64
	Likes        uint64
	Comments     uint64
	Region       string // first-seen region code, empty for roster pulls
	Thumbnail    string
}

// ChannelStat carries the per-channel statistics used by the scorer.
type ChannelStat struct {
	ChannelID   string
	Subscribers uint64
}

// Scored is a Video carried through enrichment, classification and scoring.
type Scored struct {
	Video

	DurationSec int64
	Subscribers uint64
	ReachRatio  float64
	Bucket      Bucket
	Breakout    bool
	TopComment  string
}
