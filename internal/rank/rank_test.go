package rank

import (
	"fmt"
	"testing"

	"vision/internal/video"
)

func TestQuotaTruncation(t *testing.T) {
	items := make([]video.Scored, 100)
	for i := range items {
		items[i] = video.Scored{
			Video:  video.Video{ID: fmt.Sprintf("v%03d", i), Likes: uint64(i)},
			Bucket: video.BucketGeneral,
		}
	}

	out := Select(items, []View{{Bucket: video.BucketGeneral, Metric: video.MetricLikes, Quota: 30}})
	if len(out) != 1 {
		t.Fatalf("rankings = %d, want 1", len(out))
	}
	got := out[0].Items
	if len(got) != 30 {
		t.Fatalf("items = %d, want 30", len(got))
	}
	// Top 30 by likes descending: 99 down to 70.
	for i, item := range got {
		if want := uint64(99 - i); item.Likes != want {
			t.Errorf("position %d: likes = %d, want %d", i, item.Likes, want)
		}
	}
}

func TestTieStability(t *testing.T) {
	items := []video.Scored{
		{Video: video.Video{ID: "first", Likes: 10}, Bucket: video.BucketMusic},
		{Video: video.Video{ID: "second", Likes: 10}, Bucket: video.BucketMusic},
		{Video: video.Video{ID: "third", Likes: 10}, Bucket: video.BucketMusic},
		{Video: video.Video{ID: "top", Likes: 20}, Bucket: video.BucketMusic},
	}

	out := Select(items, []View{{Bucket: video.BucketMusic, Metric: video.MetricLikes, Quota: 3}})
	got := out[0].Items
	want := []string{"top", "first", "second"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, want[i])
		}
	}
}

func TestViewsAreIndependent(t *testing.T) {
	items := []video.Scored{
		{Video: video.Video{ID: "liked", Likes: 100, Comments: 1}, Bucket: video.BucketGeneral},
		{Video: video.Video{ID: "discussed", Likes: 1, Comments: 100}, Bucket: video.BucketGeneral},
	}

	out := Select(items, []View{
		{Bucket: video.BucketGeneral, Metric: video.MetricLikes, Quota: 1},
		{Bucket: video.BucketGeneral, Metric: video.MetricComments, Quota: 1},
	})

	if out[0].Items[0].ID != "liked" {
		t.Errorf("likes view top = %q, want liked", out[0].Items[0].ID)
	}
	if out[1].Items[0].ID != "discussed" {
		t.Errorf("comments view top = %q, want discussed", out[1].Items[0].ID)
	}
}

func TestBreakoutViewUsesFlagNotBucket(t *testing.T) {
	items := []video.Scored{
		{Video: video.Video{ID: "viral-music"}, Bucket: video.BucketMusic, Breakout: true, ReachRatio: 8},
		{Video: video.Video{ID: "plain-music"}, Bucket: video.BucketMusic, ReachRatio: 0.2},
		{Video: video.Video{ID: "viral-general"}, Bucket: video.BucketGeneral, Breakout: true, ReachRatio: 5},
	}

	out := Select(items, []View{
		{Bucket: video.BucketBreakout, Metric: video.MetricReach, Quota: 10},
		{Bucket: video.BucketMusic, Metric: video.MetricLikes, Quota: 10},
	})

	breakout := out[0].Items
	if len(breakout) != 2 || breakout[0].ID != "viral-music" || breakout[1].ID != "viral-general" {
		t.Fatalf("breakout view = %+v", breakout)
	}
	// The viral music item still appears in its topical bucket.
	if len(out[1].Items) != 2 {
		t.Errorf("music view lost an item to breakout: %+v", out[1].Items)
	}
}
