package enrich

import (
	"context"
	"errors"
	"testing"

	"vision/internal/video"
)

type fakeStats struct {
	stats map[string]video.ChannelStat
	err   error
	calls int
}

func (f *fakeStats) FetchChannelStats(_ context.Context, _ []string) (map[string]video.ChannelStat, error) {
	f.calls++
	return f.stats, f.err
}

func TestEnrichAttachesSubscribers(t *testing.T) {
	client := &fakeStats{stats: map[string]video.ChannelStat{
		"ch-a": {ChannelID: "ch-a", Subscribers: 12345},
	}}
	pool := []video.Video{
		{ID: "v1", ChannelID: "ch-a", Duration: "PT2M"},
		{ID: "v2", ChannelID: "ch-b", Duration: "PT1M30S"},
	}

	out := Enrich(context.Background(), client, pool)
	if len(out) != 2 {
		t.Fatalf("enriched = %d, want 2", len(out))
	}
	if out[0].Subscribers != 12345 {
		t.Errorf("v1 subscribers = %d, want 12345", out[0].Subscribers)
	}
	if out[0].DurationSec != 120 || out[1].DurationSec != 90 {
		t.Errorf("durations = %d, %d", out[0].DurationSec, out[1].DurationSec)
	}
}

func TestUnknownAndZeroSubscribersGetSentinel(t *testing.T) {
	client := &fakeStats{stats: map[string]video.ChannelStat{
		"ch-zero": {ChannelID: "ch-zero", Subscribers: 0},
	}}
	pool := []video.Video{
		{ID: "v1", ChannelID: "ch-zero"},
		{ID: "v2", ChannelID: "ch-missing"},
	}

	out := Enrich(context.Background(), client, pool)
	for _, item := range out {
		if item.Subscribers != video.UnknownSubscribers {
			t.Errorf("%s subscribers = %d, want sentinel", item.ID, item.Subscribers)
		}
	}
}

func TestStatsFailureDoesNotFailItems(t *testing.T) {
	client := &fakeStats{err: errors.New("stats down")}
	pool := []video.Video{{ID: "v1", ChannelID: "ch-a", Duration: "PT5M"}}

	out := Enrich(context.Background(), client, pool)
	if len(out) != 1 {
		t.Fatalf("enriched = %d, want 1 (best effort)", len(out))
	}
	if out[0].Subscribers != video.UnknownSubscribers {
		t.Errorf("subscribers = %d, want sentinel on failure", out[0].Subscribers)
	}
}

func TestStatsResolvedInOnePass(t *testing.T) {
	client := &fakeStats{stats: map[string]video.ChannelStat{}}
	pool := []video.Video{
		{ID: "v1", ChannelID: "ch-a"},
		{ID: "v2", ChannelID: "ch-a"},
		{ID: "v3", ChannelID: "ch-b"},
	}

	Enrich(context.Background(), client, pool)
	if client.calls != 1 {
		t.Errorf("stats calls = %d, want 1", client.calls)
	}
}
