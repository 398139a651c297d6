package classify

import (
	"testing"

	"vision/internal/video"
)

func scored(id, category string, durationSec int64) video.Scored {
	return video.Scored{
		Video:       video.Video{ID: id, CategoryID: category},
		DurationSec: durationSec,
	}
}

func TestDurationBoundary(t *testing.T) {
	c := New(60, nil)

	out := c.Classify([]video.Scored{
		scored("short", "10", 59),
		scored("exact", "10", 60),
	})

	if len(out) != 1 || out[0].ID != "exact" {
		t.Fatalf("expected only the 60s item to survive, got %+v", out)
	}
}

func TestZeroDurationFromParseFailureRejected(t *testing.T) {
	c := New(60, nil)
	if out := c.Classify([]video.Scored{scored("broken", "24", 0)}); len(out) != 0 {
		t.Errorf("unparsed duration should be rejected, got %+v", out)
	}
}

func TestCategoryBlacklist(t *testing.T) {
	c := New(60, []string{"25"})

	out := c.Classify([]video.Scored{
		scored("news", "25", 300),
		scored("music", "10", 300),
	})

	if len(out) != 1 || out[0].ID != "music" {
		t.Fatalf("blacklisted category should be dropped, got %+v", out)
	}
}

func TestBucketAssignment(t *testing.T) {
	cases := []struct {
		category string
		want     video.Bucket
	}{
		{"10", video.BucketMusic},
		{"23", video.BucketEntertainment},
		{"24", video.BucketEntertainment},
		{"22", video.BucketGeneral},
		{"28", video.BucketGeneral},
		{"", video.BucketGeneral},
	}
	for _, tc := range cases {
		if got := BucketFor(tc.category); got != tc.want {
			t.Errorf("BucketFor(%q) = %q, want %q", tc.category, got, tc.want)
		}
	}
}

func TestClassificationIsDeterministic(t *testing.T) {
	c := New(60, []string{"25"})
	in := []video.Scored{
		scored("a", "10", 120),
		scored("b", "25", 120),
		scored("c", "17", 45),
		scored("d", "24", 61),
	}

	first := c.Classify(in)
	for i := 0; i < 5; i++ {
		again := c.Classify(in)
		if len(again) != len(first) {
			t.Fatalf("run %d: size changed %d -> %d", i, len(first), len(again))
		}
		for j := range first {
			if again[j].ID != first[j].ID || again[j].Bucket != first[j].Bucket {
				t.Fatalf("run %d: membership changed at %d: %+v vs %+v", i, j, first[j], again[j])
			}
		}
	}
}
