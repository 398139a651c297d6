package youtube

import (
	"fmt"
	"testing"
)

func TestChunkIDsSplitsAtBatchSize(t *testing.T) {
	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid-%03d", i)
	}

	chunks := chunkIDs(ids, maxBatchSize)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	for i, want := range []int{50, 50, 20} {
		if len(chunks[i]) != want {
			t.Errorf("chunk %d has %d ids, want %d", i, len(chunks[i]), want)
		}
	}

	// No id lost or duplicated across chunks.
	seen := map[string]int{}
	for _, c := range chunks {
		for _, id := range c {
			seen[id]++
		}
	}
	if len(seen) != 120 {
		t.Errorf("merged chunks contain %d distinct ids, want 120", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %s appears %d times", id, n)
		}
	}
}

func TestChunkIDsEmptyInput(t *testing.T) {
	if got := chunkIDs(nil, maxBatchSize); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestMorePagesStopsOnEmptyPage(t *testing.T) {
	tests := []struct {
		added int
		token string
		want  bool
	}{
		{added: 50, token: "next", want: true},
		{added: 50, token: "", want: false},
		{added: 0, token: "", want: false},
		// An empty page with a token must not be followed, or the page
		// loop never terminates and keeps spending quota.
		{added: 0, token: "next", want: false},
	}
	for _, tc := range tests {
		if got := morePages(tc.added, tc.token); got != tc.want {
			t.Errorf("morePages(%d, %q) = %v, want %v", tc.added, tc.token, got, tc.want)
		}
	}
}

func TestDedupIDsKeepsFirstOccurrence(t *testing.T) {
	in := []string{"a", "b", "a", "", "c", "b"}
	got := dedupIDs(in)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("dedup = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedup[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
