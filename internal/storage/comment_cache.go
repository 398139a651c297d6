// Package storage persists the top-comment cache between runs so repeated
// invocations don't re-spend quota on comments already fetched. Rankings
// themselves are never persisted — every run rebuilds them from scratch.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// CachedComment is one persisted top comment.
type CachedComment struct {
	VideoID   string    `json:"video_id"`
	Comment   string    `json:"comment"`
	FetchedAt time.Time `json:"fetched_at"`
}

// CommentCache manages cached comments in a JSON file.
type CommentCache struct {
	filePath string
	ttlHours int
	items    map[string]CachedComment
	mu       sync.RWMutex
}

func NewCommentCache(filePath string, ttlHours int) *CommentCache {
	return &CommentCache{
		filePath: filePath,
		ttlHours: ttlHours,
		items:    make(map[string]CachedComment),
	}
}

// Load reads the cache file, dropping entries past their TTL. A missing or
// empty file is not an error: the cache just starts cold.
func (cc *CommentCache) Load() error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if _, err := os.Stat(cc.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(cc.filePath)
	if err != nil {
		return fmt.Errorf("read comment cache: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var items []CachedComment
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("unmarshal comment cache: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(cc.ttlHours) * time.Hour)
	for _, it := range items {
		if it.FetchedAt.After(cutoff) {
			cc.items[it.VideoID] = it
		}
	}
	return nil
}

// Save writes the current cache back to disk.
func (cc *CommentCache) Save() error {
	cc.mu.RLock()
	items := make([]CachedComment, 0, len(cc.items))
	for _, it := range cc.items {
		items = append(items, it)
	}
	cc.mu.RUnlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal comment cache: %w", err)
	}
	if err := os.WriteFile(cc.filePath, data, 0644); err != nil {
		return fmt.Errorf("write comment cache: %w", err)
	}
	return nil
}

// Get returns the cached comment for a video if it is still within TTL.
func (cc *CommentCache) Get(videoID string) (string, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	it, exists := cc.items[videoID]
	if !exists {
		return "", false
	}
	cutoff := time.Now().Add(-time.Duration(cc.ttlHours) * time.Hour)
	if !it.FetchedAt.After(cutoff) {
		return "", false
	}
	return it.Comment, true
}

// Put stores a freshly fetched comment.
func (cc *CommentCache) Put(videoID, comment string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.items[videoID] = CachedComment{
		VideoID:   videoID,
		Comment:   comment,
		FetchedAt: time.Now(),
	}
}
