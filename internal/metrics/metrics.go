package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	RegionsScanned     int64
	RegionsFailed      int64
	VideosCollected    int64
	DuplicatesFiltered int64
	ChunkCallsIssued   int64
	QuotaUnitsSpent    int64
	SourcesSkipped     int64
	CommentsFetched    int64
	CommentCacheHits   int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddRegionScanned() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegionsScanned++
}

func (m *Metrics) AddRegionFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegionsFailed++
}

func (m *Metrics) AddVideosCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VideosCollected += int64(n)
}

func (m *Metrics) AddDuplicateFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) AddChunkCall(quotaUnits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChunkCallsIssued++
	m.QuotaUnitsSpent += int64(quotaUnits)
}

func (m *Metrics) AddSourceSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesSkipped++
}

func (m *Metrics) AddCommentFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommentsFetched++
}

func (m *Metrics) AddCommentCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommentCacheHits++
}

func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"regions_scanned":      m.RegionsScanned,
		"regions_failed":       m.RegionsFailed,
		"videos_collected":     m.VideosCollected,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"chunk_calls_issued":   m.ChunkCallsIssued,
		"quota_units_spent":    m.QuotaUnitsSpent,
		"sources_skipped":      m.SourcesSkipped,
		"comments_fetched":     m.CommentsFetched,
		"comment_cache_hits":   m.CommentCacheHits,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
