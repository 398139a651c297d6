package render

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"vision/internal/rank"
	"vision/internal/roster"
)

type snapshotItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Channel    string  `json:"channel"`
	Region     string  `json:"region,omitempty"`
	Views      uint64  `json:"views"`
	Likes      uint64  `json:"likes"`
	Comments   uint64  `json:"comments"`
	ReachRatio float64 `json:"reach_ratio,omitempty"`
	Breakout   bool    `json:"breakout,omitempty"`
	TopComment string  `json:"top_comment,omitempty"`
}

type snapshotView struct {
	Bucket string         `json:"bucket"`
	Metric string         `json:"metric"`
	Quota  int            `json:"quota"`
	Items  []snapshotItem `json:"items"`
}

type snapshotZone struct {
	Name    string         `json:"name"`
	Skipped int            `json:"skipped"`
	Items   []snapshotItem `json:"items"`
}

type snapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Views       []snapshotView `json:"views"`
	Zones       []snapshotZone `json:"zones"`
}

// WriteSnapshot dumps the full ranked output as JSON for downstream
// consumers that don't want the HTML page.
func WriteSnapshot(path string, rankings []rank.Ranking, zones []roster.ZoneResult, now time.Time) error {
	snap := snapshot{GeneratedAt: now}

	for _, r := range rankings {
		view := snapshotView{Bucket: string(r.Bucket), Metric: string(r.Metric), Quota: r.Quota}
		for _, item := range r.Items {
			view.Items = append(view.Items, snapshotItem{
				ID:         item.ID,
				Title:      item.Title,
				Channel:    item.ChannelTitle,
				Region:     item.Region,
				Views:      item.Views,
				Likes:      item.Likes,
				Comments:   item.Comments,
				ReachRatio: item.ReachRatio,
				Breakout:   item.Breakout,
				TopComment: item.TopComment,
			})
		}
		snap.Views = append(snap.Views, view)
	}

	for _, z := range zones {
		zone := snapshotZone{Name: z.Name, Skipped: z.Skipped}
		for _, v := range z.Videos {
			zone.Items = append(zone.Items, snapshotItem{
				ID:       v.ID,
				Title:    v.Title,
				Channel:  v.ChannelTitle,
				Views:    v.Views,
				Likes:    v.Likes,
				Comments: v.Comments,
			})
		}
		snap.Zones = append(snap.Zones, zone)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
