package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

const channelFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id="

// RSSFeed reads a channel's public uploads feed. Costs no API quota, so it
// serves as the roster fallback when the accountant trips mid-run.
type RSSFeed struct {
	parser *gofeed.Parser
}

func NewRSSFeed() *RSSFeed {
	return &RSSFeed{parser: gofeed.NewParser()}
}

// RecentVideoIDs returns up to max video ids from the channel feed, newest
// first. Feed entries carry the id as a "yt:video:<id>" GUID.
func (r *RSSFeed) RecentVideoIDs(ctx context.Context, channelID string, max int) ([]string, error) {
	feed, err := r.parser.ParseURLWithContext(channelFeedURL+channelID, ctx)
	if err != nil {
		return nil, fmt.Errorf("channel feed %s: %w", channelID, err)
	}

	ids := make([]string, 0, max)
	for _, item := range feed.Items {
		if !strings.HasPrefix(item.GUID, "yt:video:") {
			continue
		}
		id := strings.TrimPrefix(item.GUID, "yt:video:")
		if id == "" {
			continue
		}
		ids = append(ids, id)
		if max > 0 && len(ids) >= max {
			break
		}
	}
	return ids, nil
}
