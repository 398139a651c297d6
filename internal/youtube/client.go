// Package youtube wraps the Data API v3 behind the narrow catalog surface
// the pipeline needs. Retry, timeout and quota discipline live here, in one
// place, so the stage packages never deal with transport concerns.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"vision/internal/logger"
	"vision/internal/metrics"
	"vision/internal/quota"
	"vision/internal/retry"
	"vision/internal/video"
)

type Client struct {
	svc     *yt.Service
	quota   *quota.Accountant
	retry   retry.RetryConfig
	timeout time.Duration
}

// NewClient builds the API client. A missing key is the fatal precondition
// of the whole run, so this is the only constructor that may abort it.
func NewClient(ctx context.Context, apiKey string, acct *quota.Accountant, rc retry.RetryConfig, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("youtube: API key is required")
	}
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}
	return &Client{svc: svc, quota: acct, retry: rc, timeout: timeout}, nil
}

// do runs one metered remote call with the shared retry-or-skip policy:
// reserve quota, bound the call with a timeout, retry transport failures,
// never retry quota or not-found errors.
func (c *Client) do(ctx context.Context, cost int, call func(ctx context.Context) error) error {
	if err := c.quota.Reserve(cost); err != nil {
		return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
	}
	metrics.Global.AddChunkCall(cost)

	return retry.WithRetry(ctx, c.retry, func() error {
		cctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		err := classify(call(cctx))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ErrQuotaExhausted):
			c.quota.MarkExhausted()
			return retry.Stop(err)
		case errors.Is(err, ErrNotFound), errors.Is(err, context.Canceled):
			return retry.Stop(err)
		}
		return err
	})
}

// FetchTrending returns up to max items from the region's popular chart.
// The chart call does not reliably carry full statistics for every field,
// so callers follow up with FetchDetails over the merged pool.
func (c *Client) FetchTrending(ctx context.Context, region string, max int64) ([]video.Video, error) {
	var out []video.Video
	pageToken := ""

	for int64(len(out)) < max {
		pageSize := max - int64(len(out))
		if pageSize > maxBatchSize {
			pageSize = maxBatchSize
		}

		var resp *yt.VideoListResponse
		err := c.do(ctx, quota.CostList, func(cctx context.Context) error {
			call := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
				Chart("mostPopular").
				RegionCode(region).
				MaxResults(pageSize).
				Context(cctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			var derr error
			resp, derr = call.Do()
			return derr
		})
		if err != nil {
			return out, fmt.Errorf("trending %s: %w", region, err)
		}

		for _, item := range resp.Items {
			v := fromAPI(item)
			v.Region = region
			out = append(out, v)
		}
		pageToken = resp.NextPageToken
		if !morePages(len(resp.Items), pageToken) {
			break
		}
	}
	return out, nil
}

// morePages decides whether to follow a page token. An empty page is treated
// as the end of the chart even if a token came with it; following it would
// spend a quota unit per iteration with nothing to show.
func morePages(added int, token string) bool {
	return added > 0 && token != ""
}

// FetchDetails resolves full snippet+statistics for the given video ids,
// batching into chunks of at most 50 ids. Transport failure on one chunk
// skips that chunk and continues; quota exhaustion stops issuing further
// chunks. Either way the already resolved items are returned.
func (c *Client) FetchDetails(ctx context.Context, ids []string) ([]video.Video, error) {
	ids = dedupIDs(ids)
	out := make([]video.Video, 0, len(ids))

	for _, chunk := range chunkIDs(ids, maxBatchSize) {
		var resp *yt.VideoListResponse
		err := c.do(ctx, quota.CostList, func(cctx context.Context) error {
			var derr error
			resp, derr = c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
				Id(chunk...).
				MaxResults(int64(len(chunk))).
				Context(cctx).
				Do()
			return derr
		})
		if err != nil {
			if errors.Is(err, ErrQuotaExhausted) {
				return out, fmt.Errorf("details: %w", err)
			}
			logger.Warn("details chunk skipped", "size", len(chunk), "error", err)
			continue
		}
		for _, item := range resp.Items {
			out = append(out, fromAPI(item))
		}
	}
	return out, nil
}

// FetchChannelStats resolves subscriber counts for the given channel ids.
// Input is deduplicated before batching since repeated lookups waste quota.
func (c *Client) FetchChannelStats(ctx context.Context, channelIDs []string) (map[string]video.ChannelStat, error) {
	channelIDs = dedupIDs(channelIDs)
	out := make(map[string]video.ChannelStat, len(channelIDs))

	for _, chunk := range chunkIDs(channelIDs, maxBatchSize) {
		var resp *yt.ChannelListResponse
		err := c.do(ctx, quota.CostList, func(cctx context.Context) error {
			var derr error
			resp, derr = c.svc.Channels.List([]string{"statistics"}).
				Id(chunk...).
				MaxResults(int64(len(chunk))).
				Context(cctx).
				Do()
			return derr
		})
		if err != nil {
			if errors.Is(err, ErrQuotaExhausted) {
				return out, fmt.Errorf("channel stats: %w", err)
			}
			logger.Warn("channel stats chunk skipped", "size", len(chunk), "error", err)
			continue
		}
		for _, ch := range resp.Items {
			stat := video.ChannelStat{ChannelID: ch.Id}
			if ch.Statistics != nil && !ch.Statistics.HiddenSubscriberCount {
				stat.Subscribers = ch.Statistics.SubscriberCount
			}
			out[ch.Id] = stat
		}
	}
	return out, nil
}

// ResolveUploads maps each channel id to its canonical uploads playlist id.
func (c *Client) ResolveUploads(ctx context.Context, channelIDs []string) (map[string]string, error) {
	channelIDs = dedupIDs(channelIDs)
	out := make(map[string]string, len(channelIDs))

	for _, chunk := range chunkIDs(channelIDs, maxBatchSize) {
		var resp *yt.ChannelListResponse
		err := c.do(ctx, quota.CostList, func(cctx context.Context) error {
			var derr error
			resp, derr = c.svc.Channels.List([]string{"contentDetails"}).
				Id(chunk...).
				MaxResults(int64(len(chunk))).
				Context(cctx).
				Do()
			return derr
		})
		if err != nil {
			if errors.Is(err, ErrQuotaExhausted) {
				return out, fmt.Errorf("resolve uploads: %w", err)
			}
			logger.Warn("uploads resolution chunk skipped", "size", len(chunk), "error", err)
			continue
		}
		for _, ch := range resp.Items {
			if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
				out[ch.Id] = ch.ContentDetails.RelatedPlaylists.Uploads
			}
		}
	}
	return out, nil
}

// FetchUploads lists the most recent video ids from one uploads playlist.
// One call per playlist; this cannot be batched across channels.
func (c *Client) FetchUploads(ctx context.Context, playlistID string, max int64) ([]string, error) {
	if max > maxBatchSize {
		max = maxBatchSize
	}
	var resp *yt.PlaylistItemListResponse
	err := c.do(ctx, quota.CostList, func(cctx context.Context) error {
		var derr error
		resp, derr = c.svc.PlaylistItems.List([]string{"contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(max).
			Context(cctx).
			Do()
		return derr
	})
	if err != nil {
		return nil, fmt.Errorf("uploads %s: %w", playlistID, err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			ids = append(ids, item.ContentDetails.VideoId)
		}
	}
	return ids, nil
}

// FetchTopComment returns the most relevant top-level comment for a video.
// Comments may be disabled; callers treat any error as "no comment".
func (c *Client) FetchTopComment(ctx context.Context, videoID string) (string, error) {
	var resp *yt.CommentThreadListResponse
	err := c.do(ctx, quota.CostList, func(cctx context.Context) error {
		var derr error
		resp, derr = c.svc.CommentThreads.List([]string{"snippet"}).
			VideoId(videoID).
			Order("relevance").
			MaxResults(1).
			TextFormat("plainText").
			Context(cctx).
			Do()
		return derr
	})
	if err != nil {
		return "", fmt.Errorf("top comment %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 {
		return "", nil
	}
	snip := resp.Items[0].Snippet
	if snip == nil || snip.TopLevelComment == nil || snip.TopLevelComment.Snippet == nil {
		return "", nil
	}
	return snip.TopLevelComment.Snippet.TextDisplay, nil
}

// fromAPI converts an API video into the pipeline model. Missing statistics
// default to zero; the thumbnail prefers the highest resolution available.
func fromAPI(item *yt.Video) video.Video {
	v := video.Video{ID: item.Id}

	if sn := item.Snippet; sn != nil {
		v.Title = sn.Title
		v.ChannelID = sn.ChannelId
		v.ChannelTitle = sn.ChannelTitle
		v.CategoryID = sn.CategoryId
		if th := sn.Thumbnails; th != nil {
			switch {
			case th.High != nil:
				v.Thumbnail = th.High.Url
			case th.Medium != nil:
				v.Thumbnail = th.Medium.Url
			case th.Default != nil:
				v.Thumbnail = th.Default.Url
			}
		}
	}
	if cd := item.ContentDetails; cd != nil {
		v.Duration = cd.Duration
	}
	if st := item.Statistics; st != nil {
		v.Views = st.ViewCount
		v.Likes = st.LikeCount
		v.Comments = st.CommentCount
	}
	return v
}
