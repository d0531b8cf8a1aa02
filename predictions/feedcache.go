package predictions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"

	"github.com/theoremus-urban-solutions/campusmap/metrics"
)

const feedKey = "message"

// FeedCache holds the last decoded message of one feed for a TTL
type FeedCache struct {
	name   string
	client *Client
	cache  gcache.Cache
	group  singleflight.Group
}

// NewFeedCache wraps client; name labels the feed in logs and metrics
func NewFeedCache(name string, client *Client, ttl time.Duration) *FeedCache {
	return &FeedCache{
		name:   name,
		client: client,
		cache:  gcache.New(1).LRU().Expiration(ttl).Build(),
	}
}

// Message returns the cached feed, downloading it when missing or expired.
// Concurrent callers that miss together wait for the same download.
func (f *FeedCache) Message(ctx context.Context) (*gtfsrtpb.FeedMessage, error) {
	if v, err := f.cache.Get(feedKey); err == nil {
		metrics.FeedCacheTotal.WithLabelValues(f.name, "hit").Inc()
		return v.(*gtfsrtpb.FeedMessage), nil
	} else if !errors.Is(err, gcache.KeyNotFoundError) {
		slog.Warn("feed cache lookup failed", "feed", f.name, "error", err)
	}
	metrics.FeedCacheTotal.WithLabelValues(f.name, "miss").Inc()

	v, err, _ := f.group.Do(feedKey, func() (interface{}, error) {
		fm, err := f.client.FetchFeed(ctx)
		if err != nil {
			metrics.FeedFetchTotal.WithLabelValues(f.name, "error").Inc()
			return nil, err
		}
		metrics.FeedFetchTotal.WithLabelValues(f.name, "ok").Inc()
		if err := f.cache.Set(feedKey, fm); err != nil {
			slog.Warn("feed cache store failed", "feed", f.name, "error", err)
		}
		return fm, nil
	})
	if err != nil {
		slog.Warn("feed fetch failed", "feed", f.name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v.(*gtfsrtpb.FeedMessage), nil
}
