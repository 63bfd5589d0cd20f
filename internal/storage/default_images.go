package storage

import (
	"context"
	"path"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/jihyeonseong/9oormthon-3-backend/pkg/logger"
)

// defaultImagePattern matches bundled placeholder objects like default_1.png
var defaultImagePattern = regexp.MustCompile(`^default_[0-9]+\.(png|jpg|jpeg)$`)

// objectLister is the subset of MediaStore the directory needs
type objectLister interface {
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// DefaultImageDirectory caches the object keys of the bundled placeholder
// images so history listings do not hit storage on every request.
type DefaultImageDirectory struct {
	store  objectLister
	prefix string
	ttl    time.Duration
	log    *logger.Logger

	mu        sync.RWMutex
	keys      []string
	fetchedAt time.Time
}

func NewDefaultImageDirectory(store objectLister, prefix string, ttl time.Duration, log *logger.Logger) *DefaultImageDirectory {
	return &DefaultImageDirectory{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

// Keys returns the cached placeholder keys, refreshing the cache once it is
// older than the TTL. A refresh failure returns an empty list and leaves the
// cache untouched so the next call retries.
func (d *DefaultImageDirectory) Keys(ctx context.Context) []string {
	d.mu.RLock()
	if !d.fetchedAt.IsZero() && time.Since(d.fetchedAt) < d.ttl {
		keys := d.keys
		d.mu.RUnlock()
		return keys
	}
	d.mu.RUnlock()

	listed, err := d.store.ListKeys(ctx, d.prefix)
	if err != nil {
		d.log.Error("Failed to list default images", "prefix", d.prefix, "error", err)
		return []string{}
	}

	keys := make([]string, 0, len(listed))
	for _, key := range listed {
		if defaultImagePattern.MatchString(path.Base(key)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	d.mu.Lock()
	d.keys = keys
	d.fetchedAt = time.Now()
	d.mu.Unlock()

	return keys
}
