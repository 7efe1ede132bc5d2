package owm

import (
	"context"
	"fmt"
	"sync"

	"github.com/jftsang/weatherscreen/internal/device"
)

// IconCache fetches weather icon images once per code and keeps the bytes for
// the life of the process. Icons are static assets, so there is no staleness
// policy; Clear forces a refetch when the set is suspected bad.
type IconCache struct {
	client *Client
	mu     sync.Mutex
	icons  map[string][]byte
}

// NewIconCache builds an IconCache over the given client.
func NewIconCache(client *Client) *IconCache {
	return &IconCache{client: client, icons: make(map[string][]byte)}
}

// Icon returns the image for the given icon code, fetching it on first use.
// Fetches share the client's rate limiter and circuit breaker.
func (ic *IconCache) Icon(ctx context.Context, code string) (device.Image, error) {
	ic.mu.Lock()
	png, ok := ic.icons[code]
	ic.mu.Unlock()
	if ok {
		return device.Image{Code: code, PNG: png}, nil
	}

	png, err := ic.client.get(ctx, fmt.Sprintf("%s/img/wn/%s.png", ic.client.baseURL, code))
	if err != nil {
		return device.Image{}, fmt.Errorf("fetch icon %s: %w", code, err)
	}

	ic.mu.Lock()
	ic.icons[code] = png
	ic.mu.Unlock()
	return device.Image{Code: code, PNG: png}, nil
}

// Clear empties the cache so every code refetches on next use.
func (ic *IconCache) Clear() {
	ic.mu.Lock()
	ic.icons = make(map[string][]byte)
	ic.mu.Unlock()
}

// Size reports how many icons are cached.
func (ic *IconCache) Size() int {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return len(ic.icons)
}
