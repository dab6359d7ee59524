package messaging

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultDedupWindow is how long a request id is remembered.
const DefaultDedupWindow = 2 * time.Second

// inFlight marks a request id whose response is not ready yet.
type inFlight struct{}

// RequestDeduplicator drops requests whose id was seen within the window.
// The extension retries on timeouts, so the same id may arrive twice while
// the first delivery is still being handled.
type RequestDeduplicator struct {
	seen *gocache.Cache
}

// NewRequestDeduplicator creates a deduplicator that drops repeats seen within window.
func NewRequestDeduplicator(window time.Duration) *RequestDeduplicator {
	if window <= 0 {
		window = DefaultDedupWindow
	}
	return &RequestDeduplicator{seen: gocache.New(window, 2*window)}
}

// Begin claims id. It returns false when id is a duplicate, along with the
// response of the first delivery if that already completed.
func (d *RequestDeduplicator) Begin(id string) (bool, *Response) {
	if id == "" {
		return true, nil
	}
	if err := d.seen.Add(id, inFlight{}, gocache.DefaultExpiration); err == nil {
		return true, nil
	}
	if v, ok := d.seen.Get(id); ok {
		if resp, ok := v.(*Response); ok {
			return false, resp
		}
	}
	return false, nil
}

// Complete stores the response for id so a duplicate can be answered.
func (d *RequestDeduplicator) Complete(id string, resp *Response) {
	if id == "" || resp == nil {
		return
	}
	d.seen.Set(id, resp, gocache.DefaultExpiration)
}

// Len returns how many ids are remembered.
func (d *RequestDeduplicator) Len() int {
	return d.seen.ItemCount()
}
