package navigator

import "sync"

// VisitedSet tracks detail-page URLs already visited in this run so the
// same company is never scraped twice. It is synchronized because detail
// visits may be spread across goroutines.
type VisitedSet struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

func NewVisitedSet() *VisitedSet {
	return &VisitedSet{urls: make(map[string]struct{})}
}

// Seen reports whether the URL was already recorded, and records it
// atomically if not.
func (v *VisitedSet) Seen(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.urls[url]; ok {
		return true
	}
	v.urls[url] = struct{}{}
	return false
}

// Len returns how many URLs have been recorded.
func (v *VisitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.urls)
}
