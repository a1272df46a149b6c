// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package ndcell

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CacheMetrics holds interning counters for a NodeCache. Attach with
// NodeCache.SetMetrics; a cache without metrics skips all accounting.
type CacheMetrics struct {
	// Hits counts GetNode calls answered by an existing interned node.
	Hits prometheus.Counter

	// Misses counts GetNode calls that constructed a fresh node.
	Misses prometheus.Counter

	// SweptEntries counts dead weak entries pruned from hash buckets.
	SweptEntries prometheus.Counter
}

// NewCacheMetrics builds cache counters registered with the given
// registerer.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	factory := promauto.With(reg)
	return &CacheMetrics{
		Hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ndcell",
			Subsystem: "node_cache",
			Name:      "hits_total",
			Help:      "Number of node interning lookups answered from the cache.",
		}),
		Misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ndcell",
			Subsystem: "node_cache",
			Name:      "misses_total",
			Help:      "Number of node interning lookups that created a fresh node.",
		}),
		SweptEntries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ndcell",
			Subsystem: "node_cache",
			Name:      "swept_entries_total",
			Help:      "Number of garbage-collected cache entries pruned on access.",
		}),
	}
}
