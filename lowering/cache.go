package lowering

import (
	"bytes"
	"strings"
	"sync/atomic"

	"github.com/gomlx/lazyhlo"
	"github.com/gomlx/lazyhlo/types/shapes"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

// DefaultCacheSize is the number of programs a Cache holds before it starts evicting the least recently used.
const DefaultCacheSize = 256

// Cache of lowered programs, indexed by the fingerprint of their graphs.
//
// Graphs built with sizes excluded from the hash share a fingerprint for any parameter dimensions, so
// programs are keyed by the fingerprint plus their parameter and output shapes.
//
// It is safe for concurrent use.
type Cache struct {
	programs *lru.Cache[cacheKey, *Program]

	hits, misses, evictions atomic.Int64
}

type cacheKey struct {
	fingerprint uint64
	signature   string
}

// CacheStats reports the usage of a Cache.
type CacheStats struct {
	Hits, Misses, Evictions int
	Entries                 int
}

// NewCache returns an empty Cache holding up to DefaultCacheSize programs.
func NewCache() *Cache {
	c := &Cache{}
	c.programs = must.M1(lru.NewWithEvict[cacheKey, *Program](DefaultCacheSize, c.onEvict))
	return c
}

// WithMaxEntries sets the number of programs held by the cache: the least recently used programs are
// evicted first. A value <= 0 resets it to DefaultCacheSize.
func (c *Cache) WithMaxEntries(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	c.programs.Resize(maxEntries)
	return c
}

func (c *Cache) onEvict(_ cacheKey, program *Program) {
	c.evictions.Add(1)
	if klog.V(1).Enabled() {
		klog.Infof("Lowering cache evicted program %q (fingerprint %016x)", program.Name, program.Fingerprint)
	}
}

// Stats returns the current usage counters of the cache.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:      int(c.hits.Load()),
		Misses:    int(c.misses.Load()),
		Evictions: int(c.evictions.Load()),
		Entries:   c.programs.Len(),
	}
}

// Len returns the number of programs in the cache.
func (c *Cache) Len() int {
	return c.programs.Len()
}

// Get returns the cached program for the graph with the given roots, if there is one.
// It doesn't change the usage counters nor the recency of the program.
func (c *Cache) Get(roots ...lazyhlo.Output) (*Program, bool, error) {
	g, err := collect(roots)
	if err != nil {
		return nil, false, err
	}
	key, err := g.key()
	if err != nil {
		return nil, false, err
	}
	program, found := c.programs.Peek(key)
	return program, found, nil
}

// Lower returns the cached program for the graph with the given roots, or lowers it (see Lower) and
// caches the result.
func (c *Cache) Lower(name string, roots ...lazyhlo.Output) (*Program, error) {
	g, err := collect(roots)
	if err != nil {
		return nil, err
	}
	key, err := g.key()
	if err != nil {
		return nil, err
	}
	if program, found := c.programs.Get(key); found {
		c.hits.Add(1)
		if klog.V(2).Enabled() {
			klog.Infof("Lowering cache hit for %q: fingerprint %016x", name, key.fingerprint)
		}
		return program, nil
	}
	c.misses.Add(1)

	// Concurrent misses of the same graph may lower it more than once: the first one added wins.
	program, err := g.lower(name)
	if err != nil {
		return nil, err
	}
	if existing, found, _ := c.programs.PeekOrAdd(key, program); found {
		if !bytes.Equal(existing.Text, program.Text) {
			klog.Warningf("Lowering cache: programs %q and %q have the same fingerprint %016x and shapes, "+
				"but different contents, keeping %q", existing.Name, program.Name, key.fingerprint, existing.Name)
		}
		return existing, nil
	}
	return program, nil
}

// key returns the fingerprint and the shapes that identify a program in the cache.
func (g *graph) key() (key cacheKey, err error) {
	key.fingerprint, err = g.fingerprint()
	if err != nil {
		return
	}
	parameterShapes, outputShapes, err := g.signature()
	if err != nil {
		return
	}
	key.signature = signatureString(parameterShapes, outputShapes)
	return
}

func signatureString(parameterShapes, outputShapes []shapes.Shape) string {
	var sb strings.Builder
	for i, shape := range parameterShapes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(shape.String())
	}
	sb.WriteString(" -> ")
	for i, shape := range outputShapes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(shape.String())
	}
	return sb.String()
}
