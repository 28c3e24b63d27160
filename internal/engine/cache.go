package engine

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// cacheKey identifies one memoizable computation. Recomputation is pure
// and idempotent, so identical keys always map to identical results.
type cacheKey struct {
	Symbol      string
	Count       int
	StartPrice  float64
	Drift       float64
	Volatility  float64
	Seed        int64
	FastPeriod  int
	SlowPeriod  int
	InitialCash float64
}

func keyForRun(run SymbolRun) cacheKey {
	return cacheKey{
		Symbol:      run.Symbol,
		Count:       run.Generation.Count,
		StartPrice:  run.Generation.StartPrice,
		Drift:       run.Generation.Drift,
		Volatility:  run.Generation.Volatility,
		Seed:        run.Generation.Seed,
		FastPeriod:  run.Strategy.FastPeriod,
		SlowPeriod:  run.Strategy.SlowPeriod,
		InitialCash: run.Strategy.InitialCash,
	}
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%s|%d|%g|%g|%g|%d|%d|%d|%g",
		k.Symbol, k.Count, k.StartPrice, k.Drift, k.Volatility, k.Seed,
		k.FastPeriod, k.SlowPeriod, k.InitialCash)
}

// ResultCache memoizes engine results by run parameters. singleflight
// guarantees at most one computation in flight per key; later callers for
// the same key share the stored result.
type ResultCache struct {
	engine *Engine
	group  singleflight.Group

	mu      sync.RWMutex
	results map[cacheKey]*Result
}

func NewResultCache(engine *Engine) *ResultCache {
	return &ResultCache{
		engine:  engine,
		results: make(map[cacheKey]*Result),
	}
}

// Get returns the memoized result for the run, computing it on first use.
// The second return reports whether the result was served from cache.
func (c *ResultCache) Get(run SymbolRun) (*Result, bool, error) {
	key := keyForRun(run)

	c.mu.RLock()
	cached, ok := c.results[key]
	c.mu.RUnlock()

	if ok {
		return cached, true, nil
	}

	value, err, _ := c.group.Do(key.String(), func() (any, error) {
		result, err := c.engine.RunSymbol(run)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.results[key] = result
		c.mu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, false, err
	}

	return value.(*Result), false, nil
}

// Len returns the number of memoized entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.results)
}

// Reset drops all memoized entries.
func (c *ResultCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = make(map[cacheKey]*Result)
}
