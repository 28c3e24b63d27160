package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/syntrade-lab/syntrade/internal/logger"
)

type CacheTestSuite struct {
	suite.Suite
	cache *ResultCache
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) SetupTest() {
	suite.cache = NewResultCache(NewEngine(logger.NewNopLogger(), nil))
}

func (suite *CacheTestSuite) TestMissThenHit() {
	run := testRun("AAPL_SYN", 1)

	first, cached, err := suite.cache.Get(run)
	suite.Require().NoError(err)
	suite.False(cached)
	suite.Equal(1, suite.cache.Len())

	second, cached, err := suite.cache.Get(run)
	suite.Require().NoError(err)
	suite.True(cached)
	suite.Same(first, second)
	suite.Equal(1, suite.cache.Len())
}

func (suite *CacheTestSuite) TestDistinctParamsAreDistinctEntries() {
	base := testRun("AAPL_SYN", 1)

	other := base
	other.Generation.Seed = 2

	renamed := base
	renamed.Symbol = "MSFT_SYN"

	_, _, err := suite.cache.Get(base)
	suite.Require().NoError(err)

	_, _, err = suite.cache.Get(other)
	suite.Require().NoError(err)

	_, _, err = suite.cache.Get(renamed)
	suite.Require().NoError(err)

	suite.Equal(3, suite.cache.Len())
}

func (suite *CacheTestSuite) TestFailedRunIsNotCached() {
	run := testRun("AAPL_SYN", 1)
	run.Strategy.InitialCash = -1

	_, cached, err := suite.cache.Get(run)
	suite.Error(err)
	suite.False(cached)
	suite.Equal(0, suite.cache.Len())
}

func (suite *CacheTestSuite) TestConcurrentGetsShareOneResult() {
	run := testRun("AAPL_SYN", 1)

	const callers = 16

	results := make([]*Result, callers)

	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			result, _, err := suite.cache.Get(run)
			suite.NoError(err)
			results[i] = result
		}(i)
	}

	wg.Wait()

	suite.Equal(1, suite.cache.Len())

	for i := 1; i < callers; i++ {
		suite.Same(results[0], results[i])
	}
}

func (suite *CacheTestSuite) TestReset() {
	run := testRun("AAPL_SYN", 1)

	_, _, err := suite.cache.Get(run)
	suite.Require().NoError(err)
	suite.Equal(1, suite.cache.Len())

	suite.cache.Reset()
	suite.Equal(0, suite.cache.Len())

	_, cached, err := suite.cache.Get(run)
	suite.Require().NoError(err)
	suite.False(cached)
}
