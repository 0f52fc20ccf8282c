package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LRUTestSuite struct {
	suite.Suite
	now   time.Time
	cache *LRU[string]
}

func (s *LRUTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.cache = NewLRU[string](2, time.Minute)
	s.cache.now = func() time.Time { return s.now }
}

func (s *LRUTestSuite) TestGetSet() {
	_, ok := s.cache.Get("a")
	s.False(ok)

	s.cache.Set("a", "1")
	v, ok := s.cache.Get("a")
	s.True(ok)
	s.Equal("1", v)

	s.cache.Set("a", "2")
	v, _ = s.cache.Get("a")
	s.Equal("2", v)
	s.Equal(1, s.cache.Size())
}

func (s *LRUTestSuite) TestEvictsLeastRecentlyUsed() {
	s.cache.Set("a", "1")
	s.cache.Set("b", "2")
	s.cache.Get("a")
	s.cache.Set("c", "3")

	_, ok := s.cache.Get("b")
	s.False(ok, "b was least recently used")
	_, ok = s.cache.Get("a")
	s.True(ok)
	_, ok = s.cache.Get("c")
	s.True(ok)
}

func (s *LRUTestSuite) TestExpiry() {
	s.cache.Set("a", "1")
	s.now = s.now.Add(time.Minute + time.Second)

	_, ok := s.cache.Get("a")
	s.False(ok)
	s.Equal(0, s.cache.Size())
}

func (s *LRUTestSuite) TestCleanExpired() {
	s.cache.Set("a", "1")
	s.now = s.now.Add(30 * time.Second)
	s.cache.Set("b", "2")
	s.now = s.now.Add(45 * time.Second)

	s.Equal(1, s.cache.CleanExpired())
	s.Equal(1, s.cache.Size())
}

func (s *LRUTestSuite) TestDeleteAndPurge() {
	s.cache.Set("a", "1")
	s.cache.Set("b", "2")
	s.cache.Delete("a")
	s.Equal(1, s.cache.Size())

	s.cache.Purge()
	s.Equal(0, s.cache.Size())
	s.cache.Set("c", "3")
	s.Equal(1, s.cache.Size())
}

func TestLRUTestSuite(t *testing.T) {
	suite.Run(t, new(LRUTestSuite))
}

func TestLRUConcurrentAccess(t *testing.T) {
	c := NewLRU[int](8, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", (i+j)%12)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Size(), 8)
}

type countingCleaner struct {
	mu    sync.Mutex
	calls int
}

func (c *countingCleaner) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return 1
}

func (c *countingCleaner) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestManager(t *testing.T) {
	m := NewManager(nil)
	a, b := &countingCleaner{}, &countingCleaner{}
	m.Register(a)
	m.Register(b)

	assert.Equal(t, 2, m.CleanAll())

	m.StartCleanup(context.Background(), 5*time.Millisecond)
	m.StartCleanup(context.Background(), 5*time.Millisecond)
	require.Eventually(t, func() bool { return a.Calls() > 2 && b.Calls() > 2 }, time.Second, 5*time.Millisecond)

	m.Stop()
	stopped := a.Calls()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, a.Calls())

	m.Stop()
}
