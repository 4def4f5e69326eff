package memcache

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolvedBooksSetGet(t *testing.T) {
	cache := NewResolvedBooks(time.Minute)
	id := uuid.New()

	key := Key("Dune", "Frank Herbert")
	cache.Set(key, id)

	got, ok := cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = cache.Get(Key("Dune", "Somebody Else"))
	assert.False(t, ok)
}

func TestResolvedBooksExpiry(t *testing.T) {
	cache := NewResolvedBooks(10 * time.Millisecond)
	key := Key("Dune", "Frank Herbert")
	cache.Set(key, uuid.New())

	time.Sleep(25 * time.Millisecond)

	_, ok := cache.Get(key)
	assert.False(t, ok, "entries past their TTL must not be served")
}

func TestResolvedBooksConcurrentAccess(t *testing.T) {
	cache := NewResolvedBooks(time.Minute)
	id := uuid.New()
	key := Key("Dune", "Frank Herbert")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Set(key, id)
			cache.Get(key)
		}()
	}
	wg.Wait()

	got, ok := cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
