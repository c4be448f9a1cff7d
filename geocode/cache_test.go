package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestCache_HitAndMiss(t *testing.T) {
	cache := NewCache(10, time.Hour)

	_, ok := cache.Get(-23.5505, -46.6333)
	assert.False(t, ok)

	cache.Put(-23.5505, -46.6333, Address{DisplayName: "Av. Paulista, São Paulo"})
	addr, ok := cache.Get(-23.5505, -46.6333)
	require.True(t, ok)
	assert.Equal(t, "Av. Paulista, São Paulo", addr.DisplayName)
}

func TestCache_KeyRoundsToFourDecimals(t *testing.T) {
	cache := NewCache(10, time.Hour)
	cache.Put(-23.55051, -46.63331, Address{City: "São Paulo"})

	// Within rounding distance of the stored point.
	addr, ok := cache.Get(-23.550491, -46.633309)
	require.True(t, ok)
	assert.Equal(t, "São Paulo", addr.City)

	// A genuinely different point misses.
	_, ok = cache.Get(-23.56, -46.64)
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(10, 30*time.Minute).WithClock(clock.now)

	cache.Put(10, 20, Address{City: "Lisboa"})

	clock.advance(29 * time.Minute)
	_, ok := cache.Get(10, 20)
	assert.True(t, ok, "entry should still be live inside the TTL")

	clock.advance(2 * time.Minute)
	_, ok = cache.Get(10, 20)
	assert.False(t, ok, "entry should expire after the TTL")
	assert.Equal(t, 0, cache.Len(), "expired entry is dropped on read")
}

func TestCache_BoundedSizeEvictsOldest(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(2, time.Hour).WithClock(clock.now)

	cache.Put(1, 1, Address{City: "a"})
	clock.advance(time.Minute)
	cache.Put(2, 2, Address{City: "b"})
	clock.advance(time.Minute)
	cache.Put(3, 3, Address{City: "c"})

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get(1, 1)
	assert.False(t, ok, "oldest entry evicted")
	_, ok = cache.Get(2, 2)
	assert.True(t, ok)
	_, ok = cache.Get(3, 3)
	assert.True(t, ok)
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	cache := NewCache(2, time.Hour)
	cache.Put(1, 1, Address{City: "a"})
	cache.Put(2, 2, Address{City: "b"})
	cache.Put(1, 1, Address{City: "a2"})

	assert.Equal(t, 2, cache.Len())
	addr, ok := cache.Get(1, 1)
	require.True(t, ok)
	assert.Equal(t, "a2", addr.City)
	_, ok = cache.Get(2, 2)
	assert.True(t, ok)
}

type stubGeocoder struct {
	addr  Address
	err   error
	calls int
}

func (s *stubGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (Address, error) {
	s.calls++
	return s.addr, s.err
}

func TestCachedGeocoder_CachesSuccesses(t *testing.T) {
	stub := &stubGeocoder{addr: Address{City: "Porto"}}
	cached := NewCachedGeocoder(stub, NewCache(10, time.Hour))

	for i := 0; i < 3; i++ {
		addr, err := cached.ReverseGeocode(context.Background(), 41.1579, -8.6291)
		require.NoError(t, err)
		assert.Equal(t, "Porto", addr.City)
	}
	assert.Equal(t, 1, stub.calls, "only the first lookup reaches the geocoder")
}

func TestCachedGeocoder_DoesNotCacheFailures(t *testing.T) {
	stub := &stubGeocoder{err: errors.New("upstream down")}
	cached := NewCachedGeocoder(stub, NewCache(10, time.Hour))

	_, err := cached.ReverseGeocode(context.Background(), 1, 1)
	require.Error(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Equal(t, 2, stub.calls)
}

func TestDistanceMeters(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceMeters(-23.5505, -46.6333, -23.5505, -46.6333))
	})

	t.Run("known city pair", func(t *testing.T) {
		// São Paulo to Rio de Janeiro, roughly 360 km.
		d := DistanceMeters(-23.5505, -46.6333, -22.9068, -43.1729)
		assert.InDelta(t, 360000, d, 10000)
	})

	t.Run("hundred meter offset", func(t *testing.T) {
		// One degree of latitude is about 111 km.
		d := DistanceMeters(0, 0, 0.0009, 0)
		assert.InDelta(t, 100, d, 1)
	})
}
