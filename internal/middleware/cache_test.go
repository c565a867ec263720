package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelhouse/movie-catalog/internal/config"
)

// newCachedServer wires ResponseCache in front of two routes: a list route
// counting handler invocations and a route that always fails, to verify
// error responses are never stored.
func newCachedServer(t *testing.T, ttl time.Duration) (*echo.Echo, *miniredis.Miniredis, *int, *int) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cfg := config.CacheConfig{Enabled: true, TTL: ttl, Prefix: "catalog"}

	listHits, failHits := 0, 0
	e := echo.New()
	e.GET("/v1/movies", func(c echo.Context) error {
		listHits++
		return c.JSON(http.StatusOK, []string{"Inception"})
	}, ResponseCache(rdb, cfg))
	e.GET("/v1/broken", func(c echo.Context) error {
		failHits++
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "boom"})
	}, ResponseCache(rdb, cfg))

	return e, mr, &listHits, &failHits
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResponseCacheMissThenHit(t *testing.T) {
	e, _, listHits, _ := newCachedServer(t, time.Minute)

	first := get(e, "/v1/movies")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, *listHits)

	second := get(e, "/v1/movies")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, *listHits, "hit must be served from redis, not the handler")
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestResponseCacheEntryExpires(t *testing.T) {
	e, mr, listHits, _ := newCachedServer(t, 30*time.Second)

	get(e, "/v1/movies")
	mr.FastForward(31 * time.Second)

	third := get(e, "/v1/movies")
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 2, *listHits, "expired entry must fall through to the handler")
}

func TestResponseCacheSkipsErrorResponses(t *testing.T) {
	e, mr, _, failHits := newCachedServer(t, time.Minute)

	for i := 0; i < 2; i++ {
		rec := get(e, "/v1/broken")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	}
	assert.Equal(t, 2, *failHits, "error responses must never be served from cache")
	assert.Empty(t, mr.Keys(), "error responses must never be stored")
}
