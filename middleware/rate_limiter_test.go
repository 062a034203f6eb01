package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	prev := config.RedisClient
	config.RedisClient = client
	t.Cleanup(func() {
		config.RedisClient = prev
		_ = client.Close()
	})
	return mr
}

func limitedRouter(limit int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimiter(limit, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "pong", nil))
	})
	r.GET("/other", RateLimiter(limit, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "ok", nil))
	})
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "203.0.113.7:5555"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	setupTestRedis(t)
	r := limitedRouter(2, time.Minute)

	for i := 0; i < 2; i++ {
		w := get(r, "/ping")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := get(r, "/ping")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Rate)
	assert.Equal(t, 2, body.Rate.Limit)
	assert.Zero(t, body.Rate.Remaining)

	// Each route has its own window.
	assert.Equal(t, http.StatusOK, get(r, "/other").Code)
}

func TestRateLimiterReportsRemaining(t *testing.T) {
	setupTestRedis(t)
	r := limitedRouter(5, time.Minute)

	w := get(r, "/ping")
	require.Equal(t, http.StatusOK, w.Code)

	var body models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Rate)
	assert.Equal(t, 4, body.Rate.Remaining)
}

func TestRateLimiterWindowExpires(t *testing.T) {
	mr := setupTestRedis(t)
	r := limitedRouter(1, time.Minute)

	require.Equal(t, http.StatusOK, get(r, "/ping").Code)
	require.Equal(t, http.StatusTooManyRequests, get(r, "/ping").Code)

	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, get(r, "/ping").Code)
}

func TestRateLimiterCounterAlwaysExpires(t *testing.T) {
	mr := setupTestRedis(t)
	r := limitedRouter(3, time.Minute)

	for i := 0; i < 5; i++ {
		get(r, "/ping")
		ttl := mr.TTL("rl:203.0.113.7:GET:/ping")
		assert.Positive(t, ttl, "request %d", i+1)
		assert.LessOrEqual(t, ttl, time.Minute)
	}

	count, err := mr.Get("rl:203.0.113.7:GET:/ping")
	require.NoError(t, err)
	assert.Equal(t, "5", count)

	// Later requests in the window do not extend it.
	mr.FastForward(30 * time.Second)
	get(r, "/ping")
	assert.LessOrEqual(t, mr.TTL("rl:203.0.113.7:GET:/ping"), 30*time.Second)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := setupTestRedis(t)
	r := limitedRouter(1, time.Minute)
	mr.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping").Code)
	}
}

func TestRateLimiterWithoutRedis(t *testing.T) {
	prev := config.RedisClient
	config.RedisClient = nil
	t.Cleanup(func() { config.RedisClient = prev })

	r := limitedRouter(1, time.Minute)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ping").Code)
	}
}

func TestResourceTypeFromPath(t *testing.T) {
	cases := map[string]string{
		"/api/admin/orders/:id/status":       models.ResourceTypeOrder,
		"/api/admin/products/upload-image":   models.ResourceTypeProduct,
		"/api/admin/users/:id/toggle-status": models.ResourceTypeUser,
		"/api/admin/reviews/:id":             models.ResourceTypeReview,
		"/api/admin/dashboard/stats":         "",
	}
	for path, want := range cases {
		assert.Equal(t, want, ResourceTypeFromPath(path), path)
	}
}
