package utils

import (
	"context"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRY", "1h")

	id := uuid.New()
	token, err := GenerateJWT(id, "asha@example.com", "Asha", "admin")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateJWTRejectsForeignSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	token, err := GenerateJWT(uuid.New(), "a@example.com", "A", "user")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "two")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestGenerateJWTRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateJWT(uuid.New(), "a@example.com", "A", "user")
	assert.Error(t, err)
}

func TestTokenTTLFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "nonsense")
	assert.Equal(t, 24*time.Hour, TokenTTL())
}

func TestExtractTokenFromHeader(t *testing.T) {
	tok, err := ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	for _, h := range []string{"", "Bearer ", "Basic abc", "Bear"} {
		_, err := ExtractTokenFromHeader(h)
		assert.Error(t, err, h)
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query              string
		page, limit, offset int
	}{
		{"", 1, 12, 0},
		{"page=3&limit=5", 3, 5, 10},
		{"page=-1&limit=500", 1, 100, 0},
		{"page=2&limit=101", 2, 100, 100},
		{"page=abc&limit=0", 1, 12, 0},
		{"page=9223372036854775807&limit=100", 1_000_000, 100, 99_999_900},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

		page, limit, offset := ParsePagination(c, 12)
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.limit, limit, tt.query)
		assert.Equal(t, tt.offset, offset, tt.query)
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%rose serum%", LikePattern("  Rose Serum "))
	assert.Equal(t, `%100\% pure%`, LikePattern("100% pure"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "neem-tulsi-soap", Slugify("Neem & Tulsi Soap"))
	assert.Equal(t, "vitamin-c-serum-30ml", Slugify("  Vitamin C Serum (30ml) "))
	assert.Equal(t, "product", Slugify("***"))
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	num := GenerateOrderNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^HB-250309-\d{6}$`), num)
}

func TestUserAgentParsing(t *testing.T) {
	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1"
	assert.Equal(t, "mobile", ParseDeviceType(iphone))
	assert.Equal(t, "iOS", ParseOS(iphone))
	assert.Equal(t, "Safari", ParseBrowser(iphone))

	win := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36 Edg/120.0"
	assert.Equal(t, "desktop", ParseDeviceType(win))
	assert.Equal(t, "Windows", ParseOS(win))
	assert.Equal(t, "Edge", ParseBrowser(win))

	ipad := "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) Mobile/15E148"
	assert.Equal(t, "tablet", ParseDeviceType(ipad))
}

func TestLogLoginEventWritesThroughPool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	prev := config.Pool
	config.Pool = mock
	t.Cleanup(func() { config.Pool = prev })

	id := uuid.New()
	ua := "Mozilla/5.0 (Linux; Android 14) Chrome/120.0 Mobile Safari/537.36"

	mock.ExpectExec("INSERT INTO login_events").
		WithArgs(pgxmock.AnyArg(), id.String(), "10.0.0.1", ua, "mobile", "Chrome", "Android", "password").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = LogLoginEvent(context.Background(), LoginEvent{
		UserID:    id,
		IPAddress: "10.0.0.1",
		UserAgent: ua,
		Method:    "password",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogLoginEventWithoutPool(t *testing.T) {
	prev := config.Pool
	config.Pool = nil
	t.Cleanup(func() { config.Pool = prev })

	assert.NoError(t, LogLoginEvent(context.Background(), LoginEvent{UserID: uuid.New()}))
}
