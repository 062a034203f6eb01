// Package testutil wires an in-memory database and helpers for handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	catalog_cache "github.com/herbsera/herbsera-backend/cache"
	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/herbsera/herbsera-backend/services"
	"github.com/herbsera/herbsera-backend/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "test-secret"

// Setup points config.DB at a fresh in-memory SQLite database with the full
// schema and resets the process-wide clients. Everything is restored when the
// test ends.
func Setup(t *testing.T) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", JWTSecret)
	t.Setenv("JWT_EXPIRY", "1h")

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the shared in-memory database alive and
	// serializes transactions.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	prevDB, prevPool, prevRedis, prevEvents := config.DB, config.Pool, config.RedisClient, services.Events
	config.DB = db
	config.Pool = nil
	config.RedisClient = nil
	services.Events = &RecordingPublisher{}
	catalog_cache.Invalidate()

	t.Cleanup(func() {
		config.DB, config.Pool, config.RedisClient, services.Events = prevDB, prevPool, prevRedis, prevEvents
		catalog_cache.Invalidate()
		_ = sqlDB.Close()
	})
	return db
}

// Events returns the recording publisher installed by Setup.
func Events(t *testing.T) *RecordingPublisher {
	t.Helper()
	rec, ok := services.Events.(*RecordingPublisher)
	require.True(t, ok, "testutil.Setup was not called")
	return rec
}

// RecordingPublisher keeps every published order event.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (p *RecordingPublisher) PublishOrderEvent(_ context.Context, ev models.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *RecordingPublisher) Close() error { return nil }

func (p *RecordingPublisher) Events() []models.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.OrderEvent(nil), p.events...)
}

// ─── Fixtures ───────────────────────────────────────────────

type UserOption func(*models.User)

func AsAdmin(u *models.User) { u.Role = models.RoleAdmin }

func Inactive(u *models.User) { u.IsActive = false }

// WithPassword stores a bcrypt hash (minimum cost) of password.
func WithPassword(password string) UserOption {
	return func(u *models.User) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
}

func CreateUser(t *testing.T, email string, opts ...UserOption) *models.User {
	t.Helper()
	u := &models.User{
		Email:       email,
		DisplayName: "Test " + email,
		Role:        models.RoleUser,
		Provider:    models.ProviderPassword,
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(u)
	}
	require.NoError(t, config.DB.Create(u).Error)
	return u
}

type ProductOption func(*models.Product)

func Stock(n int) ProductOption { return func(p *models.Product) { p.Stock = n } }

func Price(v float64) ProductOption { return func(p *models.Product) { p.Price = v } }

func Category(slug string) ProductOption { return func(p *models.Product) { p.Category = slug } }

func Featured(p *models.Product) { p.Featured = true }

func Hidden(p *models.Product) { p.IsActive = false }

func CreateProduct(t *testing.T, name string, opts ...ProductOption) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Slug:        utils.Slugify(name),
		Description: name + " description",
		Price:       100,
		Category:    "soap",
		Stock:       10,
		IsActive:    true,
		Images:      []models.ProductImage{{URL: "https://img.test/" + utils.Slugify(name) + ".jpg"}},
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, config.DB.Create(p).Error)
	return p
}

// Token signs a JWT for u with the test secret.
func Token(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(u.ID, u.Email, u.DisplayName, u.Role)
	require.NoError(t, err)
	return token
}

// ─── HTTP ───────────────────────────────────────────────────

// Envelope is the decoded response body.
type Envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

// Decode unmarshals Data into v.
func (e Envelope) Decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, v))
}

// DoJSON sends body (if non-nil) as JSON with an optional bearer token.
func DoJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env Envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}
