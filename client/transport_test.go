package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/herbsera/herbsera-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenSent(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"id":"0192e3c4-0000-7000-8000-000000000001","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("abc"))
	me, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", auth)
	assert.Equal(t, "a@b.c", me.Email)
}

func TestNonJSONErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Products.Featured(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestRefreshToleratesMissingCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Cart not found"}`))
	}))
	defer srv.Close()

	s := NewCartSession(New(srv.URL, WithToken("abc")))
	require.NoError(t, s.Refresh(context.Background()))
	assert.Zero(t, s.ItemCount())
}

func TestInvalidReviewIsNotSent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("abc"))
	_, err := c.Reviews.Create(context.Background(), models.CreateReviewRequest{Product: "p", Rating: 0, Comment: "Lovely"})
	assert.Error(t, err)
	assert.Zero(t, hits.Load())
}

func TestValidateReview(t *testing.T) {
	long := strings.Repeat("a", 1001)
	tests := []struct {
		name    string
		rating  int
		title   string
		comment string
		field   string
	}{
		{name: "valid", rating: 5, comment: "Lovely"},
		{name: "rating zero", rating: 0, comment: "Lovely", field: "rating"},
		{name: "rating six", rating: 6, comment: "Lovely", field: "rating"},
		{name: "blank comment", rating: 3, comment: "   ", field: "comment"},
		{name: "long title", rating: 3, title: strings.Repeat("t", 101), comment: "ok", field: "title"},
		{name: "long comment", rating: 3, comment: long, field: "comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReview(tt.rating, tt.title, tt.comment)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var formErr *FormError
			require.True(t, errors.As(err, &formErr))
			assert.Equal(t, tt.field, formErr.Field)
		})
	}
}
