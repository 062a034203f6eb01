package client

import (
	"context"
	"net/http"

	"github.com/herbsera/herbsera-backend/models"
)

// AuthService covers /auth. Successful sign-ins store the returned token on
// the client.
type AuthService struct{ c *Client }

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return s.signIn(ctx, "/auth/register", req)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return s.signIn(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password})
}

// GoogleToken exchanges a Google ID token for a session.
func (s *AuthService) GoogleToken(ctx context.Context, idToken string) (*models.AuthResponse, error) {
	return s.signIn(ctx, "/auth/google/token", models.GoogleTokenRequest{IDToken: idToken})
}

func (s *AuthService) signIn(ctx context.Context, path string, body any) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if _, err := s.c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	s.c.SetToken(out.Token)
	return &out, nil
}

// Logout clears the local token even when the request fails.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
	s.c.SetToken("")
	return err
}

func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if _, err := s.c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
