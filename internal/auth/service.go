package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/HaByeong/WhaleStream/internal/api"
	"github.com/HaByeong/WhaleStream/internal/session"
)

// Reserved demo credentials. Logging in with these never touches the backend,
// so the client stays usable while the auth service is still being built.
const (
	DemoUserID   = "demo"
	DemoPassword = "demo123"
)

// Service wraps login, logout and session checks around the session store and
// the API client.
type Service struct {
	api      *api.Client
	sessions *session.Store
	logger   zerolog.Logger
}

func NewService(client *api.Client, sessions *session.Store, logger zerolog.Logger) *Service {
	return &Service{api: client, sessions: sessions, logger: logger}
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}

type signupRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Login authenticates against the backend and persists the returned session.
// The demo pair never reaches the backend, so it works whether the backend is
// up, down or rejecting; any other credentials go to the backend and failures
// propagate untouched.
func (s *Service) Login(ctx context.Context, userID, password string) (*session.Session, error) {
	if userID == DemoUserID && password == DemoPassword {
		return s.demoLogin()
	}

	var resp loginResponse
	err := s.api.Post(ctx, "/auth/login", loginRequest{UserID: userID, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	sess := session.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.UserID,
	}
	if err := s.sessions.Set(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return &sess, nil
}

func (s *Service) demoLogin() (*session.Session, error) {
	now := time.Now().UnixMilli()
	sess := session.Session{
		AccessToken:  fmt.Sprintf("demo-access-token-%d", now),
		RefreshToken: fmt.Sprintf("demo-refresh-token-%d", now),
		UserID:       DemoUserID,
	}
	if err := s.sessions.Set(sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	s.logger.Info().Msg("demo credentials accepted, backend not contacted")
	return &sess, nil
}

// Signup registers a new account. No session is created; the user logs in
// afterwards.
func (s *Service) Signup(ctx context.Context, userID, password, name string) error {
	return s.api.Post(ctx, "/users", signupRequest{UserID: userID, Password: password, Name: name}, nil)
}

// Logout clears the stored session. Tokens are stateless, the backend is not
// told.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}

// IsAuthenticated reports whether an access token is stored. Presence only;
// an expired or forged token still counts until the backend rejects it.
func (s *Service) IsAuthenticated() bool {
	return s.sessions.AccessToken() != ""
}

// CurrentUserID returns the persisted user id, or "" when logged out.
func (s *Service) CurrentUserID() string {
	return s.sessions.UserID()
}
