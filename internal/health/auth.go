package health

import (
	"context"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

// AuthService wraps the authentication endpoints. Login and logout are the
// only places the session flag transitions on purpose; 401 responses flip it
// as a side effect inside the transport.
type AuthService struct {
	client *api.Client
}

// NewAuthService creates an auth service over the shared transport.
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// Register creates an account. A duplicate username or email surfaces as a
// 409 conflict error.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (Profile, error) {
	if err := checkPayload(req); err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := s.client.Post(ctx, "/api/auth/register", req, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Login starts a session. The backend sets the session cookie; on success
// the cached validity flag is marked valid.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (Profile, error) {
	if err := checkPayload(req); err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := s.client.Post(ctx, "/api/auth/login", req, &p); err != nil {
		return Profile{}, err
	}
	s.client.Session().MarkValid()
	return p, nil
}

// Logout ends the session and clears the cached validity flag regardless of
// the server's answer.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.client.Post(ctx, "/api/auth/logout", nil, nil)
	s.client.Session().Clear()
	return err
}

// Profile returns the authenticated user's account info.
func (s *AuthService) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	if err := s.client.Get(ctx, "/api/auth/profile", nil, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// RefreshSession probes the backend to re-derive session validity. It never
// returns an error; the outcome is recorded on the shared session state and
// returned as a bool.
func (s *AuthService) RefreshSession(ctx context.Context) bool {
	if _, err := s.Profile(ctx); err != nil {
		s.client.Session().MarkInvalid()
		return false
	}
	s.client.Session().MarkValid()
	return true
}

// Ping checks backend reachability via the unauthenticated health endpoint.
func (s *AuthService) Ping(ctx context.Context) error {
	return s.client.Get(ctx, "/api/health", nil, nil)
}
