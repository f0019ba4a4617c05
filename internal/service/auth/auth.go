package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
	"github.com/Omar96MJ/sanad-sub001/pkg/util/password"
)

// redisKeySession returns the Redis key holding a live session.
func redisKeySession(sessionID string) string { return "session:" + sessionID }

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
	// DisplayName seeds the public therapist profile for doctor accounts.
	DisplayName string
}

type LoginRequest struct {
	Email    string
	Password string
}

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds until the access token expires
}

// ---------------------------------------------------------------------------
// Store dependency
// ---------------------------------------------------------------------------

type Store interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateDoctor(ctx context.Context, d *model.DoctorProfile) (*model.DoctorProfile, error)
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*model.User, *AuthTokens, error)
	Login(ctx context.Context, req LoginRequest) (*model.User, *AuthTokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	users  Store
	rdb    *redis.Client
	paseto *pasetotoken.Manager
	authz  authorize.IAuthorization
	logger *slog.Logger
}

func New(users Store, rdb *redis.Client, paseto *pasetotoken.Manager, authz authorize.IAuthorization, logger *slog.Logger) Service {
	return &authService{users: users, rdb: rdb, paseto: paseto, authz: authz, logger: logger}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*model.User, *AuthTokens, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, nil, ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return nil, nil, ErrPasswordTooShort
	}
	if req.Role != model.RolePatient && req.Role != model.RoleDoctor {
		return nil, nil, ErrInvalidRole
	}

	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.CreateUser(ctx, &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	if req.Role == model.RoleDoctor {
		display := req.DisplayName
		if display == "" {
			display = req.Name
		}
		if _, err := s.users.CreateDoctor(ctx, &model.DoctorProfile{
			UserID:      u.ID,
			DisplayName: display,
		}); err != nil {
			return nil, nil, fmt.Errorf("create doctor profile: %w", err)
		}
	}

	if err := authorize.AssignUserSelfRole(ctx, s.authz, u.ID.String()); err != nil {
		return nil, nil, fmt.Errorf("assign self role: %w", err)
	}
	if err := authorize.AssignAccountRole(ctx, s.authz, u.ID.String(), string(u.Role)); err != nil {
		return nil, nil, fmt.Errorf("assign account role: %w", err)
	}

	tokens, err := s.createSession(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*model.User, *AuthTokens, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if err := password.Verify(u.PasswordHash, req.Password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.createSession(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, tokens, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.paseto.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Type != pasetotoken.TokenTypeRefresh || claims.SessionID == nil {
		return nil, ErrInvalidToken
	}

	sessionKey := redisKeySession(claims.SessionID.String())
	if err := s.rdb.Get(ctx, sessionKey).Err(); err == redis.Nil {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	s.rdb.Expire(ctx, sessionKey, s.paseto.RefreshTTL())

	// Only the access token rotates; the refresh token lives until logout.
	access, err := s.paseto.IssueAccess(claims.UserID, claims.SessionID, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.paseto.AccessTTL().Seconds()),
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	deleted, err := s.rdb.Del(ctx, redisKeySession(sessionID.String())).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if deleted == 0 {
		s.logger.DebugContext(ctx, "logout: session already expired", "session_id", sessionID)
	}
	return nil
}

func (s *authService) createSession(ctx context.Context, u *model.User) (*AuthTokens, error) {
	sessionID := uuid.Must(uuid.NewV7())

	sessionKey := redisKeySession(sessionID.String())
	if err := s.rdb.Set(ctx, sessionKey, u.ID.String(), s.paseto.RefreshTTL()).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	access, err := s.paseto.IssueAccess(u.ID, &sessionID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.paseto.IssueRefresh(u.ID, &sessionID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.paseto.AccessTTL().Seconds()),
	}, nil
}
