package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/fungi-kb/apiserver/internal/auth"
	"github.com/fungi-kb/apiserver/internal/mq"
	"github.com/fungi-kb/apiserver/internal/store"
	"github.com/fungi-kb/apiserver/types"
)

// AuthResult is what a successful register or login hands back: the account
// (password hash excluded by the User JSON tags) and both token classes.
type AuthResult struct {
	User         types.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// AuthService orchestrates the credential store, the password hasher, and
// the token manager for the authentication flows.
type AuthService struct {
	repo   UserRepository
	tokens *auth.TokenManager
	events *mq.MQ
}

// NewAuthService constructs an AuthService. events may be nil to disable
// change-event publishing.
func NewAuthService(repo UserRepository, tokens *auth.TokenManager, events *mq.MQ) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, events: events}
}

// Register creates a self-service account. The role is always "user";
// admin accounts only come from the bootstrap path.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailInUse
	} else if !errors.Is(err, store.ErrNotFound) {
		return AuthResult{}, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Role:         types.RoleUser,
		PasswordHash: hashed,
	})
	if err != nil {
		// The read-before-write check races under concurrent registration;
		// the unique constraint on email is the backstop.
		if errors.Is(err, store.ErrConflict) {
			return AuthResult{}, ErrEmailInUse
		}
		return AuthResult{}, err
	}

	result, err := s.issueTokens(user)
	if err != nil {
		return AuthResult{}, err
	}

	publishEvent(ctx, s.events, types.EventUserRegistered, strconv.Itoa(user.ID), user.Email)
	return result, nil
}

// Login verifies credentials and issues both token classes. Every failure
// mode returns ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if user.PasswordHash == "" {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh verifies a refresh token and mints a new access token. The refresh
// token is not rotated. A token whose user no longer exists fails the same
// way as a bad token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	return s.tokens.IssueAccess(user.ID, user.Name, user.Role)
}

// CurrentUser loads the account behind an already-verified access token.
func (s *AuthService) CurrentUser(ctx context.Context, userID int) (types.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUserNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// ResetPassword replaces the password hash of the account behind email.
// The caller must hold a valid access token but is not required to be the
// account owner; see DESIGN.md for the recorded policy decision.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed

	_, err = s.repo.Update(ctx, user)
	return err
}

func (s *AuthService) issueTokens(user types.User) (AuthResult, error) {
	accessToken, err := s.tokens.IssueAccess(user.ID, user.Name, user.Role)
	if err != nil {
		return AuthResult{}, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
