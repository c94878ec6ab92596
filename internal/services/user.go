package services

import (
	"context"
	"errors"
	"log"

	"github.com/fungi-kb/apiserver/config"
	"github.com/fungi-kb/apiserver/internal/auth"
	"github.com/fungi-kb/apiserver/internal/store"
	"github.com/fungi-kb/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates the administrative user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUserNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// Add creates an account on behalf of an admin. Unlike self-service
// registration the role may be "admin".
func (s *UserService) Add(ctx context.Context, name, email, password, role string) (types.User, error) {
	if role == "" {
		role = types.RoleUser
	}
	if !types.ValidRole(role) {
		return types.User{}, &ValidationError{Field: "role", Reason: "must be \"user\" or \"admin\""}
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, ErrEmailInUse
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hashed,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.User{}, ErrEmailInUse
		}
		return types.User{}, err
	}
	return user, nil
}

// Update replaces the record matching user.ID. When newPassword is
// non-empty it is re-hashed; otherwise the stored hash is kept.
func (s *UserService) Update(ctx context.Context, user types.User, newPassword string) (types.User, error) {
	current, err := s.repo.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUserNotFound
		}
		return types.User{}, err
	}

	if user.Role == "" {
		user.Role = current.Role
	}
	if !types.ValidRole(user.Role) {
		return types.User{}, &ValidationError{Field: "role", Reason: "must be \"user\" or \"admin\""}
	}

	if newPassword != "" {
		hashed, err := auth.HashPassword(newPassword)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = hashed
	} else {
		user.PasswordHash = current.PasswordHash
	}
	user.CreatedAt = current.CreatedAt

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrUserNotFound
		}
		if errors.Is(err, store.ErrConflict) {
			return types.User{}, ErrEmailInUse
		}
		return types.User{}, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// EnsureAdmin creates the configured admin account if no user holds its
// email yet. Called at startup and by the createadmin command.
func (s *UserService) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) error {
	if _, err := s.repo.GetByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	if _, err := s.repo.Create(ctx, types.User{
		Name:         cfg.Name,
		Email:        cfg.Email,
		Role:         types.RoleAdmin,
		PasswordHash: hashed,
	}); err != nil {
		// Another instance may have won the bootstrap race.
		if errors.Is(err, store.ErrConflict) {
			return nil
		}
		return err
	}

	log.Printf("created admin account %s", cfg.Email)
	return nil
}
