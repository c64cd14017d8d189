package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/cryptox"
	"github.com/foodiehq/foodie/pkg/idx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

var (
	// ErrDuplicateEmail rejects registration with an email already in use.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidRegistration reports a signup with a missing or malformed
	// email address.
	ErrInvalidRegistration = errors.New("invalid registration request")
)

// AccountService registers end users and seeds the first platform admin.
type AccountService struct {
	Store store.Store
}

// Registration carries the signup fields for a new end user.
type Registration struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// Register creates a new end-user account.
func (s *AccountService) Register(ctx context.Context, reg Registration) (domain.User, error) {
	log := slogx.FromContext(ctx)

	reg.Email = strings.TrimSpace(strings.ToLower(reg.Email))
	if reg.Email == "" || !strings.Contains(reg.Email, "@") {
		return domain.User{}, ErrInvalidRegistration
	}
	if !strongEnough(reg.Password) {
		return domain.User{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(reg.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New(),
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		PhoneNumber:  reg.PhoneNumber,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicateEmail
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	return user, nil
}

// SeedAdmin creates a platform admin if the email is not yet taken. Run at
// startup so a fresh deployment has someone who can onboard partners.
// Idempotent across restarts.
func (s *AccountService) SeedAdmin(ctx context.Context, email, password string) error {
	log := slogx.FromContext(ctx)

	_, err := s.Store.Admins().GetAdminByEmail(ctx, email)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	admin := domain.Admin{
		ID:           idx.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Platform",
		LastName:     "Admin",
	}

	if err := s.Store.Admins().CreateAdmin(ctx, admin); err != nil {
		// A concurrent replica may have seeded first.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	log.Info("platform admin seeded", slog.String("admin_id", admin.ID.String()))
	return nil
}
