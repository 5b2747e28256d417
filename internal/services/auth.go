// Package services contains the application services of eventreg.
// This file defines the identity service: registration, login, logout and
// resolving the current user from the stored session.
package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventreg/internal/common"
	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/dmitrijs2005/eventreg/internal/models"
	"github.com/dmitrijs2005/eventreg/internal/repositories/sessions"
	"github.com/dmitrijs2005/eventreg/internal/repositories/users"
	"github.com/google/uuid"
)

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	FullName        string
	Phone           string
	Password        string
	PasswordConfirm string
}

// AuthService defines identity operations for the presentation layer.
//
// Contract:
//   - Register: validate, create the user, log them in.
//   - Login: exact phone+password match, replaces the session.
//   - Logout: drop the session; idempotent.
//   - CurrentUser: the session's user, or nil if there is none.
//   - SeedDemoUser: put a known account into an empty directory.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, phone, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	SeedDemoUser(ctx context.Context) error
}

// stateInitializer creates a user's event state on first access.
type stateInitializer interface {
	Get(ctx context.Context, userID string) (*models.UserEventState, error)
}

// DemoUser is seeded into an empty directory so the app can be tried
// without registering.
var DemoUser = models.User{
	ID:       "u_demo",
	FullName: "کاربر نمونه",
	Phone:    "09120000000",
	Password: "1234",
}

// newUserID is a test seam. Ids combine 16 random bytes with the current
// unix time in milliseconds: u_<hex>_<ms>.
var newUserID = func() string {
	id := uuid.New()
	return fmt.Sprintf("u_%s_%d", hex.EncodeToString(id[:]), time.Now().UnixMilli())
}

type authService struct {
	users    users.Repository
	sessions sessions.Repository
	states   stateInitializer
	log      logging.Logger

	// guards the read-modify-write of the user directory
	mu sync.Mutex
}

// NewAuthService constructs an AuthService over the given repositories.
// states is usually the EventStateService sharing the same store.
func NewAuthService(u users.Repository, s sessions.Repository, states stateInitializer, log logging.Logger) AuthService {
	return &authService{users: u, sessions: s, states: states, log: log.With("service", "auth")}
}

// Register validates the form, appends a new user to the directory, starts
// a session for them and initializes their event state.
//
// FullName and Phone are trimmed; passwords are taken as typed. Blank fields
// or a confirmation mismatch yield common.ErrValidation, a taken phone yields
// common.ErrDuplicatePhone. On failure nothing is written.
func (a *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	phone := strings.TrimSpace(req.Phone)

	if fullName == "" || phone == "" || req.Password == "" || req.PasswordConfirm == "" {
		return nil, fmt.Errorf("%w: all fields are required", common.ErrValidation)
	}
	if req.Password != req.PasswordConfirm {
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}

	user, err := a.appendUser(ctx, models.User{
		FullName: fullName,
		Phone:    phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	if err := a.sessions.Set(ctx, models.Session{UserID: user.ID}); err != nil {
		return nil, fmt.Errorf("error starting session: %w", err)
	}
	if _, err := a.states.Get(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("error initializing user data: %w", err)
	}

	a.log.Info(ctx, "user registered", "user_id", user.ID, "phone", user.Phone)
	return user, nil
}

func (a *authService) appendUser(ctx context.Context, u models.User) (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, err := a.users.GetByPhone(ctx, u.Phone)
	switch {
	case err == nil && existing != nil:
		return nil, common.ErrDuplicatePhone
	case err != nil && !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error loading users: %w", err)
	}

	all, err := a.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading users: %w", err)
	}

	u.ID = newUserID()
	if err := a.users.SaveAll(ctx, append(all, u)); err != nil {
		return nil, fmt.Errorf("error saving users: %w", err)
	}
	return &u, nil
}

// Login starts a session for the user whose phone and password both match
// exactly. Any mismatch, including blank input, is common.ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, phone, password string) (*models.Session, error) {
	phone = strings.TrimSpace(phone)

	all, err := a.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading users: %w", err)
	}

	for _, u := range all {
		if u.Phone == phone && u.Password == password {
			s := models.Session{UserID: u.ID}
			if err := a.sessions.Set(ctx, s); err != nil {
				return nil, fmt.Errorf("error starting session: %w", err)
			}
			a.log.Info(ctx, "user logged in", "user_id", u.ID)
			return &s, nil
		}
	}

	a.log.Info(ctx, "login rejected", "phone", phone)
	return nil, common.ErrInvalidCredentials
}

// Logout removes the session, whether or not there was one.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	a.log.Info(ctx, "user logged out")
	return nil
}

// CurrentUser returns the user referenced by the session. No session and a
// session pointing at a missing user both yield (nil, nil).
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	s, err := a.sessions.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	if s == nil {
		return nil, nil
	}

	u, err := a.users.GetByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			a.log.Warn(ctx, "session references unknown user", "user_id", s.UserID)
			return nil, nil
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// SeedDemoUser stores DemoUser when the directory is empty and prepares its
// event state. It does not log anybody in.
func (a *authService) SeedDemoUser(ctx context.Context) error {
	seeded, err := a.seedDirectory(ctx)
	if err != nil {
		return fmt.Errorf("error seeding demo user: %w", err)
	}
	if !seeded {
		return nil
	}
	if _, err := a.states.Get(ctx, DemoUser.ID); err != nil {
		return fmt.Errorf("error seeding demo user: %w", err)
	}

	a.log.Info(ctx, "demo user seeded", "phone", DemoUser.Phone)
	return nil
}

func (a *authService) seedDirectory(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	all, err := a.users.List(ctx)
	if err != nil {
		return false, err
	}
	if len(all) > 0 {
		return false, nil
	}
	return true, a.users.SaveAll(ctx, []models.User{DemoUser})
}
