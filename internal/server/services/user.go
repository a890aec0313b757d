package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/logging"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/auth"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/config"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/repositories/users"
)

const (
	msgMissingUserFields = "Please provide all required fields: name, email, password"
	msgInvalidUser       = "Invalid registration data"
	minPasswordLength    = 6
)

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt comparison.
var dummyHash = func() string {
	h, _ := auth.HashPassword("not-a-real-password")
	return h
}()

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is what a successful register or login hands back.
type AuthResult struct {
	Token string
	User  *models.User
}

// UserService handles registration, login and the caller's own profile.
type UserService struct {
	repo          users.Repository
	log           logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
	now           func() time.Time
}

// NewUserService constructs a UserService from the user store and server config.
func NewUserService(repo users.Repository, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		repo:          repo,
		log:           log.With("module", "users"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		now:           time.Now,
	}
}

// Register creates an account and signs the first credential for it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	var missing []string
	if name == "" {
		missing = append(missing, "name is required")
	}
	if email == "" {
		missing = append(missing, "email is required")
	}
	if in.Password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		return nil, common.NewValidationError(msgMissingUserFields, missing...)
	}

	var invalid []string
	if !strings.Contains(email, "@") {
		invalid = append(invalid, "email must be a valid address")
	}
	if len(in.Password) < minPasswordLength {
		invalid = append(invalid, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(invalid) > 0 {
		return nil, common.NewValidationError(msgInvalidUser, invalid...)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		ID:           models.NewUserID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	s.log.Info(ctx, "user registered", "id", user.ID)

	return s.issue(user)
}

// Login checks the password. Unknown email and wrong password both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(dummyHash, password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error reading user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}
	return s.issue(user)
}

// Me returns the caller's account.
func (s *UserService) Me(ctx context.Context, caller models.Identity) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error reading user: %w", err)
	}
	return user, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
