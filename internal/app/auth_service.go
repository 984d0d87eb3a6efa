package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cimillas/gatherhub/internal/clock"
	"github.com/cimillas/gatherhub/internal/domain"
	"github.com/cimillas/gatherhub/internal/lib/logger/sl"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	UserByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenMinter issues a signed bearer token identifying a user.
type TokenMinter interface {
	Mint(userID string, now time.Time) (string, error)
}

type AuthService struct {
	repo   UserRepository
	tokens TokenMinter
	clock  clock.Clock
	log    *slog.Logger
}

func NewAuthService(repo UserRepository, tokens TokenMinter, clk clock.Clock, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		clock:  clk,
		log:    log,
	}
}

// Register stores a new user with a bcrypt password hash. A taken email
// surfaces as domain.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		PassHash:  hash,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and returns a signed token plus the user.
// Unknown email and wrong password both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		s.log.Warn("login rejected", slog.String("user_id", user.ID))
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Mint(user.ID, s.clock.Now())
	if err != nil {
		s.log.Error("token mint failed", sl.Err(err))
		return "", domain.User{}, fmt.Errorf("mint token: %w", err)
	}
	return tok, user, nil
}
