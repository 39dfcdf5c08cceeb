package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/adilbekov/homecook-api/internal/auth"
	"github.com/adilbekov/homecook-api/internal/domain"
	"github.com/adilbekov/homecook-api/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService struct {
	userRepo repo.UserRepository
	sessions *auth.SessionManager
	logger   *zap.SugaredLogger
}

func NewUserService(userRepo repo.UserRepository, sessions *auth.SessionManager, logger *zap.SugaredLogger) *UserService {
	return &UserService{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	Name               string
	Email              string
	Password           string
	Phone              string
	Location           string
	DietaryPreferences []string
}

// Signup registers a new user with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Phone:              req.Phone,
		Location:           req.Location,
		DietaryPreferences: req.DietaryPreferences,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infow("user signed up", "user_id", user.ID.Hex(), "email", user.Email)

	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, user.ID.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	s.logger.Infow("user logged in", "user_id", user.ID.Hex())

	return user, token, nil
}

// Logout revokes the session token.
func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
