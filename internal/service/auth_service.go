package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"aquabio-be/internal/apperrors"
	"aquabio-be/internal/jwt"
	"aquabio-be/internal/models"
	"aquabio-be/internal/repository"
)

const minPasswordLength = 6

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context, userID int64) (*models.UserResponse, error)
	ListUsers(ctx context.Context, actorID int64) (*models.UserListResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account. Username and email are trimmed
// and lowercased before the uniqueness check, so "Ardi" and "ardi"
// collide. New accounts are never administrators.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if username == "" || email == "" || req.Password == "" || fullName == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username or email is already registered", apperrors.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, username, email, string(hashedPassword), fullName)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Message: "registration successful",
		Token:   token,
		User:    models.NewUserResponse(user),
	}, nil
}

// Login authenticates a user and returns user info with JWT token.
// The error never distinguishes an unknown username from a wrong
// password.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrAuth)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrAuth)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{
		Message: "login successful",
		Token:   token,
		User:    models.NewUserResponse(user),
	}, nil
}

// CurrentUser returns the public projection of the authenticated user,
// re-read from storage rather than trusted from the token payload.
func (s *authService) CurrentUser(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	projection := models.NewUserResponse(user)
	return &projection, nil
}

// ListUsers returns every account's public projection. Administrators
// only.
func (s *authService) ListUsers(ctx context.Context, actorID int64) (*models.UserListResponse, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, fmt.Errorf("%w: administrator access required", apperrors.ErrForbidden)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	projections := make([]models.UserResponse, len(users))
	for i, user := range users {
		projections[i] = models.NewUserResponse(user)
	}
	return &models.UserListResponse{
		Total: len(projections),
		Users: projections,
	}, nil
}
