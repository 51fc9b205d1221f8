package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskflow/internal/apperr"
	"taskflow/internal/auth"
	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// RegisterInput represents data required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthService handles registration and login.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.TokenService
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates an account with a hashed password. Duplicate usernames
// and emails are rejected before the insert, mirroring the unique indexes.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperr.New(apperr.CodeValidation, "Missing required fields")
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, apperr.New(apperr.CodeConflict, "Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperr.New(apperr.CodeConflict, "Email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a token. Unknown usernames and wrong
// passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	if username == "" || password == "" {
		return "", nil, apperr.New(apperr.CodeValidation, "Missing credentials")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.New(apperr.CodeUnauthorized, "Invalid credentials")
		}
		return "", nil, err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", nil, apperr.New(apperr.CodeUnauthorized, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
