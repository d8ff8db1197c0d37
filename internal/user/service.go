package user

import (
	"context"
	"errors"
	"time"

	"github.com/Pineapplelles/habit-pulse/internal/auth"
	"github.com/Pineapplelles/habit-pulse/internal/config"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
)

type Service interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	CurrentUser(ctx context.Context) (*UserResponse, error)
}

type service struct {
	repo UserRepository
}

func NewService(repo UserRepository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	if len(dto.Username) < 3 {
		return nil, ErrUsernameTooShort
	}
	if len(dto.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.FindByUsername(dto.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Error("Failed to check username availability")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := User{
		Username:     dto.Username,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(&u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return s.toResponse(&u), nil
}

func (s *service) Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByUsername(dto.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to look up user for login")
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID.String(), u.Username, auth.TokenDuration)
	if err != nil {
		log.WithError(err).Error("Failed to sign token")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User logged in")
	return &TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(auth.TokenDuration),
	}, nil
}

func (s *service) CurrentUser(ctx context.Context) (*UserResponse, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.WithError(err).Error("Failed to load current user")
		return nil, err
	}

	return s.toResponse(u), nil
}

func (s *service) toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
