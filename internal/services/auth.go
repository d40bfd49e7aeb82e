package services

import (
	"context"
	"fmt"
	"time"

	"github.com/CamiloArboledaG/reviewHub/internal/models"
	"github.com/CamiloArboledaG/reviewHub/pkg/logger"
	"github.com/CamiloArboledaG/reviewHub/pkg/queue"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo UserStore
	sessions SessionRevoker
	producer EventPublisher
	logger   *logger.Logger
}

func NewAuthService(userRepo UserStore, sessions SessionRevoker, producer EventPublisher, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		producer: producer,
		logger:   logger,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=80"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	// Username collision is reported before email when both collide.
	existingUser, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUsernameTaken
	}

	existingUser, err = s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	event, err := queue.NewEvent(queue.EventUserCreated, user.CreatedAt, queue.UserEventData{
		UserID:   user.ID.String(),
		Username: user.Username,
	})
	if err == nil {
		if err := s.producer.Publish(ctx, user.ID.String(), event); err != nil {
			s.logger.WithError(err).Error("Failed to publish user created event")
		}
	}

	s.logger.WithField("user_id", user.ID).Info("User registered successfully")
	return user, nil
}

// Login deliberately reports the same error for an unknown username and
// a wrong password.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in successfully")
	return user, nil
}

// Logout denylists the session id for the remainder of the token's
// lifetime; on top of the cookie being cleared client-side, the token
// itself stops verifying.
func (s *AuthService) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if jti == "" || remaining <= 0 {
		return nil
	}
	if err := s.sessions.Revoke(ctx, jti, remaining); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
