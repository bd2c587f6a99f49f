package service

import (
	"context"
	"fmt"

	"github.com/lodgewise/homestay-backend/internal/auth"
	"github.com/lodgewise/homestay-backend/internal/domain"
	"github.com/lodgewise/homestay-backend/internal/repository"
	"github.com/rs/zerolog"
)

type AuthService struct {
	repo   *repository.Repository
	tokens *auth.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(repo *repository.Repository, tokens *auth.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		log:    log.With().Str("component", "auth").Logger(),
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	Role     string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	taken, err := s.repo.UsernameTaken(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}
	taken, err = s.repo.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hash,
		Role:     domain.ParseRole(in.Role),
		Enabled:  true,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return user, nil
}

type LoginResult struct {
	Token string
	User  *domain.User
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.Password, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, domain.ErrUserDisabled
	}

	// Accounts from before the bcrypt migration get upgraded in place on
	// their first successful login. Failure to upgrade is not fatal.
	if auth.IsLegacyHash(user.Password) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.repo.UpdateUserPassword(ctx, user.ID, hash); err != nil {
				s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("legacy hash upgrade failed")
			} else {
				s.log.Info().Int64("user_id", user.ID).Msg("legacy password hash upgraded")
			}
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
