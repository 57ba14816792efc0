package service

import (
	"context"

	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	"github.com/venuecount/stocktake-api/pkg/apperror"
	"github.com/venuecount/stocktake-api/pkg/utils"
)

// AuthService handles venue staff authentication
type AuthService struct {
	userRepo   repository.UserRepository
	venueRepo  repository.VenueRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, venueRepo repository.VenueRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		venueRepo:  venueRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	Venue        *entity.Venue
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns venue-scoped tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// issueTokens loads the user's venue and mints a token pair. A user whose
// venue no longer exists cannot sign in.
func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*LoginOutput, error) {
	venue, err := s.venueRepo.GetByID(ctx, user.VenueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, apperror.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.VenueID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		Venue:        venue,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a refresh token for a new access token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	return s.issueTokens(ctx, user)
}
