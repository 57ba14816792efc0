package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuecount/stocktake-api/internal/domain/entity"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"github.com/venuecount/stocktake-api/internal/domain/repository"
	"github.com/venuecount/stocktake-api/pkg/utils"
)

type stubUserRepo struct {
	repository.UserRepository
	users []entity.User
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i], nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i], nil
		}
	}
	return nil, nil
}

type stubVenueRepo struct {
	repository.VenueRepository
	venues []entity.Venue
}

func (s *stubVenueRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	for i := range s.venues {
		if s.venues[i].ID == id {
			return &s.venues[i], nil
		}
	}
	return nil, nil
}

func newAuthFixture(t *testing.T, password string) (*AuthService, entity.User, entity.Venue) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	venue := entity.Venue{ID: uuid.New(), Name: "The Crown", Slug: "the-crown"}
	user := entity.User{
		ID:       uuid.New(),
		VenueID:  venue.ID,
		Email:    "manager@thecrown.example",
		Password: hash,
		Role:     enum.UserRoleManager,
	}

	jwtManager := utils.NewJWTManager("test-secret", time.Minute, time.Hour)
	svc := NewAuthService(
		&stubUserRepo{users: []entity.User{user}},
		&stubVenueRepo{venues: []entity.Venue{venue}},
		jwtManager,
	)
	return svc, user, venue
}

func TestLogin_ReturnsVenueScopedTokens(t *testing.T) {
	svc, user, venue := newAuthFixture(t, "swordfish")

	out, err := svc.Login(context.Background(), &LoginInput{
		Email:    user.Email,
		Password: "swordfish",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	require.NotNil(t, out.Venue)
	assert.Equal(t, venue.ID, out.Venue.ID)
	assert.Equal(t, "the-crown", out.Venue.Slug)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc, user, _ := newAuthFixture(t, "swordfish")

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    user.Email,
		Password: "guppy",
	})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@thecrown.example",
		Password: "swordfish",
	})
	require.Error(t, err)
}

func TestLogin_RejectsUserWithMissingVenue(t *testing.T) {
	hash, err := utils.HashPassword("swordfish")
	require.NoError(t, err)
	user := entity.User{
		ID:       uuid.New(),
		VenueID:  uuid.New(), // no such venue
		Email:    "orphan@example.com",
		Password: hash,
	}
	svc := NewAuthService(
		&stubUserRepo{users: []entity.User{user}},
		&stubVenueRepo{},
		utils.NewJWTManager("test-secret", time.Minute, time.Hour),
	)

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    user.Email,
		Password: "swordfish",
	})
	require.Error(t, err)
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, user, venue := newAuthFixture(t, "swordfish")

	out, err := svc.Login(context.Background(), &LoginInput{
		Email:    user.Email,
		Password: "swordfish",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), out.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	require.NotNil(t, refreshed.Venue)
	assert.Equal(t, venue.ID, refreshed.Venue.ID)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)
}
