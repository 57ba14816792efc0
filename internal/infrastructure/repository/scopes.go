package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// VenueIDKey is the context key for venue ID
	VenueIDKey ctxKey = "venue_id"
)

// VenueScope returns a GORM scope that filters by venue.
// This should be applied to all queries for venue-scoped entities.
func VenueScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		venueID, ok := ctx.Value(VenueIDKey).(uuid.UUID)
		if !ok {
			// Fail-safe: return no results if venue context missing
			// This prevents accidental cross-venue data access
			return db.Where("1 = 0")
		}
		return db.Where("venue_id = ?", venueID)
	}
}

// WithVenue adds venue ID to context
func WithVenue(ctx context.Context, venueID uuid.UUID) context.Context {
	return context.WithValue(ctx, VenueIDKey, venueID)
}

// GetVenueID extracts venue ID from context
func GetVenueID(ctx context.Context) (uuid.UUID, bool) {
	venueID, ok := ctx.Value(VenueIDKey).(uuid.UUID)
	return venueID, ok
}
