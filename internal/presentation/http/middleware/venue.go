package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/venuecount/stocktake-api/internal/infrastructure/repository"
	"github.com/venuecount/stocktake-api/internal/presentation/http/dto/response"
)

// VenueMiddleware propagates the authenticated user's venue into the request
// context so repository queries are venue-scoped. Must run after AuthMiddleware.
func VenueMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID := GetVenueID(c)
		if venueID == uuid.Nil {
			response.Unauthorized(c, "Venue context required")
			c.Abort()
			return
		}

		// Set venue ID in request context (for services/repositories)
		ctx := infraRepo.WithVenue(c.Request.Context(), venueID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetVenueID retrieves the venue ID from gin context
func GetVenueID(c *gin.Context) uuid.UUID {
	venueID, exists := c.Get("venue_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := venueID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
