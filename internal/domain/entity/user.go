package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents a venue staff member
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VenueID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"venue_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"`
	Role      enum.UserRole  `gorm:"size:50;default:'staff'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Venue Venue `gorm:"foreignKey:VenueID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsManager reports whether the user may claim venue-wide order scope.
func (u *User) IsManager() bool {
	return u.Role == enum.UserRoleManager
}
