package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UnassignedSupplierName is the display name of the sentinel supplier that
// buckets products without a supplier reference. Exactly one exists per venue.
const UnassignedSupplierName = "Unassigned"

// Supplier represents a supplier a venue orders from
type Supplier struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VenueID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"venue_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        *string        `gorm:"size:255" json:"email,omitempty"`
	Phone        *string        `gorm:"size:50" json:"phone,omitempty"`
	IsUnassigned bool           `gorm:"default:false" json:"is_unassigned"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Venue    Venue     `gorm:"foreignKey:VenueID" json:"-"`
	Products []Product `gorm:"foreignKey:SupplierID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
