package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Venue represents a single bar/restaurant site. Every scoped entity carries
// a VenueID and all queries are filtered through the venue scope.
type Venue struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Users       []User       `gorm:"foreignKey:VenueID" json:"-"`
	Suppliers   []Supplier   `gorm:"foreignKey:VenueID" json:"-"`
	Products    []Product    `gorm:"foreignKey:VenueID" json:"-"`
	Departments []Department `gorm:"foreignKey:VenueID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new venue
func (v *Venue) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Venue model
func (Venue) TableName() string {
	return "venues"
}
