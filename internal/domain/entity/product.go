package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a catalog item a venue counts and reorders.
// ParLevel is the target on-hand quantity; PackSize is the number of units
// per reorder pack. Both are nullable: a product without a par is "not yet
// configured", not "par of zero".
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VenueID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"venue_id"`
	SupplierID *uuid.UUID     `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	SKU        *string        `gorm:"size:100" json:"sku,omitempty"`
	PackSize   *int           `json:"pack_size,omitempty"`
	UnitCost   int64          `gorm:"default:0" json:"unit_cost"` // Stored in cents
	ParLevel   *float64       `json:"par_level,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Venue    Venue     `gorm:"foreignKey:VenueID" json:"-"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetUnitCostDecimal returns the unit cost in currency units (for display)
func (p *Product) GetUnitCostDecimal() float64 {
	return float64(p.UnitCost) / 100
}

// SetUnitCostFromDecimal sets the unit cost from a currency value
func (p *Product) SetUnitCostFromDecimal(cost float64) {
	p.UnitCost = int64(cost * 100)
}

// HasPar reports whether the product carries a usable par level.
func (p *Product) HasPar() bool {
	return p.ParLevel != nil && *p.ParLevel > 0
}
