package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department is a counting grouping within a venue (e.g. "Main Bar", "Cellar")
type Department struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VenueID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"venue_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Venue Venue  `gorm:"foreignKey:VenueID" json:"-"`
	Areas []Area `gorm:"foreignKey:DepartmentID" json:"areas,omitempty"`
}

// BeforeCreate generates a UUID before creating a new department
func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Department model
func (Department) TableName() string {
	return "departments"
}

// Area is a physical counting location within a department (shelf, fridge, ...)
type Area struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VenueID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"venue_id"`
	DepartmentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"department_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Department Department `gorm:"foreignKey:DepartmentID" json:"-"`
	Items      []AreaItem `gorm:"foreignKey:AreaID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new area
func (a *Area) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Area model
func (Area) TableName() string {
	return "areas"
}

// AreaItem is the per-location count record of a product, or a free-text
// orphan item with no catalog link. LastCount is a snapshot overwritten each
// counting cycle; on-hand for a product is the sum of LastCount across every
// area in the venue. There is no movement ledger.
type AreaItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VenueID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"venue_id"`
	AreaID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"area_id"`
	ProductID  *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	SupplierID *uuid.UUID     `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	LastCount  *float64       `json:"last_count,omitempty"`
	PackSize   *int           `json:"pack_size,omitempty"`           // Per-location override
	UnitCost   *int64         `json:"unit_cost,omitempty"`           // Per-location override, cents
	CountedAt  *time.Time     `json:"counted_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Area     Area      `gorm:"foreignKey:AreaID" json:"-"`
	Product  *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new area item
func (i *AreaItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AreaItem model
func (AreaItem) TableName() string {
	return "area_items"
}

// IsOrphan reports whether the item has no catalog product link.
func (i *AreaItem) IsOrphan() bool {
	return i.ProductID == nil
}
