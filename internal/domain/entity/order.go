package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a supplier order (draft until submitted)
type Order struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	VenueID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"venue_id"`
	SupplierID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"supplier_id"`
	CreatedByID  *uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	PONumber     string           `gorm:"size:100;index" json:"po_number"`
	Status       enum.OrderStatus `gorm:"size:50;default:'draft'" json:"status"`
	Scope        enum.LockScope   `gorm:"size:50;default:'venue'" json:"scope"`
	DepartmentID *uuid.UUID       `gorm:"type:uuid;index" json:"department_id,omitempty"`
	TotalAmount  int64            `gorm:"default:0" json:"total_amount"` // Stored in cents
	SubmittedAt  *time.Time       `json:"submitted_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Venue      Venue       `gorm:"foreignKey:VenueID" json:"-"`
	Supplier   *Supplier   `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
	CreatedBy  *User       `gorm:"foreignKey:CreatedByID" json:"-"`
	Lines      []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderLine is a line item in a supplier order. ProductID may be nil when the
// line was entered as free text.
type OrderLine struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Quantity  float64        `gorm:"not null" json:"quantity"`
	UnitCost  int64          `gorm:"not null" json:"unit_cost"` // Stored in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order    `gorm:"foreignKey:OrderID" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// GetUnitCostDecimal returns the unit cost in currency units (for display)
func (l *OrderLine) GetUnitCostDecimal() float64 {
	return float64(l.UnitCost) / 100
}
