package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"gorm.io/gorm"
)

// SupplierScopeLock arbitrates between a venue-wide draft and per-department
// drafts for the same supplier. At most one lock exists per (venue, supplier);
// the unique index is what makes the optimistic claim safe under concurrency.
type SupplierScopeLock struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	VenueID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_scope_lock_supplier" json:"venue_id"`
	SupplierID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_scope_lock_supplier" json:"supplier_id"`
	Scope        enum.LockScope `gorm:"size:50;not null" json:"scope"`
	DepartmentID *uuid.UUID     `gorm:"type:uuid;index" json:"department_id,omitempty"`
	OrderID      uuid.UUID      `gorm:"type:uuid;not null" json:"order_id"`
	ClaimedByID  uuid.UUID      `gorm:"type:uuid;not null" json:"claimed_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relationships
	Supplier   *Supplier   `gorm:"foreignKey:SupplierID" json:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
	Order      Order       `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new scope lock
func (l *SupplierScopeLock) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SupplierScopeLock model
func (SupplierScopeLock) TableName() string {
	return "supplier_scope_locks"
}
