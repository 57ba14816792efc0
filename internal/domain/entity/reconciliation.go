package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/venuecount/stocktake-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ReconciliationRecord is the persisted snapshot of one invoice-parse attempt
// scored against a submitted order. It is derived data: append-only after
// creation and never a source of truth for inventory.
type ReconciliationRecord struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	VenueID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"venue_id"`
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"order_id"`
	Source      string              `gorm:"size:50" json:"source"`       // e.g. "csv", "pdf"
	StoragePath string              `gorm:"size:512" json:"storage_path"`
	InvoicePO   string              `gorm:"size:100" json:"invoice_po"`
	POMatch     bool                `json:"po_match"`

	MatchedCount      int `json:"matched_count"`
	UnmatchedCount    int `json:"unmatched_count"`
	PriceChangedCount int `json:"price_changed_count"`

	OrderedTotal  int64 `gorm:"default:0" json:"ordered_total"`  // Stored in cents
	InvoicedTotal int64 `gorm:"default:0" json:"invoiced_total"` // Stored in cents

	OverlapRatio    float64             `json:"overlap_ratio"`
	AvgPriceDiff    float64             `json:"avg_price_diff"`
	MissRatio       float64             `json:"miss_ratio"`
	QualityScore    float64             `json:"quality_score"`
	FinalConfidence float64             `json:"final_confidence"`
	Tier            enum.ConfidenceTier `gorm:"size:20" json:"tier"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Venue Venue `gorm:"foreignKey:VenueID" json:"-"`
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new reconciliation record
func (r *ReconciliationRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReconciliationRecord model
func (ReconciliationRecord) TableName() string {
	return "reconciliation_records"
}
