package entity

import (
	"encoding/json"
	"time"

	"github.com/factura/factura-api/internal/domain/billing"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quote represents a pre-sale proposal. The discount is persisted as a
// structured (type, value) pair instead of being back-computed from the
// stored total.
type Quote struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	Status         enum.QuoteStatus   `gorm:"default:0" json:"status"`
	Date           time.Time          `gorm:"type:date;not null" json:"date"`
	ValidUntil     time.Time          `gorm:"type:date" json:"valid_until"`
	TaxRate        float64            `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`
	DiscountType   *enum.DiscountType `gorm:"default:null" json:"discount_type,omitempty"`
	DiscountValue  float64            `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	Subtotal       float64            `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TaxAmount      float64            `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	DiscountAmount float64            `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	Total          float64            `gorm:"type:decimal(15,2);default:0" json:"total"`
	Note           *string            `gorm:"type:text" json:"note,omitempty"`
	InvoiceID      *uuid.UUID         `gorm:"type:uuid" json:"invoice_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User   User        `gorm:"foreignKey:UserID" json:"-"`
	Client *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Lines  []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// MarshalJSON adds the derived display number to API responses
func (q Quote) MarshalJSON() ([]byte, error) {
	type Alias Quote
	return json.Marshal(&struct {
		Alias
		Number string `json:"number"`
	}{
		Alias:  Alias(q),
		Number: billing.QuoteNumber(q.ID),
	})
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// QuoteItem is a line entry in a quote with its own quantity and unit price
// snapshot, decoupled from the catalog item it came from.
type QuoteItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"quote_id"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName  string         `gorm:"size:255" json:"item_name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	LineTotal float64        `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Quote Quote `gorm:"foreignKey:QuoteID" json:"-"`
	Item  Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote line
func (qi *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteItem model
func (QuoteItem) TableName() string {
	return "quote_items"
}
