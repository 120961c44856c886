package entity

import (
	"encoding/json"
	"time"

	"github.com/factura/factura-api/internal/domain/billing"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice represents a billing document. TotalHT is the pre-tax amount
// ("hors taxe"), Total the post-tax amount. Only PENDING, PAID and CANCELED
// are ever stored as status; OVERDUE is derived when reading.
type Invoice struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	Status         enum.InvoiceStatus `gorm:"default:0" json:"-"`
	Date           time.Time          `gorm:"type:date;not null" json:"date"`
	DueDate        time.Time          `gorm:"type:date;not null" json:"due_date"`
	TotalHT        float64            `gorm:"type:decimal(15,2);default:0" json:"total_ht"`
	VATRate        float64            `gorm:"type:decimal(5,2);default:0" json:"vat_rate"`
	VATAmount      float64            `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	DiscountType   *enum.DiscountType `gorm:"default:null" json:"discount_type,omitempty"`
	DiscountValue  float64            `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	DiscountAmount float64            `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	Total          float64            `gorm:"type:decimal(15,2);default:0" json:"total"`
	Note           *string            `gorm:"type:text" json:"note,omitempty"`
	QuoteID        *uuid.UUID         `gorm:"type:uuid" json:"quote_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Client   *Client       `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Lines    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// EffectiveStatus derives the status shown to callers, turning a pending
// invoice past its due date into OVERDUE without writing anything back.
func (i *Invoice) EffectiveStatus(now time.Time) enum.InvoiceStatus {
	return billing.EffectiveInvoiceStatus(i.Status, i.DueDate, now)
}

// Ledger folds the loaded payments into paid/remaining amounts.
func (i *Invoice) Ledger() billing.LedgerState {
	amounts := make([]float64, len(i.Payments))
	for n, p := range i.Payments {
		amounts[n] = p.Amount
	}
	return billing.Settle(i.Total, amounts)
}

// MarshalJSON adds the derived number, effective status and ledger state to
// API responses.
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	ledger := i.Ledger()
	return json.Marshal(&struct {
		Alias
		Number          string             `json:"number"`
		Status          enum.InvoiceStatus `json:"status"`
		PaidAmount      float64            `json:"paid_amount"`
		RemainingAmount float64            `json:"remaining_amount"`
		IsPaid          bool               `json:"is_paid"`
	}{
		Alias:           Alias(i),
		Number:          billing.InvoiceNumber(i.ID),
		Status:          i.EffectiveStatus(time.Now()),
		PaidAmount:      ledger.PaidAmount,
		RemainingAmount: ledger.RemainingAmount,
		IsPaid:          ledger.IsPaid,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is a line entry in an invoice; quantity and unit price are
// snapshots, independent of later catalog changes.
type InvoiceItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName  string         `gorm:"size:255" json:"item_name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	LineTotal float64        `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Item    Item    `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
