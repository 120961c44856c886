package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is a partial or full settlement against exactly one invoice.
// Several payments may accumulate on one invoice; overpayment is accepted.
type Payment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Method    string         `gorm:"size:100" json:"method"`
	PaidAt    time.Time      `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
