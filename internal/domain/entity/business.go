package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business is the invoicing user's own company profile, one per user. It is
// auto-created with placeholder values the first time the dashboard loads.
type Business struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	City       *string        `gorm:"size:255" json:"city,omitempty"`
	PostalCode *string        `gorm:"size:20" json:"postal_code,omitempty"`
	Country    *string        `gorm:"size:100" json:"country,omitempty"`
	SIRET      *string        `gorm:"size:50;column:siret" json:"siret,omitempty"`
	VATNumber  *string        `gorm:"size:50" json:"vat_number,omitempty"`
	LogoURL    *string        `gorm:"size:255" json:"logo_url,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new business
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}
