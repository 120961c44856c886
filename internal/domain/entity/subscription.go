package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is a per-user plan record, auto-created with a default active
// 30-day plan if absent on first dashboard load.
type Subscription struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Plan             string         `gorm:"size:50;not null;default:'free'" json:"plan"`
	Status           string         `gorm:"size:50;not null;default:'active'" json:"status"`
	CurrentPeriodEnd time.Time      `gorm:"not null" json:"current_period_end"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new subscription
func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}

// IsActive reports whether the subscription currently grants access
func (s *Subscription) IsActive() bool {
	return s.Status == "active" && time.Now().Before(s.CurrentPeriodEnd)
}
