package entity

import (
	"time"

	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template is a saved document layout. Content only affects rendering, never
// totals or lifecycle logic. At most one template per (user, type) may be
// the default; the repository enforces that inside a transaction.
type Template struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_templates_user_type,priority:1" json:"user_id"`
	Type      enum.TemplateType `gorm:"not null;index:idx_templates_user_type,priority:2" json:"type"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Content   string            `gorm:"type:jsonb;default:'{}'" json:"content"`
	IsDefault bool              `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new template
func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Template model
func (Template) TableName() string {
	return "templates"
}
