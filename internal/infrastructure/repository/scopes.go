package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

// OwnerIDKey is the context key carrying the authenticated user's id.
// Factura tenancy is row-level: every owned table has a user_id column and
// every query is filtered on it.
const OwnerIDKey ctxKey = "owner_id"

// OwnerScope returns a GORM scope that filters rows by the owning user.
// If the owner is missing from context, the scope matches nothing. This
// fail-safe prevents accidental cross-user data access.
func OwnerScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		ownerID, ok := ctx.Value(OwnerIDKey).(uuid.UUID)
		if !ok || ownerID == uuid.Nil {
			return db.Where("1 = 0")
		}
		return db.Where("user_id = ?", ownerID)
	}
}

// WithOwner adds the owning user id to context
func WithOwner(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, OwnerIDKey, userID)
}

// GetOwnerID extracts the owning user id from context
func GetOwnerID(ctx context.Context) (uuid.UUID, bool) {
	ownerID, ok := ctx.Value(OwnerIDKey).(uuid.UUID)
	return ownerID, ok
}
