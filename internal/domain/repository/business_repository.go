package repository

import (
	"context"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/google/uuid"
)

// BusinessRepository defines the interface for business profile operations
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
}

// SubscriptionRepository defines the interface for subscription operations
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error)
	Update(ctx context.Context, subscription *entity.Subscription) error
}
