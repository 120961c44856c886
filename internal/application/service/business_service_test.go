package service

import (
	"context"
	"testing"
	"time"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusinessService(users ...entity.User) *BusinessService {
	return NewBusinessService(newFakeBusinessRepo(), newFakeSubscriptionRepo(), newFakeUserRepo(users...))
}

func TestGetOrCreateBusinessProvisionsFromUserName(t *testing.T) {
	user := entity.User{ID: uuid.New(), FirstName: "Marie", LastName: "Durand", Email: "marie@example.com"}
	svc := newBusinessService(user)

	business, err := svc.GetOrCreateBusiness(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Marie Durand", business.Name)
	assert.Equal(t, user.ID, business.UserID)
}

func TestGetOrCreateBusinessIsIdempotent(t *testing.T) {
	user := entity.User{ID: uuid.New(), FirstName: "Marie", LastName: "Durand"}
	svc := newBusinessService(user)
	ctx := context.Background()

	first, err := svc.GetOrCreateBusiness(ctx, user.ID)
	require.NoError(t, err)
	second, err := svc.GetOrCreateBusiness(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreateSubscriptionDefaults(t *testing.T) {
	svc := newBusinessService()
	userID := uuid.New()

	subscription, err := svc.GetOrCreateSubscription(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "free", subscription.Plan)
	assert.Equal(t, "active", subscription.Status)
	assert.True(t, subscription.CurrentPeriodEnd.After(time.Now()))
}

func TestUpdateBusinessProvisionsWhenMissing(t *testing.T) {
	user := entity.User{ID: uuid.New(), FirstName: "Jean", LastName: "Petit"}
	svc := newBusinessService(user)
	siret := "12345678900011"

	business, err := svc.UpdateBusiness(context.Background(), &UpdateBusinessInput{
		UserID: user.ID,
		Name:   "Petit Conseil",
		SIRET:  &siret,
	})
	require.NoError(t, err)

	assert.Equal(t, "Petit Conseil", business.Name)
	require.NotNil(t, business.SIRET)
	assert.Equal(t, siret, *business.SIRET)
}
