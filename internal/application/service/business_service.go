package service

import (
	"context"
	"time"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/repository"
	"github.com/google/uuid"
)

// BusinessService handles the user's business profile and subscription.
// Both records are provisioned lazily: the first read creates them with
// defaults so the rest of the app can assume they exist.
type BusinessService struct {
	businessRepo     repository.BusinessRepository
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

// NewBusinessService creates a new business service
func NewBusinessService(
	businessRepo repository.BusinessRepository,
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
) *BusinessService {
	return &BusinessService{
		businessRepo:     businessRepo,
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
	}
}

// GetOrCreateBusiness returns the user's business profile, creating a
// placeholder one on first access.
func (s *BusinessService) GetOrCreateBusiness(ctx context.Context, userID uuid.UUID) (*entity.Business, error) {
	business, err := s.businessRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if business != nil {
		return business, nil
	}

	name := "My Business"
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil && user != nil {
		name = user.FullName()
	}

	business = &entity.Business{
		UserID: userID,
		Name:   name,
	}
	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}

// GetOrCreateSubscription returns the user's subscription, creating a free
// active 30-day one on first access.
func (s *BusinessService) GetOrCreateSubscription(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if subscription != nil {
		return subscription, nil
	}

	subscription = &entity.Subscription{
		UserID:           userID,
		Plan:             "free",
		Status:           "active",
		CurrentPeriodEnd: time.Now().AddDate(0, 0, 30),
	}
	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	return subscription, nil
}

// UpdateBusinessInput represents the input for updating the business profile
type UpdateBusinessInput struct {
	UserID     uuid.UUID
	Name       string
	Address    *string
	City       *string
	PostalCode *string
	Country    *string
	SIRET      *string
	VATNumber  *string
	LogoURL    *string
}

// UpdateBusiness updates the user's business profile
func (s *BusinessService) UpdateBusiness(ctx context.Context, input *UpdateBusinessInput) (*entity.Business, error) {
	business, err := s.GetOrCreateBusiness(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		business.Name = input.Name
	}
	business.Address = input.Address
	business.City = input.City
	business.PostalCode = input.PostalCode
	business.Country = input.Country
	business.SIRET = input.SIRET
	business.VATNumber = input.VATNumber
	if input.LogoURL != nil {
		business.LogoURL = input.LogoURL
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}

	return business, nil
}
