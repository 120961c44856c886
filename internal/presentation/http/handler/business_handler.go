package handler

import (
	"github.com/factura/factura-api/internal/application/service"
	"github.com/factura/factura-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// BusinessHandler handles business profile and subscription HTTP requests
type BusinessHandler struct {
	businessService *service.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Get returns the user's business profile, provisioning it on first access
func (h *BusinessHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	business, err := h.businessService.GetOrCreateBusiness(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile retrieved successfully", business)
}

// Update updates the user's business profile
func (h *BusinessHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name       string  `json:"name"`
		Address    *string `json:"address"`
		City       *string `json:"city"`
		PostalCode *string `json:"postal_code"`
		Country    *string `json:"country"`
		SIRET      *string `json:"siret"`
		VATNumber  *string `json:"vat_number"`
		LogoURL    *string `json:"logo_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	business, err := h.businessService.UpdateBusiness(c.Request.Context(), &service.UpdateBusinessInput{
		UserID:     *userID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		SIRET:      req.SIRET,
		VATNumber:  req.VATNumber,
		LogoURL:    req.LogoURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business profile updated successfully", business)
}

// GetSubscription returns the user's subscription, provisioning it on first access
func (h *BusinessHandler) GetSubscription(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	subscription, err := h.businessService.GetOrCreateSubscription(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Subscription retrieved successfully", subscription)
}
