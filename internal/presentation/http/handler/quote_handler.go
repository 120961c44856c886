package handler

import (
	"net/http"
	"time"

	"github.com/factura/factura-api/internal/application/service"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/internal/presentation/http/dto/response"
	"github.com/factura/factura-api/pkg/export"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService  *service.QuoteService
	mailerService *service.MailerService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService, mailerService *service.MailerService) *QuoteHandler {
	return &QuoteHandler{
		quoteService:  quoteService,
		mailerService: mailerService,
	}
}

// lineRequest is the wire shape of a document line
type lineRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitPrice *float64  `json:"unit_price"`
}

func toLineInputs(lines []lineRequest) []service.DocumentLineInput {
	inputs := make([]service.DocumentLineInput, len(lines))
	for i, l := range lines {
		inputs[i] = service.DocumentLineInput{
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return inputs
}

// List handles listing quotes
func (h *QuoteHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.ListQuotesInput{
		Pagination: PaginationFromQuery(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseQuoteStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		input.Status = &status
	}

	if clientIDStr := c.Query("client_id"); clientIDStr != "" {
		clientID, err := uuid.Parse(clientIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		input.ClientID = &clientID
	}

	result, err := h.quoteService.ListQuotes(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Create handles creating a quote
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ClientID      uuid.UUID          `json:"client_id" binding:"required"`
		Date          time.Time          `json:"date"`
		ValidUntil    time.Time          `json:"valid_until"`
		TaxRate       float64            `json:"tax_rate"`
		DiscountType  *enum.DiscountType `json:"discount_type"`
		DiscountValue float64            `json:"discount_value"`
		Note          *string            `json:"note"`
		Lines         []lineRequest      `json:"lines" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), &service.CreateQuoteInput{
		UserID:        *userID,
		ClientID:      req.ClientID,
		Date:          req.Date,
		ValidUntil:    req.ValidUntil,
		TaxRate:       req.TaxRate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Note:          req.Note,
		Lines:         toLineInputs(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// Get handles retrieving a single quote
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Update handles updating a draft quote
func (h *QuoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		ClientID      uuid.UUID          `json:"client_id" binding:"required"`
		Date          time.Time          `json:"date"`
		ValidUntil    time.Time          `json:"valid_until"`
		TaxRate       float64            `json:"tax_rate"`
		DiscountType  *enum.DiscountType `json:"discount_type"`
		DiscountValue float64            `json:"discount_value"`
		Note          *string            `json:"note"`
		Lines         []lineRequest      `json:"lines" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), &service.UpdateQuoteInput{
		ID:            id,
		ClientID:      req.ClientID,
		Date:          req.Date,
		ValidUntil:    req.ValidUntil,
		TaxRate:       req.TaxRate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Note:          req.Note,
		Lines:         toLineInputs(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// Delete handles deleting a quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote deleted successfully", nil)
}

// UpdateStatus handles quote lifecycle transitions
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		Status enum.QuoteStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote status updated successfully", quote)
}

// Convert handles converting an accepted quote into an invoice
func (h *QuoteHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		DueDate time.Time `json:"due_date"`
	}
	// Body is optional; an empty due date defaults to 30 days out
	_ = c.ShouldBindJSON(&req)

	invoice, err := h.quoteService.ConvertToInvoice(c.Request.Context(), id, req.DueDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote converted to invoice successfully", invoice)
}

// Send emails a quote to its client
func (h *QuoteHandler) Send(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	_ = c.ShouldBindJSON(&req)

	quote, err := h.mailerService.SendQuote(c.Request.Context(), *userID, id, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote sent successfully", quote)
}

// Export streams the user's quotes as an XLSX download
func (h *QuoteHandler) Export(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	quotes, err := h.quoteService.ExportQuotes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := export.QuotesXLSX(quotes)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := export.Filename("quotes", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}
