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

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	mailerService  *service.MailerService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, mailerService *service.MailerService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		mailerService:  mailerService,
	}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	input := &service.ListInvoicesInput{
		Pagination: PaginationFromQuery(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseInvoiceStatus(statusStr)
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

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		ClientID      uuid.UUID          `json:"client_id" binding:"required"`
		Date          time.Time          `json:"date"`
		DueDate       time.Time          `json:"due_date"`
		VATRate       float64            `json:"vat_rate"`
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
	if req.DueDate.IsZero() {
		req.DueDate = req.Date.AddDate(0, 0, 30)
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		UserID:        *userID,
		ClientID:      req.ClientID,
		Date:          req.Date,
		DueDate:       req.DueDate,
		VATRate:       req.VATRate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Note:          req.Note,
		Lines:         toLineInputs(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating a pending invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		ClientID      uuid.UUID          `json:"client_id" binding:"required"`
		Date          time.Time          `json:"date"`
		DueDate       time.Time          `json:"due_date"`
		VATRate       float64            `json:"vat_rate"`
		DiscountType  *enum.DiscountType `json:"discount_type"`
		DiscountValue float64            `json:"discount_value"`
		Note          *string            `json:"note"`
		Lines         []lineRequest      `json:"lines" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), &service.UpdateInvoiceInput{
		ID:            id,
		ClientID:      req.ClientID,
		Date:          req.Date,
		DueDate:       req.DueDate,
		VATRate:       req.VATRate,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Note:          req.Note,
		Lines:         toLineInputs(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// Delete handles deleting an invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// UpdateStatus handles invoice lifecycle transitions
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Status enum.InvoiceStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status updated successfully", invoice)
}

// AddPayment records a payment against an invoice
func (h *InvoiceHandler) AddPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Amount float64   `json:"amount" binding:"required,gt=0"`
		Method string    `json:"method"`
		PaidAt time.Time `json:"paid_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.AddPayment(c.Request.Context(), &service.AddPaymentInput{
		InvoiceID: id,
		UserID:    *userID,
		Amount:    req.Amount,
		Method:    req.Method,
		PaidAt:    req.PaidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", invoice)
}

// ListPayments returns the payments of an invoice
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// DeletePayment removes a payment from an invoice
func (h *InvoiceHandler) DeletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	invoice, err := h.invoiceService.DeletePayment(c.Request.Context(), id, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment deleted successfully", invoice)
}

// Send emails an invoice to its client
func (h *InvoiceHandler) Send(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	_ = c.ShouldBindJSON(&req)

	invoice, err := h.mailerService.SendInvoice(c.Request.Context(), *userID, id, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice sent successfully", invoice)
}

// Export streams the user's invoices as an XLSX download
func (h *InvoiceHandler) Export(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoices, err := h.invoiceService.ExportInvoices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	buf, err := export.InvoicesXLSX(invoices)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := export.Filename("invoices", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.XLSXContentType, buf.Bytes())
}
