package service

import (
	"context"

	"github.com/factura/factura-api/internal/domain/billing"
	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/internal/domain/repository"
	"github.com/factura/factura-api/pkg/apperror"
	"github.com/factura/factura-api/pkg/email"
	"github.com/google/uuid"
)

// MailerService sends quotes and invoices to clients by email
type MailerService struct {
	quoteRepo    repository.QuoteRepository
	invoiceRepo  repository.InvoiceRepository
	businessRepo repository.BusinessRepository
	emailService *email.EmailService
}

// NewMailerService creates a new mailer service
func NewMailerService(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	businessRepo repository.BusinessRepository,
	emailService *email.EmailService,
) *MailerService {
	return &MailerService{
		quoteRepo:    quoteRepo,
		invoiceRepo:  invoiceRepo,
		businessRepo: businessRepo,
		emailService: emailService,
	}
}

// SendQuote emails a quote to its client. A draft quote moves to SENT as a
// side effect; re-sending an already sent quote leaves the status alone.
func (s *MailerService) SendQuote(ctx context.Context, userID, id uuid.UUID, message string) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Client == nil || quote.Client.Email == nil {
		return nil, apperror.NewBadRequestError("Client has no email address")
	}

	sender, err := s.senderName(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := email.DocumentEmailData{
		Kind:       "Quote",
		Number:     billing.QuoteNumber(quote.ID),
		ClientName: quote.Client.Name,
		SenderName: sender,
		Total:      quote.Total,
		Message:    message,
	}
	if err := s.emailService.SendDocumentEmail(*quote.Client.Email, data); err != nil {
		return nil, err
	}

	if quote.Status == enum.QuoteStatusDraft {
		if err := s.quoteRepo.UpdateStatus(ctx, quote.ID, enum.QuoteStatusSent); err != nil {
			return nil, err
		}
		quote.Status = enum.QuoteStatusSent
	}

	return quote, nil
}

// SendInvoice emails an invoice to its client
func (s *MailerService) SendInvoice(ctx context.Context, userID, id uuid.UUID, message string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Client == nil || invoice.Client.Email == nil {
		return nil, apperror.NewBadRequestError("Client has no email address")
	}

	sender, err := s.senderName(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := email.DocumentEmailData{
		Kind:       "Invoice",
		Number:     billing.InvoiceNumber(invoice.ID),
		ClientName: invoice.Client.Name,
		SenderName: sender,
		Total:      invoice.Total,
		Message:    message,
	}
	if err := s.emailService.SendDocumentEmail(*invoice.Client.Email, data); err != nil {
		return nil, err
	}

	return invoice, nil
}

func (s *MailerService) senderName(ctx context.Context, userID uuid.UUID) (string, error) {
	business, err := s.businessRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if business == nil {
		return "Factura", nil
	}
	return business.Name, nil
}
