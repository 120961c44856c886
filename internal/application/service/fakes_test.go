package service

import (
	"context"
	"time"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/internal/domain/repository"
	"github.com/google/uuid"
)

// In-memory repository fakes. They keep the same not-found semantics as the
// gorm implementations: missing records come back as (nil, nil).

type fakeItemRepo struct {
	items map[uuid.UUID]entity.Item
}

func newFakeItemRepo(items ...entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[uuid.UUID]entity.Item)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *fakeItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Item, error) {
	var out []entity.Item
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(ctx context.Context, params *repository.ItemFilterParams) ([]entity.Item, int64, error) {
	var out []entity.Item
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, int64(len(out)), nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]entity.Client
}

func newFakeClientRepo(clients ...entity.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: make(map[uuid.UUID]entity.Client)}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(ctx context.Context, client *entity.Client) error {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	r.clients[client.ID] = *client
	return nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *entity.Client) error {
	r.clients[client.ID] = *client
	return nil
}

func (r *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) List(ctx context.Context, params *repository.ClientFilterParams) ([]entity.Client, int64, error) {
	var out []entity.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

type fakeQuoteRepo struct {
	quotes   map[uuid.UUID]entity.Quote
	lines    map[uuid.UUID][]entity.QuoteItem
	invoices *fakeInvoiceRepo

	// Consumed by the next write, which fails without mutating anything,
	// mirroring a rolled-back transaction.
	failNextWrite error
}

func newFakeQuoteRepo(invoices *fakeInvoiceRepo) *fakeQuoteRepo {
	return &fakeQuoteRepo{
		quotes:   make(map[uuid.UUID]entity.Quote),
		lines:    make(map[uuid.UUID][]entity.QuoteItem),
		invoices: invoices,
	}
}

func (r *fakeQuoteRepo) takeWriteError() error {
	err := r.failNextWrite
	r.failNextWrite = nil
	return err
}

func (r *fakeQuoteRepo) CreateWithLines(ctx context.Context, quote *entity.Quote, lines []entity.QuoteItem) error {
	if err := r.takeWriteError(); err != nil {
		return err
	}
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].QuoteID = quote.ID
	}
	r.quotes[quote.ID] = *quote
	r.lines[quote.ID] = lines
	return nil
}

func (r *fakeQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *fakeQuoteRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	q, ok := r.quotes[id]
	if !ok {
		return nil, nil
	}
	q.Lines = r.lines[id]
	return &q, nil
}

func (r *fakeQuoteRepo) UpdateWithLines(ctx context.Context, quote *entity.Quote, lines []entity.QuoteItem) error {
	if err := r.takeWriteError(); err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].QuoteID = quote.ID
	}
	r.quotes[quote.ID] = *quote
	r.lines[quote.ID] = lines
	return nil
}

func (r *fakeQuoteRepo) Convert(ctx context.Context, quote *entity.Quote, invoice *entity.Invoice, lines []entity.InvoiceItem) error {
	if err := r.takeWriteError(); err != nil {
		return err
	}
	if err := r.invoices.CreateWithLines(ctx, invoice, lines); err != nil {
		return err
	}
	quote.InvoiceID = &invoice.ID
	r.quotes[quote.ID] = *quote
	return nil
}

func (r *fakeQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.quotes, id)
	delete(r.lines, id)
	return nil
}

func (r *fakeQuoteRepo) List(ctx context.Context, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var out []entity.Quote
	for _, q := range r.quotes {
		if params.Status != nil && q.Status != *params.Status {
			continue
		}
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

func (r *fakeQuoteRepo) ListAll(ctx context.Context) ([]entity.Quote, error) {
	var out []entity.Quote
	for _, q := range r.quotes {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	q := r.quotes[id]
	q.Status = status
	r.quotes[id] = q
	return nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]entity.Invoice
	lines    map[uuid.UUID][]entity.InvoiceItem
	payments *fakePaymentRepo

	failNextWrite error
}

func newFakeInvoiceRepo(payments *fakePaymentRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[uuid.UUID]entity.Invoice),
		lines:    make(map[uuid.UUID][]entity.InvoiceItem),
		payments: payments,
	}
}

func (r *fakeInvoiceRepo) takeWriteError() error {
	err := r.failNextWrite
	r.failNextWrite = nil
	return err
}

func (r *fakeInvoiceRepo) CreateWithLines(ctx context.Context, invoice *entity.Invoice, lines []entity.InvoiceItem) error {
	if err := r.takeWriteError(); err != nil {
		return err
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].InvoiceID = invoice.ID
	}
	r.invoices[invoice.ID] = *invoice
	r.lines[invoice.ID] = lines
	return nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	inv.Lines = r.lines[id]
	if r.payments != nil {
		inv.Payments, _ = r.payments.ListByInvoiceID(ctx, id)
	}
	return &inv, nil
}

func (r *fakeInvoiceRepo) UpdateWithLines(ctx context.Context, invoice *entity.Invoice, lines []entity.InvoiceItem) error {
	if err := r.takeWriteError(); err != nil {
		return err
	}
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].InvoiceID = invoice.ID
	}
	r.invoices[invoice.ID] = *invoice
	r.lines[invoice.ID] = lines
	return nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.invoices, id)
	delete(r.lines, id)
	return nil
}

func (r *fakeInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	now := time.Now()
	for _, inv := range r.invoices {
		if params.Status != nil && inv.Status != *params.Status {
			continue
		}
		if params.Overdue && !(inv.Status == enum.InvoiceStatusPending && inv.DueDate.Before(now)) {
			continue
		}
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) ListAll(ctx context.Context) ([]entity.Invoice, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	inv := r.invoices[id]
	inv.Status = status
	r.invoices[id] = inv
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]entity.Payment)}
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePaymentRepo) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (float64, error) {
	var sum float64
	for _, p := range r.payments {
		if p.InvoiceID == invoiceID {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.payments, id)
	return nil
}

type fakeTemplateRepo struct {
	templates map[uuid.UUID]entity.Template
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[uuid.UUID]entity.Template)}
}

func (r *fakeTemplateRepo) Create(ctx context.Context, template *entity.Template) error {
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	r.templates[template.ID] = *template
	return nil
}

func (r *fakeTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Template, error) {
	t, ok := r.templates[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTemplateRepo) GetDefault(ctx context.Context, userID uuid.UUID, docType enum.TemplateType) (*entity.Template, error) {
	for _, t := range r.templates {
		if t.UserID == userID && t.Type == docType && t.IsDefault {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeTemplateRepo) Update(ctx context.Context, template *entity.Template) error {
	r.templates[template.ID] = *template
	return nil
}

func (r *fakeTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.templates, id)
	return nil
}

func (r *fakeTemplateRepo) List(ctx context.Context, userID uuid.UUID) ([]entity.Template, error) {
	var out []entity.Template
	for _, t := range r.templates {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) SetDefault(ctx context.Context, userID, id uuid.UUID, docType enum.TemplateType) error {
	for tid, t := range r.templates {
		if t.UserID == userID && t.Type == docType {
			t.IsDefault = tid == id
			r.templates[tid] = t
		}
	}
	return nil
}

type fakeBusinessRepo struct {
	businesses map[uuid.UUID]entity.Business
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{businesses: make(map[uuid.UUID]entity.Business)}
}

func (r *fakeBusinessRepo) Create(ctx context.Context, business *entity.Business) error {
	if business.ID == uuid.Nil {
		business.ID = uuid.New()
	}
	r.businesses[business.UserID] = *business
	return nil
}

func (r *fakeBusinessRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Business, error) {
	b, ok := r.businesses[userID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBusinessRepo) Update(ctx context.Context, business *entity.Business) error {
	r.businesses[business.UserID] = *business
	return nil
}

type fakeSubscriptionRepo struct {
	subscriptions map[uuid.UUID]entity.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subscriptions: make(map[uuid.UUID]entity.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, subscription *entity.Subscription) error {
	if subscription.ID == uuid.Nil {
		subscription.ID = uuid.New()
	}
	r.subscriptions[subscription.UserID] = *subscription
	return nil
}

func (r *fakeSubscriptionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Subscription, error) {
	s, ok := r.subscriptions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *fakeSubscriptionRepo) Update(ctx context.Context, subscription *entity.Subscription) error {
	r.subscriptions[subscription.UserID] = *subscription
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type fakePasswordResetTokenRepo struct {
	tokens map[uuid.UUID]entity.PasswordResetToken
}

func newFakePasswordResetTokenRepo() *fakePasswordResetTokenRepo {
	return &fakePasswordResetTokenRepo{tokens: make(map[uuid.UUID]entity.PasswordResetToken)}
}

func (r *fakePasswordResetTokenRepo) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.tokens[token.ID] = *token
	return nil
}

func (r *fakePasswordResetTokenRepo) GetByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	for _, t := range r.tokens {
		if t.Token == token {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakePasswordResetTokenRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	t, ok := r.tokens[id]
	if ok {
		t.Used = true
		r.tokens[id] = t
	}
	return nil
}

func (r *fakePasswordResetTokenRepo) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	for id, t := range r.tokens {
		if t.ExpiresAt.Before(now) {
			delete(r.tokens, id)
		}
	}
	return nil
}

// fakeAnalyticsRepo serves canned figures keyed on whether the queried window
// contains its reference instant.
type fakeAnalyticsRepo struct {
	now          time.Time
	revenue      map[bool]float64
	clients      map[bool]int64
	quotes       map[bool]int64
	unpaid       map[bool]float64
	totalRevenue float64
	clientCount  int64
	quoteCount   int64
	invoiceCount int64
}

func (r *fakeAnalyticsRepo) current(from, to time.Time) bool {
	return !r.now.Before(from) && !r.now.After(to)
}

func (r *fakeAnalyticsRepo) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.revenue[r.current(from, to)], nil
}

func (r *fakeAnalyticsRepo) ClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.clients[r.current(from, to)], nil
}

func (r *fakeAnalyticsRepo) QuotesCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return r.quotes[r.current(from, to)], nil
}

func (r *fakeAnalyticsRepo) UnpaidTotalBetween(ctx context.Context, from, to time.Time) (float64, error) {
	return r.unpaid[r.current(from, to)], nil
}

func (r *fakeAnalyticsRepo) TotalRevenue(ctx context.Context) (float64, error) {
	return r.totalRevenue, nil
}

func (r *fakeAnalyticsRepo) CountClients(ctx context.Context) (int64, error) {
	return r.clientCount, nil
}

func (r *fakeAnalyticsRepo) CountQuotes(ctx context.Context) (int64, error) {
	return r.quoteCount, nil
}

func (r *fakeAnalyticsRepo) CountInvoices(ctx context.Context) (int64, error) {
	return r.invoiceCount, nil
}
