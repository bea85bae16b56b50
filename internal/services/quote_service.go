package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"quote-service/internal/models"
	"quote-service/internal/pricing"
	utils "quote-service/shared/utils"

	"github.com/google/uuid"
)

const (
	QuoteSourceAPI  = "api"
	QuoteSourceChat = "chat"
)

type IQuoteService interface {
	CreateQuote(ctx context.Context, req models.CreateQuoteRequest) (*models.QuoteResponse, error)
}

type QuoteService struct {
	products   IInsuranceTypeService
	calculator *pricing.Calculator
	jobs       JobSubmitter
	publisher  QuoteEventPublisher
	mailer     QuoteMailer
}

// NewQuoteService wires the quote flow. jobs, publisher and mailer may be nil;
// the matching side effect is then skipped.
func NewQuoteService(
	products IInsuranceTypeService,
	calculator *pricing.Calculator,
	jobs JobSubmitter,
	publisher QuoteEventPublisher,
	mailer QuoteMailer,
) *QuoteService {
	return &QuoteService{
		products:   products,
		calculator: calculator,
		jobs:       jobs,
		publisher:  publisher,
		mailer:     mailer,
	}
}

func (s *QuoteService) CreateQuote(ctx context.Context, req models.CreateQuoteRequest) (*models.QuoteResponse, error) {
	return s.quote(ctx, req, QuoteSourceAPI)
}

func (s *QuoteService) quote(ctx context.Context, req models.CreateQuoteRequest, source string) (*models.QuoteResponse, error) {
	if strings.TrimSpace(req.CompanyID) == "" || strings.TrimSpace(req.InsuranceType) == "" {
		return nil, badRequest("companyId and insuranceType are required")
	}
	email := strings.TrimSpace(req.Email)
	if email != "" {
		if _, err := utils.ValidateEmail(email); err != nil {
			return nil, badRequest("invalid email")
		}
	}

	company, product, err := s.products.GetProductDetails(ctx, req.CompanyID, req.InsuranceType)
	if err != nil {
		return nil, err
	}

	data := req.CollectedData
	if data == nil {
		data = pricing.CollectedData{}
	}

	resp := &models.QuoteResponse{
		Quote:         s.calculator.Calculate(product, data),
		QuoteID:       uuid.NewString(),
		CompanyID:     company.ID,
		CompanyName:   company.Name,
		InsuranceType: product.Type,
		InsuranceName: product.DisplayName,
		Currency:      models.QuoteCurrency,
		Period:        models.QuotePeriod,
		CollectedData: data,
		CreatedAt:     time.Now(),
	}

	slog.Info("Quote calculated",
		"quote_id", resp.QuoteID,
		"company_id", resp.CompanyID,
		"insurance_type", resp.InsuranceType,
		"total_price", resp.TotalPrice,
		"fallbacks", len(resp.Diagnostics),
		"source", source)

	s.afterQuote(*resp, email, source)
	return resp, nil
}

// afterQuote queues the event and the optional email. Failures never reach the caller.
func (s *QuoteService) afterQuote(quote models.QuoteResponse, email, source string) {
	if s.jobs == nil {
		return
	}

	if s.publisher != nil {
		evt := models.QuoteCalculatedEvent{
			EventID:       uuid.NewString(),
			QuoteID:       quote.QuoteID,
			CompanyID:     quote.CompanyID,
			InsuranceType: quote.InsuranceType,
			BasePrice:     quote.BasePrice,
			TotalPrice:    quote.TotalPrice,
			Currency:      quote.Currency,
			Fallbacks:     len(quote.Diagnostics),
			Source:        source,
			OccurredAt:    quote.CreatedAt,
		}
		err := s.jobs.SubmitJob("publish-quote-event", func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return s.publisher.PublishQuoteCalculated(ctx, evt)
		})
		if err != nil {
			slog.Warn("quote event not queued", "quote_id", quote.QuoteID, "error", err)
		}
	}

	if s.mailer != nil && email != "" {
		err := s.jobs.SubmitJob("send-quote-email", func(ctx context.Context) error {
			return s.mailer.SendQuoteSummary(email, quote)
		})
		if err != nil {
			slog.Warn("quote email not queued", "quote_id", quote.QuoteID, "error", err)
		}
	}
}
