package models

import (
	"time"

	"quote-service/internal/pricing"
)

const (
	QuoteCurrency = "USD"
	QuotePeriod   = "monthly"
)

// QuoteResponse is a priced quote together with what was priced.
type QuoteResponse struct {
	pricing.Quote
	QuoteID       string                `json:"quoteId"`
	CompanyID     string                `json:"companyId"`
	CompanyName   string                `json:"companyName"`
	InsuranceType string                `json:"insuranceType"`
	InsuranceName string                `json:"insuranceName"`
	Currency      string                `json:"currency"`
	Period        string                `json:"period"`
	CollectedData pricing.CollectedData `json:"collectedData"`
	CreatedAt     time.Time             `json:"createdAt"`
}

// QuoteCalculatedEvent is published after every successful quote.
type QuoteCalculatedEvent struct {
	EventID       string    `json:"eventId"`
	QuoteID       string    `json:"quoteId"`
	CompanyID     string    `json:"companyId"`
	InsuranceType string    `json:"insuranceType"`
	BasePrice     float64   `json:"basePrice"`
	TotalPrice    float64   `json:"totalPrice"`
	Currency      string    `json:"currency"`
	Fallbacks     int       `json:"fallbacks"`
	Source        string    `json:"source"`
	OccurredAt    time.Time `json:"occurredAt"`
}
