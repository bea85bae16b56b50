package models

import (
	"time"

	"quote-service/internal/pricing"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatSession is a guided conversation that collects the fields of one product.
type ChatSession struct {
	ID            string                `json:"id"`
	CompanyID     string                `json:"companyId"`
	CompanyName   string                `json:"companyName"`
	InsuranceType string                `json:"insuranceType"`
	InsuranceName string                `json:"insuranceName"`
	Messages      []ChatMessage         `json:"messages"`
	CollectedData pricing.CollectedData `json:"collectedData"`
	Completed     bool                  `json:"completed"`
	Quote         *QuoteResponse        `json:"quote,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// ChatReply is the answer to one user message.
type ChatReply struct {
	SessionID     string                `json:"sessionId"`
	Answer        string                `json:"answer"`
	CollectedData pricing.CollectedData `json:"collectedData"`
	Completed     bool                  `json:"completed"`
	Quote         *QuoteResponse        `json:"quote,omitempty"`
}
