package models

import "quote-service/internal/pricing"

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

type UpdateCompanyRequest struct {
	Name    string `json:"companyName"`
	Website string `json:"website"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateInsuranceTypesRequest struct {
	InsuranceTypes []pricing.InsuranceProduct `json:"insuranceTypes"`
}

type CreateQuoteRequest struct {
	CompanyID     string                `json:"companyId"`
	InsuranceType string                `json:"insuranceType"`
	CollectedData pricing.CollectedData `json:"collectedData"`
	Email         string                `json:"email,omitempty"`
}

type CreateChatSessionRequest struct {
	CompanyID     string `json:"companyId"`
	InsuranceType string `json:"insuranceType"`
}

type SendChatMessageRequest struct {
	Message string `json:"message"`
}
