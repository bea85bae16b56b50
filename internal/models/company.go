package models

import (
	"database/sql/driver"
	"time"

	"quote-service/internal/pricing"
	utils "quote-service/shared/utils"
)

// InsuranceProducts is a company's product list, stored as one jsonb column.
type InsuranceProducts []pricing.InsuranceProduct

func (p InsuranceProducts) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return utils.JSONBValue([]pricing.InsuranceProduct(p))
}

func (p *InsuranceProducts) Scan(value any) error {
	var out []pricing.InsuranceProduct
	if err := utils.ScanJSONB(value, &out); err != nil {
		return err
	}
	*p = out
	return nil
}

// Find returns the product whose type equals insuranceType exactly.
func (p InsuranceProducts) Find(insuranceType string) (pricing.InsuranceProduct, bool) {
	for _, product := range p {
		if product.Type == insuranceType {
			return product, true
		}
	}
	return pricing.InsuranceProduct{}, false
}

func (p InsuranceProducts) Offers(insuranceType string) bool {
	_, ok := p.Find(insuranceType)
	return ok
}

type Company struct {
	ID             string            `json:"companyId" db:"id"`
	Name           string            `json:"companyName" db:"name"`
	Email          string            `json:"email" db:"email"`
	Website        string            `json:"website" db:"website"`
	Phone          string            `json:"phone" db:"phone"`
	Address        string            `json:"address" db:"address"`
	LogoURL        string            `json:"logo" db:"logo_url"`
	InsuranceTypes InsuranceProducts `json:"insuranceTypes" db:"insurance_types"`
	CreatedAt      time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time         `json:"updatedAt" db:"updated_at"`
}

type ProductSummary struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
}

// CompanySummary is the list view of a company.
type CompanySummary struct {
	ID             string           `json:"companyId"`
	Name           string           `json:"companyName"`
	LogoURL        string           `json:"logo,omitempty"`
	InsuranceTypes []ProductSummary `json:"insuranceTypes"`
}

func (c Company) Summary() CompanySummary {
	summaries := make([]ProductSummary, 0, len(c.InsuranceTypes))
	for _, p := range c.InsuranceTypes {
		summaries = append(summaries, ProductSummary{Type: p.Type, DisplayName: p.DisplayName})
	}
	return CompanySummary{
		ID:             c.ID,
		Name:           c.Name,
		LogoURL:        c.LogoURL,
		InsuranceTypes: summaries,
	}
}

// WithProductType returns a copy of c listing only the product of that type.
func (c Company) WithProductType(insuranceType string) Company {
	filtered := InsuranceProducts{}
	if product, ok := c.InsuranceTypes.Find(insuranceType); ok {
		filtered = append(filtered, product)
	}
	c.InsuranceTypes = filtered
	return c
}
