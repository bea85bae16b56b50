package pricing

import (
	"log/slog"
	"math"
)

// QuoteAdjustment is one line of the quote breakdown.
type QuoteAdjustment struct {
	Name        string  `json:"name"`
	Factor      float64 `json:"factor"`
	Percentage  string  `json:"percentage"`
	Description string  `json:"description"`
}

// Diagnostic records a degraded input or configuration value that was
// patched during a calculation.
type Diagnostic struct {
	Field   string         `json:"field,omitempty"`
	Reason  FallbackReason `json:"reason"`
	Value   string         `json:"value,omitempty"`
	Message string         `json:"message"`
}

// ReasonInvalidBasePrice marks a product base price replaced by FallbackBasePrice.
const ReasonInvalidBasePrice FallbackReason = "invalid_base_price"

// Quote is the priced result. Prices and factors are rounded to two decimals.
type Quote struct {
	BasePrice   float64           `json:"basePrice"`
	Adjustments []QuoteAdjustment `json:"adjustments"`
	TotalPrice  float64           `json:"totalPrice"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
}

// Calculate prices product for the collected data. Built-in demographic
// tables run first for the attributes the product does not declare, then
// every configured field in order. Each applied multiplier m adds
// base*(m-1) to the total. Calculate is deterministic and never fails.
func Calculate(product InsuranceProduct, data CollectedData) Quote {
	var diags []Diagnostic

	base := product.BasePrice
	if !(base > 0) || math.IsInf(base, 0) {
		diags = append(diags, Diagnostic{
			Reason:  ReasonInvalidBasePrice,
			Value:   formatNumber(product.BasePrice),
			Message: "base price must be positive, using fallback base price",
		})
		base = FallbackBasePrice
	}

	total := base
	adjustments := make([]QuoteAdjustment, 0, len(product.Fields))

	legacy, legacyDiags := legacyAdjustments(product, data)
	diags = append(diags, legacyDiags...)
	for _, adj := range legacy {
		if !adj.always && adj.multiplier == 1 {
			continue
		}
		total += base * (adj.multiplier - 1)
		adjustments = append(adjustments, newAdjustment(adj.name, adj.multiplier, adj.description))
	}

	for _, field := range product.Fields {
		raw := data[field.Name]
		eval := Evaluate(field, raw)
		if eval.Reason != ReasonNone {
			diags = append(diags, fieldDiagnostic(field, raw, eval.Reason))
		}

		total += base * (eval.Multiplier - 1)
		if eval.Multiplier != 1 {
			adjustments = append(adjustments, newAdjustment(field.Label, eval.Multiplier, eval.Description))
		}
	}

	return Quote{
		BasePrice:   RoundMoney(base),
		Adjustments: adjustments,
		TotalPrice:  RoundMoney(total),
		Diagnostics: diags,
	}
}

func newAdjustment(name string, factor float64, description string) QuoteAdjustment {
	return QuoteAdjustment{
		Name:        name,
		Factor:      RoundFactor(factor),
		Percentage:  FormatPercentage(factor),
		Description: description,
	}
}

func fieldDiagnostic(field RatingField, raw any, reason FallbackReason) Diagnostic {
	d := Diagnostic{Field: field.Name, Reason: reason}
	if !IsAbsent(raw) {
		d.Value = stringify(raw)
	}
	switch reason {
	case ReasonMissingValue:
		d.Message = "missing value, using fallback multiplier"
	case ReasonNoMatchingOption:
		d.Message = "no matching option, using fallback multiplier"
	case ReasonNotNumeric:
		d.Message = "value is not numeric, using fallback multiplier"
	case ReasonOutOfRange:
		d.Message = "value is outside every bracket, using fallback multiplier"
	case ReasonNoRule:
		d.Message = "field has no select or range rule, using fallback multiplier"
	}
	return d
}

// Calculator runs Calculate and logs every diagnostic as a warning.
type Calculator struct {
	logger *slog.Logger
}

func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{logger: logger}
}

func (c *Calculator) Calculate(product InsuranceProduct, data CollectedData) Quote {
	quote := Calculate(product, data)
	for _, d := range quote.Diagnostics {
		c.logger.Warn("Quote calculation fallback",
			"insurance_type", product.Type,
			"field", d.Field,
			"reason", d.Reason,
			"value", d.Value,
			"message", d.Message)
	}
	return quote
}
