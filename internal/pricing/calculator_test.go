package pricing

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func countryProduct() InsuranceProduct {
	return InsuranceProduct{
		Type:        "auto",
		DisplayName: "Auto Insurance",
		BasePrice:   500,
		Fields: []RatingField{
			NewSelectField("country", "Country", 1.0,
				FieldOption{Value: "USA", Multiplier: 1.0},
				FieldOption{Value: "Canada", Multiplier: 0.9},
				FieldOption{Value: "UK", Multiplier: 1.2},
			),
		},
	}
}

func ageProduct() InsuranceProduct {
	return InsuranceProduct{
		Type:        "auto",
		DisplayName: "Auto Insurance",
		BasePrice:   500,
		Fields: []RatingField{
			NewRangeField("age", "What is your age?", 1.07,
				FieldBracket{Min: 18, Max: 25, Multiplier: 1.3},
				FieldBracket{Min: 26, Max: 40, Multiplier: 1.0},
				FieldBracket{Min: 41, Max: 65, Multiplier: 1.05},
			),
		},
	}
}

func isRounded(v float64) bool {
	return math.Abs(v*100-math.Round(v*100)) < 1e-6
}

// ============================================================================
// CALCULATOR
// ============================================================================

func TestCalculate_IsDeterministic(t *testing.T) {
	product := DefaultProducts()[0]
	data := CollectedData{"age": "33", "gender": "male", "country": "Canada", "city": "Boston"}

	first := Calculate(product, data)
	for range 20 {
		assert.Equal(t, first, Calculate(product, data))
	}
}

func TestCalculate_BasePriceFallback(t *testing.T) {
	quote := Calculate(InsuranceProduct{BasePrice: 0}, CollectedData{})

	assert.Equal(t, 500.0, quote.BasePrice)
	assert.Equal(t, 500.0, quote.TotalPrice)
	require.NotNil(t, quote.Adjustments)
	assert.Empty(t, quote.Adjustments)
	require.Len(t, quote.Diagnostics, 1)
	assert.Equal(t, ReasonInvalidBasePrice, quote.Diagnostics[0].Reason)
}

func TestCalculate_NegativeAndNaNBasePriceFallback(t *testing.T) {
	for _, base := range []float64{-10, math.NaN(), math.Inf(1)} {
		quote := Calculate(InsuranceProduct{BasePrice: base}, nil)
		assert.Equal(t, FallbackBasePrice, quote.BasePrice)
		assert.Equal(t, FallbackBasePrice, quote.TotalPrice)
	}
}

func TestCalculate_SelectExactMatch(t *testing.T) {
	quote := Calculate(countryProduct(), CollectedData{"country": "UK"})

	require.Len(t, quote.Adjustments, 1)
	assert.Equal(t, "Country", quote.Adjustments[0].Name)
	assert.Equal(t, 1.2, quote.Adjustments[0].Factor)
	assert.Equal(t, "+20%", quote.Adjustments[0].Percentage)
	assert.Equal(t, "Selected: UK", quote.Adjustments[0].Description)
	assert.Equal(t, 600.0, quote.TotalPrice)
	assert.Empty(t, quote.Diagnostics)
}

func TestCalculate_SelectNoMatchUsesFallback(t *testing.T) {
	quote := Calculate(countryProduct(), CollectedData{"country": "Mars"})

	assert.Empty(t, quote.Adjustments, "fallback of 1.0 is not listed")
	assert.Equal(t, 500.0, quote.TotalPrice)
	require.Len(t, quote.Diagnostics, 1)
	assert.Equal(t, "country", quote.Diagnostics[0].Field)
	assert.Equal(t, ReasonNoMatchingOption, quote.Diagnostics[0].Reason)
	assert.Equal(t, "Mars", quote.Diagnostics[0].Value)
}

func TestCalculate_RangeMatchWithNeutralMultiplierIsSuppressed(t *testing.T) {
	quote := Calculate(ageProduct(), CollectedData{"age": "30"})

	assert.Empty(t, quote.Adjustments, "bracket 26-40 has multiplier 1.0")
	assert.Equal(t, 500.0, quote.TotalPrice)
	assert.Empty(t, quote.Diagnostics, "a matched bracket is not a fallback")
}

func TestCalculate_RangeOutsideAllBracketsFallsBack(t *testing.T) {
	quote := Calculate(ageProduct(), CollectedData{"age": "200"})

	require.Len(t, quote.Adjustments, 1)
	assert.Equal(t, "What is your age?", quote.Adjustments[0].Name)
	assert.Equal(t, 1.07, quote.Adjustments[0].Factor)
	assert.Equal(t, "+7%", quote.Adjustments[0].Percentage)
	assert.Equal(t, "Default rate", quote.Adjustments[0].Description)
	assert.Equal(t, 535.0, quote.TotalPrice)
	require.Len(t, quote.Diagnostics, 1)
	assert.Equal(t, ReasonOutOfRange, quote.Diagnostics[0].Reason)
}

func TestCalculate_ExplicitAgeFieldSuppressesLegacyAge(t *testing.T) {
	quote := Calculate(ageProduct(), CollectedData{"age": "20"})

	require.Len(t, quote.Adjustments, 1)
	assert.Equal(t, "What is your age?", quote.Adjustments[0].Name)
	assert.Equal(t, 1.3, quote.Adjustments[0].Factor)
	assert.Equal(t, 650.0, quote.TotalPrice)
	for _, adj := range quote.Adjustments {
		assert.NotEqual(t, "Age", adj.Name)
	}
}

func TestCalculate_LegacyAgeWithoutExplicitField(t *testing.T) {
	product := InsuranceProduct{Type: "travel", BasePrice: 200}

	quote := Calculate(product, CollectedData{"age": 20})

	require.Len(t, quote.Adjustments, 1)
	assert.Equal(t, "Age", quote.Adjustments[0].Name)
	assert.Equal(t, 1.5, quote.Adjustments[0].Factor)
	assert.Equal(t, 300.0, quote.TotalPrice)
}

func TestCalculate_RoundsPricesAndFactors(t *testing.T) {
	product := InsuranceProduct{
		Type:      "pet",
		BasePrice: 99.99,
		Fields: []RatingField{
			NewSelectField("breed", "Breed", 1, FieldOption{Value: "Husky", Multiplier: 1.33333}),
			NewRangeField("weight", "Weight", 1, FieldBracket{Min: 0, Max: 10, Multiplier: 0.876543}),
			NewSelectField("indoor", "Indoor", 1.1),
		},
	}

	quote := Calculate(product, CollectedData{"breed": "husky", "weight": 4.2, "indoor": "yes"})

	require.Len(t, quote.Adjustments, 3)
	assert.Equal(t, 1.33, quote.Adjustments[0].Factor)
	assert.Equal(t, 0.88, quote.Adjustments[1].Factor)
	assert.Equal(t, "-12%", quote.Adjustments[1].Percentage)
	assert.Equal(t, 1.1, quote.Adjustments[2].Factor)
	assert.True(t, isRounded(quote.TotalPrice), "total %v", quote.TotalPrice)
	assert.True(t, isRounded(quote.BasePrice))
	for _, adj := range quote.Adjustments {
		assert.True(t, isRounded(adj.Factor), "factor %v", adj.Factor)
	}
	// 99.99 + 33.32967 - 12.34447 + 9.999 = 130.97420, rounded once
	assert.Equal(t, 130.97, quote.TotalPrice)
}

func TestCalculate_MultiFieldAggregation(t *testing.T) {
	product := InsuranceProduct{
		Type:      "home",
		BasePrice: 1000,
		Fields: []RatingField{
			NewSelectField("roof", "Roof", 1, FieldOption{Value: "Tile", Multiplier: 1.1}),
			NewSelectField("alarm", "Alarm", 1, FieldOption{Value: "Yes", Multiplier: 0.9}),
		},
	}

	quote := Calculate(product, CollectedData{"roof": "tile", "alarm": "yes"})

	require.Len(t, quote.Adjustments, 2)
	assert.Equal(t, "Roof", quote.Adjustments[0].Name)
	assert.Equal(t, "+10%", quote.Adjustments[0].Percentage)
	assert.Equal(t, "Alarm", quote.Adjustments[1].Name)
	assert.Equal(t, "-10%", quote.Adjustments[1].Percentage)
	assert.Equal(t, 1000.0, quote.TotalPrice)
}

func TestCalculate_LegacyRunsBeforeConfiguredFields(t *testing.T) {
	product := InsuranceProduct{
		Type:      "auto",
		BasePrice: 100,
		Fields: []RatingField{
			NewSelectField("smoker", "Smoker", 1, FieldOption{Value: "Yes", Multiplier: 1.5}),
		},
	}

	quote := Calculate(product, CollectedData{
		"smoker":  "yes",
		"gender":  "Female",
		"city":    "Tokyo",
		"country": "germany",
		"age":     "70",
	})

	names := make([]string, 0, len(quote.Adjustments))
	for _, adj := range quote.Adjustments {
		names = append(names, adj.Name)
	}
	assert.Equal(t, []string{"Age", "Country", "City", "Gender", "Smoker"}, names)
	// 100 + 40 + 5 + 40 - 10 + 50
	assert.Equal(t, 225.0, quote.TotalPrice)
}

func TestCalculate_MissingConfiguredValueRecordsDiagnostic(t *testing.T) {
	quote := Calculate(ageProduct(), CollectedData{})

	require.Len(t, quote.Adjustments, 1)
	assert.Equal(t, 1.07, quote.Adjustments[0].Factor)
	require.Len(t, quote.Diagnostics, 1)
	assert.Equal(t, ReasonMissingValue, quote.Diagnostics[0].Reason)
	assert.Empty(t, quote.Diagnostics[0].Value)
}

func TestCalculator_LogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	calc := NewCalculator(logger)

	quote := calc.Calculate(countryProduct(), CollectedData{"country": "Mars"})

	assert.Equal(t, 500.0, quote.TotalPrice)
	assert.Contains(t, buf.String(), `"reason":"no_matching_option"`)
	assert.Contains(t, buf.String(), `"field":"country"`)
}
