package pricing

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const productJSON = `[
  {
    "type": "auto",
    "displayName": "Auto Insurance",
    "basePrice": 500,
    "fields": [
      {"name": "age", "label": "Age", "type": "range", "fallbackMultiplier": 1.07,
       "brackets": [{"min": 18, "max": 25, "multiplier": 1.3}]},
      {"name": "country", "label": "Country", "type": "select",
       "options": [{"value": "UK", "multiplier": 1.2}]}
    ]
  }
]`

func TestRatingField_UnmarshalJSON(t *testing.T) {
	var products []InsuranceProduct
	require.NoError(t, json.Unmarshal([]byte(productJSON), &products))
	require.Len(t, products, 1)

	fields := products[0].Fields
	require.Len(t, fields, 2)

	assert.Equal(t, KindRange, fields[0].Kind())
	assert.Equal(t, 1.07, fields[0].FallbackMultiplier)
	rr, ok := fields[0].Rule.(RangeRule)
	require.True(t, ok)
	assert.Equal(t, []FieldBracket{{Min: 18, Max: 25, Multiplier: 1.3}}, rr.Brackets)

	assert.Equal(t, KindSelect, fields[1].Kind())
	assert.Equal(t, DefaultFallbackMultiplier, fields[1].FallbackMultiplier, "missing fallback defaults to 1")
}

func TestRatingField_UnmarshalJSONUnknownType(t *testing.T) {
	var field RatingField
	err := json.Unmarshal([]byte(`{"name":"x","label":"X","type":"checkbox"}`), &field)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestRatingField_JSONRoundTripKeepsShape(t *testing.T) {
	field := NewSelectField("smoker", "Smoker", 1.0, FieldOption{Value: "Yes", Multiplier: 1.5})

	raw, err := json.Marshal(field)
	require.NoError(t, err)

	assert.JSONEq(t, `{"name":"smoker","label":"Smoker","type":"select","fallbackMultiplier":1,"options":[{"value":"Yes","multiplier":1.5}]}`, string(raw))
}

func TestRatingField_YAML(t *testing.T) {
	doc := `
- type: life
  displayName: Life Insurance
  basePrice: 300
  fields:
    - name: smoker
      label: Are you a smoker?
      type: select
      fallbackMultiplier: 1
      options:
        - {value: "Yes", multiplier: 1.5}
        - {value: "No", multiplier: 1}
`
	var products []InsuranceProduct
	require.NoError(t, yaml.Unmarshal([]byte(doc), &products))
	require.Len(t, products, 1)
	sr, ok := products[0].Fields[0].Rule.(SelectRule)
	require.True(t, ok)
	assert.Len(t, sr.Options, 2)

	out, err := yaml.Marshal(products)
	require.NoError(t, err)
	var again []InsuranceProduct
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, products, again)
}

func TestValidateProducts_DefaultsAreValid(t *testing.T) {
	assert.NoError(t, ValidateProducts(DefaultProducts()))
}

func TestValidateProducts_CollectsEveryProblem(t *testing.T) {
	products := []InsuranceProduct{
		{Type: "auto", BasePrice: math.NaN(), Fields: []RatingField{
			NewRangeField("age", "Age", -1, FieldBracket{Min: 40, Max: 20, Multiplier: 1}),
			NewSelectField("age", "Age again", 1, FieldOption{Value: " ", Multiplier: 1}),
			{Name: "bare", Label: "Bare", FallbackMultiplier: 1},
		}},
		{Type: "auto", BasePrice: 0},
	}

	err := ValidateProducts(products)

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "basePrice must be a finite number")
	assert.Contains(t, msg, "fallbackMultiplier")
	assert.Contains(t, msg, "min 40 is greater than max 20")
	assert.Contains(t, msg, `duplicate field name "age"`)
	assert.Contains(t, msg, "value is required")
	assert.Contains(t, msg, "type must be select or range")
	assert.Contains(t, msg, `duplicate type "auto"`)
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "+7%", FormatPercentage(1.07))
	assert.Equal(t, "-10%", FormatPercentage(0.9))
	assert.Equal(t, "+0%", FormatPercentage(1))
	assert.Equal(t, "+50%", FormatPercentage(1.5))
	assert.Equal(t, "-100%", FormatPercentage(0))
	assert.Equal(t, "+0%", FormatPercentage(math.Inf(1)))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.13, RoundMoney(10.125))
	assert.Equal(t, 599.99, RoundMoney(599.994))
	assert.Equal(t, 1.33, RoundFactor(1.33333))
}
