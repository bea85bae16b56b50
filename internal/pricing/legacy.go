package pricing

import (
	"strings"
	"unicode/utf8"
)

// Field names covered by the built-in demographic tables.
const (
	LegacyAge     = "age"
	LegacyCountry = "country"
	LegacyCity    = "city"
	LegacyGender  = "gender"
)

var legacyCountryRates = map[string]struct {
	multiplier  float64
	description string
}{
	"USA":       {1.0, "United States"},
	"CANADA":    {0.9, "Canada"},
	"UK":        {1.1, "United Kingdom"},
	"AUSTRALIA": {1.2, "Australia"},
	"GERMANY":   {1.05, "Germany"},
}

const internationalMultiplier = 1.3

var (
	majorMetroAreas = []string{"new york", "los angeles", "chicago", "london", "tokyo", "paris"}
	largeUrbanAreas = []string{"san", "boston", "dallas", "berlin", "sydney", "toronto"}
)

// legacyAdjustment is one application of a built-in table.
type legacyAdjustment struct {
	name        string
	multiplier  float64
	description string
	// always is set for tables whose adjustments are listed even when neutral.
	always bool
}

// legacyAdjustments applies the built-in tables for the demographic
// attributes the product does not declare itself, in age, country, city,
// gender order.
func legacyAdjustments(product InsuranceProduct, data CollectedData) ([]legacyAdjustment, []Diagnostic) {
	var (
		out   []legacyAdjustment
		diags []Diagnostic
	)

	if raw, ok := legacyValue(product, data, LegacyAge); ok {
		if adj, ok := ageAdjustment(raw); ok {
			out = append(out, adj)
		} else {
			diags = append(diags, Diagnostic{
				Field:   LegacyAge,
				Reason:  ReasonNotNumeric,
				Value:   stringify(raw),
				Message: "age is not numeric, built-in age rate skipped",
			})
		}
	}
	if raw, ok := legacyValue(product, data, LegacyCountry); ok {
		out = append(out, countryAdjustment(stringify(raw)))
	}
	if raw, ok := legacyValue(product, data, LegacyCity); ok {
		out = append(out, cityAdjustment(stringify(raw)))
	}
	if raw, ok := legacyValue(product, data, LegacyGender); ok {
		out = append(out, genderAdjustment(stringify(raw)))
	}
	return out, diags
}

func legacyValue(product InsuranceProduct, data CollectedData, name string) (any, bool) {
	if product.HasField(name) {
		return nil, false
	}
	raw, ok := data[name]
	if !ok || IsAbsent(raw) {
		return nil, false
	}
	return raw, true
}

func ageAdjustment(raw any) (legacyAdjustment, bool) {
	age, ok := toNumber(raw)
	if !ok {
		return legacyAdjustment{}, false
	}
	adj := legacyAdjustment{name: "Age", always: true}
	switch {
	case age < 25:
		adj.multiplier, adj.description = 1.5, "Young customer (under 25)"
	case age < 40:
		adj.multiplier, adj.description = 1.0, "Standard age (25-39)"
	case age < 65:
		adj.multiplier, adj.description = 1.2, "Middle age (40-64)"
	default:
		adj.multiplier, adj.description = 1.4, "Senior (65+)"
	}
	return adj, true
}

// countryAdjustment matches the fixed country list exactly, ignoring case.
// Synonyms such as "United Kingdom" are international.
func countryAdjustment(country string) legacyAdjustment {
	adj := legacyAdjustment{name: "Country", always: true}
	if rate, ok := legacyCountryRates[strings.ToUpper(strings.TrimSpace(country))]; ok {
		adj.multiplier, adj.description = rate.multiplier, rate.description
		return adj
	}
	adj.multiplier, adj.description = internationalMultiplier, "International"
	return adj
}

func cityAdjustment(city string) legacyAdjustment {
	name := normalize(city)
	adj := legacyAdjustment{name: "City", multiplier: 1.0, description: "Standard city rate"}
	switch {
	case containsAny(name, majorMetroAreas):
		adj.multiplier, adj.description = 1.4, "Major metropolitan area"
	case containsAny(name, largeUrbanAreas):
		adj.multiplier, adj.description = 1.2, "Large urban area"
	case utf8.RuneCountInString(name) < 6:
		adj.multiplier, adj.description = 0.9, "Small town/rural area"
	}
	return adj
}

// genderAdjustment checks "female" first since it contains "male".
func genderAdjustment(gender string) legacyAdjustment {
	g := normalize(gender)
	adj := legacyAdjustment{name: "Gender", multiplier: 1.0, description: "Standard rate"}
	switch {
	case strings.Contains(g, "female"):
		adj.multiplier, adj.description = 0.9, "Female"
	case strings.Contains(g, "male"):
		adj.multiplier, adj.description = 1.1, "Male"
	}
	return adj
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
