package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

const defaultRateDescription = "Default rate"

// FallbackReason explains why a field resolved to its fallback multiplier.
type FallbackReason string

const (
	ReasonNone             FallbackReason = ""
	ReasonMissingValue     FallbackReason = "missing_value"
	ReasonNoMatchingOption FallbackReason = "no_matching_option"
	ReasonNotNumeric       FallbackReason = "not_numeric"
	ReasonOutOfRange       FallbackReason = "out_of_range"
	ReasonNoRule           FallbackReason = "no_rule"
)

// Evaluation is the resolved multiplier of a single field.
type Evaluation struct {
	Multiplier  float64
	Description string
	Matched     bool
	Reason      FallbackReason
}

func fallback(field RatingField, reason FallbackReason) Evaluation {
	return Evaluation{
		Multiplier:  field.FallbackMultiplier,
		Description: defaultRateDescription,
		Reason:      reason,
	}
}

// Evaluate resolves the multiplier of field for a raw client value. A nil
// value, an empty string or a whitespace-only string count as absent.
// Evaluate never fails: every defect resolves to the field fallback.
func Evaluate(field RatingField, raw any) Evaluation {
	if IsAbsent(raw) {
		return fallback(field, ReasonMissingValue)
	}

	switch rule := field.Rule.(type) {
	case SelectRule:
		return evaluateSelect(field, rule, raw)
	case RangeRule:
		return evaluateRange(field, rule, raw)
	default:
		return fallback(field, ReasonNoRule)
	}
}

// evaluateSelect picks the first option that equals the input, is contained
// in it, or contains it. Short option values can match unrelated inputs
// ("uk" matches "ukraine"); the order of options decides.
func evaluateSelect(field RatingField, rule SelectRule, raw any) Evaluation {
	input := normalize(stringify(raw))
	for _, opt := range rule.Options {
		value := normalize(opt.Value)
		if value == input || strings.Contains(input, value) || strings.Contains(value, input) {
			return Evaluation{
				Multiplier:  opt.Multiplier,
				Description: "Selected: " + opt.Value,
				Matched:     true,
			}
		}
	}
	return fallback(field, ReasonNoMatchingOption)
}

func evaluateRange(field RatingField, rule RangeRule, raw any) Evaluation {
	value, ok := toNumber(raw)
	if !ok {
		return fallback(field, ReasonNotNumeric)
	}
	for _, b := range rule.Brackets {
		if value >= b.Min && value <= b.Max {
			return Evaluation{
				Multiplier:  b.Multiplier,
				Description: fmt.Sprintf("Range: %s-%s", formatNumber(b.Min), formatNumber(b.Max)),
				Matched:     true,
			}
		}
	}
	return fallback(field, ReasonOutOfRange)
}

// IsAbsent reports whether a client value counts as not supplied.
func IsAbsent(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *string:
		return v == nil || strings.TrimSpace(*v) == ""
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case *string:
		return *v
	case fmt.Stringer:
		return v.String()
	}
	if n, ok := toNumber(raw); ok {
		return formatNumber(n)
	}
	return fmt.Sprint(raw)
}

// toNumber coerces numeric types and numeric strings. Booleans, NaN and
// infinities are not numbers here.
func toNumber(raw any) (float64, bool) {
	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = f
	case *string:
		if v == nil {
			return 0, false
		}
		return toNumber(*v)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
