package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateProducts checks the structure of a company's product list: unique
// non-empty types, unique field names, known kinds, finite non-negative
// multipliers, ordered brackets. Pricing consistency across fields is not
// checked. A non-positive base price is accepted, the calculator replaces it.
func ValidateProducts(products []InsuranceProduct) error {
	var errs []error
	seen := make(map[string]bool, len(products))
	for i, p := range products {
		key := strings.TrimSpace(p.Type)
		if key == "" {
			errs = append(errs, fmt.Errorf("insuranceTypes[%d]: type is required", i))
		} else if seen[key] {
			errs = append(errs, fmt.Errorf("insuranceTypes[%d]: duplicate type %q", i, p.Type))
		}
		seen[key] = true
		if !finite(p.BasePrice) {
			errs = append(errs, fmt.Errorf("insuranceTypes[%d]: basePrice must be a finite number", i))
		}
		errs = append(errs, validateFields(p)...)
	}
	return errors.Join(errs...)
}

func validateFields(p InsuranceProduct) []error {
	var errs []error
	names := make(map[string]bool, len(p.Fields))
	for j, f := range p.Fields {
		where := fmt.Sprintf("%s.fields[%d]", p.Type, j)
		if strings.TrimSpace(f.Name) == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", where))
		} else if names[f.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate field name %q", where, f.Name))
		}
		names[f.Name] = true
		if err := checkMultiplier(where+".fallbackMultiplier", f.FallbackMultiplier); err != nil {
			errs = append(errs, err)
		}

		switch r := f.Rule.(type) {
		case SelectRule:
			for k, o := range r.Options {
				at := fmt.Sprintf("%s.options[%d]", where, k)
				if strings.TrimSpace(o.Value) == "" {
					errs = append(errs, fmt.Errorf("%s: value is required", at))
				}
				if err := checkMultiplier(at+".multiplier", o.Multiplier); err != nil {
					errs = append(errs, err)
				}
			}
		case RangeRule:
			for k, b := range r.Brackets {
				at := fmt.Sprintf("%s.brackets[%d]", where, k)
				if !finite(b.Min) || !finite(b.Max) {
					errs = append(errs, fmt.Errorf("%s: bounds must be finite", at))
				} else if b.Min > b.Max {
					errs = append(errs, fmt.Errorf("%s: min %v is greater than max %v", at, b.Min, b.Max))
				}
				if err := checkMultiplier(at+".multiplier", b.Multiplier); err != nil {
					errs = append(errs, err)
				}
			}
		default:
			errs = append(errs, fmt.Errorf("%s: type must be select or range", where))
		}
	}
	return errs
}

func checkMultiplier(where string, m float64) error {
	if !finite(m) || m < 0 {
		return fmt.Errorf("%s: must be a non-negative number, got %v", where, m)
	}
	return nil
}
