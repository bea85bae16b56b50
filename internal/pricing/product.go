package pricing

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FallbackBasePrice replaces a non-positive product base price.
const FallbackBasePrice = 500.0

// DefaultFallbackMultiplier is used when a stored field omits fallbackMultiplier.
const DefaultFallbackMultiplier = 1.0

type FieldKind string

const (
	KindSelect FieldKind = "select"
	KindRange  FieldKind = "range"
)

// InsuranceProduct is one quotable product offered by a company.
type InsuranceProduct struct {
	Type        string        `json:"type" yaml:"type"`
	DisplayName string        `json:"displayName" yaml:"displayName"`
	BasePrice   float64       `json:"basePrice" yaml:"basePrice"`
	Fields      []RatingField `json:"fields" yaml:"fields"`
}

// HasField reports whether the product declares a field with exactly this name.
func (p InsuranceProduct) HasField(name string) bool {
	for _, f := range p.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// RatingField is one client attribute that affects price. Rule is either a
// SelectRule or a RangeRule.
type RatingField struct {
	Name               string
	Label              string
	FallbackMultiplier float64
	Rule               Rule
}

// Rule is the closed set of field kinds.
type Rule interface {
	Kind() FieldKind
	rule()
}

type SelectRule struct {
	Options []FieldOption
}

type RangeRule struct {
	Brackets []FieldBracket
}

func (SelectRule) Kind() FieldKind { return KindSelect }
func (RangeRule) Kind() FieldKind  { return KindRange }
func (SelectRule) rule()           {}
func (RangeRule) rule()            {}

type FieldOption struct {
	Value      string  `json:"value" yaml:"value"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// FieldBracket is an inclusive numeric interval.
type FieldBracket struct {
	Min        float64 `json:"min" yaml:"min"`
	Max        float64 `json:"max" yaml:"max"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// NewSelectField builds a select field.
func NewSelectField(name, label string, fallback float64, options ...FieldOption) RatingField {
	return RatingField{Name: name, Label: label, FallbackMultiplier: fallback, Rule: SelectRule{Options: options}}
}

// NewRangeField builds a range field.
func NewRangeField(name, label string, fallback float64, brackets ...FieldBracket) RatingField {
	return RatingField{Name: name, Label: label, FallbackMultiplier: fallback, Rule: RangeRule{Brackets: brackets}}
}

// Kind returns the kind of the field rule, or "" when the field has none.
func (f RatingField) Kind() FieldKind {
	if f.Rule == nil {
		return ""
	}
	return f.Rule.Kind()
}

// fieldDocument is the stored shape of a rating field.
type fieldDocument struct {
	Name               string         `json:"name" yaml:"name"`
	Label              string         `json:"label" yaml:"label"`
	Type               FieldKind      `json:"type" yaml:"type"`
	FallbackMultiplier *float64       `json:"fallbackMultiplier,omitempty" yaml:"fallbackMultiplier,omitempty"`
	Options            []FieldOption  `json:"options,omitempty" yaml:"options,omitempty"`
	Brackets           []FieldBracket `json:"brackets,omitempty" yaml:"brackets,omitempty"`
}

func (f RatingField) toDocument() fieldDocument {
	fallback := f.FallbackMultiplier
	doc := fieldDocument{
		Name:               f.Name,
		Label:              f.Label,
		FallbackMultiplier: &fallback,
	}
	switch r := f.Rule.(type) {
	case SelectRule:
		doc.Type = KindSelect
		doc.Options = r.Options
	case RangeRule:
		doc.Type = KindRange
		doc.Brackets = r.Brackets
	}
	return doc
}

func (doc fieldDocument) toField() (RatingField, error) {
	field := RatingField{
		Name:               doc.Name,
		Label:              doc.Label,
		FallbackMultiplier: DefaultFallbackMultiplier,
	}
	if doc.FallbackMultiplier != nil {
		field.FallbackMultiplier = *doc.FallbackMultiplier
	}
	switch FieldKind(strings.ToLower(string(doc.Type))) {
	case KindSelect:
		field.Rule = SelectRule{Options: doc.Options}
	case KindRange:
		field.Rule = RangeRule{Brackets: doc.Brackets}
	default:
		return RatingField{}, fmt.Errorf("field %q: unknown type %q, expected select or range", doc.Name, doc.Type)
	}
	return field, nil
}

func (f RatingField) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.toDocument())
}

func (f *RatingField) UnmarshalJSON(data []byte) error {
	var doc fieldDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	field, err := doc.toField()
	if err != nil {
		return err
	}
	*f = field
	return nil
}

func (f RatingField) MarshalYAML() (any, error) {
	return f.toDocument(), nil
}

func (f *RatingField) UnmarshalYAML(value *yaml.Node) error {
	var doc fieldDocument
	if err := value.Decode(&doc); err != nil {
		return err
	}
	field, err := doc.toField()
	if err != nil {
		return err
	}
	*f = field
	return nil
}

// CollectedData maps field names to client supplied values.
type CollectedData map[string]any
