package utils

import (
	"database/sql/driver"
	"fmt"

	json "github.com/goccy/go-json"
)

// JSONBValue encodes v for a Postgres jsonb column. A nil v stores NULL.
func JSONBValue(v any) (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("JSONB: Value failed: %w", err)
	}
	return b, nil
}

// ScanJSONB decodes a jsonb column into target. NULL leaves target untouched.
func ScanJSONB(value any, target any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, target)
	case string:
		return json.Unmarshal([]byte(v), target)
	default:
		return fmt.Errorf("JSONB: Scan failed, expected []byte but got %T", value)
	}
}
