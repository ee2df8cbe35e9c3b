package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// isoDateLayouts are tried in order. Go's parser accepts optional fractional
// seconds after a seconds field even when the layout omits them.
var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// IsISODate reports whether s is an ISO-8601 date or date-time.
func IsISODate(s string) bool {
	for _, layout := range isoDateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func validateISODate(fl validator.FieldLevel) bool {
	return IsISODate(fl.Field().String())
}
