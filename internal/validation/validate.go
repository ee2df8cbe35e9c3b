package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinFieldsMessage is reported when an object has fewer keys than Schema.MinFields.
const MinFieldsMessage = "Update must contain at least one field"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		// ALLOW-PANIC: registration only fails for an empty tag or nil func
		panic(fmt.Sprintf("failed to register isodate validation: %v", err))
	}
	return v
}

// Validate checks values against schema. Declared fields are checked in
// declaration order, then unknown keys in sorted order, then MinFields.
// Each field reports at most one message.
func Validate(schema Schema, values map[string]any) Result {
	var result Result

	declared := make(map[string]struct{}, len(schema.Fields))
	for _, f := range schema.Fields {
		declared[f.Name] = struct{}{}
		raw, present := values[f.Name]
		if msg, failed := checkField(f, raw, present); failed {
			result.Errors = append(result.Errors, msg)
		}
	}

	var unknown []string
	for key := range values {
		if _, ok := declared[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		result.Errors = append(result.Errors, fmt.Sprintf("%q is not allowed", key))
	}

	if len(values) < schema.MinFields {
		result.Errors = append(result.Errors, MinFieldsMessage)
	}

	return result
}

func checkField(f Field, raw any, present bool) (string, bool) {
	if !present {
		if f.Required {
			return f.message(KeyRequired, ""), true
		}
		return "", false
	}

	if raw == nil {
		if f.Nullable {
			return "", false
		}
		return f.message(KeyType, ""), true
	}

	value, key := coerce(f.Kind, raw)
	if key != "" {
		return f.message(key, ""), true
	}

	if s, ok := value.(string); ok && s == "" {
		return f.message(KeyEmpty, ""), true
	}

	if f.Rules == "" {
		return "", false
	}
	if err := validate.Var(value, f.Rules); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return f.message(fieldErrs[0].Tag(), fieldErrs[0].Param()), true
		}
		return f.message("", ""), true
	}
	return "", false
}

// coerce converts a decoded JSON value into the Go type the validator tags are
// applied to. It returns a failure key when raw does not match kind.
func coerce(kind Kind, raw any) (any, string) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, KeyType
		}
		return s, ""
	case KindInteger:
		f, ok := toFloat(raw)
		if !ok {
			return nil, KeyType
		}
		// Decoded JSON must be an integer literal, since handlers decode it into int.
		if n, isNumber := raw.(json.Number); isNumber {
			i, err := n.Int64()
			if err != nil {
				return nil, KeyInteger
			}
			return i, ""
		}
		if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return nil, KeyInteger
		}
		return int64(f), ""
	case KindNumber:
		f, ok := toFloat(raw)
		if !ok {
			return nil, KeyType
		}
		return f, ""
	default:
		return raw, ""
	}
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// message returns the override for key if one is set, else the default wording.
func (f Field) message(key, param string) string {
	if msg, ok := f.Messages[key]; ok {
		return msg
	}

	label := fmt.Sprintf("%q", f.Name)
	switch key {
	case KeyRequired:
		return label + " is required"
	case KeyEmpty:
		return label + " is not allowed to be empty"
	case KeyType:
		if f.Kind == KindString {
			return label + " must be a string"
		}
		return label + " must be a number"
	case KeyInteger:
		return label + " must be an integer"
	case "min":
		if f.Kind == KindString {
			return fmt.Sprintf("%s length must be at least %s characters long", label, param)
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", label, param)
	case "max":
		if f.Kind == KindString {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", label, param)
		}
		return fmt.Sprintf("%s must be less than or equal to %s", label, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", label, param)
	case "email":
		return label + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", label, strings.ReplaceAll(param, " ", ", "))
	case "isodate":
		return label + " must be in ISO 8601 date format"
	case "":
		return label + " is invalid"
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", label, key)
	}
}

