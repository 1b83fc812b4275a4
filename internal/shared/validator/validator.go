package validator

import (
	"encoding/json"
	"errors"
	"fmt"

	"book-catalog/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Field gom các rule của một key trong request body.
// Rule được chạy theo thứ tự khai báo, lỗi đầu tiên thắng.
type Field struct {
	Name     string
	Optional bool
	Rules    []validation.Rule
}

// Ruleset validates fields in declared order and reports only the first violation.
type Ruleset []Field

// Validate checks every field. A required key that is absent fails with
// "The field <name> is missing."; optional keys are checked only when non-null.
// Unknown keys are ignored.
func (rs Ruleset) Validate(input map[string]interface{}) error {
	for _, f := range rs {
		value, ok := input[f.Name]
		if !ok {
			if f.Optional {
				continue
			}
			return apperror.Validation(fmt.Sprintf("The field %s is missing.", f.Name))
		}
		if f.Optional && value == nil {
			continue
		}
		if err := validation.Validate(value, f.Rules...); err != nil {
			return apperror.Validation(err.Error())
		}
	}
	return nil
}

// ValidatePartial only checks fields that are present and non-null (update semantics).
func (rs Ruleset) ValidatePartial(input map[string]interface{}) error {
	for _, f := range rs {
		value, ok := input[f.Name]
		if !ok || value == nil {
			continue
		}
		if err := validation.Validate(value, f.Rules...); err != nil {
			return apperror.Validation(err.Error())
		}
	}
	return nil
}

// AnyPresent reports whether input carries at least one known, non-null field.
func (rs Ruleset) AnyPresent(input map[string]interface{}) bool {
	for _, f := range rs {
		if v, ok := input[f.Name]; ok && v != nil {
			return true
		}
	}
	return false
}

func NotNull(field string) validation.Rule {
	return validation.NotNil.Error(fmt.Sprintf("The %s parameter cannot be null.", field))
}

func String(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if _, ok := value.(string); !ok {
			return fmt.Errorf("The %s parameter must be a string.", field)
		}
		return nil
	})
}

func Number(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if _, ok := ToFloat(value); !ok {
			return fmt.Errorf("The %s parameter must be a number.", field)
		}
		return nil
	})
}

func NonNegative(field string) validation.Rule {
	return validation.By(func(value interface{}) error {
		f, ok := ToFloat(value)
		if ok && f < 0 {
			return fmt.Errorf("The %s parameter must be greater than or equal to 0.", field)
		}
		return nil
	})
}

func MaxLength(field string, max int) validation.Rule {
	return validation.RuneLength(0, max).
		Error(fmt.Sprintf("The %s parameter cannot be longer than %d characters.", field, max))
}

var errNotNumber = errors.New("not a number")

// ToFloat chuyển các kiểu số mà JSON decoder có thể sinh ra về float64
func ToFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// MustFloat is ToFloat for values that already passed Number.
func MustFloat(value interface{}) (float64, error) {
	f, ok := ToFloat(value)
	if !ok {
		return 0, errNotNumber
	}
	return f, nil
}
