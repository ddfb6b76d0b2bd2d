package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// reservedSeparators may not appear in free-text fields because the flat
// stores use them as field delimiters.
const reservedSeparators = "|\r\n"

// ledgerPhrases open a labelled field inside a sales ledger detail line.
var ledgerPhrases = []string{", Item: ", ", Quantity Sold: ", ", Total Price: ", ", Batch Number: "}

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match ErrValidation as well as the underlying cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}

// NewValidator returns a validator with the tags shared by all stores:
//
//	nosep    string must not contain a store separator
//	nocomma  string must not contain a comma
//	decimal  string must parse as a decimal greater than zero
//	nolabel  string must not contain a sales ledger field label
//
// decimal.Decimal fields are exposed to numeric tags (gt, gte) as float64.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	mustRegister(v, "nosep", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), reservedSeparators)
	})
	mustRegister(v, "nocomma", func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), ",")
	})
	mustRegister(v, "nolabel", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, phrase := range ledgerPhrases {
			if strings.Contains(value, phrase) {
				return false
			}
		}
		return true
	})
	mustRegister(v, "decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && d.IsPositive()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// ValidateStruct runs v over s and converts the first failure into a
// *ValidationError.
func ValidateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Reason: describeTag(fe)}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "nosep":
		return "must not contain '|' or line breaks"
	case "nocomma":
		return "must not contain ','"
	case "nolabel":
		return "must not contain a sales ledger label such as ', Total Price: '"
	case "decimal":
		return "must be a number greater than zero"
	case "moneyscale":
		return "must have at most 2 decimal places"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "must be a valid " + fe.Tag()
	}
}
