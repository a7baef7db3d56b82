// Package validation checks candidate records before they are written.
//
// Field rules live in the `validate` struct tags on the models; this package
// registers the custom rules, runs them and converts failures into
// *apperror.ValidationError keyed by JSON field name. Nothing here touches
// storage.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"vessels/internal/apperror"
	"vessels/models"

	"github.com/go-playground/validator/v10"
)

const (
	tagYearBuilt      = "year_built"
	tagShipType       = "ship_type"
	tagExitAfterEntry = "exit_after_entry"
)

// Bounds for Ship.YearBuilt.
const (
	MinYearBuilt = 0
	MaxYearBuilt = 9999
)

// ExitBeforeEntryMessage is reported when a visit ends before it starts.
const ExitBeforeEntryMessage = "Exit time cannot be before entry time."

// Validator is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation(tagYearBuilt, func(fl validator.FieldLevel) bool {
		return CheckYearBuilt(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation(tagShipType, func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || models.ShipType(s).Valid()
	})
	v.RegisterStructValidation(visitOrder, models.Visit{})
	return &Validator{v: v}
}

func (v *Validator) Company(c *models.Company) error { return v.check(c) }

func (v *Validator) Person(p *models.Person) error { return v.check(p) }

func (v *Validator) Ship(s *models.Ship) error { return v.check(s) }

func (v *Validator) Harbour(h *models.Harbour) error { return v.check(h) }

// Visit checks the references and, when both bounds are present, that the
// visit does not end before it starts. A visit with a missing bound is not
// ordered.
func (v *Validator) Visit(vis *models.Visit) error { return v.check(vis) }

// CheckYearBuilt accepts "" and strings of decimal digits whose value lies in
// [MinYearBuilt, MaxYearBuilt].
func CheckYearBuilt(value string) error {
	if value == "" {
		return nil
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return fmt.Errorf("%s is not a valid number.", value)
		}
	}
	year, err := strconv.Atoi(value)
	if err != nil || year < MinYearBuilt || year > MaxYearBuilt {
		return fmt.Errorf("%s is not within the range %d to %d.", value, MinYearBuilt, MaxYearBuilt)
	}
	return nil
}

// ParseShipType validates a ship type supplied outside a record, e.g. as a
// list filter.
func ParseShipType(field, value string) (models.ShipType, error) {
	t := models.ShipType(value)
	if !t.Valid() {
		return "", apperror.Invalid(field, choiceMessage(value))
	}
	return t, nil
}

func visitOrder(sl validator.StructLevel) {
	vis := sl.Current().Interface().(models.Visit)
	if vis.EntryTime == nil || vis.ExitTime == nil {
		return
	}
	if vis.ExitTime.Before(*vis.EntryTime) {
		sl.ReportError(vis.ExitTime, "exit_time", "ExitTime", tagExitAfterEntry, "")
	}
}

func (v *Validator) check(record any) error {
	err := v.v.Struct(record)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate %T: %w", record, err)
	}
	out := &apperror.ValidationError{Fields: make([]apperror.FieldError, 0, len(errs))}
	for _, fe := range errs {
		out.Fields = append(out.Fields, fieldError(fe))
	}
	return out
}

func fieldError(fe validator.FieldError) apperror.FieldError {
	f := apperror.FieldError{Field: fe.Field(), Code: apperror.CodeInvalid}
	switch tag := fe.Tag(); {
	case tag == "required":
		f.Code = apperror.CodeRequired
		f.Message = "This field is required."
	case tag == "max":
		f.Message = fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case tag == "gte":
		f.Message = fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case strings.HasPrefix(tag, "email"):
		f.Message = "Enter a valid email address."
	case tag == tagYearBuilt:
		if err := CheckYearBuilt(valueString(fe.Value())); err != nil {
			f.Message = err.Error()
		}
	case tag == tagShipType:
		f.Message = choiceMessage(valueString(fe.Value()))
	case tag == tagExitAfterEntry:
		f.Message = ExitBeforeEntryMessage
	default:
		f.Message = fmt.Sprintf("failed %q rule", tag)
	}
	return f
}

func choiceMessage(value string) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}

func valueString(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return ""
	}
	return fmt.Sprint(rv.Interface())
}
