package authoring

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-recipebox/internal/recipe"
)

// ErrInvalidSubmission is matched by every *ValidationError.
var ErrInvalidSubmission = errors.New("invalid recipe submission")

// FieldError is one rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// String returns the message prefixed with the field label, e.g.
// "Title is required".
func (e FieldError) String() string {
	return fieldLabel(e.Field) + " " + e.Message
}

// ValidationError lists the rejected fields in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return ErrInvalidSubmission.Error() + ": " + strings.Join(msgs, "; ")
}

// Is reports ErrInvalidSubmission as the error kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSubmission
}

// Messages returns the display message of every field error.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.String())
	}
	return out
}

// Validator wraps go-playground/validator with form field names and
// the recipe enumerations.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a validator that reports form field names and knows
// the difficulty and category enumerations.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "difficulty", func(fl validator.FieldLevel) bool {
		return recipe.IsDifficulty(fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return recipe.IsCategory(fl.Field().String())
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("authoring: register %q validation: %v", tag, err))
	}
}

// Validate checks s and returns a *ValidationError listing every rejected
// field once, in struct order.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	out := &ValidationError{}
	seen := make(map[string]bool, len(validationErrs))
	for _, e := range validationErrs {
		field := baseField(e.Field())
		if seen[field] {
			continue
		}
		seen[field] = true
		out.Fields = append(out.Fields, FieldError{Field: field, Message: friendlyMessage(e)})
	}
	return out
}

func friendlyMessage(e validator.FieldError) string {
	unit := ""
	if e.Kind() == reflect.String {
		unit = " characters"
	} else if e.Kind() == reflect.Slice {
		unit = " entries"
	}

	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s%s", e.Param(), unit)
	case "number":
		return "must be a whole number"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "difficulty":
		return "must be one of: " + strings.Join(recipe.Difficulties, ", ")
	case "category":
		return "must be one of: " + strings.Join(recipe.Categories, ", ")
	default:
		return "is invalid"
	}
}

// baseField strips a slice index: "tags[3]" becomes "tags".
func baseField(field string) string {
	name, _, _ := strings.Cut(field, "[")
	return name
}

var fieldLabels = map[string]string{
	"title":       "Title",
	"summary":     "Summary",
	"servings":    "Servings",
	"totalTime":   "Total time",
	"difficulty":  "Difficulty",
	"tags":        "Tags",
	"category":    "Category",
	"ingredients": "Ingredients",
	"steps":       "Steps",
}

func fieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}
