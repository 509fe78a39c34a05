// Package apply is the write side of the job board: the application form,
// its validation, and the one-shot submission to the sink.
package apply

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"gulfjobs-web/internal/domain"
)

// Form field names as they appear in HTML forms and JSON bodies.
const (
	FieldJobID   = "job_id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

type Form struct {
	JobID   string `form:"job_id" json:"job_id" validate:"required"`
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Phone   string `form:"phone" json:"phone" validate:"required,phone"`
	Message string `form:"message" json:"message"`
}

// Normalized trims and collapses whitespace in every field.
func (f Form) Normalized() Form {
	return Form{
		JobID:   strings.TrimSpace(f.JobID),
		Name:    domain.CleanText(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   domain.CleanText(f.Phone),
		Message: domain.CleanMultiline(f.Message),
	}
}

func (f Form) IsZero() bool { return f == Form{} }

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) OK() bool { return len(e) == 0 }

func (e FieldErrors) Get(field string) string { return e[field] }

var (
	phoneShape = regexp.MustCompile(`^\+?[0-9(][0-9 ()\-]{6,19}$`)
	validate   = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	return v
}

// ValidPhone accepts an optional leading "+", then 7 to 15 digits with
// spaces, dashes, or parentheses as separators.
func ValidPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !phoneShape.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

var messages = map[string]map[string]string{
	FieldName:  {"required": "Name is required."},
	FieldEmail: {"required": "Email is required.", "email": "Please enter a valid email address."},
	FieldPhone: {"required": "Phone number is required.", "phone": "Please enter a valid phone number."},
	FieldJobID: {"required": "Please select a job."},
}

// Validate checks f and returns at most one error per field. The form is
// validated as given; callers normalize first.
func Validate(f Form) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(f)
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[FieldMessage] = "Could not validate the form."
		return errs
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, dup := errs[field]; dup {
			continue
		}
		msg := messages[field][fe.Tag()]
		if msg == "" {
			msg = "This field is invalid."
		}
		errs[field] = msg
	}
	return errs
}
