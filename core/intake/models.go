package intake

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

// Submission is one contact form entry.
type Submission struct {
	FullName string `form:"full_name" query:"full_name" validate:"required"`
	Email    string `form:"email" query:"email" validate:"required,email_shape"`
	Age      string `form:"age" query:"age" validate:"required,digits"`
	City     string `form:"city" query:"city" validate:"required"`
}

// Clean trims all leading and trailing whitespace of every field.
func (s *Submission) Clean() {
	s.FullName = core.CleanString(s.FullName)
	s.Email = core.CleanString(s.Email)
	s.Age = core.CleanString(s.Age)
	s.City = core.CleanString(s.City)
}

// Validate returns the field errors of s, keyed by form field name. An empty map means valid.
// Fields are expected to be cleaned already.
func (s Submission) Validate(validate *validator.Validate, translator ut.Translator) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return map[string]string{}
	}
	if fields, ok := core.FieldErrors(err, translator); ok {
		return fields
	}
	// only happens on programming errors (eg. unregistered tag)
	panic(err)
}
