package intake

import (
	"regexp"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

var (
	emailShapeTag   = "email_shape"
	emailShapeText  = "invalid email format"
	emailShapeRegex = regexp.MustCompile(`^[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+$`)
)

// RegisterValidators registers the intake validation tags on validate.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(emailShapeTag, emailShapeValidation)
	core.RegisterCustomTranslation(validate, translator, emailShapeTag, emailShapeText)
}

// emailShapeValidation accepts `local@domain.tld`, made of word (any script), dot and dash characters.
func emailShapeValidation(fl validator.FieldLevel) bool {
	return emailShapeRegex.MatchString(fl.Field().String())
}
