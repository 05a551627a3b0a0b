package user

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/lms/core"
)

var (
	emailShapeTag   = "emailshape"
	emailShapeText  = "invalid email format"
	emailShapeRegex = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

	roleTag  = "role"
	roleText = "user type must be one of instructor, learner or assistant"
)

func init() {
	_ = core.Validate.RegisterValidation(emailShapeTag, emailShapeValidation)
	core.RegisterCustomTranslation(emailShapeTag, emailShapeText)

	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)
}

// ValidateEmail reports whether email has the shape local@domain.tld,
// where local and domain are word characters, dots or hyphens.
func ValidateEmail(email string) bool {
	return emailShapeRegex.MatchString(email)
}

// Custom Validators

func emailShapeValidation(fl validator.FieldLevel) bool {
	return ValidateEmail(fl.Field().String())
}

func roleValidation(fl validator.FieldLevel) bool {
	_, err := ParseRole(fl.Field().String())
	return err == nil
}
