package helpers

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground validator with quest domain rules
type CustomValidator struct {
	validate *validator.Validate
}

// NewCustomValidator creates a new custom validator with quest domain rules
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	RegisterValidations(v)
	return &CustomValidator{validate: v}
}

// RegisterValidations adds the quest domain rules to an existing validator
// instance, e.g. gin's binding engine. Field errors report the wire name
// from the json/form/uri tag, not the Go field name.
func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form", "uri"} {
			if tag, ok := fld.Tag.Lookup(key); ok {
				name := strings.SplitN(tag, ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
		}
		return fld.Name
	})
	v.RegisterValidation("quest_answer", validateQuestAnswer)
	v.RegisterValidation("region_name", validateRegionName)
	v.RegisterValidation("user_ref", validateUserRef)
}

// Validate validates a struct
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// validateQuestAnswer validates a single answer letter (A-D, either case)
func validateQuestAnswer(fl validator.FieldLevel) bool {
	answer := strings.TrimSpace(fl.Field().String())
	answerRegex := regexp.MustCompile(`^[a-dA-D]$`)
	return answerRegex.MatchString(answer)
}

// validateRegionName validates an administrative region name.
// Region values are used verbatim in query filters, so path separators
// and traversal sequences are rejected up front.
func validateRegionName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 191 {
		return false
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return false
	}
	return true
}

// validateUserRef validates an externally issued user identifier.
// IDs come from the auth provider as-is; only shape is checked here.
func validateUserRef(fl validator.FieldLevel) bool {
	userRef := strings.TrimSpace(fl.Field().String())
	userRefRegex := regexp.MustCompile(`^[0-9A-Za-z._:-]{1,191}$`)
	return userRefRegex.MatchString(userRef)
}
