package helpers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorResponse represents the validation error response format
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// LocaleTranslations holds error message translations for different locales
type LocaleTranslations struct {
	Required    string
	Min         string
	Max         string
	OneOf       string
	QuestAnswer string
	RegionName  string
	UserRef     string
	Invalid     string
}

// translations holds locale-specific translations
var translations = map[string]LocaleTranslations{
	"en": {
		Required:    "The %s field is required",
		Min:         "The %s field must be at least %s characters",
		Max:         "The %s field must not exceed %s characters",
		OneOf:       "The %s field must be one of: %s",
		QuestAnswer: "The %s field must be a single letter between A and D",
		RegionName:  "The %s field must be a valid region name",
		UserRef:     "The %s field must be a valid user identifier",
		Invalid:     "The %s field is invalid",
	},
	"ko": {
		Required:    "%s 항목은 필수입니다",
		Min:         "%s 항목은 최소 %s자 이상이어야 합니다",
		Max:         "%s 항목은 %s자를 초과할 수 없습니다",
		OneOf:       "%s 항목은 다음 중 하나여야 합니다: %s",
		QuestAnswer: "%s 항목은 A부터 D까지의 한 글자여야 합니다",
		RegionName:  "%s 항목은 올바른 지역명이어야 합니다",
		UserRef:     "%s 항목은 올바른 사용자 식별자여야 합니다",
		Invalid:     "%s 항목이 올바르지 않습니다",
	},
}

// GetDefaultLocale returns the default locale
func GetDefaultLocale() string {
	return "en"
}

// GetLocaleTranslations returns translations for a given locale, or default locale if not found
func GetLocaleTranslations(locale string) LocaleTranslations {
	if t, ok := translations[locale]; ok {
		return t
	}
	return translations[GetDefaultLocale()]
}

// FormatValidationError formats a validator.FieldError into a localized error message
func FormatValidationError(fe validator.FieldError, locale string) string {
	t := GetLocaleTranslations(locale)
	fieldName := getFieldName(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(t.Required, fieldName)
	case "min":
		return fmt.Sprintf(t.Min, fieldName, fe.Param())
	case "max":
		return fmt.Sprintf(t.Max, fieldName, fe.Param())
	case "oneof":
		return fmt.Sprintf(t.OneOf, fieldName, fe.Param())
	case "quest_answer":
		return fmt.Sprintf(t.QuestAnswer, fieldName)
	case "region_name":
		return fmt.Sprintf(t.RegionName, fieldName)
	case "user_ref":
		return fmt.Sprintf(t.UserRef, fieldName)
	default:
		return fmt.Sprintf(t.Invalid, fieldName)
	}
}

// getFieldName extracts a human-readable field name from the FieldError
func getFieldName(fe validator.FieldError) string {
	fieldName := fe.Field()

	fieldName = strings.ToLower(fieldName)
	fieldName = strings.ReplaceAll(fieldName, "_", " ")

	return fieldName
}

// NewValidationErrorResponse builds the response body for a failed validation.
// Fields are keyed by the wire name as reported by Field(); the first field
// error becomes the top-level message.
func NewValidationErrorResponse(validationErrors validator.ValidationErrors, locale string) ValidationErrorResponse {
	fields := make(map[string]string)
	var firstMessage string

	for i, err := range validationErrors {
		errorMessage := FormatValidationError(err, locale)

		fields[err.Field()] = errorMessage

		if i == 0 {
			firstMessage = errorMessage
		}
	}

	return ValidationErrorResponse{
		Error:  firstMessage,
		Fields: fields,
	}
}

// NewValidationErrorResponseFromMap builds a validation response from custom field errors
func NewValidationErrorResponseFromMap(fieldErrors map[string]string, locale string) ValidationErrorResponse {
	if len(fieldErrors) == 0 {
		t := GetLocaleTranslations(locale)
		return ValidationErrorResponse{
			Error:  fmt.Sprintf(t.Invalid, "request"),
			Fields: map[string]string{},
		}
	}

	var firstMessage string
	for _, msg := range fieldErrors {
		firstMessage = msg
		break
	}

	return ValidationErrorResponse{
		Error:  firstMessage,
		Fields: fieldErrors,
	}
}
