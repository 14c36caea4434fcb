// internal/utils/validator.go
package utils

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/perfume-store/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("password_policy", validatePasswordPolicy)
	validate.RegisterValidation("product_size", validateProductSize)
	validate.RegisterValidation("gender", validateGender)
	validate.RegisterValidation("season", validateSeason)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar runs a single tag expression against a value.
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Passwords that are rejected outright regardless of length.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "qwerty123": {}, "qwertyuiop": {},
	"iloveyou": {}, "sunshine": {}, "princess": {}, "football": {},
	"baseball": {}, "welcome1": {}, "letmein1": {}, "abc12345": {},
	"11111111": {}, "00000000": {}, "admin123": {}, "trustno1": {},
}

// CheckPasswordPolicy returns a human-readable reason when the password is
// unacceptable, or "" when it passes.
func CheckPasswordPolicy(password string) string {
	if len([]rune(password)) < 8 {
		return "This password is too short. It must contain at least 8 characters."
	}

	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return "This password is entirely numeric."
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return "This password is too common."
	}
	return ""
}

// CheckPasswordSimilarity rejects passwords that contain, or are contained
// in, one of the user's attributes (email local part, names).
func CheckPasswordSimilarity(password string, attributes ...string) string {
	lowered := strings.ToLower(password)
	for _, attr := range attributes {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if i := strings.IndexByte(attr, '@'); i > 0 {
			attr = attr[:i]
		}
		if len(attr) < 3 {
			continue
		}
		if strings.Contains(lowered, attr) || strings.Contains(attr, lowered) {
			return "The password is too similar to your personal information."
		}
	}
	return ""
}

func validatePasswordPolicy(fl validator.FieldLevel) bool {
	return CheckPasswordPolicy(fl.Field().String()) == ""
}

func validateProductSize(fl validator.FieldLevel) bool {
	return models.IsValidSize(int(fl.Field().Int()))
}

func validateGender(fl validator.FieldLevel) bool {
	return models.Gender(fl.Field().String()).Valid()
}

func validateSeason(fl validator.FieldLevel) bool {
	return models.Season(fl.Field().String()).Valid()
}

// GetValidationErrors flattens validator errors into {json_path: message}.
// Nested paths keep their indices, e.g. "items[1].size".
func GetValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fields
	}

	for _, e := range validationErrs {
		key := fieldPath(e.Namespace())
		if _, exists := fields[key]; exists {
			continue
		}
		fields[key] = getValidationMessage(e)
	}
	return fields
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "e164":
		return "Enter a valid phone number in international format."
	case "min":
		if e.Kind() == reflect.String {
			return "Ensure this field has at least " + e.Param() + " characters."
		}
		if e.Kind() == reflect.Slice {
			return "Ensure this list has at least " + e.Param() + " elements."
		}
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "max":
		if e.Kind() == reflect.String {
			return "Ensure this field has no more than " + e.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "gte":
		return "Ensure this value is greater than or equal to " + e.Param() + "."
	case "lte":
		return "Ensure this value is less than or equal to " + e.Param() + "."
	case "password_policy":
		if s, ok := e.Value().(string); ok {
			if reason := CheckPasswordPolicy(s); reason != "" {
				return reason
			}
		}
		return "This password does not meet the password policy."
	case "product_size":
		return "Wrong size. Allowed sizes: " + joinInts(models.ProductSizes...) + "."
	case "gender":
		return "Gender must be one of M, F, U."
	case "season":
		return "Season must be one of AW, SS."
	default:
		return "This value is invalid."
	}
}

func joinInts(values ...int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
