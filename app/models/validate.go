package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validator returns the validator shared by all models. Translations for
// user-facing messages are registered on it by the locale package.
func Validator() *validator.Validate {
	return validate
}
