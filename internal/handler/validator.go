package handler

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to echo's Validator
// interface. Handlers call c.Validate(req) after binding and translate
// any error into a 400 response.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds the request validator used by the server.
func NewValidator() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
