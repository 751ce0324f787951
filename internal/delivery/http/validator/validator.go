// Package validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request structs.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps a validator.Validate instance.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator ready to be assigned to echo.Echo.Validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate validates the struct tags of i.
func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
