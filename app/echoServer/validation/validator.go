// Package validation wires go-playground/validator into echo and registers
// the custom rules the request DTOs rely on.
package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: NewValidate()}
}

// NewValidate builds a Validate shared by the echo binding wrapper and the
// controllers. notblank rejects strings that trim to nothing, which
// `required` alone lets through.
func NewValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
