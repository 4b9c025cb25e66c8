// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Boltzmann/go/ledger"
	"github.com/go-playground/validator/v10"
)

// Validator checks struct fields against their `validate` tags. Besides the
// built-in rules it supports positive_amount and registered_ledger.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	// registration only fails for empty tags or nil functions
	_ = v.RegisterValidation("positive_amount", isPositiveAmount)
	_ = v.RegisterValidation("registered_ledger", isRegisteredLedger)
	return &Validator{validate: v}
}

// Validate validates a struct using its validation tags.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

func (v *Validator) formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf(
			"field '%s' failed validation: %s (value: '%v')",
			e.Field(),
			e.Tag(),
			e.Value(),
		))
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
}

func isPositiveAmount(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(ledger.Amount)
	return ok && !amount.IsZero()
}

func isRegisteredLedger(fl validator.FieldLevel) bool {
	return ledger.GetLedgerFactory(fl.Field().String()) != nil
}
