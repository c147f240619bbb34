package usecase

import (
	"net/mail"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

func ValidateCreateLeadInput(input CreateLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"fullName", "is required"})
	} else if len(strings.TrimSpace(input.FullName)) > 200 {
		errors = append(errors, ValidationError{"fullName", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	return errors
}

// Teléfonos dominicanos son 10 dígitos (809/829/849 + 7), pero el formulario
// recibe números de toda la diáspora; solo exigimos un largo razonable.
func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 7 && len(cleaned) <= 15
}
