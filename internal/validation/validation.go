package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"upi-qr-pay/internal/constants"
	apperrors "upi-qr-pay/internal/errors"
)

var amountPattern = regexp.MustCompile(fmt.Sprintf(`^\d{1,%d}(\.\d{1,%d})?$`, constants.MaxAmountDigits, constants.MaxAmountScale))

// ValidateAmount checks the amount form field and returns it trimmed but otherwise as typed
func ValidateAmount(raw string) (string, error) {
	amount := strings.TrimSpace(raw)
	if amount == "" {
		return "", &apperrors.ValidationError{Field: "amount", Message: "Please enter an amount."}
	}

	if !amountPattern.MatchString(amount) {
		return "", &apperrors.ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("Amount must be a number with at most %d digits and %d decimal places.", constants.MaxAmountDigits, constants.MaxAmountScale),
		}
	}

	if !hasNonZeroDigit(amount) {
		return "", &apperrors.ValidationError{Field: "amount", Message: "Amount must be greater than zero."}
	}

	return amount, nil
}

// ValidateNote checks the optional note field
func ValidateNote(raw string) (string, error) {
	note := strings.TrimSpace(raw)
	if utf8.RuneCountInString(note) > constants.MaxNoteLength {
		return "", &apperrors.ValidationError{
			Field:   "note",
			Message: fmt.Sprintf("Note cannot exceed %d characters.", constants.MaxNoteLength),
		}
	}

	for _, r := range note {
		if unicode.IsControl(r) {
			return "", &apperrors.ValidationError{Field: "note", Message: "Note contains invalid characters."}
		}
	}

	return note, nil
}

// hasNonZeroDigit checks if a decimal string is greater than zero
func hasNonZeroDigit(s string) bool {
	for _, r := range s {
		if r >= '1' && r <= '9' {
			return true
		}
	}
	return false
}
