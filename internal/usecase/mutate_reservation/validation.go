package mutate_reservation

import (
	"strings"
	"unicode/utf8"

	"github.com/m04kA/rental-guide-service/internal/domain"
)

// validateReservation проверяет запись до любой записи в хранилище.
// required - обязательные дополнительные поля объекта.
func validateReservation(res *domain.Reservation, required []string) error {
	if strings.TrimSpace(res.PropertyID) == "" {
		return domain.NewValidationError(domain.CodePropertyRequired, "propertyId")
	}

	name := strings.TrimSpace(res.GuestName)
	if name == "" {
		return domain.NewValidationError(domain.CodeGuestNameRequired, "guestName")
	}
	if utf8.RuneCountInString(name) > domain.MaxGuestNameLength {
		return domain.NewValidationError(domain.CodeFieldTooLong, "guestName")
	}

	if res.CheckIn.IsZero() {
		return domain.NewValidationError(domain.CodeStayDatesRequired, "checkIn")
	}
	if res.Checkout.IsZero() {
		return domain.NewValidationError(domain.CodeStayDatesRequired, "checkout")
	}
	if !res.Checkout.After(res.CheckIn) {
		return domain.NewValidationError(domain.CodeCheckoutNotAfterCheckIn, "checkout")
	}

	if !res.Status.IsValid() {
		return domain.NewValidationError(domain.CodeInvalidStatus, "status")
	}

	if utf8.RuneCountInString(res.InternalNote) > domain.MaxInternalNoteLength {
		return domain.NewValidationError(domain.CodeFieldTooLong, "internalNote")
	}
	for key, value := range res.Details {
		if utf8.RuneCountInString(value) > domain.MaxDetailValueLength {
			return domain.NewValidationError(domain.CodeFieldTooLong, key)
		}
	}

	for _, field := range required {
		if strings.TrimSpace(res.Details[field]) == "" {
			return domain.NewValidationError(domain.CodeRequiredFieldMissing, field)
		}
	}

	return nil
}
