package create_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.AttendeesCount < domain.MinAttendees || req.AttendeesCount > domain.MaxAttendees {
		return fmt.Errorf("%w: attendeesCount must be between %d and %d",
			ErrInvalidInput, domain.MinAttendees, domain.MaxAttendees)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return nil
}
