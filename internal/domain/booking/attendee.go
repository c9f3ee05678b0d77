package booking

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrAttendeeNameRequired  = errors.New("attendee first and last name are required")
	ErrAttendeeEmailRequired = errors.New("attendee email is required")
	ErrAttendeeEmailInvalid  = errors.New("attendee email is invalid")
	ErrNoAttendees           = errors.New("at least one attendee is required")
	ErrNoLinksRequested      = errors.New("number of links must be positive")
	ErrInvalidMode           = errors.New("invalid registration mode")
)

// RegistrationMode selects how an event booking grants access: named
// attendees or a number of shareable links.
type RegistrationMode string

const (
	ModeAttendees RegistrationMode = "attendees"
	ModeLinks     RegistrationMode = "links"
)

func (m RegistrationMode) IsValid() bool {
	return m == ModeAttendees || m == ModeLinks
}

// ValidationStatus tracks an attendee through colleague validation.
// Entered attendees start pending; a validation round moves each to
// valid or invalid. Only an all-valid list may be submitted.
type ValidationStatus string

const (
	ValidationPending ValidationStatus = "pending"
	ValidationValid   ValidationStatus = "valid"
	ValidationInvalid ValidationStatus = "invalid"
)

type Attendee struct {
	FirstName string
	LastName  string
	Email     string
	Status    ValidationStatus
	// Message carries the validation function's explanation when the
	// attendee is invalid.
	Message string
}

// NewAttendee checks the locally-enforceable rules; colleague
// validation against the member's organization happens upstream.
func NewAttendee(firstName, lastName, email string) (Attendee, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(strings.ToLower(email))

	if firstName == "" || lastName == "" {
		return Attendee{}, ErrAttendeeNameRequired
	}
	if email == "" {
		return Attendee{}, ErrAttendeeEmailRequired
	}
	// A bare addr-spec only; display-name forms are rejected.
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return Attendee{}, ErrAttendeeEmailInvalid
	}

	return Attendee{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Status:    ValidationPending,
	}, nil
}

// MarkValid records a successful colleague validation, adopting the
// canonical names when the validation function returns them.
func (a Attendee) MarkValid(firstName, lastName string) Attendee {
	if firstName != "" {
		a.FirstName = firstName
	}
	if lastName != "" {
		a.LastName = lastName
	}
	a.Status = ValidationValid
	a.Message = ""
	return a
}

func (a Attendee) MarkInvalid(message string) Attendee {
	a.Status = ValidationInvalid
	a.Message = message
	return a
}

// ValidateRoster enforces the pre-network rules for a registration:
// the mode must be known, attendee mode needs a non-empty all-valid
// list, link mode needs a positive link count.
func ValidateRoster(mode RegistrationMode, attendees []Attendee, numberOfLinks int) error {
	if !mode.IsValid() {
		return ErrInvalidMode
	}
	if mode == ModeLinks {
		if numberOfLinks <= 0 {
			return ErrNoLinksRequested
		}
		return nil
	}
	if len(attendees) == 0 {
		return ErrNoAttendees
	}
	for _, a := range attendees {
		if a.Status != ValidationValid {
			return errors.New("attendee " + a.Email + " has not passed validation")
		}
	}
	return nil
}
