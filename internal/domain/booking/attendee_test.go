//go:build unit

package booking_test

import (
	"testing"

	"member-portal/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAttendee(t *testing.T) {
	t.Run("normalizes names and email", func(t *testing.T) {
		a, err := booking.NewAttendee("  Jordan ", " Reyes ", " Jordan.Reyes@Example.COM ")
		require.NoError(t, err)

		assert.Equal(t, "Jordan", a.FirstName)
		assert.Equal(t, "Reyes", a.LastName)
		assert.Equal(t, "jordan.reyes@example.com", a.Email)
		assert.Equal(t, booking.ValidationPending, a.Status)
	})

	cases := []struct {
		name      string
		first     string
		last      string
		email     string
		expectErr error
	}{
		{"missing first name", "", "Reyes", "a@b.co", booking.ErrAttendeeNameRequired},
		{"missing last name", "Jordan", "  ", "a@b.co", booking.ErrAttendeeNameRequired},
		{"missing email", "Jordan", "Reyes", "", booking.ErrAttendeeEmailRequired},
		{"malformed email", "Jordan", "Reyes", "not-an-email", booking.ErrAttendeeEmailInvalid},
		{"email with spaces", "Jordan", "Reyes", "a b@c.co", booking.ErrAttendeeEmailInvalid},
		{"display name form", "Jordan", "Reyes", "jordan reyes <a@b.co>", booking.ErrAttendeeEmailInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := booking.NewAttendee(tc.first, tc.last, tc.email)
			assert.ErrorIs(t, err, tc.expectErr)
		})
	}
}

func TestMarkValidAdoptsCanonicalNames(t *testing.T) {
	a, err := booking.NewAttendee("jordan", "reyes", "jordan@example.com")
	require.NoError(t, err)

	validated := a.MarkValid("Jordan", "Reyes")
	assert.Equal(t, booking.ValidationValid, validated.Status)
	assert.Equal(t, "Jordan", validated.FirstName)
	assert.Equal(t, "Reyes", validated.LastName)

	// Empty canonical names keep the entered ones.
	kept := a.MarkValid("", "")
	assert.Equal(t, "jordan", kept.FirstName)
	assert.Equal(t, "reyes", kept.LastName)
}

func TestMarkInvalidCarriesMessage(t *testing.T) {
	a, err := booking.NewAttendee("Jordan", "Reyes", "jordan@example.com")
	require.NoError(t, err)

	invalid := a.MarkInvalid("not a member of this organization")
	assert.Equal(t, booking.ValidationInvalid, invalid.Status)
	assert.Equal(t, "not a member of this organization", invalid.Message)
}

func TestValidateRoster(t *testing.T) {
	valid, err := booking.NewAttendee("Jordan", "Reyes", "jordan@example.com")
	require.NoError(t, err)
	valid = valid.MarkValid("", "")

	pending, err := booking.NewAttendee("Sam", "Lau", "sam@example.com")
	require.NoError(t, err)

	t.Run("unknown mode rejected", func(t *testing.T) {
		err := booking.ValidateRoster("carrier-pigeon", nil, 0)
		assert.ErrorIs(t, err, booking.ErrInvalidMode)
	})

	t.Run("attendee mode requires a non-empty roster", func(t *testing.T) {
		err := booking.ValidateRoster(booking.ModeAttendees, nil, 0)
		assert.ErrorIs(t, err, booking.ErrNoAttendees)
	})

	t.Run("attendee mode requires all attendees valid", func(t *testing.T) {
		err := booking.ValidateRoster(booking.ModeAttendees, []booking.Attendee{valid, pending}, 0)
		assert.Error(t, err)
	})

	t.Run("attendee mode passes with all-valid roster", func(t *testing.T) {
		err := booking.ValidateRoster(booking.ModeAttendees, []booking.Attendee{valid}, 0)
		assert.NoError(t, err)
	})

	t.Run("link mode requires a positive link count", func(t *testing.T) {
		err := booking.ValidateRoster(booking.ModeLinks, nil, 0)
		assert.ErrorIs(t, err, booking.ErrNoLinksRequested)
	})

	t.Run("link mode ignores attendee list", func(t *testing.T) {
		err := booking.ValidateRoster(booking.ModeLinks, []booking.Attendee{pending}, 3)
		assert.NoError(t, err)
	})
}
