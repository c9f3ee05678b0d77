package request

import (
	"member-portal/internal/usecase/commands"
)

type AttendeeRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
}

func (r AttendeeRequest) ToInput() commands.AttendeeInput {
	return commands.AttendeeInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

type UpdateRegistrationRequest struct {
	RegistrationMode string            `json:"registration_mode" binding:"required,oneof=attendees links"`
	MemberAttending  bool              `json:"member_attending"`
	NumberOfLinks    int               `json:"number_of_links" binding:"min=0"`
	Attendees        []AttendeeRequest `json:"attendees" binding:"dive"`
}

func (r UpdateRegistrationRequest) ToParams() commands.UpdateRegistrationParams {
	params := commands.UpdateRegistrationParams{
		RegistrationMode: r.RegistrationMode,
		MemberAttending:  r.MemberAttending,
		NumberOfLinks:    r.NumberOfLinks,
	}
	for _, a := range r.Attendees {
		params.Attendees = append(params.Attendees, a.ToInput())
	}
	return params
}

type CancelTicketRequest struct {
	Reason string `json:"reason" binding:"required"`
}
