package commands

import (
	"context"
	"log/slog"
	"strings"

	"member-portal/internal/domain/booking"
	"member-portal/internal/infra"
	"member-portal/internal/infra/functions"
	"member-portal/internal/pkg/errs"
	"member-portal/internal/usecase/queries"
	"member-portal/internal/usecase/shared"

	"github.com/google/uuid"
)

type AttendeeInput struct {
	FirstName string
	LastName  string
	Email     string
}

type UpdateRegistrationParams struct {
	RegistrationMode string
	MemberAttending  bool
	NumberOfLinks    int
	Attendees        []AttendeeInput
}

// RegistrationState is the derived view of an event registration form:
// the event, the persisted draft, and per-attendee validation results
// from the most recent validation round.
type RegistrationState struct {
	EventID          uuid.UUID          `json:"event_id"`
	EventTitle       string             `json:"event_title"`
	RegistrationMode string             `json:"registration_mode"`
	MemberAttending  bool               `json:"member_attending"`
	NumberOfLinks    int                `json:"number_of_links"`
	Attendees        []booking.Attendee `json:"attendees"`
	TicketsRequired  int                `json:"tickets_required"`
}

type BookingCommands interface {
	StartRegistration(ctx context.Context, member shared.Member, eventID uuid.UUID) (*RegistrationState, error)
	UpdateRegistration(ctx context.Context, member shared.Member, eventID uuid.UUID, params UpdateRegistrationParams) (*RegistrationState, error)
	ValidateAttendee(ctx context.Context, member shared.Member, input AttendeeInput) (booking.Attendee, error)
	CreateBooking(ctx context.Context, member shared.Member, eventID uuid.UUID) (*RegistrationState, error)
	CancelTicket(ctx context.Context, member shared.Member, orderID uuid.UUID, reason string) error
	SyncContacts(ctx context.Context, member shared.Member) error
}

type bookingUseCaseImpl struct {
	events queries.EventReadStore
	drafts shared.DraftStore
	fns    FunctionsGateway
}

func NewBookingUseCase(events queries.EventReadStore, drafts shared.DraftStore, fns FunctionsGateway) BookingCommands {
	return &bookingUseCaseImpl{events: events, drafts: drafts, fns: fns}
}

// StartRegistration restores the session-persisted registration draft
// for the event, or initializes attendee mode with an empty roster.
func (u *bookingUseCaseImpl) StartRegistration(ctx context.Context, member shared.Member, eventID uuid.UUID) (*RegistrationState, error) {
	event, err := u.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	draft, err := u.loadOrInitDraft(ctx, member, eventID)
	if err != nil {
		return nil, err
	}

	return stateFromDraft(event, draft), nil
}

// UpdateRegistration persists the changed form fields. Attendees are
// stored as entered; validation statuses are not carried in the draft
// and are recomputed on the next validation round.
func (u *bookingUseCaseImpl) UpdateRegistration(ctx context.Context, member shared.Member, eventID uuid.UUID, params UpdateRegistrationParams) (*RegistrationState, error) {
	mode := booking.RegistrationMode(params.RegistrationMode)
	if !mode.IsValid() {
		return nil, booking.ErrInvalidMode
	}

	event, err := u.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	draft := &shared.RegistrationDraft{
		EventID:          eventID,
		RegistrationMode: params.RegistrationMode,
		MemberAttending:  params.MemberAttending,
		NumberOfLinks:    params.NumberOfLinks,
	}
	for _, in := range params.Attendees {
		draft.Attendees = append(draft.Attendees, shared.RegistrationSeat{
			FirstName: strings.TrimSpace(in.FirstName),
			LastName:  strings.TrimSpace(in.LastName),
			Email:     strings.TrimSpace(strings.ToLower(in.Email)),
		})
	}

	if err := shared.SaveDraft(ctx, u.drafts, shared.RegistrationDraftKey(member.Email, eventID), *draft); err != nil {
		return nil, err
	}

	return stateFromDraft(event, draft), nil
}

// ValidateAttendee runs local checks and then colleague validation for
// a single attendee. Upstream rejections come back as a marked invalid
// attendee, not as an error.
func (u *bookingUseCaseImpl) ValidateAttendee(ctx context.Context, member shared.Member, input AttendeeInput) (booking.Attendee, error) {
	attendee, err := booking.NewAttendee(input.FirstName, input.LastName, input.Email)
	if err != nil {
		return booking.Attendee{}, errs.Mark(err, errs.ErrAttendeeInvalid)
	}

	if member.OrganizationID == nil {
		return attendee.MarkInvalid("member has no organization to validate against"), nil
	}

	resp, err := u.fns.ValidateColleague(ctx, functions.ValidateColleagueRequest{
		Email:          attendee.Email,
		MemberEmail:    member.Email,
		OrganizationID: *member.OrganizationID,
	})
	if err != nil {
		return booking.Attendee{}, err
	}
	if !resp.Valid {
		message := resp.Message
		if message == "" {
			message = resp.Error
		}
		return attendee.MarkInvalid(message), nil
	}
	return attendee.MarkValid(resp.FirstName, resp.LastName), nil
}

// CreateBooking validates the roster, submits the booking through the
// booking function, and clears the draft. When any attendee fails
// validation the returned state carries the per-attendee messages and
// the draft is left intact for correction.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, member shared.Member, eventID uuid.UUID) (*RegistrationState, error) {
	event, err := u.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	draft, err := u.loadOrInitDraft(ctx, member, eventID)
	if err != nil {
		return nil, err
	}

	mode := booking.RegistrationMode(draft.RegistrationMode)
	attendees := make([]booking.Attendee, 0, len(draft.Attendees))

	if mode == booking.ModeAttendees {
		anyInvalid := false
		for _, seat := range draft.Attendees {
			validated, validateErr := u.ValidateAttendee(ctx, member, AttendeeInput{
				FirstName: seat.FirstName,
				LastName:  seat.LastName,
				Email:     seat.Email,
			})
			if validateErr != nil {
				return nil, validateErr
			}
			if validated.Status != booking.ValidationValid {
				anyInvalid = true
			}
			attendees = append(attendees, validated)
		}
		if anyInvalid {
			state := stateFromDraft(event, draft)
			state.Attendees = attendees
			return state, errs.ErrAttendeeInvalid
		}
	}

	if err := booking.ValidateRoster(mode, attendees, draft.NumberOfLinks); err != nil {
		return nil, errs.Mark(err, errs.ErrAttendeeInvalid)
	}

	req := functions.CreateBookingRequest{
		EventID:          eventID,
		MemberEmail:      member.Email,
		RegistrationMode: draft.RegistrationMode,
		NumberOfLinks:    draft.NumberOfLinks,
		TicketsRequired:  int(event.TicketsRequired),
	}
	if event.ProgramTag != nil {
		req.ProgramTag = *event.ProgramTag
	}
	for _, a := range attendees {
		req.Attendees = append(req.Attendees, functions.BookingAttendee{
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Email:     a.Email,
		})
	}

	resp, err := u.fns.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, errs.Mark(errs.New(resp.Error), errs.ErrBookingRejected)
	}

	if clearErr := u.drafts.Clear(ctx, shared.RegistrationDraftKey(member.Email, eventID)); clearErr != nil {
		slog.Warn("failed to clear registration draft", "event_id", eventID, "error", clearErr)
	}

	state := stateFromDraft(event, draft)
	state.Attendees = attendees
	return state, nil
}

// CancelTicket routes a cancellation through the cancellation flow; the
// refund and seat release happen upstream.
func (u *bookingUseCaseImpl) CancelTicket(ctx context.Context, member shared.Member, orderID uuid.UUID, reason string) error {
	resp, err := u.fns.CancelTicketViaFlow(ctx, functions.CancelTicketRequest{
		OrderID:      orderID,
		CancelReason: strings.TrimSpace(reason),
		MemberID:     member.ID,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return errs.Mark(errs.New(resp.Error), errs.ErrBookingRejected)
	}
	return nil
}

// SyncContacts triggers an organization contact sync upstream.
func (u *bookingUseCaseImpl) SyncContacts(ctx context.Context, member shared.Member) error {
	if member.OrganizationID == nil {
		return errs.New("member has no organization to sync")
	}
	resp, err := u.fns.SyncOrganizationContacts(ctx, functions.SyncOrganizationContactsRequest{
		OrganizationID: *member.OrganizationID,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return errs.Mark(errs.New(resp.Error), errs.ErrUpstreamFunctionFailed)
	}
	return nil
}

func (u *bookingUseCaseImpl) loadEvent(ctx context.Context, eventID uuid.UUID) (*queries.EventView, error) {
	event, err := u.events.FindByID(ctx, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrEventNotFound
		}
		return nil, errs.Mark(err, errs.ErrEventNotFound)
	}
	return event, nil
}

func (u *bookingUseCaseImpl) loadOrInitDraft(ctx context.Context, member shared.Member, eventID uuid.UUID) (*shared.RegistrationDraft, error) {
	draft, err := shared.LoadDraft[shared.RegistrationDraft](ctx, u.drafts, shared.RegistrationDraftKey(member.Email, eventID))
	if err != nil {
		return nil, err
	}
	if draft == nil || draft.EventID != eventID {
		return &shared.RegistrationDraft{
			EventID:          eventID,
			RegistrationMode: string(booking.ModeAttendees),
			MemberAttending:  true,
		}, nil
	}
	return draft, nil
}

func stateFromDraft(event *queries.EventView, draft *shared.RegistrationDraft) *RegistrationState {
	state := &RegistrationState{
		EventID:          event.ID,
		EventTitle:       event.Title,
		RegistrationMode: draft.RegistrationMode,
		MemberAttending:  draft.MemberAttending,
		NumberOfLinks:    draft.NumberOfLinks,
		TicketsRequired:  int(event.TicketsRequired),
	}
	for _, seat := range draft.Attendees {
		state.Attendees = append(state.Attendees, booking.Attendee{
			FirstName: seat.FirstName,
			LastName:  seat.LastName,
			Email:     seat.Email,
			Status:    booking.ValidationPending,
		})
	}
	return state
}
