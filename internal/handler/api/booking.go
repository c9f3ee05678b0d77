package api

import (
	"net/http"

	reqdto "member-portal/internal/handler/dto/request"
	"member-portal/internal/handler/middleware"
	"member-portal/internal/pkg/errs"
	"member-portal/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase commands.BookingCommands
}

func NewBookingHandler(bookingUseCase commands.BookingCommands) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

// @Summary Open event registration
// @Description Restore the saved registration draft for the event or start a new one
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} commands.RegistrationState
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/registration [post]
func (h *BookingHandler) StartRegistration(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	eventID, ok := h.parseEventID(c)
	if !ok {
		return
	}

	state, err := h.bookingUseCase.StartRegistration(c.Request.Context(), member, eventID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// @Summary Update event registration
// @Description Persist the registration form fields
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body reqdto.UpdateRegistrationRequest true "Registration fields"
// @Success 200 {object} commands.RegistrationState
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /events/{id}/registration [put]
func (h *BookingHandler) UpdateRegistration(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	eventID, ok := h.parseEventID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateRegistrationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	state, err := h.bookingUseCase.UpdateRegistration(c.Request.Context(), member, eventID, req.ToParams())
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// @Summary Validate attendee
// @Description Validate a single attendee against the member's organization
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AttendeeRequest true "Attendee"
// @Success 200 {object} booking.Attendee
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /attendees/validate [post]
func (h *BookingHandler) ValidateAttendee(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.AttendeeRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	attendee, err := h.bookingUseCase.ValidateAttendee(c.Request.Context(), member, req.ToInput())
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrAttendeeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errs.Is(err, errs.ErrUpstreamFunctionFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, attendee)
}

// @Summary Submit event registration
// @Description Validate the roster and create the booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 201 {object} commands.RegistrationState
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /events/{id}/registration/submit [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	eventID, ok := h.parseEventID(c)
	if !ok {
		return
	}

	state, err := h.bookingUseCase.CreateBooking(c.Request.Context(), member, eventID)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrAttendeeInvalid):
			// The state carries per-attendee messages for correction.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "One or more attendees failed validation",
				"detail": state,
			})
		case errs.Is(err, errs.ErrBookingRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.respondBookingError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, state)
}

// @Summary Cancel ticket
// @Description Route a ticket cancellation through the cancellation flow
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderId path string true "Order ID"
// @Param request body reqdto.CancelTicketRequest true "Cancellation reason"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /tickets/{orderId}/cancel [post]
func (h *BookingHandler) CancelTicket(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	var req reqdto.CancelTicketRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.bookingUseCase.CancelTicket(c.Request.Context(), member, orderID, req.Reason); err != nil {
		switch {
		case errs.Is(err, errs.ErrBookingRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "canceled"})
}

// @Summary Sync organization contacts
// @Description Trigger an upstream contact sync for the member's organization
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 202 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /organization/sync-contacts [post]
func (h *BookingHandler) SyncContacts(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.bookingUseCase.SyncContacts(c.Request.Context(), member); err != nil {
		switch {
		case errs.Is(err, errs.ErrUpstreamFunctionFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sync started"})
}

func (h *BookingHandler) parseEventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errs.Is(err, errs.ErrUpstreamFunctionFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
