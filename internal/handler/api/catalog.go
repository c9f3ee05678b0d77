package api

import (
	"net/http"

	resdto "member-portal/internal/handler/dto/response"
	"member-portal/internal/handler/middleware"
	"member-portal/internal/infra"
	"member-portal/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries: catalogQueries,
	}
}

// @Summary List programs
// @Description List all purchasable ticket programs
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ProgramResponse
// @Failure 401 {object} map[string]string
// @Router /programs [get]
func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	views, err := h.catalogQueries.ListPrograms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.ProgramResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromProgramView(rm)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get program
// @Description Get a program by ID or tag
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Program ID or tag"
// @Success 200 {object} resdto.ProgramResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /programs/{id} [get]
func (h *CatalogHandler) GetProgram(c *gin.Context) {
	// Program pages link by tag slug; the API also accepts the UUID.
	var view *queries.ProgramView
	var err error
	if id, parseErr := uuid.Parse(c.Param("id")); parseErr == nil {
		view, err = h.catalogQueries.GetProgram(c.Request.Context(), id)
	} else {
		view, err = h.catalogQueries.GetProgramByTag(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromProgramView(view))
}

// @Summary List upcoming events
// @Description List upcoming events open for registration
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.EventResponse
// @Failure 401 {object} map[string]string
// @Router /events [get]
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	views, err := h.catalogQueries.ListUpcomingEvents(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.EventResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromEventView(rm)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary List vouchers
// @Description List active vouchers for the member's organization
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.VoucherResponse
// @Failure 401 {object} map[string]string
// @Router /vouchers [get]
func (h *CatalogHandler) ListVouchers(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if member.OrganizationID == nil {
		c.JSON(http.StatusOK, []*resdto.VoucherResponse{})
		return
	}

	views, err := h.catalogQueries.ListVouchers(c.Request.Context(), *member.OrganizationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]*resdto.VoucherResponse, len(views))
	for i, rm := range views {
		response[i] = resdto.FromVoucherView(rm)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get organization
// @Description Get the member's organization with its training fund balance
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.OrganizationResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /organization [get]
func (h *CatalogHandler) GetOrganization(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if member.OrganizationID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member has no organization"})
		return
	}

	view, err := h.catalogQueries.GetOrganization(c.Request.Context(), *member.OrganizationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrganizationView(view))
}
