package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"member-portal/internal/handler/api"
	"member-portal/internal/handler/middleware"
	"member-portal/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	catalogHandler *api.CatalogHandler,
	purchaseHandler *api.PurchaseHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, catalogHandler, purchaseHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	catalogHandler *api.CatalogHandler,
	purchaseHandler *api.PurchaseHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		programs := apiGroup.Group("/programs")
		{
			addRoutes(programs, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListPrograms},
				{Method: http.MethodGet, Path: "/:id", Handler: catalogHandler.GetProgram},
				{Method: http.MethodPost, Path: "/:id/purchase", Handler: purchaseHandler.StartPurchase},
				{Method: http.MethodPut, Path: "/:id/purchase", Handler: purchaseHandler.UpdateAllocation},
				{Method: http.MethodPost, Path: "/:id/purchase/discount", Handler: purchaseHandler.ApplyDiscount},
				{Method: http.MethodPost, Path: "/:id/purchase/submit", Handler: purchaseHandler.SubmitPurchase},
				{Method: http.MethodPost, Path: "/:id/purchase/confirm", Handler: purchaseHandler.ConfirmCardPayment},
			})
		}

		purchases := apiGroup.Group("/purchases")
		{
			addRoutes(purchases, []route{
				{Method: http.MethodGet, Path: "", Handler: purchaseHandler.ListPurchases},
				{Method: http.MethodGet, Path: "/:id", Handler: purchaseHandler.GetPurchase},
			})
		}

		events := apiGroup.Group("/events")
		{
			addRoutes(events, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListEvents},
				{Method: http.MethodPost, Path: "/:id/registration", Handler: bookingHandler.StartRegistration},
				{Method: http.MethodPut, Path: "/:id/registration", Handler: bookingHandler.UpdateRegistration},
				{Method: http.MethodPost, Path: "/:id/registration/submit", Handler: bookingHandler.CreateBooking},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/vouchers", Handler: catalogHandler.ListVouchers},
			{Method: http.MethodGet, Path: "/organization", Handler: catalogHandler.GetOrganization},
			{Method: http.MethodPost, Path: "/organization/sync-contacts", Handler: bookingHandler.SyncContacts},
			{Method: http.MethodPost, Path: "/attendees/validate", Handler: bookingHandler.ValidateAttendee},
			{Method: http.MethodPost, Path: "/tickets/:orderId/cancel", Handler: bookingHandler.CancelTicket},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
