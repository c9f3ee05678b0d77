package components

import (
	"member-portal/internal/handler"
	"member-portal/internal/handler/api"
	"member-portal/internal/handler/middleware"
	"member-portal/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewPurchaseHandler,
		api.NewBookingHandler,
		NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthMiddleware(jwtService *jwt.Service) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtService)
}
