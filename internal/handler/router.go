package handler

import (
	"net/http"

	"sublet-booking/internal/domain/user"
	"sublet-booking/internal/handler/api"
	reqdto "sublet-booking/internal/handler/dto/request"
	"sublet-booking/internal/handler/middleware"
	"sublet-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking  *api.BookingHandler
	Payout   *api.PayoutHandler
	Property *api.PropertyHandler
	Admin    *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) error {
	if err := reqdto.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		addRoutes(apiGroup.Group("/bookings"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/:id/accept", Handler: h.Booking.Accept},
			{Method: http.MethodPost, Path: "/:id/decline", Handler: h.Booking.Decline},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
		})

		addRoutes(apiGroup.Group("/payouts"), []route{
			{Method: http.MethodPost, Path: "", Handler: h.Payout.Request},
			{Method: http.MethodGet, Path: "", Handler: h.Payout.List},
		})

		addRoutes(apiGroup.Group("/properties"), []route{
			{Method: http.MethodGet, Path: "/search", Handler: h.Property.Search},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Property.Availability},
			{Method: http.MethodGet, Path: "/:id/quote", Handler: h.Property.Quote},
		})

		operatorOnly := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}
		addRoutes(apiGroup.Group("/admin/bookings"), []route{
			{Method: http.MethodPost, Path: "/complete-due", Handler: h.Admin.CompleteDue, Mw: operatorOnly},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Admin.Complete, Mw: operatorOnly},
			{Method: http.MethodPost, Path: "/:id/payment", Handler: h.Admin.RecordPayment, Mw: operatorOnly},
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
