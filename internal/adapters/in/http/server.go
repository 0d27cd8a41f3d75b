package http

import (
	"log/slog"
	"net/http"
	"time"

	"pos/internal/core/application/session"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Handlers groups the use cases the API exposes.
type Handlers struct {
	Session *session.Session

	// Command handlers
	SaveProduct   commands.SaveProductCommandHandler
	DeleteProduct commands.DeleteProductCommandHandler

	// Query handlers
	Orders      queries.OrderReader
	Catalog     queries.CatalogLookup
	GetOrders   queries.GetOrdersQueryHandler
	SalesReport queries.GetSalesReportQueryHandler
	Dashboard   queries.GetDashboardQueryHandler
	LowStock    queries.GetLowStockProductsQueryHandler
	Export      queries.ExportDataQueryHandler
}

// Options holds presentation settings.
type Options struct {
	LowStockThreshold int
	QR                QRGenerator
	Now               func() time.Time

	// RequestsPerSecond limits API calls per client IP, burst included.
	// Zero disables the limit.
	RequestsPerSecond float64
	Burst             int
}

// Server implements the terminal API. It coordinates between HTTP handlers
// and application use cases.
type Server struct {
	h      Handlers
	auth   *Authenticator
	opts   Options
	logger *slog.Logger
}

func NewServer(h Handlers, auth *Authenticator, opts Options, logger *slog.Logger) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		h:      h,
		auth:   auth,
		opts:   opts,
		logger: logger.With("component", "HTTPServer"),
	}
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(s.requestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	if s.opts.RequestsPerSecond > 0 {
		api.Use(s.rateLimiter())
	}
	api.Use(middleware.BasicAuth(s.auth.Validate))
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "role": string(roleOf(c))})
	})

	staff := api.Group("", RequireRole(RoleAdmin, RoleCashier))
	staff.GET("/locations", s.GetLocations)
	staff.POST("/session/location", s.SelectLocation)
	staff.POST("/session/orders", s.StartNewOrder)
	staff.GET("/session/order", s.GetCurrentOrder)
	staff.DELETE("/session/order", s.ClearCurrentOrder)
	staff.POST("/session/items", s.AddItem)
	staff.PATCH("/session/items/:productId", s.ChangeQuantity)
	staff.POST("/session/save", s.SaveCurrentOrder)
	staff.POST("/session/status", s.TransitionCurrentOrder)
	staff.POST("/session/kitchen-ticket", s.PrintKitchenTicket)
	staff.POST("/session/receipt", s.PrintReceipt)
	staff.GET("/orders", s.GetOrders)
	staff.POST("/orders/:id/status", s.TransitionOrder)
	staff.GET("/orders/:id/qrcode", s.GetOrderQRCode)
	staff.GET("/products", s.GetProducts)
	staff.GET("/categories", s.GetCategories)
	staff.GET("/dashboard", s.GetDashboard)

	admin := api.Group("", RequireRole(RoleAdmin))
	admin.POST("/products", s.CreateProduct)
	admin.PUT("/products/:id", s.UpdateProduct)
	admin.DELETE("/products/:id", s.DeleteProduct)
	admin.GET("/reports/sales", s.GetSalesReport)
	admin.GET("/reports/sales.xlsx", s.GetSalesReportWorkbook)
	admin.GET("/reports/low-stock", s.GetLowStockProducts)
	admin.GET("/export", s.ExportData)
	admin.POST("/occupancy/rebuild", s.RebuildOccupancy)
}

// rateLimiter runs before basic auth so password guessing is throttled too.
func (s *Server) rateLimiter() echo.MiddlewareFunc {
	burst := s.opts.Burst
	if burst < 1 {
		burst = int(s.opts.RequestsPerSecond) + 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.opts.RequestsPerSecond),
		Burst:     burst,
		ExpiresIn: 10 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			c.Response().Header().Set("Retry-After", "1")
			return c.JSON(http.StatusTooManyRequests, Error{
				Code:    http.StatusTooManyRequests,
				Message: "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				s.logger.Warn("request", append(attrs, "error", v.Error)...)
				return nil
			}
			s.logger.Info("request", attrs...)
			return nil
		},
	})
}
