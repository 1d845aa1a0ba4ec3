package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	md "github.com/Astemirdum/library-management/pkg/middleware"
	"github.com/Astemirdum/library-management/pkg/validate"
	_ "github.com/Astemirdum/library-management/swagger"
)

type Handler struct {
	librarySvc LibraryService
	jwtKey     []byte
	log        *zap.Logger
}

func New(librarySvc LibraryService, jwtKey []byte, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		jwtKey:     jwtKey,
		log:        log.Named("handler"),
	}
}

// @title       Library API
// @version     1.0
// @BasePath    /api/v1
// @securityDefinitions.apikey Bearer
// @in          header
// @name        Authorization
func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HideBanner = true
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		h.authMW,
	)
	h.routes(api)

	return e
}

func (h *Handler) routes(api *echo.Group) {
	api.GET("/books", h.ListBooks)
	api.POST("/books", h.CreateBook)
	api.GET("/books/:id", h.GetBook)
	api.PATCH("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)

	api.GET("/borrowings", h.ListBorrowings)
	api.POST("/borrowings", h.CreateBorrowing)
	api.GET("/borrowings/:id", h.GetBorrowing)
	api.PATCH("/borrowings/:id/return", h.ReturnBorrowing)

	api.GET("/dashboard/librarian", h.LibrarianDashboard)
	api.GET("/dashboard/member", h.MemberDashboard)

	api.GET("/users/:id", h.GetUser)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
