package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/errs"
)

type validationResponse struct {
	Errors []string `json:"errors"`
}

type domainResponse struct {
	Error string `json:"error"`
}

// fail maps an error kind to a status. Only the kind is inspected.
func (h *Handler) fail(c echo.Context, err error) error {
	var (
		verr *errs.ValidationError
		derr *errs.DomainError
	)
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusUnprocessableEntity, validationResponse{Errors: verr.Messages()})
	case errors.As(err, &derr):
		return c.JSON(http.StatusUnprocessableEntity, domainResponse{Error: derr.Message})
	case errors.Is(err, errs.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	h.log.Error("internal error",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
