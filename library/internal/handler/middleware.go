package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/pkg/auth"
)

const callerKey = "caller"

// authMW resolves the caller from a bearer token. Requests without an
// Authorization header go through as anonymous and the policy decides; a
// header that does not yield a valid identity is rejected.
func (h *Handler) authMW(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(auth.AuthorizationHeader)
		if header == "" {
			return next(c)
		}
		caller, err := h.resolveCaller(header)
		if err != nil {
			h.log.Debug("authMW", zap.Error(err))
			return echo.NewHTTPError(http.StatusUnauthorized, auth.ErrInvalidToken.Error())
		}
		c.Set(callerKey, caller)
		return next(c)
	}
}

func (h *Handler) resolveCaller(header string) (*model.Caller, error) {
	token, err := auth.BearerToken(header)
	if err != nil {
		return nil, err
	}
	claims, err := auth.ParseToken(token, h.jwtKey)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.Profile.UserID)
	if err != nil {
		return nil, err
	}
	role, err := model.ParseRole(claims.Profile.Role)
	if err != nil {
		return nil, err
	}
	return &model.Caller{ID: id, Role: role}, nil
}

func callerFrom(c echo.Context) *model.Caller {
	caller, _ := c.Get(callerKey).(*model.Caller)
	return caller
}
