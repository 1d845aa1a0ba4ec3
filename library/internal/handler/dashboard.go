package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// LibrarianDashboard godoc
// @Summary  Library wide counters, overdue members and recent activity
// @Tags     dashboard
// @Produce  json
// @Security Bearer
// @Success  200 {object} model.LibrarianDashboard
// @Router   /dashboard/librarian [get]
func (h *Handler) LibrarianDashboard(c echo.Context) error {
	d, err := h.librarySvc.LibrarianDashboard(c.Request().Context(), callerFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// MemberDashboard godoc
// @Summary  The caller's borrowed, overdue and returned books
// @Tags     dashboard
// @Produce  json
// @Security Bearer
// @Success  200 {object} model.MemberDashboard
// @Router   /dashboard/member [get]
func (h *Handler) MemberDashboard(c echo.Context) error {
	d, err := h.librarySvc.MemberDashboard(c.Request().Context(), callerFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
