package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-management/library/internal/model"
)

type createBorrowingRequest struct {
	BookID string `json:"book_id" validate:"required,uuid"`
}

// ListBorrowings godoc
// @Summary  List borrowings; members only see their own
// @Tags     borrowings
// @Produce  json
// @Security Bearer
// @Param    status query string false "active, returned, overdue or due_today"
// @Success  200 {array} model.BorrowingView
// @Router   /borrowings [get]
func (h *Handler) ListBorrowings(c echo.Context) error {
	status, ok := model.ParseBorrowingStatus(c.QueryParam("status"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "status is invalid")
	}
	items, err := h.librarySvc.ListBorrowings(c.Request().Context(), callerFrom(c), status)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetBorrowing godoc
// @Summary  Get a borrowing
// @Tags     borrowings
// @Produce  json
// @Security Bearer
// @Param    id path string true "borrowing id"
// @Success  200 {object} model.BorrowingView
// @Router   /borrowings/{id} [get]
func (h *Handler) GetBorrowing(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b, err := h.librarySvc.GetBorrowing(c.Request().Context(), callerFrom(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// CreateBorrowing godoc
// @Summary  Borrow a book for the caller
// @Tags     borrowings
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    req body createBorrowingRequest true "book to borrow"
// @Success  201 {object} model.BorrowingView
// @Failure  422 {object} validationResponse
// @Router   /borrowings [post]
func (h *Handler) CreateBorrowing(c echo.Context) error {
	var req createBorrowingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.librarySvc.CreateBorrowing(c.Request().Context(), callerFrom(c), uuid.MustParse(req.BookID))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// ReturnBorrowing godoc
// @Summary  Mark a borrowing as returned
// @Tags     borrowings
// @Produce  json
// @Security Bearer
// @Param    id path string true "borrowing id"
// @Success  200 {object} model.BorrowingView
// @Failure  422 {object} domainResponse
// @Router   /borrowings/{id}/return [patch]
func (h *Handler) ReturnBorrowing(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	b, err := h.librarySvc.ReturnBorrowing(c.Request().Context(), callerFrom(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
