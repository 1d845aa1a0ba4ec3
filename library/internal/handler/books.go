package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/library-management/library/internal/model"
)

func paramID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

// ListBooks godoc
// @Summary  List or search books
// @Tags     books
// @Produce  json
// @Param    search     query string false "substring to look for"
// @Param    search_by  query string false "title, author or genre; all three when empty"
// @Param    available  query bool   false "only books with copies on the shelf"
// @Param    page       query int    false "page"
// @Param    size       query int    false "page size"
// @Success  200 {object} model.ListBooks
// @Router   /books [get]
func (h *Handler) ListBooks(c echo.Context) error {
	filter := model.BookFilter{
		Query:    c.QueryParam("search"),
		SearchBy: model.ParseSearchBy(c.QueryParam("search_by")),
	}
	var err error
	if availableParam := c.QueryParam("available"); availableParam != "" {
		if filter.AvailableOnly, err = strconv.ParseBool(availableParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "available is invalid")
		}
	}
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if filter.Page, err = strconv.Atoi(pageParam); err != nil || filter.Page < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if filter.Size, err = strconv.Atoi(sizeParam); err != nil || filter.Size < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}

	books, err := h.librarySvc.ListBooks(c.Request().Context(), callerFrom(c), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

// GetBook godoc
// @Summary  Get a book
// @Tags     books
// @Produce  json
// @Param    id path string true "book id"
// @Success  200 {object} model.Book
// @Failure  404 {object} echo.HTTPError
// @Router   /books/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	book, err := h.librarySvc.GetBook(c.Request().Context(), callerFrom(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// CreateBook godoc
// @Summary  Add a book to the catalog
// @Tags     books
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    book body model.BookInput true "book"
// @Success  201 {object} model.Book
// @Failure  422 {object} validationResponse
// @Router   /books [post]
func (h *Handler) CreateBook(c echo.Context) error {
	var in model.BookInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.librarySvc.CreateBook(c.Request().Context(), callerFrom(c), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, book)
}

// UpdateBook godoc
// @Summary  Change book fields; omitted fields keep their value
// @Tags     books
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    id   path string          true "book id"
// @Param    book body model.BookInput true "fields to change"
// @Success  200 {object} model.Book
// @Failure  422 {object} validationResponse
// @Router   /books/{id} [patch]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in model.BookInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.librarySvc.UpdateBook(c.Request().Context(), callerFrom(c), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

// DeleteBook godoc
// @Summary  Remove a book and its borrowings
// @Tags     books
// @Security Bearer
// @Param    id path string true "book id"
// @Success  204
// @Router   /books/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.librarySvc.DeleteBook(c.Request().Context(), callerFrom(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
