package handler

import (
	"net/http"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/bookshelf-app/bookshelf-service/pkg/auth"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ToggleStatus(c echo.Context) error {
	var req model.ToggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	status, err := h.statusSvc.Toggle(c.Request().Context(), req.CustomerID, req.BookID)
	if err != nil {
		return httpError(err)
	}
	h.events.StatusToggled(status)

	return respond(c, http.StatusOK, status, msgStatusToggled)
}

// customerID falls back to the authenticated user when the query param is
// absent.
func customerID(c echo.Context) string {
	if id := c.QueryParam("customerId"); id != "" {
		return id
	}
	return auth.UserID(c.Request().Context())
}

func (h *Handler) ListRead(c echo.Context) error {
	page, limit, err := paging(c)
	if err != nil {
		return err
	}

	list, err := h.statusSvc.ListRead(c.Request().Context(), customerID(c), page, limit)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, list, msgBooksFetched)
}

func (h *Handler) ListUnread(c echo.Context) error {
	page, limit, err := paging(c)
	if err != nil {
		return err
	}

	list, err := h.statusSvc.ListUnread(c.Request().Context(), customerID(c), page, limit)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, list, msgBooksFetched)
}
