package handler

import (
	"net/http"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) Login(c echo.Context) error {
	var req model.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	resp, err := h.userSvc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, resp, msgLoginSuccess)
}

func (h *Handler) Signup(c echo.Context) error {
	var req model.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	if err := h.userSvc.Signup(c.Request().Context(), req); err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusCreated, nil, msgUserCreated)
}
