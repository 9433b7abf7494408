package handler

import (
	"fmt"
	"net/http"

	"github.com/bookshelf-app/bookshelf-service/internal/errs"
	"github.com/bookshelf-app/bookshelf-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Envelope is the uniform response wrapper: HTTP status mirrors StatusCode on
// success and on handled errors alike.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

const (
	msgDataFetched     = "Data Fetched Successfully."
	msgGenresFetched   = "Genres fetched successfully."
	msgBookAdded       = "Book added successfully"
	msgBookDetails     = "Book details fetched successfully"
	msgBooksFetched    = "Books fetched successfully"
	msgStatusToggled   = "Book status toggled successfully"
	msgLoginSuccess    = "Login Successfully"
	msgUserCreated     = "User Created Successfully"
	msgInternalFailure = "internal server error"
)

func respond(c echo.Context, code int, data interface{}, message string) error {
	return c.JSON(code, Envelope{
		StatusCode: code,
		Data:       data,
		Message:    message,
	})
}

// httpError maps service-level failures onto transport codes. Anything
// unrecognized falls through to the central error handler as a 500.
func httpError(err error) error {
	var (
		vErr *errs.ValidationError
		fErr *validate.Error
		hErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &hErr):
		return hErr
	case errors.As(err, &vErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, vErr.Message)
	case errors.As(err, &fErr):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fErr.Message)
	case errors.Is(err, errs.ErrNotFound),
		errors.Is(err, errs.ErrBookNotFound),
		errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrEmailExists),
		errors.Is(err, errs.ErrUserNameExists),
		errors.Is(err, errs.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}

// errorHandler renders every error through the envelope. Unhandled causes are
// logged and surface as a generic 500.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := msgInternalFailure

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprintf("%v", he.Message)
		if code >= http.StatusInternalServerError {
			msg = msgInternalFailure
			h.log.Error("request failed", zap.Error(err))
		}
	} else {
		h.log.Error("unhandled error", zap.Error(err))
	}

	if err := respond(c, code, nil, msg); err != nil {
		h.log.Error("write error response", zap.Error(err))
	}
}
