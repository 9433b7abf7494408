package handler

import (
	"net/http"
	"strconv"

	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/bookshelf-app/bookshelf-service/internal/service"
	"github.com/bookshelf-app/bookshelf-service/pkg/auth"
	"github.com/bookshelf-app/bookshelf-service/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Handler struct {
	catalogSvc CatalogService
	userSvc    UserService
	statusSvc  StatusService
	events     Publisher
	tokens     *auth.Manager
	log        *zap.Logger
}

func New(catalogSvc CatalogService, userSvc UserService, statusSvc StatusService, events Publisher, tokens *auth.Manager, log *zap.Logger) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		userSvc:    userSvc,
		statusSvc:  statusSvc,
		events:     events,
		tokens:     tokens,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.HTTPErrorHandler = h.errorHandler

	base := e.Group("", newRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiter(apiRPS),
	)

	api.POST("/login", h.Login)
	api.POST("/signup", h.Signup)
	api.GET("/get-books", h.GetBooks)
	api.GET("/get-genres", h.GetGenres)
	api.GET("/get-books-by-genre/:genre", h.GetBooksByGenre)
	api.GET("/get-book-details/:id", h.GetBookDetails)

	protected := api.Group("", h.jwtAuthentication)
	protected.POST("/add-book", h.AddBook)
	protected.POST("/user-book-status/toggle", h.ToggleStatus)
	protected.GET("/user-book-status/read", h.ListRead)
	protected.GET("/user-book-status/unread", h.ListUnread)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// paging parses page/limit query params, rejecting anything that is not a
// positive integer.
func paging(c echo.Context) (int, int, error) {
	page, limit := defaultPage, defaultLimit
	var err error
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil || page < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "page must be a positive integer")
		}
	}
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if limit, err = strconv.Atoi(limitParam); err != nil || limit < 1 {
			return 0, 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "limit must be a positive integer")
		}
	}
	return page, limit, nil
}

func (h *Handler) GetBooks(c echo.Context) error {
	page, limit, err := paging(c)
	if err != nil {
		return err
	}

	list, err := h.catalogSvc.ListBooks(c.Request().Context(), model.ListBooksQuery{
		Query:      c.QueryParam("query"),
		CustomerID: c.QueryParam("customerId"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, list, msgDataFetched)
}

func (h *Handler) GetGenres(c echo.Context) error {
	genres, err := h.catalogSvc.ListGenres(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, genres, msgGenresFetched)
}

func (h *Handler) GetBooksByGenre(c echo.Context) error {
	genre := c.Param("genre")
	if genre == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "genre is required")
	}
	page, limit, err := paging(c)
	if err != nil {
		return err
	}

	list, err := h.catalogSvc.ListBooksByGenre(c.Request().Context(), genre, page, limit)
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, list, msgBooksFetched)
}

func (h *Handler) GetBookDetails(c echo.Context) error {
	book, err := h.catalogSvc.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return respond(c, http.StatusOK, book, msgBookDetails)
}

func (h *Handler) AddBook(c echo.Context) error {
	var req model.AddBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	fileHeader, err := c.FormFile("coverImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "coverImage is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()

	book, err := h.catalogSvc.AddBook(c.Request().Context(), req, service.CoverFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		return httpError(err)
	}
	h.events.BookAdded(book)

	return respond(c, http.StatusCreated, book, msgBookAdded)
}
