package handler

import (
	"net/http"
	"strings"

	"github.com/bookshelf-app/bookshelf-service/pkg/auth"
	"github.com/bookshelf-app/bookshelf-service/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const bearer = "Bearer "

// jwtAuthentication guards protected routes: a missing or malformed header is
// a 401, a token that fails verification (bad signature, expired) is a 403.
func (h *Handler) jwtAuthentication(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorization := c.Request().Header.Get(echo.HeaderAuthorization)
		if authorization == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "access denied: no token provided")
		}
		if !strings.HasPrefix(authorization, bearer) {
			return echo.NewHTTPError(http.StatusUnauthorized, "access denied: invalid token format")
		}

		claims, err := h.tokens.Parse(strings.TrimPrefix(authorization, bearer))
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "access denied: invalid token")
		}

		req := c.Request()
		ctx := auth.SetAuthContext(req.Context(), claims.UserID, claims.UserName)
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}

func newRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func requestLoggerConfig() middleware.RequestLoggerConfig {
	cfg := logger.Log{LogLevel: zapcore.DebugLevel, Sink: ""}
	log := logger.NewLogger(cfg, "echo")
	return middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
}
