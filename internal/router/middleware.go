package router

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/auth"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/handler"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/service"
)

// requestLogger writes one zerolog line per request.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("path", v.URI).
				Int("status", v.Status).
				Dur("latency_ms", v.Latency).
				Str("ip", v.RemoteIP).
				Msg("HTTP Request")
			return nil
		},
	})
}

// auditContext attaches the caller's address and agent to the request context.
func auditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := audit.WithRequest(req.Context(), audit.Request{
				IPAddress: c.RealIP(),
				UserAgent: req.UserAgent(),
				Path:      req.URL.Path,
			})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// skipTrailingSlash keeps the liveness and documentation paths untouched.
func skipTrailingSlash(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/healthz" || strings.HasPrefix(path, "/swagger")
}

// jwtMiddleware verifies the access token. Both "Bearer" and "Token"
// authorization schemes are accepted.
func jwtMiddleware(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ContextClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,header:" + echo.HeaderAuthorization + ":Token ",
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateAccessToken(token)
		},
		ErrorHandler: func(_ echo.Context, _ error) error {
			return apperrors.ErrUnauthorized
		},
	})
}

// authenticate resolves the verified claims into the request principal.
func authenticate(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := handler.CurrentClaims(c)
			if claims == nil {
				return apperrors.ErrUnauthorized
			}
			ctx := c.Request().Context()
			principal, err := authService.Authenticate(ctx, claims)
			if err != nil {
				return err
			}
			c.Set(handler.ContextPrincipal, principal)

			req := audit.RequestFrom(ctx)
			userID := principal.UserID
			req.UserID = &userID
			c.SetRequest(c.Request().WithContext(audit.WithRequest(ctx, req)))
			return next(c)
		}
	}
}

// authorize rejects callers that may not perform action on resource at all.
// Row ownership is enforced further down by the store scopes.
func authorize(action policy.Action, resource policy.Resource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !policy.Can(handler.CurrentPrincipal(c), action, resource, true) {
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}

// errorHandler renders every error as the JSON error envelope. Server
// errors are logged and kept in the system log.
func errorHandler(auditLog *audit.Log) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := apperrors.MapErrorToHTTP(err)
		if he.StatusCode >= http.StatusInternalServerError {
			req := c.Request()
			log.Error().
				Err(err).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Msg("request failed")
			auditLog.System(req.Context(), "error", "api", err.Error(), map[string]interface{}{
				"method": req.Method,
				"path":   req.URL.Path,
			})
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.StatusCode)
		} else {
			err = c.JSON(he.StatusCode, he.ToErrorResponse())
		}
		if err != nil {
			log.Warn().Err(err).Msg("write error response")
		}
	}
}
