package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/auth"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

// Context keys set by the router's auth middleware.
const (
	ContextClaims    = "claims"
	ContextPrincipal = "principal"
)

// reserved query parameters that are never treated as filters
var listParams = map[string]bool{"page": true, "page_size": true, "search": true, "ordering": true}

// CurrentPrincipal returns the authenticated caller, or nil on public routes.
func CurrentPrincipal(c echo.Context) *policy.Principal {
	p, _ := c.Get(ContextPrincipal).(*policy.Principal)
	return p
}

// CurrentClaims returns the verified access token claims, or nil on public routes.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ContextClaims).(*auth.Claims)
	return claims
}

func requestContext(c echo.Context) context.Context {
	return c.Request().Context()
}

// parseID reads a numeric path parameter. Non-numeric ids cannot match a row.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}

// listQuery parses paging, search, ordering and filter parameters.
func listQuery(c echo.Context) repository.ListQuery {
	params := c.QueryParams()
	q := repository.ListQuery{
		Search:   params.Get("search"),
		Ordering: repository.ParseOrdering(params.Get("ordering")),
		Filters:  make(map[string]string),
	}
	q.Page, _ = strconv.Atoi(params.Get("page"))
	q.PageSize, _ = strconv.Atoi(params.Get("page_size"))
	for key, values := range params {
		if listParams[key] || len(values) == 0 {
			continue
		}
		q.Filters[key] = values[0]
	}
	return q
}

func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}

// bind decodes the request body into dst. Full writes (POST and PUT) also
// run the request validator; partial updates only validate the merged entity.
func bind(c echo.Context, dst interface{}) error {
	return bindWith(c, dst, nil)
}

// bindWith is bind with a hook that runs between decoding and validation,
// used to fill fields taken from the route.
func bindWith(c echo.Context, dst interface{}, fill func()) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if fill != nil {
		fill()
	}
	if c.Request().Method == http.MethodPatch {
		return nil
	}
	if err := c.Validate(dst); err != nil {
		return apperrors.FromValidator(err)
	}
	return nil
}
