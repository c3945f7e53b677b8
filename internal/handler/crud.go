package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/projection"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

// ReadOnly serves list and retrieve for one resource, rendered with view.
type ReadOnly[T, V any] struct {
	res  *service.Resource[T]
	view func(*T) V
}

// NewReadOnly creates a read-only handler for res.
func NewReadOnly[T, V any](res *service.Resource[T], view func(*T) V) *ReadOnly[T, V] {
	return &ReadOnly[T, V]{res: res, view: view}
}

// CRUD serves list, create, retrieve, update and delete for one resource.
// Request bodies decode into In.
type CRUD[T any, In projection.Input[T], V any] struct {
	*ReadOnly[T, V]
}

// NewCRUD creates a CRUD handler for res.
func NewCRUD[T any, In projection.Input[T], V any](res *service.Resource[T], view func(*T) V) *CRUD[T, In, V] {
	return &CRUD[T, In, V]{ReadOnly: NewReadOnly(res, view)}
}

func (h *ReadOnly[T, V]) List(c echo.Context) error {
	page, err := h.res.List(requestContext(c), CurrentPrincipal(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, h.view))
}

func (h *CRUD[T, In, V]) Create(c echo.Context) error {
	var in In
	if err := bind(c, &in); err != nil {
		return err
	}
	created, err := h.res.Create(requestContext(c), CurrentPrincipal(c), in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.view(created))
}

func (h *ReadOnly[T, V]) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	entity, err := h.res.Get(requestContext(c), CurrentPrincipal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.view(entity))
}

// Update serves both PUT and PATCH. Absent fields keep their stored value.
func (h *CRUD[T, In, V]) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in In
	if err := bind(c, &in); err != nil {
		return err
	}
	updated, err := h.res.Update(requestContext(c), CurrentPrincipal(c), id, in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.view(updated))
}

func (h *CRUD[T, In, V]) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.res.Delete(requestContext(c), CurrentPrincipal(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAs lists res with a different list declaration and view, for the
// summary endpoints.
func ListAs[T, V any](res *service.Resource[T], spec repository.ListSpec, view func(*T) V) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := res.ListWith(requestContext(c), CurrentPrincipal(c), spec, listQuery(c))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, repository.Map(page, view))
	}
}
