package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/model"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

// ClientHandler serves clients and their contacts.
type ClientHandler struct {
	Clients  *CRUD[model.Client, projection.ClientInput, projection.ClientView]
	Contacts *CRUD[model.ClientContact, projection.ContactInput, projection.ContactView]
	Summary  echo.HandlerFunc

	svc *service.ClientService
}

// NewClientHandler creates a client handler.
func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{
		Clients:  NewCRUD[model.Client, projection.ClientInput](svc.Clients, projection.NewClientView),
		Contacts: NewCRUD[model.ClientContact, projection.ContactInput](svc.Contacts, projection.NewContactView),
		Summary:  ListAs(svc.Clients, service.ClientSummarySpec, projection.NewClientSummary),
		svc:      svc,
	}
}

// Stats godoc
// @Summary Client statistics
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ClientStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /clients/stats/ [get]
func (h *ClientHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ClientContacts godoc
// @Summary List the contacts of a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param client_id path int true "Client ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} repository.Page[projection.ContactView]
// @Failure 401 {object} errors.ErrorResponse
// @Router /clients/{client_id}/contacts/ [get]
func (h *ClientHandler) ClientContacts(c echo.Context) error {
	clientID, err := parseID(c, "client_id")
	if err != nil {
		return err
	}
	page, err := h.svc.ListForClient(requestContext(c), CurrentPrincipal(c), clientID, listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, projection.NewContactView))
}

// CreateClientContact godoc
// @Summary Create a contact for a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client_id path int true "Client ID"
// @Param request body projection.ContactInput true "Contact; client_id is taken from the path"
// @Success 201 {object} projection.ContactView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /clients/{client_id}/contacts/ [post]
func (h *ClientHandler) CreateClientContact(c echo.Context) error {
	clientID, err := parseID(c, "client_id")
	if err != nil {
		return err
	}
	var in projection.ContactInput
	if err := bindWith(c, &in, func() { in.ClientID = &clientID }); err != nil {
		return err
	}
	contact, err := h.svc.CreateForClient(requestContext(c), CurrentPrincipal(c), clientID, in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, projection.NewContactView(contact))
}
