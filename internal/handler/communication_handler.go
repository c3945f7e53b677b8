package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/model"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/service"
)

// CommunicationHandler serves contact submissions, mailings and notifications.
type CommunicationHandler struct {
	Submissions   *CRUD[model.ContactSubmission, projection.ContactSubmissionInput, projection.ContactSubmissionView]
	Templates     *CRUD[model.EmailTemplate, projection.EmailTemplateInput, *model.EmailTemplate]
	Newsletters   *CRUD[model.Newsletter, projection.NewsletterInput, projection.NewsletterView]
	Subscribers   *CRUD[model.NewsletterSubscriber, projection.SubscriberInput, *model.NewsletterSubscriber]
	Notifications *CRUD[model.Notification, projection.NotificationInput, projection.NotificationView]

	svc *service.CommunicationService
}

// NewCommunicationHandler creates a communication handler.
func NewCommunicationHandler(svc *service.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{
		Submissions:   NewCRUD[model.ContactSubmission, projection.ContactSubmissionInput](svc.Submissions, projection.NewContactSubmissionView),
		Templates:     NewCRUD[model.EmailTemplate, projection.EmailTemplateInput](svc.Templates, projection.Entity[model.EmailTemplate]),
		Newsletters:   NewCRUD[model.Newsletter, projection.NewsletterInput](svc.Newsletters, projection.NewNewsletterView),
		Subscribers:   NewCRUD[model.NewsletterSubscriber, projection.SubscriberInput](svc.Subscribers, projection.Entity[model.NewsletterSubscriber]),
		Notifications: NewCRUD[model.Notification, projection.NotificationInput](svc.Notifications, projection.NewNotificationView),
		svc:           svc,
	}
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Description Users can only mark their own notifications.
// @Tags communication
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /communication/notifications/{id}/mark-read/ [post]
func (h *CommunicationHandler) MarkRead(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.MarkRead(requestContext(c), CurrentPrincipal(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Notification marked as read"})
}

// Stats godoc
// @Summary Communication statistics
// @Tags communication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CommunicationStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /communication/stats/ [get]
func (h *CommunicationHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
