package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/model"
	"sheba-admin/internal/projection"
	"sheba-admin/internal/service"
)

// ContentHandler serves the website content resources.
type ContentHandler struct {
	Website     *CRUD[model.WebsiteContent, projection.WebsiteContentInput, *model.WebsiteContent]
	Blog        *CRUD[model.BlogPost, projection.BlogInput, projection.BlogView]
	BlogSummary echo.HandlerFunc
	Portfolio   *CRUD[model.PortfolioProject, projection.PortfolioInput, *model.PortfolioProject]
	Services    *CRUD[model.Service, projection.ServiceInput, *model.Service]
	Team        *CRUD[model.TeamMember, projection.TeamMemberInput, *model.TeamMember]

	svc *service.ContentService
}

// NewContentHandler creates a content handler.
func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{
		Website:     NewCRUD[model.WebsiteContent, projection.WebsiteContentInput](svc.Website, projection.Entity[model.WebsiteContent]),
		Blog:        NewCRUD[model.BlogPost, projection.BlogInput](svc.Blog, projection.NewBlogView),
		BlogSummary: ListAs(svc.Blog, service.BlogSummarySpec, projection.NewBlogSummary),
		Portfolio:   NewCRUD[model.PortfolioProject, projection.PortfolioInput](svc.Portfolio, projection.Entity[model.PortfolioProject]),
		Services:    NewCRUD[model.Service, projection.ServiceInput](svc.Services, projection.Entity[model.Service]),
		Team:        NewCRUD[model.TeamMember, projection.TeamMemberInput](svc.Team, projection.Entity[model.TeamMember]),
		svc:         svc,
	}
}

// Stats godoc
// @Summary Content statistics
// @Tags content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.ContentStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /content/stats/ [get]
func (h *ContentHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(requestContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
