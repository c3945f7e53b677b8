package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sheba-admin/internal/projection"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

// PublicHandler serves the unauthenticated website endpoints.
type PublicHandler struct {
	careers       *service.CareersService
	content       *service.ContentService
	projects      *service.ProjectService
	communication *service.CommunicationService
}

// NewPublicHandler creates the public handler.
func NewPublicHandler(
	careers *service.CareersService,
	content *service.ContentService,
	projects *service.ProjectService,
	communication *service.CommunicationService,
) *PublicHandler {
	return &PublicHandler{careers: careers, content: content, projects: projects, communication: communication}
}

// Jobs godoc
// @Summary Published job postings
// @Tags public
// @Produce json
// @Param page query int false "Page number"
// @Param search query string false "Search title, department and location"
// @Param department query string false "Filter by department"
// @Success 200 {object} repository.Page[projection.PublicJob]
// @Router /public/careers/jobs/ [get]
func (h *PublicHandler) Jobs(c echo.Context) error {
	page, err := h.careers.PublicJobs(requestContext(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, projection.NewPublicJob))
}

// Job godoc
// @Summary Published job posting by slug
// @Description Each successful retrieval counts one view.
// @Tags public
// @Produce json
// @Param slug path string true "Job slug"
// @Success 200 {object} projection.PublicJob
// @Failure 404 {object} errors.ErrorResponse
// @Router /public/careers/jobs/{slug}/ [get]
func (h *PublicHandler) Job(c echo.Context) error {
	job, err := h.careers.PublicJob(requestContext(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.NewPublicJob(job))
}

// Apply godoc
// @Summary Apply for a published job
// @Tags public
// @Accept json
// @Produce json
// @Param application body projection.ApplicationInput true "Application"
// @Success 201 {object} projection.PublicApplicationReceipt
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /public/careers/apply/ [post]
func (h *PublicHandler) Apply(c echo.Context) error {
	var in projection.ApplicationInput
	if err := bind(c, &in); err != nil {
		return err
	}
	app, err := h.careers.Apply(requestContext(c), in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, projection.NewPublicApplicationReceipt(app))
}

// Posts godoc
// @Summary Published blog posts
// @Tags public
// @Produce json
// @Param page query int false "Page number"
// @Param search query string false "Search title and excerpt"
// @Success 200 {object} repository.Page[projection.PublicBlogPost]
// @Router /public/blog/ [get]
func (h *PublicHandler) Posts(c echo.Context) error {
	page, err := h.content.PublicPosts(requestContext(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, projection.NewPublicBlogPost))
}

// Post godoc
// @Summary Published blog post by slug
// @Description Each successful retrieval counts one view.
// @Tags public
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} projection.PublicBlogPost
// @Failure 404 {object} errors.ErrorResponse
// @Router /public/blog/{slug}/ [get]
func (h *PublicHandler) Post(c echo.Context) error {
	post, err := h.content.PublicPost(requestContext(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.NewPublicBlogPost(post))
}

// Projects godoc
// @Summary Completed projects
// @Tags public
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} repository.Page[projection.PublicProject]
// @Router /public/projects/ [get]
func (h *PublicHandler) Projects(c echo.Context) error {
	page, err := h.projects.PublicList(requestContext(c), listQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, repository.Map(page, projection.NewPublicProject))
}

// Project godoc
// @Summary Completed project by id
// @Tags public
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} projection.PublicProject
// @Failure 404 {object} errors.ErrorResponse
// @Router /public/projects/{id}/ [get]
func (h *PublicHandler) Project(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	project, err := h.projects.PublicGet(requestContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projection.NewPublicProject(project))
}

// Contact godoc
// @Summary Submit the contact form
// @Tags public
// @Accept json
// @Produce json
// @Param submission body projection.ContactSubmissionInput true "Contact form"
// @Success 201 {object} projection.PublicContactReceipt
// @Failure 400 {object} errors.ErrorResponse
// @Router /public/contact/ [post]
func (h *PublicHandler) Contact(c echo.Context) error {
	var in projection.ContactSubmissionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	sub, err := h.communication.SubmitContact(requestContext(c), in.Apply)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, projection.NewPublicContactReceipt(sub))
}
