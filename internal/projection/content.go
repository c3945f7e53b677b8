package projection

import (
	"time"

	"sheba-admin/internal/model"
)

// BlogView is the full blog post with its author.
type BlogView struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Content       string       `json:"content"`
	Excerpt       string       `json:"excerpt"`
	Author        *UserProfile `json:"author"`
	AuthorID      uint         `json:"author_id"`
	Category      string       `json:"category"`
	Status        string       `json:"status"`
	FeaturedImage string       `json:"featured_image"`
	Views         int64        `json:"views"`
	IsPublished   bool         `json:"is_published"`
	PublishedAt   *time.Time   `json:"published_at"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func NewBlogView(b *model.BlogPost) BlogView {
	return BlogView{
		ID:            b.ID,
		Title:         b.Title,
		Slug:          b.Slug,
		Content:       b.Content,
		Excerpt:       b.Excerpt,
		Author:        NewUserProfile(b.Author),
		AuthorID:      b.AuthorID,
		Category:      b.Category,
		Status:        b.Status,
		FeaturedImage: b.FeaturedImage,
		Views:         b.Views,
		IsPublished:   b.IsPublished(),
		PublishedAt:   b.PublishedAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// BlogSummary is the list row of the blog summary endpoint.
type BlogSummary struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	AuthorName  string     `json:"author_name"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Views       int64      `json:"views"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewBlogSummary(b *model.BlogPost) BlogSummary {
	return BlogSummary{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		Excerpt:     b.Excerpt,
		AuthorName:  fullName(b.Author),
		Category:    b.Category,
		Status:      b.Status,
		Views:       b.Views,
		PublishedAt: b.PublishedAt,
		CreatedAt:   b.CreatedAt,
	}
}

// PublicBlogPost is a published post as shown on the public blog.
type PublicBlogPost struct {
	ID            uint       `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	AuthorName    string     `json:"author_name"`
	Category      string     `json:"category"`
	FeaturedImage string     `json:"featured_image"`
	Views         int64      `json:"views"`
	PublishedAt   *time.Time `json:"published_at"`
}

func NewPublicBlogPost(b *model.BlogPost) PublicBlogPost {
	return PublicBlogPost{
		ID:            b.ID,
		Title:         b.Title,
		Slug:          b.Slug,
		Content:       b.Content,
		Excerpt:       b.Excerpt,
		AuthorName:    fullName(b.Author),
		Category:      b.Category,
		FeaturedImage: b.FeaturedImage,
		Views:         b.Views,
		PublishedAt:   b.PublishedAt,
	}
}

// Entity returns the stored entity unchanged, for entities whose columns are
// already their primary projection.
func Entity[T any](v *T) *T {
	return v
}

type WebsiteContentInput struct {
	Section  *string `json:"section" validate:"required,max=100"`
	Title    *string `json:"title" validate:"required,max=200"`
	Content  *string `json:"content" validate:"required"`
	IsActive *bool   `json:"is_active"`
}

func (in WebsiteContentInput) Apply(w *model.WebsiteContent) {
	set(&w.Section, in.Section)
	set(&w.Title, in.Title)
	set(&w.Content, in.Content)
	set(&w.IsActive, in.IsActive)
}

type BlogInput struct {
	Title         *string             `json:"title" validate:"required,max=200"`
	Slug          *string             `json:"slug"`
	Content       *string             `json:"content" validate:"required"`
	Excerpt       *string             `json:"excerpt"`
	AuthorID      *uint               `json:"author_id"`
	Category      *string             `json:"category" validate:"required"`
	Status        *string             `json:"status"`
	FeaturedImage *string             `json:"featured_image"`
	PublishedAt   Nullable[time.Time] `json:"published_at"`
}

func (in BlogInput) Apply(b *model.BlogPost) {
	set(&b.Title, in.Title)
	set(&b.Slug, in.Slug)
	set(&b.Content, in.Content)
	set(&b.Excerpt, in.Excerpt)
	set(&b.AuthorID, in.AuthorID)
	set(&b.Category, in.Category)
	set(&b.Status, in.Status)
	set(&b.FeaturedImage, in.FeaturedImage)
	if in.PublishedAt.Valid && b.PublishedAt == nil {
		b.PublishedAt = in.PublishedAt.Ptr()
	}
}

type PortfolioInput struct {
	Title        *string   `json:"title" validate:"required,max=200"`
	Description  *string   `json:"description" validate:"required"`
	Category     *string   `json:"category" validate:"required,max=100"`
	Image        *string   `json:"image"`
	Technologies *[]string `json:"technologies"`
	ProjectURL   *string   `json:"project_url" validate:"omitempty,url"`
	GithubURL    *string   `json:"github_url" validate:"omitempty,url"`
	Status       *string   `json:"status"`
	Order        *int      `json:"order"`
}

func (in PortfolioInput) Apply(p *model.PortfolioProject) {
	set(&p.Title, in.Title)
	set(&p.Description, in.Description)
	set(&p.Category, in.Category)
	set(&p.Image, in.Image)
	setList(&p.Technologies, in.Technologies)
	set(&p.ProjectURL, in.ProjectURL)
	set(&p.GithubURL, in.GithubURL)
	set(&p.Status, in.Status)
	set(&p.Order, in.Order)
}

type ServiceInput struct {
	Title       *string   `json:"title" validate:"required,max=200"`
	Description *string   `json:"description" validate:"required"`
	Features    *[]string `json:"features"`
	Price       *string   `json:"price"`
	Icon        *string   `json:"icon"`
	Status      *string   `json:"status"`
	Order       *int      `json:"order"`
}

func (in ServiceInput) Apply(s *model.Service) {
	set(&s.Title, in.Title)
	set(&s.Description, in.Description)
	setList(&s.Features, in.Features)
	set(&s.Price, in.Price)
	set(&s.Icon, in.Icon)
	set(&s.Status, in.Status)
	set(&s.Order, in.Order)
}

type TeamMemberInput struct {
	Name        *string `json:"name" validate:"required,max=100"`
	Role        *string `json:"role" validate:"required,max=100"`
	Bio         *string `json:"bio" validate:"required"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Image       *string `json:"image"`
	LinkedinURL *string `json:"linkedin_url" validate:"omitempty,url"`
	GithubURL   *string `json:"github_url" validate:"omitempty,url"`
	Status      *string `json:"status"`
	Order       *int    `json:"order"`
}

func (in TeamMemberInput) Apply(m *model.TeamMember) {
	set(&m.Name, in.Name)
	set(&m.Role, in.Role)
	set(&m.Bio, in.Bio)
	set(&m.Email, in.Email)
	set(&m.Phone, in.Phone)
	set(&m.Image, in.Image)
	set(&m.LinkedinURL, in.LinkedinURL)
	set(&m.GithubURL, in.GithubURL)
	set(&m.Status, in.Status)
	set(&m.Order, in.Order)
}
