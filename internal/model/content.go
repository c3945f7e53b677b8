package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WebsiteContent is an editable block of copy on the public site.
type WebsiteContent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Section   string    `json:"section" gorm:"size:100;not null;index"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	IsActive  bool      `json:"is_active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetDefaults fills the values new content starts with.
func (w *WebsiteContent) SetDefaults() {
	w.IsActive = true
}

// Validate checks field constraints.
func (w *WebsiteContent) Validate() error {
	return validation.ValidateStruct(w,
		validation.Field(&w.Section, validation.Required, validation.Length(1, 100)),
		validation.Field(&w.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&w.Content, validation.Required),
	)
}

// BlogPost is an article on the company blog.
type BlogPost struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title" gorm:"size:200;not null"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Content       string     `json:"content" gorm:"type:text;not null"`
	Excerpt       string     `json:"excerpt" gorm:"type:text"`
	AuthorID      uint       `json:"author_id" gorm:"not null;index"`
	Author        *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Category      string     `json:"category" gorm:"size:20;not null;index"`
	Status        string     `json:"status" gorm:"size:20;not null;index"`
	FeaturedImage string     `json:"featured_image" gorm:"size:255"`
	Views         int64      `json:"views" gorm:"not null"`
	PublishedAt   *time.Time `json:"published_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SetDefaults fills the values a new post starts with.
func (b *BlogPost) SetDefaults() {
	b.Status = StatusDraft
}

// IsPublished reports whether the post is visible on the public site.
func (b *BlogPost) IsPublished() bool {
	return b.Status == StatusPublished
}

// EnsureSlug derives the slug from the title when none was given.
func (b *BlogPost) EnsureSlug() {
	if b.Slug == "" {
		b.Slug = slug.Make(b.Title)
	}
}

// BeforeSave generates a missing slug and stamps the first publication time.
func (b *BlogPost) BeforeSave(tx *gorm.DB) error {
	b.EnsureSlug()
	b.PublishedAt = stampOnce(b.PublishedAt, b.Status == StatusPublished)
	return nil
}

// Validate checks field constraints.
func (b *BlogPost) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&b.Slug, validation.Length(0, 200), validation.Match(slugPattern).Error("enter a valid slug")),
		validation.Field(&b.Content, validation.Required),
		validation.Field(&b.Excerpt, validation.Length(0, 300)),
		validation.Field(&b.AuthorID, validation.Required),
		validation.Field(&b.Category, validation.Required, BlogCategories.Rule()),
		validation.Field(&b.Status, validation.Required, BlogStatuses.Rule()),
	)
}

// PortfolioProject is a showcase entry on the public portfolio page.
type PortfolioProject struct {
	ID           uint                        `json:"id" gorm:"primaryKey"`
	Title        string                      `json:"title" gorm:"size:200;not null"`
	Description  string                      `json:"description" gorm:"type:text;not null"`
	Category     string                      `json:"category" gorm:"size:100;not null;index"`
	Image        string                      `json:"image" gorm:"size:255"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	ProjectURL   string                      `json:"project_url" gorm:"size:200"`
	GithubURL    string                      `json:"github_url" gorm:"size:200"`
	Status       string                      `json:"status" gorm:"size:20;not null;index"`
	Order        int                         `json:"order" gorm:"column:sort_order;not null"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// SetDefaults fills the values a new entry starts with.
func (p *PortfolioProject) SetDefaults() {
	p.Status = StatusActive
	p.Technologies = emptyList()
}

// Validate checks field constraints.
func (p *PortfolioProject) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.ProjectURL, validation.Length(0, 200), is.URL),
		validation.Field(&p.GithubURL, validation.Length(0, 200), is.URL),
		validation.Field(&p.Status, validation.Required, PortfolioStatuses.Rule()),
		validation.Field(&p.Order, validation.Min(0)),
	)
}

// Service is an offering listed on the services page.
type Service struct {
	ID          uint                        `json:"id" gorm:"primaryKey"`
	Title       string                      `json:"title" gorm:"size:200;not null"`
	Description string                      `json:"description" gorm:"type:text;not null"`
	Features    datatypes.JSONSlice[string] `json:"features"`
	Price       string                      `json:"price" gorm:"size:100"`
	Icon        string                      `json:"icon" gorm:"size:50"`
	Status      string                      `json:"status" gorm:"size:20;not null;index"`
	Order       int                         `json:"order" gorm:"column:sort_order;not null"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// SetDefaults fills the values a new service starts with.
func (s *Service) SetDefaults() {
	s.Status = StatusActive
	s.Features = emptyList()
}

// Validate checks field constraints.
func (s *Service) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Description, validation.Required),
		validation.Field(&s.Price, validation.Length(0, 100)),
		validation.Field(&s.Icon, validation.Length(0, 50)),
		validation.Field(&s.Status, validation.Required, ActiveStatuses.Rule()),
		validation.Field(&s.Order, validation.Min(0)),
	)
}

// TeamMember is a person shown on the team page.
type TeamMember struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Role        string    `json:"role" gorm:"size:100;not null"`
	Bio         string    `json:"bio" gorm:"type:text;not null"`
	Email       string    `json:"email" gorm:"size:254"`
	Phone       string    `json:"phone" gorm:"size:20"`
	Image       string    `json:"image" gorm:"size:255"`
	LinkedinURL string    `json:"linkedin_url" gorm:"size:200"`
	GithubURL   string    `json:"github_url" gorm:"size:200"`
	Status      string    `json:"status" gorm:"size:20;not null;index"`
	Order       int       `json:"order" gorm:"column:sort_order;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetDefaults fills the values a new member starts with.
func (m *TeamMember) SetDefaults() {
	m.Status = StatusActive
}

// Validate checks field constraints.
func (m *TeamMember) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&m.Role, validation.Required, validation.Length(1, 100)),
		validation.Field(&m.Bio, validation.Required),
		validation.Field(&m.Email, validation.Length(0, 254), is.EmailFormat),
		validation.Field(&m.Phone, validation.Length(0, 20)),
		validation.Field(&m.LinkedinURL, validation.Length(0, 200), is.URL),
		validation.Field(&m.GithubURL, validation.Length(0, 200), is.URL),
		validation.Field(&m.Status, validation.Required, ActiveStatuses.Rule()),
		validation.Field(&m.Order, validation.Min(0)),
	)
}
