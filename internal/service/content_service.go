package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

var (
	websiteListSpec = repository.ListSpec{
		Filters:         map[string]string{"section": "section", "is_active": "is_active"},
		Kinds:           map[string]repository.FilterKind{"is_active": repository.FilterBool},
		Search:          []string{"title", "content"},
		Ordering:        map[string]string{"section": "section", "updated_at": "updated_at"},
		DefaultOrdering: []string{"section", "-updated_at"},
	}

	blogListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "category": "category", "author": "author_id"},
		Kinds:           map[string]repository.FilterKind{"author": repository.FilterInt},
		Search:          []string{"title", "content", "excerpt"},
		Ordering:        map[string]string{"created_at": "created_at", "published_at": "published_at", "views": "views"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Author"},
	}

	// BlogSummarySpec drives the lightweight blog post list.
	BlogSummarySpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "category": "category"},
		Search:          []string{"title"},
		Ordering:        map[string]string{"created_at": "created_at"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Author"},
	}

	publicBlogSpec = repository.ListSpec{
		Filters:         map[string]string{"category": "category"},
		Search:          []string{"title", "excerpt", "content"},
		Ordering:        map[string]string{"published_at": "published_at", "views": "views"},
		DefaultOrdering: []string{"-published_at"},
		Preloads:        []string{"Author"},
	}

	portfolioListSpec = repository.ListSpec{
		Filters:         map[string]string{"category": "category", "status": "status"},
		Search:          []string{"title", "description"},
		Ordering:        map[string]string{"order": "sort_order", "created_at": "created_at"},
		DefaultOrdering: []string{"order", "-created_at"},
	}

	serviceListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status"},
		Search:          []string{"title", "description"},
		Ordering:        map[string]string{"order": "sort_order", "created_at": "created_at"},
		DefaultOrdering: []string{"order", "-created_at"},
	}

	teamListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status"},
		Search:          []string{"name", "role", "bio"},
		Ordering:        map[string]string{"order": "sort_order", "created_at": "created_at"},
		DefaultOrdering: []string{"order", "-created_at"},
	}
)

// ContentStats is the response of the content statistics endpoint.
type ContentStats struct {
	BlogPosts         int64 `json:"blog_posts"`
	PublishedPosts    int64 `json:"published_posts"`
	PortfolioProjects int64 `json:"portfolio_projects"`
	ActiveServices    int64 `json:"active_services"`
	TeamMembers       int64 `json:"team_members"`
}

// ContentService serves the editable parts of the public website.
type ContentService struct {
	Website   *Resource[model.WebsiteContent]
	Blog      *Resource[model.BlogPost]
	Portfolio *Resource[model.PortfolioProject]
	Services  *Resource[model.Service]
	Team      *Resource[model.TeamMember]
}

// NewContentService wires the website content resources.
func NewContentService(db *gorm.DB, log *audit.Log) *ContentService {
	return &ContentService{
		Website: NewResource(repository.NewStore[model.WebsiteContent](db), log, ResourceConfig[model.WebsiteContent]{
			AuditAs:  "WebsiteContent",
			Resource: policy.ResourceContent,
			List:     websiteListSpec,
		}),
		Blog: NewResource(repository.NewStore[model.BlogPost](db), log, ResourceConfig[model.BlogPost]{
			AuditAs:  "BlogPost",
			Resource: policy.ResourceContent,
			List:     blogListSpec,
			Preloads: blogListSpec.Preloads,
			Counters: []string{"views"},
			Prepare: func(_ context.Context, p *policy.Principal, post *model.BlogPost, creating bool) {
				if creating && post.AuthorID == 0 && p != nil {
					post.AuthorID = p.UserID
				}
				post.EnsureSlug()
			},
			Check: func(ctx context.Context, post *model.BlogPost) error {
				return newChecker(ctx, db).
					ref("author_id", &model.User{}, post.AuthorID).
					unique("slug", "blog post with this slug already exists.", &model.BlogPost{}, post.ID, "slug = ?", post.Slug).
					result()
			},
		}),
		Portfolio: NewResource(repository.NewStore[model.PortfolioProject](db), log, ResourceConfig[model.PortfolioProject]{
			AuditAs:  "PortfolioProject",
			Resource: policy.ResourceContent,
			List:     portfolioListSpec,
		}),
		Services: NewResource(repository.NewStore[model.Service](db), log, ResourceConfig[model.Service]{
			AuditAs:  "Service",
			Resource: policy.ResourceContent,
			List:     serviceListSpec,
		}),
		Team: NewResource(repository.NewStore[model.TeamMember](db), log, ResourceConfig[model.TeamMember]{
			AuditAs:  "TeamMember",
			Resource: policy.ResourceContent,
			List:     teamListSpec,
		}),
	}
}

// Stats counts posts, showcase entries, services and team members.
func (s *ContentService) Stats(ctx context.Context) (*ContentStats, error) {
	postsByStatus, err := s.Blog.Store().CountBy(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}
	portfolio, err := s.Portfolio.Store().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}
	services, err := s.Services.Store().Count(ctx, where("status = ?", model.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}
	team, err := s.Team.Store().Count(ctx, where("status = ?", model.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("content stats: %w", err)
	}
	return &ContentStats{
		BlogPosts:         sum(postsByStatus),
		PublishedPosts:    postsByStatus[model.StatusPublished],
		PortfolioProjects: portfolio,
		ActiveServices:    services,
		TeamMembers:       team,
	}, nil
}

// PublicPosts lists published blog posts.
func (s *ContentService) PublicPosts(ctx context.Context, q repository.ListQuery) (*repository.Page[model.BlogPost], error) {
	return s.Blog.Store().List(ctx, publicBlogSpec, q, where("status = ?", model.StatusPublished))
}

// PublicPost returns the published post with slug and counts the view.
func (s *ContentService) PublicPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	store := s.Blog.Store()
	post, err := store.FindOne(ctx, where("slug = ? AND status = ?", slug, model.StatusPublished), func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("Author")
	})
	if err != nil {
		return nil, notFound(err)
	}
	views, err := store.Increment(ctx, post.ID, "views", 1)
	if err != nil {
		return nil, notFound(err)
	}
	post.Views = views
	return post, nil
}
