// Package seed fills an empty database with an administrator and sample rows.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
	"sheba-admin/internal/service"
)

// Options configures the administrator account.
type Options struct {
	AdminUsername string `env:"SEED_ADMIN_USERNAME" envDefault:"admin"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"admin12345"`
}

// Result counts what a run did.
type Result struct {
	Created int
	Skipped int
}

// Seeder creates rows through the services so defaults and checks apply.
type Seeder struct {
	db       *gorm.DB
	users    service.UserService
	clients  *service.ClientService
	projects *service.ProjectService
	careers  *service.CareersService
	content  *service.ContentService
	settings *service.SettingsService
}

// New builds a Seeder on db. log may be nil.
func New(db *gorm.DB, log *audit.Log) *Seeder {
	return &Seeder{
		db:       db,
		users:    service.NewUserService(db, nil, log, 0),
		clients:  service.NewClientService(db, log),
		projects: service.NewProjectService(db, log),
		careers:  service.NewCareersService(db, log),
		content:  service.NewContentService(db, log),
		settings: service.NewSettingsService(db, nil, log),
	}
}

// Run creates whatever is missing. Running it again creates nothing.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	admin, err := s.admin(ctx, opts, res)
	if err != nil {
		return nil, err
	}
	p := &policy.Principal{UserID: admin.ID, Role: policy.RoleAdmin, IsStaff: true}

	if _, err := s.settings.Company(ctx); err != nil {
		return nil, fmt.Errorf("company settings: %w", err)
	}
	if _, err := s.settings.System(ctx); err != nil {
		return nil, fmt.Errorf("system settings: %w", err)
	}

	client, err := ensure(ctx, res, s.clients.Clients, byColumn("email", "hello@tsionclinics.example"), p, func(c *model.Client) {
		c.Name = "Tsion Clinics"
		c.Email = "hello@tsionclinics.example"
		c.Phone = "+251911000000"
		c.Company = "Tsion Clinics PLC"
		c.ClientType = "small_business"
		c.ContactPerson = "Tsion Alemu"
	})
	if err != nil {
		return nil, err
	}

	start := model.DateOf(time.Now().AddDate(0, -3, 0))
	end := model.DateOf(time.Now().AddDate(0, -1, 0))
	budget := decimal.NewFromInt(450000)
	if _, err := ensure(ctx, res, s.projects.Projects, byColumn("name", "Clinic booking portal"), p, func(pr *model.Project) {
		pr.Name = "Clinic booking portal"
		pr.Description = "Online appointment booking for outpatient clinics."
		pr.ClientID = client.ID
		pr.Status = "completed"
		pr.Priority = "high"
		pr.StartDate = &start
		pr.EndDate = &end
		pr.Budget = &budget
		pr.Progress = 100
		pr.Technologies = datatypes.JSONSlice[string]{"go", "react", "mysql"}
		pr.AssignedToIDs = []uint{admin.ID}
	}); err != nil {
		return nil, err
	}

	lo, hi := decimal.NewFromInt(25000), decimal.NewFromInt(40000)
	publishedAt := time.Now()
	if _, err := ensure(ctx, res, s.careers.Jobs, byColumn("slug", "backend-engineer"), p, func(j *model.JobPosting) {
		j.Title = "Backend Engineer"
		j.Department = "engineering"
		j.Location = "Addis Ababa"
		j.JobType = "full_time"
		j.ExperienceLevel = "mid"
		j.Description = "Build and run the services behind our client projects."
		j.Requirements = datatypes.JSONSlice[string]{"3+ years of Go or a similar language", "Comfort with SQL databases"}
		j.Responsibilities = datatypes.JSONSlice[string]{"Design HTTP APIs", "Review code"}
		j.Benefits = datatypes.JSONSlice[string]{"Health insurance", "Learning budget"}
		j.SalaryMin = &lo
		j.SalaryMax = &hi
		j.SalaryCurrency = "ETB"
		j.Status = model.StatusPublished
		j.PublishedAt = &publishedAt
	}); err != nil {
		return nil, err
	}

	if _, err := ensure(ctx, res, s.content.Blog, byColumn("slug", "welcome-to-sheba"), p, func(b *model.BlogPost) {
		b.Title = "Welcome to Sheba"
		b.Content = "We build software for growing businesses across East Africa."
		b.Excerpt = "Who we are and what we build."
		b.Category = "business"
		b.Status = model.StatusPublished
		b.PublishedAt = &publishedAt
	}); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Seeder) admin(ctx context.Context, opts Options, res *Result) (*model.User, error) {
	existing, err := repository.NewUserRepository(s.db).FindByUsername(ctx, opts.AdminUsername)
	if err == nil {
		res.Skipped++
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	bootstrap := &policy.Principal{Role: policy.RoleAdmin, IsStaff: true}
	admin, err := s.users.Create(ctx, bootstrap, opts.AdminPassword, func(u *model.User) {
		u.Username = opts.AdminUsername
		u.Email = opts.AdminEmail
		u.FirstName = "Site"
		u.LastName = "Administrator"
		u.Role = string(policy.RoleAdmin)
		u.IsStaff = true
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	res.Created++
	return admin, nil
}

// ensure creates a row through res unless one matching existing is stored.
func ensure[T any](ctx context.Context, result *Result, res *service.Resource[T], existing repository.Scope, p *policy.Principal, apply func(*T)) (*T, error) {
	row, err := res.Store().FindOne(ctx, existing)
	if err == nil {
		result.Skipped++
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up %T: %w", row, err)
	}
	created, err := res.Create(ctx, p, apply)
	if err != nil {
		return nil, fmt.Errorf("create %T: %w", row, err)
	}
	result.Created++
	return created, nil
}

func byColumn(column string, value interface{}) repository.Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(column+" = ?", value)
	}
}
