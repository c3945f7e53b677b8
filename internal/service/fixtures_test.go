package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
)

func adminPrincipal(u *model.User) *policy.Principal {
	return &policy.Principal{UserID: u.ID, Role: policy.RoleAdmin}
}

func principalOf(u *model.User) *policy.Principal {
	return &policy.Principal{UserID: u.ID, Role: policy.Role(u.Role), IsStaff: u.IsStaff}
}

func seedUser(t *testing.T, gdb *gorm.DB, username string, role policy.Role) *model.User {
	t.Helper()
	u := &model.User{Username: username, Role: string(role), IsActive: true, PasswordHash: "unused"}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedClient(t *testing.T, gdb *gorm.DB, name string) *model.Client {
	t.Helper()
	c := &model.Client{Name: name, Email: name + "@example.com", Phone: "+251900000000", ClientType: "startup", IsActive: true}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func seedProject(t *testing.T, gdb *gorm.DB, client *model.Client, name, status string) *model.Project {
	t.Helper()
	p := &model.Project{Name: name, ClientID: client.ID, Status: status, Priority: "medium"}
	require.NoError(t, gdb.Create(p).Error)
	return p
}

func seedJob(t *testing.T, gdb *gorm.DB, poster *model.User, title, status string) *model.JobPosting {
	t.Helper()
	lo := decimal.NewFromInt(20000)
	j := &model.JobPosting{
		Title:           title,
		Department:      "engineering",
		Location:        "Addis Ababa",
		JobType:         "full_time",
		ExperienceLevel: "mid",
		Description:     "Build things.",
		SalaryMin:       &lo,
		SalaryCurrency:  "ETB",
		Status:          status,
		PostedByID:      poster.ID,
	}
	require.NoError(t, gdb.Create(j).Error)
	return j
}

func applicant(jobID uint, email string) func(*model.JobApplication) {
	return func(a *model.JobApplication) {
		a.JobID = jobID
		a.FirstName = "Hana"
		a.LastName = "Bekele"
		a.Email = email
		a.Phone = "+251911111111"
		a.YearsOfExperience = 3
		a.Status = "hired"
		a.AdminNotes = "should be dropped"
	}
}

func dayOffset(days int) model.Date {
	return model.DateOf(time.Now().AddDate(0, 0, days))
}
