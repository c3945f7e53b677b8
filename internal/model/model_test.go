package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestJobPosting_SalaryRange(t *testing.T) {
	tests := []struct {
		name string
		job  JobPosting
		want string
	}{
		{
			name: "both bounds",
			job:  JobPosting{SalaryMin: decimalPtr("50000"), SalaryMax: decimalPtr("80000"), SalaryCurrency: "ETB", SalaryDisplay: "Competitive"},
			want: "50,000 - 80,000 ETB",
		},
		{
			name: "rounds to whole units",
			job:  JobPosting{SalaryMin: decimalPtr("1234567.50"), SalaryMax: decimalPtr("2000000.49"), SalaryCurrency: "USD"},
			want: "1,234,568 - 2,000,000 USD",
		},
		{
			name: "missing max falls back to display",
			job:  JobPosting{SalaryMin: decimalPtr("50000"), SalaryDisplay: "Competitive"},
			want: "Competitive",
		},
		{
			name: "no bounds",
			job:  JobPosting{SalaryDisplay: "Negotiable"},
			want: "Negotiable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.SalaryRange())
		})
	}
}

func TestJobApplication_FullName(t *testing.T) {
	a := JobApplication{FirstName: "Abebe", LastName: "Kebede"}
	assert.Equal(t, "Abebe Kebede", a.FullName())

	a = JobApplication{FirstName: "Abebe"}
	assert.Equal(t, "Abebe ", a.FullName())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Sara Tesfaye", (&User{FirstName: "Sara", LastName: "Tesfaye"}).FullName())
	assert.Equal(t, "Sara", (&User{FirstName: "Sara"}).FullName())
	assert.Equal(t, "", (&User{}).FullName())
}

func TestProject_DurationDays(t *testing.T) {
	start := NewDate(2024, time.January, 1)
	end := NewDate(2024, time.March, 1)

	p := Project{StartDate: &start, EndDate: &end}
	require.NotNil(t, p.DurationDays())
	assert.Equal(t, 60, *p.DurationDays())

	p.EndDate = nil
	assert.Nil(t, p.DurationDays())
}

func TestProject_Validate(t *testing.T) {
	p := Project{Name: "Portal", ClientID: 1}
	p.SetDefaults()
	require.NoError(t, p.Validate())

	p.Progress = 101
	assert.Error(t, p.Validate())

	p.Progress = 50
	start := NewDate(2024, time.May, 10)
	end := NewDate(2024, time.May, 1)
	p.StartDate, p.EndDate = &start, &end
	assert.Error(t, p.Validate())
}

func TestStampOnce(t *testing.T) {
	assert.Nil(t, stampOnce(nil, false))

	first := stampOnce(nil, true)
	require.NotNil(t, first)

	again := stampOnce(first, true)
	assert.Same(t, first, again)

	left := stampOnce(first, false)
	assert.Same(t, first, left)
}

func TestJobPosting_BeforeSaveKeepsPublishedAt(t *testing.T) {
	j := JobPosting{Title: "Senior Go Engineer"}
	j.SetDefaults()

	require.NoError(t, j.BeforeSave(nil))
	assert.Equal(t, "senior-go-engineer", j.Slug)
	assert.Nil(t, j.PublishedAt)

	j.Status = StatusPublished
	require.NoError(t, j.BeforeSave(nil))
	require.NotNil(t, j.PublishedAt)
	first := *j.PublishedAt

	j.Status = "closed"
	require.NoError(t, j.BeforeSave(nil))
	j.Status = StatusPublished
	require.NoError(t, j.BeforeSave(nil))
	assert.True(t, first.Equal(*j.PublishedAt))
}

func TestNewsletterSubscriber_BeforeSave(t *testing.T) {
	s := NewsletterSubscriber{Email: "reader@example.com"}
	s.SetDefaults()
	require.NoError(t, s.BeforeSave(nil))
	assert.Nil(t, s.UnsubscribedAt)

	s.IsActive = false
	require.NoError(t, s.BeforeSave(nil))
	assert.NotNil(t, s.UnsubscribedAt)

	s.IsActive = true
	require.NoError(t, s.BeforeSave(nil))
	assert.Nil(t, s.UnsubscribedAt)
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-02-29"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back.Time))

	assert.Error(t, json.Unmarshal([]byte(`"29/02/2024"`), &back))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-06-01 00:00:00"))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan(time.Date(2023, 12, 31, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2023-12-31", d.String())

	assert.Error(t, d.Scan(42))
}

func TestChoices(t *testing.T) {
	assert.Equal(t, "Administrator", UserRoles.Label("admin"))
	assert.Equal(t, "unknown", UserRoles.Label("unknown"))
	assert.Contains(t, JobStatuses.Values(), "closed")

	c := Client{Name: "Acme", Email: "info@acme.test", Phone: "+251911000000", ClientType: "conglomerate"}
	assert.Error(t, c.Validate())
	c.ClientType = "enterprise"
	assert.NoError(t, c.Validate())
}

func TestClient_ActiveProjects(t *testing.T) {
	c := Client{Projects: []Project{
		{Status: "planning"},
		{Status: "in_progress"},
		{Status: "testing"},
		{Status: "completed"},
		{Status: "on_hold"},
	}}
	assert.Equal(t, 5, c.TotalProjects())
	assert.Equal(t, 3, c.ActiveProjects())
}
