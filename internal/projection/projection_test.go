package projection

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"sheba-admin/internal/model"
)

func TestNullable_DistinguishesAbsentAndNull(t *testing.T) {
	var in TaskInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Wire CI"}`), &in))
	assert.False(t, in.AssignedToID.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to_id":null}`), &in))
	assert.True(t, in.AssignedToID.Set)
	assert.False(t, in.AssignedToID.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to_id":7}`), &in))
	assert.True(t, in.AssignedToID.Valid)
	assert.Equal(t, uint(7), in.AssignedToID.Value)
}

func TestTaskInput_ApplyKeepsAbsentFields(t *testing.T) {
	assignee := uint(4)
	task := &model.ProjectTask{Title: "Old", Status: "review", AssignedToID: &assignee}

	var in TaskInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New"}`), &in))
	in.Apply(task)

	assert.Equal(t, "New", task.Title)
	assert.Equal(t, "review", task.Status)
	require.NotNil(t, task.AssignedToID)
	assert.Equal(t, uint(4), *task.AssignedToID)

	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to_id":null}`), &in))
	in.Apply(task)
	assert.Nil(t, task.AssignedToID)
}

func TestProjectInput_AssignedToIDsIsFullReplace(t *testing.T) {
	p := &model.Project{}

	var absent ProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Portal"}`), &absent))
	absent.Apply(p)
	assert.Nil(t, p.AssignedToIDs)

	var empty ProjectInput
	require.NoError(t, json.Unmarshal([]byte(`{"assigned_to_ids":[]}`), &empty))
	empty.Apply(p)
	assert.NotNil(t, p.AssignedToIDs)
	assert.Empty(t, p.AssignedToIDs)
}

func TestJobInput_PublishedAtOnlyOnFirstPublication(t *testing.T) {
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	job := &model.JobPosting{PublishedAt: &first}

	JobInput{PublishedAt: Of(first.Add(48 * time.Hour))}.Apply(job)
	assert.Equal(t, first, *job.PublishedAt)

	JobInput{PublishedAt: Nullable[time.Time]{Set: true}}.Apply(job)
	assert.Equal(t, first, *job.PublishedAt)
}

func TestNewJobSummary_ComputedFields(t *testing.T) {
	lo, hi := decimal.NewFromInt(25000), decimal.NewFromInt(40000)
	job := &model.JobPosting{
		Title:          "Backend Engineer",
		SalaryMin:      &lo,
		SalaryMax:      &hi,
		SalaryCurrency: "ETB",
		Status:         model.StatusPublished,
		PostedBy:       &model.User{FirstName: "Abebe", LastName: ""},
	}

	s := NewJobSummary(job)
	assert.Equal(t, "25,000 - 40,000 ETB", s.SalaryRange)
	assert.Equal(t, "Abebe", s.PostedByName)

	v := NewJobView(job)
	assert.True(t, v.IsPublished)
	assert.Equal(t, []string{}, v.Requirements)
}

func TestNewApplicationView_FullNameNotTrimmed(t *testing.T) {
	v := NewApplicationView(&model.JobApplication{FirstName: "Hana", LastName: ""})
	assert.Equal(t, "Hana ", v.FullName)
	assert.Nil(t, v.Job)
}

func TestNewPublicProject(t *testing.T) {
	start := model.NewDate(2025, time.January, 1)
	end := model.NewDate(2025, time.March, 2)
	p := &model.Project{
		Name:         "Clinic portal",
		Status:       "completed",
		StartDate:    &start,
		EndDate:      &end,
		Client:       &model.Client{Name: "Tsion", Company: "Tsion Clinics"},
		AssignedTo:   []model.User{{ID: 1}, {ID: 2}},
		Tasks:        []model.ProjectTask{{Status: "completed"}, {Status: "todo"}},
		Technologies: datatypes.JSONSlice[string]{"go", "react"},
	}

	v := NewPublicProject(p)
	require.NotNil(t, v.DurationDays)
	assert.Equal(t, 60, *v.DurationDays)
	assert.Equal(t, 2, v.TeamSize)
	assert.Equal(t, 2, v.TasksCount)
	assert.Equal(t, 1, v.CompletedTasksCount)
	assert.Equal(t, "Tsion Clinics", v.ClientCompany)

	p.EndDate = nil
	assert.Nil(t, NewPublicProject(p).DurationDays)
}

func TestUserProfile_OmitsCredentials(t *testing.T) {
	data, err := json.Marshal(NewUserView(&model.User{Username: "admin", PasswordHash: "secret-hash"}))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-hash")
	assert.Contains(t, string(data), `"is_staff":false`)
}

func TestChoiceDisplays(t *testing.T) {
	assert.Equal(t, "Monthly Revenue", NewMetricView(&model.DashboardMetric{MetricType: "revenue_monthly"}).MetricTypeDisplay)
	assert.Equal(t, "Delete", NewActivityView(&model.ActivityLog{Action: "delete"}).ActionDisplay)
	assert.Equal(t, "Critical", NewSystemLogView(&model.SystemLog{Level: "critical"}).LevelDisplay)
	assert.Equal(t, "View Dashboard", NewPermissionView(&model.UserPermission{Permission: "dashboard.view"}).PermissionDisplay)
}
