package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheba-admin/internal/db/dbtest"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

func TestProjectService_CreatorIsAssignedByDefault(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewProjectService(gdb, nil)
	manager := seedUser(t, gdb, "meron", policy.RoleManager)
	client := seedClient(t, gdb, "abay")
	ctx := context.Background()

	project, err := svc.Projects.Create(ctx, principalOf(manager), func(p *model.Project) {
		p.Name = "Booking portal"
		p.ClientID = client.ID
	})
	require.NoError(t, err)
	assert.Equal(t, "planning", project.Status)
	require.Len(t, project.AssignedTo, 1)
	assert.Equal(t, manager.ID, project.AssignedTo[0].ID)

	other := seedUser(t, gdb, "dawit", policy.RoleDeveloper)
	updated, err := svc.Projects.Update(ctx, principalOf(manager), project.ID, func(p *model.Project) {
		p.AssignedToIDs = []uint{other.ID}
	})
	require.NoError(t, err)
	require.Len(t, updated.AssignedTo, 1)
	assert.Equal(t, other.ID, updated.AssignedTo[0].ID)

	cleared, err := svc.Projects.Update(ctx, principalOf(manager), project.ID, func(p *model.Project) {
		p.AssignedToIDs = []uint{}
	})
	require.NoError(t, err)
	assert.Empty(t, cleared.AssignedTo)
}

func TestProjectService_RejectsEndBeforeStart(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewProjectService(gdb, nil)
	admin := seedUser(t, gdb, "admin", policy.RoleAdmin)
	client := seedClient(t, gdb, "abay")

	start, end := dayOffset(10), dayOffset(0)
	_, err := svc.Projects.Create(context.Background(), adminPrincipal(admin), func(p *model.Project) {
		p.Name = "Backwards"
		p.ClientID = client.ID
		p.StartDate = &start
		p.EndDate = &end
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")
}

func TestProjectService_PublicSeesCompletedOnly(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewProjectService(gdb, nil)
	client := seedClient(t, gdb, "abay")
	done := seedProject(t, gdb, client, "shipped", "completed")
	running := seedProject(t, gdb, client, "ongoing", "in_progress")
	ctx := context.Background()

	page, err := svc.PublicList(ctx, repository.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, done.ID, page.Results[0].ID)

	got, err := svc.PublicGet(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped", got.Name)
	require.NotNil(t, got.Client)

	_, err = svc.PublicGet(ctx, running.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProjectService_ListForProject(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewProjectService(gdb, nil)
	admin := seedUser(t, gdb, "admin", policy.RoleAdmin)
	client := seedClient(t, gdb, "abay")
	first := seedProject(t, gdb, client, "first", "in_progress")
	second := seedProject(t, gdb, client, "second", "in_progress")
	ctx := context.Background()
	p := adminPrincipal(admin)

	for _, tc := range []struct {
		project uint
		title   string
		status  string
	}{
		{first.ID, "schema", "completed"},
		{first.ID, "api", "in_progress"},
		{second.ID, "design", "todo"},
	} {
		_, err := svc.Tasks.Create(ctx, p, func(task *model.ProjectTask) {
			task.ProjectID = tc.project
			task.Title = tc.title
			task.Status = tc.status
		})
		require.NoError(t, err)
	}

	page, err := svc.ListForProject(ctx, p, first.ID, repository.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)

	page, err = svc.ListForProject(ctx, p, first.ID, repository.ListQuery{Filters: map[string]string{"status": "completed"}})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "schema", page.Results[0].Title)

	page, err = svc.ListForProject(ctx, p, 999, repository.ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Count)
}

func TestProjectService_Stats(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewProjectService(gdb, nil)
	client := seedClient(t, gdb, "abay")
	seedProject(t, gdb, client, "a", "completed")
	seedProject(t, gdb, client, "b", "in_progress")
	seedProject(t, gdb, client, "c", "on_hold")
	seedProject(t, gdb, client, "d", "planning")

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalProjects)
	assert.Equal(t, int64(1), stats.ActiveProjects)
	assert.Equal(t, int64(1), stats.CompletedProjects)
	assert.Equal(t, int64(1), stats.OnHoldProjects)
	assert.Equal(t, 25.0, stats.CompletionRate)
}
