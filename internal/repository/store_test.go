package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sheba-admin/internal/db/dbtest"
	"sheba-admin/internal/model"
)

func seedUser(t *testing.T, gdb *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: "x"}
	u.SetDefaults()
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func seedClient(t *testing.T, gdb *gorm.DB, name, clientType string, active bool) *model.Client {
	t.Helper()
	c := &model.Client{Name: name, Email: "hello@" + name + ".test", Phone: "0911", ClientType: clientType, IsActive: active}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func seedJob(t *testing.T, gdb *gorm.DB, poster *model.User, title, department, status string) *model.JobPosting {
	t.Helper()
	j := &model.JobPosting{Title: title, Location: "Addis Ababa", JobType: "full_time", ExperienceLevel: "mid", Description: "d"}
	j.SetDefaults()
	j.Department = department
	j.Status = status
	j.PostedByID = poster.ID
	require.NoError(t, gdb.Create(j).Error)
	return j
}

var clientSpec = ListSpec{
	Filters:         map[string]string{"client_type": "client_type", "is_active": "is_active"},
	Kinds:           map[string]FilterKind{"is_active": FilterBool},
	Search:          []string{"name", "email", "company"},
	Ordering:        map[string]string{"name": "name", "created_at": "created_at"},
	DefaultOrdering: []string{"-created_at"},
}

func TestStore_ListFiltersSearchesAndPaginates(t *testing.T) {
	gdb := dbtest.New(t)
	store := NewStore[model.Client](gdb)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		seedClient(t, gdb, fmt.Sprintf("client%02d", i), "startup", i%5 != 0)
	}
	seedClient(t, gdb, "zemen", "enterprise", true)

	page, err := store.List(ctx, clientSpec, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(26), page.Count)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Results, DefaultPageSize)

	page, err = store.List(ctx, clientSpec, ListQuery{Page: 2, PageSize: 10, Ordering: []string{"name"}})
	require.NoError(t, err)
	require.Len(t, page.Results, 10)
	assert.Equal(t, "client10", page.Results[0].Name)

	page, err = store.List(ctx, clientSpec, ListQuery{Filters: map[string]string{"is_active": "false"}})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Count)

	page, err = store.List(ctx, clientSpec, ListQuery{Search: "ZEM"})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Count)
	assert.Equal(t, "enterprise", page.Results[0].ClientType)

	page, err = store.List(ctx, clientSpec, ListQuery{
		Filters:  map[string]string{"client_type": "startup", "unknown": "x"},
		Ordering: []string{"-name", "password"},
		PageSize: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Count)
	assert.Equal(t, MaxPageSize, page.PageSize)
	assert.Equal(t, "client24", page.Results[0].Name)
}

func TestStore_ListFilterKinds(t *testing.T) {
	gdb := dbtest.New(t)
	store := NewStore[model.WebsiteContent](gdb)
	ctx := context.Background()

	for _, section := range []string{"007", "7", "hero"} {
		require.NoError(t, gdb.Create(&model.WebsiteContent{Section: section, Title: "t", Content: "c", IsActive: true}).Error)
	}
	spec := ListSpec{
		Filters: map[string]string{"section": "section", "is_active": "is_active", "id": "id"},
		Kinds:   map[string]FilterKind{"is_active": FilterBool, "id": FilterInt},
	}

	tests := []struct {
		name    string
		filters map[string]string
		want    []string
	}{
		{name: "leading zeros are kept on text columns", filters: map[string]string{"section": "007"}, want: []string{"007"}},
		{name: "numeric looking text", filters: map[string]string{"section": "7"}, want: []string{"7"}},
		{name: "boolean column", filters: map[string]string{"is_active": "true"}, want: []string{"007", "7", "hero"}},
		{name: "integer column", filters: map[string]string{"id": "03"}, want: []string{"hero"}},
		{name: "malformed integer matches nothing", filters: map[string]string{"id": "abc"}, want: []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			page, err := store.List(ctx, spec, ListQuery{Filters: tc.filters, Ordering: []string{"id"}})
			require.NoError(t, err)
			got := make([]string, 0, len(page.Results))
			for _, r := range page.Results {
				got = append(got, r.Section)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStore_SaveOmitsColumns(t *testing.T) {
	gdb := dbtest.New(t)
	store := NewStore[model.JobPosting](gdb)
	ctx := context.Background()

	poster := seedUser(t, gdb, "poster")
	job := seedJob(t, gdb, poster, "Go Engineer", "engineering", model.StatusPublished)
	_, err := store.Increment(ctx, job.ID, "views", 5)
	require.NoError(t, err)

	job.Location = "Remote"
	require.NoError(t, store.Save(ctx, job, "views"))

	reloaded, err := store.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Remote", reloaded.Location)
	assert.Equal(t, int64(5), reloaded.Views)
}

func TestStore_IncrementIsAtomic(t *testing.T) {
	gdb := dbtest.New(t)
	store := NewStore[model.JobPosting](gdb)
	ctx := context.Background()

	poster := seedUser(t, gdb, "poster")
	job := seedJob(t, gdb, poster, "Go Engineer", "engineering", model.StatusPublished)

	const callers = 20
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Increment(ctx, job.ID, "views", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	reloaded, err := store.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(callers), reloaded.Views)

	views, err := store.Increment(ctx, job.ID, "views", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(callers+1), views)

	_, err = store.Increment(ctx, 9999, "views", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStore_GetOrInitReturnsSameRow(t *testing.T) {
	gdb := dbtest.New(t)
	store := NewStore[model.SystemSettings](gdb)
	ctx := context.Background()

	first, err := store.GetOrInit(ctx, model.DefaultSystemSettings())
	require.NoError(t, err)
	assert.Equal(t, uint(model.SingletonID), first.ID)
	assert.Equal(t, 587, first.SMTPPort)
	assert.True(t, first.SMTPUseTLS)
	assert.Equal(t, "weekly", first.BackupFrequency)

	first.SessionTimeout = 45
	require.NoError(t, store.Save(ctx, first))

	second, err := store.GetOrInit(ctx, model.DefaultSystemSettings())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 45, second.SessionTimeout)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_CountBy(t *testing.T) {
	gdb := dbtest.New(t)
	store := NewStore[model.Client](gdb)
	ctx := context.Background()

	seedClient(t, gdb, "a", "startup", true)
	seedClient(t, gdb, "b", "startup", true)
	seedClient(t, gdb, "c", "ngo", false)

	counts, err := store.CountBy(ctx, "client_type")
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"startup": 2, "ngo": 1}, counts)

	counts, err = store.CountBy(ctx, "client_type", func(tx *gorm.DB) *gorm.DB {
		return tx.Where("is_active = ?", true)
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"startup": 2}, counts)
}

func TestStore_DeleteHonoursScopes(t *testing.T) {
	gdb := dbtest.New(t)
	store := NewStore[model.Notification](gdb)
	ctx := context.Background()

	owner := seedUser(t, gdb, "owner")
	other := seedUser(t, gdb, "other")
	n := &model.Notification{Title: "t", Message: "m", NotificationType: "info", RecipientID: owner.ID}
	require.NoError(t, store.Create(ctx, n))

	onlyOther := func(tx *gorm.DB) *gorm.DB { return tx.Where("recipient_id = ?", other.ID) }
	assert.ErrorIs(t, store.Delete(ctx, n.ID, onlyOther), gorm.ErrRecordNotFound)

	require.NoError(t, store.Delete(ctx, n.ID))
	_, err := store.FindByID(ctx, n.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApplicationRepository_SubmitRejectsDuplicate(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewApplicationRepository(gdb)
	jobs := NewStore[model.JobPosting](gdb)
	ctx := context.Background()

	poster := seedUser(t, gdb, "hr")
	job := seedJob(t, gdb, poster, "Designer", "design", model.StatusPublished)

	newApp := func() *model.JobApplication {
		a := &model.JobApplication{JobID: job.ID, FirstName: "Hana", LastName: "Girma", Email: "hana@example.com", Phone: "0911"}
		a.SetDefaults()
		return a
	}

	require.NoError(t, repo.Submit(ctx, newApp()))
	err := repo.Submit(ctx, newApp())
	assert.True(t, IsDuplicate(err))

	reloaded, err := jobs.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reloaded.ApplicationsCount)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestProjectRepository_ReplaceAssignees(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewProjectRepository(gdb)
	ctx := context.Background()

	a := seedUser(t, gdb, "a")
	b := seedUser(t, gdb, "b")
	c := seedUser(t, gdb, "c")
	client := seedClient(t, gdb, "acme", "startup", true)

	p := &model.Project{Name: "Portal", ClientID: client.ID}
	p.SetDefaults()
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.ReplaceAssignees(ctx, p, []uint{a.ID, b.ID}))
	require.NoError(t, repo.ReplaceAssignees(ctx, p, []uint{c.ID}))

	loaded, err := repo.FindByID(ctx, p.ID, func(tx *gorm.DB) *gorm.DB { return tx.Preload("AssignedTo") })
	require.NoError(t, err)
	require.Len(t, loaded.AssignedTo, 1)
	assert.Equal(t, c.ID, loaded.AssignedTo[0].ID)

	require.NoError(t, repo.ReplaceAssignees(ctx, p, nil))
	loaded, err = repo.FindByID(ctx, p.ID, func(tx *gorm.DB) *gorm.DB { return tx.Preload("AssignedTo") })
	require.NoError(t, err)
	assert.Empty(t, loaded.AssignedTo)
}

func TestParseOrdering(t *testing.T) {
	assert.Nil(t, ParseOrdering(""))
	assert.Equal(t, []string{"-created_at", "name"}, ParseOrdering(" -created_at , name,"))
}
