package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheba-admin/internal/db/dbtest"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
)

func TestDashboardService_ChartFiltersTypeAndWindow(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewDashboardService(gdb, nil, nil, time.Minute)
	ctx := context.Background()

	for _, m := range []model.DashboardMetric{
		{MetricType: "projects_total", Value: decimal.NewFromInt(3), Date: dayOffset(-2)},
		{MetricType: "projects_total", Value: decimal.NewFromInt(1), Date: dayOffset(-10)},
		{MetricType: "projects_total", Value: decimal.NewFromInt(9), Date: dayOffset(-60)},
		{MetricType: "revenue_monthly", Value: decimal.NewFromInt(1000), Date: dayOffset(-1)},
	} {
		require.NoError(t, gdb.Create(&m).Error)
	}

	chart, err := svc.Chart(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, chart, 2)
	assert.True(t, chart[0].Value.Equal(decimal.NewFromInt(1)))
	assert.True(t, chart[1].Value.Equal(decimal.NewFromInt(3)))

	chart, err = svc.Chart(ctx, "projects_total", 5)
	require.NoError(t, err)
	assert.Len(t, chart, 1)

	chart, err = svc.Chart(ctx, "revenue_monthly", 30)
	require.NoError(t, err)
	assert.Len(t, chart, 1)
}

func TestDashboardService_MetricIsUniquePerDay(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewDashboardService(gdb, nil, nil, time.Minute)
	admin := seedUser(t, gdb, "admin", policy.RoleAdmin)
	ctx := context.Background()
	day := dayOffset(0)

	create := func(m *model.DashboardMetric) {
		m.MetricType = "clients_total"
		m.Value = decimal.NewFromInt(4)
		m.Date = day
	}
	_, err := svc.Metrics.Create(ctx, adminPrincipal(admin), create)
	require.NoError(t, err)

	_, err = svc.Metrics.Create(ctx, adminPrincipal(admin), create)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "non_field_errors")
}

func TestDashboardService_RecentIsNewestFirstAndBounded(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewDashboardService(gdb, nil, nil, time.Minute)
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		row := model.ActivityLog{
			Action:      "create",
			ModelName:   "Client",
			Description: fmt.Sprintf("Created Client #%d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, gdb.Create(&row).Error)
	}
	ctx := context.Background()

	rows, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, "Created Client #14", rows[0].Description)

	rows, err = svc.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = svc.Recent(ctx, 500)
	require.NoError(t, err)
	assert.Len(t, rows, 15)
}

func TestDashboardService_OverviewCounts(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewDashboardService(gdb, nil, nil, time.Minute)
	abay := seedClient(t, gdb, "abay")
	zemen := seedClient(t, gdb, "zemen")
	require.NoError(t, gdb.Model(zemen).Update("is_active", false).Error)
	seedProject(t, gdb, abay, "one", "completed")
	seedProject(t, gdb, abay, "two", "in_progress")
	require.NoError(t, gdb.Create(&model.ContactSubmission{
		Name: "Abel", Email: "abel@example.com", Subject: "Quote", Message: "Hello", Status: "new",
	}).Error)
	require.NoError(t, gdb.Create(&model.ActivityLog{Action: "login", Description: "Logged in"}).Error)

	o, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), o.Projects.Total)
	assert.Equal(t, int64(1), o.Projects.Active)
	assert.Equal(t, int64(1), o.Projects.Completed)
	assert.Equal(t, 50.0, o.Projects.CompletionRate)
	assert.Equal(t, int64(2), o.Clients.Total)
	assert.Equal(t, int64(1), o.Clients.Active)
	assert.Equal(t, int64(1), o.Communication.PendingContacts)
	assert.Equal(t, int64(1), o.Activity.RecentActivities)

	combined, err := svc.Combined(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, combined.RecentActivities, 1)
	assert.Empty(t, combined.MetricsChart)
}
