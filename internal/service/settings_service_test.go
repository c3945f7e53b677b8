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
)

func TestSettingsService_CompanyIsSingleton(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewSettingsService(gdb, nil, nil)
	ctx := context.Background()

	first, err := svc.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(model.SingletonID), first.ID)
	assert.Equal(t, "Sheba Software", first.Name)

	updated, err := svc.UpdateCompany(ctx, func(c *model.CompanySettings) {
		c.Tagline = "Software for growing businesses"
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	again, err := svc.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Software for growing businesses", again.Tagline)

	var rows int64
	require.NoError(t, gdb.Model(&model.CompanySettings{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestSettingsService_UpdateValidates(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewSettingsService(gdb, nil, nil)

	_, err := svc.UpdateCompany(context.Background(), func(c *model.CompanySettings) {
		c.Name = ""
		c.Website = "not a url"
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "website")
}

func TestSettingsService_SystemDefaults(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewSettingsService(gdb, nil, nil)

	sys, err := svc.System(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 587, sys.SMTPPort)
	assert.Equal(t, "weekly", sys.BackupFrequency)
}

func TestSettingsService_UserPermissions(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewSettingsService(gdb, nil, nil)
	admin := seedUser(t, gdb, "admin", policy.RoleAdmin)
	dev := seedUser(t, gdb, "dawit", policy.RoleDeveloper)
	other := seedUser(t, gdb, "selam", policy.RoleDeveloper)
	ctx := context.Background()

	for _, grant := range []struct {
		permission string
		granted    bool
	}{
		{"projects.view", true},
		{"dashboard.view", true},
		{"projects.delete", false},
	} {
		_, err := svc.Permissions.Create(ctx, adminPrincipal(admin), func(p *model.UserPermission) {
			p.UserID = dev.ID
			p.Permission = grant.permission
			p.Granted = grant.granted
		})
		require.NoError(t, err)
	}

	_, err := svc.Permissions.Create(ctx, adminPrincipal(admin), func(p *model.UserPermission) {
		p.UserID = dev.ID
		p.Permission = "projects.view"
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "non_field_errors")

	own, err := svc.UserPermissions(ctx, principalOf(dev), dev.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, "dashboard.view", own[0].Permission)
	require.NotNil(t, own[0].GrantedByID)
	assert.Equal(t, admin.ID, *own[0].GrantedByID)

	byAdmin, err := svc.UserPermissions(ctx, adminPrincipal(admin), dev.ID)
	require.NoError(t, err)
	assert.Len(t, byAdmin, 2)

	_, err = svc.UserPermissions(ctx, principalOf(other), dev.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSettingsService_HealthWithoutCache(t *testing.T) {
	gdb := dbtest.New(t)
	svc := NewSettingsService(gdb, nil, nil)

	h := svc.Health(context.Background())
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "connected", h.Database)
	assert.Equal(t, "disabled", h.Cache)
}
