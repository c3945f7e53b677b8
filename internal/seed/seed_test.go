package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"sheba-admin/internal/db/dbtest"
	"sheba-admin/internal/model"
)

func testOptions() Options {
	return Options{AdminUsername: "admin", AdminEmail: "admin@example.com", AdminPassword: "admin12345"}
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	gdb := dbtest.New(t)
	s := New(gdb, nil)
	ctx := context.Background()

	first, err := s.Run(ctx, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 5, first.Created)
	assert.Zero(t, first.Skipped)

	second, err := s.Run(ctx, testOptions())
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, 5, second.Skipped)

	var users int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestSeeder_CreatesUsableAdmin(t *testing.T) {
	gdb := dbtest.New(t)
	_, err := New(gdb, nil).Run(context.Background(), testOptions())
	require.NoError(t, err)

	var admin model.User
	require.NoError(t, gdb.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, "admin", admin.Role)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin12345")))

	var job model.JobPosting
	require.NoError(t, gdb.Where("slug = ?", "backend-engineer").First(&job).Error)
	assert.Equal(t, admin.ID, job.PostedByID)
	assert.NotNil(t, job.PublishedAt)

	var assigned int64
	require.NoError(t, gdb.Table("project_assignments").Count(&assigned).Error)
	assert.Equal(t, int64(1), assigned)
}
