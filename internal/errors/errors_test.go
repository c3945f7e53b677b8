package errors

import (
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"gorm not found wrapped", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate key", gorm.ErrDuplicatedKey, http.StatusConflict, "CONFLICT"},
		{"foreign key", gorm.ErrForeignKeyViolated, http.StatusBadRequest, "INVALID_REFERENCE"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"validation", NewValidationError("email", "bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"echo not found", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"echo method", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, he.StatusCode)
			assert.Equal(t, tt.wantCode, he.Code)
		})
	}
}

func TestMapErrorToHTTP_ValidationFields(t *testing.T) {
	err := NewValidationError("email", "already applied").Add("email", "second")
	he := MapErrorToHTTP(fmt.Errorf("submit: %w", err))

	require.Equal(t, http.StatusBadRequest, he.StatusCode)
	assert.Equal(t, []string{"already applied", "second"}, he.ToErrorResponse().Fields["email"])
}

type sample struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (s sample) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Required),
		validation.Field(&s.Status, validation.In("draft", "published")),
	)
}

func TestFromOzzo(t *testing.T) {
	err := FromOzzo(sample{Status: "bogus"}.Validate())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "status")
	assert.Nil(t, FromOzzo(sample{Title: "ok", Status: "draft"}.Validate()))
}

func TestFromValidator(t *testing.T) {
	v := validator.New()
	type login struct {
		Username string `validate:"required"`
	}

	err := FromValidator(v.Struct(login{}))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"this field is required"}, verr.Fields["Username"])
}
