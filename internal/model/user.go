package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// User represents an authenticated staff member or client of the admin backend.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email        string     `json:"email" gorm:"size:254"`
	FirstName    string     `json:"first_name" gorm:"size:150"`
	LastName     string     `json:"last_name" gorm:"size:150"`
	Role         string     `json:"role" gorm:"size:20;not null;index"`
	Phone        string     `json:"phone" gorm:"size:20"`
	ProfileImage string     `json:"profile_image" gorm:"size:255"`
	IsActive     bool       `json:"is_active" gorm:"not null"`
	IsStaff      bool       `json:"is_staff" gorm:"not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SetDefaults fills the values a new user starts with.
func (u *User) SetDefaults() {
	u.Role = "client"
	u.IsActive = true
}

// FullName joins first and last name, trimming the result.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validate checks field constraints.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Username, validation.Required, validation.Length(1, 150)),
		validation.Field(&u.Email, validation.Length(0, 254), is.EmailFormat),
		validation.Field(&u.FirstName, validation.Length(0, 150)),
		validation.Field(&u.LastName, validation.Length(0, 150)),
		validation.Field(&u.Role, validation.Required, UserRoles.Rule()),
		validation.Field(&u.Phone, validation.Length(0, 20)),
		validation.Field(&u.ProfileImage, validation.Length(0, 255)),
	)
}

// UserSession records one login of a user.
type UserSession struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"user_id" gorm:"not null;index"`
	User       *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SessionKey string     `json:"session_key" gorm:"uniqueIndex;size:64;not null"`
	LoginTime  time.Time  `json:"login_time" gorm:"autoCreateTime"`
	LogoutTime *time.Time `json:"logout_time"`
	IPAddress  string     `json:"ip_address" gorm:"size:45"`
	UserAgent  string     `json:"user_agent" gorm:"type:text"`
	IsActive   bool       `json:"is_active" gorm:"not null"`
}

// End marks the session as logged out at t.
func (s *UserSession) End(t time.Time) {
	s.IsActive = false
	s.LogoutTime = &t
}
