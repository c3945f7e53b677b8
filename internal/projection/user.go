package projection

import (
	"time"

	"sheba-admin/internal/model"
)

// UserProfile is the public face of a user nested in other views. It never
// carries credentials.
type UserProfile struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUserProfile returns nil for a nil user.
func NewUserProfile(u *model.User) *UserProfile {
	if u == nil {
		return nil
	}
	return &UserProfile{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userProfiles(users []model.User) []UserProfile {
	out := make([]UserProfile, 0, len(users))
	for i := range users {
		out = append(out, *NewUserProfile(&users[i]))
	}
	return out
}

// fullName is the display name of a related user, empty when not loaded.
func fullName(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.FullName()
}

// UserView is the administrative view of a user account.
type UserView struct {
	UserProfile
	IsStaff   bool       `json:"is_staff"`
	LastLogin *time.Time `json:"last_login"`
}

func NewUserView(u *model.User) UserView {
	return UserView{UserProfile: *NewUserProfile(u), IsStaff: u.IsStaff, LastLogin: u.LastLogin}
}

// SessionView is one login session.
type SessionView struct {
	ID         uint         `json:"id"`
	User       *UserProfile `json:"user"`
	SessionKey string       `json:"session_key"`
	LoginTime  time.Time    `json:"login_time"`
	LogoutTime *time.Time   `json:"logout_time"`
	IPAddress  string       `json:"ip_address"`
	UserAgent  string       `json:"user_agent"`
	IsActive   bool         `json:"is_active"`
}

func NewSessionView(s *model.UserSession) SessionView {
	return SessionView{
		ID:         s.ID,
		User:       NewUserProfile(s.User),
		SessionKey: s.SessionKey,
		LoginTime:  s.LoginTime,
		LogoutTime: s.LogoutTime,
		IPAddress:  s.IPAddress,
		UserAgent:  s.UserAgent,
		IsActive:   s.IsActive,
	}
}

// UserInput is the writable part of a user account. Password is hashed by
// the user service and never stored as given.
type UserInput struct {
	Username     *string `json:"username" validate:"required,max=150"`
	Email        *string `json:"email" validate:"omitempty,email"`
	FirstName    *string `json:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" validate:"omitempty,max=150"`
	Role         *string `json:"role" validate:"omitempty,oneof=admin manager developer client"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	ProfileImage *string `json:"profile_image"`
	IsActive     *bool   `json:"is_active"`
	IsStaff      *bool   `json:"is_staff"`
	Password     *string `json:"password" validate:"omitempty,min=8"`
}

func (in UserInput) Apply(u *model.User) {
	set(&u.Username, in.Username)
	set(&u.Email, in.Email)
	set(&u.FirstName, in.FirstName)
	set(&u.LastName, in.LastName)
	set(&u.Role, in.Role)
	set(&u.Phone, in.Phone)
	set(&u.ProfileImage, in.ProfileImage)
	set(&u.IsActive, in.IsActive)
	set(&u.IsStaff, in.IsStaff)
}

// PasswordValue returns the submitted password or "".
func (in UserInput) PasswordValue() string {
	if in.Password == nil {
		return ""
	}
	return *in.Password
}

// ProfileInput is what users may change on their own profile. Username and
// role are read-only here.
type ProfileInput struct {
	Email        *string `json:"email" validate:"omitempty,email"`
	FirstName    *string `json:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" validate:"omitempty,max=150"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	ProfileImage *string `json:"profile_image"`
}

func (in ProfileInput) Apply(u *model.User) {
	set(&u.Email, in.Email)
	set(&u.FirstName, in.FirstName)
	set(&u.LastName, in.LastName)
	set(&u.Phone, in.Phone)
	set(&u.ProfileImage, in.ProfileImage)
}
