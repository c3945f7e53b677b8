package projection

import (
	"time"

	"sheba-admin/internal/model"
)

type PermissionView struct {
	ID                uint         `json:"id"`
	User              *UserProfile `json:"user"`
	UserID            uint         `json:"user_id"`
	Permission        string       `json:"permission"`
	PermissionDisplay string       `json:"permission_display"`
	Granted           bool         `json:"granted"`
	GrantedBy         *UserProfile `json:"granted_by"`
	GrantedByID       *uint        `json:"granted_by_id"`
	CreatedAt         time.Time    `json:"created_at"`
}

func NewPermissionView(p *model.UserPermission) PermissionView {
	return PermissionView{
		ID:                p.ID,
		User:              NewUserProfile(p.User),
		UserID:            p.UserID,
		Permission:        p.Permission,
		PermissionDisplay: model.Permissions.Label(p.Permission),
		Granted:           p.Granted,
		GrantedBy:         NewUserProfile(p.GrantedBy),
		GrantedByID:       p.GrantedByID,
		CreatedAt:         p.CreatedAt,
	}
}

type SystemLogView struct {
	ID           uint                   `json:"id"`
	Level        string                 `json:"level"`
	LevelDisplay string                 `json:"level_display"`
	Message      string                 `json:"message"`
	Module       string                 `json:"module"`
	User         *UserProfile           `json:"user"`
	UserID       *uint                  `json:"user_id"`
	IPAddress    string                 `json:"ip_address"`
	ExtraData    map[string]interface{} `json:"extra_data"`
	CreatedAt    time.Time              `json:"created_at"`
}

func NewSystemLogView(l *model.SystemLog) SystemLogView {
	extra := map[string]interface{}(l.ExtraData)
	if extra == nil {
		extra = map[string]interface{}{}
	}
	return SystemLogView{
		ID:           l.ID,
		Level:        l.Level,
		LevelDisplay: model.LogLevels.Label(l.Level),
		Message:      l.Message,
		Module:       l.Module,
		User:         NewUserProfile(l.User),
		UserID:       l.UserID,
		IPAddress:    l.IPAddress,
		ExtraData:    extra,
		CreatedAt:    l.CreatedAt,
	}
}

type PermissionInput struct {
	UserID      *uint          `json:"user_id" validate:"required"`
	Permission  *string        `json:"permission" validate:"required"`
	Granted     *bool          `json:"granted"`
	GrantedByID Nullable[uint] `json:"granted_by_id"`
}

func (in PermissionInput) Apply(p *model.UserPermission) {
	set(&p.UserID, in.UserID)
	set(&p.Permission, in.Permission)
	set(&p.Granted, in.Granted)
	setNullable(&p.GrantedByID, in.GrantedByID)
}

type CompanySettingsInput struct {
	Name               *string `json:"name" validate:"required,max=200"`
	Tagline            *string `json:"tagline" validate:"omitempty,max=300"`
	Description        *string `json:"description"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Phone              *string `json:"phone" validate:"omitempty,max=20"`
	Address            *string `json:"address"`
	Website            *string `json:"website" validate:"omitempty,url"`
	Logo               *string `json:"logo"`
	Favicon            *string `json:"favicon"`
	FacebookURL        *string `json:"facebook_url" validate:"omitempty,url"`
	TwitterURL         *string `json:"twitter_url" validate:"omitempty,url"`
	LinkedinURL        *string `json:"linkedin_url" validate:"omitempty,url"`
	InstagramURL       *string `json:"instagram_url" validate:"omitempty,url"`
	GithubURL          *string `json:"github_url" validate:"omitempty,url"`
	TaxID              *string `json:"tax_id" validate:"omitempty,max=50"`
	RegistrationNumber *string `json:"registration_number" validate:"omitempty,max=50"`
}

func (in CompanySettingsInput) Apply(c *model.CompanySettings) {
	set(&c.Name, in.Name)
	set(&c.Tagline, in.Tagline)
	set(&c.Description, in.Description)
	set(&c.Email, in.Email)
	set(&c.Phone, in.Phone)
	set(&c.Address, in.Address)
	set(&c.Website, in.Website)
	set(&c.Logo, in.Logo)
	set(&c.Favicon, in.Favicon)
	set(&c.FacebookURL, in.FacebookURL)
	set(&c.TwitterURL, in.TwitterURL)
	set(&c.LinkedinURL, in.LinkedinURL)
	set(&c.InstagramURL, in.InstagramURL)
	set(&c.GithubURL, in.GithubURL)
	set(&c.TaxID, in.TaxID)
	set(&c.RegistrationNumber, in.RegistrationNumber)
}

// SystemSettingsInput is the writable part of the operational settings. The
// SMTP password is accepted but never echoed back.
type SystemSettingsInput struct {
	SMTPHost           *string `json:"smtp_host" validate:"omitempty,max=100"`
	SMTPPort           *int    `json:"smtp_port" validate:"omitempty,min=1,max=65535"`
	SMTPUsername       *string `json:"smtp_username" validate:"omitempty,max=100"`
	SMTPPassword       *string `json:"smtp_password" validate:"omitempty,max=100"`
	SMTPUseTLS         *bool   `json:"smtp_use_tls"`
	AutoBackupEnabled  *bool   `json:"auto_backup_enabled"`
	BackupFrequency    *string `json:"backup_frequency" validate:"omitempty,oneof=daily weekly monthly"`
	SessionTimeout     *int    `json:"session_timeout" validate:"omitempty,min=1"`
	MaxLoginAttempts   *int    `json:"max_login_attempts" validate:"omitempty,min=1"`
	PasswordExpiryDays *int    `json:"password_expiry_days" validate:"omitempty,min=1"`
	APIRateLimit       *int    `json:"api_rate_limit" validate:"omitempty,min=1"`
}

func (in SystemSettingsInput) Apply(s *model.SystemSettings) {
	set(&s.SMTPHost, in.SMTPHost)
	set(&s.SMTPPort, in.SMTPPort)
	set(&s.SMTPUsername, in.SMTPUsername)
	set(&s.SMTPPassword, in.SMTPPassword)
	set(&s.SMTPUseTLS, in.SMTPUseTLS)
	set(&s.AutoBackupEnabled, in.AutoBackupEnabled)
	set(&s.BackupFrequency, in.BackupFrequency)
	set(&s.SessionTimeout, in.SessionTimeout)
	set(&s.MaxLoginAttempts, in.MaxLoginAttempts)
	set(&s.PasswordExpiryDays, in.PasswordExpiryDays)
	set(&s.APIRateLimit, in.APIRateLimit)
}
