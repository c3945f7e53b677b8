package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/datatypes"
)

// SingletonID is the primary key of every settings row.
const SingletonID = 1

// CompanySettings holds the public company profile. Exactly one row exists.
type CompanySettings struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Name               string    `json:"name" gorm:"size:200;not null"`
	Tagline            string    `json:"tagline" gorm:"size:300"`
	Description        string    `json:"description" gorm:"type:text"`
	Email              string    `json:"email" gorm:"size:254"`
	Phone              string    `json:"phone" gorm:"size:20"`
	Address            string    `json:"address" gorm:"type:text"`
	Website            string    `json:"website" gorm:"size:200"`
	Logo               string    `json:"logo" gorm:"size:255"`
	Favicon            string    `json:"favicon" gorm:"size:255"`
	FacebookURL        string    `json:"facebook_url" gorm:"size:200"`
	TwitterURL         string    `json:"twitter_url" gorm:"size:200"`
	LinkedinURL        string    `json:"linkedin_url" gorm:"size:200"`
	InstagramURL       string    `json:"instagram_url" gorm:"size:200"`
	GithubURL          string    `json:"github_url" gorm:"size:200"`
	TaxID              string    `json:"tax_id" gorm:"size:50"`
	RegistrationNumber string    `json:"registration_number" gorm:"size:50"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultCompanySettings is the row created on first access.
func DefaultCompanySettings() *CompanySettings {
	return &CompanySettings{Name: "Sheba Software"}
}

// Validate checks field constraints.
func (c *CompanySettings) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Tagline, validation.Length(0, 300)),
		validation.Field(&c.Email, validation.Length(0, 254), is.EmailFormat),
		validation.Field(&c.Phone, validation.Length(0, 20)),
		validation.Field(&c.Website, validation.Length(0, 200), is.URL),
		validation.Field(&c.FacebookURL, validation.Length(0, 200), is.URL),
		validation.Field(&c.TwitterURL, validation.Length(0, 200), is.URL),
		validation.Field(&c.LinkedinURL, validation.Length(0, 200), is.URL),
		validation.Field(&c.InstagramURL, validation.Length(0, 200), is.URL),
		validation.Field(&c.GithubURL, validation.Length(0, 200), is.URL),
		validation.Field(&c.TaxID, validation.Length(0, 50)),
		validation.Field(&c.RegistrationNumber, validation.Length(0, 50)),
	)
}

// SystemSettings holds operational configuration. Exactly one row exists.
type SystemSettings struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	SMTPHost           string    `json:"smtp_host" gorm:"size:100"`
	SMTPPort           int       `json:"smtp_port" gorm:"not null"`
	SMTPUsername       string    `json:"smtp_username" gorm:"size:100"`
	SMTPPassword       string    `json:"-" gorm:"size:100"`
	SMTPUseTLS         bool      `json:"smtp_use_tls" gorm:"not null"`
	AutoBackupEnabled  bool      `json:"auto_backup_enabled" gorm:"not null"`
	BackupFrequency    string    `json:"backup_frequency" gorm:"size:20;not null"`
	SessionTimeout     int       `json:"session_timeout" gorm:"not null"`
	MaxLoginAttempts   int       `json:"max_login_attempts" gorm:"not null"`
	PasswordExpiryDays int       `json:"password_expiry_days" gorm:"not null"`
	APIRateLimit       int       `json:"api_rate_limit" gorm:"not null"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DefaultSystemSettings is the row created on first access.
func DefaultSystemSettings() *SystemSettings {
	return &SystemSettings{
		SMTPPort:           587,
		SMTPUseTLS:         true,
		BackupFrequency:    "weekly",
		SessionTimeout:     30,
		MaxLoginAttempts:   5,
		PasswordExpiryDays: 90,
		APIRateLimit:       1000,
	}
}

// Validate checks field constraints.
func (s *SystemSettings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.SMTPHost, validation.Length(0, 100)),
		validation.Field(&s.SMTPPort, validation.Min(1), validation.Max(65535)),
		validation.Field(&s.SMTPUsername, validation.Length(0, 100)),
		validation.Field(&s.SMTPPassword, validation.Length(0, 100)),
		validation.Field(&s.BackupFrequency, validation.Required, BackupFrequencies.Rule()),
		validation.Field(&s.SessionTimeout, validation.Min(1)),
		validation.Field(&s.MaxLoginAttempts, validation.Min(1)),
		validation.Field(&s.PasswordExpiryDays, validation.Min(0)),
		validation.Field(&s.APIRateLimit, validation.Min(0)),
	)
}

// UserPermission grants or denies one capability to a user.
type UserPermission struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_permission"`
	User        *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Permission  string    `json:"permission" gorm:"size:50;not null;uniqueIndex:idx_user_permission"`
	Granted     bool      `json:"granted" gorm:"not null"`
	GrantedByID *uint     `json:"granted_by_id" gorm:"index"`
	GrantedBy   *User     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time `json:"created_at"`
}

// SetDefaults fills the values a new grant starts with.
func (p *UserPermission) SetDefaults() {
	p.Granted = true
}

// Validate checks field constraints.
func (p *UserPermission) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.UserID, validation.Required),
		validation.Field(&p.Permission, validation.Required, Permissions.Rule()),
	)
}

// SystemLog is an operational log line kept for administrators.
type SystemLog struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	Level     string            `json:"level" gorm:"size:20;not null;index"`
	Message   string            `json:"message" gorm:"type:text;not null"`
	Module    string            `json:"module" gorm:"size:100;index"`
	UserID    *uint             `json:"user_id" gorm:"index"`
	User      *User             `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	IPAddress string            `json:"ip_address" gorm:"size:45"`
	ExtraData datatypes.JSONMap `json:"extra_data"`
	CreatedAt time.Time         `json:"created_at" gorm:"index"`
}
