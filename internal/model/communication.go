package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"
)

// ContactSubmission is a message sent through the public contact form.
type ContactSubmission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:254;not null"`
	Phone        string    `json:"phone" gorm:"size:20"`
	Subject      string    `json:"subject" gorm:"size:200;not null"`
	Message      string    `json:"message" gorm:"type:text;not null"`
	Status       string    `json:"status" gorm:"size:20;not null;index"`
	AssignedToID *uint     `json:"assigned_to_id" gorm:"index"`
	AssignedTo   *User     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Response     string    `json:"response" gorm:"type:text"`
	IPAddress    string    `json:"ip_address" gorm:"size:45"`
	UserAgent    string    `json:"user_agent" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetDefaults fills the values a new submission starts with.
func (c *ContactSubmission) SetDefaults() {
	c.Status = "new"
}

// Validate checks field constraints.
func (c *ContactSubmission) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&c.Email, validation.Required, validation.Length(1, 254), is.EmailFormat),
		validation.Field(&c.Phone, validation.Length(0, 20)),
		validation.Field(&c.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Message, validation.Required),
		validation.Field(&c.Status, validation.Required, ContactStatuses.Rule()),
	)
}

// EmailTemplate is a reusable outbound email body.
type EmailTemplate struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	TemplateType string    `json:"template_type" gorm:"size:20;not null;index"`
	Subject      string    `json:"subject" gorm:"size:200;not null"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetDefaults fills the values a new template starts with.
func (t *EmailTemplate) SetDefaults() {
	t.IsActive = true
}

// Validate checks field constraints.
func (t *EmailTemplate) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&t.TemplateType, validation.Required, EmailTemplateTypes.Rule()),
		validation.Field(&t.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&t.Content, validation.Required),
	)
}

// Newsletter is a campaign sent to subscribers.
type Newsletter struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Title           string     `json:"title" gorm:"size:200;not null"`
	Content         string     `json:"content" gorm:"type:text;not null"`
	Status          string     `json:"status" gorm:"size:20;not null;index"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	SentAt          *time.Time `json:"sent_at"`
	RecipientsCount int64      `json:"recipients_count" gorm:"not null"`
	OpenedCount     int64      `json:"opened_count" gorm:"not null"`
	ClickedCount    int64      `json:"clicked_count" gorm:"not null"`
	CreatedByID     uint       `json:"created_by_id" gorm:"not null;index"`
	CreatedBy       *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SetDefaults fills the values a new newsletter starts with.
func (n *Newsletter) SetDefaults() {
	n.Status = StatusDraft
}

// BeforeSave stamps the first time the newsletter is marked sent.
func (n *Newsletter) BeforeSave(tx *gorm.DB) error {
	n.SentAt = stampOnce(n.SentAt, n.Status == "sent")
	return nil
}

// Validate checks field constraints.
func (n *Newsletter) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&n.Content, validation.Required),
		validation.Field(&n.Status, validation.Required, NewsletterStatuses.Rule()),
		validation.Field(&n.CreatedByID, validation.Required),
	)
}

// NewsletterSubscriber is an email address that opted in to newsletters.
type NewsletterSubscriber struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:254;not null"`
	Name           string     `json:"name" gorm:"size:100"`
	IsActive       bool       `json:"is_active" gorm:"not null;index"`
	SubscribedAt   time.Time  `json:"subscribed_at" gorm:"autoCreateTime"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
}

// SetDefaults fills the values a new subscriber starts with.
func (s *NewsletterSubscriber) SetDefaults() {
	s.IsActive = true
}

// BeforeSave records when a subscriber opts out.
func (s *NewsletterSubscriber) BeforeSave(tx *gorm.DB) error {
	if s.IsActive {
		s.UnsubscribedAt = nil
		return nil
	}
	s.UnsubscribedAt = stampOnce(s.UnsubscribedAt, true)
	return nil
}

// Validate checks field constraints.
func (s *NewsletterSubscriber) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Email, validation.Required, validation.Length(1, 254), is.EmailFormat),
		validation.Field(&s.Name, validation.Length(0, 100)),
	)
}

// Notification is an in-app message for a single user.
type Notification struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Title            string    `json:"title" gorm:"size:200;not null"`
	Message          string    `json:"message" gorm:"type:text;not null"`
	NotificationType string    `json:"notification_type" gorm:"size:20;not null;index"`
	RecipientID      uint      `json:"recipient_id" gorm:"not null;index"`
	Recipient        *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	IsRead           bool      `json:"is_read" gorm:"not null;index"`
	ActionURL        string    `json:"action_url" gorm:"size:200"`
	CreatedAt        time.Time `json:"created_at"`
}

// SetDefaults fills the values a new notification starts with.
func (n *Notification) SetDefaults() {
	n.NotificationType = "info"
}

// Validate checks field constraints.
func (n *Notification) Validate() error {
	return validation.ValidateStruct(n,
		validation.Field(&n.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&n.Message, validation.Required),
		validation.Field(&n.NotificationType, validation.Required, NotificationTypes.Rule()),
		validation.Field(&n.RecipientID, validation.Required),
		validation.Field(&n.ActionURL, validation.Length(0, 200)),
	)
}
