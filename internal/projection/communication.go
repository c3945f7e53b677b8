package projection

import (
	"time"

	"sheba-admin/internal/model"
)

type ContactSubmissionView struct {
	ID           uint         `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Subject      string       `json:"subject"`
	Message      string       `json:"message"`
	Status       string       `json:"status"`
	AssignedTo   *UserProfile `json:"assigned_to"`
	AssignedToID *uint        `json:"assigned_to_id"`
	Response     string       `json:"response"`
	IPAddress    string       `json:"ip_address"`
	UserAgent    string       `json:"user_agent"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func NewContactSubmissionView(c *model.ContactSubmission) ContactSubmissionView {
	return ContactSubmissionView{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Subject:      c.Subject,
		Message:      c.Message,
		Status:       c.Status,
		AssignedTo:   NewUserProfile(c.AssignedTo),
		AssignedToID: c.AssignedToID,
		Response:     c.Response,
		IPAddress:    c.IPAddress,
		UserAgent:    c.UserAgent,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// PublicContactReceipt acknowledges an anonymous contact form submission.
type PublicContactReceipt struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPublicContactReceipt(c *model.ContactSubmission) PublicContactReceipt {
	return PublicContactReceipt{ID: c.ID, Name: c.Name, Email: c.Email, Subject: c.Subject, Status: c.Status, CreatedAt: c.CreatedAt}
}

type NewsletterView struct {
	ID              uint         `json:"id"`
	Title           string       `json:"title"`
	Content         string       `json:"content"`
	Status          string       `json:"status"`
	ScheduledAt     *time.Time   `json:"scheduled_at"`
	SentAt          *time.Time   `json:"sent_at"`
	RecipientsCount int64        `json:"recipients_count"`
	OpenedCount     int64        `json:"opened_count"`
	ClickedCount    int64        `json:"clicked_count"`
	CreatedBy       *UserProfile `json:"created_by"`
	CreatedByID     uint         `json:"created_by_id"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func NewNewsletterView(n *model.Newsletter) NewsletterView {
	return NewsletterView{
		ID:              n.ID,
		Title:           n.Title,
		Content:         n.Content,
		Status:          n.Status,
		ScheduledAt:     n.ScheduledAt,
		SentAt:          n.SentAt,
		RecipientsCount: n.RecipientsCount,
		OpenedCount:     n.OpenedCount,
		ClickedCount:    n.ClickedCount,
		CreatedBy:       NewUserProfile(n.CreatedBy),
		CreatedByID:     n.CreatedByID,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

type NotificationView struct {
	ID               uint         `json:"id"`
	Title            string       `json:"title"`
	Message          string       `json:"message"`
	NotificationType string       `json:"notification_type"`
	Recipient        *UserProfile `json:"recipient"`
	RecipientID      uint         `json:"recipient_id"`
	IsRead           bool         `json:"is_read"`
	ActionURL        string       `json:"action_url"`
	CreatedAt        time.Time    `json:"created_at"`
}

func NewNotificationView(n *model.Notification) NotificationView {
	return NotificationView{
		ID:               n.ID,
		Title:            n.Title,
		Message:          n.Message,
		NotificationType: n.NotificationType,
		Recipient:        NewUserProfile(n.Recipient),
		RecipientID:      n.RecipientID,
		IsRead:           n.IsRead,
		ActionURL:        n.ActionURL,
		CreatedAt:        n.CreatedAt,
	}
}

// ContactSubmissionInput is used both by staff and by the public contact
// form. Status, assignment and response are ignored for anonymous callers.
type ContactSubmissionInput struct {
	Name         *string        `json:"name" validate:"required,max=100"`
	Email        *string        `json:"email" validate:"required,email"`
	Phone        *string        `json:"phone" validate:"omitempty,max=20"`
	Subject      *string        `json:"subject" validate:"required,max=200"`
	Message      *string        `json:"message" validate:"required"`
	Status       *string        `json:"status"`
	AssignedToID Nullable[uint] `json:"assigned_to_id"`
	Response     *string        `json:"response"`
}

func (in ContactSubmissionInput) Apply(c *model.ContactSubmission) {
	set(&c.Name, in.Name)
	set(&c.Email, in.Email)
	set(&c.Phone, in.Phone)
	set(&c.Subject, in.Subject)
	set(&c.Message, in.Message)
	set(&c.Status, in.Status)
	setNullable(&c.AssignedToID, in.AssignedToID)
	set(&c.Response, in.Response)
}

type EmailTemplateInput struct {
	Name         *string `json:"name" validate:"required,max=100"`
	TemplateType *string `json:"template_type" validate:"required"`
	Subject      *string `json:"subject" validate:"required,max=200"`
	Content      *string `json:"content" validate:"required"`
	IsActive     *bool   `json:"is_active"`
}

func (in EmailTemplateInput) Apply(t *model.EmailTemplate) {
	set(&t.Name, in.Name)
	set(&t.TemplateType, in.TemplateType)
	set(&t.Subject, in.Subject)
	set(&t.Content, in.Content)
	set(&t.IsActive, in.IsActive)
}

// NewsletterInput is the writable part of a newsletter. Delivery counters
// and the sent timestamp are read-only.
type NewsletterInput struct {
	Title       *string             `json:"title" validate:"required,max=200"`
	Content     *string             `json:"content" validate:"required"`
	Status      *string             `json:"status"`
	ScheduledAt Nullable[time.Time] `json:"scheduled_at"`
	CreatedByID *uint               `json:"created_by_id"`
}

func (in NewsletterInput) Apply(n *model.Newsletter) {
	set(&n.Title, in.Title)
	set(&n.Content, in.Content)
	set(&n.Status, in.Status)
	setNullable(&n.ScheduledAt, in.ScheduledAt)
	set(&n.CreatedByID, in.CreatedByID)
}

type SubscriberInput struct {
	Email    *string `json:"email" validate:"required,email"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	IsActive *bool   `json:"is_active"`
}

func (in SubscriberInput) Apply(s *model.NewsletterSubscriber) {
	set(&s.Email, in.Email)
	set(&s.Name, in.Name)
	set(&s.IsActive, in.IsActive)
}

type NotificationInput struct {
	Title            *string `json:"title" validate:"required,max=200"`
	Message          *string `json:"message" validate:"required"`
	NotificationType *string `json:"notification_type"`
	RecipientID      *uint   `json:"recipient_id" validate:"required"`
	IsRead           *bool   `json:"is_read"`
	ActionURL        *string `json:"action_url" validate:"omitempty,url"`
}

func (in NotificationInput) Apply(n *model.Notification) {
	set(&n.Title, in.Title)
	set(&n.Message, in.Message)
	set(&n.NotificationType, in.NotificationType)
	set(&n.RecipientID, in.RecipientID)
	set(&n.IsRead, in.IsRead)
	set(&n.ActionURL, in.ActionURL)
}
