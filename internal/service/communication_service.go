package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	apperrors "sheba-admin/internal/errors"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

var (
	submissionListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "assigned_to": "assigned_to_id"},
		Kinds:           map[string]repository.FilterKind{"assigned_to": repository.FilterInt},
		Search:          []string{"name", "email", "subject", "message"},
		Ordering:        map[string]string{"created_at": "created_at", "status": "status"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"AssignedTo"},
	}

	templateListSpec = repository.ListSpec{
		Filters:         map[string]string{"template_type": "template_type", "is_active": "is_active"},
		Kinds:           map[string]repository.FilterKind{"is_active": repository.FilterBool},
		Search:          []string{"name", "subject", "content"},
		Ordering:        map[string]string{"created_at": "created_at", "name": "name"},
		DefaultOrdering: []string{"-created_at"},
	}

	newsletterListSpec = repository.ListSpec{
		Filters:         map[string]string{"status": "status", "created_by": "created_by_id"},
		Kinds:           map[string]repository.FilterKind{"created_by": repository.FilterInt},
		Search:          []string{"title", "content"},
		Ordering:        map[string]string{"created_at": "created_at", "scheduled_at": "scheduled_at", "sent_at": "sent_at"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"CreatedBy"},
	}

	subscriberListSpec = repository.ListSpec{
		Filters:         map[string]string{"is_active": "is_active"},
		Kinds:           map[string]repository.FilterKind{"is_active": repository.FilterBool},
		Search:          []string{"email", "name"},
		Ordering:        map[string]string{"subscribed_at": "subscribed_at", "email": "email"},
		DefaultOrdering: []string{"-subscribed_at"},
	}

	notificationListSpec = repository.ListSpec{
		Filters:         map[string]string{"notification_type": "notification_type", "recipient": "recipient_id", "is_read": "is_read"},
		Kinds:           map[string]repository.FilterKind{"recipient": repository.FilterInt, "is_read": repository.FilterBool},
		Search:          []string{"title", "message"},
		Ordering:        map[string]string{"created_at": "created_at"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Recipient"},
	}
)

// CommunicationStats is the response of the communication statistics endpoint.
type CommunicationStats struct {
	ContactSubmissions    int64 `json:"contact_submissions"`
	PendingSubmissions    int64 `json:"pending_submissions"`
	NewsletterSubscribers int64 `json:"newsletter_subscribers"`
	SentNewsletters       int64 `json:"sent_newsletters"`
	UnreadNotifications   int64 `json:"unread_notifications"`
}

// CommunicationService serves inbound contact, outbound email and in-app notifications.
type CommunicationService struct {
	Submissions   *Resource[model.ContactSubmission]
	Templates     *Resource[model.EmailTemplate]
	Newsletters   *Resource[model.Newsletter]
	Subscribers   *Resource[model.NewsletterSubscriber]
	Notifications *Resource[model.Notification]

	audit *audit.Log
}

// NewCommunicationService wires the communication resources.
func NewCommunicationService(db *gorm.DB, log *audit.Log) *CommunicationService {
	return &CommunicationService{
		Submissions: NewResource(repository.NewStore[model.ContactSubmission](db), log, ResourceConfig[model.ContactSubmission]{
			AuditAs:  "ContactSubmission",
			Resource: policy.ResourceCommunication,
			List:     submissionListSpec,
			Preloads: submissionListSpec.Preloads,
			Check: func(ctx context.Context, sub *model.ContactSubmission) error {
				return newChecker(ctx, db).optionalRef("assigned_to_id", &model.User{}, sub.AssignedToID).result()
			},
		}),
		Templates: NewResource(repository.NewStore[model.EmailTemplate](db), log, ResourceConfig[model.EmailTemplate]{
			AuditAs:  "EmailTemplate",
			Resource: policy.ResourceCommunication,
			List:     templateListSpec,
			Check: func(ctx context.Context, tpl *model.EmailTemplate) error {
				return newChecker(ctx, db).
					unique("name", "email template with this name already exists.", &model.EmailTemplate{}, tpl.ID, "name = ?", tpl.Name).
					result()
			},
		}),
		Newsletters: NewResource(repository.NewStore[model.Newsletter](db), log, ResourceConfig[model.Newsletter]{
			AuditAs:  "Newsletter",
			Resource: policy.ResourceCommunication,
			List:     newsletterListSpec,
			Preloads: newsletterListSpec.Preloads,
			Prepare: func(_ context.Context, p *policy.Principal, n *model.Newsletter, creating bool) {
				if creating && n.CreatedByID == 0 && p != nil {
					n.CreatedByID = p.UserID
				}
			},
			Check: func(ctx context.Context, n *model.Newsletter) error {
				return newChecker(ctx, db).ref("created_by_id", &model.User{}, n.CreatedByID).result()
			},
		}),
		Subscribers: NewResource(repository.NewStore[model.NewsletterSubscriber](db), log, ResourceConfig[model.NewsletterSubscriber]{
			AuditAs:  "NewsletterSubscriber",
			Resource: policy.ResourceCommunication,
			List:     subscriberListSpec,
			Check: func(ctx context.Context, s *model.NewsletterSubscriber) error {
				return newChecker(ctx, db).
					unique("email", "newsletter subscriber with this email already exists.", &model.NewsletterSubscriber{}, s.ID, "email = ?", s.Email).
					result()
			},
		}),
		Notifications: NewResource(repository.NewStore[model.Notification](db), log, ResourceConfig[model.Notification]{
			AuditAs:     "Notification",
			Resource:    policy.ResourceNotifications,
			List:        notificationListSpec,
			Preloads:    notificationListSpec.Preloads,
			OwnerColumn: "recipient_id",
			Check: func(ctx context.Context, n *model.Notification) error {
				return newChecker(ctx, db).ref("recipient_id", &model.User{}, n.RecipientID).result()
			},
		}),
		audit: log,
	}
}

// MarkRead sets the read flag of a notification visible to p.
func (s *CommunicationService) MarkRead(ctx context.Context, p *policy.Principal, id uint) error {
	_, err := s.Notifications.Update(ctx, p, id, func(n *model.Notification) {
		n.IsRead = true
	})
	return err
}

// Stats counts submissions, subscribers, newsletters and unread notifications.
func (s *CommunicationService) Stats(ctx context.Context) (*CommunicationStats, error) {
	submissions, err := s.Submissions.Store().CountBy(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("communication stats: %w", err)
	}
	subscribers, err := s.Subscribers.Store().Count(ctx, where("is_active = ?", true))
	if err != nil {
		return nil, fmt.Errorf("communication stats: %w", err)
	}
	sent, err := s.Newsletters.Store().Count(ctx, where("status = ?", "sent"))
	if err != nil {
		return nil, fmt.Errorf("communication stats: %w", err)
	}
	unread, err := s.Notifications.Store().Count(ctx, where("is_read = ?", false))
	if err != nil {
		return nil, fmt.Errorf("communication stats: %w", err)
	}
	return &CommunicationStats{
		ContactSubmissions:    sum(submissions),
		PendingSubmissions:    submissions["new"],
		NewsletterSubscribers: subscribers,
		SentNewsletters:       sent,
		UnreadNotifications:   unread,
	}, nil
}

// SubmitContact stores an anonymous contact form submission. Workflow fields
// always start from their defaults.
func (s *CommunicationService) SubmitContact(ctx context.Context, apply func(*model.ContactSubmission)) (*model.ContactSubmission, error) {
	sub := &model.ContactSubmission{}
	apply(sub)
	sub.SetDefaults()
	sub.AssignedToID = nil
	sub.Response = ""

	req := audit.RequestFrom(ctx)
	sub.IPAddress = req.IPAddress
	sub.UserAgent = req.UserAgent

	if err := apperrors.FromOzzo(sub.Validate()); err != nil {
		return nil, err
	}
	if err := s.Submissions.Store().Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("save contact submission: %w", err)
	}
	s.audit.Activity(ctx, "create", "ContactSubmission", sub.ID, fmt.Sprintf("Contact from %s", sub.Email))
	return sub, nil
}
