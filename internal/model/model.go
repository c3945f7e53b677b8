// Package model holds the persisted entities of the admin backend.
package model

// All returns every entity in dependency order, for migrations and resets.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserSession{},
		&Client{},
		&ClientContact{},
		&Project{},
		&ProjectTask{},
		&JobPosting{},
		&JobApplication{},
		&WebsiteContent{},
		&BlogPost{},
		&PortfolioProject{},
		&Service{},
		&TeamMember{},
		&ContactSubmission{},
		&EmailTemplate{},
		&Newsletter{},
		&NewsletterSubscriber{},
		&Notification{},
		&DashboardMetric{},
		&ActivityLog{},
		&CompanySettings{},
		&SystemSettings{},
		&UserPermission{},
		&SystemLog{},
	}
}
