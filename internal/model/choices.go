package model

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Choice is one allowed value of an enumerated field and its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Choices is the closed set of values an enumerated field accepts.
type Choices []Choice

// Values returns the raw values.
func (c Choices) Values() []string {
	out := make([]string, len(c))
	for i, ch := range c {
		out[i] = ch.Value
	}
	return out
}

// Label returns the display label of v, or v itself when unknown.
func (c Choices) Label(v string) string {
	for _, ch := range c {
		if ch.Value == v {
			return ch.Label
		}
	}
	return v
}

// Rule returns an ozzo rule that accepts only members of c.
func (c Choices) Rule() validation.Rule {
	values := make([]interface{}, len(c))
	for i, ch := range c {
		values[i] = ch.Value
	}
	return validation.In(values...).Error("is not a valid choice")
}

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusActive    = "active"
	StatusInactive  = "inactive"
)

var (
	UserRoles = Choices{
		{"admin", "Administrator"},
		{"manager", "Manager"},
		{"developer", "Developer"},
		{"client", "Client"},
	}

	ClientTypes = Choices{
		{"individual", "Individual"},
		{"startup", "Startup"},
		{"small_business", "Small Business"},
		{"enterprise", "Enterprise"},
		{"government", "Government"},
		{"ngo", "NGO"},
	}

	ProjectStatuses = Choices{
		{"planning", "Planning"},
		{"in_progress", "In Progress"},
		{"testing", "Testing"},
		{"completed", "Completed"},
		{"on_hold", "On Hold"},
		{"cancelled", "Cancelled"},
	}

	ProjectPriorities = Choices{
		{"low", "Low"},
		{"medium", "Medium"},
		{"high", "High"},
		{"urgent", "Urgent"},
	}

	TaskStatuses = Choices{
		{"todo", "To Do"},
		{"in_progress", "In Progress"},
		{"review", "Review"},
		{"completed", "Completed"},
	}

	Departments = Choices{
		{"engineering", "Engineering"},
		{"design", "Design"},
		{"marketing", "Marketing"},
		{"sales", "Sales"},
		{"hr", "Human Resources"},
		{"finance", "Finance"},
		{"operations", "Operations"},
	}

	JobTypes = Choices{
		{"full_time", "Full Time"},
		{"part_time", "Part Time"},
		{"contract", "Contract"},
		{"internship", "Internship"},
		{"remote", "Remote"},
	}

	ExperienceLevels = Choices{
		{"entry", "Entry Level"},
		{"junior", "Junior"},
		{"mid", "Mid Level"},
		{"senior", "Senior"},
		{"lead", "Lead"},
	}

	JobStatuses = Choices{
		{StatusDraft, "Draft"},
		{StatusPublished, "Published"},
		{"closed", "Closed"},
		{StatusArchived, "Archived"},
	}

	ApplicationStatuses = Choices{
		{"submitted", "Submitted"},
		{"reviewing", "Under Review"},
		{"shortlisted", "Shortlisted"},
		{"interview", "Interview Scheduled"},
		{"rejected", "Rejected"},
		{"hired", "Hired"},
	}

	BlogStatuses = Choices{
		{StatusDraft, "Draft"},
		{StatusPublished, "Published"},
		{StatusArchived, "Archived"},
	}

	BlogCategories = Choices{
		{"technology", "Technology"},
		{"development", "Development"},
		{"business", "Business"},
		{"design", "Design"},
		{"tutorial", "Tutorial"},
	}

	PortfolioStatuses = Choices{
		{StatusActive, "Active"},
		{"featured", "Featured"},
		{StatusInactive, "Inactive"},
	}

	ActiveStatuses = Choices{
		{StatusActive, "Active"},
		{StatusInactive, "Inactive"},
	}

	ContactStatuses = Choices{
		{"new", "New"},
		{"in_progress", "In Progress"},
		{"resolved", "Resolved"},
		{"closed", "Closed"},
	}

	EmailTemplateTypes = Choices{
		{"welcome", "Welcome"},
		{"notification", "Notification"},
		{"invoice", "Invoice"},
		{"contact_reply", "Contact Reply"},
		{"newsletter", "Newsletter"},
	}

	NewsletterStatuses = Choices{
		{StatusDraft, "Draft"},
		{"scheduled", "Scheduled"},
		{"sent", "Sent"},
	}

	NotificationTypes = Choices{
		{"info", "Info"},
		{"success", "Success"},
		{"warning", "Warning"},
		{"error", "Error"},
	}

	MetricTypes = Choices{
		{"projects_total", "Total Projects"},
		{"projects_active", "Active Projects"},
		{"clients_total", "Total Clients"},
		{"revenue_monthly", "Monthly Revenue"},
		{"revenue_yearly", "Yearly Revenue"},
		{"tasks_completed", "Completed Tasks"},
		{"blog_views", "Blog Views"},
		{"website_visitors", "Website Visitors"},
	}

	ActivityActions = Choices{
		{"create", "Create"},
		{"update", "Update"},
		{"delete", "Delete"},
		{"login", "Login"},
		{"logout", "Logout"},
		{"view", "View"},
	}

	BackupFrequencies = Choices{
		{"daily", "Daily"},
		{"weekly", "Weekly"},
		{"monthly", "Monthly"},
	}

	Permissions = Choices{
		{"dashboard.view", "View Dashboard"},
		{"projects.view", "View Projects"},
		{"projects.add", "Add Projects"},
		{"projects.change", "Edit Projects"},
		{"projects.delete", "Delete Projects"},
		{"clients.view", "View Clients"},
		{"clients.add", "Add Clients"},
		{"clients.change", "Edit Clients"},
		{"clients.delete", "Delete Clients"},
		{"content.view", "View Content"},
		{"content.add", "Add Content"},
		{"content.change", "Edit Content"},
		{"content.delete", "Delete Content"},
		{"communication.view", "View Communication"},
		{"communication.add", "Add Communication"},
		{"communication.change", "Edit Communication"},
		{"communication.delete", "Delete Communication"},
		{"users.view", "View Users"},
		{"users.add", "Add Users"},
		{"users.change", "Edit Users"},
		{"users.delete", "Delete Users"},
		{"settings.view", "View Settings"},
		{"settings.change", "Edit Settings"},
	}

	LogLevels = Choices{
		{"debug", "Debug"},
		{"info", "Info"},
		{"warning", "Warning"},
		{"error", "Error"},
		{"critical", "Critical"},
	}
)
