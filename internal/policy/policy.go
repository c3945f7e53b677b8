// Package policy decides which callers may act on which resources.
package policy

// Role is one of the fixed user roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleDeveloper Role = "developer"
	RoleClient    Role = "client"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleManager, RoleDeveloper, RoleClient}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Action is the kind of operation being attempted.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionChange Action = "change"
	ActionDelete Action = "delete"
)

// Resource names a family of endpoints.
type Resource string

const (
	ResourceUsers           Resource = "users"
	ResourceSessions        Resource = "sessions"
	ResourceProjects        Resource = "projects"
	ResourceClients         Resource = "clients"
	ResourceCareers         Resource = "careers"
	ResourceContent         Resource = "content"
	ResourceCommunication   Resource = "communication"
	ResourceNotifications   Resource = "notifications"
	ResourceDashboard       Resource = "dashboard"
	ResourceCompanySettings Resource = "company_settings"
	ResourceSystemSettings  Resource = "system_settings"
	ResourcePermissions     Resource = "permissions"
	ResourceSystemLogs      Resource = "system_logs"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID  uint
	Role    Role
	IsStaff bool
}

// Privileged reports whether p sees and changes every row.
func (p *Principal) Privileged() bool {
	return p != nil && (p.Role == RoleAdmin || p.IsStaff)
}

// Can reports whether p may perform action on resource. isOwner tells
// whether the targeted row belongs to p; it only matters for user-scoped
// resources.
func Can(p *Principal, action Action, resource Resource, isOwner bool) bool {
	if p == nil {
		return false
	}
	if restricted(action, resource) {
		return p.Privileged()
	}
	if OwnerScoped(resource) {
		return p.Privileged() || isOwner
	}
	return true
}

// OwnerScoped reports whether non-privileged callers only see their own rows of resource.
func OwnerScoped(resource Resource) bool {
	switch resource {
	case ResourceNotifications, ResourceSessions, ResourceUsers:
		return true
	}
	return false
}

// ScopeToOwner reports whether queries for resource must be filtered to p's rows.
func ScopeToOwner(p *Principal, resource Resource) bool {
	return OwnerScoped(resource) && !p.Privileged()
}

func restricted(action Action, resource Resource) bool {
	switch resource {
	case ResourceSystemSettings, ResourcePermissions, ResourceSystemLogs:
		return true
	case ResourceUsers:
		return action == ActionAdd || action == ActionDelete
	}
	return false
}
