package projection

import (
	"time"

	"sheba-admin/internal/model"
)

// ClientView is the full client with contacts and project counts.
type ClientView struct {
	ID             uint          `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Company        string        `json:"company"`
	Website        string        `json:"website"`
	Address        string        `json:"address"`
	ClientType     string        `json:"client_type"`
	ContactPerson  string        `json:"contact_person"`
	Notes          string        `json:"notes"`
	IsActive       bool          `json:"is_active"`
	Contacts       []ContactView `json:"contacts"`
	TotalProjects  int           `json:"total_projects"`
	ActiveProjects int           `json:"active_projects"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func NewClientView(c *model.Client) ClientView {
	contacts := make([]ContactView, 0, len(c.Contacts))
	for i := range c.Contacts {
		contacts = append(contacts, NewContactView(&c.Contacts[i]))
	}
	return ClientView{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		Website:        c.Website,
		Address:        c.Address,
		ClientType:     c.ClientType,
		ContactPerson:  c.ContactPerson,
		Notes:          c.Notes,
		IsActive:       c.IsActive,
		Contacts:       contacts,
		TotalProjects:  c.TotalProjects(),
		ActiveProjects: c.ActiveProjects(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ClientSummary is the list row of the client summary endpoint.
type ClientSummary struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Company        string `json:"company"`
	Email          string `json:"email"`
	ClientType     string `json:"client_type"`
	IsActive       bool   `json:"is_active"`
	TotalProjects  int    `json:"total_projects"`
	ActiveProjects int    `json:"active_projects"`
}

func NewClientSummary(c *model.Client) ClientSummary {
	return ClientSummary{
		ID:             c.ID,
		Name:           c.Name,
		Company:        c.Company,
		Email:          c.Email,
		ClientType:     c.ClientType,
		IsActive:       c.IsActive,
		TotalProjects:  c.TotalProjects(),
		ActiveProjects: c.ActiveProjects(),
	}
}

// ClientBrief identifies the client of a project.
type ClientBrief struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	ClientType string `json:"client_type"`
	IsActive   bool   `json:"is_active"`
}

func NewClientBrief(c *model.Client) *ClientBrief {
	if c == nil {
		return nil
	}
	return &ClientBrief{ID: c.ID, Name: c.Name, Company: c.Company, Email: c.Email, ClientType: c.ClientType, IsActive: c.IsActive}
}

func clientName(c *model.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}

// ContactView is one client contact person.
type ContactView struct {
	ID        uint      `json:"id"`
	ClientID  uint      `json:"client_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Position  string    `json:"position"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

func NewContactView(c *model.ClientContact) ContactView {
	return ContactView{
		ID:        c.ID,
		ClientID:  c.ClientID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Position:  c.Position,
		IsPrimary: c.IsPrimary,
		CreatedAt: c.CreatedAt,
	}
}

// ClientInput is the writable part of a client.
type ClientInput struct {
	Name          *string `json:"name" validate:"required,max=200"`
	Email         *string `json:"email" validate:"required,email"`
	Phone         *string `json:"phone" validate:"required,max=20"`
	Company       *string `json:"company"`
	Website       *string `json:"website" validate:"omitempty,url"`
	Address       *string `json:"address"`
	ClientType    *string `json:"client_type"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"is_active"`
}

func (in ClientInput) Apply(c *model.Client) {
	set(&c.Name, in.Name)
	set(&c.Email, in.Email)
	set(&c.Phone, in.Phone)
	set(&c.Company, in.Company)
	set(&c.Website, in.Website)
	set(&c.Address, in.Address)
	set(&c.ClientType, in.ClientType)
	set(&c.ContactPerson, in.ContactPerson)
	set(&c.Notes, in.Notes)
	set(&c.IsActive, in.IsActive)
}

// ContactInput is the writable part of a client contact.
type ContactInput struct {
	ClientID  *uint   `json:"client_id" validate:"required"`
	Name      *string `json:"name" validate:"required,max=100"`
	Email     *string `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Position  *string `json:"position"`
	IsPrimary *bool   `json:"is_primary"`
}

func (in ContactInput) Apply(c *model.ClientContact) {
	set(&c.ClientID, in.ClientID)
	set(&c.Name, in.Name)
	set(&c.Email, in.Email)
	set(&c.Phone, in.Phone)
	set(&c.Position, in.Position)
	set(&c.IsPrimary, in.IsPrimary)
}
