package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ActiveProjectStatuses are the project states counted as active work for a client.
var ActiveProjectStatuses = []string{"planning", "in_progress", "testing"}

// Client is a customer of the consultancy.
type Client struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:200;not null"`
	Email         string          `json:"email" gorm:"size:254;not null"`
	Phone         string          `json:"phone" gorm:"size:20;not null"`
	Company       string          `json:"company" gorm:"size:200"`
	Website       string          `json:"website" gorm:"size:200"`
	Address       string          `json:"address" gorm:"type:text"`
	ClientType    string          `json:"client_type" gorm:"size:20;not null;index"`
	ContactPerson string          `json:"contact_person" gorm:"size:100"`
	Notes         string          `json:"notes" gorm:"type:text"`
	IsActive      bool            `json:"is_active" gorm:"not null;index"`
	Contacts      []ClientContact `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Projects      []Project       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SetDefaults fills the values a new client starts with.
func (c *Client) SetDefaults() {
	c.ClientType = "individual"
	c.IsActive = true
}

// TotalProjects counts the loaded projects.
func (c *Client) TotalProjects() int {
	return len(c.Projects)
}

// ActiveProjects counts loaded projects in planning, in progress or testing.
func (c *Client) ActiveProjects() int {
	n := 0
	for _, p := range c.Projects {
		for _, s := range ActiveProjectStatuses {
			if p.Status == s {
				n++
				break
			}
		}
	}
	return n
}

// Validate checks field constraints.
func (c *Client) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&c.Email, validation.Required, validation.Length(1, 254), is.EmailFormat),
		validation.Field(&c.Phone, validation.Required, validation.Length(1, 20)),
		validation.Field(&c.Company, validation.Length(0, 200)),
		validation.Field(&c.Website, validation.Length(0, 200), is.URL),
		validation.Field(&c.ClientType, validation.Required, ClientTypes.Rule()),
		validation.Field(&c.ContactPerson, validation.Length(0, 100)),
	)
}

// ClientContact is an additional person to reach at a client.
type ClientContact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ClientID  uint      `json:"client_id" gorm:"not null;index"`
	Client    *Client   `json:"-"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:254;not null"`
	Phone     string    `json:"phone" gorm:"size:20"`
	Position  string    `json:"position" gorm:"size:100"`
	IsPrimary bool      `json:"is_primary" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks field constraints.
func (c *ClientContact) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ClientID, validation.Required),
		validation.Field(&c.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&c.Email, validation.Required, validation.Length(1, 254), is.EmailFormat),
		validation.Field(&c.Phone, validation.Length(0, 20)),
		validation.Field(&c.Position, validation.Length(0, 100)),
	)
}
