package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"sheba-admin/internal/audit"
	"sheba-admin/internal/model"
	"sheba-admin/internal/policy"
	"sheba-admin/internal/repository"
)

var (
	clientListSpec = repository.ListSpec{
		Filters:         map[string]string{"client_type": "client_type", "is_active": "is_active"},
		Kinds:           map[string]repository.FilterKind{"is_active": repository.FilterBool},
		Search:          []string{"name", "company", "email"},
		Ordering:        map[string]string{"created_at": "created_at", "name": "name", "company": "company"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Contacts", "Projects"},
	}

	// ClientSummarySpec drives the lightweight client list.
	ClientSummarySpec = repository.ListSpec{
		Filters:         map[string]string{"client_type": "client_type", "is_active": "is_active"},
		Kinds:           map[string]repository.FilterKind{"is_active": repository.FilterBool},
		Search:          []string{"name", "company"},
		Ordering:        map[string]string{"created_at": "created_at"},
		DefaultOrdering: []string{"-created_at"},
		Preloads:        []string{"Projects"},
	}

	contactListSpec = repository.ListSpec{
		Filters:         map[string]string{"client": "client_id", "is_primary": "is_primary"},
		Kinds:           map[string]repository.FilterKind{"client": repository.FilterInt, "is_primary": repository.FilterBool},
		Search:          []string{"name", "email", "position"},
		Ordering:        map[string]string{"created_at": "created_at", "name": "name"},
		DefaultOrdering: []string{"-is_primary", "name"},
	}
)

// ClientStats is the response of the client statistics endpoint.
type ClientStats struct {
	TotalClients      int64            `json:"total_clients"`
	ActiveClients     int64            `json:"active_clients"`
	IndividualClients int64            `json:"individual_clients"`
	BusinessClients   int64            `json:"business_clients"`
	ByType            map[string]int64 `json:"by_type"`
}

// ClientService serves clients, their contacts and client statistics.
type ClientService struct {
	Clients  *Resource[model.Client]
	Contacts *Resource[model.ClientContact]
}

// NewClientService wires the client and contact resources.
func NewClientService(db *gorm.DB, log *audit.Log) *ClientService {
	clients := NewResource(repository.NewStore[model.Client](db), log, ResourceConfig[model.Client]{
		AuditAs:  "Client",
		Resource: policy.ResourceClients,
		List:     clientListSpec,
		Preloads: clientListSpec.Preloads,
	})

	contacts := NewResource(repository.NewStore[model.ClientContact](db), log, ResourceConfig[model.ClientContact]{
		AuditAs:  "ClientContact",
		Resource: policy.ResourceClients,
		List:     contactListSpec,
		Check: func(ctx context.Context, contact *model.ClientContact) error {
			return newChecker(ctx, db).ref("client_id", &model.Client{}, contact.ClientID).result()
		},
	})

	return &ClientService{Clients: clients, Contacts: contacts}
}

// Stats counts clients by activity and type. Every non-individual client
// counts as a business.
func (s *ClientService) Stats(ctx context.Context) (*ClientStats, error) {
	store := s.Clients.Store()
	byType, err := store.CountBy(ctx, "client_type")
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}
	active, err := store.Count(ctx, where("is_active = ?", true))
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}

	total := sum(byType)
	return &ClientStats{
		TotalClients:      total,
		ActiveClients:     active,
		IndividualClients: byType["individual"],
		BusinessClients:   total - byType["individual"],
		ByType:            byType,
	}, nil
}

// ListForClient lists the contacts of one client.
func (s *ClientService) ListForClient(ctx context.Context, p *policy.Principal, clientID uint, q repository.ListQuery) (*repository.Page[model.ClientContact], error) {
	return s.Contacts.List(ctx, p, q, where("client_id = ?", clientID))
}

// CreateForClient creates a contact under clientID, ignoring any client_id
// in the body.
func (s *ClientService) CreateForClient(ctx context.Context, p *policy.Principal, clientID uint, apply func(*model.ClientContact)) (*model.ClientContact, error) {
	return s.Contacts.Create(ctx, p, func(contact *model.ClientContact) {
		apply(contact)
		contact.ClientID = clientID
	})
}
