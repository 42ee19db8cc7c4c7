// Package store persists the console's domain records behind narrow
// per-resource interfaces, with a single database/sql implementation that
// runs on PostgreSQL in production and SQLite locally.
package store

import (
	"context"
	"errors"

	"villorya.app/internal/auth"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store groups the per-resource stores required by the API.
type Store interface {
	Users(ctx context.Context) UserStore
	Products(ctx context.Context) ProductStore
	Categories(ctx context.Context) CategoryStore
	Suppliers(ctx context.Context) SupplierStore
	Tickets(ctx context.Context) TicketStore
	Research(ctx context.Context) ResearchStore
	Newsletter(ctx context.Context) SubscriberStore
	Pages(ctx context.Context) PageStore
	Contacts(ctx context.Context) ContactStore
}

// UserStore manages admin accounts.
type UserStore interface {
	Create(ctx context.Context, u *auth.User) error
	Find(ctx context.Context, id string) (*auth.User, error)
	FindByEmail(ctx context.Context, email string) (*auth.User, error)
}

// ProductStore manages the catalog.
type ProductStore interface {
	Create(ctx context.Context, p *Product) error
	Find(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryStore manages storefront product categories.
type CategoryStore interface {
	Create(ctx context.Context, c *Category) error
	Find(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
}

// ResearchStore manages R&D entries and their document revisions.
type ResearchStore interface {
	Create(ctx context.Context, e *ResearchEntry) error
	Find(ctx context.Context, id string) (*ResearchEntry, error)
	List(ctx context.Context) ([]*ResearchEntry, error)
	// Update replaces the entry metadata; the version list is untouched.
	Update(ctx context.Context, e *ResearchEntry) error
	// AddVersion appends a revision, assigning the next version number, and
	// returns the updated entry.
	AddVersion(ctx context.Context, id string, v ResearchVersion) (*ResearchEntry, error)
	Delete(ctx context.Context, id string) error
}

// SupplierStore manages package and raw-material suppliers.
type SupplierStore interface {
	Create(ctx context.Context, s *Supplier) error
	Find(ctx context.Context, id string) (*Supplier, error)
	ListByKind(ctx context.Context, kind string) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id string) error
}

// TicketStore manages kanban cards.
type TicketStore interface {
	Create(ctx context.Context, t *Ticket) error
	Find(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id string) error
}

// SubscriberStore manages newsletter recipients.
type SubscriberStore interface {
	Create(ctx context.Context, s *Subscriber) error
	List(ctx context.Context) ([]*Subscriber, error)
	ListActive(ctx context.Context) ([]*Subscriber, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PageStore manages CMS content documents.
type PageStore interface {
	Get(ctx context.Context, slug string) (*Page, error)
	Upsert(ctx context.Context, p *Page) error
}

// ContactStore manages the contact triage board.
type ContactStore interface {
	Create(ctx context.Context, t *ContactTicket) error
	Find(ctx context.Context, id string) (*ContactTicket, error)
	List(ctx context.Context) ([]*ContactTicket, error)
	MarkPending(ctx context.Context, id string) error
	Complete(ctx context.Context, id, adminComment string) error
	Delete(ctx context.Context, id string) error
}
