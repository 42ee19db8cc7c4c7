package httpapi

import (
	"context"
	"sync"
	"time"

	"villorya.app/internal/auth"
	"villorya.app/internal/ids"
	"villorya.app/internal/store"
)

// fakeStore is an in-memory store.Store for handler tests. It mirrors the SQL
// implementation's defaulting: ids, timestamps and status defaults are filled
// in on create.
type fakeStore struct {
	mu sync.Mutex

	users       map[string]*auth.User
	products    map[string]*store.Product
	categories  map[string]*store.Category
	suppliers   map[string]*store.Supplier
	tickets     map[string]*store.Ticket
	research    map[string]*store.ResearchEntry
	subscribers map[string]*store.Subscriber
	pages       map[string]*store.Page
	contacts    map[string]*store.ContactTicket
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*auth.User),
		products:    make(map[string]*store.Product),
		categories:  make(map[string]*store.Category),
		suppliers:   make(map[string]*store.Supplier),
		tickets:     make(map[string]*store.Ticket),
		research:    make(map[string]*store.ResearchEntry),
		subscribers: make(map[string]*store.Subscriber),
		pages:       make(map[string]*store.Page),
		contacts:    make(map[string]*store.ContactTicket),
	}
}

func (f *fakeStore) Users(context.Context) store.UserStore            { return fakeUsers{f} }
func (f *fakeStore) Products(context.Context) store.ProductStore      { return fakeProducts{f} }
func (f *fakeStore) Categories(context.Context) store.CategoryStore   { return fakeCategories{f} }
func (f *fakeStore) Suppliers(context.Context) store.SupplierStore    { return fakeSuppliers{f} }
func (f *fakeStore) Tickets(context.Context) store.TicketStore        { return fakeTickets{f} }
func (f *fakeStore) Research(context.Context) store.ResearchStore     { return fakeResearch{f} }
func (f *fakeStore) Newsletter(context.Context) store.SubscriberStore { return fakeSubscribers{f} }
func (f *fakeStore) Pages(context.Context) store.PageStore            { return fakePages{f} }
func (f *fakeStore) Contacts(context.Context) store.ContactStore      { return fakeContacts{f} }

type fakeUsers struct{ f *fakeStore }

func (s fakeUsers) Create(_ context.Context, u *auth.User) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.Status == "" {
		u.Status = "active"
	}
	for _, existing := range s.f.users {
		if existing.Email == u.Email {
			return store.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	s.f.users[u.ID] = &cp
	return nil
}

func (s fakeUsers) Find(_ context.Context, id string) (*auth.User, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	u, ok := s.f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s fakeUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	for _, u := range s.f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeProducts struct{ f *fakeStore }

func (s fakeProducts) Create(_ context.Context, p *store.Product) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	s.f.products[p.ID] = &cp
	return nil
}

func (s fakeProducts) Find(_ context.Context, id string) (*store.Product, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	p, ok := s.f.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s fakeProducts) List(context.Context) ([]*store.Product, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := make([]*store.Product, 0, len(s.f.products))
	for _, p := range s.f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s fakeProducts) Update(_ context.Context, p *store.Product) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.products[p.ID]; !ok {
		return store.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.f.products[p.ID] = &cp
	return nil
}

func (s fakeProducts) Delete(_ context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.f.products, id)
	return nil
}

type fakeCategories struct{ f *fakeStore }

func (s fakeCategories) Create(_ context.Context, c *store.Category) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if c.ID == "" {
		c.ID = ids.New()
	}
	for _, existing := range s.f.categories {
		if existing.Name == c.Name {
			return store.ErrAlreadyExists
		}
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	s.f.categories[c.ID] = &cp
	return nil
}

func (s fakeCategories) Find(_ context.Context, id string) (*store.Category, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	c, ok := s.f.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s fakeCategories) List(context.Context) ([]*store.Category, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := make([]*store.Category, 0, len(s.f.categories))
	for _, c := range s.f.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s fakeCategories) Update(_ context.Context, c *store.Category) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.categories[c.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.f.categories {
		if id != c.ID && existing.Name == c.Name {
			return store.ErrAlreadyExists
		}
	}
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	s.f.categories[c.ID] = &cp
	return nil
}

func (s fakeCategories) Delete(_ context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.categories[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.f.categories, id)
	return nil
}

type fakeResearch struct{ f *fakeStore }

func (s fakeResearch) Create(_ context.Context, e *store.ResearchEntry) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if e.ID == "" {
		e.ID = ids.New()
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	cp.Versions = append([]store.ResearchVersion(nil), e.Versions...)
	s.f.research[e.ID] = &cp
	return nil
}

func (s fakeResearch) Find(_ context.Context, id string) (*store.ResearchEntry, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	e, ok := s.f.research[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *e
	cp.Versions = append([]store.ResearchVersion(nil), e.Versions...)
	return &cp, nil
}

func (s fakeResearch) List(context.Context) ([]*store.ResearchEntry, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := make([]*store.ResearchEntry, 0, len(s.f.research))
	for _, e := range s.f.research {
		cp := *e
		cp.Versions = append([]store.ResearchVersion(nil), e.Versions...)
		out = append(out, &cp)
	}
	return out, nil
}

func (s fakeResearch) Update(_ context.Context, e *store.ResearchEntry) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	stored, ok := s.f.research[e.ID]
	if !ok {
		return store.ErrNotFound
	}
	stored.Title = e.Title
	stored.Description = e.Description
	stored.Tags = append([]string(nil), e.Tags...)
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (s fakeResearch) AddVersion(_ context.Context, id string, v store.ResearchVersion) (*store.ResearchEntry, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	e, ok := s.f.research[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if v.ID == "" {
		v.ID = ids.New()
	}
	v.VersionNumber = len(e.Versions) + 1
	if v.UploadedAt.IsZero() {
		v.UploadedAt = time.Now().UTC()
	}
	e.Versions = append(e.Versions, v)
	e.UpdatedAt = time.Now().UTC()
	cp := *e
	cp.Versions = append([]store.ResearchVersion(nil), e.Versions...)
	return &cp, nil
}

func (s fakeResearch) Delete(_ context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.research[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.f.research, id)
	return nil
}

type fakeSuppliers struct{ f *fakeStore }

func (s fakeSuppliers) Create(_ context.Context, sup *store.Supplier) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if sup.ID == "" {
		sup.ID = ids.New()
	}
	if sup.Status == "" {
		sup.Status = "active"
	}
	now := time.Now().UTC()
	sup.CreatedAt, sup.UpdatedAt = now, now
	cp := *sup
	s.f.suppliers[sup.ID] = &cp
	return nil
}

func (s fakeSuppliers) Find(_ context.Context, id string) (*store.Supplier, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	sup, ok := s.f.suppliers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *sup
	return &cp, nil
}

func (s fakeSuppliers) ListByKind(_ context.Context, kind string) ([]*store.Supplier, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var out []*store.Supplier
	for _, sup := range s.f.suppliers {
		if sup.Kind == kind {
			cp := *sup
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s fakeSuppliers) Update(_ context.Context, sup *store.Supplier) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.suppliers[sup.ID]; !ok {
		return store.ErrNotFound
	}
	sup.UpdatedAt = time.Now().UTC()
	cp := *sup
	s.f.suppliers[sup.ID] = &cp
	return nil
}

func (s fakeSuppliers) Delete(_ context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.suppliers[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.f.suppliers, id)
	return nil
}

type fakeTickets struct{ f *fakeStore }

func (s fakeTickets) Create(_ context.Context, t *store.Ticket) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if t.ID == "" {
		t.ID = ids.New()
	}
	if t.Status == "" {
		t.Status = "todo"
	}
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	s.f.tickets[t.ID] = &cp
	return nil
}

func (s fakeTickets) Find(_ context.Context, id string) (*store.Ticket, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	t, ok := s.f.tickets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s fakeTickets) List(context.Context) ([]*store.Ticket, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := make([]*store.Ticket, 0, len(s.f.tickets))
	for _, t := range s.f.tickets {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s fakeTickets) Update(_ context.Context, t *store.Ticket) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.tickets[t.ID]; !ok {
		return store.ErrNotFound
	}
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	s.f.tickets[t.ID] = &cp
	return nil
}

func (s fakeTickets) Delete(_ context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.tickets[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.f.tickets, id)
	return nil
}

type fakeSubscribers struct{ f *fakeStore }

func (s fakeSubscribers) Create(_ context.Context, sub *store.Subscriber) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if sub.ID == "" {
		sub.ID = ids.New()
	}
	if sub.Status == "" {
		sub.Status = "active"
	}
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now().UTC()
	}
	for _, existing := range s.f.subscribers {
		if existing.Email == sub.Email {
			return store.ErrAlreadyExists
		}
	}
	cp := *sub
	s.f.subscribers[sub.ID] = &cp
	return nil
}

func (s fakeSubscribers) List(context.Context) ([]*store.Subscriber, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := make([]*store.Subscriber, 0, len(s.f.subscribers))
	for _, sub := range s.f.subscribers {
		cp := *sub
		out = append(out, &cp)
	}
	return out, nil
}

func (s fakeSubscribers) ListActive(context.Context) ([]*store.Subscriber, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var out []*store.Subscriber
	for _, sub := range s.f.subscribers {
		if sub.Status == "active" {
			cp := *sub
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s fakeSubscribers) UpdateStatus(_ context.Context, id, status string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	sub, ok := s.f.subscribers[id]
	if !ok {
		return store.ErrNotFound
	}
	sub.Status = status
	return nil
}

type fakePages struct{ f *fakeStore }

func (s fakePages) Get(_ context.Context, slug string) (*store.Page, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	p, ok := s.f.pages[slug]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s fakePages) Upsert(_ context.Context, p *store.Page) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.f.pages[p.Slug] = &cp
	return nil
}

type fakeContacts struct{ f *fakeStore }

func (s fakeContacts) Create(_ context.Context, t *store.ContactTicket) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if t.ID == "" {
		t.ID = ids.New()
	}
	if t.Status == "" {
		t.Status = store.ContactStatusNew
	}
	t.CreatedAt = time.Now().UTC()
	cp := *t
	s.f.contacts[t.ID] = &cp
	return nil
}

func (s fakeContacts) Find(_ context.Context, id string) (*store.ContactTicket, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	t, ok := s.f.contacts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s fakeContacts) List(context.Context) ([]*store.ContactTicket, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	out := make([]*store.ContactTicket, 0, len(s.f.contacts))
	for _, t := range s.f.contacts {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s fakeContacts) MarkPending(_ context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	t, ok := s.f.contacts[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	t.Status = store.ContactStatusPending
	t.MovedToPending = &now
	return nil
}

func (s fakeContacts) Complete(_ context.Context, id, adminComment string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	t, ok := s.f.contacts[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	t.Status = store.ContactStatusCompleted
	t.AdminComment = adminComment
	t.CompletedAt = &now
	return nil
}

func (s fakeContacts) Delete(_ context.Context, id string) error {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	if _, ok := s.f.contacts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.f.contacts, id)
	return nil
}
