package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"villorya.app/internal/auth"
	"villorya.app/internal/ids"
)

const pgErrUniqueViolation = "23505"

var _ Store = (*SQLStore)(nil)

// SQLStore implements Store on database/sql. Queries are written with
// PostgreSQL placeholders and rebound to '?' for the SQLite driver.
type SQLStore struct {
	db     *sql.DB
	rebind func(string) string
	now    func() time.Time
}

// NewSQLStore wraps db for the named driver ("pgx" or "sqlite").
func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	s := &SQLStore{db: db, rebind: identityRebind, now: time.Now}
	if driver == "sqlite" {
		s.rebind = sqliteRebind
	}
	return s
}

func identityRebind(q string) string { return q }

// sqliteRebind rewrites $1..$N placeholders to '?'. Positional arguments are
// never repeated in this package, so a plain scan is enough.
func sqliteRebind(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	for i := 0; i < len(q); i++ {
		if q[i] == '$' && i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9' {
			b.WriteByte('?')
			for i+1 < len(q) && q[i+1] >= '0' && q[i+1] <= '9' {
				i++
			}
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func (s *SQLStore) Users(context.Context) UserStore            { return &userStore{s} }
func (s *SQLStore) Products(context.Context) ProductStore      { return &productStore{s} }
func (s *SQLStore) Categories(context.Context) CategoryStore   { return &categoryStore{s} }
func (s *SQLStore) Suppliers(context.Context) SupplierStore    { return &supplierStore{s} }
func (s *SQLStore) Tickets(context.Context) TicketStore        { return &ticketStore{s} }
func (s *SQLStore) Research(context.Context) ResearchStore     { return &researchStore{s} }
func (s *SQLStore) Newsletter(context.Context) SubscriberStore { return &subscriberStore{s} }
func (s *SQLStore) Pages(context.Context) PageStore            { return &pageStore{s} }
func (s *SQLStore) Contacts(context.Context) ContactStore      { return &contactStore{s} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// mapConflict converts driver-level unique violations to ErrAlreadyExists.
// pgx surfaces SQLSTATE 23505 as a typed error; the sqlite driver only gives
// the constraint message.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return ErrAlreadyExists
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrAlreadyExists
	}
	return err
}

func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// User store ---------------------------------------------------------------

type userStore struct{ s *SQLStore }

func (st *userStore) Create(ctx context.Context, u *auth.User) error {
	if u.ID == "" {
		u.ID = ids.New()
	}
	if u.Status == "" {
		u.Status = "active"
	}
	now := st.s.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into users(id, email, password_hash, status, created_at, updated_at) values($1,$2,$3,$4,$5,$6)`),
		u.ID, u.Email, u.PasswordHash, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	return mapConflict(err)
}

func (st *userStore) Find(ctx context.Context, id string) (*auth.User, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select id, email, password_hash, status, created_at, updated_at from users where id=$1`), id)
	return scanUser(row)
}

func (st *userStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select id, email, password_hash, status, created_at, updated_at from users where email=$1`),
		strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &u, nil
}

// Product store ------------------------------------------------------------

type productStore struct{ s *SQLStore }

func (st *productStore) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := st.s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	quantities, err := json.Marshal(p.NetQuantities)
	if err != nil {
		return fmt.Errorf("encode net quantities: %w", err)
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	_, err = st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into products(id, title, variety, item_form, diet_type, net_quantities, images, use_by, created_at, updated_at)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`),
		p.ID, p.Title, p.Variety, p.ItemForm, p.DietType, string(quantities), string(images), p.UseBy, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

const productColumns = `id, title, variety, item_form, diet_type, net_quantities, images, use_by, created_at, updated_at`

func (st *productStore) Find(ctx context.Context, id string) (*Product, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select `+productColumns+` from products where id=$1`), id)
	return scanProduct(row.Scan)
}

func (st *productStore) List(ctx context.Context) ([]*Product, error) {
	rows, err := st.s.db.QueryContext(ctx,
		`select `+productColumns+` from products order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func scanProduct(scan func(...any) error) (*Product, error) {
	var (
		p          Product
		quantities string
		images     string
	)
	if err := scan(&p.ID, &p.Title, &p.Variety, &p.ItemForm, &p.DietType, &quantities, &images, &p.UseBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(quantities), &p.NetQuantities); err != nil {
		return nil, fmt.Errorf("decode net quantities: %w", err)
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	return &p, nil
}

func (st *productStore) Update(ctx context.Context, p *Product) error {
	p.UpdatedAt = st.s.now().UTC()
	quantities, err := json.Marshal(p.NetQuantities)
	if err != nil {
		return fmt.Errorf("encode net quantities: %w", err)
	}
	images, err := json.Marshal(p.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update products set title=$1, variety=$2, item_form=$3, diet_type=$4, net_quantities=$5, images=$6, use_by=$7, updated_at=$8 where id=$9`),
		p.Title, p.Variety, p.ItemForm, p.DietType, string(quantities), string(images), p.UseBy, p.UpdatedAt, p.ID,
	)
	return affectedOrNotFound(res, err)
}

func (st *productStore) Delete(ctx context.Context, id string) error {
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(`delete from products where id=$1`), id)
	return affectedOrNotFound(res, err)
}

// Category store -----------------------------------------------------------

type categoryStore struct{ s *SQLStore }

func (st *categoryStore) Create(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = ids.New()
	}
	now := st.s.now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into categories(id, name, image, created_at, updated_at) values($1,$2,$3,$4,$5)`),
		c.ID, c.Name, c.Image, c.CreatedAt, c.UpdatedAt,
	)
	return mapConflict(err)
}

func (st *categoryStore) Find(ctx context.Context, id string) (*Category, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select id, name, image, created_at, updated_at from categories where id=$1`), id)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (st *categoryStore) List(ctx context.Context) ([]*Category, error) {
	rows, err := st.s.db.QueryContext(ctx,
		`select id, name, image, created_at, updated_at from categories order by name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, &c)
	}
	return res, rows.Err()
}

func (st *categoryStore) Update(ctx context.Context, c *Category) error {
	c.UpdatedAt = st.s.now().UTC()
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update categories set name=$1, image=$2, updated_at=$3 where id=$4`),
		c.Name, c.Image, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return mapConflict(err)
	}
	return affectedOrNotFound(res, err)
}

func (st *categoryStore) Delete(ctx context.Context, id string) error {
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(`delete from categories where id=$1`), id)
	return affectedOrNotFound(res, err)
}

// Research store -----------------------------------------------------------

type researchStore struct{ s *SQLStore }

const researchColumns = `id, title, description, tags, versions, created_at, updated_at`

func (st *researchStore) Create(ctx context.Context, e *ResearchEntry) error {
	if e.ID == "" {
		e.ID = ids.New()
	}
	now := st.s.now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	versions, err := json.Marshal(e.Versions)
	if err != nil {
		return fmt.Errorf("encode versions: %w", err)
	}
	_, err = st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into research_entries(`+researchColumns+`) values($1,$2,$3,$4,$5,$6,$7)`),
		e.ID, e.Title, e.Description, string(tags), string(versions), e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (st *researchStore) Find(ctx context.Context, id string) (*ResearchEntry, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select `+researchColumns+` from research_entries where id=$1`), id)
	return scanResearch(row.Scan)
}

func (st *researchStore) List(ctx context.Context) ([]*ResearchEntry, error) {
	rows, err := st.s.db.QueryContext(ctx,
		`select `+researchColumns+` from research_entries order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*ResearchEntry
	for rows.Next() {
		e, err := scanResearch(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func scanResearch(scan func(...any) error) (*ResearchEntry, error) {
	var (
		e        ResearchEntry
		tags     string
		versions string
	)
	if err := scan(&e.ID, &e.Title, &e.Description, &tags, &versions, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal([]byte(versions), &e.Versions); err != nil {
		return nil, fmt.Errorf("decode versions: %w", err)
	}
	return &e, nil
}

func (st *researchStore) Update(ctx context.Context, e *ResearchEntry) error {
	e.UpdatedAt = st.s.now().UTC()
	tags, err := json.Marshal(e.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update research_entries set title=$1, description=$2, tags=$3, updated_at=$4 where id=$5`),
		e.Title, e.Description, string(tags), e.UpdatedAt, e.ID,
	)
	return affectedOrNotFound(res, err)
}

func (st *researchStore) AddVersion(ctx context.Context, id string, v ResearchVersion) (*ResearchEntry, error) {
	entry, err := st.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.ID == "" {
		v.ID = ids.New()
	}
	v.VersionNumber = len(entry.Versions) + 1
	if v.UploadedAt.IsZero() {
		v.UploadedAt = st.s.now().UTC()
	}
	entry.Versions = append(entry.Versions, v)
	entry.UpdatedAt = st.s.now().UTC()

	versions, err := json.Marshal(entry.Versions)
	if err != nil {
		return nil, fmt.Errorf("encode versions: %w", err)
	}
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update research_entries set versions=$1, updated_at=$2 where id=$3`),
		string(versions), entry.UpdatedAt, id,
	)
	if err := affectedOrNotFound(res, err); err != nil {
		return nil, err
	}
	return entry, nil
}

func (st *researchStore) Delete(ctx context.Context, id string) error {
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(`delete from research_entries where id=$1`), id)
	return affectedOrNotFound(res, err)
}

// Supplier store -----------------------------------------------------------

type supplierStore struct{ s *SQLStore }

const supplierColumns = `id, kind, name, email, phone, product_description, note, status, min_order_value, unit_price, created_at, updated_at`

func (st *supplierStore) Create(ctx context.Context, sup *Supplier) error {
	if sup.ID == "" {
		sup.ID = ids.New()
	}
	if sup.Status == "" {
		sup.Status = "active"
	}
	now := st.s.now().UTC()
	sup.CreatedAt, sup.UpdatedAt = now, now
	_, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into suppliers(`+supplierColumns+`) values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`),
		sup.ID, sup.Kind, sup.Name, sup.Email, sup.Phone, sup.ProductDescription, sup.Note, sup.Status,
		sup.MinOrderValue, sup.UnitPrice, sup.CreatedAt, sup.UpdatedAt,
	)
	return err
}

func (st *supplierStore) Find(ctx context.Context, id string) (*Supplier, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select `+supplierColumns+` from suppliers where id=$1`), id)
	return scanSupplier(row.Scan)
}

func (st *supplierStore) ListByKind(ctx context.Context, kind string) ([]*Supplier, error) {
	rows, err := st.s.db.QueryContext(ctx, st.s.rebind(
		`select `+supplierColumns+` from suppliers where kind=$1 order by created_at desc`), kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Supplier
	for rows.Next() {
		sup, err := scanSupplier(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, sup)
	}
	return res, rows.Err()
}

func scanSupplier(scan func(...any) error) (*Supplier, error) {
	var sup Supplier
	if err := scan(&sup.ID, &sup.Kind, &sup.Name, &sup.Email, &sup.Phone, &sup.ProductDescription,
		&sup.Note, &sup.Status, &sup.MinOrderValue, &sup.UnitPrice, &sup.CreatedAt, &sup.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &sup, nil
}

func (st *supplierStore) Update(ctx context.Context, sup *Supplier) error {
	sup.UpdatedAt = st.s.now().UTC()
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update suppliers set name=$1, email=$2, phone=$3, product_description=$4, note=$5, status=$6, min_order_value=$7, unit_price=$8, updated_at=$9 where id=$10`),
		sup.Name, sup.Email, sup.Phone, sup.ProductDescription, sup.Note, sup.Status,
		sup.MinOrderValue, sup.UnitPrice, sup.UpdatedAt, sup.ID,
	)
	return affectedOrNotFound(res, err)
}

func (st *supplierStore) Delete(ctx context.Context, id string) error {
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(`delete from suppliers where id=$1`), id)
	return affectedOrNotFound(res, err)
}

// Ticket store -------------------------------------------------------------

type ticketStore struct{ s *SQLStore }

const ticketColumns = `id, title, description, category, priority, external_link, assigned_to, start_date, due_date, status, created_at, updated_at`

func (st *ticketStore) Create(ctx context.Context, t *Ticket) error {
	if t.ID == "" {
		t.ID = ids.New()
	}
	if t.Status == "" {
		t.Status = "todo"
	}
	now := st.s.now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	_, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into tickets(`+ticketColumns+`) values($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`),
		t.ID, t.Title, t.Description, t.Category, t.Priority, t.ExternalLink, t.AssignedTo,
		t.StartDate, t.DueDate, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (st *ticketStore) Find(ctx context.Context, id string) (*Ticket, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select `+ticketColumns+` from tickets where id=$1`), id)
	return scanTicket(row.Scan)
}

func (st *ticketStore) List(ctx context.Context) ([]*Ticket, error) {
	rows, err := st.s.db.QueryContext(ctx,
		`select `+ticketColumns+` from tickets order by created_at asc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Ticket
	for rows.Next() {
		t, err := scanTicket(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func scanTicket(scan func(...any) error) (*Ticket, error) {
	var t Ticket
	if err := scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Priority, &t.ExternalLink,
		&t.AssignedTo, &t.StartDate, &t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (st *ticketStore) Update(ctx context.Context, t *Ticket) error {
	t.UpdatedAt = st.s.now().UTC()
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update tickets set title=$1, description=$2, category=$3, priority=$4, external_link=$5, assigned_to=$6, start_date=$7, due_date=$8, status=$9, updated_at=$10 where id=$11`),
		t.Title, t.Description, t.Category, t.Priority, t.ExternalLink, t.AssignedTo,
		t.StartDate, t.DueDate, t.Status, t.UpdatedAt, t.ID,
	)
	return affectedOrNotFound(res, err)
}

func (st *ticketStore) Delete(ctx context.Context, id string) error {
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(`delete from tickets where id=$1`), id)
	return affectedOrNotFound(res, err)
}

// Subscriber store ---------------------------------------------------------

type subscriberStore struct{ s *SQLStore }

func (st *subscriberStore) Create(ctx context.Context, sub *Subscriber) error {
	if sub.ID == "" {
		sub.ID = ids.New()
	}
	if sub.Status == "" {
		sub.Status = "active"
	}
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = st.s.now().UTC()
	}
	_, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into subscribers(id, email, status, subscribed_at) values($1,$2,$3,$4)`),
		sub.ID, strings.ToLower(strings.TrimSpace(sub.Email)), sub.Status, sub.SubscribedAt,
	)
	return mapConflict(err)
}

func (st *subscriberStore) List(ctx context.Context) ([]*Subscriber, error) {
	return st.list(ctx, `select id, email, status, subscribed_at from subscribers order by subscribed_at desc`)
}

func (st *subscriberStore) ListActive(ctx context.Context) ([]*Subscriber, error) {
	return st.list(ctx, `select id, email, status, subscribed_at from subscribers where status='active' order by subscribed_at desc`)
}

func (st *subscriberStore) list(ctx context.Context, query string) ([]*Subscriber, error) {
	rows, err := st.s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Subscriber
	for rows.Next() {
		var sub Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Status, &sub.SubscribedAt); err != nil {
			return nil, err
		}
		res = append(res, &sub)
	}
	return res, rows.Err()
}

func (st *subscriberStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update subscribers set status=$1 where id=$2`), status, id)
	return affectedOrNotFound(res, err)
}

// Page store ---------------------------------------------------------------

type pageStore struct{ s *SQLStore }

func (st *pageStore) Get(ctx context.Context, slug string) (*Page, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select slug, title, body, updated_at from pages where slug=$1`), slug)
	var (
		p    Page
		body string
	)
	if err := row.Scan(&p.Slug, &p.Title, &body, &p.UpdatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	p.Body = []byte(body)
	return &p, nil
}

func (st *pageStore) Upsert(ctx context.Context, p *Page) error {
	p.UpdatedAt = st.s.now().UTC()
	body := string(p.Body)
	if body == "" {
		body = "{}"
	}
	// The on-conflict form below is accepted by both PostgreSQL and SQLite.
	_, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into pages(slug, title, body, updated_at) values($1,$2,$3,$4)
		 on conflict(slug) do update set title=excluded.title, body=excluded.body, updated_at=excluded.updated_at`),
		p.Slug, p.Title, body, p.UpdatedAt,
	)
	return err
}

// Contact store ------------------------------------------------------------

type contactStore struct{ s *SQLStore }

const contactColumns = `id, name, email, message, status, admin_comment, created_at, moved_to_pending, completed_at`

func (st *contactStore) Create(ctx context.Context, t *ContactTicket) error {
	if t.ID == "" {
		t.ID = ids.New()
	}
	if t.Status == "" {
		t.Status = ContactStatusNew
	}
	t.CreatedAt = st.s.now().UTC()
	_, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`insert into contact_tickets(id, name, email, message, status, admin_comment, created_at) values($1,$2,$3,$4,$5,$6,$7)`),
		t.ID, t.Name, t.Email, t.Message, t.Status, t.AdminComment, t.CreatedAt,
	)
	return err
}

func (st *contactStore) Find(ctx context.Context, id string) (*ContactTicket, error) {
	row := st.s.db.QueryRowContext(ctx, st.s.rebind(
		`select `+contactColumns+` from contact_tickets where id=$1`), id)
	return scanContact(row.Scan)
}

func (st *contactStore) List(ctx context.Context) ([]*ContactTicket, error) {
	rows, err := st.s.db.QueryContext(ctx,
		`select `+contactColumns+` from contact_tickets order by created_at desc`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*ContactTicket
	for rows.Next() {
		t, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func scanContact(scan func(...any) error) (*ContactTicket, error) {
	var (
		t         ContactTicket
		pending   sql.NullTime
		completed sql.NullTime
	)
	if err := scan(&t.ID, &t.Name, &t.Email, &t.Message, &t.Status, &t.AdminComment, &t.CreatedAt, &pending, &completed); err != nil {
		return nil, mapNotFound(err)
	}
	if pending.Valid {
		t.MovedToPending = &pending.Time
	}
	if completed.Valid {
		t.CompletedAt = &completed.Time
	}
	return &t, nil
}

func (st *contactStore) MarkPending(ctx context.Context, id string) error {
	now := st.s.now().UTC()
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update contact_tickets set status=$1, moved_to_pending=$2 where id=$3`),
		ContactStatusPending, now, id)
	return affectedOrNotFound(res, err)
}

func (st *contactStore) Complete(ctx context.Context, id, adminComment string) error {
	now := st.s.now().UTC()
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(
		`update contact_tickets set status=$1, admin_comment=$2, completed_at=$3 where id=$4`),
		ContactStatusCompleted, adminComment, now, id)
	return affectedOrNotFound(res, err)
}

func (st *contactStore) Delete(ctx context.Context, id string) error {
	res, err := st.s.db.ExecContext(ctx, st.s.rebind(`delete from contact_tickets where id=$1`), id)
	return affectedOrNotFound(res, err)
}
