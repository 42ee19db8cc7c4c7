package store

import "time"

// Supplier kinds. Package suppliers provide finished packaging, raw suppliers
// provide loose material priced per gram.
const (
	SupplierKindPackage = "package"
	SupplierKindRaw     = "raw"
)

// Kanban ticket columns.
var TicketStatuses = []string{"todo", "in-progress", "uat", "qa", "done"}

// Contact ticket triage states.
const (
	ContactStatusNew       = "new"
	ContactStatusPending   = "pending"
	ContactStatusCompleted = "completed"
)

// Category groups catalog products on the storefront. Names are unique.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResearchVersion is one document revision of a research entry. Numbers
// start at 1 and only ever grow.
type ResearchVersion struct {
	ID            string    `json:"id"`
	VersionNumber int       `json:"versionNumber"`
	FileName      string    `json:"fileName"`
	FileURL       string    `json:"fileUrl"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

// ResearchEntry is an R&D document with its revision history.
type ResearchEntry struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Versions    []ResearchVersion `json:"versions"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NetQuantity is one sale unit of a product (e.g. "250g" at a price).
type NetQuantity struct {
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
}

// Product is a catalog entry managed from the console.
type Product struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Variety       string        `json:"variety"`
	ItemForm      string        `json:"itemForm"`
	DietType      string        `json:"dietType"`
	NetQuantities []NetQuantity `json:"netQuantities"`
	Images        []string      `json:"images"`
	UseBy         string        `json:"useBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Supplier covers both package and raw-material suppliers; Kind tells them
// apart and UnitPrice is per unit or per gram accordingly.
type Supplier struct {
	ID                 string    `json:"id"`
	Kind               string    `json:"kind"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	ProductDescription string    `json:"productDescription"`
	Note               string    `json:"note"`
	Status             string    `json:"status"`
	MinOrderValue      float64   `json:"minOrderValue"`
	UnitPrice          float64   `json:"unitPrice"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Ticket is a card on the internal kanban board.
type Ticket struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Priority     string    `json:"priority"`
	ExternalLink string    `json:"externalLink,omitempty"`
	AssignedTo   string    `json:"assignedTo"`
	StartDate    string    `json:"startDate"`
	DueDate      string    `json:"dueDate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Subscriber is a newsletter recipient.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// Page is a CMS content document addressed by slug. Body holds the section
// tree as JSON; the server does not interpret it.
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      []byte    `json:"body"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactTicket is a visitor message moving through the triage board.
type ContactTicket struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Message         string     `json:"message"`
	Status          string     `json:"status"`
	AdminComment    string     `json:"adminComment,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	MovedToPending  *time.Time `json:"movedToPendingAt,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}
