package models

// EntryKind distinguishes income from expense entries.
// The sign of a money flow is carried here, never by the amount.
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// Valid reports whether the kind is one of the two enumerated values.
func (k EntryKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Simulation represents a named life plan owned by one user.
// It holds an insertion-ordered collection of entries.
type Simulation struct {
	// ID is the unique identifier for the simulation (UUID format).
	ID string `json:"id"`

	// Title is the user-provided name for the plan.
	Title string `json:"title"`

	// BaseAge is the starting age of the plan timeline.
	// Entries are not constrained to ages at or above it.
	BaseAge int `json:"baseAge"`

	// UserID identifies the owning user. All queries are scoped by it.
	UserID string `json:"userId"`

	// Entries are the income/expense line items, in insertion order.
	Entries []Entry `json:"entries"`

	// CreatedAt is the Unix timestamp when the simulation was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last change.
	// Listing orders by this, most recent first.
	UpdatedAt int64 `json:"updatedAt"`
}

// Entry represents a single age-indexed income or expense line item.
// It belongs to exactly one simulation and has no independent lifecycle.
type Entry struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string `json:"id"`

	// Age is the age at which the amount applies. Non-negative.
	Age int `json:"age"`

	// Kind is income or expense.
	Kind EntryKind `json:"kind"`

	// Label is the human-readable name of the item (e.g. salary, rent).
	Label string `json:"label"`

	// Amount is the non-negative value in man-yen (10,000 yen units).
	Amount int `json:"amount"`
}
