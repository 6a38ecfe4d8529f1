package models

import "time"

// SplitMethod is the policy used to distribute an expense total among participants.
type SplitMethod string

const (
	SplitEqual      SplitMethod = "equal"
	SplitExact      SplitMethod = "exact"
	SplitPercentage SplitMethod = "percentage"
)

// Valid reports whether m is one of the recognized split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitEqual, SplitExact, SplitPercentage:
		return true
	}
	return false
}

// Expense is a shared cost split among participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format), assigned by the store.
	ID string

	// Title is the human-readable name of the expense. Never empty.
	Title string

	// TotalAmount is the nominal cost. Always positive.
	TotalAmount float64

	// SplitMethod is fixed at creation.
	SplitMethod SplitMethod

	// SplitAmounts maps participant user ID to the amount that participant owes.
	// Enumeration order is not meaningful.
	SplitAmounts map[string]float64

	// Participants is the ordered list of user IDs sharing the expense.
	Participants []string

	// AddedBy is the user ID of the creator.
	AddedBy string

	// CreatedAt and UpdatedAt are set by the store.
	CreatedAt time.Time
	UpdatedAt time.Time

	// Version is the store-maintained record version. Starts at 1.
	Version int64
}

// ShareOf returns the amount userID owes on this expense and whether an entry exists.
func (e *Expense) ShareOf(userID string) (float64, bool) {
	share, ok := e.SplitAmounts[userID]
	return share, ok
}

// HasParticipant reports whether userID is listed as a participant.
func (e *Expense) HasParticipant(userID string) bool {
	for _, p := range e.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// LedgerEntry is one expense as seen by a single participant.
type LedgerEntry struct {
	ID        string
	Title     string
	Share     float64 // 0 when the expense has no entry for the user
	AddedBy   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// Ledger is a user's aggregated view across every expense they participate in.
type Ledger struct {
	UserID       string
	TotalExpense float64
	Expenses     []LedgerEntry
}
