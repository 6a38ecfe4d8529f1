// Package notify publishes ledger events to interested consumers.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// ExpenseCreatedRoutingKey is the routing key of ExpenseCreated messages.
const ExpenseCreatedRoutingKey = "expense.created"

// Publisher announces ledger events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishExpenseCreated(ctx context.Context, expense *models.Expense) error
	Close() error
}

// ExpenseCreated is the lightweight message sent after an expense is stored.
// Consumers fetch the full record if they need the shares.
type ExpenseCreated struct {
	ID          string    `json:"id"`
	AddedBy     string    `json:"addedBy"`
	TotalAmount float64   `json:"totalAmount"`
	SplitMethod string    `json:"splitMethod"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseCreated builds the message for expense.
func NewExpenseCreated(expense *models.Expense) *ExpenseCreated {
	return &ExpenseCreated{
		ID:          expense.ID,
		AddedBy:     expense.AddedBy,
		TotalAmount: expense.TotalAmount,
		SplitMethod: string(expense.SplitMethod),
		Timestamp:   expense.CreatedAt,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseCreated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Nop discards every event. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishExpenseCreated(context.Context, *models.Expense) error { return nil }
func (Nop) Close() error                                               { return nil }
