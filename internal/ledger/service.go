// Package ledger orchestrates the split engine, the record store and the
// exporters behind the expense operations.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/export"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/storage"
)

const (
	// ScopeUser restricts a balance sheet to the caller's expenses.
	// Any other scope exports every expense.
	ScopeUser = "user"

	missingFieldsMessage = "Title, total amount, and participants are required"
)

// ErrNoRecords is returned when a balance sheet would be empty.
var ErrNoRecords = errors.New("No expenses found to generate the balance sheet")

// NewExpense is the raw input of AddExpense.
type NewExpense struct {
	Title        string
	TotalAmount  float64
	SplitMethod  models.SplitMethod
	Participants []string
	SplitAmounts map[string]float64
	Percentages  map[string]float64
	AddedBy      string
}

// Service implements the expense operations.
type Service struct {
	store     storage.Store
	publisher notify.Publisher
	metrics   *metrics.Metrics
}

// NewService creates a Service. A nil publisher disables notifications and
// nil metrics disables instrumentation.
func NewService(store storage.Store, publisher notify.Publisher, m *metrics.Metrics) *Service {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &Service{store: store, publisher: publisher, metrics: m}
}

// AddExpense validates the split and stores the expense.
// A *calculator.ValidationError is returned for inconsistent input; nothing
// is written in that case.
func (s *Service) AddExpense(ctx context.Context, in NewExpense) (*models.Expense, error) {
	if strings.TrimSpace(in.Title) == "" || in.TotalAmount == 0 || len(in.Participants) == 0 {
		return nil, &calculator.ValidationError{Method: in.SplitMethod, Message: missingFieldsMessage}
	}

	shares, err := calculator.ComputeSplit(in.TotalAmount, in.Participants, in.SplitMethod, calculator.SplitParams{
		SplitAmounts: in.SplitAmounts,
		Percentages:  in.Percentages,
	})
	if err != nil {
		slog.Debug("Split rejected", "method", in.SplitMethod, "error", err)
		s.metrics.IncSplitRejected(string(in.SplitMethod))
		return nil, err
	}

	expense := &models.Expense{
		Title:        strings.TrimSpace(in.Title),
		TotalAmount:  in.TotalAmount,
		SplitMethod:  in.SplitMethod,
		SplitAmounts: shares,
		Participants: append([]string(nil), in.Participants...),
		AddedBy:      in.AddedBy,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	s.metrics.IncExpenseCreated(string(expense.SplitMethod))

	// The record exists at this point; a lost notification is not a failed request.
	if err := s.publisher.PublishExpenseCreated(ctx, expense); err != nil {
		slog.Warn("Failed to publish expense created", "expense_id", expense.ID, "error", err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"method", expense.SplitMethod,
		"participants", len(expense.Participants),
		"added_by", expense.AddedBy,
	)
	return expense, nil
}

// UserLedger returns userID's share of every expense they participate in.
func (s *Service) UserLedger(ctx context.Context, userID string) (models.Ledger, error) {
	expenses, err := s.UserExpenses(ctx, userID)
	if err != nil {
		return models.Ledger{}, err
	}
	return calculator.BuildLedger(userID, expenses), nil
}

// UserExpenses returns the raw records userID participates in, oldest first.
func (s *Service) UserExpenses(ctx context.Context, userID string) ([]*models.Expense, error) {
	if userID == "" {
		return nil, &calculator.ValidationError{Message: "user id is required"}
	}
	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{Participant: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for user %s: %w", userID, err)
	}
	return expenses, nil
}

// AllExpenses returns every stored expense, oldest first.
func (s *Service) AllExpenses(ctx context.Context) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// BalanceSheet renders the selected expenses as CSV. scope ScopeUser selects
// userID's expenses, anything else selects all of them.
func (s *Service) BalanceSheet(ctx context.Context, scope, userID string) ([]byte, error) {
	var (
		expenses []*models.Expense
		err      error
	)
	if scope == ScopeUser {
		expenses, err = s.UserExpenses(ctx, userID)
	} else {
		expenses, err = s.AllExpenses(ctx)
	}
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, ErrNoRecords
	}

	data, err := export.BalanceSheetCSV(expenses)
	if err != nil {
		return nil, fmt.Errorf("failed to render balance sheet: %w", err)
	}
	return data, nil
}
