package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/export"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService.
// Every method acts on behalf of the user placed in the context by the auth interceptor.
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	ledger *ledger.Service
}

// NewExpenseService creates a new ExpenseService backed by the given ledger.
func NewExpenseService(l *ledger.Service) *ExpenseService {
	return &ExpenseService{ledger: l}
}

func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// AddExpense splits and stores a new expense added by the caller.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("AddExpense request received",
		"title", req.Msg.Title,
		"method", req.Msg.SplitMethod,
		"participants_count", len(req.Msg.Participants),
	)

	expense, err := s.ledger.AddExpense(ctx, ledger.NewExpense{
		Title:        req.Msg.Title,
		TotalAmount:  req.Msg.TotalAmount,
		SplitMethod:  models.SplitMethod(req.Msg.SplitMethod),
		Participants: req.Msg.Participants,
		SplitAmounts: req.Msg.SplitAmounts,
		Percentages:  req.Msg.Percentages,
		AddedBy:      userID,
	})
	if err != nil {
		return nil, toConnectError("AddExpense", err)
	}

	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// GetUserLedger returns the caller's share of every expense they participate in.
func (s *ExpenseService) GetUserLedger(ctx context.Context, req *connect.Request[api.GetUserLedgerRequest]) (*connect.Response[api.GetUserLedgerResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	l, err := s.ledger.UserLedger(ctx, userID)
	if err != nil {
		return nil, toConnectError("GetUserLedger", err)
	}

	slog.Debug("Ledger built", "user_id", userID, "entries", len(l.Expenses), "total", l.TotalExpense)

	return connect.NewResponse(&api.GetUserLedgerResponse{
		TotalExpense: l.TotalExpense,
		Expenses:     toAPILedgerEntries(l.Expenses),
	}), nil
}

// ListUserExpenses returns the raw expenses the caller participates in.
func (s *ExpenseService) ListUserExpenses(ctx context.Context, req *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.ledger.UserExpenses(ctx, userID)
	if err != nil {
		return nil, toConnectError("ListUserExpenses", err)
	}

	return connect.NewResponse(&api.ListUserExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// ListAllExpenses returns every stored expense.
func (s *ExpenseService) ListAllExpenses(ctx context.Context, req *connect.Request[api.ListAllExpensesRequest]) (*connect.Response[api.ListAllExpensesResponse], error) {
	if _, err := callerID(ctx); err != nil {
		return nil, err
	}

	expenses, err := s.ledger.AllExpenses(ctx)
	if err != nil {
		return nil, toConnectError("ListAllExpenses", err)
	}

	return connect.NewResponse(&api.ListAllExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// DownloadBalanceSheet renders the caller's expenses (type "user") or every
// expense as CSV.
func (s *ExpenseService) DownloadBalanceSheet(ctx context.Context, req *connect.Request[api.DownloadBalanceSheetRequest]) (*connect.Response[api.DownloadBalanceSheetResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	data, err := s.ledger.BalanceSheet(ctx, req.Msg.Type, userID)
	if err != nil {
		return nil, toConnectError("DownloadBalanceSheet", err)
	}

	slog.Info("Balance sheet generated", "user_id", userID, "type", req.Msg.Type, "bytes", len(data))

	return connect.NewResponse(&api.DownloadBalanceSheetResponse{
		Filename:    export.BalanceSheetFilename,
		ContentType: export.CSVContentType,
		Content:     data,
	}), nil
}
