package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"math"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddExpense(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    *api.AddExpenseRequest
		shares map[string]float64
	}{
		{
			name: "equal",
			req: &api.AddExpenseRequest{
				Title: "Dinner", TotalAmount: 300, SplitMethod: "equal",
				Participants: []string{"Alice", "Bob", "Carol"},
			},
			shares: map[string]float64{"Alice": 100, "Bob": 100, "Carol": 100},
		},
		{
			name: "exact",
			req: &api.AddExpenseRequest{
				Title: "Tickets", TotalAmount: 100, SplitMethod: "exact",
				Participants: []string{"Alice", "Bob"},
				SplitAmounts: map[string]float64{"Alice": 60, "Bob": 40},
			},
			shares: map[string]float64{"Alice": 60, "Bob": 40},
		},
		{
			name: "percentage",
			req: &api.AddExpenseRequest{
				Title: "Rent", TotalAmount: 1000, SplitMethod: "percentage",
				Participants: []string{"Alice", "Bob"},
				Percentages:  map[string]float64{"Alice": 70, "Bob": 30},
			},
			shares: map[string]float64{"Alice": 700, "Bob": 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := clients.expenses.AddExpense(ctx, connect.NewRequest(tt.req))
			if err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}

			expense := resp.Msg.Expense
			if expense.Id == "" {
				t.Error("Expected expense ID to be assigned")
			}
			if expense.AddedBy != "Alice" {
				t.Errorf("Expected AddedBy Alice, got %q", expense.AddedBy)
			}
			if expense.Version != 1 {
				t.Errorf("Expected version 1, got %d", expense.Version)
			}
			if len(expense.SplitAmounts) != len(tt.shares) {
				t.Fatalf("Expected %d shares, got %d", len(tt.shares), len(expense.SplitAmounts))
			}
			for person, want := range tt.shares {
				if got := expense.SplitAmounts[person]; !approxEqual(got, want) {
					t.Errorf("%s: expected share %.2f, got %.2f", person, want, got)
				}
			}
		})
	}
}

func TestAddExpense_Invalid(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *api.AddExpenseRequest
		message string
	}{
		{
			name:    "missing fields",
			req:     &api.AddExpenseRequest{SplitMethod: "equal"},
			message: "Title, total amount, and participants are required",
		},
		{
			name: "unknown method",
			req: &api.AddExpenseRequest{
				Title: "x", TotalAmount: 10, SplitMethod: "shares", Participants: []string{"Alice"},
			},
			message: "Invalid split method",
		},
		{
			name: "exact amounts do not add up",
			req: &api.AddExpenseRequest{
				Title: "x", TotalAmount: 100, SplitMethod: "exact", Participants: []string{"Alice", "Bob"},
				SplitAmounts: map[string]float64{"Alice": 60, "Bob": 30},
			},
			message: "Exact amounts must add up to the total amount",
		},
		{
			name: "percentages do not add up",
			req: &api.AddExpenseRequest{
				Title: "x", TotalAmount: 100, SplitMethod: "percentage", Participants: []string{"Alice", "Bob"},
				Percentages: map[string]float64{"Alice": 60, "Bob": 30},
			},
			message: "Percentages must add up to 100%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clients.expenses.AddExpense(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)

			var connectErr *connect.Error
			if !asConnectError(err, &connectErr) {
				t.Fatalf("expected *connect.Error, got %T", err)
			}
			if connectErr.Message() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, connectErr.Message())
			}
		})
	}

	// Nothing was stored by the rejected requests.
	resp, err := clients.expenses.ListAllExpenses(ctx, connect.NewRequest(&api.ListAllExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListAllExpenses failed: %v", err)
	}
	if len(resp.Msg.Expenses) != 0 {
		t.Errorf("Expected no expenses, got %d", len(resp.Msg.Expenses))
	}
}

func seedExpenses(t *testing.T, clients testClients) {
	t.Helper()
	ctx := context.Background()

	requests := []*connect.Request[api.AddExpenseRequest]{
		asUser(&api.AddExpenseRequest{
			Title: "Dinner", TotalAmount: 300, SplitMethod: "equal",
			Participants: []string{"Alice", "Bob", "Carol"},
		}, "Alice"),
		asUser(&api.AddExpenseRequest{
			Title: "Tickets", TotalAmount: 100, SplitMethod: "exact",
			Participants: []string{"Alice", "Bob"},
			SplitAmounts: map[string]float64{"Alice": 60, "Bob": 40},
		}, "Bob"),
		asUser(&api.AddExpenseRequest{
			Title: "Groceries", TotalAmount: 50, SplitMethod: "equal",
			Participants: []string{"Bob", "Carol"},
		}, "Carol"),
	}
	for _, req := range requests {
		if _, err := clients.expenses.AddExpense(ctx, req); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}
}

func TestGetUserLedger(t *testing.T) {
	clients := setupTestServer(t)
	seedExpenses(t, clients)
	ctx := context.Background()

	resp, err := clients.expenses.GetUserLedger(ctx, asUser(&api.GetUserLedgerRequest{}, "Bob"))
	if err != nil {
		t.Fatalf("GetUserLedger failed: %v", err)
	}

	// Bob: 100 (Dinner) + 40 (Tickets) + 25 (Groceries)
	if !approxEqual(resp.Msg.TotalExpense, 165) {
		t.Errorf("Expected total 165, got %.2f", resp.Msg.TotalExpense)
	}
	if len(resp.Msg.Expenses) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(resp.Msg.Expenses))
	}
	wantTitles := []string{"Dinner", "Tickets", "Groceries"}
	for i, e := range resp.Msg.Expenses {
		if e.Title != wantTitles[i] {
			t.Errorf("entry %d: expected %s, got %s", i, wantTitles[i], e.Title)
		}
	}

	t.Run("user without expenses", func(t *testing.T) {
		resp, err := clients.expenses.GetUserLedger(ctx, asUser(&api.GetUserLedgerRequest{}, "Dave"))
		if err != nil {
			t.Fatalf("GetUserLedger failed: %v", err)
		}
		if resp.Msg.TotalExpense != 0 || len(resp.Msg.Expenses) != 0 {
			t.Errorf("Expected empty ledger, got %+v", resp.Msg)
		}
	})
}

func TestListExpenses(t *testing.T) {
	clients := setupTestServer(t)
	seedExpenses(t, clients)
	ctx := context.Background()

	all, err := clients.expenses.ListAllExpenses(ctx, connect.NewRequest(&api.ListAllExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListAllExpenses failed: %v", err)
	}
	if len(all.Msg.Expenses) != 3 {
		t.Fatalf("Expected 3 expenses, got %d", len(all.Msg.Expenses))
	}

	ids := make(map[string]bool)
	for _, e := range all.Msg.Expenses {
		ids[e.Id] = true
	}

	mine, err := clients.expenses.ListUserExpenses(ctx, asUser(&api.ListUserExpensesRequest{}, "Carol"))
	if err != nil {
		t.Fatalf("ListUserExpenses failed: %v", err)
	}
	if len(mine.Msg.Expenses) != 2 {
		t.Fatalf("Expected 2 expenses for Carol, got %d", len(mine.Msg.Expenses))
	}
	for _, e := range mine.Msg.Expenses {
		if !ids[e.Id] {
			t.Errorf("Expense %s missing from all expenses", e.Id)
		}
	}
}

func TestDownloadBalanceSheet(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	_, err := clients.expenses.DownloadBalanceSheet(ctx, connect.NewRequest(&api.DownloadBalanceSheetRequest{Type: "all"}))
	assertCode(t, err, connect.CodeNotFound)

	seedExpenses(t, clients)

	resp, err := clients.expenses.DownloadBalanceSheet(ctx, asUser(&api.DownloadBalanceSheetRequest{Type: "user"}, "Carol"))
	if err != nil {
		t.Fatalf("DownloadBalanceSheet failed: %v", err)
	}
	if resp.Msg.Filename != "balance_sheet.csv" {
		t.Errorf("Expected balance_sheet.csv, got %s", resp.Msg.Filename)
	}
	if resp.Msg.ContentType != "text/csv" {
		t.Errorf("Expected text/csv, got %s", resp.Msg.ContentType)
	}

	records, err := csv.NewReader(bytes.NewReader(resp.Msg.Content)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d records", len(records))
	}
	if records[1][0] != "Dinner" || records[2][0] != "Groceries" {
		t.Errorf("Unexpected rows: %v", records[1:])
	}
}
