package api

import "time"

// Expense is a stored expense with its computed shares.
type Expense struct {
	Id           string             `json:"id"`
	Title        string             `json:"title"`
	TotalAmount  float64            `json:"totalAmount"`
	SplitMethod  string             `json:"splitMethod"`
	SplitAmounts map[string]float64 `json:"splitAmounts"`
	Participants []string           `json:"participants"`
	AddedBy      string             `json:"addedBy"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Version      int64              `json:"version"`
}

// LedgerEntry is one expense from the caller's point of view.
type LedgerEntry struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Share     float64   `json:"share"`
	AddedBy   string    `json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int64     `json:"version"`
}

// AddExpenseRequest creates an expense added by the caller.
// SplitAmounts is read for the exact method, Percentages for the percentage method.
type AddExpenseRequest struct {
	Title        string             `json:"title"`
	TotalAmount  float64            `json:"totalAmount"`
	SplitMethod  string             `json:"splitMethod"`
	Participants []string           `json:"participants"`
	SplitAmounts map[string]float64 `json:"splitAmounts,omitempty"`
	Percentages  map[string]float64 `json:"percentages,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetUserLedgerRequest struct{}

type GetUserLedgerResponse struct {
	TotalExpense float64        `json:"totalExpense"`
	Expenses     []*LedgerEntry `json:"expenses"`
}

type ListUserExpensesRequest struct{}

type ListUserExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type ListAllExpensesRequest struct{}

type ListAllExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// DownloadBalanceSheetRequest selects the caller's expenses when Type is
// "user" and every expense otherwise.
type DownloadBalanceSheetRequest struct {
	Type string `json:"type"`
}

type DownloadBalanceSheetResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}
