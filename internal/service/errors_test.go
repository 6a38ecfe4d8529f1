package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

var errDiskFailure = errors.New("disk I/O error at /var/lib/splitledger/ledger.db")

// failingStore fails every operation with errDiskFailure.
type failingStore struct{}

func (failingStore) CreateExpense(context.Context, *models.Expense) error { return errDiskFailure }
func (failingStore) ListExpenses(context.Context, storage.ExpenseFilter) ([]*models.Expense, error) {
	return nil, errDiskFailure
}
func (failingStore) CreateUser(context.Context, *models.User) error { return errDiskFailure }
func (failingStore) GetUserByID(context.Context, string) (*models.User, error) {
	return nil, errDiskFailure
}
func (failingStore) FindUserByEmailOrMobile(context.Context, string, string) (*models.User, error) {
	return nil, errDiskFailure
}
func (failingStore) Close() error { return nil }

// lockedBuffer lets the server goroutines and the test share a log sink.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func captureLogs(t *testing.T) *lockedBuffer {
	t.Helper()
	logs := &lockedBuffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return logs
}

func TestExpenseService_StoreFailureIsInternal(t *testing.T) {
	logs := captureLogs(t)

	expenseSvc := NewExpenseService(ledger.NewService(failingStore{}, nil, nil))
	path, handler := apiconnect.NewExpenseServiceHandler(expenseSvc, connect.WithInterceptors(testAuthInterceptor("Alice")))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL)
	ctx := context.Background()

	calls := map[string]func() error{
		"AddExpense": func() error {
			_, err := client.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
				Title: "Dinner", TotalAmount: 30, SplitMethod: "equal", Participants: []string{"Alice", "Bob"},
			}))
			return err
		},
		"GetUserLedger": func() error {
			_, err := client.GetUserLedger(ctx, connect.NewRequest(&api.GetUserLedgerRequest{}))
			return err
		},
		"ListUserExpenses": func() error {
			_, err := client.ListUserExpenses(ctx, connect.NewRequest(&api.ListUserExpensesRequest{}))
			return err
		},
		"ListAllExpenses": func() error {
			_, err := client.ListAllExpenses(ctx, connect.NewRequest(&api.ListAllExpensesRequest{}))
			return err
		},
		"DownloadBalanceSheet": func() error {
			_, err := client.DownloadBalanceSheet(ctx, connect.NewRequest(&api.DownloadBalanceSheetRequest{Type: "all"}))
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			assertCode(t, err, connect.CodeInternal)

			var connectErr *connect.Error
			if !asConnectError(err, &connectErr) {
				t.Fatalf("expected *connect.Error, got %T", err)
			}
			if connectErr.Message() != "server error" {
				t.Errorf("expected generic message, got %q", connectErr.Message())
			}
			if strings.Contains(err.Error(), "disk") || strings.Contains(err.Error(), "/var/lib") {
				t.Errorf("store detail leaked to the caller: %v", err)
			}
			if !strings.Contains(logs.String(), name+" failed") {
				t.Errorf("expected %q to be logged, got %q", name+" failed", logs.String())
			}
		})
	}

	if !strings.Contains(logs.String(), errDiskFailure.Error()) {
		t.Errorf("expected the store error to be logged, got %q", logs.String())
	}
}

func TestUserService_StoreFailureIsInternal(t *testing.T) {
	captureLogs(t)

	svc := NewUserService(auth.NewPasswordAuthenticator(failingStore{}), nil, nil)
	_, err := svc.SearchUser(context.Background(), connect.NewRequest(&api.SearchUserRequest{Email: "a@example.com"}))
	assertCode(t, err, connect.CodeInternal)
	if strings.Contains(err.Error(), "disk") {
		t.Errorf("store detail leaked to the caller: %v", err)
	}
}

func TestToConnectError(t *testing.T) {
	captureLogs(t)

	tests := []struct {
		name string
		err  error
		code connect.Code
	}{
		{name: "no records", err: ledger.ErrNoRecords, code: connect.CodeNotFound},
		{name: "wrapped not found", err: errors.Join(errors.New("user"), storage.ErrNotFound), code: connect.CodeNotFound},
		{name: "conflict", err: storage.ErrConflict, code: connect.CodeAlreadyExists},
		{name: "unexpected", err: errDiskFailure, code: connect.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := connect.CodeOf(toConnectError("op", tt.err)); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}
