package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
func testAuthInterceptor(defaultUserID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := defaultUserID
			if id := req.Header().Get("X-Test-User"); id != "" {
				userID = id
			}
			return next(middleware.WithIdentity(ctx, userID, userID+"@example.com"), req)
		}
	}
}

type testClients struct {
	expenses apiconnect.ExpenseServiceClient
	users    apiconnect.UserServiceClient
}

// setupTestServer creates a test server backed by a temporary SQLite database.
// Expense calls run as "Alice" unless the X-Test-User header overrides it.
func setupTestServer(t *testing.T) testClients {
	return setupTestServerWithInterceptor(t, testAuthInterceptor("Alice"))
}

// setupAuthenticatedTestServer wires the real JWT interceptor.
func setupAuthenticatedTestServer(t *testing.T) testClients {
	return setupTestServerWithInterceptor(t, middleware.RequireAuth(auth.NewJWTManager("test-secret", time.Hour)))
}

func setupTestServerWithInterceptor(t *testing.T, interceptor connect.Interceptor) testClients {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	expenseSvc := NewExpenseService(ledger.NewService(store, nil, nil))
	expensePath, expenseHandler := apiconnect.NewExpenseServiceHandler(expenseSvc, connect.WithInterceptors(interceptor))

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	userSvc := NewUserService(auth.NewPasswordAuthenticator(store), jwtManager, nil)
	userPath, userHandler := apiconnect.NewUserServiceHandler(userSvc)

	mux := http.NewServeMux()
	mux.Handle(expensePath, expenseHandler)
	mux.Handle(userPath, userHandler)

	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return testClients{
		expenses: apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		users:    apiconnect.NewUserServiceClient(http.DefaultClient, server.URL),
	}
}

func asUser[T any](msg *T, userID string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("X-Test-User", userID)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

func asConnectError(err error, target **connect.Error) bool {
	return errors.As(err, target)
}
