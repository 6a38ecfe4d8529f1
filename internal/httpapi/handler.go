// Package httpapi exposes the user and expense operations as JSON REST
// routes. Handlers delegate to the Connect service implementations so both
// surfaces share validation and error classification.
package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

const tokenCookie = "access_token"

// Handler serves the REST routes.
type Handler struct {
	users      apiconnect.UserServiceHandler
	expenses   apiconnect.ExpenseServiceHandler
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// New creates a Handler. m may be nil.
func New(users apiconnect.UserServiceHandler, expenses apiconnect.ExpenseServiceHandler, jwtManager *auth.JWTManager, m *metrics.Metrics, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		users:      users,
		expenses:   expenses,
		jwtManager: jwtManager,
		metrics:    m,
		logger:     logger,
	}
}

// Register mounts the /user and /expense routes on r. Request IDs and panic
// recovery are expected from the enclosing router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		if h.metrics != nil {
			r.Use(middleware.MetricsHTTP(h.metrics))
		}

		r.Route("/user", func(r chi.Router) {
			r.Post("/signup", h.handleSignup)
			r.Post("/login", h.handleLogin)
			r.Post("/search", h.handleSearch)
			r.Get("/{userId}", h.handleGetUser)
		})

		r.Route("/expense", func(r chi.Router) {
			r.Use(middleware.RequireAuthHTTP(h.jwtManager, h.unauthorized))
			r.Post("/add", h.handleAddExpense)
			r.Get("/getUserExpenses", h.handleUserLedger)
			r.Get("/getUserExpensesList", h.handleUserExpenses)
			r.Get("/getAllExpenses", h.handleAllExpenses)
			r.Post("/download", h.handleDownload)
		})
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "Rejected unauthenticated request",
		"path", r.URL.Path,
		"request_id", chimw.GetReqID(r.Context()),
		"error", err,
	)
	if r.Header.Get("Authorization") == "" {
		writeFailure(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	writeFailure(w, http.StatusUnauthorized, "Not authorized")
}

func (h *Handler) badBody(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WarnContext(r.Context(), "Invalid request body", "path", r.URL.Path, "error", err)
	writeFailure(w, http.StatusBadRequest, "invalid request body")
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badBody(w, r, err)
		return
	}

	resp, err := h.users.Register(r.Context(), connect.NewRequest(&req))
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookie(w, resp.Msg.Token)
	writeSuccess(w, http.StatusOK, envelope{"user": resp.Msg.User, "token": resp.Msg.Token})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badBody(w, r, err)
		return
	}

	resp, err := h.users.Login(r.Context(), connect.NewRequest(&req))
	if err != nil {
		writeError(w, err)
		return
	}

	setTokenCookie(w, resp.Msg.Token)
	writeSuccess(w, http.StatusOK, envelope{"user": resp.Msg.User, "token": resp.Msg.Token})
}

// handleSearch reads email and mobile from the query string, falling back to the body.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req api.SearchUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badBody(w, r, err)
		return
	}
	if email := r.URL.Query().Get("email"); email != "" {
		req.Email = email
	}
	if mobile := r.URL.Query().Get("mobile"); mobile != "" {
		req.Mobile = mobile
	}

	resp, err := h.users.SearchUser(r.Context(), connect.NewRequest(&req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"user": resp.Msg.User})
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := h.users.GetUser(r.Context(), connect.NewRequest(&api.GetUserRequest{UserId: chi.URLParam(r, "userId")}))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"user": resp.Msg.User})
}

func (h *Handler) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req api.AddExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badBody(w, r, err)
		return
	}

	resp, err := h.expenses.AddExpense(r.Context(), connect.NewRequest(&req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"expense": resp.Msg.Expense})
}

func (h *Handler) handleUserLedger(w http.ResponseWriter, r *http.Request) {
	resp, err := h.expenses.GetUserLedger(r.Context(), connect.NewRequest(&api.GetUserLedgerRequest{}))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{
		"totalExpense": resp.Msg.TotalExpense,
		"expenses":     resp.Msg.Expenses,
	})
}

func (h *Handler) handleUserExpenses(w http.ResponseWriter, r *http.Request) {
	resp, err := h.expenses.ListUserExpenses(r.Context(), connect.NewRequest(&api.ListUserExpensesRequest{}))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"expenses": resp.Msg.Expenses})
}

func (h *Handler) handleAllExpenses(w http.ResponseWriter, r *http.Request) {
	resp, err := h.expenses.ListAllExpenses(r.Context(), connect.NewRequest(&api.ListAllExpensesRequest{}))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"expenses": resp.Msg.Expenses})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	var req api.DownloadBalanceSheetRequest
	if err := decodeJSON(r, &req); err != nil {
		h.badBody(w, r, err)
		return
	}

	resp, err := h.expenses.DownloadBalanceSheet(r.Context(), connect.NewRequest(&req))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", resp.Msg.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+resp.Msg.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Msg.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.Msg.Content); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write balance sheet", "error", err)
	}
}
