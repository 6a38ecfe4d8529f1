package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "splitledger.v1.ExpenseService"

const (
	ExpenseServiceAddExpenseProcedure           = "/splitledger.v1.ExpenseService/AddExpense"
	ExpenseServiceGetUserLedgerProcedure        = "/splitledger.v1.ExpenseService/GetUserLedger"
	ExpenseServiceListUserExpensesProcedure     = "/splitledger.v1.ExpenseService/ListUserExpenses"
	ExpenseServiceListAllExpensesProcedure      = "/splitledger.v1.ExpenseService/ListAllExpenses"
	ExpenseServiceDownloadBalanceSheetProcedure = "/splitledger.v1.ExpenseService/DownloadBalanceSheet"
)

// ExpenseServiceClient is a client for the splitledger.v1.ExpenseService service.
type ExpenseServiceClient interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	GetUserLedger(context.Context, *connect.Request[api.GetUserLedgerRequest]) (*connect.Response[api.GetUserLedgerResponse], error)
	ListUserExpenses(context.Context, *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error)
	ListAllExpenses(context.Context, *connect.Request[api.ListAllExpensesRequest]) (*connect.Response[api.ListAllExpensesResponse], error)
	DownloadBalanceSheet(context.Context, *connect.Request[api.DownloadBalanceSheetRequest]) (*connect.Response[api.DownloadBalanceSheetResponse], error)
}

// NewExpenseServiceClient constructs a client for the
// splitledger.v1.ExpenseService service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &expenseServiceClient{
		addExpense:           connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, opts...),
		getUserLedger:        connect.NewClient[api.GetUserLedgerRequest, api.GetUserLedgerResponse](httpClient, baseURL+ExpenseServiceGetUserLedgerProcedure, opts...),
		listUserExpenses:     connect.NewClient[api.ListUserExpensesRequest, api.ListUserExpensesResponse](httpClient, baseURL+ExpenseServiceListUserExpensesProcedure, opts...),
		listAllExpenses:      connect.NewClient[api.ListAllExpensesRequest, api.ListAllExpensesResponse](httpClient, baseURL+ExpenseServiceListAllExpensesProcedure, opts...),
		downloadBalanceSheet: connect.NewClient[api.DownloadBalanceSheetRequest, api.DownloadBalanceSheetResponse](httpClient, baseURL+ExpenseServiceDownloadBalanceSheetProcedure, opts...),
	}
}

type expenseServiceClient struct {
	addExpense           *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	getUserLedger        *connect.Client[api.GetUserLedgerRequest, api.GetUserLedgerResponse]
	listUserExpenses     *connect.Client[api.ListUserExpensesRequest, api.ListUserExpensesResponse]
	listAllExpenses      *connect.Client[api.ListAllExpensesRequest, api.ListAllExpensesResponse]
	downloadBalanceSheet *connect.Client[api.DownloadBalanceSheetRequest, api.DownloadBalanceSheetResponse]
}

func (c *expenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetUserLedger(ctx context.Context, req *connect.Request[api.GetUserLedgerRequest]) (*connect.Response[api.GetUserLedgerResponse], error) {
	return c.getUserLedger.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListUserExpenses(ctx context.Context, req *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error) {
	return c.listUserExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListAllExpenses(ctx context.Context, req *connect.Request[api.ListAllExpensesRequest]) (*connect.Response[api.ListAllExpensesResponse], error) {
	return c.listAllExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DownloadBalanceSheet(ctx context.Context, req *connect.Request[api.DownloadBalanceSheetRequest]) (*connect.Response[api.DownloadBalanceSheetResponse], error) {
	return c.downloadBalanceSheet.CallUnary(ctx, req)
}

// ExpenseServiceHandler is an implementation of the splitledger.v1.ExpenseService service.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	GetUserLedger(context.Context, *connect.Request[api.GetUserLedgerRequest]) (*connect.Response[api.GetUserLedgerResponse], error)
	ListUserExpenses(context.Context, *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error)
	ListAllExpenses(context.Context, *connect.Request[api.ListAllExpensesRequest]) (*connect.Response[api.ListAllExpensesResponse], error)
	DownloadBalanceSheet(context.Context, *connect.Request[api.DownloadBalanceSheetRequest]) (*connect.Response[api.DownloadBalanceSheetResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	addExpense := connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, opts...)
	getUserLedger := connect.NewUnaryHandler(ExpenseServiceGetUserLedgerProcedure, svc.GetUserLedger, opts...)
	listUserExpenses := connect.NewUnaryHandler(ExpenseServiceListUserExpensesProcedure, svc.ListUserExpenses, opts...)
	listAllExpenses := connect.NewUnaryHandler(ExpenseServiceListAllExpensesProcedure, svc.ListAllExpenses, opts...)
	downloadBalanceSheet := connect.NewUnaryHandler(ExpenseServiceDownloadBalanceSheetProcedure, svc.DownloadBalanceSheet, opts...)
	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceAddExpenseProcedure:
			addExpense.ServeHTTP(w, r)
		case ExpenseServiceGetUserLedgerProcedure:
			getUserLedger.ServeHTTP(w, r)
		case ExpenseServiceListUserExpensesProcedure:
			listUserExpenses.ServeHTTP(w, r)
		case ExpenseServiceListAllExpensesProcedure:
			listAllExpenses.ServeHTTP(w, r)
		case ExpenseServiceDownloadBalanceSheetProcedure:
			downloadBalanceSheet.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.AddExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetUserLedger(context.Context, *connect.Request[api.GetUserLedgerRequest]) (*connect.Response[api.GetUserLedgerResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.GetUserLedger is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListUserExpenses(context.Context, *connect.Request[api.ListUserExpensesRequest]) (*connect.Response[api.ListUserExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.ListUserExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListAllExpenses(context.Context, *connect.Request[api.ListAllExpensesRequest]) (*connect.Response[api.ListAllExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.ListAllExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) DownloadBalanceSheet(context.Context, *connect.Request[api.DownloadBalanceSheetRequest]) (*connect.Response[api.DownloadBalanceSheetResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.DownloadBalanceSheet is not implemented"))
}
