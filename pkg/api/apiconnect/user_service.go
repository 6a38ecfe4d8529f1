package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = "splitledger.v1.UserService"

const (
	UserServiceRegisterProcedure   = "/splitledger.v1.UserService/Register"
	UserServiceLoginProcedure      = "/splitledger.v1.UserService/Login"
	UserServiceSearchUserProcedure = "/splitledger.v1.UserService/SearchUser"
	UserServiceGetUserProcedure    = "/splitledger.v1.UserService/GetUser"
)

// UserServiceClient is a client for the splitledger.v1.UserService service.
type UserServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	SearchUser(context.Context, *connect.Request[api.SearchUserRequest]) (*connect.Response[api.SearchUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
}

// NewUserServiceClient constructs a client for the splitledger.v1.UserService
// service. baseURL is the scheme and host, e.g. http://localhost:8080.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) UserServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &userServiceClient{
		register:   connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+UserServiceRegisterProcedure, opts...),
		login:      connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+UserServiceLoginProcedure, opts...),
		searchUser: connect.NewClient[api.SearchUserRequest, api.SearchUserResponse](httpClient, baseURL+UserServiceSearchUserProcedure, opts...),
		getUser:    connect.NewClient[api.GetUserRequest, api.GetUserResponse](httpClient, baseURL+UserServiceGetUserProcedure, opts...),
	}
}

type userServiceClient struct {
	register   *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login      *connect.Client[api.LoginRequest, api.LoginResponse]
	searchUser *connect.Client[api.SearchUserRequest, api.SearchUserResponse]
	getUser    *connect.Client[api.GetUserRequest, api.GetUserResponse]
}

func (c *userServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *userServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *userServiceClient) SearchUser(ctx context.Context, req *connect.Request[api.SearchUserRequest]) (*connect.Response[api.SearchUserResponse], error) {
	return c.searchUser.CallUnary(ctx, req)
}

func (c *userServiceClient) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

// UserServiceHandler is an implementation of the splitledger.v1.UserService service.
type UserServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	SearchUser(context.Context, *connect.Request[api.SearchUserRequest]) (*connect.Response[api.SearchUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
}

// NewUserServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	register := connect.NewUnaryHandler(UserServiceRegisterProcedure, svc.Register, opts...)
	login := connect.NewUnaryHandler(UserServiceLoginProcedure, svc.Login, opts...)
	searchUser := connect.NewUnaryHandler(UserServiceSearchUserProcedure, svc.SearchUser, opts...)
	getUser := connect.NewUnaryHandler(UserServiceGetUserProcedure, svc.GetUser, opts...)
	return "/" + UserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceRegisterProcedure:
			register.ServeHTTP(w, r)
		case UserServiceLoginProcedure:
			login.ServeHTTP(w, r)
		case UserServiceSearchUserProcedure:
			searchUser.ServeHTTP(w, r)
		case UserServiceGetUserProcedure:
			getUser.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedUserServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedUserServiceHandler struct{}

func (UnimplementedUserServiceHandler) Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.Register is not implemented"))
}

func (UnimplementedUserServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.Login is not implemented"))
}

func (UnimplementedUserServiceHandler) SearchUser(context.Context, *connect.Request[api.SearchUserRequest]) (*connect.Response[api.SearchUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.SearchUser is not implemented"))
}

func (UnimplementedUserServiceHandler) GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.GetUser is not implemented"))
}
