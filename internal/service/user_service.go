package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// Accounts is the account store the UserService delegates to.
type Accounts interface {
	auth.Authenticator
	SearchUser(ctx context.Context, email, mobile string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// UserService implements the Connect UserService. None of its methods
// require authentication.
type UserService struct {
	apiconnect.UnimplementedUserServiceHandler
	accounts   Accounts
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(accounts Accounts, jwtManager *auth.JWTManager, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		accounts:   accounts,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates a new user account and signs the caller in.
func (s *UserService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	user, err := s.accounts.Register(ctx, auth.Registration{
		Name:     req.Msg.Name,
		Email:    req.Msg.Email,
		Mobile:   req.Msg.Mobile,
		Password: req.Msg.Password,
	})
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError("Register", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user), Token: token}), nil
}

// Login authenticates a user by email or mobile and returns a JWT token.
func (s *UserService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email, "mobile", req.Msg.Mobile)

	user, err := s.accounts.Authenticate(ctx, req.Msg.Email, req.Msg.Mobile, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "mobile", req.Msg.Mobile, "error", err)
		return nil, toConnectError("Login", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// SearchUser finds a user by email or mobile.
func (s *UserService) SearchUser(ctx context.Context, req *connect.Request[api.SearchUserRequest]) (*connect.Response[api.SearchUserResponse], error) {
	user, err := s.accounts.SearchUser(ctx, req.Msg.Email, req.Msg.Mobile)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, errUserNotFound)
	}
	if err != nil {
		return nil, toConnectError("SearchUser", err)
	}
	return connect.NewResponse(&api.SearchUserResponse{User: toAPIUser(user)}), nil
}

// GetUser returns the user with the given ID.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	if req.Msg.UserId == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("user id is required"))
	}

	user, err := s.accounts.GetUser(ctx, req.Msg.UserId)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeNotFound, errUserNotFound)
	}
	if err != nil {
		return nil, toConnectError("GetUser", err)
	}
	return connect.NewResponse(&api.GetUserResponse{User: toAPIUser(user)}), nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", connect.NewError(connect.CodeInternal, errServer)
	}
	return token, nil
}
