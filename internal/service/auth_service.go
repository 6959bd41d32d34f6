package service

import (
	"context"
	"log/slog"
	"net"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

var _ api.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login authenticates a household member and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	s.logger.InfoContext(ctx, "Login request", "name", name)

	if name == "" || req.Msg.Passcode == "" {
		return nil, invalidArgument(auth.ErrInvalidCredentials)
	}

	principal, err := s.authenticator.AuthenticateMember(auth.WithClientIP(ctx, peerHost(req.Peer())), name, req.Msg.Passcode)
	if err != nil {
		s.logger.WarnContext(ctx, "Login failed", "name", name, "error", err)
		return nil, toConnectError(ctx, s.logger, "Login", err)
	}

	token, err := s.issue(ctx, principal)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Member logged in", "member_id", principal.ID)
	return connect.NewResponse(&api.LoginResponse{
		Token:  token,
		Member: &api.Member{ID: principal.ID, Name: principal.Name},
	}), nil
}

// AdminLogin authenticates an administrator and returns a JWT token.
func (s *AuthService) AdminLogin(ctx context.Context, req *connect.Request[api.AdminLoginRequest]) (*connect.Response[api.AdminLoginResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	s.logger.InfoContext(ctx, "Admin login request", "name", name)

	if name == "" || req.Msg.Passcode == "" {
		return nil, invalidArgument(auth.ErrInvalidCredentials)
	}

	principal, err := s.authenticator.AuthenticateAdmin(auth.WithClientIP(ctx, peerHost(req.Peer())), name, req.Msg.Passcode)
	if err != nil {
		s.logger.WarnContext(ctx, "Admin login failed", "name", name, "error", err)
		return nil, toConnectError(ctx, s.logger, "AdminLogin", err)
	}

	token, err := s.issue(ctx, principal)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Admin logged in", "admin_id", principal.ID)
	return connect.NewResponse(&api.AdminLoginResponse{Token: token}), nil
}

func (s *AuthService) issue(ctx context.Context, principal *auth.Principal) (string, error) {
	token, err := s.jwtManager.Generate(principal)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", "principal_id", principal.ID, "error", err)
		return "", connect.NewError(connect.CodeInternal, errInternal)
	}
	return token, nil
}

// peerHost strips the port from a connect peer address.
func peerHost(peer connect.Peer) string {
	host, _, err := net.SplitHostPort(peer.Addr)
	if err != nil {
		return peer.Addr
	}
	return host
}
