// Package services holds one thin module per upstream resource. Each
// function maps 1:1 to an upstream endpoint; no function catches errors —
// translation into user-facing messages happens at the session or handler
// layer.
package services

import (
	"context"

	"github.com/reserveaqui/webgateway/internal/domain"
	"github.com/reserveaqui/webgateway/internal/upstream"
)

// AuthService wraps the /usuarios/ authentication endpoints.
type AuthService struct {
	api *upstream.Client
}

func NewAuthService(api *upstream.Client) *AuthService {
	return &AuthService{api: api}
}

// LoginResult is the upstream login payload: a credential pair plus the
// authenticated user record.
type LoginResult struct {
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
	User    domain.User `json:"usuario"`
}

// Login authenticates with email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := s.api.Post(ctx, "/usuarios/login/", map[string]string{
		"email": email,
		"senha": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterInput is the self-service signup payload (customer accounts).
type RegisterInput struct {
	Username string `json:"username"`
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new customer account.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var out struct {
		Message string      `json:"mensagem"`
		User    domain.User `json:"usuario"`
	}
	if err := s.api.Post(ctx, "/usuarios/cadastro/", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Me resolves the identity behind the current access token.
func (s *AuthService) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := s.api.Get(ctx, "/usuarios/me/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the authenticated user's password. The current
// session token stays valid afterwards.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	return s.api.Post(ctx, "/usuarios/trocar_senha/", map[string]string{
		"senha_atual":       current,
		"nova_senha":        next,
		"confirmacao_senha": next,
	}, nil)
}

// RequestPasswordReset asks the upstream to mail a recovery token.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.api.Post(ctx, "/usuarios/solicitar_recuperacao/", map[string]string{"email": email}, nil)
}

// ResetPassword redeems a recovery token for a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, next string) error {
	return s.api.Post(ctx, "/usuarios/redefinir_senha/", map[string]string{
		"token":             token,
		"nova_senha":        next,
		"confirmacao_senha": next,
	}, nil)
}
