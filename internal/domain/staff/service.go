package staff

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterRequest carries the fields accepted by account registration.
type RegisterRequest struct {
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	DisplayName string    `json:"display_name"`
	Role        auth.Role `json:"role"`
}

// Register creates a staff account. The role defaults to surgeon when
// omitted; a duplicate email is a conflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*StaffAccount, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, apperr.Validation("email", "a valid email is required")
	}
	if req.Password == "" {
		return nil, apperr.Validation("password", "password is required")
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, apperr.Validation("display_name", "display name is required")
	}
	if req.Role == "" {
		req.Role = auth.RoleSurgeon
	}
	if !auth.ValidRole(req.Role) {
		return nil, apperr.Validation("role", "unknown role")
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperr.Conflictf("email already registered")
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Validation("password", "password could not be processed")
	}

	acc := &StaffAccount{
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         req.Role,
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// Authenticate checks credentials and returns the account. Unknown email and
// wrong password produce the same error so the response does not reveal
// which part failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*StaffAccount, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	acc, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthenticated
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, acc.PasswordHash) {
		return nil, apperr.ErrUnauthenticated
	}
	return acc, nil
}

// GetAccount returns one account; any authenticated caller may read it.
func (s *Service) GetAccount(ctx context.Context, actor *auth.Identity, id uuid.UUID) (*StaffAccount, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// ListAccounts returns every staff account for authenticated callers.
func (s *Service) ListAccounts(ctx context.Context, actor *auth.Identity) ([]*StaffAccount, error) {
	if err := auth.Authenticated(actor); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// ChangeRole reassigns a staff member's role. Head of department only.
func (s *Service) ChangeRole(ctx context.Context, actor *auth.Identity, id uuid.UUID, role auth.Role) (*StaffAccount, error) {
	if err := auth.AllowRoles(actor, auth.RoleHead); err != nil {
		return nil, err
	}
	if !auth.ValidRole(role) {
		return nil, apperr.Validation("role", "unknown role")
	}
	if err := s.repo.UpdateRole(ctx, id, string(role)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
