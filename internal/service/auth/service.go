// Package auth verifies bearer credentials and resolves caller roles for the
// privileged mail path.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/youthmindhub/backend/internal/model/identity"
)

var (
	// ErrMissingToken reports an absent or malformed Authorization header.
	ErrMissingToken = errors.New("Missing token")
	// ErrInvalidToken reports a token the identity provider rejected.
	ErrInvalidToken = errors.New("Invalid token")
	// ErrForbidden reports an authenticated caller without the admin role.
	ErrForbidden = errors.New("Not authorized")
)

// TokenVerifier hands a bearer token to the external identity provider and
// yields the stable subject it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (identity.Subject, error)
}

// UserStore reads the users/{id} record. The second return reports whether a
// record exists; absence is not an error.
type UserStore interface {
	GetUser(ctx context.Context, id string) (identity.UserRecord, bool, error)
}

// Service sequences identity verification and role lookup.
type Service struct {
	verifier TokenVerifier
	users    UserStore
}

// NewService wires the identity provider and user store ports.
func NewService(verifier TokenVerifier, users UserStore) *Service {
	return &Service{verifier: verifier, users: users}
}

// Authenticate extracts the bearer token from an Authorization header value
// and verifies it with the identity provider.
func (s *Service) Authenticate(ctx context.Context, header string) (identity.Subject, error) {
	token, ok := bearerToken(header)
	if !ok {
		return identity.Subject{}, ErrMissingToken
	}

	subject, err := s.verifier.Verify(ctx, token)
	if err != nil {
		log.Printf("[auth] token verification failed: %v", err)
		return identity.Subject{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return subject, nil
}

// Authorize resolves the subject's role. A caller with no user record gets
// the default role rather than an error.
func (s *Service) Authorize(ctx context.Context, subject identity.Subject) (identity.Role, error) {
	record, found, err := s.users.GetUser(ctx, subject.ID)
	if err != nil {
		return "", fmt.Errorf("user lookup for %s: %w", subject.ID, err)
	}
	if !found {
		return identity.DefaultRole, nil
	}
	return record.Role, nil
}

// RequireAdmin combines Authorize with the mail-path policy.
func (s *Service) RequireAdmin(ctx context.Context, subject identity.Subject) error {
	role, err := s.Authorize(ctx, subject)
	if err != nil {
		return err
	}
	if role != identity.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("Bearer "):])
	return token, token != ""
}
