package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youthmindhub/backend/internal/model/identity"
)

type fakeVerifier struct {
	subject identity.Subject
	err     error
	token   string
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (identity.Subject, error) {
	f.token = token
	if f.err != nil {
		return identity.Subject{}, f.err
	}
	return f.subject, nil
}

type fakeUsers struct {
	records map[string]identity.UserRecord
	err     error
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (identity.UserRecord, bool, error) {
	if f.err != nil {
		return identity.UserRecord{}, false, f.err
	}
	record, ok := f.records[id]
	return record, ok, nil
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	svc := NewService(&fakeVerifier{}, &fakeUsers{})

	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic dXNlcg==", "token abc"} {
		_, err := svc.Authenticate(context.Background(), header)
		assert.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}

func TestAuthenticateExtractsToken(t *testing.T) {
	verifier := &fakeVerifier{subject: identity.Subject{ID: "u1"}}
	svc := NewService(verifier, &fakeUsers{})

	subject, err := svc.Authenticate(context.Background(), "Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "u1", subject.ID)
	assert.Equal(t, "abc.def.ghi", verifier.token)
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: errors.New("token expired")}
	svc := NewService(verifier, &fakeUsers{})

	_, err := svc.Authenticate(context.Background(), "Bearer expired")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthorizeDefaultsRoleWhenRecordAbsent(t *testing.T) {
	svc := NewService(&fakeVerifier{}, &fakeUsers{records: map[string]identity.UserRecord{}})

	role, err := svc.Authorize(context.Background(), identity.Subject{ID: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, role)
}

func TestAuthorizeSurfacesStoreErrors(t *testing.T) {
	svc := NewService(&fakeVerifier{}, &fakeUsers{err: errors.New("unavailable")})

	_, err := svc.Authorize(context.Background(), identity.Subject{ID: "u1"})
	assert.Error(t, err)
}

func TestRequireAdmin(t *testing.T) {
	users := &fakeUsers{records: map[string]identity.UserRecord{
		"admin-1": {ID: "admin-1", Role: identity.RoleAdmin},
		"user-1":  {ID: "user-1", Role: identity.RoleUser},
	}}
	svc := NewService(&fakeVerifier{}, users)

	assert.NoError(t, svc.RequireAdmin(context.Background(), identity.Subject{ID: "admin-1"}))
	assert.ErrorIs(t, svc.RequireAdmin(context.Background(), identity.Subject{ID: "user-1"}), ErrForbidden)
	assert.ErrorIs(t, svc.RequireAdmin(context.Background(), identity.Subject{ID: "ghost"}), ErrForbidden)
}
