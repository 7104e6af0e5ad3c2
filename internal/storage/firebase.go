// Package storage implements the auth and retrieval ports against Firebase
// Auth and Firestore, the app's identity provider and document store.
package storage

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"cloud.google.com/go/firestore"

	"github.com/youthmindhub/backend/internal/config"
	"github.com/youthmindhub/backend/internal/model/identity"
)

// Clients bundles the per-process Firebase clients. They are stateless
// dispatchers, safe for concurrent use across requests.
type Clients struct {
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// NewClients builds the Firebase app and its auth and Firestore clients.
// Credentials come from the configured file or application default
// credentials.
func NewClients(ctx context.Context, cfg config.FirebaseConfig) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	return &Clients{Auth: authClient, Firestore: fsClient}, nil
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}

// TokenVerifier verifies ID tokens with Firebase Auth.
type TokenVerifier struct {
	client *fbauth.Client
}

// NewTokenVerifier wraps a Firebase Auth client.
func NewTokenVerifier(client *fbauth.Client) *TokenVerifier {
	return &TokenVerifier{client: client}
}

// Verify hands the token to Firebase Auth and yields the subject it belongs
// to. Invalid and expired tokens fail here.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (identity.Subject, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return identity.Subject{}, err
	}
	return identity.Subject{ID: decoded.UID}, nil
}
