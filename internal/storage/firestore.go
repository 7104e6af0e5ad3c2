package storage

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/youthmindhub/backend/internal/model/content"
	"github.com/youthmindhub/backend/internal/model/identity"
)

const (
	usersCollection     = "users"
	resourcesCollection = "resources"
	servicesCollection  = "services"
)

// UserStore reads users/{id} records from Firestore.
type UserStore struct {
	client *firestore.Client
}

// NewUserStore wraps a Firestore client.
func NewUserStore(client *firestore.Client) *UserStore {
	return &UserStore{client: client}
}

// GetUser looks up a user record. A missing document is reported through the
// second return, not as an error.
func (s *UserStore) GetUser(ctx context.Context, id string) (identity.UserRecord, bool, error) {
	doc, err := s.client.Collection(usersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return identity.UserRecord{}, false, nil
	}
	if err != nil {
		return identity.UserRecord{}, false, err
	}

	data := doc.Data()
	record := identity.UserRecord{
		ID:    doc.Ref.ID,
		Role:  identity.Role(stringValue(data, "role")),
		Email: stringValue(data, "email"),
		Name:  stringValue(data, "name"),
	}
	if record.Role == "" {
		record.Role = identity.DefaultRole
	}
	return record, true, nil
}

// ContentStore reads the grounding collections from Firestore.
type ContentStore struct {
	client *firestore.Client
}

// NewContentStore wraps a Firestore client.
func NewContentStore(client *firestore.Client) *ContentStore {
	return &ContentStore{client: client}
}

// ListResources fetches up to limit resource documents in collection order.
func (s *ContentStore) ListResources(ctx context.Context, limit int) ([]content.ResourceDigest, error) {
	docs, err := s.client.Collection(resourcesCollection).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]content.ResourceDigest, 0, len(docs))
	for _, doc := range docs {
		out = append(out, content.DecodeResource(doc.Ref.ID, doc.Data()))
	}
	return out, nil
}

// ListServices fetches up to limit service documents in collection order.
func (s *ContentStore) ListServices(ctx context.Context, limit int) ([]content.ServiceDigest, error) {
	docs, err := s.client.Collection(servicesCollection).Limit(limit).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]content.ServiceDigest, 0, len(docs))
	for _, doc := range docs {
		out = append(out, content.DecodeService(doc.Ref.ID, doc.Data()))
	}
	return out, nil
}

func stringValue(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
