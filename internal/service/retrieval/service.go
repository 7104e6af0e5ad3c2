// Package retrieval produces the grounding context for chat completions: a
// bounded snapshot of the content collections plus a keyword-ranked selection.
package retrieval

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/youthmindhub/backend/internal/model/content"
)

const (
	// DefaultSnapshotLimit bounds each collection fetch.
	DefaultSnapshotLimit = 12
	// DefaultSelectionLimit bounds the ranked selection per collection.
	DefaultSelectionLimit = 5
)

// ContentStore reads the two grounding collections in fetch order.
type ContentStore interface {
	ListResources(ctx context.Context, limit int) ([]content.ResourceDigest, error)
	ListServices(ctx context.Context, limit int) ([]content.ServiceDigest, error)
}

// Config bounds the snapshot and the ranked selection.
type Config struct {
	SnapshotLimit  int
	SelectionLimit int
}

func (c Config) withDefaults() Config {
	if c.SnapshotLimit <= 0 {
		c.SnapshotLimit = DefaultSnapshotLimit
	}
	if c.SelectionLimit <= 0 {
		c.SelectionLimit = DefaultSelectionLimit
	}
	return c
}

// Service fetches snapshots and ranks them against chat prompts.
type Service struct {
	store ContentStore
	cfg   Config
}

// NewService wires the content store port. A nil store degrades every
// snapshot to empty rather than failing, matching the partial-failure
// contract of the fetch itself.
func NewService(store ContentStore, cfg Config) *Service {
	return &Service{store: store, cfg: cfg.withDefaults()}
}

// Snapshot fetches both collections concurrently. Either leg may fail
// without affecting the other: a failed fetch logs a warning and contributes
// an empty sequence. Snapshot itself never fails.
func (s *Service) Snapshot(ctx context.Context) content.Snapshot {
	var snapshot content.Snapshot
	if s.store == nil {
		log.Warn("[rag] content store not configured, grounding disabled")
		return snapshot
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		resources, err := s.store.ListResources(ctx, s.cfg.SnapshotLimit)
		if err != nil {
			log.Warnf("[rag] resources fetch failed: %v", err)
			return
		}
		snapshot.Resources = resources
	}()

	go func() {
		defer wg.Done()
		services, err := s.store.ListServices(ctx, s.cfg.SnapshotLimit)
		if err != nil {
			log.Warnf("[rag] services fetch failed: %v", err)
			return
		}
		snapshot.Services = services
	}()

	wg.Wait()
	return snapshot
}

// Context returns the ranked grounding selection for a prompt.
func (s *Service) Context(ctx context.Context, prompt string) content.Selection {
	return Select(prompt, s.Snapshot(ctx), s.cfg.SelectionLimit)
}
