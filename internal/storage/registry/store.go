// Package registry persists user-declared collection schemas and enforces
// the one-active-schema-per-collection-name rule.
package registry

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schemacraft/schemacraft/internal/logger"
	"github.com/schemacraft/schemacraft/internal/storage/snapshot"
	"github.com/schemacraft/schemacraft/schema"
)

const snapshotFile = "schemas.json"

// Store manages schema registration and retrieval with an in-memory map
// and JSON snapshot persistence.
type Store struct {
	mu      sync.RWMutex
	schemas map[string]*schema.Schema // schema ID -> schema
	snap    *snapshot.File
	log     zerolog.Logger
}

// NewStore creates a schema store, loading any existing snapshot from
// metadataDir.
func NewStore(metadataDir string) (*Store, error) {
	s := &Store{
		schemas: make(map[string]*schema.Schema),
		snap:    snapshot.New(metadataDir, snapshotFile),
		log:     logger.WithComponent("registry"),
	}

	if err := s.snap.Load(&s.schemas); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load schema snapshot: %w", err)
		}
		s.log.Info().Str("file", s.snap.Path()).Msg("Schema snapshot does not exist, will be created on first registration")
	} else {
		s.log.Info().Int("count", len(s.schemas)).Msg("Schemas loaded from disk")
	}

	return s, nil
}

// Create validates and registers a new schema for a user. The engine-side
// validation is authoritative even when a client pre-validated the draft.
// Returns CollectionExistsError when the user already has an active schema
// with the same collection name; the first create to commit wins.
func (s *Store) Create(ctx context.Context, userID string, req schema.CreateRequest) (*schema.Schema, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	fields, err := schema.ValidateDraft(req.CollectionName, req.Fields)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.schemas {
		if existing.UserID == userID && existing.CollectionName == req.CollectionName && existing.IsActive {
			return nil, CollectionExistsError{CollectionName: req.CollectionName}
		}
	}

	now := time.Now().UTC()
	created := &schema.Schema{
		ID:             uuid.NewString(),
		UserID:         userID,
		CollectionName: req.CollectionName,
		Fields:         fields,
		CreatedAt:      now,
		UpdatedAt:      now,
		IsActive:       true,
	}

	s.schemas[created.ID] = created
	if err := s.snap.Save(s.schemas); err != nil {
		delete(s.schemas, created.ID)
		return nil, fmt.Errorf("failed to persist schema: %w", err)
	}

	s.log.Info().
		Str("schema_id", created.ID).
		Str("collection", created.CollectionName).
		Str("user_id", userID).
		Msg("Schema created")

	return copySchema(created), nil
}

// List returns all active schemas owned by the user, oldest first.
// Creation order is what the store happens to return; callers must not
// rely on it contractually.
func (s *Store) List(ctx context.Context, userID string) []*schema.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*schema.Schema, 0)
	for _, sc := range s.schemas {
		if sc.UserID == userID && sc.IsActive {
			results = append(results, copySchema(sc))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.Before(results[j].CreatedAt)
		}
		return results[i].CollectionName < results[j].CollectionName
	})

	return results
}

// Get returns an active schema by ID. Schemas owned by other users report
// not-found rather than leaking their existence.
func (s *Store) Get(ctx context.Context, userID, id string) (*schema.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, exists := s.schemas[id]
	if !exists || !sc.IsActive || sc.UserID != userID {
		return nil, SchemaNotFoundError{ID: id}
	}

	return copySchema(sc), nil
}

// GetByCollection returns the user's active schema for a collection name.
func (s *Store) GetByCollection(ctx context.Context, userID, collectionName string) (*schema.Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sc := range s.schemas {
		if sc.UserID == userID && sc.CollectionName == collectionName && sc.IsActive {
			return copySchema(sc), nil
		}
	}

	return nil, SchemaNotFoundError{ID: collectionName}
}

// Delete deactivates a schema. The record is kept but its generated
// endpoints stop resolving. A second delete of the same ID reports
// not-found.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, exists := s.schemas[id]
	if !exists || !sc.IsActive || sc.UserID != userID {
		return SchemaNotFoundError{ID: id}
	}

	wasActive := sc.IsActive
	sc.IsActive = false
	sc.UpdatedAt = time.Now().UTC()

	if err := s.snap.Save(s.schemas); err != nil {
		sc.IsActive = wasActive
		return fmt.Errorf("failed to persist schema deletion: %w", err)
	}

	s.log.Info().
		Str("schema_id", id).
		Str("collection", sc.CollectionName).
		Str("user_id", userID).
		Msg("Schema deleted")

	return nil
}

// Counts returns total and active schema counts across all users.
func (s *Store) Counts() (total, active int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total = len(s.schemas)
	for _, sc := range s.schemas {
		if sc.IsActive {
			active++
		}
	}
	return total, active
}

func copySchema(sc *schema.Schema) *schema.Schema {
	copied := *sc
	copied.Fields = make([]schema.Field, len(sc.Fields))
	copy(copied.Fields, sc.Fields)
	return &copied
}
