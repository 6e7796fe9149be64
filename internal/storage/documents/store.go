// Package documents stores generated-collection documents in per-collection
// Pebble databases.
package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schemacraft/schemacraft/internal/logger"
)

// Store manages document storage. Each (user, collection) pair gets its own
// Pebble DB, opened lazily and closed on Stop.
type Store struct {
	baseDir string
	dbs     map[string]*pebble.DB // collection path -> DB
	log     zerolog.Logger
	mu      sync.RWMutex
	ready   bool
}

// NewStore creates a document store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		dbs:     make(map[string]*pebble.DB),
		log:     logger.WithComponent("documents"),
	}
}

// Start marks the store ready.
func (s *Store) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	s.log.Info().Str("base_dir", s.baseDir).Msg("Starting document store")
	s.ready = true

	return nil
}

// Stop closes all open collection databases.
func (s *Store) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil
	}

	s.log.Info().Msg("Stopping document store")

	var lastErr error
	for path, db := range s.dbs {
		if err := db.Close(); err != nil {
			s.log.Error().Err(err).Str("collection_path", path).Msg("Failed to close Pebble DB")
			lastErr = err
		}
	}
	s.dbs = make(map[string]*pebble.DB)
	s.ready = false

	return lastErr
}

// Ready returns true if the store has been started.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Insert stores a new document and returns it with id and timestamps set.
func (s *Store) Insert(ctx context.Context, userID, collection string, data map[string]interface{}) (*Document, error) {
	db, err := s.getOrOpenDB(collectionPath(userID, collection))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.NewString(),
		UserID:    userID,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	if err := db.Set([]byte(doc.ID), encoded, pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	return doc, nil
}

// Get retrieves a document by ID.
func (s *Store) Get(ctx context.Context, userID, collection, id string) (*Document, error) {
	db, err := s.getOrOpenDB(collectionPath(userID, collection))
	if err != nil {
		return nil, err
	}

	value, closer, err := db.Get([]byte(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, DocumentNotFoundError{Collection: collection, ID: id}
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	defer closer.Close()

	var doc Document
	if err := json.Unmarshal(value, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return &doc, nil
}

// Update merges patch into the document's data and bumps UpdatedAt.
// Keys absent from patch are left untouched.
func (s *Store) Update(ctx context.Context, userID, collection, id string, patch map[string]interface{}) (*Document, error) {
	db, err := s.getOrOpenDB(collectionPath(userID, collection))
	if err != nil {
		return nil, err
	}

	doc, err := s.Get(ctx, userID, collection, id)
	if err != nil {
		return nil, err
	}

	if doc.Data == nil {
		doc.Data = make(map[string]interface{})
	}
	for k, v := range patch {
		doc.Data[k] = v
	}
	doc.UpdatedAt = time.Now().UTC()

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	if err := db.Set([]byte(doc.ID), encoded, pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	return doc, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, userID, collection, id string) error {
	db, err := s.getOrOpenDB(collectionPath(userID, collection))
	if err != nil {
		return err
	}

	// Pebble deletes are blind; check existence first so a missing
	// document is reported to the caller.
	if _, err := s.Get(ctx, userID, collection, id); err != nil {
		return err
	}

	if err := db.Delete([]byte(id), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// List returns one page of the collection, newest first, plus the total
// document count.
func (s *Store) List(ctx context.Context, userID, collection string, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	db, err := s.getOrOpenDB(collectionPath(userID, collection))
	if err != nil {
		return nil, err
	}

	iter, err := db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	all := make([]*Document, 0)
	for iter.First(); iter.Valid(); iter.Next() {
		var doc Document
		if err := json.Unmarshal(iter.Value(), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		all = append(all, &doc)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iteration failed: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return &Page{Documents: []*Document{}, Total: total}, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	return &Page{Documents: all[start:end], Total: total}, nil
}

// getOrOpenDB gets or opens the Pebble DB for a collection path.
func (s *Store) getOrOpenDB(path string) (*pebble.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil, fmt.Errorf("document store is not started")
	}

	if db, exists := s.dbs[path]; exists {
		return db, nil
	}

	dbDir := filepath.Join(s.baseDir, hashCollectionPath(path), "db")
	if err := ensureDirectory(dbDir); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	db, err := pebble.Open(dbDir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open Pebble DB: %w", err)
	}

	s.dbs[path] = db
	return db, nil
}

func collectionPath(userID, collection string) string {
	return userID + "/" + collection
}

// ensureDirectory ensures a directory exists
func ensureDirectory(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}

// hashCollectionPath creates a short FNV-1a hash used as the on-disk
// directory name, keeping user IDs and collection names out of paths.
func hashCollectionPath(path string) string {
	var hash uint32 = 2166136261
	for _, c := range path {
		hash ^= uint32(c)
		hash *= 16777619
	}
	hashStr := fmt.Sprintf("%x", hash)
	if len(hashStr) > 8 {
		hashStr = hashStr[:8]
	}
	return hashStr
}
