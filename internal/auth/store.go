package auth

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schemacraft/schemacraft/internal/logger"
	"github.com/schemacraft/schemacraft/internal/storage/snapshot"
)

const snapshotFile = "users.json"

// Store manages user accounts with an in-memory map and JSON snapshot
// persistence.
type Store struct {
	mu           sync.RWMutex
	users        map[string]*User // user ID -> user
	snap         *snapshot.File
	defaultQuota int64
	log          zerolog.Logger
}

// NewStore creates a user store, loading any existing snapshot from
// metadataDir. defaultQuota is the monthly request allowance assigned to
// new accounts; zero means unlimited.
func NewStore(metadataDir string, defaultQuota int64) (*Store, error) {
	s := &Store{
		users:        make(map[string]*User),
		snap:         snapshot.New(metadataDir, snapshotFile),
		defaultQuota: defaultQuota,
		log:          logger.WithComponent("auth"),
	}

	if err := s.snap.Load(&s.users); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load user snapshot: %w", err)
		}
		s.log.Info().Str("file", s.snap.Path()).Msg("User snapshot does not exist, will be created on first signup")
	} else {
		s.log.Info().Int("count", len(s.users)).Msg("Users loaded from disk")
	}

	return s, nil
}

// Create registers a new user with a bcrypt password hash and a fresh API
// key. Emails are compared case-insensitively.
func (s *Store) Create(name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == email {
			return nil, EmailExistsError{Email: email}
		}
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		APIKey:       newAPIKey(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		Usage: UsageStats{
			MonthlyQuota: s.defaultQuota,
		},
	}

	s.users[user.ID] = user
	if err := s.snap.Save(s.users); err != nil {
		delete(s.users, user.ID)
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("email", email).Msg("User created")

	return copyUser(user), nil
}

// Authenticate verifies email and password and records the login time.
func (s *Store) Authenticate(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	var user *User
	for _, u := range s.users {
		if u.Email == email {
			user = u
			break
		}
	}
	if user == nil {
		return nil, UnauthorizedError{Reason: "invalid email or password"}
	}
	if !user.IsActive {
		return nil, UnauthorizedError{Reason: "account is deactivated"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, UnauthorizedError{Reason: "invalid email or password"}
	}

	user.LastLogin = time.Now().UTC()
	if err := s.snap.Save(s.users); err != nil {
		s.log.Error().Err(err).Msg("Failed to persist login time")
	}

	return copyUser(user), nil
}

// GetByID returns a user by ID.
func (s *Store) GetByID(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, UserNotFoundError{ID: id}
	}
	return copyUser(user), nil
}

// GetByAPIKey returns the active user owning an API key.
func (s *Store) GetByAPIKey(apiKey string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.APIKey == apiKey && u.IsActive {
			return copyUser(u), nil
		}
	}
	return nil, UnauthorizedError{Reason: "invalid API key"}
}

// RegenerateAPIKey replaces the user's API key; the old key stops working
// immediately.
func (s *Store) RegenerateAPIKey(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return "", UserNotFoundError{ID: id}
	}

	oldKey := user.APIKey
	user.APIKey = newAPIKey()
	user.UpdatedAt = time.Now().UTC()

	if err := s.snap.Save(s.users); err != nil {
		user.APIKey = oldKey
		return "", fmt.Errorf("failed to persist API key: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("API key regenerated")

	return user.APIKey, nil
}

// RecordRequest counts one generated-API request against the user's quota.
// Returns QuotaExceededError once the monthly allowance is spent; a zero
// quota is unlimited.
func (s *Store) RecordRequest(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return UserNotFoundError{ID: id}
	}

	if user.Usage.MonthlyQuota > 0 && user.Usage.UsedThisMonth >= user.Usage.MonthlyQuota {
		return QuotaExceededError{MonthlyQuota: user.Usage.MonthlyQuota}
	}

	user.Usage.TotalRequests++
	user.Usage.UsedThisMonth++
	user.Usage.LastRequest = time.Now().UTC()

	if err := s.snap.Save(s.users); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("Failed to persist usage counters")
	}

	return nil
}

// SetActive toggles an account. Deactivated users cannot sign in and their
// API key stops resolving.
func (s *Store) SetActive(id string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return UserNotFoundError{ID: id}
	}

	user.IsActive = active
	user.UpdatedAt = time.Now().UTC()

	if err := s.snap.Save(s.users); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	s.log.Info().Str("user_id", id).Bool("active", active).Msg("User status changed")

	return nil
}

// SetAdmin grants or revokes the admin flag.
func (s *Store) SetAdmin(id string, admin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return UserNotFoundError{ID: id}
	}

	user.IsAdmin = admin
	user.UpdatedAt = time.Now().UTC()

	if err := s.snap.Save(s.users); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	return nil
}

// SetQuota changes a user's monthly request allowance. Zero means unlimited.
func (s *Store) SetQuota(id string, quota int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return UserNotFoundError{ID: id}
	}

	user.Usage.MonthlyQuota = quota
	user.UpdatedAt = time.Now().UTC()

	if err := s.snap.Save(s.users); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	return nil
}

// ResetMonthlyUsage zeroes a user's used-this-month counter.
func (s *Store) ResetMonthlyUsage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return UserNotFoundError{ID: id}
	}

	user.Usage.UsedThisMonth = 0
	user.UpdatedAt = time.Now().UTC()

	if err := s.snap.Save(s.users); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	return nil
}

// List returns all users sorted by creation time.
func (s *Store) List() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		results = append(results, copyUser(u))
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.Before(results[j].CreatedAt)
		}
		return results[i].ID < results[j].ID
	})

	return results
}

// Stats returns the admin aggregate view.
func (s *Store) Stats() PlatformStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := PlatformStats{TotalUsers: len(s.users)}
	for _, u := range s.users {
		if u.IsActive {
			stats.ActiveUsers++
		}
		stats.TotalRequests += u.Usage.TotalRequests
	}
	return stats
}

func newAPIKey() string {
	return "sc_" + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func copyUser(u *User) *User {
	copied := *u
	return &copied
}
