package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, quota int64) (*Store, string) {
	dir := t.TempDir()
	store, err := NewStore(dir, quota)
	require.NoError(t, err)
	return store, dir
}

func TestStore_CreateAndAuthenticate(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, user.APIKey)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	authed, err := store.Authenticate("ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.False(t, authed.LastLogin.IsZero())

	// Email comparison is case-insensitive.
	_, err = store.Authenticate("ANA@example.com", "hunter22")
	assert.NoError(t, err)
}

func TestStore_Create_Validation(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	_, err := store.Create("", "a@example.com", "hunter22")
	assert.Error(t, err)
	_, err = store.Create("Ana", "not-an-email", "hunter22")
	assert.Error(t, err)
	_, err = store.Create("Ana", "a@example.com", "short")
	assert.Error(t, err)
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	_, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	_, err = store.Create("Other", "Ana@Example.com", "hunter22")
	var exists EmailExistsError
	assert.ErrorAs(t, err, &exists)
}

func TestStore_Authenticate_Failures(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	_, err = store.Authenticate("ana@example.com", "wrong")
	var unauthorized UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)

	_, err = store.Authenticate("missing@example.com", "hunter22")
	assert.ErrorAs(t, err, &unauthorized)

	require.NoError(t, store.SetActive(user.ID, false))
	_, err = store.Authenticate("ana@example.com", "hunter22")
	assert.ErrorAs(t, err, &unauthorized)
}

func TestStore_APIKeyLookup(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	found, err := store.GetByAPIKey(user.APIKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = store.GetByAPIKey("sc_bogus")
	assert.Error(t, err)

	// Deactivated users' keys stop resolving.
	require.NoError(t, store.SetActive(user.ID, false))
	_, err = store.GetByAPIKey(user.APIKey)
	assert.Error(t, err)
}

func TestStore_RegenerateAPIKey(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	newKey, err := store.RegenerateAPIKey(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, user.APIKey, newKey)

	_, err = store.GetByAPIKey(user.APIKey)
	assert.Error(t, err)
	found, err := store.GetByAPIKey(newKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestStore_QuotaEnforcement(t *testing.T) {
	store, _ := setupTestStore(t, 2)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, store.RecordRequest(user.ID))
	require.NoError(t, store.RecordRequest(user.ID))

	err = store.RecordRequest(user.ID)
	var exceeded QuotaExceededError
	require.ErrorAs(t, err, &exceeded)
	assert.Equal(t, int64(2), exceeded.MonthlyQuota)

	// Admin reset opens the gate again.
	require.NoError(t, store.ResetMonthlyUsage(user.ID))
	assert.NoError(t, store.RecordRequest(user.ID))

	got, err := store.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Usage.TotalRequests)
	assert.Equal(t, int64(1), got.Usage.UsedThisMonth)
}

func TestStore_UnlimitedQuota(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, store.RecordRequest(user.ID))
	}
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	store, dir := setupTestStore(t, 100)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	reopened, err := NewStore(dir, 100)
	require.NoError(t, err)

	got, err := reopened.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.APIKey, got.APIKey)

	// Password hashes survive the round trip.
	_, err = reopened.Authenticate("ana@example.com", "hunter22")
	assert.NoError(t, err)
}

func TestStore_Stats(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	a, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)
	_, err = store.Create("Ben", "ben@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, store.RecordRequest(a.ID))
	require.NoError(t, store.SetActive(a.ID, false))

	stats := store.Stats()
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveUsers)
	assert.Equal(t, int64(1), stats.TotalRequests)
}

func TestUser_PublicOmitsPasswordHash(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)

	public := user.Public()
	assert.Equal(t, user.Email, public.Email)
	assert.Equal(t, user.APIKey, public.APIKey)
}

func TestStore_SetAdmin(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)

	require.NoError(t, store.SetAdmin(user.ID, true))

	promoted, err := store.GetByID(user.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	err = store.SetAdmin("missing", true)
	var notFound UserNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_SetQuota(t *testing.T) {
	store, _ := setupTestStore(t, 100)

	user, err := store.Create("Ana", "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.Usage.MonthlyQuota)

	require.NoError(t, store.SetQuota(user.ID, 2))

	require.NoError(t, store.RecordRequest(user.ID))
	require.NoError(t, store.RecordRequest(user.ID))
	err = store.RecordRequest(user.ID)
	var exceeded QuotaExceededError
	assert.ErrorAs(t, err, &exceeded)
}
