package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemacraft/schemacraft/schema"
)

func setupTestStore(t *testing.T) (*Store, string) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	return store, dir
}

func testRequest(collection string) schema.CreateRequest {
	return schema.CreateRequest{
		CollectionName: collection,
		Fields: []schema.Field{
			{Name: "title", Type: schema.TypeString, Required: true},
			{Name: "secret", Type: schema.TypeString, Visibility: schema.VisibilityPrivate},
		},
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.UserID)
	assert.Equal(t, "posts", created.CollectionName)
	assert.True(t, created.IsActive)
	assert.False(t, created.CreatedAt.IsZero())
	// Normalization applied on the way in.
	assert.Equal(t, schema.VisibilityPublic, created.Fields[0].Visibility)

	got, err := store.Get(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.CollectionName, got.CollectionName)
	assert.Equal(t, created.Fields, got.Fields)
}

func TestStore_Create_DuplicateCollection(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)

	_, err = store.Create(ctx, "user-1", testRequest("posts"))
	require.Error(t, err)
	var conflict CollectionExistsError
	assert.ErrorAs(t, err, &conflict)

	// Same collection name for a different user is fine.
	_, err = store.Create(ctx, "user-2", testRequest("posts"))
	assert.NoError(t, err)
}

func TestStore_Create_InvalidDraft(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "user-1", schema.CreateRequest{CollectionName: "posts"})
	var verr schema.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, schema.KindNoFields, verr.Kind)
}

func TestStore_Get_NoExistenceLeak(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)

	// Another user's lookup of a real ID reports not-found.
	_, err = store.Get(ctx, "user-2", created.ID)
	var notFound SchemaNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "user-1", created.ID))

	// Deleted schema disappears from list and get.
	assert.Empty(t, store.List(ctx, "user-1"))
	_, err = store.Get(ctx, "user-1", created.ID)
	assert.Error(t, err)

	// Second delete reports not-found.
	err = store.Delete(ctx, "user-1", created.ID)
	var notFound SchemaNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestStore_Delete_FreesCollectionName(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "user-1", created.ID))

	// A deleted schema no longer blocks the collection name.
	_, err = store.Create(ctx, "user-1", testRequest("posts"))
	assert.NoError(t, err)
}

func TestStore_List(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	a, err := store.Create(ctx, "user-1", testRequest("aaa"))
	require.NoError(t, err)
	b, err := store.Create(ctx, "user-1", testRequest("bbb"))
	require.NoError(t, err)
	_, err = store.Create(ctx, "user-2", testRequest("ccc"))
	require.NoError(t, err)

	schemas := store.List(ctx, "user-1")
	require.Len(t, schemas, 2)

	ids := []string{schemas[0].ID, schemas[1].ID}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}

func TestStore_GetByCollection(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)

	got, err := store.GetByCollection(ctx, "user-1", "posts")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = store.GetByCollection(ctx, "user-1", "missing")
	assert.Error(t, err)
	_, err = store.GetByCollection(ctx, "user-2", "posts")
	assert.Error(t, err)
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	store, dir := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)

	reopened, err := NewStore(dir)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "posts", got.CollectionName)
	assert.Equal(t, created.Fields, got.Fields)
}

func TestStore_Counts(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "user-1", testRequest("posts"))
	require.NoError(t, err)
	_, err = store.Create(ctx, "user-1", testRequest("comments"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "user-1", created.ID))

	total, active := store.Counts()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, active)
}
