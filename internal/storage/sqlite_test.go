package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/harborline/internal/models"
)

func newTestSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	backend, err := NewSQLite(filepath.Join(t.TempDir(), "harborline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestSQLiteInsertAndList(t *testing.T) {
	ctx := context.Background()
	client := NewClient(newTestSQLite(t))

	for _, link := range []models.SocialLink{
		{ID: "discord", DisplayOrder: 2, PlatformName: "Discord"},
		{ID: "telegram", DisplayOrder: 1, PlatformName: "Telegram"},
	} {
		_, err := CreateRecord(ctx, client, models.CollectionSocialLinks, link)
		require.NoError(t, err)
	}

	page, err := ListRecords[models.SocialLink](ctx, client, models.CollectionSocialLinks)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "discord", page.Items[0].ID)
	assert.Equal(t, "telegram", page.Items[1].ID)

	other, err := ListRecords[models.GameMode](ctx, client, models.CollectionGameModes)
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestSQLiteDuplicateID(t *testing.T) {
	ctx := context.Background()
	client := NewClient(newTestSQLite(t))

	_, err := CreateRecord(ctx, client, models.CollectionBugReports, models.BugReport{ID: "dup"})
	require.NoError(t, err)

	_, err = CreateRecord(ctx, client, models.CollectionBugReports, models.BugReport{ID: "dup"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	// Same id in another collection is fine
	_, err = CreateRecord(ctx, client, models.CollectionContactSubmissions, models.ContactSubmission{ID: "dup"})
	assert.NoError(t, err)
}

func TestSQLiteUpsert(t *testing.T) {
	ctx := context.Background()
	client := NewClient(newTestSQLite(t))

	require.NoError(t, UpsertRecords(ctx, client, models.CollectionGameModes, []models.GameMode{{ID: "a", Name: "Old"}}))
	require.NoError(t, UpsertRecords(ctx, client, models.CollectionGameModes, []models.GameMode{{ID: "a", Name: "New"}}))

	page, err := ListRecords[models.GameMode](ctx, client, models.CollectionGameModes)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "New", page.Items[0].Name)
}
