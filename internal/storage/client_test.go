package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/harborline/internal/models"
)

type failingBackend struct {
	err error
}

func (f failingBackend) Insert(context.Context, string, string, []byte) error { return f.err }
func (f failingBackend) List(context.Context, string) ([][]byte, error)       { return nil, f.err }
func (f failingBackend) Close() error                                         { return nil }

func TestCreateAndListRecords(t *testing.T) {
	ctx := context.Background()
	client := NewClient(NewMemory())

	report := models.BugReport{
		ID:             "bug-1",
		ReporterName:   "Ada",
		Title:          "Stuck at dock",
		SubmissionDate: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	got, err := CreateRecord(ctx, client, models.CollectionBugReports, report)
	require.NoError(t, err)
	assert.Equal(t, report, got)

	page, err := ListRecords[models.BugReport](ctx, client, models.CollectionBugReports)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, report.ID, page.Items[0].ID)
	assert.True(t, report.SubmissionDate.Equal(page.Items[0].SubmissionDate))
}

func TestListRecordsEmptyCollection(t *testing.T) {
	client := NewClient(NewMemory())

	page, err := ListRecords[models.GameMode](context.Background(), client, models.CollectionGameModes)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestListRecordsDecodesAbsentFieldsAsZero(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	require.NoError(t, backend.Insert(ctx, models.CollectionServerRules, "r1", []byte(`{"_id":"r1","ruleTitle":"Be nice"}`)))

	page, err := ListRecords[models.ServerRule](ctx, NewClient(backend), models.CollectionServerRules)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 0, page.Items[0].RuleNumber)
	assert.False(t, page.Items[0].IsActive)
	assert.Empty(t, page.Items[0].GameMode)
}

func TestCreateRecordRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	client := NewClient(NewMemory())

	msg := models.ContactSubmission{ID: "c-1", SenderName: "Bo"}
	_, err := CreateRecord(ctx, client, models.CollectionContactSubmissions, msg)
	require.NoError(t, err)

	_, err = CreateRecord(ctx, client, models.CollectionContactSubmissions, msg)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create", perr.Op)
	assert.Equal(t, models.CollectionContactSubmissions, perr.Collection)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestCreateRecordRequiresID(t *testing.T) {
	_, err := CreateRecord(context.Background(), NewClient(NewMemory()), models.CollectionBugReports, models.BugReport{})

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestBackendFailuresArePersistenceErrors(t *testing.T) {
	boom := errors.New("connection refused")
	client := NewClient(failingBackend{err: boom})
	ctx := context.Background()

	_, err := CreateRecord(ctx, client, models.CollectionBugReports, models.BugReport{ID: "x"})
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, boom)

	_, err = ListRecords[models.GameMode](ctx, client, models.CollectionGameModes)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "list", perr.Op)
	assert.ErrorIs(t, err, boom)
}

func TestListRecordsReportsUndecodableDocuments(t *testing.T) {
	ctx := context.Background()
	backend := NewMemory()
	require.NoError(t, backend.Insert(ctx, models.CollectionGameModes, "bad", []byte(`{"_id":"bad","maxPlayers":"many"}`)))

	_, err := ListRecords[models.GameMode](ctx, NewClient(backend), models.CollectionGameModes)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestCanceledContextIsReported(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ListRecords[models.GameMode](ctx, NewClient(NewMemory()), models.CollectionGameModes)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpsertRecords(t *testing.T) {
	ctx := context.Background()
	client := NewClient(NewMemory())

	modes := []models.GameMode{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}}
	require.NoError(t, UpsertRecords(ctx, client, models.CollectionGameModes, modes))

	modes[0].Name = "Alpha Prime"
	require.NoError(t, UpsertRecords(ctx, client, models.CollectionGameModes, modes[:1]))

	page, err := ListRecords[models.GameMode](ctx, client, models.CollectionGameModes)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alpha Prime", page.Items[0].Name)
	assert.Equal(t, "Beta", page.Items[1].Name)
}

func TestUpsertRecordsUnsupportedBackend(t *testing.T) {
	client := NewClient(failingBackend{})

	err := UpsertRecords(context.Background(), client, models.CollectionGameModes, []models.GameMode{{ID: "a"}})
	assert.ErrorIs(t, err, ErrUnsupported)
}
