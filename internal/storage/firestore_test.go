package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meur/harborline/internal/config"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("boom")

	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(status.Error(codes.AlreadyExists, "exists")), ErrDuplicateID)
	assert.ErrorIs(t, translateError(status.Error(codes.Canceled, "canceled")), context.Canceled)
	assert.ErrorIs(t, translateError(status.Error(codes.DeadlineExceeded, "slow")), context.DeadlineExceeded)
	assert.ErrorIs(t, translateError(context.Canceled), context.Canceled)
	assert.Equal(t, other, translateError(other))
}

func TestDocumentData(t *testing.T) {
	data, err := documentData([]byte(`{"_id":"r1","ruleNumber":3,"weight":1.5,"nested":{"maxPlayers":64},"tags":[1,2.25]}`))
	require.NoError(t, err)
	assert.Equal(t, "r1", data["_id"])
	assert.Equal(t, int64(3), data["ruleNumber"])
	assert.Equal(t, 1.5, data["weight"])
	assert.Equal(t, map[string]any{"maxPlayers": int64(64)}, data["nested"])
	assert.Equal(t, []any{int64(1), 2.25}, data["tags"])

	_, err = documentData([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestFirestoreRequiresProject(t *testing.T) {
	t.Setenv(envGoogleProjectID, "")
	backend := NewFirestore(config.FirestoreConfig{})

	_, err := backend.List(context.Background(), "gamemodes")
	assert.ErrorContains(t, err, "project id is required")
}

func TestFirestoreClosed(t *testing.T) {
	backend := NewFirestore(config.FirestoreConfig{ProjectID: "harborline-test"})
	require.NoError(t, backend.Close())
	require.NoError(t, backend.Close())

	err := backend.Insert(context.Background(), "bugreports", "b1", []byte(`{}`))
	assert.ErrorIs(t, err, ErrBackendClosed)
}
