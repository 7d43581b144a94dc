package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/napment/onboarding/internal/domain/integration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisOAuthStateStore_Save(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisOAuthStateStore(db, "")
	ctx := context.Background()

	auth := newPendingAuthorization("state-1")
	data, err := json.Marshal(auth)
	require.NoError(t, err)

	t.Run("stores JSON under prefixed key with TTL", func(t *testing.T) {
		mock.ExpectSet(defaultStateKeyPrefix+"state-1", string(data), 10*time.Minute).SetVal("OK")

		require.NoError(t, store.Save(ctx, auth, 10*time.Minute))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps redis errors", func(t *testing.T) {
		mock.ExpectSet(defaultStateKeyPrefix+"state-1", string(data), time.Minute).SetErr(errors.New("connection reset"))

		err := store.Save(ctx, auth, time.Minute)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save oauth state")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisOAuthStateStore_Consume(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisOAuthStateStore(db, "test:state:")
	ctx := context.Background()

	auth := newPendingAuthorization("state-1")
	data, err := json.Marshal(auth)
	require.NoError(t, err)

	t.Run("returns and deletes pending authorization", func(t *testing.T) {
		mock.ExpectGetDel("test:state:state-1").SetVal(string(data))

		got, err := store.Consume(ctx, "state-1")
		require.NoError(t, err)
		assert.Equal(t, auth.SessionID, got.SessionID)
		assert.Equal(t, auth.Shop, got.Shop)
		assert.True(t, auth.IssuedAt.Equal(got.IssuedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing key maps to state not found", func(t *testing.T) {
		mock.ExpectGetDel("test:state:gone").RedisNil()

		_, err := store.Consume(ctx, "gone")
		assert.ErrorIs(t, err, integration.ErrStateNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt payload", func(t *testing.T) {
		mock.ExpectGetDel("test:state:bad").SetVal("{not json")

		_, err := store.Consume(ctx, "bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode oauth state")
	})

	t.Run("redis failure", func(t *testing.T) {
		mock.ExpectGetDel("test:state:x").SetErr(errors.New("timeout"))

		_, err := store.Consume(ctx, "x")
		require.Error(t, err)
		assert.NotErrorIs(t, err, integration.ErrStateNotFound)
	})
}
