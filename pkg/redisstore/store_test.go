package redisstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskflow/pkg/plan"
	"github.com/dmitrymomot/taskflow/pkg/subscription"
)

func TestFromHash(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sub := subscription.Subscription{
		UserID:    "user_1",
		Plan:      plan.TierPro,
		Status:    subscription.StatusActive,
		StartDate: now,
		Usage:     subscription.Usage{BoardsUsed: 2, MembersUsed: 1, StorageUsedMB: 50},
		CreatedAt: now,
		UpdatedAt: now,
	}
	doc, err := json.Marshal(sub)
	require.NoError(t, err)

	t.Run("counter fields override doc snapshot", func(t *testing.T) {
		t.Parallel()

		got, err := fromHash(map[string]string{
			"doc":           string(doc),
			"boardsUsed":    "9",
			"membersUsed":   "4",
			"storageUsedMB": "75",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(9), got.Usage.BoardsUsed)
		assert.Equal(t, int64(4), got.Usage.MembersUsed)
		assert.Equal(t, int64(75), got.Usage.StorageUsedMB)
		assert.Equal(t, plan.TierPro, got.Plan)
	})

	t.Run("missing counter fields fall back to doc", func(t *testing.T) {
		t.Parallel()

		got, err := fromHash(map[string]string{"doc": string(doc)})
		require.NoError(t, err)
		assert.Equal(t, sub.Usage, got.Usage)
	})

	t.Run("negative stored counter clamps to zero", func(t *testing.T) {
		t.Parallel()

		got, err := fromHash(map[string]string{"doc": string(doc), "boardsUsed": "-3"})
		require.NoError(t, err)
		assert.Zero(t, got.Usage.BoardsUsed)
	})

	t.Run("missing doc field", func(t *testing.T) {
		t.Parallel()

		_, err := fromHash(map[string]string{"boardsUsed": "1"})
		require.ErrorIs(t, err, subscription.ErrNotFound)
	})

	t.Run("corrupt doc", func(t *testing.T) {
		t.Parallel()

		_, err := fromHash(map[string]string{"doc": "{not json"})
		require.ErrorIs(t, err, subscription.ErrStoreUnavailable)
	})
}

func TestHashFromReply(t *testing.T) {
	t.Parallel()

	t.Run("valid reply", func(t *testing.T) {
		t.Parallel()

		fields, err := hashFromReply([]any{"boardsUsed", "3", "doc", "{}"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"boardsUsed": "3", "doc": "{}"}, fields)
	})

	t.Run("odd length reply", func(t *testing.T) {
		t.Parallel()

		_, err := hashFromReply([]any{"boardsUsed"})
		require.ErrorIs(t, err, subscription.ErrStoreUnavailable)
	})

	t.Run("non slice reply", func(t *testing.T) {
		t.Parallel()

		_, err := hashFromReply("ok")
		require.ErrorIs(t, err, subscription.ErrStoreUnavailable)
	})
}

func TestNewStorePanicsOnNilClient(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { NewStore(nil) })
}

func TestKeyPrefix(t *testing.T) {
	t.Parallel()

	s := &Store{prefix: defaultKeyPrefix}
	assert.Equal(t, "subscription:user_1", s.key("user_1"))
	assert.Equal(t, "subscription:events:user_1", s.channel("user_1"))
}
