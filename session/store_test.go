package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStoreDestroyedSessionIsGone(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("destroy then get", func(mt *mtest.T) {
		store := NewStore(mt.Coll, testOptions())
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCursorResponse(0, "stylehive_db.sessions", mtest.FirstBatch),
		)

		require.NoError(mt, store.Destroy(context.Background(), "gone-session-id"))

		_, err := store.Get(context.Background(), "gone-session-id")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestStoreRegenerateSwapsID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("new id issued, old document removed", func(mt *mtest.T) {
		store := NewStore(mt.Coll, testOptions())
		sess := &Session{ID: "pre-login-id", IsLoggedIn: true, ExpiresAt: time.Now().Add(UserTTL)}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, store.Regenerate(context.Background(), sess))
		assert.NotEqual(mt, "pre-login-id", sess.ID)
		assert.Len(mt, sess.ID, 64)
		assert.True(mt, sess.IsLoggedIn, "session data survives the id swap")
	})
}

func TestStoreRegenerateKeepsIDOnSaveFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("failed save restores the old id", func(mt *mtest.T) {
		store := NewStore(mt.Coll, testOptions())
		sess := &Session{ID: "stable-id"}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11601,
			Name:    "Interrupted",
			Message: "operation was interrupted",
		}))

		err := store.Regenerate(context.Background(), sess)
		assert.Error(mt, err)
		assert.Equal(mt, "stable-id", sess.ID)
	})
}

func TestStoreGetRejectsExpiredSession(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stale document between TTL sweeps", func(mt *mtest.T) {
		store := NewStore(mt.Coll, testOptions())
		stale := bson.D{
			{Key: "_id", Value: "stale-session-id"},
			{Key: "isLoggedIn", Value: true},
			{Key: "expires_at", Value: time.Now().Add(-time.Minute)},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "stylehive_db.sessions", mtest.FirstBatch, stale))

		_, err := store.Get(context.Background(), "stale-session-id")
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
