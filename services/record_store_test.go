package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushali2005/studentpp/models"
)

var t0 = time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *RecordStore {
	t.Helper()
	store := NewRecordStore(openTestDB(t))
	store.now = stepClock(t0, time.Minute)
	return store
}

func mustOwner(t *testing.T, store *RecordStore, owner string) *OwnerRecords {
	t.Helper()
	records, err := store.ForOwner(owner)
	require.NoError(t, err)
	return records
}

func TestForOwnerRequiresIdentity(t *testing.T) {
	_, err := newTestStore(t).ForOwner("")

	var aerr *AuthenticationError
	require.ErrorAs(t, err, &aerr)
}

func TestCreateListRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustOwner(t, store, "alice")

	for priors := 0; priors < 4; priors++ {
		vec := models.FeatureVector{StudyTime: priors + 1, Absences: priors * 3, SleepHours: 6, FreeTime: 2, WeekendAlcohol: 1}
		result := models.PredictionResult{PredictedGrade: 10.25 + float64(priors), LetterGrade: "B"}

		created, err := alice.Create(ctx, vec, result, "📝 Revise your notes every weekend.")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "alice", created.OwnerID)

		rows, err := alice.List(ctx)
		require.NoError(t, err)
		require.Len(t, rows, priors+1)

		var found *models.PredictionRecord
		for i := range rows {
			if rows[i].ID == created.ID {
				found = &rows[i]
			}
		}
		require.NotNil(t, found, "created record missing from list")
		assert.Equal(t, vec, found.Features())
		assert.Equal(t, result.PredictedGrade, found.PredictedGrade)
		assert.Equal(t, result.LetterGrade, found.LetterGrade)
		assert.Equal(t, "📝 Revise your notes every weekend.", found.Tip)
		assert.Equal(t, "alice", found.OwnerID)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt), "createdAt %s != %s", found.CreatedAt, created.CreatedAt)
	}
}

func TestListIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustOwner(t, store, "alice")
	bob := mustOwner(t, store, "bob")

	_, err := alice.Create(ctx, sampleVector, models.PredictionResult{PredictedGrade: 5, LetterGrade: "D+"}, "tip")
	require.NoError(t, err)
	bobRec, err := bob.Create(ctx, sampleVector, models.PredictionResult{PredictedGrade: 15, LetterGrade: "A"}, "tip")
	require.NoError(t, err)

	rows, err := bob.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, bobRec.ID, rows[0].ID)

	rows, err = mustOwner(t, store, "carol").List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListReturnsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.now = func() time.Time { return t0 }
	alice := mustOwner(t, store, "alice")

	var ids []string
	for i := 0; i < 5; i++ {
		rec, err := alice.Create(ctx, sampleVector, models.PredictionResult{PredictedGrade: float64(i), LetterGrade: "F"}, "tip")
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	rows, err := alice.List(ctx)
	require.NoError(t, err)
	var got []string
	for _, r := range rows {
		got = append(got, r.ID)
	}
	assert.Equal(t, ids, got)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustOwner(t, store, "alice")

	keep, err := alice.Create(ctx, sampleVector, models.PredictionResult{PredictedGrade: 8, LetterGrade: "C"}, "tip")
	require.NoError(t, err)
	drop, err := alice.Create(ctx, sampleVector, models.PredictionResult{PredictedGrade: 13, LetterGrade: "B+"}, "tip")
	require.NoError(t, err)

	require.NoError(t, alice.Delete(ctx, drop.ID))

	rows, err := alice.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, keep.ID, rows[0].ID)

	err = alice.Delete(ctx, drop.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, drop.ID, nf.ID)
}

func TestDeleteOtherOwnersRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	alice := mustOwner(t, store, "alice")
	bob := mustOwner(t, store, "bob")

	rec, err := alice.Create(ctx, sampleVector, models.PredictionResult{PredictedGrade: 8, LetterGrade: "C"}, "tip")
	require.NoError(t, err)

	err = bob.Delete(ctx, rec.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	rows, err := alice.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDeleteUnknownID(t *testing.T) {
	alice := mustOwner(t, newTestStore(t), "alice")

	for _, id := range []string{"", "not-a-uuid", "01956a2e-0000-7000-8000-000000000000"} {
		err := alice.Delete(context.Background(), id)
		assert.Equal(t, KindNotFound, KindOf(err), "id %q", id)
	}
}

func TestStoreFailureIsPersistenceError(t *testing.T) {
	db := openTestDB(t)
	store := NewRecordStore(db)
	alice := mustOwner(t, store, "alice")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = alice.Create(context.Background(), sampleVector, models.PredictionResult{PredictedGrade: 1, LetterGrade: "F"}, "tip")
	assert.Equal(t, KindPersistence, KindOf(err))

	_, err = alice.List(context.Background())
	assert.Equal(t, KindPersistence, KindOf(err))

	err = alice.Delete(context.Background(), "01956a2e-0000-7000-8000-000000000000")
	assert.Equal(t, KindPersistence, KindOf(err))
}
