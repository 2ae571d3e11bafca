package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rushali2005/studentpp/models"
)

// RecordStore persists prediction records. Callers never query it directly;
// they obtain an owner-scoped handle with ForOwner.
type RecordStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db, now: time.Now}
}

// ForOwner returns the record capabilities of ownerID. An empty owner is an
// AuthenticationError.
func (s *RecordStore) ForOwner(ownerID string) (*OwnerRecords, error) {
	if ownerID == "" {
		return nil, &AuthenticationError{Reason: "no identity bound to request"}
	}
	return &OwnerRecords{store: s, ownerID: ownerID}, nil
}

// OwnerRecords is the record store restricted to one owner. Every query it
// issues is filtered by that owner.
type OwnerRecords struct {
	store   *RecordStore
	ownerID string
}

func (r *OwnerRecords) OwnerID() string { return r.ownerID }

func (r *OwnerRecords) Create(ctx context.Context, vec models.FeatureVector, result models.PredictionResult, tip string) (models.PredictionRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		storeFailures.WithLabelValues("create").Inc()
		return models.PredictionRecord{}, &PersistenceError{Op: "create", Err: fmt.Errorf("generate id: %w", err)}
	}

	rec := models.PredictionRecord{
		ID:             id.String(),
		OwnerID:        r.ownerID,
		StudyTime:      vec.StudyTime,
		Absences:       vec.Absences,
		SleepHours:     vec.SleepHours,
		FreeTime:       vec.FreeTime,
		WeekendAlcohol: vec.WeekendAlcohol,
		PredictedGrade: result.PredictedGrade,
		LetterGrade:    result.LetterGrade,
		Tip:            tip,
		CreatedAt:      r.store.now().UTC().Truncate(time.Microsecond),
	}

	if err := r.store.db.WithContext(ctx).Create(&rec).Error; err != nil {
		storeFailures.WithLabelValues("create").Inc()
		return models.PredictionRecord{}, &PersistenceError{Op: "create", Err: err}
	}
	recordsCreated.Inc()
	return rec, nil
}

// List returns the owner's records in insertion order. UUIDv7 ids sort by
// creation.
func (r *OwnerRecords) List(ctx context.Context) ([]models.PredictionRecord, error) {
	var rows []models.PredictionRecord
	err := r.store.db.WithContext(ctx).
		Where("owner_id = ?", r.ownerID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		storeFailures.WithLabelValues("list").Inc()
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return rows, nil
}

// Delete removes one of the owner's records. Unknown ids and ids owned by
// someone else are both NotFoundError.
func (r *OwnerRecords) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &NotFoundError{ID: id}
	}

	res := r.store.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, r.ownerID).
		Delete(&models.PredictionRecord{})
	if res.Error != nil {
		storeFailures.WithLabelValues("delete").Inc()
		return &PersistenceError{Op: "delete", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{ID: id}
	}
	recordsDeleted.Inc()
	return nil
}
