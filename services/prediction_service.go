package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rushali2005/studentpp/models"
)

// PredictionService runs the submission workflow and serves an owner's
// history. It keeps no per-user state between calls.
type PredictionService struct {
	validator *FeatureValidator
	predictor Predictor
	tips      *TipClassifier
	store     *RecordStore
	cache     *CacheService
	logger    *zap.Logger
}

func NewPredictionService(
	validator *FeatureValidator,
	predictor Predictor,
	tips *TipClassifier,
	store *RecordStore,
	cache *CacheService,
	logger *zap.Logger,
) *PredictionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewCacheServiceWithClient(nil, logger)
	}
	return &PredictionService{
		validator: validator,
		predictor: predictor,
		tips:      tips,
		store:     store,
		cache:     cache,
		logger:    logger.Named("predictions"),
	}
}

// Submission is the outcome of a successful Submit.
type Submission struct {
	Record models.PredictionRecord `json:"record"`
	Band   TipBand                 `json:"band"`
}

// Submit validates form, asks the predictor, picks a tip and stores the
// record. Each step runs once; the first failure is returned unchanged.
func (s *PredictionService) Submit(ctx context.Context, ownerID string, form models.FeatureForm) (Submission, error) {
	vec, err := s.validator.Validate(form)
	if err != nil {
		return Submission{}, err
	}

	records, err := s.store.ForOwner(ownerID)
	if err != nil {
		return Submission{}, err
	}

	// The record must be written even if the caller goes away mid-flight.
	ctx = context.WithoutCancel(ctx)

	result, err := s.predictor.Predict(ctx, vec)
	if err != nil {
		return Submission{}, err
	}

	band, tip := s.tips.Classify(result.PredictedGrade)

	rec, err := records.Create(ctx, vec, result, tip)
	if err != nil {
		s.logger.Error("storing prediction failed", zap.String("owner_id", ownerID), zap.Error(err))
		return Submission{}, err
	}

	s.cache.HistoryChanged(ctx, ownerID, HistoryEvent{
		Type:   EventPredictionCreated,
		ID:     rec.ID,
		Record: &rec,
		At:     rec.CreatedAt,
	})
	s.logger.Info("prediction stored",
		zap.String("owner_id", ownerID),
		zap.String("record_id", rec.ID),
		zap.Float64("predicted_grade", rec.PredictedGrade),
		zap.String("band", string(band)),
	)
	return Submission{Record: rec, Band: band}, nil
}

// Records reads the owner's records from the store on every call.
func (s *PredictionService) Records(ctx context.Context, ownerID string) ([]models.PredictionRecord, error) {
	records, err := s.store.ForOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return records.List(ctx)
}

func (s *PredictionService) History(ctx context.Context, ownerID string) ([]DisplayRecord, error) {
	rows, err := s.Records(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToHistoryView(rows), nil
}

func (s *PredictionService) Series(ctx context.Context, ownerID string) (Series, error) {
	rows, err := s.Records(ctx, ownerID)
	if err != nil {
		return Series{}, err
	}
	return ToSeries(rows), nil
}

func (s *PredictionService) Summary(ctx context.Context, ownerID string) (Summary, error) {
	rows, err := s.Records(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(rows), nil
}

// Delete removes one record. A NotFoundError after a concurrent delete is
// expected and returned as is.
func (s *PredictionService) Delete(ctx context.Context, ownerID, id string) error {
	records, err := s.store.ForOwner(ownerID)
	if err != nil {
		return err
	}
	if err := records.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.HistoryChanged(ctx, ownerID, HistoryEvent{
		Type: EventPredictionDeleted,
		ID:   id,
		At:   time.Now().UTC(),
	})
	return nil
}
