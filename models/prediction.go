package models

import "time"

// PredictionRecord is the persisted outcome of one prediction. Rows are only
// ever inserted or deleted; OwnerID is fixed at creation.
type PredictionRecord struct {
	ID             string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	OwnerID        string    `gorm:"column:owner_id;not null;index;size:36" json:"ownerId"`
	StudyTime      int       `gorm:"column:study_time" json:"studyTime"`
	Absences       int       `gorm:"column:absences" json:"absences"`
	SleepHours     int       `gorm:"column:sleep_hours" json:"sleepHours"`
	FreeTime       int       `gorm:"column:free_time" json:"freeTime"`
	WeekendAlcohol int       `gorm:"column:weekend_alcohol" json:"weekendAlcohol"`
	PredictedGrade float64   `gorm:"column:predicted_grade" json:"predictedGrade"`
	LetterGrade    string    `gorm:"column:letter_grade" json:"letterGrade"`
	Tip            string    `gorm:"column:tip" json:"tip"`
	CreatedAt      time.Time `gorm:"column:created_at;index;autoCreateTime:false" json:"createdAt"`
}

func (PredictionRecord) TableName() string { return "predictions" }

// Features returns the vector the record was predicted from.
func (r PredictionRecord) Features() FeatureVector {
	return FeatureVector{
		StudyTime:      r.StudyTime,
		Absences:       r.Absences,
		SleepHours:     r.SleepHours,
		FreeTime:       r.FreeTime,
		WeekendAlcohol: r.WeekendAlcohol,
	}
}

// PredictionResult is the normalized predictor response.
type PredictionResult struct {
	PredictedGrade float64 `json:"predictedGrade"`
	LetterGrade    string  `json:"letterGrade"`
}
