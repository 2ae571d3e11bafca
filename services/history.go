package services

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rushali2005/studentpp/models"
)

const (
	historyDateLayout = "Jan 02, 2006"
	seriesLabelLayout = "01/02"
)

// DisplayRecord is one row of the history screen.
type DisplayRecord struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"`
	StudyTime      int       `json:"studyTime"`
	Absences       int       `json:"absences"`
	SleepHours     int       `json:"sleepHours"`
	FreeTime       int       `json:"freeTime"`
	WeekendAlcohol int       `json:"weekendAlcohol"`
	PredictedGrade float64   `json:"predictedGrade"`
	LetterGrade    string    `json:"letterGrade"`
	Tip            string    `json:"tip"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Series holds index-aligned chart data: position i of every slice describes
// the same record.
type Series struct {
	Labels     []string `json:"labels"`
	StudyTime  []int    `json:"studyTime"`
	Absences   []int    `json:"absences"`
	SleepHours []int    `json:"sleepHours"`
}

func (s Series) Len() int { return len(s.Labels) }

// ToHistoryView orders records newest first. Records with equal timestamps
// keep their input order. The input slice is not modified.
func ToHistoryView(records []models.PredictionRecord) []DisplayRecord {
	sorted := append([]models.PredictionRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	view := make([]DisplayRecord, 0, len(sorted))
	for _, r := range sorted {
		d := DisplayRecord{
			ID:             r.ID,
			StudyTime:      r.StudyTime,
			Absences:       r.Absences,
			SleepHours:     r.SleepHours,
			FreeTime:       r.FreeTime,
			WeekendAlcohol: r.WeekendAlcohol,
			PredictedGrade: r.PredictedGrade,
			LetterGrade:    r.LetterGrade,
			Tip:            r.Tip,
			CreatedAt:      r.CreatedAt,
		}
		if !r.CreatedAt.IsZero() {
			d.Date = r.CreatedAt.Format(historyDateLayout)
		}
		view = append(view, d)
	}
	return view
}

// ToSeries builds chart data oldest first. Records without a timestamp are
// left out of every slice.
func ToSeries(records []models.PredictionRecord) Series {
	dated := make([]models.PredictionRecord, 0, len(records))
	for _, r := range records {
		if !r.CreatedAt.IsZero() {
			dated = append(dated, r)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].CreatedAt.Before(dated[j].CreatedAt)
	})

	s := Series{
		Labels:     make([]string, 0, len(dated)),
		StudyTime:  make([]int, 0, len(dated)),
		Absences:   make([]int, 0, len(dated)),
		SleepHours: make([]int, 0, len(dated)),
	}
	for _, r := range dated {
		s.Labels = append(s.Labels, r.CreatedAt.Format(seriesLabelLayout))
		s.StudyTime = append(s.StudyTime, r.StudyTime)
		s.Absences = append(s.Absences, r.Absences)
		s.SleepHours = append(s.SleepHours, r.SleepHours)
	}
	return s
}

// Summary aggregates an owner's predictions for the analytics screen.
type Summary struct {
	Count                 int             `json:"count"`
	MeanGrade             float64         `json:"meanGrade"`
	StdDevGrade           float64         `json:"stdDevGrade"`
	MinGrade              float64         `json:"minGrade"`
	MaxGrade              float64         `json:"maxGrade"`
	MeanStudyTime         float64         `json:"meanStudyTime"`
	MeanSleepHours        float64         `json:"meanSleepHours"`
	StudyGradeCorrelation float64         `json:"studyGradeCorrelation"`
	Bands                 map[TipBand]int `json:"bands"`
}

// Summarize computes grade statistics. Undefined statistics (stddev of one
// record, correlation with zero variance) are reported as 0.
func Summarize(records []models.PredictionRecord) Summary {
	sum := Summary{
		Count: len(records),
		Bands: map[TipBand]int{TipBandLow: 0, TipBandMedium: 0, TipBandHigh: 0},
	}
	if len(records) == 0 {
		return sum
	}

	grades := make([]float64, len(records))
	study := make([]float64, len(records))
	sleep := make([]float64, len(records))
	for i, r := range records {
		grades[i] = r.PredictedGrade
		study[i] = float64(r.StudyTime)
		sleep[i] = float64(r.SleepHours)
		sum.Bands[BandFor(r.PredictedGrade)]++
	}

	sum.MeanGrade = stat.Mean(grades, nil)
	sum.MinGrade = floats.Min(grades)
	sum.MaxGrade = floats.Max(grades)
	sum.MeanStudyTime = stat.Mean(study, nil)
	sum.MeanSleepHours = stat.Mean(sleep, nil)
	if len(records) > 1 {
		sum.StdDevGrade = finiteOrZero(stat.StdDev(grades, nil))
		sum.StudyGradeCorrelation = finiteOrZero(stat.Correlation(study, grades, nil))
	}
	return sum
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
