package services

import (
	"math/rand/v2"
	"sync"
)

type TipBand string

const (
	TipBandLow    TipBand = "low"
	TipBandMedium TipBand = "medium"
	TipBandHigh   TipBand = "high"
)

const (
	mediumBandFloor = 7.0
	highBandFloor   = 12.0
)

var bandTips = map[TipBand][]string{
	TipBandLow: {
		"📚 Attend more classes regularly.",
		"😴 Sleep at least 7-8 hours daily.",
		"❓ Ask questions when confused.",
		"🕒 Set fixed daily study hours.",
	},
	TipBandMedium: {
		"📝 Revise your notes every weekend.",
		"🤝 Join a study group for motivation.",
		"📈 Participate actively in discussions.",
		"📆 Plan your week with study targets.",
	},
	TipBandHigh: {
		"🏆 Challenge yourself with harder exercises!",
		"🤓 Try mentoring or helping classmates.",
		"🧠 Solve extra practice papers.",
		"🚀 Explore new subjects beyond the syllabus.",
	},
}

// RandSource picks an index in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// BandFor maps a grade to its band. Lower bounds are inclusive.
func BandFor(grade float64) TipBand {
	switch {
	case grade < mediumBandFloor:
		return TipBandLow
	case grade < highBandFloor:
		return TipBandMedium
	default:
		return TipBandHigh
	}
}

// Candidates returns a copy of the tips for band.
func Candidates(band TipBand) []string {
	return append([]string(nil), bandTips[band]...)
}

// TipClassifier picks an improvement tip for a predicted grade.
type TipClassifier struct {
	mu  sync.Mutex
	rng RandSource
}

// NewTipClassifier uses rng for tip selection; nil means the process-wide
// source. Pass a seeded *rand.Rand for reproducible picks.
func NewTipClassifier(rng RandSource) *TipClassifier {
	if rng == nil {
		rng = globalRand{}
	}
	return &TipClassifier{rng: rng}
}

func (c *TipClassifier) Classify(grade float64) (TipBand, string) {
	band := BandFor(grade)
	tips := bandTips[band]

	c.mu.Lock()
	i := c.rng.IntN(len(tips))
	c.mu.Unlock()

	tipsIssued.WithLabelValues(string(band)).Inc()
	return band, tips[i]
}
