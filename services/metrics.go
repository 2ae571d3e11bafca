package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studentpp_predictor_requests_total",
		Help: "Predictor calls by outcome.",
	}, []string{"outcome"})
	predictorDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "studentpp_predictor_request_duration_seconds",
		Help:    "Duration of a single predictor call.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
	recordsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studentpp_records_created_total",
		Help: "Total number of prediction records stored.",
	})
	recordsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studentpp_records_deleted_total",
		Help: "Total number of prediction records deleted.",
	})
	storeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studentpp_record_store_failures_total",
		Help: "Record store failures by operation.",
	}, []string{"op"})
	tipsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studentpp_tips_issued_total",
		Help: "Tips handed out by band.",
	}, []string{"band"})
)
