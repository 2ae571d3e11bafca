package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rushali2005/studentpp/config"
	"github.com/rushali2005/studentpp/models"
)

const maxPredictorBody = 1 << 20

// Predictor turns a feature vector into a predicted grade.
type Predictor interface {
	Predict(ctx context.Context, vec models.FeatureVector) (models.PredictionResult, error)
}

// predictorRequest uses the field names the model was trained on.
type predictorRequest struct {
	StudyTime      int `json:"studytime"`
	Absences       int `json:"absences"`
	SleepHours     int `json:"sleepHours"`
	FreeTime       int `json:"freetime"`
	WeekendAlcohol int `json:"Walc"`
}

type predictorResponse struct {
	PredictedGrade *float64 `json:"predicted_grade"`
	LetterGrade    *string  `json:"letter_grade"`
}

// PredictorClient calls the external predictor over HTTP. Each Predict is a
// single attempt bounded by the configured timeout.
type PredictorClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewPredictorClient(cfg config.PredictorConfig, logger *zap.Logger) *PredictorClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictorClient{
		endpoint:   cfg.URL,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger.Named("predictor"),
	}
}

// Predict ignores cancellation of ctx; an in-flight request ends only on
// response or timeout.
func (c *PredictorClient) Predict(ctx context.Context, vec models.FeatureVector) (models.PredictionResult, error) {
	start := time.Now()
	result, err := c.predict(context.WithoutCancel(ctx), vec)
	predictorDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		predictorRequests.WithLabelValues("ok").Inc()
	} else {
		predictorRequests.WithLabelValues(string(KindOf(err)) + "_error").Inc()
	}

	if err != nil {
		c.logger.Warn("prediction failed",
			zap.String("endpoint", c.endpoint),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return models.PredictionResult{}, err
	}
	c.logger.Debug("prediction received",
		zap.Float64("predicted_grade", result.PredictedGrade),
		zap.String("letter_grade", result.LetterGrade),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (c *PredictorClient) predict(ctx context.Context, vec models.FeatureVector) (models.PredictionResult, error) {
	body, err := json.Marshal(predictorRequest{
		StudyTime:      vec.StudyTime,
		Absences:       vec.Absences,
		SleepHours:     vec.SleepHours,
		FreeTime:       vec.FreeTime,
		WeekendAlcohol: vec.WeekendAlcohol,
	})
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("encode predictor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.PredictionResult{}, &TransportError{Endpoint: c.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.PredictionResult{}, &TransportError{Endpoint: c.endpoint, Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxPredictorBody))
	if err != nil {
		return models.PredictionResult{}, &TransportError{Endpoint: c.endpoint, Timeout: isTimeout(err), Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.PredictionResult{}, &ProtocolError{
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(respBody)), 200),
		}
	}

	var parsed predictorResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return models.PredictionResult{}, &TransportError{Endpoint: c.endpoint, Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.PredictedGrade == nil || parsed.LetterGrade == nil {
		return models.PredictionResult{}, &TransportError{Endpoint: c.endpoint, Err: errors.New("response missing predicted_grade or letter_grade")}
	}

	return models.PredictionResult{
		PredictedGrade: *parsed.PredictedGrade,
		LetterGrade:    *parsed.LetterGrade,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
