package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rushali2005/studentpp/config"
	"github.com/rushali2005/studentpp/models"
	"github.com/rushali2005/studentpp/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubPredictor is an httptest predictor whose reply can be swapped per test.
type stubPredictor struct {
	mu     sync.Mutex
	status int
	body   string
	calls  int
	last   map[string]int
}

func (s *stubPredictor) reply(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status, s.body = status, body
}

func (s *stubPredictor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = nil
	_ = json.NewDecoder(r.Body).Decode(&s.last)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = io.WriteString(w, s.body)
}

type testServer struct {
	router    *gin.Engine
	db        *gorm.DB
	predictor *stubPredictor
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "handlers.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.PredictionRecord{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	stub := &stubPredictor{status: http.StatusOK, body: `{"predicted_grade":14.5,"letter_grade":"A"}`}
	predictorSrv := httptest.NewServer(stub)
	t.Cleanup(predictorSrv.Close)

	cache := services.NewCacheServiceWithClient(nil, nil)
	auth := services.NewAuthService(config.JWTConfig{Secret: "handlers-test-secret", ExpiryHours: 1})
	predictions := services.NewPredictionService(
		services.NewFeatureValidator(true),
		services.NewPredictorClient(config.PredictorConfig{URL: predictorSrv.URL, TimeoutSeconds: 5}, nil),
		services.NewTipClassifier(nil),
		services.NewRecordStore(db),
		cache,
		nil,
	)

	router := NewRouter(Dependencies{
		DB:          db,
		Auth:        auth,
		Predictions: predictions,
		Settings:    services.NewSettingsStore(cache),
		Cache:       cache,
		CORS:        config.CORSConfig{AllowedOrigins: "*"},
	})
	return &testServer{router: router, db: db, predictor: stub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token and user id.
func (s *testServer) register(t *testing.T, email string) (string, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/auth/register", "", gin.H{"email": email, "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func validSubmission() gin.H {
	return gin.H{"studyTime": 5, "absences": "2", "sleepHours": 7, "freeTime": "3", "weekendAlcohol": 2}
}
