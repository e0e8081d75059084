package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/escala-acompanhantes/backend/internal/config"
	"github.com/escala-acompanhantes/backend/internal/domain"
	"github.com/escala-acompanhantes/backend/internal/notify"
	"github.com/escala-acompanhantes/backend/internal/repository"
)

type testEnv struct {
	h         *Handler
	publisher *notify.RecordingPublisher
	cfg       *config.Config
}

func newTestEnv(t *testing.T, opts ...func(cfg *config.Config)) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Environment = "test"
	cfg.Timezone = "America/Sao_Paulo"
	cfg.Database.QueryTimeout = 5
	cfg.Lock.WaitTimeout = 5
	cfg.Auth.Expiration = 1
	cfg.RabbitMQ.PublishTimeout = 5
	cfg.Email.FamilyRecipients = []string{"familia@example.com"}
	cfg.Upload.Dir = filepath.Join(t.TempDir(), "uploads")
	cfg.Upload.MaxSize = 1 << 20
	cfg.Scheduler.PopulationSize = 20
	cfg.Scheduler.MaxGenerations = 40
	cfg.Scheduler.CrossoverRate = 0.8
	cfg.Scheduler.MutationRate = 0.1
	cfg.Scheduler.EliteCount = 2
	cfg.Scheduler.FairnessWeight = 0.05
	for _, opt := range opts {
		opt(cfg)
	}

	store, err := repository.NewFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	repo := repository.NewRepository(cfg, store, repository.NewMemoryLocker())

	publisher := &notify.RecordingPublisher{}
	h, err := NewHandler(cfg, repo, publisher)
	require.NoError(t, err)

	// Thursday 2026-10-15, 10:00 in São Paulo
	h.now = func() time.Time { return time.Date(2026, 10, 15, 10, 0, 0, 0, h.location) }
	h.RegisterRoutes()

	return &testEnv{h: h, publisher: publisher, cfg: cfg}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.h.Mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

func (e *testEnv) createCaregiver(t *testing.T, name string) domain.Caregiver {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/acompanhantes", map[string]any{"nome": name, "telefone": "11987654321"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c domain.Caregiver
	decode(t, rec, &c)
	return c
}

func (e *testEnv) createShift(t *testing.T, caregiverID int64, date, period string) domain.Shift {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/turnos", map[string]any{"acompanhanteId": caregiverID, "data": date, "periodo": period})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var s domain.Shift
	decode(t, rec, &s)
	return s
}
