package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-admin/internal/config"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		HTTPAddr:             ":0",
		ReadTimeout:          time.Second,
		WriteTimeout:         time.Second,
		CORSAllowedOrigins:   []string{"*"},
		StorageDriver:        config.StorageMemory,
		CacheEnabled:         true,
		CacheTTL:             time.Minute,
		AdminToken:           "admin-secret",
		InternalJobToken:     "job-secret",
		ScoringWorkers:       2,
		ScoringJobInterval:   time.Minute,
		StatsFeedConcurrency: 2,
		MetricsEnabled:       true,
	}
}

func TestNew_MemoryStorageServesAdminAPI(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/points/preview",
		strings.NewReader(`{"position":"DEF","stats":{"minutes_played":90,"goals_conceded":2,"red_cards":1}}`))
	req.Header.Set("X-Admin-Token", "admin-secret")
	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total":-2`)

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_SchedulerOptional(t *testing.T) {
	cfg := memoryConfig()
	a, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, a.Scheduler)
	assert.NoError(t, a.Start())
	assert.NoError(t, a.Close())

	cfg.ScoringJobEnabled = true
	a, err = New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, a.Scheduler)
	assert.NoError(t, a.Close())
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	_, err := New(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}
