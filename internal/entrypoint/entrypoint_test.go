package entrypoint

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/userbooks/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.NewConfigFromFile("")
	require.NoError(t, err)
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.Auth.APIKey = "secret"
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = 0
	return cfg
}

func TestBuild_MigratesAndSeeds(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.SeedOnStart = true
	logger, _ := test.NewNullLogger()

	app, err := Build(context.Background(), cfg, logger, "test")
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	version, err := app.DB.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(config.APIKeyHeader, "secret")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 10)
}

func TestBuild_WithoutMigrations(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.MigrateOnStart = false
	logger, hook := test.NewNullLogger()

	app, err := Build(context.Background(), cfg, logger, "test")
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	version, err := app.DB.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestBuild_WarnsWithoutAPIKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.APIKey = ""
	logger, hook := test.NewNullLogger()

	app, err := Build(context.Background(), cfg, logger, "test")
	require.NoError(t, err)
	t.Cleanup(func() { app.Close() })

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Message == "API_KEY is not set. Every protected endpoint will answer 401." {
			warned = true
		}
	}
	assert.True(t, warned)

	req, _ := http.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServe_ShutsDownWhenContextEnds(t *testing.T) {
	cfg := testConfig(t)
	logger, _ := test.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	shutdownCalled := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, http.NotFoundHandler(), cfg, logger, func(context.Context) {
			close(shutdownCalled)
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	select {
	case <-shutdownCalled:
	default:
		t.Fatal("shutdown callback was not called")
	}
}

func TestServe_ListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig(t)
	cfg.HTTP.Port = int32(ln.Addr().(*net.TCPAddr).Port)
	logger, _ := test.NewNullLogger()

	err = Serve(context.Background(), http.NotFoundHandler(), cfg, logger, nil)
	assert.Error(t, err)
}
