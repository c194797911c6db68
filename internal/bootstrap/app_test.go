package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-recommender/internal/model"
	"career-recommender/internal/model/modeltest"
	"career-recommender/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	modelDir := filepath.Join(dir, "models")
	require.NoError(t, modeltest.WriteFiles(modelDir))
	return config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   modelDir,
		ModelKey:        "career_model.json",
		VectorizerKey:   "vectorizer.json",
		LabelEncoderKey: "label_encoder.json",
		LogoPath:        filepath.Join(dir, "missing-logo.png"),
		FeedbackStore:   "file",
		FeedbackLogPath: filepath.Join(dir, "feedback_log.txt"),
		MaxUploadBytes:  1 << 20,
	}
}

func TestBuildServesRecommendAndFeedback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	body := `{"skills":"Python, SQL, Excel","interests":"data analysis forecasting"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var rec map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rec))
	assert.Equal(t, "Data Scientist", rec["predictedCareer"])
	assert.InDelta(t, 86.53, rec["confidence"], 1e-9)

	fb := `{"rating":5,"comments":"spot on"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(fb))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	logged, err := os.ReadFile(cfg.FeedbackLogPath)
	require.NoError(t, err)
	assert.Equal(t, "Rating: 5, Comments: spot on\n", string(logged))
}

func TestBuildHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(context.Background(), testConfig(t))
	require.NoError(t, err)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"ok":true`)
	assert.Contains(t, resp.Body.String(), "Data Scientist")

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "recommendation_started_total")

	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "not_found")
}

func TestBuildServesIndexPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(context.Background(), testConfig(t))
	require.NoError(t, err)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "<form")
}

func TestBuildFailsWithoutArtifacts(t *testing.T) {
	cfg := testConfig(t)
	cfg.LocalStoreDir = t.TempDir()

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrArtifactNotFound))
}

func TestBuildRejectsBadCatalog(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [not, a, map"), 0o644))
	cfg.CatalogPath = path

	_, err := Build(context.Background(), cfg)
	require.Error(t, err)
}

func TestArtifactPathsOverrides(t *testing.T) {
	paths := ArtifactPaths(config.Config{ModelKey: "v2/model.json"})
	assert.Equal(t, "v2/model.json", paths.Classifier)
	assert.Equal(t, model.DefaultPaths().Vectorizer, paths.Vectorizer)
}

func TestBuildStoreS3RequiresBucket(t *testing.T) {
	_, err := BuildStore(context.Background(), config.Config{ObjectStoreType: "s3"})
	require.Error(t, err)
}

func TestBuildRateLimitsScoringRoutesOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.RateLimitRPS = 0.01
	cfg.RateLimitBurst = 1

	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(`{"skills":"java","interests":"api"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, req)
		return resp.Code
	}
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}
