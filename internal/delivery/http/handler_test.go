package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/renalplate/backend/config"
	"github.com/renalplate/backend/internal/domain"
	"github.com/renalplate/backend/internal/infrastructure/builtin"
	"github.com/renalplate/backend/internal/infrastructure/cache"
	"github.com/renalplate/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newBufferLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Provider:  config.ProviderConfig{Type: config.ProviderBuiltin},
		RateLimit: config.RateLimitConfig{PerIP: 1000},
	}
}

// setupTestRouter wires the real lookup service over the built-in catalogue
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	engine, err := usecase.NewAdvisoryEngine(domain.DefaultAdvisoryRules())
	require.NoError(t, err)

	catalog := builtin.NewCatalog()
	service := usecase.NewLookupService(
		catalog, catalog, cache.NewLRUCache(16, 0), engine,
		usecase.LookupServiceConfig{ProviderName: catalog.Name()},
		nil,
	)
	return SetupRouter(testConfig(), NewHandler(service, catalog.Name()), nil)
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := perform(router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "renalplate-backend", response["service"])
	assert.Equal(t, "builtin", response["provider"])

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		assert.Equal(t, http.StatusNotFound, perform(router, method, "/health", "").Code, method)
	}
}

func TestLookupFoodsEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("returns assessed rows", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/v1/foods/lookup?query=banana", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Query   string `json:"query"`
			Results []struct {
				Status     string             `json:"status"`
				Name       string             `json:"name"`
				Nutrients  map[string]any     `json:"nutrients"`
				Assessment *domain.Assessment `json:"assessment"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(t, "banana", response.Query)
		require.Len(t, response.Results, 1)
		row := response.Results[0]
		assert.Equal(t, "found", row.Status)
		assert.Equal(t, "Banana (1 medium)", row.Name)
		assert.Equal(t, 422.0, row.Nutrients["Potassium (mg)"])
		assert.Nil(t, row.Nutrients["Protein (g)"])
		assert.Equal(t, "1 medium", row.Nutrients["Portion Size"])
		require.NotNil(t, row.Assessment)
		assert.Equal(t, domain.AssessmentAdvisories, row.Assessment.Status)
		assert.Equal(t, []string{"Consider lower-potassium alternatives (e.g., berries, apples)."}, row.Assessment.Advisories)
	})

	t.Run("all clear food", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/v1/foods/lookup?query=apple", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"all_clear"`)
	})

	t.Run("unknown food yields not_found row", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/v1/foods/lookup?query=durian", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"not_found"`)
		assert.Contains(t, w.Body.String(), `"reason":"no results"`)
	})

	t.Run("max bounds the rows", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/v1/foods/lookup?query=(1&max=2", "")
		require.Equal(t, http.StatusOK, w.Code)

		var response LookupResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Results, 2)
	})

	t.Run("missing query is rejected", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/v1/foods/lookup", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-positive max is rejected", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/v1/foods/lookup?query=egg&max=-1", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAnalyzeIntakeEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	t.Run("comma separated input", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/v1/intake/analyze", `{"input":"egg, milk,, durian"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var response IntakeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Reports, 3)
		assert.Equal(t, "egg", response.Reports[0].Query)
		assert.Equal(t, "milk", response.Reports[1].Query)
		assert.Equal(t, domain.ResultNotFound, response.Reports[2].Results[0].Kind)
	})

	t.Run("item list", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/v1/intake/analyze", `{"items":["Brown Rice"],"maxResults":1}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Limit phosphorus-rich foods")
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/v1/intake/analyze", `{"input":" , "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid JSON is rejected", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/v1/intake/analyze", `{"items":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListRulesEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := perform(router, http.MethodGet, "/api/v1/advisory/rules", "")
	require.Equal(t, http.StatusOK, w.Code)

	var response RulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, domain.DefaultAdvisoryRules(), response.Rules)
}

type stubLookup struct {
	lastMax int
}

func (s *stubLookup) Lookup(ctx context.Context, query string, maxResults int) []domain.FoodQueryResult {
	s.lastMax = maxResults
	return []domain.FoodQueryResult{domain.NotFound(query, domain.ReasonSearchUnavailable)}
}

func (s *stubLookup) AnalyzeIntake(ctx context.Context, items []string, maxResults int) []domain.IntakeReport {
	return nil
}

func (s *stubLookup) AnalyzeInput(ctx context.Context, input string, maxResults int) []domain.IntakeReport {
	return nil
}

func (s *stubLookup) Rules() []domain.AdvisoryRule {
	return nil
}

func TestLookupFoods_ClampsMax(t *testing.T) {
	stub := &stubLookup{}
	router := SetupRouter(testConfig(), NewHandler(stub, "stub"), nil)

	w := perform(router, http.MethodGet, "/api/v1/foods/lookup?query=egg&max=500", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, maxResultsCap, stub.lastMax)
	assert.Contains(t, w.Body.String(), "search provider unavailable")
}

func TestUnconfiguredHandler(t *testing.T) {
	router := SetupRouter(testConfig(), NewHandler(nil, ""), nil)

	endpoints := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/v1/foods/lookup?query=egg", ""},
		{http.MethodPost, "/api/v1/intake/analyze", `{"input":"egg"}`},
		{http.MethodGet, "/api/v1/advisory/rules", ""},
	}
	for _, e := range endpoints {
		w := perform(router, e.method, e.path, e.body)
		assert.Equal(t, http.StatusNotImplemented, w.Code, e.path)
		assert.Contains(t, w.Body.String(), "not configured")
	}
}

func TestRouterRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.PerIP = 1
	router := SetupRouter(cfg, NewHandler(&stubLookup{}, "stub"), nil)

	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/api/v1/advisory/rules", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, perform(router, http.MethodGet, "/api/v1/advisory/rules", "").Code)
	// Health is outside the limited group
	assert.Equal(t, http.StatusOK, perform(router, http.MethodGet, "/health", "").Code)
}
