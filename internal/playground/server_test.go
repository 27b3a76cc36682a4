package playground

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms/fake"

	"comboplanner/internal/combo"
	"comboplanner/internal/evaluation"
	"comboplanner/internal/menu"
	"comboplanner/internal/models"
	"comboplanner/internal/monitoring"
	"comboplanner/internal/planner"
)

func newTestServer(t *testing.T) *PlaygroundServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := menu.NewFileProvider("../menu/testdata/catalog.json")
	monitor := monitoring.NewMonitor()
	engine := combo.NewEngine(combo.DefaultTuning())
	rules := combo.NewRuleBased()

	registry := models.NewModelRegistry(nil)
	registry.Register("fake", models.ModelProvider{Name: "fake-model", Type: models.OllamaProvider},
		fake.NewFakeLLM([]string{`{"recommendations":[]}`}))

	return NewPlaygroundServer(Options{
		Service:    planner.NewService(provider, planner.NewChain(nil, engine, rules), monitor),
		Registry:   registry,
		Evaluator:  evaluation.NewEvaluator(provider, monitor),
		Monitor:    monitor,
		Strategies: []planner.Strategy{engine, rules},
		MaxTokens:  600,
	})
}

func TestHandleListModels(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/models", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response)

	for _, model := range response {
		assert.Contains(t, model, "id")
		assert.Contains(t, model, "name")
		assert.Contains(t, model, "type")
		assert.Contains(t, model, "maxTokens")
	}
}

func TestHandleCheckModel(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/models/fake/check", nil)
	server.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	ok, found := server.monitor.GetMetric("model_fake_ok")
	require.True(t, found)
	assert.Equal(t, true, ok)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/models/missing/check", nil)
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
}

func TestHandleListScenarios(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/scenarios", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 6)

	for _, scenario := range response {
		assert.Contains(t, scenario, "id")
		assert.Contains(t, scenario, "name")
		assert.Contains(t, scenario, "type")
		assert.Contains(t, scenario, "description")
	}
}

func TestHandleMetrics(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/metrics", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response, "uptime_seconds")
}

func postEvaluate(server *PlaygroundServer, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/evaluate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)
	return w
}

func TestHandleEvaluate(t *testing.T) {
	server := newTestServer(t)

	w := postEvaluate(server, `{"strategy":"rules","scenario":"date_night","variants":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result evaluation.EvaluationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "rules", result.Strategy)
	assert.Equal(t, 2, result.Variants)
	assert.Contains(t, result.Metrics, "feasible_ratio")

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/metrics", nil)
	server.Router().ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "rules_date_night_recommendation_count")
}

func TestHandleEvaluateRegistryModel(t *testing.T) {
	w := postEvaluate(newTestServer(t), `{"model":"fake","scenario":"solo_lunch"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"strategy":"llm"`)
}

func TestHandleEvaluateRejects(t *testing.T) {
	server := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, postEvaluate(server, `{"strategy":"rules","scenario":"busy_night"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postEvaluate(server, `{"strategy":"oracle","scenario":"date_night"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postEvaluate(server, `{"model":"missing","scenario":"date_night"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postEvaluate(server, `{"strategy":"rules"}`).Code)
}

func readFrame(t *testing.T, conn *websocket.Conn) WSResult {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame WSResult
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWebSocketRegenerate(t *testing.T) {
	server := newTestServer(t)
	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"meal": "dinner", "partySize": 3, "alcohol": "beer", "_variant": 98,
	}))
	first := readFrame(t, conn)
	assert.Equal(t, "recommendations", first.Type)
	assert.Equal(t, 98, first.Variant)
	require.NotNil(t, first.Response)
	assert.NotEmpty(t, first.Response.Recommendations)

	require.NoError(t, conn.WriteJSON(map[string]bool{"regenerate": true}))
	assert.Equal(t, 99, readFrame(t, conn).Variant)

	require.NoError(t, conn.WriteJSON(map[string]bool{"regenerate": true}))
	assert.Equal(t, 0, readFrame(t, conn).Variant, "variant wraps")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, "error", readFrame(t, conn).Type)

	connections, found := server.monitor.GetMetric("ws_connections_total")
	require.True(t, found)
	assert.Equal(t, 1.0, connections)
}
