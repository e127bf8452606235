package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/mrpanalysis/pkg/application/services/orchestration"
	"github.com/vsinha/mrpanalysis/pkg/application/services/remediation"
	testhelpers "github.com/vsinha/mrpanalysis/pkg/application/services/testing"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/metrics"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/memory"
	infratesting "github.com/vsinha/mrpanalysis/pkg/infrastructure/testing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	router *gin.Engine
	store  *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := infratesting.BuildMixedStore()
	registry := metrics.NewRegistry()

	orchestrator := orchestration.NewAnalysisOrchestrator(store.Products, store.BOMs, store.Sales, store.Quotations).
		WithMetrics(registry)
	service := remediation.NewService(remediation.NewDefaultHandler(store.BOMs, store.Products, store.WorkOrders)).
		WithMetrics(registry)

	router := NewRouter(Handlers{
		Analysis:    NewAnalysisController(orchestrator),
		Remediation: NewRemediationController(service, store.WorkOrders),
		Sessions:    NewSessionController(orchestrator),
		Metrics:     registry.Handler(),
	})
	return &fixture{router: router, store: store}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

type runBody struct {
	ID     string `json:"id"`
	Result struct {
		Rows []struct {
			MaterialID string `json:"material_id"`
			Status     string `json:"status"`
		} `json:"rows"`
		Summary struct {
			Total         int     `json:"total"`
			ShortageCount int     `json:"shortage_count"`
			TotalNeeded   float64 `json:"total_needed"`
		} `json:"summary"`
		Recommendations []struct {
			MaterialID string  `json:"material_id"`
			Quantity   float64 `json:"quantity"`
			OrderType  string  `json:"order_type"`
		} `json:"recommendations"`
	} `json:"result"`
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestGetSources(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/sources", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Sales      []map[string]interface{} `json:"sales"`
		Quotations []map[string]interface{} `json:"quotations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Sales, 4)
	assert.Len(t, body.Quotations, 2)
}

func TestAnalyze_Selection(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/analysis", testhelpers.ScenarioMixed().Selection)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var run runBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))

	assert.NotEmpty(t, run.ID)
	require.Len(t, run.Result.Rows, 4)
	assert.Equal(t, "A", run.Result.Rows[0].MaterialID)
	assert.Equal(t, 4, run.Result.Summary.Total)
	assert.Equal(t, 2, run.Result.Summary.ShortageCount)
	assert.Equal(t, 32.0, run.Result.Summary.TotalNeeded)
	require.Len(t, run.Result.Recommendations, 2)
	assert.Equal(t, "Make", run.Result.Recommendations[0].OrderType)
	assert.Equal(t, 3.0, run.Result.Recommendations[0].Quantity)
}

func TestAnalyze_EmptySelection(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/analysis", map[string]interface{}{"sale_ids": []string{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no sales orders or quotations selected", decode(t, w)["error"])
}

func TestAnalyze_InvalidMode(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/analysis", map[string]interface{}{
		"sale_ids": []string{"S1"},
		"mode":     "WEEKLY",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid selection", decode(t, w)["error"])
}

func TestAnalyze_QuotesOnly(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/analysis", map[string]interface{}{
		"sale_ids":      []string{"S1", "S3"},
		"quotation_ids": []string{"Q2"},
		"mode":          "QUOTES_ONLY",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var run runBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	require.Len(t, run.Result.Rows, 1)
	assert.Equal(t, "M2", run.Result.Rows[0].MaterialID)
}

func TestRunInput(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/analysis/run", testhelpers.ScenarioSingleShortage())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var run runBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	require.Len(t, run.Result.Rows, 1)
	assert.Equal(t, "SHORTAGE", run.Result.Rows[0].Status)
}

func TestRunInput_MalformedPricesDecodeToZero(t *testing.T) {
	f := newFixture(t)

	body := `{
		"products": [{"id": "M1", "code": "M-001", "name": "Steel", "quantity": 2, "unit_price": "abc", "unit_cost": "n/a"}],
		"sales": [{"id": "S1", "customer_name": "ACME", "product_id": "M1", "quantity": "5", "unit_price": "abc"}],
		"quotations": [{"id": "Q1", "customer_name": "ACME", "items": [{"product_id": "M1", "quantity": 1, "unit_price": "1.2.3"}]}],
		"boms": [],
		"selection": {"sale_ids": ["S1"], "quotation_ids": ["Q1"], "mode": "BOTH"}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/run", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var run runBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	require.Len(t, run.Result.Rows, 1)
	assert.Equal(t, "M1", run.Result.Rows[0].MaterialID)
	assert.Equal(t, "SHORTAGE", run.Result.Rows[0].Status)
}

func TestRunInput_Malformed(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis/run", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid analysis input", decode(t, w)["error"])
}

func TestValidateBOMs(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/boms/validation", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["valid"])
}

func TestRemediation_CreatesWorkOrder(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/remediations", map[string]interface{}{
		"type":     "OPEN_PRODUCTION",
		"bom_id":   "BOM-A",
		"quantity": 3,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "/work-orders", body["target"])
	order := body["work_order"].(map[string]interface{})
	assert.Equal(t, "BOM-A", order["bom_id"])
	assert.Equal(t, 3.0, order["quantity"])

	w = f.do(t, http.MethodGet, "/api/v1/work-orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode(t, w)["work_orders"].([]interface{})
	assert.Len(t, orders, 1)

	id := order["id"].(string)
	w = f.do(t, http.MethodGet, "/api/v1/work-orders/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRemediation_Errors(t *testing.T) {
	f := newFixture(t)

	testCases := []struct {
		name   string
		body   map[string]interface{}
		status int
	}{
		{"unknown action", map[string]interface{}{"type": "SHIP_IT"}, http.StatusBadRequest},
		{"unknown bom", map[string]interface{}{"type": "OPEN_PRODUCTION", "bom_id": "BOM-X", "quantity": 1}, http.StatusNotFound},
		{"zero quantity", map[string]interface{}{"type": "OPEN_PRODUCTION", "bom_id": "BOM-A", "quantity": 0}, http.StatusBadRequest},
		{"missing bom", map[string]interface{}{"type": "OPEN_PRODUCTION", "quantity": 1}, http.StatusUnprocessableEntity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/v1/remediations", tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}

	w := f.do(t, http.MethodGet, "/api/v1/work-orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemediation_Navigation(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/remediations", map[string]interface{}{"type": "OPEN_PURCHASING"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/purchasing", decode(t, w)["target"])
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "IDLE", created["state"])
	base := "/api/v1/sessions/" + created["id"].(string)

	w = f.do(t, http.MethodPost, base+"/run", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, base+"/sales/S1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["selected"])

	w = f.do(t, http.MethodPost, base+"/run", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	analyzed := decode(t, w)
	assert.Equal(t, "ANALYZED", analyzed["state"])
	assert.NotNil(t, analyzed["run"])

	w = f.do(t, http.MethodPost, base+"/quotations/Q2/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	toggled := decode(t, w)["session"].(map[string]interface{})
	assert.Equal(t, "IDLE", toggled["state"])
	assert.Nil(t, toggled["run"])

	w = f.do(t, http.MethodPut, base+"/selection", map[string]interface{}{"sale_ids": []string{"S2"}, "mode": "SALES_ONLY"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodDelete, base+"/selection", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IDLE", decode(t, w)["state"])

	w = f.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)

	f.do(t, http.MethodPost, "/api/v1/analysis", testhelpers.ScenarioMixed().Selection)
	f.do(t, http.MethodPost, "/api/v1/analysis", map[string]interface{}{})

	w := f.do(t, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mrp_analysis_runs_total 1")
	assert.Contains(t, w.Body.String(), "mrp_analysis_rejected_total 1")
}
