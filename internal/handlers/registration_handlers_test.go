package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/form"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupRegistrationRouter(t *testing.T, limiter services.SubmissionLimiter) *gin.Engine {
	t.Helper()
	return setupRouterWithSubmitter(t, limiter, services.NewLogSubmitter(logging.Logger))
}

func setupRouterWithSubmitter(t *testing.T, limiter services.SubmissionLimiter, submitter services.RecordSubmitter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service := services.NewRegistrationService(
		form.NewRegistrationSchema(form.DefaultRegistrationOptions()),
		services.NewDraftStore(30*time.Minute),
		limiter,
		submitter,
		logging.Logger,
	)
	handlers := NewRegistrationHandlers(logging.Logger, service)

	router := gin.New()
	v1 := router.Group("/v1")
	v1.GET("/health", HealthCheck)
	handlers.RegisterRoutes(v1)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type draftBody struct {
	ID          string            `json:"id"`
	SubmitCount int               `json:"submit_count"`
	Errors      map[string]string `json:"errors"`
	Fields      []struct {
		Name     string      `json:"name"`
		Value    interface{} `json:"value"`
		Visible  bool        `json:"visible"`
		Disabled bool        `json:"disabled"`
		Status   string      `json:"status"`
	} `json:"fields"`
}

func (d draftBody) field(name string) (interface{}, bool, bool, string) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, f.Visible, f.Disabled, f.Status
		}
	}
	return nil, false, false, ""
}

func createDraft(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/registration/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var body draftBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func setField(t *testing.T, router *gin.Engine, id, field string, value interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodPut, "/v1/registration/drafts/"+id+"/fields/"+field, models.SetFieldRequest{Value: value})
}

func TestHealthCheck_NoDependencies(t *testing.T) {
	router := setupRegistrationRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "disabled", body.Services["mongodb"])
}

func TestGetSchema(t *testing.T) {
	router := setupRegistrationRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/v1/registration/schema", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sections []struct {
			Title string `json:"title"`
		} `json:"sections"`
		Required     []string `json:"required"`
		Dependencies []struct {
			Trigger  string `json:"trigger"`
			Affected string `json:"affected"`
			Action   string `json:"action"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Sections, 2)
	assert.Equal(t, form.SectionDadosPessoais, body.Sections[0].Title)
	assert.Contains(t, body.Required, "cpf")
	assert.NotContains(t, body.Required, "telefone")
	require.Len(t, body.Dependencies, 2)
	assert.Equal(t, "semCPF", body.Dependencies[0].Trigger)
	assert.Equal(t, "clear_value", body.Dependencies[0].Action)
}

func TestDraftLifecycle(t *testing.T) {
	router := setupRegistrationRouter(t, nil)
	id := createDraft(t, router)

	w := setField(t, router, id, "cpf", "03561350712")
	require.Equal(t, http.StatusOK, w.Code)
	var body draftBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	value, visible, _, status := body.field("cpf")
	assert.Equal(t, "035.613.507-12", value)
	assert.True(t, visible)
	assert.Equal(t, "valid", status)

	w = setField(t, router, id, "semCPF", true)
	require.Equal(t, http.StatusOK, w.Code)
	body = draftBody{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	value, _, disabled, _ := body.field("cpf")
	assert.Equal(t, "", value)
	assert.True(t, disabled)

	w = doJSON(t, router, http.MethodGet, "/v1/registration/drafts/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/v1/registration/drafts/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/v1/registration/drafts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetField_ErrorStatus(t *testing.T) {
	router := setupRegistrationRouter(t, nil)
	id := createDraft(t, router)
	require.Equal(t, http.StatusOK, setField(t, router, id, "semCPF", true).Code)

	tests := []struct {
		name  string
		field string
		value interface{}
		want  int
	}{
		{"unknown field", "apelido", "x", http.StatusBadRequest},
		{"wrong kind", "email", true, http.StatusBadRequest},
		{"invalid option", "uf", "zz", http.StatusBadRequest},
		{"bad date", "nascimento", "99/99/9999", http.StatusBadRequest},
		{"future date", "nascimento", time.Now().AddDate(1, 0, 0).Format(form.DateLayout), http.StatusBadRequest},
		{"disabled field", "cpf", "03561350712", http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := setField(t, router, id, tt.field, tt.value)
			assert.Equal(t, tt.want, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}

	w := setField(t, router, "missing", "email", "a@b.com")
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/v1/registration/drafts/"+id+"/fields/email", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitDraft_ValidationFailure(t *testing.T) {
	router := setupRegistrationRouter(t, nil)
	id := createDraft(t, router)
	require.Equal(t, http.StatusOK, setField(t, router, id, "email", "joao@rio").Code)

	w := doJSON(t, router, http.MethodPost, "/v1/registration/drafts/"+id+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Error string    `json:"error"`
		Draft draftBody `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "validation failed")
	assert.Equal(t, 1, body.Draft.SubmitCount)
	assert.Equal(t, form.MsgEmailFormat, body.Draft.Errors["email"])
	assert.Equal(t, form.MsgRequired, body.Draft.Errors["cpf"])
}

func fillDraft(t *testing.T, router *gin.Engine, id string) {
	t.Helper()
	for _, kv := range [][2]interface{}{
		{"cpf", "035.613.507-12"},
		{"email", "joao@rio.rj.gov.br"},
		{"confirmaEmail", "joao@rio.rj.gov.br"},
		{"tipoCelular", "pessoal"},
		{"celular", "21987654321"},
	} {
		require.Equal(t, http.StatusOK, setField(t, router, id, kv[0].(string), kv[1]).Code)
	}
}

func TestSubmitDraft_Success(t *testing.T) {
	router := setupRegistrationRouter(t, nil)
	id := createDraft(t, router)
	fillDraft(t, router, id)

	w := doJSON(t, router, http.MethodPost, "/v1/registration/drafts/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Record)
	assert.Equal(t, id, body.Record.DraftID)
	assert.Equal(t, "03561350712", body.Record.CPF)

	w = doJSON(t, router, http.MethodPost, "/v1/registration/drafts/"+id+"/submit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitDraft_RateLimited(t *testing.T) {
	router := setupRegistrationRouter(t, services.NewLocalSubmitLimiter(1, logging.Logger))

	first := createDraft(t, router)
	fillDraft(t, router, first)
	w := doJSON(t, router, http.MethodPost, "/v1/registration/drafts/"+first+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	second := createDraft(t, router)
	fillDraft(t, router, second)
	w = doJSON(t, router, http.MethodPost, "/v1/registration/drafts/"+second+"/submit", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestValidateValues(t *testing.T) {
	router := setupRegistrationRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/v1/registration/validate", models.ValidateRequest{
		Values: map[string]interface{}{
			"cpf":           "035.613.507-12",
			"email":         "joao@rio.rj.gov.br",
			"confirmaEmail": "outro@rio.rj.gov.br",
			"tipoCelular":   "pessoal",
			"celular":       "21987654321",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result utils.ValidationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "confirmaEmail", result.Errors[0].Field)

	w = doJSON(t, router, http.MethodPost, "/v1/registration/validate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/registration/validate", models.ValidateRequest{
		Values: map[string]interface{}{"apelido": "x"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusForError(assert.AnError))
	assert.Equal(t, http.StatusNotFound, statusForError(models.ErrDraftNotFound))
	assert.Equal(t, http.StatusNotFound, statusForError(models.ErrSubmissionNotFound))
	assert.Equal(t, http.StatusNotImplemented, statusForError(models.ErrSubmissionLookupUnavailable))
}

// memorySubmitter keeps submitted records so they can be looked up
type memorySubmitter struct {
	mu      sync.Mutex
	records map[string]*models.RegistrationRecord
}

func (m *memorySubmitter) Submit(_ context.Context, record *models.RegistrationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records == nil {
		m.records = make(map[string]*models.RegistrationRecord)
	}
	m.records[record.DraftID] = record
	return nil
}

func (m *memorySubmitter) FindByDraftID(_ context.Context, draftID string) (*models.RegistrationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.records[draftID]; ok {
		return r, nil
	}
	return nil, models.ErrSubmissionNotFound
}

func TestGetSubmission(t *testing.T) {
	router := setupRouterWithSubmitter(t, nil, &memorySubmitter{})
	id := createDraft(t, router)

	w := doJSON(t, router, http.MethodGet, "/v1/registration/submissions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	fillDraft(t, router, id)
	w = doJSON(t, router, http.MethodPost, "/v1/registration/drafts/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/v1/registration/submissions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var record models.RegistrationRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, id, record.DraftID)
	assert.Equal(t, "03561350712", record.CPF)
}

func TestGetSubmission_LogSink(t *testing.T) {
	router := setupRegistrationRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/v1/registration/submissions/any", nil)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestValidateValues_LogsMaskedValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logging.Logger
	logging.Logger = logging.NewSafeLogger(zap.New(core))
	t.Cleanup(func() { logging.Logger = prev })

	router := setupRegistrationRouter(t, nil)
	w := doJSON(t, router, http.MethodPost, "/v1/registration/validate", models.ValidateRequest{
		Values: map[string]interface{}{
			"cpf":          "035.613.507-12",
			"email":        "joao@rio.rj.gov.br",
			"nomeCompleto": "João Silva",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("ValidateValues found errors").All()
	require.Len(t, entries, 1)
	values, ok := entries[0].ContextMap()["values"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "********", values["cpf"])
	assert.Equal(t, "********", values["email"])
	assert.Equal(t, "João Silva", values["nomeCompleto"])
}
