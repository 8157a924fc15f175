package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/form"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/services"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.uber.org/zap"
)

// RegistrationHandlers exposes registration drafts over HTTP
type RegistrationHandlers struct {
	logger  *logging.SafeLogger
	service *services.RegistrationService
}

// NewRegistrationHandlers creates a new registration handlers instance
func NewRegistrationHandlers(logger *logging.SafeLogger, service *services.RegistrationService) *RegistrationHandlers {
	return &RegistrationHandlers{
		logger:  logger,
		service: service,
	}
}

// RegisterRoutes mounts the registration endpoints on group
func (h *RegistrationHandlers) RegisterRoutes(group *gin.RouterGroup) {
	registration := group.Group("/registration")
	registration.GET("/schema", h.GetSchema)
	registration.POST("/validate", h.ValidateValues)
	registration.POST("/drafts", h.CreateDraft)
	registration.GET("/drafts/:id", h.GetDraft)
	registration.PUT("/drafts/:id/fields/:field", h.SetField)
	registration.POST("/drafts/:id/submit", h.SubmitDraft)
	registration.DELETE("/drafts/:id", h.DiscardDraft)
	registration.GET("/submissions/:draftId", h.GetSubmission)
}

// GetSchema godoc
// @Summary Obter formulário de cadastro
// @Description Retorna as seções do formulário com campos, rótulos, tipos, opções, máscaras e tamanhos de coluna.
// @Tags registration
// @Produce json
// @Success 200 {object} models.SchemaResponse
// @Router /registration/schema [get]
func (h *RegistrationHandlers) GetSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Schema())
}

// CreateDraft godoc
// @Summary Criar rascunho de cadastro
// @Description Monta um formulário vazio e retorna seu estado de renderização.
// @Tags registration
// @Produce json
// @Success 201 {object} models.DraftResponse
// @Router /registration/drafts [post]
func (h *RegistrationHandlers) CreateDraft(c *gin.Context) {
	view := h.service.CreateDraft(c.Request.Context())
	h.logger.Debug("CreateDraft completed", zap.String("draft_id", view.ID))
	c.JSON(http.StatusCreated, view)
}

// GetDraft godoc
// @Summary Obter rascunho de cadastro
// @Description Retorna valores, visibilidade, bloqueio e mensagens de erro de cada campo.
// @Tags registration
// @Produce json
// @Param id path string true "ID do rascunho"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} ErrorResponse "Rascunho não encontrado ou expirado"
// @Router /registration/drafts/{id} [get]
func (h *RegistrationHandlers) GetDraft(c *gin.Context) {
	view, err := h.service.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetField godoc
// @Summary Alterar campo do rascunho
// @Description Aplica um evento de entrada a um campo: o valor é formatado pela máscara, validado e as dependências entre campos são aplicadas.
// @Tags registration
// @Accept json
// @Produce json
// @Param id path string true "ID do rascunho"
// @Param field path string true "Nome do campo (ex.: cpf, email, semCPF)"
// @Param data body models.SetFieldRequest true "Novo valor"
// @Success 200 {object} models.DraftResponse
// @Failure 400 {object} ErrorResponse "Campo desconhecido, tipo de valor incorreto, opção ou data inválida"
// @Failure 404 {object} ErrorResponse "Rascunho não encontrado ou expirado"
// @Failure 409 {object} ErrorResponse "Campo desabilitado"
// @Router /registration/drafts/{id}/fields/{field} [put]
func (h *RegistrationHandlers) SetField(c *gin.Context) {
	ctx, parseSpan := utils.TraceInputParsing(c.Request.Context(), "set_field_request")
	var req models.SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	parseSpan.End()

	view, err := h.service.SetField(ctx, c.Param("id"), form.FieldName(c.Param("field")), req.Value)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitDraft godoc
// @Summary Enviar rascunho de cadastro
// @Description Valida todos os campos ativos. Se todos passarem, o cadastro é entregue e o rascunho descartado; caso contrário as mensagens de cada campo são retornadas.
// @Tags registration
// @Produce json
// @Param id path string true "ID do rascunho"
// @Success 200 {object} models.SubmitResponse
// @Failure 404 {object} ErrorResponse "Rascunho não encontrado ou expirado"
// @Failure 422 {object} models.SubmitFailureResponse "Campos inválidos"
// @Failure 429 {object} ErrorResponse "Muitas requisições - limite de taxa excedido"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /registration/drafts/{id}/submit [post]
func (h *RegistrationHandlers) SubmitDraft(c *gin.Context) {
	record, view, err := h.service.SubmitDraft(c.Request.Context(), c.Param("id"), c.ClientIP())

	var validationErr *form.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, models.SubmitFailureResponse{
			Error: validationErr.Error(),
			Draft: view,
		})
	case err != nil:
		h.respondError(c, err)
	default:
		c.JSON(http.StatusOK, models.SubmitResponse{Record: record})
	}
}

// DiscardDraft godoc
// @Summary Descartar rascunho de cadastro
// @Tags registration
// @Param id path string true "ID do rascunho"
// @Success 204
// @Failure 404 {object} ErrorResponse "Rascunho não encontrado ou expirado"
// @Router /registration/drafts/{id} [delete]
func (h *RegistrationHandlers) DiscardDraft(c *gin.Context) {
	if err := h.service.DiscardDraft(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSubmission godoc
// @Summary Obter cadastro enviado
// @Description Retorna o registro armazenado para um rascunho já enviado. Requer SUBMISSION_SINK=mongo.
// @Tags registration
// @Produce json
// @Param draftId path string true "ID do rascunho enviado"
// @Success 200 {object} models.RegistrationRecord
// @Failure 404 {object} ErrorResponse "Nenhum cadastro enviado para este rascunho"
// @Failure 501 {object} ErrorResponse "Cadastros enviados não são armazenados"
// @Router /registration/submissions/{draftId} [get]
func (h *RegistrationHandlers) GetSubmission(c *gin.Context) {
	record, err := h.service.GetSubmission(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ValidateValues godoc
// @Summary Validar valores de cadastro
// @Description Valida um conjunto completo de valores sem criar rascunho.
// @Tags registration
// @Accept json
// @Produce json
// @Param data body models.ValidateRequest true "Valores por campo"
// @Success 200 {object} utils.ValidationResult
// @Failure 400 {object} ErrorResponse "Corpo inválido ou valor incompatível com o campo"
// @Router /registration/validate [post]
func (h *RegistrationHandlers) ValidateValues(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.ValidateValues(c.Request.Context(), req.Values)
	if err != nil {
		h.logger.Debug("ValidateValues rejected values",
			zap.Any("values", observability.MaskSensitiveData(req.Values)),
			zap.Error(err))
		h.respondError(c, err)
		return
	}
	if !result.IsValid {
		h.logger.Debug("ValidateValues found errors",
			zap.Any("values", observability.MaskSensitiveData(req.Values)),
			zap.Int("error_count", len(result.Errors)))
	}
	c.JSON(http.StatusOK, result)
}

func (h *RegistrationHandlers) respondError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("registration request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(status, ErrorResponse{Error: "Internal server error"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrDraftNotFound),
		errors.Is(err, models.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSubmissionLookupUnavailable):
		return http.StatusNotImplemented
	case errors.Is(err, models.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, form.ErrFieldDisabled):
		return http.StatusConflict
	case errors.Is(err, form.ErrUnknownField),
		errors.Is(err, form.ErrValueKind),
		errors.Is(err, form.ErrInvalidOption),
		errors.Is(err, form.ErrInvalidDate),
		errors.Is(err, form.ErrDateOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
