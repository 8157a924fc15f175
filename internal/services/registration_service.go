package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/form"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.uber.org/zap"
)

// RegistrationService mounts registration forms as drafts and applies the
// input events and submissions received over HTTP.
type RegistrationService struct {
	schema    *form.Schema
	store     *DraftStore
	limiter   SubmissionLimiter
	submitter RecordSubmitter
	logger    *logging.SafeLogger
	now       func() time.Time
}

// NewRegistrationService creates a service. A nil limiter disables
// submission rate limiting.
func NewRegistrationService(schema *form.Schema, store *DraftStore, limiter SubmissionLimiter, submitter RecordSubmitter, logger *logging.SafeLogger) *RegistrationService {
	return &RegistrationService{
		schema:    schema,
		store:     store,
		limiter:   limiter,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
}

// Schema returns the form layout along with the required fields and the
// dependency table.
func (s *RegistrationService) Schema() models.SchemaResponse {
	resp := models.SchemaResponse{
		Sections:     s.schema.Sections(),
		Required:     []form.FieldName{},
		Dependencies: []models.DependencyEdge{},
	}
	for _, name := range s.schema.Names() {
		if spec, ok := s.schema.Field(name); ok && spec.Required() {
			resp.Required = append(resp.Required, name)
		}
	}
	for _, dep := range s.schema.Dependencies() {
		resp.Dependencies = append(resp.Dependencies, models.DependencyEdge{
			Trigger:     dep.Trigger,
			Affected:    dep.Affected,
			Action:      dep.Action,
			Conditional: dep.When != nil,
		})
	}
	return resp
}

// CreateDraft mounts an empty form
func (s *RegistrationService) CreateDraft(ctx context.Context) models.DraftResponse {
	_, span := utils.TraceBusinessLogic(ctx, "create_draft")
	defer span.End()

	entry := s.store.create(form.New(s.schema, form.WithClock(s.now)))
	utils.AddSpanAttribute(span, "draft.id", entry.id)
	s.logger.Debug("draft created", zap.String("draft_id", entry.id))

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return s.view(entry)
}

// GetDraft returns the current render state of a draft
func (s *RegistrationService) GetDraft(ctx context.Context, id string) (models.DraftResponse, error) {
	entry, err := s.lock(id)
	if err != nil {
		return models.DraftResponse{}, err
	}
	defer entry.mu.Unlock()
	return s.view(entry), nil
}

// SetField applies one input event to a draft field
func (s *RegistrationService) SetField(ctx context.Context, id string, field form.FieldName, raw interface{}) (models.DraftResponse, error) {
	_, span := utils.TraceFormEvent(ctx, id, string(field))
	defer span.End()

	entry, err := s.lock(id)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return models.DraftResponse{}, err
	}
	defer entry.mu.Unlock()

	if err := entry.form.SetInput(field, raw); err != nil {
		observability.FieldEvents.WithLabelValues(s.metricField(field), "rejected").Inc()
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"form.field": string(field)})
		return models.DraftResponse{}, fmt.Errorf("set %s: %w", field, err)
	}

	status := "valid"
	if msg := entry.form.Error(field); msg != "" {
		status = "invalid"
		utils.AddSpanAttribute(span, "form.error", msg)
	}
	observability.FieldEvents.WithLabelValues(string(field), status).Inc()

	s.logger.Debug("draft field set",
		zap.String("draft_id", id),
		zap.String("field", string(field)),
		zap.String("value", observability.MaskFieldValue(string(field), entry.form.Value(field).String())),
		zap.String("status", status))

	return s.view(entry), nil
}

// SubmitDraft validates the draft and hands it to the submitter. On
// validation failure the returned view carries the per-field messages and
// the error is a *form.ValidationError. A submitted draft is discarded.
func (s *RegistrationService) SubmitDraft(ctx context.Context, id, clientKey string) (*models.RegistrationRecord, models.DraftResponse, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "submit_draft")
	defer span.End()
	utils.AddSpanAttribute(span, "draft.id", id)

	entry, err := s.lock(id)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, models.DraftResponse{}, err
	}
	defer entry.mu.Unlock()

	if s.limiter != nil && !s.limiter.Allow(ctx, clientKey) {
		observability.Submissions.WithLabelValues("rate_limited").Inc()
		return nil, s.view(entry), models.ErrRateLimited
	}

	var record *models.RegistrationRecord
	_, err = entry.form.Submit(ctx, form.SubmitterFunc(func(ctx context.Context, snapshot form.Draft) error {
		record = BuildRegistrationRecord(id, snapshot, s.now().UTC())
		return s.submitter.Submit(ctx, record)
	}))

	var validationErr *form.ValidationError
	switch {
	case errors.As(err, &validationErr):
		for _, name := range validationErr.Fields.Fields() {
			observability.ValidationFailures.WithLabelValues(string(name)).Inc()
		}
		observability.Submissions.WithLabelValues("invalid").Inc()
		s.logger.Info("draft submission blocked by validation",
			zap.String("draft_id", id),
			zap.Int("failing_fields", len(validationErr.Fields)),
			zap.Int("submit_count", entry.form.SubmitCount()))
		return nil, s.view(entry), err

	case err != nil:
		observability.Submissions.WithLabelValues("error").Inc()
		utils.RecordErrorInSpan(span, err, nil)
		s.logger.Error("draft submission failed", zap.String("draft_id", id), zap.Error(err))
		return nil, s.view(entry), err
	}

	view := s.view(entry)
	s.store.Delete(id)
	observability.Submissions.WithLabelValues("success").Inc()
	s.logger.Info("draft submitted", zap.String("draft_id", id), zap.String("record_id", record.ID))
	return record, view, nil
}

// GetSubmission returns the registration stored for a submitted draft. It
// needs a submitter that keeps records.
func (s *RegistrationService) GetSubmission(ctx context.Context, draftID string) (*models.RegistrationRecord, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "get_submission")
	defer span.End()
	utils.AddSpanAttribute(span, "draft.id", draftID)

	finder, ok := s.submitter.(RecordFinder)
	if !ok {
		return nil, models.ErrSubmissionLookupUnavailable
	}
	record, err := finder.FindByDraftID(ctx, draftID)
	if err != nil && !errors.Is(err, models.ErrSubmissionNotFound) {
		utils.RecordErrorInSpan(span, err, nil)
	}
	return record, err
}

// DiscardDraft drops a draft
func (s *RegistrationService) DiscardDraft(ctx context.Context, id string) error {
	if !s.store.Delete(id) {
		return models.ErrDraftNotFound
	}
	s.logger.Debug("draft discarded", zap.String("draft_id", id))
	return nil
}

// ValidateValues runs every active field validation over a complete value
// map without keeping any state. Values are applied in layout order.
func (s *RegistrationService) ValidateValues(ctx context.Context, values map[string]interface{}) (*utils.ValidationResult, error) {
	_, span := utils.TraceInputValidation(ctx, "registration", "")
	defer span.End()

	for name := range values {
		if _, ok := s.schema.Field(form.FieldName(name)); !ok {
			err := fmt.Errorf("%w: %s", form.ErrUnknownField, name)
			utils.RecordErrorInSpan(span, err, nil)
			return nil, err
		}
	}

	f := form.New(s.schema, form.WithClock(s.now))
	for _, name := range s.schema.Names() {
		raw, ok := values[string(name)]
		if !ok {
			continue
		}
		err := f.SetInput(name, raw)
		if errors.Is(err, form.ErrFieldDisabled) {
			continue
		}
		if err != nil {
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"form.field": string(name)})
			return nil, fmt.Errorf("set %s: %w", name, err)
		}
	}
	f.Trigger()

	result := utils.ValidationResultFromErrors(f.Errors())
	for _, e := range result.Errors {
		observability.ValidationFailures.WithLabelValues(e.Field).Inc()
	}
	return result, nil
}

// StartSweeper removes expired drafts and idle rate limit buckets every
// interval until ctx is done.
func (s *RegistrationService) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(interval)
			}
		}
	}()
}

func (s *RegistrationService) sweep(interval time.Duration) {
	if removed := s.store.Sweep(); removed > 0 {
		s.logger.Info("expired drafts removed", zap.Int("count", removed))
	}
	if local := s.localLimiter(); local != nil {
		local.CleanupOldEntries(interval + time.Minute)
	}
}

func (s *RegistrationService) localLimiter() *LocalSubmitLimiter {
	switch l := s.limiter.(type) {
	case *LocalSubmitLimiter:
		return l
	case *RedisSubmitLimiter:
		local, _ := l.fallback.(*LocalSubmitLimiter)
		return local
	}
	return nil
}

// lock returns a live draft with its mutex held
func (s *RegistrationService) lock(id string) (*draftEntry, error) {
	entry, err := s.store.get(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	if entry.closed.Load() {
		entry.mu.Unlock()
		return nil, models.ErrDraftNotFound
	}
	return entry, nil
}

// metricField keeps unknown field names out of metric labels
func (s *RegistrationService) metricField(field form.FieldName) string {
	if _, ok := s.schema.Field(field); ok {
		return string(field)
	}
	return "unknown"
}

// view must be called with the entry mutex held
func (s *RegistrationService) view(entry *draftEntry) models.DraftResponse {
	return models.DraftResponse{
		ID:          entry.id,
		ExpiresAt:   s.store.expiry(entry),
		SubmitCount: entry.form.SubmitCount(),
		Fields:      entry.form.States(),
		Errors:      entry.form.Errors(),
	}
}

// RegistrationServiceInstance is the global registration service
var RegistrationServiceInstance *RegistrationService

// InitRegistrationService wires the registration service from config
func InitRegistrationService() error {
	logger := logging.Logger.With(zap.String("service", "registration"))

	schema := form.NewRegistrationSchema(form.RegistrationOptions{
		CPFLengthCheck: config.AppConfig.CPFLengthCheck,
	})

	var submitter RecordSubmitter
	switch config.AppConfig.SubmissionSink {
	case config.SinkMongo:
		if config.MongoDB == nil {
			return fmt.Errorf("submission sink %q requires MongoDB", config.SinkMongo)
		}
		submitter = NewMongoSubmitter(config.MongoDB.Collection(config.AppConfig.RegistrationCollection), logger)
	default:
		submitter = NewLogSubmitter(logger)
	}

	var limiter SubmissionLimiter
	if perMinute := config.AppConfig.SubmitRateLimitPerMinute; perMinute > 0 {
		local := NewLocalSubmitLimiter(perMinute, logger)
		limiter = local
		if config.Redis != nil {
			limiter = NewRedisSubmitLimiter(config.Redis, perMinute, local, logger)
		}
	}

	RegistrationServiceInstance = NewRegistrationService(
		schema,
		NewDraftStore(config.AppConfig.DraftTTL),
		limiter,
		submitter,
		logger,
	)

	logger.Info("registration service initialized",
		zap.String("sink", config.AppConfig.SubmissionSink),
		zap.Bool("rate_limited", limiter != nil),
		zap.Duration("draft_ttl", config.AppConfig.DraftTTL))
	return nil
}
