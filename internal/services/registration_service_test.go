package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/config"
	"github.com/prefeitura-rio/app-cadastro/internal/form"
	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	mu      sync.Mutex
	records []*models.RegistrationRecord
	err     error
}

func (r *recordingSubmitter) Submit(_ context.Context, record *models.RegistrationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

// storingSubmitter also answers lookups, like the Mongo sink
type storingSubmitter struct {
	recordingSubmitter
}

func (s *storingSubmitter) FindByDraftID(_ context.Context, draftID string) (*models.RegistrationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.DraftID == draftID {
			return r, nil
		}
	}
	return nil, models.ErrSubmissionNotFound
}

func newTestService(t *testing.T, limiter SubmissionLimiter) (*RegistrationService, *recordingSubmitter) {
	t.Helper()
	store, clock := newTestStore(30 * time.Minute)
	sub := &recordingSubmitter{}
	svc := NewRegistrationService(
		form.NewRegistrationSchema(form.DefaultRegistrationOptions()),
		store,
		limiter,
		sub,
		logging.Logger,
	)
	svc.now = clock.Now
	return svc, sub
}

func fieldState(t *testing.T, view models.DraftResponse, name form.FieldName) form.FieldState {
	t.Helper()
	for _, st := range view.Fields {
		if st.Name == name {
			return st
		}
	}
	t.Fatalf("field %s not in view", name)
	return form.FieldState{}
}

func fillValidDraft(t *testing.T, svc *RegistrationService, id string) {
	t.Helper()
	ctx := context.Background()
	values := []struct {
		name form.FieldName
		raw  interface{}
	}{
		{form.FieldTipoPessoa, form.PessoaFisica},
		{form.FieldNomeCompleto, "  Maria   da Silva "},
		{form.FieldCPF, "03561350712"},
		{form.FieldNascimento, "15/03/1985"},
		{form.FieldEmail, "maria@exemplo.com"},
		{form.FieldConfirmaEmail, "maria@exemplo.com"},
		{form.FieldTipoCelular, "pessoal"},
		{form.FieldCelular, "21987654321"},
		{form.FieldUF, "rj"},
		{form.FieldCEP, "20040020"},
	}
	for _, v := range values {
		_, err := svc.SetField(ctx, id, v.name, v.raw)
		require.NoError(t, err, "set %s", v.name)
	}
}

func TestRegistrationService_Schema(t *testing.T) {
	svc, _ := newTestService(t, nil)

	schema := svc.Schema()
	require.Len(t, schema.Sections, 2)
	assert.Equal(t, form.SectionDadosPessoais, schema.Sections[0].Title)
	assert.Equal(t, []form.FieldName{
		form.FieldCPF, form.FieldEmail, form.FieldConfirmaEmail, form.FieldTipoCelular, form.FieldCelular,
	}, schema.Required)

	require.Len(t, schema.Dependencies, 2)
	assert.Equal(t, models.DependencyEdge{
		Trigger: form.FieldSemCPF, Affected: form.FieldCPF, Action: form.ActionClearValue, Conditional: true,
	}, schema.Dependencies[0])
	assert.Equal(t, models.DependencyEdge{
		Trigger: form.FieldEmail, Affected: form.FieldConfirmaEmail, Action: form.ActionClearError,
	}, schema.Dependencies[1])
}

func TestRegistrationService_CreateDraft(t *testing.T) {
	svc, _ := newTestService(t, nil)

	view := svc.CreateDraft(context.Background())
	assert.NotEmpty(t, view.ID)
	assert.Len(t, view.Fields, 21)
	assert.Empty(t, view.Errors)
	assert.Equal(t, 0, view.SubmitCount)
	assert.True(t, fieldState(t, view, form.FieldCPF).Visible)
	assert.False(t, fieldState(t, view, form.FieldCNPJ).Visible)

	got, err := svc.GetDraft(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)
}

func TestRegistrationService_SetField(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID

	view, err := svc.SetField(ctx, id, form.FieldCPF, "0356135")
	require.NoError(t, err)
	cpf := fieldState(t, view, form.FieldCPF)
	assert.Equal(t, "035.613.5", cpf.Value.String())
	assert.Equal(t, form.MsgCPFIncomplete, cpf.Error)
	assert.Equal(t, form.StatusInvalid, cpf.Status)

	view, err = svc.SetField(ctx, id, form.FieldCPF, "03561350712")
	require.NoError(t, err)
	cpf = fieldState(t, view, form.FieldCPF)
	assert.Equal(t, "035.613.507-12", cpf.Value.String())
	assert.Empty(t, cpf.Error)
	assert.Equal(t, form.StatusValid, cpf.Status)

	view, err = svc.SetField(ctx, id, form.FieldTipoPessoa, form.PessoaJuridica)
	require.NoError(t, err)
	assert.False(t, fieldState(t, view, form.FieldCPF).Visible)
	assert.True(t, fieldState(t, view, form.FieldCNPJ).Visible)
}

func TestRegistrationService_SetFieldErrors(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID

	_, err := svc.SetField(ctx, id, form.FieldSemCPF, true)
	require.NoError(t, err)

	tests := []struct {
		name  string
		field form.FieldName
		raw   interface{}
		want  error
	}{
		{"unknown field", "apelido", "x", form.ErrUnknownField},
		{"wrong kind", form.FieldSemCPF, "talvez", form.ErrValueKind},
		{"text expects string", form.FieldEmail, 42.0, form.ErrValueKind},
		{"invalid option", form.FieldUF, "RJ", form.ErrInvalidOption},
		{"disabled field", form.FieldCPF, "03561350712", form.ErrFieldDisabled},
		{"future date", form.FieldNascimento, "11/05/2024", form.ErrDateOutOfRange},
		{"bad date", form.FieldNascimento, "31/02/1990", form.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetField(ctx, id, tt.field, tt.raw)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.SetField(ctx, "missing", form.FieldEmail, "a@b.com")
	assert.ErrorIs(t, err, models.ErrDraftNotFound)
}

func TestRegistrationService_SemCPFClearsValue(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID

	_, err := svc.SetField(ctx, id, form.FieldCPF, "123.456")
	require.NoError(t, err)
	view, err := svc.SetField(ctx, id, form.FieldSemCPF, true)
	require.NoError(t, err)

	cpf := fieldState(t, view, form.FieldCPF)
	assert.Equal(t, "", cpf.Value.String())
	assert.True(t, cpf.Disabled)
	assert.Empty(t, cpf.Error)
}

func TestRegistrationService_SubmitInvalid(t *testing.T) {
	svc, sub := newTestService(t, nil)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID

	record, view, err := svc.SubmitDraft(ctx, id, "client")
	require.Error(t, err)
	assert.Nil(t, record)

	var validationErr *form.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, form.MsgRequired, validationErr.Fields[form.FieldEmail])
	assert.Len(t, view.Errors, 5)
	assert.Equal(t, 1, view.SubmitCount)
	assert.Empty(t, sub.records)

	// The draft survives a blocked submission
	_, err = svc.GetDraft(ctx, id)
	assert.NoError(t, err)
}

func TestRegistrationService_SubmitValid(t *testing.T) {
	svc, sub := newTestService(t, nil)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID
	fillValidDraft(t, svc, id)

	record, view, err := svc.SubmitDraft(ctx, id, "client")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Len(t, sub.records, 1)
	assert.Same(t, record, sub.records[0])
	assert.Equal(t, 1, view.SubmitCount)

	assert.Equal(t, id, record.DraftID)
	assert.Equal(t, "Maria da Silva", record.NomeCompleto)
	assert.Equal(t, "03561350712", record.CPF)
	assert.True(t, record.DocumentoValido)
	assert.Equal(t, "20040020", record.Endereco.CEP)
	assert.Equal(t, "rj", record.Endereco.UF)
	require.NotNil(t, record.Nascimento)
	assert.Equal(t, time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC), record.Nascimento.UTC())
	require.NotNil(t, record.Celular)
	assert.Equal(t, "21", record.Celular.DDD)
	assert.Equal(t, "+5521987654321", record.Celular.E164)
	assert.Nil(t, record.Telefone)
	assert.Equal(t, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC), record.SubmittedAt)

	_, err = svc.GetDraft(ctx, id)
	assert.ErrorIs(t, err, models.ErrDraftNotFound)
}

func TestRegistrationService_SubmitRateLimited(t *testing.T) {
	limiter := &countingLimiter{allow: false}
	svc, sub := newTestService(t, limiter)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID
	fillValidDraft(t, svc, id)

	_, view, err := svc.SubmitDraft(ctx, id, "client")
	assert.ErrorIs(t, err, models.ErrRateLimited)
	assert.Equal(t, 1, limiter.calls)
	assert.Equal(t, 0, view.SubmitCount)
	assert.Empty(t, sub.records)
}

func TestRegistrationService_SubmitterFailureKeepsDraft(t *testing.T) {
	svc, sub := newTestService(t, nil)
	sub.err = errors.New("sink down")
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID
	fillValidDraft(t, svc, id)

	_, _, err := svc.SubmitDraft(ctx, id, "client")
	assert.ErrorIs(t, err, sub.err)

	_, err = svc.GetDraft(ctx, id)
	assert.NoError(t, err)
}

func TestRegistrationService_DiscardDraft(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID

	require.NoError(t, svc.DiscardDraft(ctx, id))
	assert.ErrorIs(t, svc.DiscardDraft(ctx, id), models.ErrDraftNotFound)
	_, err := svc.GetDraft(ctx, id)
	assert.ErrorIs(t, err, models.ErrDraftNotFound)
}

func TestRegistrationService_ValidateValues(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	valid := map[string]interface{}{
		"cpf":           "035.613.507-12",
		"email":         "joao@rio.rj.gov.br",
		"confirmaEmail": "joao@rio.rj.gov.br",
		"tipoCelular":   "pessoal",
		"celular":       "(21) 98765-4321",
	}
	result, err := svc.ValidateValues(ctx, valid)
	require.NoError(t, err)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)

	mismatch := map[string]interface{}{
		"semCPF":        true,
		"cpf":           "123",
		"email":         "joao@rio.rj.gov.br",
		"confirmaEmail": "maria@rio.rj.gov.br",
		"tipoCelular":   "pessoal",
		"celular":       "(21) 98765-4321",
	}
	result, err = svc.ValidateValues(ctx, mismatch)
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "confirmaEmail", result.Errors[0].Field)
	assert.Equal(t, form.MsgEmailMismatch, result.Errors[0].Message)

	_, err = svc.ValidateValues(ctx, map[string]interface{}{"apelido": "x"})
	assert.ErrorIs(t, err, form.ErrUnknownField)

	_, err = svc.ValidateValues(ctx, map[string]interface{}{"uf": "XX"})
	assert.ErrorIs(t, err, form.ErrInvalidOption)
}

func TestRegistrationService_ConcurrentEvents(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.SetField(ctx, id, form.FieldEmail, "a@exemplo.com")
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.GetDraft(ctx, id)
		}()
	}
	wg.Wait()

	view, err := svc.GetDraft(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a@exemplo.com", fieldState(t, view, form.FieldEmail).Value.String())
}

func TestRegistrationService_SweepRemovesExpiredDrafts(t *testing.T) {
	svc, _ := newTestService(t, NewLocalSubmitLimiter(10, logging.Logger))
	ctx := context.Background()
	id := svc.CreateDraft(ctx).ID

	clock := &fakeClock{now: svc.store.now().Add(time.Hour)}
	svc.store.now = clock.Now
	svc.sweep(time.Minute)

	assert.Equal(t, 0, svc.store.Len())
	_, err := svc.GetDraft(ctx, id)
	assert.ErrorIs(t, err, models.ErrDraftNotFound)
}

func TestRegistrationService_StartSweeperStops(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	svc.StartSweeper(ctx, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	cancel()
}

func TestInitRegistrationService(t *testing.T) {
	prevConfig, prevMongo, prevRedis, prevInstance := config.AppConfig, config.MongoDB, config.Redis, RegistrationServiceInstance
	t.Cleanup(func() {
		config.AppConfig, config.MongoDB, config.Redis, RegistrationServiceInstance = prevConfig, prevMongo, prevRedis, prevInstance
	})
	config.MongoDB = nil
	config.Redis = nil

	config.AppConfig = &config.Config{
		SubmissionSink:           config.SinkLog,
		DraftTTL:                 time.Minute,
		SubmitRateLimitPerMinute: 5,
		CPFLengthCheck:           true,
	}
	require.NoError(t, InitRegistrationService())
	require.NotNil(t, RegistrationServiceInstance)
	assert.IsType(t, &LogSubmitter{}, RegistrationServiceInstance.submitter)
	assert.IsType(t, &LocalSubmitLimiter{}, RegistrationServiceInstance.limiter)

	config.AppConfig.SubmitRateLimitPerMinute = 0
	require.NoError(t, InitRegistrationService())
	assert.Nil(t, RegistrationServiceInstance.limiter)

	config.AppConfig.SubmissionSink = config.SinkMongo
	assert.Error(t, InitRegistrationService())
}

func TestRegistrationService_GetSubmission(t *testing.T) {
	svc, _ := newTestService(t, nil)
	sub := &storingSubmitter{}
	svc.submitter = sub
	ctx := context.Background()

	id := svc.CreateDraft(ctx).ID
	fillValidDraft(t, svc, id)
	record, _, err := svc.SubmitDraft(ctx, id, "client")
	require.NoError(t, err)

	stored, err := svc.GetSubmission(ctx, id)
	require.NoError(t, err)
	assert.Same(t, record, stored)

	_, err = svc.GetSubmission(ctx, "never-submitted")
	assert.ErrorIs(t, err, models.ErrSubmissionNotFound)
}

func TestRegistrationService_GetSubmission_LogSink(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.submitter = NewLogSubmitter(logging.Logger)

	_, err := svc.GetSubmission(context.Background(), "any")
	assert.ErrorIs(t, err, models.ErrSubmissionLookupUnavailable)

	var _ RecordFinder = (*MongoSubmitter)(nil)
}
