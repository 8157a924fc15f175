package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// RecordSubmitter receives each registration that passed validation
type RecordSubmitter interface {
	Submit(ctx context.Context, record *models.RegistrationRecord) error
}

// RecordFinder is implemented by submitters that keep what they receive
type RecordFinder interface {
	FindByDraftID(ctx context.Context, draftID string) (*models.RegistrationRecord, error)
}

// LogSubmitter writes submitted registrations to the log with sensitive
// fields masked.
type LogSubmitter struct {
	logger *logging.SafeLogger
}

// NewLogSubmitter creates a submitter that only logs
func NewLogSubmitter(logger *logging.SafeLogger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

// Submit logs the record
func (s *LogSubmitter) Submit(ctx context.Context, record *models.RegistrationRecord) error {
	fields := []zap.Field{
		zap.String("record_id", record.ID),
		zap.String("draft_id", record.DraftID),
		zap.String("tipo_pessoa", record.TipoPessoa),
		zap.String("nome_completo", record.NomeCompleto),
		zap.Bool("sem_cpf", record.SemCPF),
		zap.Bool("documento_valido", record.DocumentoValido),
		zap.String("uf", record.Endereco.UF),
		zap.String("cidade", record.Endereco.Cidade),
		zap.Time("submitted_at", record.SubmittedAt),
	}
	if record.CPF != "" {
		fields = append(fields, zap.String("cpf", observability.MaskCPF(record.CPF)))
	}
	if record.CNPJ != "" {
		fields = append(fields, zap.String("cnpj", observability.MaskFieldValue("cnpj", record.CNPJ)))
	}

	s.logger.Info("registration submitted", fields...)
	return nil
}

// MongoSubmitter stores submitted registrations in a MongoDB collection
type MongoSubmitter struct {
	collection *mongo.Collection
	logger     *logging.SafeLogger
}

// NewMongoSubmitter creates a submitter backed by collection
func NewMongoSubmitter(collection *mongo.Collection, logger *logging.SafeLogger) *MongoSubmitter {
	return &MongoSubmitter{collection: collection, logger: logger}
}

// Submit inserts the record. A draft can only be stored once.
func (s *MongoSubmitter) Submit(ctx context.Context, record *models.RegistrationRecord) error {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "insert", s.collection.Name())
	defer cleanup()

	_, err := utils.InsertOneWithTimeout(ctx, s.collection, record, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert", "error").Inc()
		utils.RecordErrorInSpan(span, err, map[string]interface{}{"draft.id": record.DraftID})
		s.logger.Error("failed to store registration",
			zap.String("draft_id", record.DraftID),
			zap.Error(err))
		return fmt.Errorf("store registration: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("insert", "success").Inc()
	s.logger.Info("registration stored",
		zap.String("record_id", record.ID),
		zap.String("draft_id", record.DraftID))
	return nil
}

// FindByDraftID returns the stored registration of a draft
func (s *MongoSubmitter) FindByDraftID(ctx context.Context, draftID string) (*models.RegistrationRecord, error) {
	ctx, span, cleanup := utils.TraceDatabaseOperation(ctx, "find", s.collection.Name())
	defer cleanup()

	var record models.RegistrationRecord
	err := utils.FindOneWithTimeout(ctx, s.collection, bson.M{"draft_id": draftID}, &record, utils.DefaultQueryTimeout)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrSubmissionNotFound
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("find", "error").Inc()
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("find registration: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("find", "success").Inc()
	return &record, nil
}
