// Package audit implementa el registro de operaciones destructivas.
// El sink es fire-and-forget: una falla al escribir el log se reporta por
// el logger y nunca afecta la operación que lo originó.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/facturasegura/api/internal/domain/entity"
	"github.com/facturasegura/api/internal/domain/repository"
	"github.com/facturasegura/api/pkg/logger"
)

// Sink escribe entradas de auditoría fuera de la transacción del motor.
type Sink struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewSink construye el sink.
func NewSink(repo repository.AuditLogRepository, log *logger.Logger) *Sink {
	return &Sink{repo: repo, log: log}
}

// RecordDeletion registra una eliminación con motivo. Nunca retorna error.
func (s *Sink) RecordDeletion(ctx context.Context, model, objectID, description, reason, userID string) {
	entry := &entity.AuditLog{
		ID:          uuid.New().String(),
		Model:       model,
		ObjectID:    objectID,
		Description: description,
		Reason:      reason,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(entry); err != nil {
		s.log.Error().Err(err).
			Str("model", model).
			Str("object_id", objectID).
			Msg("escribir log de auditoría")
	}
}
