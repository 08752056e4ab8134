package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/pressgate/pressgate/internal/shared"
)

// AuditRecordJob persists audit trail entries off the request path so slow
// writes never delay an authorization decision.
type AuditRecordJob struct {
	Audit  *shared.AuditLogger
	Logger *slog.Logger
}

// NewAuditRecordJob initialises the audit record handler.
func NewAuditRecordJob(audit *shared.AuditLogger, logger *slog.Logger) *AuditRecordJob {
	return &AuditRecordJob{Audit: audit, Logger: logger}
}

// Handle executes one audit record write.
func (j *AuditRecordJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Audit == nil {
		return errors.New("audit record: handler not configured")
	}
	var payload AuditRecordPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	err := j.Audit.Record(ctx, shared.AuditLog{
		ActorID:  payload.ActorID,
		Action:   payload.Action,
		Entity:   payload.Entity,
		EntityID: payload.EntityID,
		Meta:     payload.Meta,
		At:       payload.At,
	})
	if err != nil && j.Logger != nil {
		j.Logger.Error("audit record", slog.Any("error", err))
	}
	return err
}
