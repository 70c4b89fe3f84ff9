package changelog

import (
	"go.uber.org/zap"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

// EntryPersister is the slice of the change-log repository the Recorder
// needs.
type EntryPersister interface {
	PersistEntry(entry models.ChangeLogEntry) error
}

// Recorder writes audit entries after the primary mutation has committed.
// A failed write is logged and swallowed: the audit trail is best-effort
// and must never roll back or fail the operation it describes.
type Recorder struct {
	repository EntryPersister
	logger     *zap.Logger
}

func NewRecorder(r EntryPersister, logger *zap.Logger) *Recorder {
	return &Recorder{
		repository: r,
		logger:     logger,
	}
}

func (rec *Recorder) Record(entry models.ChangeLogEntry) {
	if err := rec.repository.PersistEntry(entry); err != nil {
		rec.logger.Warn("failed to persist change log entry",
			zap.String("entityType", entry.EntityType),
			zap.Int("entityId", entry.EntityID),
			zap.String("action", entry.Action),
			zap.Error(err),
		)
		return
	}

	rec.logger.Debug("change log entry recorded",
		zap.String("entityType", entry.EntityType),
		zap.Int("entityId", entry.EntityID),
		zap.String("action", entry.Action),
	)
}
