package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

type MockEntryPersister struct {
	mock.Mock
}

func (m *MockEntryPersister) PersistEntry(entry models.ChangeLogEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func TestRecordPersistsEntry(t *testing.T) {
	persister := new(MockEntryPersister)
	recorder := NewRecorder(persister, zap.NewNop())

	entry := models.ChangeLogEntry{
		EntityType: "item",
		EntityID:   42,
		Action:     models.ChangeActionUpdate,
	}

	persister.On("PersistEntry", entry).Return(nil).Once()

	recorder.Record(entry)

	persister.AssertExpectations(t)
}

func TestRecordSwallowsPersistenceFailure(t *testing.T) {
	persister := new(MockEntryPersister)
	recorder := NewRecorder(persister, zap.NewNop())

	entry := models.ChangeLogEntry{
		EntityType: "item",
		EntityID:   7,
		Action:     models.ChangeActionDelete,
	}

	persister.On("PersistEntry", entry).Return(errors.New("connection reset")).Once()

	// The audit trail is best-effort: a failed write must not panic or
	// surface to the caller.
	assert.NotPanics(t, func() {
		recorder.Record(entry)
	})

	persister.AssertExpectations(t)
}
