package changelog

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/repository"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

type ChangeLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *ChangeLogRepository {
	return &ChangeLogRepository{repository: r}
}

func (r *ChangeLogRepository) PersistEntry(entry models.ChangeLogEntry) error {
	record := goqu.Record{
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"entity_name": entry.EntityName,
		"sku":         entry.SKU,
		"action":      entry.Action,
		"actor_id":    entry.ActorID,
		"actor_name":  entry.ActorName,
		"item_type":   entry.ItemType,
	}

	if len(entry.Changes) > 0 {
		changesJSON, err := json.Marshal(entry.Changes)
		if err != nil {
			return fmt.Errorf("failed to marshal change log diff: %w", err)
		}
		record["changes"] = string(changesJSON)
	}

	query := r.repository.GoquDBWrapper.Insert("change_logs").Rows(record)

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert change log entry: %w", err)
	}

	return nil
}

type listQuery struct {
	EntityType string `form:"entityType"`
	Action     string `form:"action"`
	ItemType   string `form:"itemType"`
	Limit      uint   `form:"limit,default=50"`
	Offset     uint   `form:"offset"`
}

func (r *ChangeLogRepository) GetEntries(q listQuery) ([]models.ChangeLogEntry, error) {
	conditions := goqu.Ex{}
	if q.EntityType != "" {
		conditions["entity_type"] = q.EntityType
	}
	if q.Action != "" {
		conditions["action"] = q.Action
	}
	if q.ItemType != "" {
		conditions["item_type"] = q.ItemType
	}

	limit := q.Limit
	if limit == 0 || limit > 200 {
		limit = 50
	}

	query := r.repository.GoquDBWrapper.
		From("change_logs").
		Select(
			"id", "entity_type", "entity_id", "entity_name", "sku",
			"action", "changes", "actor_id", "actor_name", "item_type",
			"created_at",
		).
		Where(conditions).
		Order(goqu.I("created_at").Desc()).
		Limit(limit).
		Offset(q.Offset)

	var entries []models.ChangeLogEntry
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to select change log entries: %w", err)
	}

	for i := range entries {
		entries[i].LoadChanges()
	}

	return entries, nil
}
