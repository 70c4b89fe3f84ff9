package models

import (
	"encoding/json"
	"time"
)

const (
	ChangeActionCreate = "create"
	ChangeActionUpdate = "update"
	ChangeActionDelete = "delete"
)

// ChangeLogEntry is an append-only audit record. Entries are written after
// the triggering mutation commits and are never updated or deleted.
type ChangeLogEntry struct {
	ID         int           `json:"id" db:"id"`
	EntityType string        `json:"entityType" db:"entity_type"`
	EntityID   int           `json:"entityId" db:"entity_id"`
	EntityName string        `json:"entityName" db:"entity_name"`
	SKU        string        `json:"sku" db:"sku"`
	Action     string        `json:"action" db:"action"`
	ChangesRaw *string       `json:"-" db:"changes"`
	Changes    []FieldChange `json:"changes" db:"-"`
	ActorID    *int          `json:"actorId" db:"actor_id"`
	ActorName  *string       `json:"actorName" db:"actor_name"`
	ItemType   string        `json:"itemType" db:"item_type"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}

// FieldChange is one entry of the JSON-encoded field-level diff.
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

func (e *ChangeLogEntry) LoadChanges() {
	if e.ChangesRaw != nil && *e.ChangesRaw != "" {
		_ = json.Unmarshal([]byte(*e.ChangesRaw), &e.Changes)
	}
}
