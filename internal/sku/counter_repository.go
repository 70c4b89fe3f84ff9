package sku

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/repository"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

// CounterRepository hands out sequential codes backed by the sku_counters
// table. The increment happens server-side in a single statement, so two
// concurrent creates can never observe the same value.
type CounterRepository struct {
	repository *repository.Repository
}

func NewCounterRepository(r *repository.Repository) *CounterRepository {
	return &CounterRepository{repository: r}
}

// counterUpsert seeds a missing counter row at 1 and otherwise increments
// atomically; the advanced value comes back via RETURNING, never through a
// separate read.
func counterUpsert(ds *goqu.InsertDataset, itemType models.ItemType) *goqu.InsertDataset {
	return ds.
		Rows(goqu.Record{
			"item_type": string(itemType),
			"value":     1,
		}).
		OnConflict(goqu.DoUpdate(
			"item_type",
			goqu.Record{"value": goqu.L("sku_counters.value + 1")},
		)).
		Returning("value")
}

// Next returns the next code for the category.
func (r *CounterRepository) Next(itemType models.ItemType) (string, error) {
	query := counterUpsert(r.repository.GoquDBWrapper.Insert("sku_counters"), itemType)

	var value int64
	if _, err := query.Executor().ScanVal(&value); err != nil {
		return "", fmt.Errorf("failed to advance sku counter for %s: %w", itemType, err)
	}

	return Format(itemType, value), nil
}

// NextInTx is the transactional variant used when the caller needs the code
// assignment to roll back together with the item insert.
func (r *CounterRepository) NextInTx(tx *goqu.TxDatabase, itemType models.ItemType) (string, error) {
	query := counterUpsert(tx.Insert("sku_counters"), itemType)

	var value int64
	if _, err := query.Executor().ScanVal(&value); err != nil {
		return "", fmt.Errorf("failed to advance sku counter for %s: %w", itemType, err)
	}

	return Format(itemType, value), nil
}
