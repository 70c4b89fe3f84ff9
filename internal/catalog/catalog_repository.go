package catalog

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/repository"
	custom_error "github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/errors"
)

// Entry is a row of one of the named lookup tables (categories,
// manufacturers, locations, units, tags, material_types). They all share
// the same id/name shape.
type Entry struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type CatalogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *CatalogRepository {
	return &CatalogRepository{repository: r}
}

func (r *CatalogRepository) List(table string) ([]Entry, error) {
	query := r.repository.GoquDBWrapper.
		From(table).
		Select("id", "name").
		Order(goqu.I("name").Asc())

	var entries []Entry
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to select %s: %w", table, err)
	}

	return entries, nil
}

func (r *CatalogRepository) Create(table, name string) (*Entry, error) {
	query := r.repository.GoquDBWrapper.
		Insert(table).
		Rows(goqu.Record{"name": name}).
		Returning("id")

	entry := Entry{Name: name}
	if _, err := query.Executor().ScanVal(&entry.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError(fmt.Sprintf("Duplicate name in %s", table), string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return &entry, nil
}

func (r *CatalogRepository) Delete(table string, id int) error {
	query := r.repository.GoquDBWrapper.
		Delete(table).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError(fmt.Sprintf("Entry in %s still referenced", table), string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	return nil
}

// FindOrCreateByName resolves a name to its id, creating the row when it
// does not exist yet. The upsert keeps concurrent imports from racing on
// the same new name.
func (r *CatalogRepository) FindOrCreateByName(table, name string) (int, error) {
	query := r.repository.GoquDBWrapper.
		Insert(table).
		Rows(goqu.Record{"name": name}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{"name": goqu.L("EXCLUDED.name")})).
		Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		return 0, fmt.Errorf("failed to resolve %q in %s: %w", name, table, err)
	}

	return id, nil
}
