package items

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/repository"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/sku"
	custom_error "github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/errors"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

type ItemRepository struct {
	repository *repository.Repository
	counters   *sku.CounterRepository
}

func NewRepository(r *repository.Repository, counters *sku.CounterRepository) *ItemRepository {
	return &ItemRepository{
		repository: r,
		counters:   counters,
	}
}

func (r *ItemRepository) getItemQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.
		From(goqu.T("items").As("i")).
		Select(
			goqu.I("i.id").As("id"),
			goqu.I("i.sku").As("sku"),
			goqu.I("i.name").As("name"),
			goqu.I("i.item_type").As("item_type"),
			goqu.I("i.specification").As("specification"),
			goqu.I("i.size").As("size"),
			goqu.I("i.fabric_color").As("fabric_color"),
			goqu.I("i.designer").As("designer"),
			goqu.I("i.notes").As("notes"),
			goqu.I("i.quantity").As("quantity"),
			goqu.I("i.cost_price").As("cost_price"),
			goqu.I("i.list_price").As("list_price"),
			goqu.I("i.arrival_date").As("arrival_date"),
			goqu.I("i.is_sold").As("is_sold"),
			goqu.I("i.sold_at").As("sold_at"),
			goqu.I("i.category_id").As("category_id"),
			goqu.I("c.name").As("category_name"),
			goqu.I("i.manufacturer_id").As("manufacturer_id"),
			goqu.I("m.name").As("manufacturer_name"),
			goqu.I("i.location_id").As("location_id"),
			goqu.I("l.name").As("location_name"),
			goqu.I("i.unit_id").As("unit_id"),
			goqu.I("u.name").As("unit_name"),
			goqu.I("i.created_at").As("created_at"),
			goqu.I("i.updated_at").As("updated_at"),
		).
		LeftJoin(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"c.id": goqu.I("i.category_id")})).
		LeftJoin(goqu.T("manufacturers").As("m"), goqu.On(goqu.Ex{"m.id": goqu.I("i.manufacturer_id")})).
		LeftJoin(goqu.T("locations").As("l"), goqu.On(goqu.Ex{"l.id": goqu.I("i.location_id")})).
		LeftJoin(goqu.T("units").As("u"), goqu.On(goqu.Ex{"u.id": goqu.I("i.unit_id")}))
}

func (r *ItemRepository) GetItems(q ListItemsQuery) ([]models.Item, int64, error) {
	conditions := q.BuildWhere()

	countQuery := r.repository.GoquDBWrapper.
		From(goqu.T("items").As("i")).
		Select(goqu.COUNT(goqu.I("i.id")))
	for _, condition := range conditions {
		countQuery = countQuery.Where(condition)
	}

	var total int64
	if _, err := countQuery.Executor().ScanVal(&total); err != nil {
		return nil, 0, fmt.Errorf("unable to count items: %w", err)
	}

	limit := q.Limit
	if limit == 0 {
		limit = 50
	}

	query := r.getItemQuery()
	for _, condition := range conditions {
		query = query.Where(condition)
	}
	query = query.
		Order(BuildOrder(q.SortBy, q.SortOrder)).
		Limit(limit).
		Offset(q.Offset)

	var flatItems []models.FlatItemRecord
	if err := query.Executor().ScanStructs(&flatItems); err != nil {
		return nil, 0, fmt.Errorf("unable to select items: %w", err)
	}

	items := make([]models.Item, 0, len(flatItems))
	for i := range flatItems {
		items = append(items, flatItems[i].TransformToItem())
	}

	if err := r.attachRelations(items); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ItemRepository) GetItem(id int) (*models.Item, error) {
	return r.fetchItemByCondition(goqu.Ex{"i.id": id})
}

// FindBySKU returns (nil, nil) when no item carries the code; the CSV
// import uses the miss to decide between create and update.
func (r *ItemRepository) FindBySKU(code string) (*models.Item, error) {
	item, err := r.fetchItemByCondition(goqu.Ex{"i.sku": code})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) fetchItemByCondition(condition goqu.Ex) (*models.Item, error) {
	var flatItem models.FlatItemRecord
	found, err := r.getItemQuery().Where(condition).Executor().ScanStruct(&flatItem)
	if err != nil {
		return nil, fmt.Errorf("unable to select item: %w", err)
	}
	if !found {
		return nil, sql.ErrNoRows
	}

	item := flatItem.TransformToItem()
	items := []models.Item{item}
	if err := r.attachRelations(items); err != nil {
		return nil, err
	}

	return &items[0], nil
}

func (r *ItemRepository) CreateItem(req ItemRequest) (*models.Item, error) {
	itemType := req.ItemType
	if !itemType.IsValid() {
		itemType = models.ItemTypeProduct
	}

	var itemID int
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		code, err := r.counters.NextInTx(tx, itemType)
		if err != nil {
			return err
		}

		record := itemRecord(req)
		record["sku"] = code
		record["item_type"] = string(itemType)

		query := tx.Insert("items").Rows(record).Returning("id")
		if _, err := query.Executor().ScanVal(&itemID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok {
				return custom_error.WrapDBError("Duplicate SKU for item", string(pqErr.Code))
			}
			return fmt.Errorf("failed to insert item record: %w", err)
		}

		if err := replaceTags(tx, itemID, req.TagIDs); err != nil {
			return err
		}
		return replaceMaterials(tx, itemID, req.Materials)
	})
	if err != nil {
		return nil, err
	}

	return r.GetItem(itemID)
}

func (r *ItemRepository) UpdateItem(id int, req ItemRequest) (*models.Item, error) {
	err := repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		record := itemRecord(req)
		record["updated_at"] = goqu.L("NOW()")

		result, err := tx.Update("items").
			Set(record).
			Where(goqu.Ex{"id": id}).
			Executor().
			Exec()
		if err != nil {
			return fmt.Errorf("failed to update item %d: %w", id, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return sql.ErrNoRows
		}

		if err := replaceTags(tx, id, req.TagIDs); err != nil {
			return err
		}
		return replaceMaterials(tx, id, req.Materials)
	})
	if err != nil {
		return nil, err
	}

	return r.GetItem(id)
}

func (r *ItemRepository) DeleteItem(id int) error {
	var deletedID int
	query := r.repository.GoquDBWrapper.
		Delete("items").
		Where(goqu.Ex{"id": id}).
		Returning("id")

	found, err := query.Executor().ScanVal(&deletedID)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	if !found {
		return sql.ErrNoRows
	}

	return nil
}

// AdjustQuantities applies the delta row by row so each row is clamped at
// zero independently. Every UPDATE is its own server-side read-modify-write.
func (r *ItemRepository) AdjustQuantities(ids []int, delta int) error {
	for _, id := range ids {
		query := r.repository.GoquDBWrapper.
			Update("items").
			Set(goqu.Record{
				"quantity":   goqu.L("GREATEST(quantity + ?, 0)", delta),
				"updated_at": goqu.L("NOW()"),
			}).
			Where(goqu.Ex{"id": id})

		if _, err := query.Executor().Exec(); err != nil {
			return fmt.Errorf("failed to adjust quantity for item %d: %w", id, err)
		}
	}

	return nil
}

// SetFields applies cross-field bulk updates in a single multi-row statement.
func (r *ItemRepository) SetFields(ids []int, record goqu.Record) error {
	if len(record) == 0 {
		return nil
	}
	record["updated_at"] = goqu.L("NOW()")

	query := r.repository.GoquDBWrapper.
		Update("items").
		Set(record).
		Where(goqu.Ex{"id": ids})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to bulk update items: %w", err)
	}

	return nil
}

// ReplaceTagsBulk rewrites the tag set of every selected row inside one
// transaction so no row is ever visible with the tags half-applied.
func (r *ItemRepository) ReplaceTagsBulk(ids []int, tagIDs []int) error {
	return repository.WithTransaction(r.repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("item_tags").
			Where(goqu.Ex{"item_id": ids}).
			Executor().
			Exec(); err != nil {
			return fmt.Errorf("failed to clear tags for bulk edit: %w", err)
		}

		var rows []interface{}
		for _, id := range ids {
			for _, tagID := range tagIDs {
				rows = append(rows, goqu.Record{"item_id": id, "tag_id": tagID})
			}
		}
		if len(rows) == 0 {
			return nil
		}

		if _, err := tx.Insert("item_tags").Rows(rows...).Executor().Exec(); err != nil {
			return fmt.Errorf("failed to insert tags for bulk edit: %w", err)
		}
		return nil
	})
}

func (r *ItemRepository) BulkDelete(ids []int) error {
	query := r.repository.GoquDBWrapper.
		Delete("items").
		Where(goqu.Ex{"id": ids})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to bulk delete items: %w", err)
	}

	return nil
}

func itemRecord(req ItemRequest) goqu.Record {
	return goqu.Record{
		"name":            req.Name,
		"specification":   req.Specification,
		"size":            req.Size,
		"fabric_color":    req.FabricColor,
		"designer":        req.Designer,
		"notes":           req.Notes,
		"quantity":        req.Quantity,
		"cost_price":      req.CostPrice,
		"list_price":      req.ListPrice,
		"arrival_date":    req.ArrivalDate,
		"is_sold":         req.IsSold,
		"sold_at":         req.SoldAt,
		"category_id":     req.CategoryID,
		"manufacturer_id": req.ManufacturerID,
		"location_id":     req.LocationID,
		"unit_id":         req.UnitID,
	}
}

func replaceTags(tx *goqu.TxDatabase, itemID int, tagIDs []int) error {
	if _, err := tx.Delete("item_tags").
		Where(goqu.Ex{"item_id": itemID}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to clear tags for item %d: %w", itemID, err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	var rows []interface{}
	for _, tagID := range tagIDs {
		rows = append(rows, goqu.Record{"item_id": itemID, "tag_id": tagID})
	}

	if _, err := tx.Insert("item_tags").Rows(rows...).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert tags for item %d: %w", itemID, err)
	}

	return nil
}

func replaceMaterials(tx *goqu.TxDatabase, itemID int, materials []models.ItemMaterial) error {
	if _, err := tx.Delete("item_materials").
		Where(goqu.Ex{"item_id": itemID}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to clear materials for item %d: %w", itemID, err)
	}

	if len(materials) == 0 {
		return nil
	}

	var rows []interface{}
	for position, material := range materials {
		rows = append(rows, goqu.Record{
			"item_id":          itemID,
			"material_type_id": material.MaterialTypeID,
			"percentage":       material.Percentage,
			"note":             material.Note,
			"position":         position,
		})
	}

	if _, err := tx.Insert("item_materials").Rows(rows...).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert materials for item %d: %w", itemID, err)
	}

	return nil
}

type itemTagRecord struct {
	ItemID int    `db:"item_id"`
	ID     int    `db:"id"`
	Name   string `db:"name"`
}

type itemMaterialRecord struct {
	ItemID         int     `db:"item_id"`
	MaterialTypeID int     `db:"material_type_id"`
	MaterialName   string  `db:"material_name"`
	Percentage     *int    `db:"percentage"`
	Note           *string `db:"note"`
	Position       int     `db:"position"`
}

func (r *ItemRepository) attachRelations(items []models.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int, 0, len(items))
	index := make(map[int]*models.Item, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
		index[items[i].ID] = &items[i]
	}

	tagQuery := r.repository.GoquDBWrapper.
		From(goqu.T("item_tags").As("it")).
		Select(
			goqu.I("it.item_id").As("item_id"),
			goqu.I("t.id").As("id"),
			goqu.I("t.name").As("name"),
		).
		Join(goqu.T("tags").As("t"), goqu.On(goqu.Ex{"t.id": goqu.I("it.tag_id")})).
		Where(goqu.Ex{"it.item_id": ids}).
		Order(goqu.I("t.name").Asc())

	var tagRecords []itemTagRecord
	if err := tagQuery.Executor().ScanStructs(&tagRecords); err != nil {
		return fmt.Errorf("unable to select item tags: %w", err)
	}
	for _, record := range tagRecords {
		item := index[record.ItemID]
		item.Tags = append(item.Tags, models.Tag{ID: record.ID, Name: record.Name})
	}

	materialQuery := r.repository.GoquDBWrapper.
		From(goqu.T("item_materials").As("im")).
		Select(
			goqu.I("im.item_id").As("item_id"),
			goqu.I("im.material_type_id").As("material_type_id"),
			goqu.I("mt.name").As("material_name"),
			goqu.I("im.percentage").As("percentage"),
			goqu.I("im.note").As("note"),
			goqu.I("im.position").As("position"),
		).
		Join(goqu.T("material_types").As("mt"), goqu.On(goqu.Ex{"mt.id": goqu.I("im.material_type_id")})).
		Where(goqu.Ex{"im.item_id": ids}).
		Order(goqu.I("im.position").Asc())

	var materialRecords []itemMaterialRecord
	if err := materialQuery.Executor().ScanStructs(&materialRecords); err != nil {
		return fmt.Errorf("unable to select item materials: %w", err)
	}
	for _, record := range materialRecords {
		item := index[record.ItemID]
		item.Materials = append(item.Materials, models.ItemMaterial{
			MaterialTypeID: record.MaterialTypeID,
			MaterialName:   record.MaterialName,
			Percentage:     record.Percentage,
			Note:           record.Note,
			Position:       record.Position,
		})
	}

	return nil
}
