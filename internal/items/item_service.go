package items

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/changelog"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

const entityTypeItem = "item"

// Actor identifies who performed a mutation, taken from the JWT claims.
type Actor struct {
	ID   *int
	Name *string
}

type ItemService struct {
	r        *ItemRepository
	recorder *changelog.Recorder
}

func NewService(r *ItemRepository, recorder *changelog.Recorder) *ItemService {
	return &ItemService{
		r:        r,
		recorder: recorder,
	}
}

func (s *ItemService) ListItems(q ListItemsQuery) ([]models.Item, int64, error) {
	return s.r.GetItems(q)
}

func (s *ItemService) GetItem(id int) (*models.Item, error) {
	return s.r.GetItem(id)
}

func (s *ItemService) CreateItem(req ItemRequest, actor Actor) (*models.Item, error) {
	item, err := s.r.CreateItem(req)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(s.logEntry(item, models.ChangeActionCreate, nil, actor))

	return item, nil
}

func (s *ItemService) UpdateItem(id int, req ItemRequest, actor Actor) (*models.Item, error) {
	before, err := s.r.GetItem(id)
	if err != nil {
		return nil, err
	}

	after, err := s.r.UpdateItem(id, req)
	if err != nil {
		return nil, err
	}

	changes := changelog.CompareChanges(snapshot(before), snapshot(after), fieldLabels)
	s.recorder.Record(s.logEntry(after, models.ChangeActionUpdate, changes, actor))

	return after, nil
}

func (s *ItemService) DeleteItem(id int, actor Actor) error {
	item, err := s.r.GetItem(id)
	if err != nil {
		return err
	}

	if err := s.r.DeleteItem(id); err != nil {
		return err
	}

	s.recorder.Record(s.logEntry(item, models.ChangeActionDelete, nil, actor))

	return nil
}

// BulkEdit applies the requested updates to every selected row and returns
// the number of rows addressed. Quantity adjustments clamp at zero per row.
func (s *ItemService) BulkEdit(req BulkEditRequest, actor Actor) (int, error) {
	updates := req.Updates

	if updates.Quantity != nil {
		switch updates.Quantity.Mode {
		case QuantityModeAdjust:
			if err := s.r.AdjustQuantities(req.IDs, updates.Quantity.Value); err != nil {
				return 0, err
			}
		case QuantityModeSet:
			value := updates.Quantity.Value
			if value < 0 {
				value = 0
			}
			if err := s.r.SetFields(req.IDs, goqu.Record{"quantity": value}); err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("unsupported quantity mode: %s", updates.Quantity.Mode)
		}
	}

	fields := goqu.Record{}
	if updates.LocationID != nil {
		fields["location_id"] = *updates.LocationID
	}
	if updates.CategoryID != nil {
		fields["category_id"] = *updates.CategoryID
	}
	if updates.IsSold != nil {
		fields["is_sold"] = *updates.IsSold
		if !*updates.IsSold {
			fields["sold_at"] = nil
		} else {
			fields["sold_at"] = goqu.L("NOW()")
		}
	}
	if len(fields) > 0 {
		if err := s.r.SetFields(req.IDs, fields); err != nil {
			return 0, err
		}
	}

	if updates.TagIDs != nil {
		if err := s.r.ReplaceTagsBulk(req.IDs, *updates.TagIDs); err != nil {
			return 0, err
		}
	}

	s.recordBulk(req.IDs, models.ChangeActionUpdate, actor)

	return len(req.IDs), nil
}

func (s *ItemService) BulkDelete(req BulkDeleteRequest, actor Actor) (int, error) {
	// Snapshot name and SKU before the rows disappear.
	snapshots := make([]models.Item, 0, len(req.IDs))
	for _, id := range req.IDs {
		item, err := s.r.GetItem(id)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, *item)
	}

	if err := s.r.BulkDelete(req.IDs); err != nil {
		return 0, err
	}

	for i := range snapshots {
		s.recorder.Record(s.logEntry(&snapshots[i], models.ChangeActionDelete, nil, actor))
	}

	return len(snapshots), nil
}

func (s *ItemService) recordBulk(ids []int, action string, actor Actor) {
	for _, id := range ids {
		item, err := s.r.GetItem(id)
		if err != nil {
			continue
		}
		s.recorder.Record(s.logEntry(item, action, nil, actor))
	}
}

func (s *ItemService) logEntry(item *models.Item, action string, changes []models.FieldChange, actor Actor) models.ChangeLogEntry {
	return models.ChangeLogEntry{
		EntityType: entityTypeItem,
		EntityID:   item.ID,
		EntityName: item.Name,
		SKU:        item.SKU,
		Action:     action,
		Changes:    changes,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		ItemType:   string(item.ItemType),
	}
}

// fieldLabels drives the update diff; keys match the snapshot map.
var fieldLabels = map[string]string{
	"name":          "名前",
	"specification": "仕様",
	"size":          "サイズ",
	"fabricColor":   "生地・色",
	"designer":      "デザイナー",
	"notes":         "備考",
	"quantity":      "数量",
	"costPrice":     "原価",
	"listPrice":     "上代",
	"arrivalDate":   "入荷時期",
	"isSold":        "売約",
	"category":      "カテゴリ",
	"manufacturer":  "メーカー",
	"location":      "置き場所",
	"unit":          "単位",
	"tags":          "タグ",
}

func snapshot(item *models.Item) map[string]interface{} {
	tagNames := make([]string, 0, len(item.Tags))
	for _, tag := range item.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	snap := map[string]interface{}{
		"name":          item.Name,
		"specification": item.Specification,
		"size":          item.Size,
		"fabricColor":   item.FabricColor,
		"designer":      item.Designer,
		"notes":         item.Notes,
		"quantity":      item.Quantity,
		"costPrice":     item.CostPrice,
		"listPrice":     item.ListPrice,
		"arrivalDate":   item.ArrivalDate,
		"isSold":        item.IsSold,
		"tags":          strings.Join(tagNames, "|"),
	}

	if item.Category != nil {
		snap["category"] = item.Category.Name
	}
	if item.Manufacturer != nil {
		snap["manufacturer"] = item.Manufacturer.Name
	}
	if item.Location != nil {
		snap["location"] = item.Location.Name
	}
	if item.Unit != nil {
		snap["unit"] = item.Unit.Name
	}

	return snap
}
