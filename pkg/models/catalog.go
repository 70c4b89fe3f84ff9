package models

type Category struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Manufacturer struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Location struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Unit struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Tag struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type MaterialType struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ItemMaterial is one entry of an item's ordered material list. The whole
// list is replaced on update, so position is stable only within one version
// of the item.
type ItemMaterial struct {
	MaterialTypeID int     `json:"materialTypeId" db:"material_type_id"`
	MaterialName   string  `json:"materialName" db:"material_name"`
	Percentage     *int    `json:"percentage" db:"percentage"`
	Note           *string `json:"note" db:"note"`
	Position       int     `json:"position" db:"position"`
}
