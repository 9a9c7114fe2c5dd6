package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ItemTypeCurrency = "currency"
	ItemTypeMaterial = "material"
)

const (
	ChangeKindRelic     = "relic"
	ChangeKindCharacter = "character"
	ChangeKindLightCone = "light_cone"
	ChangeKindInventory = "inventory"

	// ChangeKindCatalogRelic is a rename or removal of a catalog relic; UserID is 0.
	ChangeKindCatalogRelic = "catalog_relic"
)

// UserRelic is a relic piece owned by a user, with its rolled stats.
type UserRelic struct {
	ID        string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    uint                        `gorm:"column:user_id;index;not null" json:"user_id"`
	RelicID   uint64                      `gorm:"column:relic_id;not null" json:"relic_id"`
	Level     int                         `gorm:"column:level;default:0" json:"level"`
	MainStats datatypes.JSONType[StatMap] `gorm:"column:main_stats" json:"main_stats"`
	SubStats  datatypes.JSONType[StatMap] `gorm:"column:sub_stats" json:"sub_stats"`
	Favorite  bool                        `gorm:"column:favorite;default:false" json:"favorite"`
	CreatedAt time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"column:updated_at" json:"updated_at"`

	Relic *Relic `gorm:"foreignKey:RelicID" json:"relic,omitempty"`
}

func (UserRelic) TableName() string {
	return "user_relics"
}

// Record converts the owned relic into the optimizer's view of it.
func (r UserRelic) Record() RelicRecord {
	rec := RelicRecord{
		ID:        r.ID,
		MainStats: r.MainStats.Data(),
		SubStats:  r.SubStats.Data(),
	}
	if r.Relic != nil {
		rec.Name = r.Relic.Name
	}
	return rec
}

type UserCharacter struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      uint      `gorm:"column:user_id;uniqueIndex:idx_user_character;not null" json:"user_id"`
	CharacterID uint64    `gorm:"column:character_id;uniqueIndex:idx_user_character;not null" json:"character_id"`
	Level       int       `gorm:"column:level;default:1" json:"level"`
	Eidolon     int       `gorm:"column:eidolon;default:0" json:"eidolon"`
	Favorite    bool      `gorm:"column:favorite;default:false" json:"favorite"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	Character *Character `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
}

func (UserCharacter) TableName() string {
	return "user_characters"
}

type UserLightCone struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	LightConeID uint64    `gorm:"column:light_cone_id;not null" json:"light_cone_id"`
	Level       int       `gorm:"column:level;default:1" json:"level"`
	Superimpose int       `gorm:"column:superimpose;default:1" json:"superimpose"`
	Favorite    bool      `gorm:"column:favorite;default:false" json:"favorite"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	LightCone *LightCone `gorm:"foreignKey:LightConeID" json:"light_cone,omitempty"`
}

func (UserLightCone) TableName() string {
	return "user_light_cones"
}

// InventoryItem is the quantity a user holds of a currency or material.
type InventoryItem struct {
	UserID    uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	ItemType  string    `gorm:"column:item_type;primaryKey;type:varchar(16)" json:"item_type"`
	ItemID    uint64    `gorm:"column:item_id;primaryKey" json:"item_id"`
	Quantity  int64     `gorm:"column:quantity;not null;default:0" json:"quantity"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// ChangeEvent describes a successful mutation of a user's collection or of
// the relic catalog.
type ChangeEvent struct {
	UserID   uint
	Kind     string
	ItemID   string
	Favorite *bool
}
