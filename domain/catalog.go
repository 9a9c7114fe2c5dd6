package domain

import (
	"time"
)

// CREATE TABLE public.characters (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL UNIQUE,
//     rarity      SMALLINT NOT NULL,
//     path        TEXT,
//     element     TEXT,
//     image_url   TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW(),
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Character struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;uniqueIndex;not null" json:"name"`
	Rarity    int       `gorm:"column:rarity;not null" json:"rarity"`
	Path      string    `gorm:"column:path;type:text" json:"path"`
	Element   string    `gorm:"column:element;type:text" json:"element"`
	ImageURL  string    `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Character) TableName() string {
	return "characters"
}

type LightCone struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;uniqueIndex;not null" json:"name"`
	Rarity    int       `gorm:"column:rarity;not null" json:"rarity"`
	Path      string    `gorm:"column:path;type:text" json:"path"`
	ImageURL  string    `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (LightCone) TableName() string {
	return "light_cones"
}

// Relic is a catalog relic piece. Slot is derived from Name on write.
type Relic struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	SetName   string    `gorm:"column:set_name;type:text" json:"set_name"`
	Slot      string    `gorm:"column:slot;type:text;index" json:"slot"`
	Rarity    int       `gorm:"column:rarity;not null" json:"rarity"`
	ImageURL  string    `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Relic) TableName() string {
	return "relics"
}

type Currency struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Currency) TableName() string {
	return "currencies"
}

type Material struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;uniqueIndex;not null" json:"name"`
	Type        string    `gorm:"column:type;type:text" json:"type"`
	Rarity      int       `gorm:"column:rarity;not null" json:"rarity"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}
