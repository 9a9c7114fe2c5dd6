package postgres

import (
	"myStarCompanion/domain"

	"gorm.io/gorm"
)

// paginate applies offset/limit for the normalized page.
func paginate(page domain.Page) func(db *gorm.DB) *gorm.DB {
	page = page.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Limit)
	}
}

// oldestFirst orders collection rows by creation time. The id breaks ties so
// rows created in the same instant keep their place across pages.
func oldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
