//go:build !integration

package postgres

import (
	"math"
	"testing"

	"myStarCompanion/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB renders SQL without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=companion dbname=companion sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db
}

func TestCollectionListOrderIsStable(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []domain.UserRelic
		return tx.Scopes(ownedBy(7, true), oldestFirst, paginate(domain.Page{Page: 2, Limit: 5})).Find(&rows)
	})

	assert.Contains(t, sql, "ORDER BY created_at ASC,id ASC")
	assert.Contains(t, sql, "LIMIT 5 OFFSET 5")
}

func TestPaginateHugePage(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []domain.UserCharacter
		return tx.Scopes(ownedBy(7, false), oldestFirst, paginate(domain.Page{Page: math.MaxInt, Limit: 100})).Find(&rows)
	})

	assert.Contains(t, sql, "LIMIT 100 OFFSET 9999900")
}
