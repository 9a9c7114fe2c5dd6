package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// deleteError maps a failed catalog delete. Rows still referenced from a
// player's collection surface as a conflict rather than a driver error.
func deleteError(err error, entity string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%s is still owned by a user", entity)
	}
	return fmt.Errorf("failed to delete %s: %w", entity, err)
}
