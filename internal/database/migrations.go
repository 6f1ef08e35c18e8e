package database

import (
	"github.com/charlesng35/heroes/internal/models"
)

// migratedModels lists every model whose table is managed by AutoMigrate.
func migratedModels() []any {
	return []any{
		&models.Hero{},
		&models.CacheEntry{},
	}
}
