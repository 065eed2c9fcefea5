package postgres

import (
	"production/internal/adapters/out/postgres/batchrepo"
	"production/internal/adapters/out/postgres/mixorderrepo"
	"production/internal/adapters/out/postgres/mobilerunrepo"
	"production/internal/adapters/out/postgres/outboxrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service in creation order.
func Models() []any {
	return []any{
		&mixorderrepo.MixOrderDTO{},
		&batchrepo.BatchDTO{},
		&batchrepo.InputDTO{},
		&batchrepo.OutputLotDTO{},
		&mobilerunrepo.MobileRunDTO{},
		&outboxrepo.EventDTO{},
	}
}

// Migrate creates or alters the schema to match Models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
