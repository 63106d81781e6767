package mysql

import (
	"fmt"

	"boardfarm/pkg/store/mysql/model"
)

// Migrate applies the schema for all inventory tables. Runs on startup before
// the HTTP server accepts requests.
func (ds *Datastore) Migrate() error {
	err := ds.db.AutoMigrate(
		&model.Capability{},
		&model.Relay{},
		&model.TestPC{},
		&model.PCStats{},
		&model.Board{},
		&model.BoardLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
