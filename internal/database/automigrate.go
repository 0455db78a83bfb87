package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-hub-api/internal/domain"
)

// tableModel pairs a table name with the record shape stored in it. The
// same two structs back every course domain, only the table names differ.
type tableModel struct {
	table string
	model interface{}
}

func tables() []tableModel {
	var out []tableModel
	for _, def := range domain.All() {
		out = append(out,
			tableModel{def.Collection, &domain.Entity{}},
			tableModel{def.CommentCollection, &domain.Comment{}},
		)
	}
	return out
}

// AutoMigrate creates or updates the entity and comment tables for every
// course domain.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	models := tables()

	logger.Info("Starting auto-migration",
		zap.Int("total_tables", len(models)),
	)

	for _, m := range models {
		existed := db.Migrator().HasTable(m.table)

		if err := db.Table(m.table).AutoMigrate(m.model); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", m.table),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", m.table, err)
		}

		logger.Info("Migrated table",
			zap.String("table", m.table),
			zap.Bool("was_existing", existed),
		)
	}

	return nil
}

// AutoMigrateWithRetry attempts migration up to maxRetries times with
// linear backoff. Kubernetes may start the service before the database
// accepts connections.
func AutoMigrateWithRetry(db *gorm.DB, logger *zap.Logger, maxRetries int) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err = AutoMigrate(db, logger)
		if err == nil {
			return nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt) * time.Second
			logger.Warn("Migration attempt failed, retrying...",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Duration("backoff", backoff),
				zap.Error(err),
			)
			time.Sleep(backoff)
		}
	}

	return fmt.Errorf("migration failed after %d attempts: %w", maxRetries, err)
}
