package utils

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/trsv-dev/users-service/internal/logger"
	"github.com/trsv-dev/users-service/migrations"
)

// ApplyMigrations применяет все миграции из embed.FS.
func ApplyMigrations(databaseURI string, log logger.Logger) error {
	// источник миграций - встроенная файловая система пакета migrations
	d, err := iofs.New(migrations.Files, ".")
	if err != nil {
		log.Error("Ошибка подготовки встраивания миграций", logger.Err(err))
		return fmt.Errorf("ошибка подготовки встраивания миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, databaseURI)
	if err != nil {
		log.Error("Ошибка подготовки миграций", logger.Err(err))
		return fmt.Errorf("ошибка подготовки миграций: %w", err)
	}

	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Warn("Ошибка закрытия источника миграций", logger.Err(srcErr))
		}
		if dbErr != nil {
			log.Warn("Ошибка закрытия соединения мигратора", logger.Err(dbErr))
		}
	}()

	err = m.Up()
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Нет новых миграций")
			return nil
		}
		log.Error("Ошибка миграции", logger.Err(err))
		return fmt.Errorf("ошибка применения миграции: %w", err)
	}

	log.Info("Миграции были применены")
	return nil
}
