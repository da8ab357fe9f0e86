package db

import (
	"context"

	"github.com/aventcrm/relance/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("db",
	fx.Provide(Open),
	fx.Invoke(registerClose),
)

func Open(cfg config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if cfg.DBType == "sqlite" {
		// Customer cascades depend on this pragma.
		if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	logger.Info("database connected", zap.String("type", cfg.DBType))
	return gdb, nil
}

func registerClose(lc fx.Lifecycle, gdb *gorm.DB, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			logger.Info("closing database")
			return sqlDB.Close()
		},
	})
}
