package repo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"clinic-appointments/internal/core/config"
	"clinic-appointments/internal/core/database"
	"clinic-appointments/internal/domain"
	"clinic-appointments/internal/feature/appointment"
	"clinic-appointments/internal/feature/settings"
	"clinic-appointments/internal/feature/user"
)

// Stores 文档存储的三个集合；后端由 db.driver 决定
type Stores struct {
	Users        domain.UserRepository
	Appointments domain.AppointmentRepository
	Settings     domain.SettingsRepository
	Close        func()
}

func Open(ctx context.Context, cfg config.DB, l *zap.Logger) (*Stores, error) {
	switch cfg.Driver {
	case "mongo":
		return openMongo(ctx, cfg, l)
	case "memory":
		l.Warn("using in-memory store, data is lost on restart")
		return NewMemoryStores(), nil
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.Driver,
		DSN:                cfg.DSN,
		Username:           cfg.Username,
		Password:           cfg.Password,
		MaxOpenConns:       cfg.MaxOpenConns,
		MaxIdleConns:       cfg.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.ConnMaxLifetimeMin,
		LogLevel:           cfg.LogLevel,
		Logger:             l,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&user.UserModel{}, &appointment.AppointmentModel{}, &settings.SettingsModel{}); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return &Stores{
		Users:        NewUserRepo(db),
		Appointments: NewAppointmentRepo(db),
		Settings:     NewSettingsRepo(db),
		Close:        closeFn,
	}, nil
}

func openMongo(ctx context.Context, cfg config.DB, l *zap.Logger) (*Stores, error) {
	client, db, err := database.NewMongo(ctx, cfg.DSN, cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			return nil, err
		}
		l.Info("mongo indexes ensured", zap.String("database", cfg.Database))
	}
	return &Stores{
		Users:        NewMongoUserRepo(db),
		Appointments: NewMongoAppointmentRepo(db),
		Settings:     NewMongoSettingsRepo(db),
		Close:        func() { _ = client.Disconnect(context.Background()) },
	}, nil
}
