package root

import (
	"context"
	"time"

	"ritualist/internal/config"
	"ritualist/internal/engine"
	"ritualist/internal/schedule"
	"ritualist/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := config.InitLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
		_ = logger.Sync()
	}
	return engine.NewService(db, cfg.ProfileKey, logger), cfg, cleanup, nil
}

// dayFlag resolves a --date flag value: empty means today in the configured
// timezone.
func dayFlag(cfg *config.Config, value string) (schedule.Date, error) {
	if value == "" {
		loc, err := cfg.Location()
		if err != nil {
			return schedule.Date{}, err
		}
		return schedule.Today(time.Now(), loc), nil
	}
	return schedule.ParseDate(value)
}
