package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bookfairlk/stall-reservation-api/internal/api"
	"github.com/bookfairlk/stall-reservation-api/internal/config"
	"github.com/bookfairlk/stall-reservation-api/internal/db"
	"github.com/bookfairlk/stall-reservation-api/internal/logger"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	// First boot on an empty database lays out the stall grid and the
	// genre catalogue before the server takes traffic.
	if err = db.Seed(postgresDB); err != nil {
		return fmt.Errorf("failed to seed database -> %w", err)
	}

	s := api.NewServer(conf, postgresDB)

	addr := ":" + s.Config.API.Port
	zap.L().Info("starting server",
		zap.String("addr", addr),
		zap.String("environment", conf.API.Environment),
	)
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
