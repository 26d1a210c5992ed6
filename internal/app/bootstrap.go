package app

import (
	"log"
	"os"

	"github.com/opsio/esignpro-backend/pkg/config"
	"github.com/opsio/esignpro-backend/pkg/database"
	"github.com/opsio/esignpro-backend/pkg/logger"
	pkgredis "github.com/opsio/esignpro-backend/pkg/redis"
)

// Bootstrap initializes the infrastructure (logger, database, redis)
func Bootstrap(cfgPath string) (*config.Config, error) {
	if cfgPath == "" {
		cfgPath = os.Getenv("ESIGNPRO_CONFIG")
		if cfgPath == "" {
			cfgPath = "config/config.yaml"
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	logger.Infof("Database initialized successfully")

	// Redis is optional; without it every template read hits the database
	if err := pkgredis.Init(&cfg.Redis); err != nil {
		logger.Warnf("Redis initialization failed: %v", err)
		logger.Info("   → Template cache disabled, reads go to the database")
	} else if cfg.Redis.Enabled {
		logger.Infof("Redis initialized successfully - template cache enabled")
	}

	return cfg, nil
}
