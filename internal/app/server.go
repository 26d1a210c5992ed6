package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opsio/esignpro-backend/internal/api/router"
	"github.com/opsio/esignpro-backend/pkg/config"
	"github.com/opsio/esignpro-backend/pkg/database"
	"github.com/opsio/esignpro-backend/pkg/logger"
	pkgredis "github.com/opsio/esignpro-backend/pkg/redis"
)

// StartServer starts the HTTP server and blocks until shutdown
func StartServer(cfg *config.Config, handlers *Handlers) {
	r := router.Setup(
		handlers.Document,
		handlers.Template,
		handlers.Signature,
		handlers.SignatureAdmin,
		cfg.Server.Mode,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.APIPort)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	printStartupBanner(cfg)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infof("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("  → Stopping HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Infof("  Warning: HTTP server shutdown error: %v", err)
	} else {
		logger.Infof("  ✓ HTTP server stopped")
	}

	logger.Infof("  → Closing database...")
	database.Close()
	logger.Infof("  ✓ Database closed")

	if cfg.Redis.Enabled {
		logger.Infof("  → Closing Redis...")
		pkgredis.Close()
		logger.Infof("  ✓ Redis closed")
	}

	logger.Infof("Shutdown complete")
}

// printStartupBanner prints the startup banner
func printStartupBanner(cfg *config.Config) {
	logger.Infof("")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("eSignPro Document Server")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("")
	logger.Infof("Features:")
	logger.Infof("   • Termination letter generation (HTML)")
	logger.Infof("   • Opsio information sheet generation (docx)")
	logger.Infof("   • Embedded electronic signatures")
	logger.Infof("   • Signature reconciliation batch job")
	logger.Infof("")
	logger.Infof("Listening on :%d (mode: %s)", cfg.Server.APIPort, cfg.Server.Mode)
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("")
}
