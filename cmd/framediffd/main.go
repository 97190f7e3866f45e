package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"framediff/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loadEnvFiles()
	gin.SetMode(gin.ReleaseMode)

	d, logger, err := bootstrap("")
	if err != nil {
		log.Fatalf("framediffd: %v", err)
	}

	if err := d.Start(ctx); err != nil {
		logging.ErrorWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.api_bind and whether another framediffd is running"),
		)
		log.Fatalf("framediffd: %v", err)
	}

	<-ctx.Done()
	logger.Info("framediffd shutting down")
	d.Stop()
}
