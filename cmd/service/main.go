// File: cmd/service/main.go
// @title        Basic API
// @version      1.0
// @description  使用者 CRUD REST API (PostgreSQL)
// @host         localhost:3000
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logrus.WithError(err).Error("service exited")
		exitFunc(1)
	}
}
