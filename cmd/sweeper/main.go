package main

import (
	"tourhr/internal/app"
	"tourhr/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunSweeper(); err != nil {
		logger.Fatal("run sweeper failed", zap.Error(err))
	}
}
