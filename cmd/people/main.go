package main

import (
	"os"

	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))

	if err := newRootCmd(os.Stdout, nil).Execute(); err != nil {
		logger.Errorf("people: %v", err)
		os.Exit(1)
	}
}
