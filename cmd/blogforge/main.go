package main

import (
	"blogforge/cmd/handlers"
	"blogforge/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
