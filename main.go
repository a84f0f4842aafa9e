package main

import (
	"github.com/sahilchouksey/institute-site/app"
	"github.com/sahilchouksey/institute-site/utils/logger"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
