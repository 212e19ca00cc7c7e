package main

import (
	"os"

	"trip-route-service/internal/config"
	"trip-route-service/internal/platform/obs"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	obs.SetupLogger(config.Get("LOG_FORMAT", "console"), config.Get("DEBUG", "") == "YES")

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "tripctl",
		Description: "Offline tools for trip mileage and marker placement",

		Commands: []*cli.Command{
			estimateCommand(),
			placeCommand(),
		},
	}
}
