package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/figofit/itfit-mvp-lite/itfitservice"
)

func main() {
	if err := itfitservice.Run(); err != nil {
		log.Error().Err(err).Msg("itfit-service exited with error")
		os.Exit(1)
	}
}
