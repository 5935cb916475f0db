package main

import (
	"flag"
	"os"

	"github.com/rappy1999/workhours/internal/config"
	"github.com/rappy1999/workhours/internal/logger"
	"github.com/rappy1999/workhours/workhoursservice"
)

func main() {
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud)")
	flag.Parse()

	log := logger.New("workhours-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if *buildTarget != "" {
		cfg.BuildTarget = *buildTarget
		cfg.DBDriver = "auto"
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("invalid build-target override")
		}
	}

	if err := workhoursservice.Run(cfg); err != nil {
		os.Exit(1)
	}
}
