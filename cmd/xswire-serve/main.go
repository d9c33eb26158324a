package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xenwire/xenwire/internal/config"
	"github.com/xenwire/xenwire/internal/debugserver"
	"github.com/xenwire/xenwire/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a serve config TOML file")
	flag.Parse()

	logging.ConfigureRuntime("xswire-serve")
	log := logging.Logger

	cfg := config.DefaultServeConfig()
	if *configPath != "" {
		loaded, err := config.LoadServeConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "xswire-serve: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	srv := debugserver.New(cfg, log)
	log.Info().Str("addr", cfg.Addr).Msg("xswire-serve listening")
	if err := srv.Run(); err != nil {
		log.Error().Err(err).Msg("xswire-serve exited")
		os.Exit(1)
	}
}
