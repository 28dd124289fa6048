package main

import (
	"github.com/nasugbu/geoportal/internal/config"
	"github.com/nasugbu/geoportal/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
