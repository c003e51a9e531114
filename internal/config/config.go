package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server's runtime settings, read from the environment
// (optionally seeded from a .env file).
type Config struct {
	Addr    string
	Origins []string
	Dev     bool
}

func Load() Config {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		Addr: ":8080",
	}
	if addr := os.Getenv("BINGO_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if origins := os.Getenv("BINGO_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.Origins = append(cfg.Origins, o)
			}
		}
	}
	if dev := os.Getenv("BINGO_DEV"); dev == "1" || strings.EqualFold(dev, "true") {
		cfg.Dev = true
	}
	return cfg
}
