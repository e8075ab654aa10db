// Package config loads process configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every component of the
// mail pipeline declares its own Config struct with `env` tags; the process
// entry point loads them with Load or MustLoad.
//
//	var cfg mailnotify.Config
//	config.MustLoad(&cfg)
//
// Parsing failures wrap ErrParsingConfig and can be checked with errors.Is.
package config
