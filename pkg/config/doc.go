// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: LoadEnv
// pulls optional .env files into the process environment, and Load parses the
// environment into any struct annotated with env tags. MustLoad and
// MustLoadEnv panic on failure for configuration the process cannot run
// without.
//
// Sentinel errors (ErrParsingConfig, ErrLoadingEnvFiles, ErrNilPointer) can be
// matched with errors.Is.
package config
