package config

import "os"

// Server captures process-level configuration.
type Server struct {
	Addr        string
	MetricsAddr string
	// DatabaseURL selects the PostgreSQL store; empty means in-memory.
	DatabaseURL string
	Env         string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MORTGAGE_LEDGER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("MORTGAGE_LEDGER_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}
	env := os.Getenv("MORTGAGE_LEDGER_ENV")
	if env == "" {
		env = "development"
	}
	return Server{
		Addr:        addr,
		MetricsAddr: metricsAddr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Env:         env,
	}
}
