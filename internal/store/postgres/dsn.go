package postgres

import (
	"fmt"

	"github.com/haleem-akmal/portfolio/config"
)

// DSN renders a keyword/value connection string understood by both lib/pq and pgx.
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
