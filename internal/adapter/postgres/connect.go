package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/thinkfirst.net/internal/config"
)

// Open connects to the configured database and pings it.
// MySQL DSNs get ParseTime and ClientFoundRows so timestamps scan into time.Time
// and updates that change nothing still count as matched rows.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := cfg.Url
	if cfg.Driver == config.DriverMySQL {
		mysqlCfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		mysqlCfg.ParseTime = true
		mysqlCfg.ClientFoundRows = true
		dsn = mysqlCfg.FormatDSN()
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}
