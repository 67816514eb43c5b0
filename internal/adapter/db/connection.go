package db

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mew228/Flowstate/internal/config"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  text TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  completed_at DATETIME,
  priority TEXT NOT NULL DEFAULT 'medium',
  category TEXT NOT NULL DEFAULT 'personal',
  important INTEGER NOT NULL DEFAULT 0,
  due_date DATETIME,
  subtasks TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks (user_id, created_at);
`

const schemaMySQL = `
CREATE TABLE IF NOT EXISTS tasks (
  id VARCHAR(36) NOT NULL PRIMARY KEY,
  user_id VARCHAR(128) NOT NULL,
  text TEXT NOT NULL,
  completed BOOLEAN NOT NULL DEFAULT FALSE,
  completed_at DATETIME NULL,
  priority VARCHAR(10) NOT NULL DEFAULT 'medium',
  category VARCHAR(64) NOT NULL DEFAULT 'personal',
  important BOOLEAN NOT NULL DEFAULT FALSE,
  due_date DATETIME NULL,
  subtasks JSON NOT NULL,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL,
  INDEX idx_tasks_user (user_id, created_at)
);
`

func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	driver, dsn := dataSource(conf)

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// Writers would otherwise fail with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if err := EnsureSchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	zap.L().Info("database ready", zap.String("driver", driver))
	return db, nil
}

// EnsureSchema creates the tasks table for the connection's driver if it is missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := schemaSQLite
	if db.DriverName() == config.DriverMySQL {
		schema = schemaMySQL
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func dataSource(conf *config.Config) (string, string) {
	if conf.DbDriver != config.DriverMySQL {
		return config.DriverSQLite, conf.SqlitePath
	}

	params := conf.DbParams
	if params == "" {
		params = "parseTime=true&multiStatements=true"
	}

	return config.DriverMySQL, fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)
}
