package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed *.sql
var FS embed.FS

// Run applies every pending migration embedded in this package.
func Run(ctx context.Context, db *sql.DB, log logrus.FieldLogger) error {
	goose.SetBaseFS(FS)
	goose.SetLogger(log)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	log.Info("running database migrations")
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
