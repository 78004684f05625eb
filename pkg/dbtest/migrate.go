// Package dbtest prepares a real postgres database for repository tests.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"insurance_desk/pkg/application/connectors"
)

// EnvDSN names the variable with the test database DSN.
const EnvDSN = "TEST_PG_DSN"

// MigrateFromFile executes the SQL files in order.
func MigrateFromFile(ctx context.Context, db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		query, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.ExecContext(ctx, string(query)); err != nil {
			return fmt.Errorf("db.ExecContext(%s): %w", fileName, err)
		}
	}

	return nil
}

// Connect opens the database from EnvDSN and applies the migrations. The test
// is skipped when EnvDSN is not set. Tables listed in truncate are emptied
// when the test ends.
func Connect(t *testing.T, migrations []string, truncate ...string) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skip(EnvDSN + " is not set")
	}

	ctx := context.Background()
	pg := &connectors.Postgres{DSN: dsn, MaxOpenConns: 2, MaxIdleConns: 2, ConnMaxLifetime: time.Minute}

	db, err := pg.Client(ctx)
	require.NoError(t, err)

	require.NoError(t, MigrateFromFile(ctx, db, migrations...))

	t.Cleanup(func() {
		for _, table := range truncate {
			_, err := db.ExecContext(ctx, "TRUNCATE "+table)
			require.NoError(t, err)
		}

		pg.Close(ctx)
	})

	return db
}
