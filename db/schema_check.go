package db

import (
	"context"

	"github.com/georgysavva/scany/pgxscan"
)

func IsSchemaDirty(ctx context.Context, conn Conn, count *int) error {
	q := `SELECT count(*) FROM schema_migrations WHERE dirty IS TRUE`
	return pgxscan.Get(ctx, conn, count, q)
}
