package db

import (
	"context"
	"fmt"
	"net/url"

	"inventory-services/types"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ninja-software/terror/v2"
)

// DefaultMaxConns caps the pool when no limit is configured.
const DefaultMaxConns = 10

// Conn is satisfied by *pgxpool.Pool and pgx.Tx, so every operation works
// inside or outside a transaction. Pool-backed calls acquire a connection for
// the duration of the call and release it on every exit path.
type Conn interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

// ConnString builds the postgres connection URL from the given params.
func ConnString(params *types.DatabaseParams) string {
	v := url.Values{}
	v.Add("sslmode", "disable")
	if params.ApplicationName != "" {
		v.Add("application_name", params.ApplicationName)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?%s",
		params.User,
		params.Pass,
		params.Host,
		params.Port,
		params.Name,
		v.Encode(),
	)
}

// New opens a pgx connection pool from the given params. The pool is created
// once at process start, passed explicitly to its consumers, and closed at
// process exit.
func New(ctx context.Context, params *types.DatabaseParams) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(ConnString(params))
	if err != nil {
		return nil, terror.Error(err, "could not initialise database")
	}
	poolConfig.MaxConns = params.MaxConns
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = DefaultMaxConns
	}

	conn, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, terror.Error(err, "could not initialise database")
	}

	return conn, nil
}
