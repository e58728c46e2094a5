package api

import (
	"context"
	"fmt"
	"net/http"

	"inventory-services/db"

	"github.com/go-chi/chi/v5"
	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
)

var (
	ErrCheckDBQuery = fmt.Errorf("error: executing db query")
	ErrCheckDBDirty = fmt.Errorf("db is dirty")
)

// CheckController holds connection data for handlers
type CheckController struct {
	Conn db.Conn
	Log  *zerolog.Logger
}

func CheckRouter(log *zerolog.Logger, conn db.Conn) chi.Router {
	c := &CheckController{
		Conn: conn,
		Log:  log,
	}
	r := chi.NewRouter()
	r.Get("/", c.Check)

	return r
}

func (c *CheckController) Check(w http.ResponseWriter, r *http.Request) {
	err := check(r.Context(), c.Conn)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, err = w.Write([]byte(err.Error()))
		if err != nil {
			c.Log.Err(err).Msg("failed to send")
		}
		return
	}
	_, err = w.Write([]byte("ok"))
	if err != nil {
		c.Log.Err(err).Msg("failed to send")
	}
}

// check checks the server can reach the database and the schema is clean.
func check(ctx context.Context, conn db.Conn) error {
	count := 0
	err := db.IsSchemaDirty(ctx, conn, &count)
	if err != nil {
		return terror.Error(ErrCheckDBQuery)
	}
	if count > 0 {
		return terror.Error(ErrCheckDBDirty)
	}
	return nil
}
