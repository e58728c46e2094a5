package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-services/invlog"
	"inventory-services/types"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/ninja-software/terror/v2"
)

type ProductColumn string

const (
	ProductColumnID        ProductColumn = "id"
	ProductColumnQuantity  ProductColumn = "quantity"
	ProductColumnName      ProductColumn = "name"
	ProductColumnUnitPrice ProductColumn = "unit_price"

	ProductColumnUpdatedAt ProductColumn = "updated_at"
	ProductColumnCreatedAt ProductColumn = "created_at"
)

func (pc ProductColumn) IsValid() error {
	switch pc {
	case ProductColumnID,
		ProductColumnQuantity,
		ProductColumnName,
		ProductColumnUnitPrice,
		ProductColumnUpdatedAt,
		ProductColumnCreatedAt:
		return nil
	}
	return terror.Error(fmt.Errorf("invalid product column type"))
}

// A NULL unit_price reads as zero, here and in every query below.
const ProductGetQuery string = `--sql
SELECT
	id, quantity, name, COALESCE(unit_price, 0) AS unit_price, created_at, updated_at
FROM products
`

// persistence wraps a storage failure so callers can tell it apart from the
// business error kinds.
func persistence(op string, err error) error {
	return terror.Error(&types.PersistenceError{Op: op, Err: err})
}

// ProductGet returns a product by given ID, or nil when no row exists.
func ProductGet(ctx context.Context, conn Conn, productID types.ProductID) (*types.Product, error) {
	product := &types.Product{}
	q := ProductGetQuery + ` WHERE id = $1`
	err := pgxscan.Get(ctx, conn, product, q, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, persistence("get product", err)
	}
	return product, nil
}

// ProductList returns every product ordered by ascending id.
func ProductList(ctx context.Context, conn Conn) ([]*types.Product, error) {
	products := []*types.Product{}
	q := ProductGetQuery + ` ORDER BY id ASC`
	err := pgxscan.Select(ctx, conn, &products, q)
	if err != nil {
		return nil, persistence("list products", err)
	}
	return products, nil
}

// ProductCreate inserts a new product and fills in the generated id and
// timestamps.
func ProductCreate(ctx context.Context, conn Conn, product *types.Product) error {
	q := `--sql
		INSERT INTO products (quantity, name, unit_price)
		VALUES ($1, $2, $3)
		RETURNING
			id, quantity, name, COALESCE(unit_price, 0) AS unit_price, created_at, updated_at`
	err := pgxscan.Get(ctx,
		conn,
		product,
		q,
		product.Quantity,
		product.Name,
		product.UnitPrice,
	)
	if err != nil {
		return persistence("create product", err)
	}
	return nil
}

// ProductCreateTx inserts a new product inside an explicit transaction.
// With a single statement this matches ProductCreate, but the all-or-nothing
// contract holds if more statements join the insert later. Rollback on failure
// is best effort; a failed rollback is logged, not escalated.
func ProductCreateTx(ctx context.Context, pool *pgxpool.Pool, product *types.Product) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return persistence("create product tx", err)
	}
	defer func(tx pgx.Tx, ctx context.Context) {
		err := tx.Rollback(ctx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			invlog.L.Warn().Err(err).Msg("rollback product create")
		}
	}(tx, ctx)

	err = ProductCreate(ctx, tx, product)
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		return persistence("create product tx", err)
	}
	return nil
}

// ProductUpdate replaces every field of an existing product except the id.
func ProductUpdate(ctx context.Context, conn Conn, product *types.Product) error {
	q := `--sql
		UPDATE products
		SET
			quantity = $2, name = $3, unit_price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING
			id, quantity, name, COALESCE(unit_price, 0) AS unit_price, created_at, updated_at`
	err := pgxscan.Get(ctx,
		conn,
		product,
		q,
		product.ID,
		product.Quantity,
		product.Name,
		product.UnitPrice,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return terror.Error(types.ErrProductNotFound)
	}
	if err != nil {
		return persistence("update product", err)
	}
	return nil
}

// ProductDelete hard deletes a product by id.
func ProductDelete(ctx context.Context, conn Conn, productID types.ProductID) error {
	q := `--sql
		DELETE FROM products WHERE id = $1`
	ct, err := conn.Exec(ctx, q, productID)
	if err != nil {
		return persistence("delete product", err)
	}
	if ct.RowsAffected() == 0 {
		return terror.Error(types.ErrProductNotFound)
	}
	return nil
}

// ProductPartialUpdate applies only the fields set on changes. Column names
// come from the fixed ProductColumn constants, never from caller input.
func ProductPartialUpdate(ctx context.Context, conn Conn, productID types.ProductID, changes types.ProductChanges) error {
	if changes.IsEmpty() {
		return terror.Error(types.ErrInvalidArgument, "no fields to update")
	}

	args := []interface{}{productID}
	sets := []string{}
	set := func(column ProductColumn, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Quantity != nil {
		set(ProductColumnQuantity, *changes.Quantity)
	}
	if changes.Name != nil {
		set(ProductColumnName, *changes.Name)
	}
	if changes.UnitPrice != nil {
		set(ProductColumnUnitPrice, *changes.UnitPrice)
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf(`UPDATE products SET %s WHERE id = $1`, strings.Join(sets, ", "))
	ct, err := conn.Exec(ctx, q, args...)
	if err != nil {
		return persistence("partial update product", err)
	}
	if ct.RowsAffected() == 0 {
		return terror.Error(types.ErrProductNotFound)
	}
	return nil
}
