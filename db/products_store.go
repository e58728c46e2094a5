package db

import (
	"context"

	"inventory-services/types"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ProductStore adapts the product SQL operations to the service layer's
// store contract, binding them to a single pool.
type ProductStore struct {
	Pool *pgxpool.Pool
}

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{Pool: pool}
}

func (s *ProductStore) Create(ctx context.Context, product *types.Product) error {
	return ProductCreateTx(ctx, s.Pool, product)
}

func (s *ProductStore) Update(ctx context.Context, product *types.Product) error {
	return ProductUpdate(ctx, s.Pool, product)
}

func (s *ProductStore) PartialUpdate(ctx context.Context, productID types.ProductID, changes types.ProductChanges) error {
	return ProductPartialUpdate(ctx, s.Pool, productID, changes)
}

func (s *ProductStore) Delete(ctx context.Context, productID types.ProductID) error {
	return ProductDelete(ctx, s.Pool, productID)
}

func (s *ProductStore) Get(ctx context.Context, productID types.ProductID) (*types.Product, error) {
	return ProductGet(ctx, s.Pool, productID)
}

func (s *ProductStore) List(ctx context.Context) ([]*types.Product, error) {
	return ProductList(ctx, s.Pool)
}
