// Package inventory holds the business rules for the product catalog. Every
// mutating operation runs the validation gate and the existence gate here;
// the repository and the API layer stay rule-free.
package inventory

import (
	"context"
	"strings"

	"inventory-services/types"

	"github.com/ninja-software/log_helpers"
	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store is the persistence contract the service drives.
type Store interface {
	Create(ctx context.Context, product *types.Product) error
	Update(ctx context.Context, product *types.Product) error
	PartialUpdate(ctx context.Context, productID types.ProductID, changes types.ProductChanges) error
	Delete(ctx context.Context, productID types.ProductID) error
	Get(ctx context.Context, productID types.ProductID) (*types.Product, error)
	List(ctx context.Context) ([]*types.Product, error)
}

type Service struct {
	store Store
	log   *zerolog.Logger
}

func NewService(store Store, log *zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log_helpers.NamedLogger(log, "inventory"),
	}
}

// Create validates and persists a new product, returning it with the
// store-assigned id.
func (s *Service) Create(ctx context.Context, name string, quantity int, unitPrice decimal.Decimal) (*types.Product, error) {
	product := &types.Product{
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if outcome := types.ValidateProduct(product); outcome != types.OutcomeOK {
		return nil, terror.Error(&types.ValidationError{Outcome: outcome})
	}

	err := s.store.Create(ctx, product)
	if err != nil {
		return nil, terror.Error(err, "Could not create product, please try again.")
	}

	s.log.Info().Int64("id", int64(product.ID)).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update replaces every field of an existing product except the id. The
// existence check is advisory only; a concurrent delete still surfaces as
// not-found from the update itself.
func (s *Service) Update(ctx context.Context, productID types.ProductID, name string, quantity int, unitPrice decimal.Decimal) (*types.Product, error) {
	_, err := s.ensureExists(ctx, productID)
	if err != nil {
		return nil, err
	}

	product := &types.Product{
		ID:        productID,
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if outcome := types.ValidateProduct(product); outcome != types.OutcomeOK {
		return nil, terror.Error(&types.ValidationError{Outcome: outcome})
	}

	err = s.store.Update(ctx, product)
	if err != nil {
		return nil, terror.Error(err, "Could not update product, please try again.")
	}

	s.log.Info().Int64("id", int64(product.ID)).Msg("product updated")
	return product, nil
}

// Delete hard deletes a product.
func (s *Service) Delete(ctx context.Context, productID types.ProductID) error {
	_, err := s.ensureExists(ctx, productID)
	if err != nil {
		return err
	}

	err = s.store.Delete(ctx, productID)
	if err != nil {
		return terror.Error(err, "Could not delete product, please try again.")
	}

	s.log.Info().Int64("id", int64(productID)).Msg("product deleted")
	return nil
}

// Get returns a product by id.
func (s *Service) Get(ctx context.Context, productID types.ProductID) (*types.Product, error) {
	return s.ensureExists(ctx, productID)
}

// List returns every product ordered by ascending id.
func (s *Service) List(ctx context.Context) ([]*types.Product, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, terror.Error(err, "Could not list products, please try again.")
	}
	return products, nil
}

// AddStock raises the quantity of a product by delta (delta >= 0).
func (s *Service) AddStock(ctx context.Context, productID types.ProductID, delta int) (*types.Product, error) {
	if delta < 0 {
		return nil, terror.Error(&types.ValidationError{Outcome: types.OutcomeInvalidQuantity}, "Stock delta cannot be negative.")
	}

	product, err := s.ensureExists(ctx, productID)
	if err != nil {
		return nil, err
	}

	quantity := product.Quantity + delta
	err = s.store.PartialUpdate(ctx, productID, types.ProductChanges{Quantity: &quantity})
	if err != nil {
		return nil, terror.Error(err, "Could not update stock, please try again.")
	}

	product.Quantity = quantity
	s.log.Info().Int64("id", int64(productID)).Int("delta", delta).Int("quantity", quantity).Msg("stock added")
	return product, nil
}

// RemoveStock lowers the quantity of a product by delta (delta > 0). Removing
// more than is available fails and leaves the quantity unchanged.
func (s *Service) RemoveStock(ctx context.Context, productID types.ProductID, delta int) (*types.Product, error) {
	if delta <= 0 {
		return nil, terror.Error(&types.ValidationError{Outcome: types.OutcomeInvalidQuantity}, "Stock delta must be positive.")
	}

	product, err := s.ensureExists(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Quantity < delta {
		return nil, terror.Error(&types.InsufficientStockError{
			ProductID: productID,
			Available: product.Quantity,
			Requested: delta,
		})
	}

	quantity := product.Quantity - delta
	err = s.store.PartialUpdate(ctx, productID, types.ProductChanges{Quantity: &quantity})
	if err != nil {
		return nil, terror.Error(err, "Could not update stock, please try again.")
	}

	product.Quantity = quantity
	s.log.Info().Int64("id", int64(productID)).Int("delta", delta).Int("quantity", quantity).Msg("stock removed")
	return product, nil
}

// UpdatePrice sets a new non-negative unit price on a product.
func (s *Service) UpdatePrice(ctx context.Context, productID types.ProductID, unitPrice decimal.Decimal) (*types.Product, error) {
	if unitPrice.IsNegative() {
		return nil, terror.Error(&types.ValidationError{Outcome: types.OutcomeInvalidPrice}, "Unit price cannot be negative.")
	}

	product, err := s.ensureExists(ctx, productID)
	if err != nil {
		return nil, err
	}

	err = s.store.PartialUpdate(ctx, productID, types.ProductChanges{UnitPrice: &unitPrice})
	if err != nil {
		return nil, terror.Error(err, "Could not update price, please try again.")
	}

	product.UnitPrice = unitPrice
	s.log.Info().Int64("id", int64(productID)).Str("unit_price", unitPrice.String()).Msg("price updated")
	return product, nil
}

// PartialUpdate applies only the named fields after validating each one.
func (s *Service) PartialUpdate(ctx context.Context, productID types.ProductID, changes types.ProductChanges) (*types.Product, error) {
	if changes.IsEmpty() {
		return nil, terror.Error(types.ErrInvalidArgument, "No fields to update.")
	}

	if changes.Name != nil {
		trimmed := strings.TrimSpace(*changes.Name)
		if trimmed == "" {
			return nil, terror.Error(&types.ValidationError{Outcome: types.OutcomeInvalidName})
		}
		changes.Name = &trimmed
	}
	if changes.Quantity != nil && *changes.Quantity < 0 {
		return nil, terror.Error(&types.ValidationError{Outcome: types.OutcomeInvalidQuantity})
	}
	if changes.UnitPrice != nil && changes.UnitPrice.IsNegative() {
		return nil, terror.Error(&types.ValidationError{Outcome: types.OutcomeInvalidPrice})
	}

	_, err := s.ensureExists(ctx, productID)
	if err != nil {
		return nil, err
	}

	err = s.store.PartialUpdate(ctx, productID, changes)
	if err != nil {
		return nil, terror.Error(err, "Could not update product, please try again.")
	}

	product, err := s.ensureExists(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("id", int64(productID)).Msg("product partially updated")
	return product, nil
}

// ensureExists is the single existence gate used by every operation that
// references a product id.
func (s *Service) ensureExists(ctx context.Context, productID types.ProductID) (*types.Product, error) {
	product, err := s.store.Get(ctx, productID)
	if err != nil {
		return nil, terror.Error(err, "Could not look up product, please try again.")
	}
	if product == nil {
		return nil, terror.Error(types.ErrProductNotFound, "Product not found, check the ID and try again.")
	}
	return product, nil
}
