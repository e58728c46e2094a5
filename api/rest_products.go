package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"inventory-services/helpers"
	"inventory-services/inventory"
	"inventory-services/types"

	"github.com/go-chi/chi/v5"
	"github.com/ninja-software/log_helpers"
	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductsController holds handlers for the product catalog. It only
// translates between HTTP shapes and service calls; business rules live in
// the inventory package.
type ProductsController struct {
	Service *inventory.Service
	Log     *zerolog.Logger
}

// ProductRouter returns a new router for handling product requests.
func ProductRouter(log *zerolog.Logger, service *inventory.Service) chi.Router {
	c := &ProductsController{
		Service: service,
		Log:     log_helpers.NamedLogger(log, "products"),
	}

	r := chi.NewRouter()
	r.Get("/", WithError(c.List))
	r.Post("/", WithError(c.Create))
	r.Get("/{id}", WithError(c.Get))
	r.Put("/{id}", WithError(c.Update))
	r.Patch("/{id}", WithError(c.PartialUpdate))
	r.Delete("/{id}", WithError(c.Delete))
	r.Post("/{id}/stock/add", WithError(c.AddStock))
	r.Post("/{id}/stock/remove", WithError(c.RemoveStock))
	r.Put("/{id}/price", WithError(c.UpdatePrice))

	return r
}

// ProductPayload is the creation/replacement shape. UnitPrice accepts a JSON
// number or string; decimal keeps it exact.
type ProductPayload struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// StockPayload is the add/remove stock shape.
type StockPayload struct {
	Delta int `json:"delta"`
}

// PricePayload is the price update shape.
type PricePayload struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func productIDParam(r *http.Request) (types.ProductID, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, terror.Error(types.ErrInvalidArgument, "Invalid product ID.")
	}
	return types.ProductID(id), nil
}

// List returns every product ordered by ascending id.
func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) (int, error) {
	products, err := c.Service.List(r.Context())
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, products)
}

// Get returns a single product by id.
func (c *ProductsController) Get(w http.ResponseWriter, r *http.Request) (int, error) {
	id, err := productIDParam(r)
	if err != nil {
		return http.StatusBadRequest, err
	}

	product, err := c.Service.Get(r.Context(), id)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, product)
}

// Create adds a new product to the catalog.
func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	payload := &ProductPayload{}
	err := json.NewDecoder(r.Body).Decode(payload)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Unable to parse product.")
	}

	product, err := c.Service.Create(r.Context(), payload.Name, payload.Quantity, payload.UnitPrice)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, product)
}

// Update replaces every field of an existing product except the id.
func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	id, err := productIDParam(r)
	if err != nil {
		return http.StatusBadRequest, err
	}

	payload := &ProductPayload{}
	err = json.NewDecoder(r.Body).Decode(payload)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Unable to parse product.")
	}

	product, err := c.Service.Update(r.Context(), id, payload.Name, payload.Quantity, payload.UnitPrice)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, product)
}

// PartialUpdate applies only the fields present in the request body.
func (c *ProductsController) PartialUpdate(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	id, err := productIDParam(r)
	if err != nil {
		return http.StatusBadRequest, err
	}

	changes := types.ProductChanges{}
	err = json.NewDecoder(r.Body).Decode(&changes)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Unable to parse product changes.")
	}

	product, err := c.Service.PartialUpdate(r.Context(), id, changes)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, product)
}

// Delete removes a product from the catalog.
func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request) (int, error) {
	id, err := productIDParam(r)
	if err != nil {
		return http.StatusBadRequest, err
	}

	err = c.Service.Delete(r.Context(), id)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, struct {
		ID types.ProductID `json:"id"`
	}{ID: id})
}

// AddStock raises the quantity of a product.
func (c *ProductsController) AddStock(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	id, err := productIDParam(r)
	if err != nil {
		return http.StatusBadRequest, err
	}

	payload := &StockPayload{}
	err = json.NewDecoder(r.Body).Decode(payload)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Unable to parse stock delta.")
	}

	product, err := c.Service.AddStock(r.Context(), id, payload.Delta)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, product)
}

// RemoveStock lowers the quantity of a product.
func (c *ProductsController) RemoveStock(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	id, err := productIDParam(r)
	if err != nil {
		return http.StatusBadRequest, err
	}

	payload := &StockPayload{}
	err = json.NewDecoder(r.Body).Decode(payload)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Unable to parse stock delta.")
	}

	product, err := c.Service.RemoveStock(r.Context(), id, payload.Delta)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, product)
}

// UpdatePrice sets a new unit price on a product.
func (c *ProductsController) UpdatePrice(w http.ResponseWriter, r *http.Request) (int, error) {
	defer r.Body.Close()

	id, err := productIDParam(r)
	if err != nil {
		return http.StatusBadRequest, err
	}

	payload := &PricePayload{}
	err = json.NewDecoder(r.Body).Decode(payload)
	if err != nil {
		return http.StatusBadRequest, terror.Error(err, "Unable to parse unit price.")
	}

	product, err := c.Service.UpdatePrice(r.Context(), id, payload.UnitPrice)
	if err != nil {
		return StatusFromErr(err), err
	}
	return helpers.EncodeJSON(w, product)
}
