package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-services/api"
	"inventory-services/inventory"
	"inventory-services/types"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// memStore backs the handlers with an in-memory catalog so routing and status
// mapping are tested without a database.
type memStore struct {
	nextID   types.ProductID
	products map[types.ProductID]*types.Product
}

func newMemStore() *memStore {
	return &memStore{
		nextID:   1,
		products: map[types.ProductID]*types.Product{},
	}
}

func (m *memStore) Create(ctx context.Context, product *types.Product) error {
	product.ID = m.nextID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	m.nextID++

	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memStore) Update(ctx context.Context, product *types.Product) error {
	existing, ok := m.products[product.ID]
	if !ok {
		return types.ErrProductNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()

	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memStore) PartialUpdate(ctx context.Context, productID types.ProductID, changes types.ProductChanges) error {
	existing, ok := m.products[productID]
	if !ok {
		return types.ErrProductNotFound
	}
	if changes.Quantity != nil {
		existing.Quantity = *changes.Quantity
	}
	if changes.Name != nil {
		existing.Name = *changes.Name
	}
	if changes.UnitPrice != nil {
		existing.UnitPrice = *changes.UnitPrice
	}
	existing.UpdatedAt = time.Now()
	return nil
}

func (m *memStore) Delete(ctx context.Context, productID types.ProductID) error {
	if _, ok := m.products[productID]; !ok {
		return types.ErrProductNotFound
	}
	delete(m.products, productID)
	return nil
}

func (m *memStore) Get(ctx context.Context, productID types.ProductID) (*types.Product, error) {
	product, ok := m.products[productID]
	if !ok {
		return nil, nil
	}
	clone := *product
	return &clone, nil
}

func (m *memStore) List(ctx context.Context) ([]*types.Product, error) {
	products := []*types.Product{}
	for id := types.ProductID(1); id < m.nextID; id++ {
		if product, ok := m.products[id]; ok {
			clone := *product
			products = append(products, &clone)
		}
	}
	return products, nil
}

func newTestRouter() http.Handler {
	log := zerolog.Nop()
	service := inventory.NewService(newMemStore(), &log)
	return api.ProductRouter(&log, service)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createProduct(t *testing.T, router http.Handler, name string, quantity int, unitPrice string) *types.Product {
	t.Helper()
	body := fmt.Sprintf(`{"name": %q, "quantity": %d, "unit_price": %s}`, name, quantity, unitPrice)
	rec := doJSON(t, router, http.MethodPost, "/", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("create product: status %d, body %s", rec.Code, rec.Body.String())
	}
	product := &types.Product{}
	err := json.NewDecoder(rec.Body).Decode(product)
	if err != nil {
		t.Fatalf("decode product: %s", err)
	}
	return product
}

func TestRestProductCreate(t *testing.T) {
	router := newTestRouter()

	product := createProduct(t, router, "Moisturizer", 89, "99.90")
	if product.ID.IsNil() {
		t.Fatal("expected assigned product id")
	}
	if product.Name != "Moisturizer" || product.Quantity != 89 {
		t.Errorf("unexpected product: %+v", product)
	}
	if !product.UnitPrice.Equal(decimal.NewFromFloat(99.90)) {
		t.Errorf("expected unit price 99.90, got %s", product.UnitPrice)
	}
}

func TestRestProductCreateInvalid(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/", `{"name": "", "quantity": 5, "unit_price": 10.00}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	errObj := &api.ErrorObject{}
	err := json.NewDecoder(rec.Body).Decode(errObj)
	if err != nil {
		t.Fatalf("decode error object: %s", err)
	}
	if errObj.Message == "" {
		t.Error("expected an error message in the response body")
	}

	rec = doJSON(t, router, http.MethodPost, "/", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestRestProductGet(t *testing.T) {
	router := newTestRouter()

	created := createProduct(t, router, "Toner", 5, "12.50")

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/0", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-positive id, got %d", rec.Code)
	}
}

func TestRestProductList(t *testing.T) {
	router := newTestRouter()

	createProduct(t, router, "Shampoo", 10, "5.00")
	createProduct(t, router, "Conditioner", 8, "6.00")

	rec := doJSON(t, router, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	products := []*types.Product{}
	err := json.NewDecoder(rec.Body).Decode(&products)
	if err != nil {
		t.Fatalf("decode products: %s", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Shampoo" || products[1].Name != "Conditioner" {
		t.Errorf("expected insertion order by id, got %s then %s", products[0].Name, products[1].Name)
	}
}

func TestRestProductUpdate(t *testing.T) {
	router := newTestRouter()

	created := createProduct(t, router, "Toner", 5, "12.50")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/%d", created.ID), `{"name": "Facial Toner", "quantity": 8, "unit_price": 14.00}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	product := &types.Product{}
	err := json.NewDecoder(rec.Body).Decode(product)
	if err != nil {
		t.Fatalf("decode product: %s", err)
	}
	if product.Name != "Facial Toner" || product.Quantity != 8 {
		t.Errorf("unexpected product after update: %+v", product)
	}

	rec = doJSON(t, router, http.MethodPut, "/42", `{"name": "Ghost", "quantity": 1, "unit_price": 1.00}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", rec.Code)
	}
}

func TestRestProductPartialUpdate(t *testing.T) {
	router := newTestRouter()

	created := createProduct(t, router, "Lip Balm", 30, "4.90")

	rec := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/%d", created.ID), `{"quantity": 45}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	product := &types.Product{}
	err := json.NewDecoder(rec.Body).Decode(product)
	if err != nil {
		t.Fatalf("decode product: %s", err)
	}
	if product.Quantity != 45 {
		t.Errorf("expected quantity 45, got %d", product.Quantity)
	}
	if product.Name != "Lip Balm" {
		t.Errorf("expected untouched name, got %s", product.Name)
	}

	rec = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/%d", created.ID), `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty changes, got %d", rec.Code)
	}
}

func TestRestProductDelete(t *testing.T) {
	router := newTestRouter()

	created := createProduct(t, router, "Sunscreen", 3, "25.00")

	rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/%d", created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/%d", created.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/%d", created.ID), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestRestProductStock(t *testing.T) {
	router := newTestRouter()

	created := createProduct(t, router, "Shampoo", 10, "5.00")

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/%d/stock/add", created.ID), `{"delta": 15}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	product := &types.Product{}
	err := json.NewDecoder(rec.Body).Decode(product)
	if err != nil {
		t.Fatalf("decode product: %s", err)
	}
	if product.Quantity != 25 {
		t.Errorf("expected quantity 25, got %d", product.Quantity)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/%d/stock/remove", created.ID), `{"delta": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/%d/stock/remove", created.ID), `{"delta": 100}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for insufficient stock, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/%d/stock/add", created.ID), `{"delta": -1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative delta, got %d", rec.Code)
	}
}

func TestRestProductUpdatePrice(t *testing.T) {
	router := newTestRouter()

	created := createProduct(t, router, "Serum", 12, "49.90")

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/%d/price", created.ID), `{"unit_price": 39.90}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	product := &types.Product{}
	err := json.NewDecoder(rec.Body).Decode(product)
	if err != nil {
		t.Fatalf("decode product: %s", err)
	}
	if !product.UnitPrice.Equal(decimal.NewFromFloat(39.90)) {
		t.Errorf("expected unit price 39.90, got %s", product.UnitPrice)
	}

	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/%d/price", created.ID), `{"unit_price": -1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", rec.Code)
	}
}
