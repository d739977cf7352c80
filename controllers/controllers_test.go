package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"farm-fresh/config"
	"farm-fresh/libs"
	"farm-fresh/models"
	"farm-fresh/repositories"
	"farm-fresh/routes"
	"farm-fresh/services"
)

type testServer struct {
	router *gin.Engine
	clock  *services.ManualClock
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repositories.NewFixtureCatalogRepository("")
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:             "test-secret",
		JWTExpiry:             time.Hour,
		FreeDeliveryThreshold: decimal.NewFromInt(500),
		AssetBaseURL:          "/assets",
	}
	clock := services.NewManualClock(time.Now())
	images := libs.StaticImageResolver{BaseURL: cfg.AssetBaseURL}
	catalog := services.NewCatalogService(repo, images)

	router := routes.NewRouter(routes.Dependencies{
		Config:  cfg,
		Logger:  zap.NewNop(),
		Catalog: catalog,
		Carts:   services.NewCartService(catalog, images, cfg.FreeDeliveryThreshold),
		Sessions: services.NewSessionService(services.NewSimulatedOrderSubmitter(nil, nil), services.SessionOptions{
			TTL:   time.Hour,
			Clock: clock,
		}),
	})
	return &testServer{router: router, clock: clock}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) session(t *testing.T) string {
	t.Helper()

	w := s.do(t, http.MethodPost, "/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

type cartEnvelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    models.CartSummary `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetProducts_Filters(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/products?category=Fruits&sort=price-high", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ProductListResponse](t, w)
	assert.True(t, resp.Success)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "Pomegranates", resp.Data[0].Name)
	assert.Equal(t, "Thompson Grapes", resp.Data[2].Name)
	assert.Equal(t, "/assets/pomegranates.jpg", resp.Data[0].ImageURL)
	assert.Equal(t, models.PriceAll, resp.Filters.PriceBucket)
	assert.Equal(t, "http://example.com/products", resp.Links.ClearFilters)
}

func TestGetProducts_EmptyResult(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/products?category=Seafood", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[models.ProductListResponse](t, w)
	assert.True(t, resp.Empty)
	assert.NotNil(t, resp.Data)
	assert.Zero(t, resp.Total)
}

func TestGetProducts_InvalidEnum(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/products?price=cheap", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/products?sort=newest", "", nil).Code)
}

func TestGetProductByID(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/products/1", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/products/999", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/products/abc", "", nil).Code)
}

func TestFiltersAndFarmers(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/filters", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	filters := decode[struct {
		Data models.FilterOptions `json:"data"`
	}](t, w)
	assert.Equal(t, "all", filters.Data.Categories[0])
	assert.Contains(t, filters.Data.Locations, "Nashik")

	w = s.do(t, http.MethodGet, "/farmers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	farmers := decode[struct {
		Data []models.Farmer `json:"data"`
	}](t, w)
	assert.NotEmpty(t, farmers.Data)
}

func TestCart_RequiresSession(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/cart", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/cart", "garbage", nil).Code)
}

func TestCart_AddUpdateRemove(t *testing.T) {
	s := newTestServer(t)
	token := s.session(t)

	w := s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	added := decode[struct {
		Message string                   `json:"message"`
		Data    models.AddToCartResponse `json:"data"`
	}](t, w)
	assert.Equal(t, "Added to cart!", added.Message)
	assert.Equal(t, "Fresh Tomatoes has been added to your cart.", added.Data.Notification.Description)

	s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 1})
	w = s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 2})
	require.Equal(t, http.StatusOK, w.Code)

	cart := decode[cartEnvelope](t, s.do(t, http.MethodGet, "/cart", token, nil))
	require.Len(t, cart.Data.Items, 2)
	assert.Equal(t, 3, cart.Data.TotalItems)
	assert.Equal(t, "220.00", cart.Data.TotalPrice)
	assert.Equal(t, "₹220.00", cart.Data.TotalDisplay)

	w = s.do(t, http.MethodPatch, "/cart/items/1", token, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	cart = decode[cartEnvelope](t, w)
	require.Len(t, cart.Data.Items, 1)
	assert.Equal(t, 2, cart.Data.Items[0].ID)

	w = s.do(t, http.MethodPatch, "/cart/items/77", token, gin.H{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[cartEnvelope](t, w).Data.TotalItems)

	w = s.do(t, http.MethodDelete, "/cart/items/2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[cartEnvelope](t, w).Data.Empty)
}

func TestCart_RejectsBadInput(t *testing.T) {
	s := newTestServer(t)
	token := s.session(t)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 999}).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 8}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/cart/items", token, gin.H{}).Code)

	s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 1})
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPatch, "/cart/items/1", token, gin.H{"quantity": -1}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPatch, "/cart/items/1", token, gin.H{"quantity": "two"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPatch, "/cart/items/1", token, gin.H{}).Code)
}

func TestCart_FreeDelivery(t *testing.T) {
	s := newTestServer(t)
	token := s.session(t)

	s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 5})
	cart := decode[cartEnvelope](t, s.do(t, http.MethodGet, "/cart", token, nil))
	assert.False(t, cart.Data.FreeDelivery)

	// 450 + 50 is exactly the threshold, which does not qualify.
	s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 1})
	cart = decode[cartEnvelope](t, s.do(t, http.MethodGet, "/cart", token, nil))
	assert.False(t, cart.Data.FreeDelivery)

	s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 3})
	cart = decode[cartEnvelope](t, s.do(t, http.MethodGet, "/cart", token, nil))
	assert.True(t, cart.Data.FreeDelivery)
}

func TestCheckout_Flow(t *testing.T) {
	s := newTestServer(t)
	token := s.session(t)
	form := gin.H{"name": "Asha", "email": "asha@example.com", "address": "Nashik"}

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/checkout", token, form).Code)

	s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 2})
	assert.Equal(t, http.StatusUnprocessableEntity,
		s.do(t, http.MethodPost, "/checkout", token, gin.H{"name": "Asha"}).Code)

	w := s.do(t, http.MethodPost, "/checkout", token, form)
	require.Equal(t, http.StatusAccepted, w.Code)
	snap := decode[struct {
		Data models.CheckoutSnapshot `json:"data"`
	}](t, w)
	assert.Equal(t, models.CheckoutSubmitting, snap.Data.Status)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/checkout", token, form).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPut, "/checkout/form", token, form).Code)

	s.clock.Advance(services.DefaultProcessingDelay)
	w = s.do(t, http.MethodGet, "/checkout", token, nil)
	snap = decode[struct {
		Data models.CheckoutSnapshot `json:"data"`
	}](t, w)
	assert.Equal(t, models.CheckoutConfirmed, snap.Data.Status)
	require.NotNil(t, snap.Data.Order)
	assert.Equal(t, "Thank you for your order!", snap.Data.Order.Title)

	s.clock.Advance(services.DefaultConfirmationDelay)
	cart := decode[cartEnvelope](t, s.do(t, http.MethodGet, "/cart", token, nil))
	assert.True(t, cart.Data.Empty)
}

func TestCheckout_UsesSavedForm(t *testing.T) {
	s := newTestServer(t)
	token := s.session(t)
	s.do(t, http.MethodPost, "/cart/items", token, gin.H{"product_id": 1})

	w := s.do(t, http.MethodPut, "/checkout/form", token, gin.H{"name": "Ravi", "email": "ravi@example.com", "address": "Pune"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusBadRequest,
		s.do(t, http.MethodPut, "/checkout/form", token, gin.H{"email": "not-an-email"}).Code)

	assert.Equal(t, http.StatusAccepted, s.do(t, http.MethodPost, "/checkout", token, nil).Code)
}
