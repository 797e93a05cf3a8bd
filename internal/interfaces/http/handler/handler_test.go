package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogapp "shop_api/internal/application/catalog"
	orderapp "shop_api/internal/application/order"
	"shop_api/internal/config"
	catalogdomain "shop_api/internal/domain/catalog"
	domain "shop_api/internal/domain/order"
	"shop_api/internal/interfaces/http/handler"
	"shop_api/internal/interfaces/http/router"
	"shop_api/pkg/logger"
)

const testAPIKey = "testkey"

type noopLogger struct{}

func (noopLogger) Debug(string, ...logger.Field)               {}
func (noopLogger) Info(string, ...logger.Field)                {}
func (noopLogger) Warn(string, ...logger.Field)                {}
func (noopLogger) Error(string, ...logger.Field)               {}
func (noopLogger) Fatal(string, ...logger.Field)               {}
func (n noopLogger) WithContext(context.Context) logger.Logger { return n }
func (n noopLogger) WithFields(...logger.Field) logger.Logger  { return n }
func (noopLogger) Sync() error                                 { return nil }

type nopScheduler struct{}

func (nopScheduler) Schedule(int64) {}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Store(ctx context.Context, o *domain.Order) (int64, error) {
	args := m.Called(ctx, o)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkDispatched(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPriceLedger struct {
	mock.Mock
}

func (m *MockPriceLedger) CountMatching(ctx context.Context, pairs map[string]decimal.Decimal) (int, error) {
	args := m.Called(ctx, pairs)
	return args.Int(0), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]catalogdomain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalogdomain.Category), args.Error(1)
}

func (m *MockCatalogRepository) ListProducts(ctx context.Context, categoryID string) (string, []catalogdomain.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]catalogdomain.Product), args.Error(2)
}

func setupRouter(t *testing.T, orderRepo *MockOrderRepository, ledger *MockPriceLedger, catRepo *MockCatalogRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	orderService := orderapp.NewService(orderRepo, ledger, nopScheduler{}, nil, noopLogger{})
	catalogService := catalogapp.NewService(catRepo)

	engine := gin.New()
	router.RegisterRoutes(
		engine,
		config.APIConfig{Key: testAPIKey},
		handler.NewOrderHandler(orderService, noopLogger{}),
		handler.NewCatalogHandler(catalogService, noopLogger{}),
	)
	return engine
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.SetBasicAuth(testAPIKey, "")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPlaceOrder_Created(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	ledger := new(MockPriceLedger)
	engine := setupRouter(t, orderRepo, ledger, new(MockCatalogRepository))

	ledger.On("CountMatching", mock.Anything, mock.Anything).Return(1, nil)
	orderRepo.On("Store", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		o := args.Get(1).(*domain.Order)
		o.CreatedAt = time.Now().UTC()
	}).Return(int64(42), nil)

	rec := doRequest(engine, http.MethodPost, "/api/orders/", `{
		"order": {
			"buyer": "John",
			"address": "1 Main St",
			"lines": [{"product": "P1", "qty": 2, "price": 123.45}]
		}
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/orders/42/", rec.Header().Get("Content-Location"))

	body := decodeBody(t, rec)
	order, ok := body["order"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, float64(42), order["id"])
	assert.Equal(t, "John", order["buyer"])
	assert.Equal(t, "1 Main St", order["address"])
	assert.Equal(t, false, order["dispatched"])
	assert.NotEmpty(t, order["date"])

	lines := order["lines"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "P1", line["product"])
	assert.Equal(t, float64(2), line["qty"])
	assert.Equal(t, 123.45, line["price"])
}

func TestPlaceOrder_PriceMismatch(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	ledger := new(MockPriceLedger)
	engine := setupRouter(t, orderRepo, ledger, new(MockCatalogRepository))

	ledger.On("CountMatching", mock.Anything, mock.Anything).Return(0, nil)

	rec := doRequest(engine, http.MethodPost, "/api/orders/", `{
		"order": {
			"buyer": "John",
			"address": "1 Main St",
			"lines": [{"product": "P1", "qty": 2, "price": 999.99}]
		}
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "prices have changed")
	orderRepo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestPlaceOrder_ValidationError(t *testing.T) {
	engine := setupRouter(t, new(MockOrderRepository), new(MockPriceLedger), new(MockCatalogRepository))

	rec := doRequest(engine, http.MethodPost, "/api/orders/", `{
		"order": {
			"address": "1 Main St",
			"lines": [{"product": "P1", "qty": 1, "price": 1.00}]
		}
	}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "invalid order")
}

func TestPlaceOrder_StorageError(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	ledger := new(MockPriceLedger)
	engine := setupRouter(t, orderRepo, ledger, new(MockCatalogRepository))

	ledger.On("CountMatching", mock.Anything, mock.Anything).Return(1, nil)
	orderRepo.On("Store", mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock detected"))

	rec := doRequest(engine, http.MethodPost, "/api/orders/", `{
		"order": {
			"buyer": "John",
			"address": "1 Main St",
			"lines": [{"product": "P1", "qty": 1, "price": 1.00}]
		}
	}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// internal detail never reaches the client
	body := decodeBody(t, rec)
	assert.Equal(t, "database error", body["error"])
	assert.NotContains(t, rec.Body.String(), "deadlock")
}

func TestGetOrder_Found(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupRouter(t, orderRepo, new(MockPriceLedger), new(MockCatalogRepository))

	stored := &domain.Order{
		ID:         20,
		Buyer:      "john",
		Address:    "portsmouth",
		CreatedAt:  time.Date(2015, 2, 12, 16, 12, 55, 0, time.UTC),
		Dispatched: true,
		Lines: []domain.Line{
			{ProductID: "1", ProductTitle: "Nixon 123X", Quantity: 1, Price: decimal.RequireFromString("123.45")},
			{ProductID: "2", ProductTitle: "Gunon P40E", Quantity: 2, Price: decimal.RequireFromString("580.99")},
		},
	}
	orderRepo.On("FindByID", mock.Anything, int64(20)).Return(stored, nil)

	rec := doRequest(engine, http.MethodGet, "/api/orders/20/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	order := decodeBody(t, rec)["order"].(map[string]interface{})
	assert.Equal(t, "john", order["buyer"])
	assert.Equal(t, true, order["dispatched"])

	lines := order["lines"].([]interface{})
	require.Len(t, lines, 2)
	first := lines[0].(map[string]interface{})
	assert.Equal(t, "Nixon 123X", first["title"])
}

func TestGetOrder_NotFound(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	engine := setupRouter(t, orderRepo, new(MockPriceLedger), new(MockCatalogRepository))

	orderRepo.On("FindByID", mock.Anything, int64(9999)).Return(nil, domain.ErrOrderNotFound)

	rec := doRequest(engine, http.MethodGet, "/api/orders/9999/", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "no such order")
}

func TestListCategories(t *testing.T) {
	catRepo := new(MockCatalogRepository)
	engine := setupRouter(t, new(MockOrderRepository), new(MockPriceLedger), catRepo)

	catRepo.On("ListCategories", mock.Anything).Return([]catalogdomain.Category{
		{ID: "cam", Name: "Cameras", Priority: 1},
		{ID: "phone", Name: "Phones", Priority: 2},
	}, nil)

	rec := doRequest(engine, http.MethodGet, "/api/categories/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	categories := decodeBody(t, rec)["categories"].([]interface{})
	require.Len(t, categories, 2)

	first := categories[0].(map[string]interface{})
	assert.Equal(t, "Cameras", first["title"])
	assert.Equal(t, "/api/categories/cam/", first["productsURL"])
}

func TestListProducts_UnknownCategory(t *testing.T) {
	catRepo := new(MockCatalogRepository)
	engine := setupRouter(t, new(MockOrderRepository), new(MockPriceLedger), catRepo)

	catRepo.On("ListProducts", mock.Anything, "nope").Return("", nil, catalogdomain.ErrCategoryNotFound)

	rec := doRequest(engine, http.MethodGet, "/api/categories/nope/", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "no such category")
}

func TestAddCategory_NotImplemented(t *testing.T) {
	engine := setupRouter(t, new(MockOrderRepository), new(MockPriceLedger), new(MockCatalogRepository))

	rec := doRequest(engine, http.MethodPost, "/api/categories/", `{"title": "Bikes"}`)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestAPIKeyRequired(t *testing.T) {
	engine := setupRouter(t, new(MockOrderRepository), new(MockPriceLedger), new(MockCatalogRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/categories/", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Basic")
}

func TestAPIKeyWrong(t *testing.T) {
	engine := setupRouter(t, new(MockOrderRepository), new(MockPriceLedger), new(MockCatalogRepository))

	req := httptest.NewRequest(http.MethodGet, "/api/categories/", nil)
	req.SetBasicAuth("wrong", "")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
