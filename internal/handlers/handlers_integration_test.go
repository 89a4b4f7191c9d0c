package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"kart2kitchen/internal/handlers"
	"kart2kitchen/internal/middleware"
	"kart2kitchen/internal/models"
	"kart2kitchen/internal/repositories"
	"kart2kitchen/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupApp builds the Fiber app against an in-memory SQLite database with
// the full handler/service/repository stack and no event publisher.
func setupApp(t *testing.T) (*fiber.App, *services.AuthService) {
	t.Helper()

	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.Vegetable{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	vendorRepo := repositories.NewGORMVendorRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, vendorRepo, jwtSecret)
	catalogService := services.NewCatalogService(vendorRepo)
	orderService := services.NewOrderService(orderRepo, nil) // nil publisher

	authHandler := handlers.NewAuthHandler(authService, catalogService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	vendorHandler := handlers.NewVendorHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)

	app := fiber.New()
	authHandler.RegisterRoutes(app)
	catalogHandler.RegisterRoutes(app)
	orderHandler.RegisterRoutes(app)

	protected := app.Group("", middleware.AuthRequired(authService))
	vendorHandler.RegisterRoutes(protected)

	return app, authService
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 && raw[0] == '{' {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerVendor(t *testing.T, app *fiber.App, name, phone string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/vendor_register", "", map[string]interface{}{
		"name":     name,
		"phone":    phone,
		"password": "password123",
		"locality": "Baner",
		"service":  "Vegetables",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, body["scannerCode"], "SCAN-")

	resp, body = doJSON(t, app, http.MethodPost, "/vendor_login", "", map[string]string{
		"phone":    phone,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func registerUser(t *testing.T, app *fiber.App, name, phone string) {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/user_register", "", map[string]string{
		"name":     name,
		"phone":    phone,
		"password": "password123",
		"locality": "Baner",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func addVegetable(t *testing.T, app *fiber.App, token, vendorPhone, name string, rate float64) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/vendor_add_vegetable", token, map[string]interface{}{
		"phone": vendorPhone,
		"vegetable": map[string]interface{}{
			"name": name,
			"rate": rate,
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	veg, _ := body["vegetable"].(map[string]interface{})
	id, _ := veg["id"].(string)
	assert.NotEmpty(t, id)
	return id
}

func TestRegisterAndLoginFlows(t *testing.T) {
	app, authService := setupApp(t)

	registerVendor(t, app, "Fresh Farm", "9000000001")
	registerUser(t, app, "Asha", "9111111111")

	// Duplicate phone is rejected.
	resp, body := doJSON(t, app, http.MethodPost, "/user_register", "", map[string]string{
		"name":     "Asha Again",
		"phone":    "9111111111",
		"password": "password123",
		"locality": "Baner",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "already registered")

	// A malformed phone fails validation.
	resp, _ = doJSON(t, app, http.MethodPost, "/user_register", "", map[string]string{
		"name":     "Bad Phone",
		"phone":    "12345",
		"password": "password123",
		"locality": "Baner",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// User login returns a valid token plus the vendor directory.
	resp, body = doJSON(t, app, http.MethodPost, "/user_login", "", map[string]string{
		"phone":    "9111111111",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "9111111111", claims["phone"])
	assert.Equal(t, "user", claims["role"])
	vendors, _ := body["vendors"].([]interface{})
	assert.Len(t, vendors, 1)

	// Wrong password.
	resp, _ = doJSON(t, app, http.MethodPost, "/user_login", "", map[string]string{
		"phone":    "9111111111",
		"password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVegetableFeedFiltersUnavailable(t *testing.T) {
	app, _ := setupApp(t)

	token := registerVendor(t, app, "Fresh Farm", "9000000001")
	addVegetable(t, app, token, "9000000001", "Tomato", 10)
	onionID := addVegetable(t, app, token, "9000000001", "Onion", 8)

	// Mark the onion unavailable.
	resp, _ := doJSON(t, app, http.MethodPut, "/vendor/9000000001/vegetables/"+onionID, token, map[string]interface{}{
		"available": false,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/vegetables", nil)
	feedResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, feedResp.StatusCode)

	var feed []map[string]interface{}
	assert.NoError(t, json.NewDecoder(feedResp.Body).Decode(&feed))
	feedResp.Body.Close()

	assert.Len(t, feed, 1)
	assert.Equal(t, "Tomato", feed[0]["name"])
	// Area defaulted to the vendor's locality when unspecified.
	assert.Equal(t, "Baner", feed[0]["area"])
	vendor, _ := feed[0]["vendor"].(map[string]interface{})
	assert.Equal(t, "9000000001", vendor["phone"])
	assert.Contains(t, vendor["scannerCode"], "SCAN-")
}

func TestVendorCatalogRequiresToken(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/vendor_add_vegetable", "", map[string]interface{}{
		"phone": "9000000001",
		"vegetable": map[string]interface{}{
			"name": "Tomato",
			"rate": 10,
		},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckoutSplitsCartAcrossVendors(t *testing.T) {
	app, _ := setupApp(t)

	tokenA := registerVendor(t, app, "Vendor A", "9000000001")
	tokenB := registerVendor(t, app, "Vendor B", "9000000002")
	registerUser(t, app, "Asha", "9111111111")
	addVegetable(t, app, tokenA, "9000000001", "Carrot", 10)
	addVegetable(t, app, tokenB, "9000000002", "Potato", 20)

	resp, body := doJSON(t, app, http.MethodPost, "/orders", "", map[string]interface{}{
		"user": map[string]string{
			"name":     "Asha",
			"phone":    "9111111111",
			"locality": "Baner",
		},
		"deliveryAddress": "12 Market Road",
		"items": []map[string]interface{}{
			{"vendorPhone": "9000000001", "vendorName": "Vendor A", "vendorLocality": "Baner", "name": "Carrot", "qty": 2, "rate": 10},
			{"vendorPhone": "9000000002", "vendorName": "Vendor B", "vendorLocality": "Baner", "name": "Potato", "qty": 1, "rate": 20},
			{"vendorName": "No Phone", "name": "Orphan", "qty": 5, "rate": 99},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Order(s) placed successfully", body["message"])

	orders, _ := body["orders"].([]interface{})
	assert.Len(t, orders, 2)
	for _, raw := range orders {
		o := raw.(map[string]interface{})
		assert.Equal(t, "PENDING", o["status"])
		assert.Equal(t, "COD", o["paymentMethod"])
		assert.InDelta(t, 20.0, o["totalAmount"], 0.001)
	}

	// Both slices of the checkout show up in the user's history.
	req := httptest.NewRequest(http.MethodGet, "/user/9111111111/orders", nil)
	historyResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, historyResp.StatusCode)
	var history []map[string]interface{}
	assert.NoError(t, json.NewDecoder(historyResp.Body).Decode(&history))
	historyResp.Body.Close()
	assert.Len(t, history, 2)

	// The vendor sees only their own slice.
	req = httptest.NewRequest(http.MethodGet, "/vendor/9000000001/orders", nil)
	vendorResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	var vendorOrders []map[string]interface{}
	assert.NoError(t, json.NewDecoder(vendorResp.Body).Decode(&vendorOrders))
	vendorResp.Body.Close()
	assert.Len(t, vendorOrders, 1)
	assert.Equal(t, "9000000001", vendorOrders[0]["vendorPhone"])
	items, _ := vendorOrders[0]["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestCheckoutValidationFailures(t *testing.T) {
	app, _ := setupApp(t)

	// Missing delivery address.
	resp, body := doJSON(t, app, http.MethodPost, "/orders", "", map[string]interface{}{
		"user": map[string]string{
			"name":     "Asha",
			"phone":    "9111111111",
			"locality": "Baner",
		},
		"items": []map[string]interface{}{
			{"vendorPhone": "9000000001", "name": "Carrot", "qty": 1, "rate": 10},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	// Cart with only unattributable items.
	resp, body = doJSON(t, app, http.MethodPost, "/orders", "", map[string]interface{}{
		"user": map[string]string{
			"name":     "Asha",
			"phone":    "9111111111",
			"locality": "Baner",
		},
		"deliveryAddress": "12 Market Road",
		"items": []map[string]interface{}{
			{"name": "Orphan", "qty": 1, "rate": 10},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "no valid vendor items")
}

func TestOrderStatusEndpoint(t *testing.T) {
	app, _ := setupApp(t)

	tokenA := registerVendor(t, app, "Vendor A", "9000000001")
	registerUser(t, app, "Asha", "9111111111")
	addVegetable(t, app, tokenA, "9000000001", "Carrot", 10)

	resp, body := doJSON(t, app, http.MethodPost, "/orders", "", map[string]interface{}{
		"user": map[string]string{
			"name":     "Asha",
			"phone":    "9111111111",
			"locality": "Baner",
		},
		"deliveryAddress": "12 Market Road",
		"items": []map[string]interface{}{
			{"vendorPhone": "9000000001", "vendorName": "Vendor A", "vendorLocality": "Baner", "name": "Carrot", "qty": 1, "rate": 10},
		},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	orders, _ := body["orders"].([]interface{})
	assert.Len(t, orders, 1)
	orderID, _ := orders[0].(map[string]interface{})["id"].(string)
	assert.NotEmpty(t, orderID)

	// Valid transition.
	resp, body = doJSON(t, app, http.MethodPut, "/orders/"+orderID+"/status", "", map[string]string{
		"status": "ACCEPTED",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	order, _ := body["order"].(map[string]interface{})
	assert.Equal(t, "ACCEPTED", order["status"])

	// Any-to-any within the set, including back to PENDING.
	resp, body = doJSON(t, app, http.MethodPut, "/orders/"+orderID+"/status", "", map[string]string{
		"status": "PENDING",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	order, _ = body["order"].(map[string]interface{})
	assert.Equal(t, "PENDING", order["status"])

	// Outside the closed set.
	resp, body = doJSON(t, app, http.MethodPut, "/orders/"+orderID+"/status", "", map[string]string{
		"status": "SHIPPED",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid status value", body["error"])

	// The rejected write left the order unchanged.
	resp, body = doJSON(t, app, http.MethodPut, "/orders/"+orderID+"/status", "", map[string]string{
		"status": "COMPLETED",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	order, _ = body["order"].(map[string]interface{})
	assert.Equal(t, "COMPLETED", order["status"])

	// Unknown order id.
	resp, body = doJSON(t, app, http.MethodPut, "/orders/does-not-exist/status", "", map[string]string{
		"status": "ACCEPTED",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Order not found", body["error"])
}

func TestVendorVegetableCRUD(t *testing.T) {
	app, _ := setupApp(t)

	token := registerVendor(t, app, "Fresh Farm", "9000000001")
	vegID := addVegetable(t, app, token, "9000000001", "Tomato", 10)

	// Update rate and area.
	resp, body := doJSON(t, app, http.MethodPut, "/vendor/9000000001/vegetables/"+vegID, token, map[string]interface{}{
		"rate": 12.5,
		"area": "Aundh",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	veg, _ := body["vegetable"].(map[string]interface{})
	assert.InDelta(t, 12.5, veg["rate"], 0.001)
	assert.Equal(t, "Aundh", veg["area"])

	// Negative rate is rejected.
	resp, _ = doJSON(t, app, http.MethodPut, "/vendor/9000000001/vegetables/"+vegID, token, map[string]interface{}{
		"rate": -5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Listing shows the vendor's own catalog.
	req := httptest.NewRequest(http.MethodGet, "/vendor/9000000001/vegetables", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, listResp.StatusCode)
	var vegetables []map[string]interface{}
	assert.NoError(t, json.NewDecoder(listResp.Body).Decode(&vegetables))
	listResp.Body.Close()
	assert.Len(t, vegetables, 1)

	// Delete, then the catalog is empty.
	resp, _ = doJSON(t, app, http.MethodDelete, "/vendor/9000000001/vegetables/"+vegID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/vendor/9000000001/vegetables/"+vegID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
