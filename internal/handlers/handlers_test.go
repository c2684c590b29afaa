package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zemlex/estate-catalog/internal/database"
	"github.com/zemlex/estate-catalog/internal/handlers"
	"github.com/zemlex/estate-catalog/internal/models"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	app := fiber.New()

	catalogHandler := &handlers.CatalogHandler{DB: db}
	analyticsHandler := &handlers.AnalyticsHandler{DB: db}
	requestHandler := &handlers.RequestHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db}

	app.Get("/api/health", healthHandler.GetHealth)
	app.Post("/api/catalog/property-types", catalogHandler.DefinePropertyType)
	app.Get("/api/catalog/property-types/:identifier/filters", catalogHandler.GetPropertyTypeFilters)
	app.Post("/api/catalog/properties", catalogHandler.CreateProperty)
	app.Get("/api/catalog/properties", catalogHandler.ListProperties)
	app.Get("/api/catalog/properties/:identifier", catalogHandler.GetProperty)
	app.Post("/api/analytics/view", analyticsHandler.RecordView)
	app.Post("/api/requests", requestHandler.CreateRequest)

	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var result map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func seedLocation(t *testing.T, db *gorm.DB) *models.Location {
	t.Helper()
	location := models.Location{Region: "Тверская область", Locality: "Завидово"}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("Failed to create location: %v", err)
	}
	return &location
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["status"] != "ok" || result["database"] != "up" {
		t.Errorf("unexpected health payload: %v", result)
	}
}

func TestDefinePropertyTypeAndFilters(t *testing.T) {
	app, _ := setupTestApp(t)

	status, result := postJSON(t, app, "/api/catalog/property-types", `{
		"name": "Дом",
		"attribute_schema": {
			"area_sqm": {"type": "number", "title": "Площадь", "units": "м²"},
			"material": {"type": "string", "title": "Материал", "choices": ["Кирпич", "Брус"]}
		}
	}`)
	if status != 201 {
		t.Fatalf("Expected status 201, got %d: %v", status, result)
	}

	slug, _ := result["slug"].(string)
	if slug == "" {
		t.Fatal("expected slug in response")
	}
	filters, ok := result["available_filters"].([]interface{})
	if !ok || len(filters) != 2 {
		t.Fatalf("expected 2 derived filters, got %v", result["available_filters"])
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/catalog/property-types/"+slug+"/filters", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var derived []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&derived); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if derived[0]["param_min"] != "attr_area_sqm_min" {
		t.Errorf("unexpected first filter: %v", derived[0])
	}
	if derived[1]["param"] != "attr_material_in" {
		t.Errorf("unexpected second filter: %v", derived[1])
	}
}

func TestCreatePropertyValidationErrorShape(t *testing.T) {
	app, db := setupTestApp(t)
	location := seedLocation(t, db)

	status, _ := postJSON(t, app, "/api/catalog/property-types", `{
		"name": "Дом",
		"attribute_schema": {"rooms": {"type": "integer", "required": true}}
	}`)
	if status != 201 {
		t.Fatalf("Expected status 201, got %d", status)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"title":            "Дом без комнат",
		"property_type_id": 1,
		"location_id":      location.ID,
		"price":            "1000000",
		"attributes":       map[string]interface{}{"rooms": "три"},
	})
	status, result := postJSON(t, app, "/api/catalog/properties", string(body))
	if status != 400 {
		t.Fatalf("Expected status 400, got %d: %v", status, result)
	}

	// Attribute violations come back keyed under "attributes".
	msg, ok := result["attributes"].(string)
	if !ok || msg == "" {
		t.Fatalf("expected attributes error key, got %v", result)
	}
}

func TestListPropertiesWithAttrQuery(t *testing.T) {
	app, db := setupTestApp(t)
	location := seedLocation(t, db)

	postJSON(t, app, "/api/catalog/property-types", `{
		"name": "Дом",
		"attribute_schema": {"area_sqm": {"type": "number"}}
	}`)

	for _, prop := range []map[string]interface{}{
		{"title": "Малый дом", "area": 40},
		{"title": "Большой дом", "area": 200},
	} {
		body, _ := json.Marshal(map[string]interface{}{
			"title":            prop["title"],
			"property_type_id": 1,
			"location_id":      location.ID,
			"price":            "1000000",
			"listing_status":   "published",
			"attributes":       map[string]interface{}{"area_sqm": prop["area"]},
		})
		status, result := postJSON(t, app, "/api/catalog/properties", string(body))
		if status != 201 {
			t.Fatalf("Expected status 201, got %d: %v", status, result)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/catalog/properties?property_type=dom&attr_area_sqm_min=100", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if count, _ := result["count"].(float64); count != 1 {
		t.Fatalf("expected one match, got %v", result)
	}
	results := result["results"].([]interface{})
	title := results[0].(map[string]interface{})["title"]
	if title != "Большой дом" {
		t.Errorf("unexpected match: %v", title)
	}
}

func TestRecordViewEndpoint(t *testing.T) {
	app, db := setupTestApp(t)

	article := models.NewsArticle{Title: "Новость", Content: "Текст"}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("Failed to create article: %v", err)
	}

	status, _ := postJSON(t, app, "/api/analytics/view",
		`{"namespace": "news", "model": "newsarticle", "identifier": "1"}`)
	if status != 204 {
		t.Fatalf("Expected status 204, got %d", status)
	}

	var reloaded models.NewsArticle
	db.First(&reloaded, article.ID)
	if reloaded.ViewCount != 1 {
		t.Errorf("expected view count 1, got %d", reloaded.ViewCount)
	}

	// Unknown kinds are a client error, not a server one.
	status, _ = postJSON(t, app, "/api/analytics/view",
		`{"namespace": "news", "model": "spaceship", "identifier": "1"}`)
	if status != 400 {
		t.Errorf("Expected status 400, got %d", status)
	}
}

func TestCreateRequestEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)

	status, result := postJSON(t, app, "/api/requests", `{
		"name": "Анна",
		"phone": "+79001112233",
		"request_type": "contact",
		"user_message": "Позвоните мне"
	}`)
	if status != 201 {
		t.Fatalf("Expected status 201, got %d: %v", status, result)
	}
	if result["status"] != "new" {
		t.Errorf("expected status new, got %v", result["status"])
	}

	// Partial polymorphic reference is rejected.
	status, _ = postJSON(t, app, "/api/requests", `{
		"name": "Анна",
		"phone": "+79001112233",
		"request_type": "listing",
		"namespace": "catalog"
	}`)
	if status != 400 {
		t.Errorf("Expected status 400, got %d", status)
	}
}
