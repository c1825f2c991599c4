package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authsvc "github.com/borrago/dropentregas/internal/auth"
	"github.com/borrago/dropentregas/internal/catalog"
	"github.com/borrago/dropentregas/internal/coupons"
	ordersvc "github.com/borrago/dropentregas/internal/orders"
	"github.com/borrago/dropentregas/internal/pricing"
	"github.com/borrago/dropentregas/internal/seed"
	"github.com/borrago/dropentregas/internal/users"
	"github.com/borrago/dropentregas/pkg/config"
	"github.com/borrago/dropentregas/pkg/db"
	"github.com/borrago/dropentregas/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Vehicle{},
		&models.Coupon{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Run(context.Background(), conn); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		App: config.AppConfig{Env: "dev"},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "dropentregas",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	client := db.NewWithConn(conn)
	catalogRepo := catalog.NewRepository(conn)
	couponsRepo := coupons.NewRepository(conn)

	authService, err := authsvc.NewService(users.NewRepository(conn), cfg.JWT, cfg.Password)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	engine, err := pricing.NewEngine(catalogRepo, couponsRepo)
	if err != nil {
		t.Fatalf("pricing engine: %v", err)
	}
	ordersService, err := ordersvc.NewService(ordersvc.NewRepository(conn), engine, client)
	if err != nil {
		t.Fatalf("orders service: %v", err)
	}

	return NewRouter(cfg, nil, client, authService, catalogRepo, couponsRepo, ordersService)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode %s %s: %v (body=%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, payload
}

func registerUser(t *testing.T, router http.Handler) string {
	t.Helper()

	rec, payload := doJSON(t, router, http.MethodPost, "/api/auth/register", "",
		`{"name":"Ana Souza","email":"ana@example.com","password":"secret123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("register: expected a token")
	}
	return token
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodGet, "/health/live", "", "")
	if rec.Code != http.StatusOK || payload["success"] != true {
		t.Fatalf("live: got %d %v", rec.Code, payload)
	}

	rec, payload = doJSON(t, router, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK || payload["success"] != true {
		t.Fatalf("ready: got %d %v", rec.Code, payload)
	}
}

func TestVehicleAndCouponCatalog(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/vehicles", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("vehicles: expected 200 got %d", rec.Code)
	}
	if count, _ := payload["count"].(float64); count != 5 {
		t.Fatalf("expected 5 vehicles got %v", payload["count"])
	}

	rec, payload = doJSON(t, router, http.MethodGet, "/api/coupons/moto10", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("coupon lookup: expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	data := payload["data"].(map[string]any)
	if data["code"] != "MOTO10" {
		t.Fatalf("expected MOTO10, got %v", data)
	}
}

func findVehicle(t *testing.T, router http.Handler, name string) map[string]any {
	t.Helper()

	rec, payload := doJSON(t, router, http.MethodGet, "/api/vehicles", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("vehicles: %d", rec.Code)
	}
	for _, raw := range payload["data"].([]any) {
		vehicle := raw.(map[string]any)
		if vehicle["name"] == name {
			return vehicle
		}
	}
	t.Fatalf("vehicle %s not seeded", name)
	return nil
}

func TestQuoteIsPublic(t *testing.T) {
	router := newTestRouter(t)
	moto := findVehicle(t, router, "Moto")

	body := fmt.Sprintf(`{"items":[{"vehicleId":"%s","qty":3}],"couponCode":"MOTO10"}`, moto["id"])
	rec, payload := doJSON(t, router, http.MethodPost, "/api/orders/price", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("quote: expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	quote := payload["data"].(map[string]any)
	if quote["subtotal"].(float64) != 60 || quote["discount"].(float64) != 10 || quote["total"].(float64) != 50 {
		t.Fatalf("unexpected quote: %v", quote)
	}
}

func TestOrderLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router)

	moto := findVehicle(t, router, "Moto")

	body := fmt.Sprintf(`{"origin":"Rua A","destination":"Rua B","items":[{"vehicleId":"%s","qty":3}],"couponCode":"MOTO10"}`, moto["id"])

	// unauthenticated create is refused
	rec, _ := doJSON(t, router, http.MethodPost, "/api/orders", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", rec.Code)
	}

	var payload map[string]any
	rec, payload = doJSON(t, router, http.MethodPost, "/api/orders", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", rec.Code, rec.Body.String())
	}
	order := payload["data"].(map[string]any)
	if order["total"].(float64) != 50 {
		t.Fatalf("expected total 50, got %v", order["total"])
	}
	if order["couponCode"] != "MOTO10" {
		t.Fatalf("expected stored coupon, got %v", order["couponCode"])
	}

	rec, payload = doJSON(t, router, http.MethodGet, "/api/orders/me", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", rec.Code)
	}
	if count, _ := payload["count"].(float64); count != 1 {
		t.Fatalf("expected 1 order got %v", payload["count"])
	}
}

func TestLoginAfterRegister(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router)

	rec, payload := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		`{"email":"ANA@example.com","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	if token, _ := payload["token"].(string); token == "" {
		t.Fatal("login: expected a token")
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		`{"email":"ana@example.com","password":"wrong-pass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password got %d", rec.Code)
	}
}

func TestAuthMeRoundTrip(t *testing.T) {
	router := newTestRouter(t)
	token := registerUser(t, router)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/auth/me", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200 got %d body=%s", rec.Code, rec.Body.String())
	}
	user := payload["user"].(map[string]any)
	if user["email"] != "ana@example.com" {
		t.Fatalf("expected registered email, got %v", user)
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec, payload := doJSON(t, router, http.MethodGet, "/api/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if payload["success"] != false {
		t.Fatalf("expected error envelope, got %v", payload)
	}
}
