package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/config"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/http/handlers"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
)

// newTestApp wires the real handlers against an in-memory database,
// mirroring the routes the binary mounts.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{JWTSecret: "test-secret", MediaDir: t.TempDir()}
	deps := handlers.NewDeps(db, cfg)

	app := fiber.New()
	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/login", deps.AuthHandler.Login)

	app.Get("/products", deps.ProductHandler.List)
	app.Post("/products", deps.ProductHandler.Create)
	app.Get("/products/:id", deps.ProductHandler.Get)
	app.Put("/products/:id", deps.ProductHandler.Update)
	app.Delete("/products/:id", deps.ProductHandler.Delete)
	app.Post("/update-product-quantity", deps.ProductHandler.SetQuantity)

	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/orders", deps.OrderHandler.ListAll)
	app.Get("/orders/user/email/:email", deps.OrderHandler.ByEmail)
	app.Get("/orders/details/:id", deps.OrderHandler.Details)
	app.Put("/orders/:id/status", deps.OrderHandler.UpdateStatus)
	app.Put("/orders/:id/payment-status", deps.OrderHandler.UpdatePaymentStatus)

	app.Post("/contact", deps.ContactHandler.Submit)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request failed: %v", err)
	}
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

func registerUser(t *testing.T, app *fiber.App, email, phone string) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/register", map[string]any{
		"name":     "Asha",
		"email":    email,
		"phone":    phone,
		"password": "sugar&spice",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register: want 201, got %d", resp.StatusCode)
	}
}

func seedProduct(t *testing.T, db *sqlx.DB, name string, price float64, qty int) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO products(name, description, price, category, quantity, status)
		VALUES(?, '', ?, 'cakes', ?, ?)
	`, name, price, qty, statusFor(qty))
	if err != nil {
		t.Fatal(err)
	}
	id, _ := res.LastInsertId()
	return id
}

func statusFor(qty int) string {
	if qty == 0 {
		return "out_of_stock"
	}
	return "in_stock"
}
