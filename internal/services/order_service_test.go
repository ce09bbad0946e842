package services_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/services"
)

func memdbOrders(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	schema := `
	CREATE TABLE users(user_id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, email TEXT UNIQUE,
	  phone TEXT UNIQUE, address TEXT DEFAULT '', role TEXT DEFAULT 'user', password_hash TEXT,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE products(product_id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT,
	  description TEXT DEFAULT '', price NUMERIC, image_url TEXT DEFAULT '', category TEXT DEFAULT '',
	  quantity INTEGER, status TEXT, created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE orders(order_id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER,
	  total_price NUMERIC, delivery_type TEXT, delivery_address TEXT DEFAULT '', map_link TEXT DEFAULT '',
	  payment_method TEXT, advance_payment NUMERIC DEFAULT 0,
	  order_status TEXT DEFAULT 'pending', payment_status TEXT DEFAULT 'not paid',
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP);
	CREATE TABLE order_items(order_id INTEGER, product_id INTEGER, quantity INTEGER, price NUMERIC,
	  PRIMARY KEY(order_id, product_id));

	INSERT INTO users(name,email,phone,password_hash) VALUES ('Asha','asha@example.com','9000000001','x');
	INSERT INTO products(name,price,quantity,status) VALUES
	  ('Chocolate Cake', 450.00, 5, 'in_stock'),
	  ('Croissant', 60.00, 10, 'in_stock');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	return db
}

func newOrderService(db *sqlx.DB) *services.OrderService {
	return services.NewOrderService(repos.NewUserRepo(db), repos.NewOrderRepo(db))
}

func dbCounts(t *testing.T, db *sqlx.DB) (orders, items int) {
	t.Helper()
	if err := db.Get(&orders, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if err := db.Get(&items, `SELECT COUNT(*) FROM order_items`); err != nil {
		t.Fatal(err)
	}
	return orders, items
}

func productState(t *testing.T, db *sqlx.DB, id int64) (qty int, status string) {
	t.Helper()
	var row struct {
		Quantity int    `db:"quantity"`
		Status   string `db:"status"`
	}
	if err := db.Get(&row, `SELECT quantity, status FROM products WHERE product_id=?`, id); err != nil {
		t.Fatal(err)
	}
	return row.Quantity, row.Status
}

func TestPlaceOrder_Success(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	oid, total, catalogTotal, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{
			{ProductID: 1, Quantity: 2, Price: 450.00},
			{ProductID: 2, Quantity: 3, Price: 60.00},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if oid == 0 {
		t.Fatal("no order id")
	}
	want := 2*450.00 + 3*60.00
	if total != want {
		t.Fatalf("want total=%v, got %v", want, total)
	}
	if catalogTotal != want {
		t.Fatalf("want catalog total=%v, got %v", want, catalogTotal)
	}

	// persisted total matches the sum of line items
	var persisted float64
	if err := db.Get(&persisted, `SELECT total_price FROM orders WHERE order_id=?`, oid); err != nil {
		t.Fatal(err)
	}
	if persisted != want {
		t.Fatalf("want persisted total=%v, got %v", want, persisted)
	}

	var o domain.Order
	if err := db.Get(&o, `SELECT order_id, user_id, total_price, delivery_type, delivery_address, map_link,
		payment_method, advance_payment, order_status, payment_status, created_at FROM orders WHERE order_id=?`, oid); err != nil {
		t.Fatal(err)
	}
	if o.OrderStatus != "pending" || o.PaymentStatus != "not paid" {
		t.Fatalf("want pending/not paid defaults, got %s/%s", o.OrderStatus, o.PaymentStatus)
	}
	if o.DeliveryType != "delivery" || o.PaymentMethod != "cod" {
		t.Fatalf("want delivery/cod defaults, got %s/%s", o.DeliveryType, o.PaymentMethod)
	}

	if qty, status := productState(t, db, 1); qty != 3 || status != "in_stock" {
		t.Fatalf("want qty=3 in_stock, got %d %s", qty, status)
	}
	if qty, status := productState(t, db, 2); qty != 7 || status != "in_stock" {
		t.Fatalf("want qty=7 in_stock, got %d %s", qty, status)
	}
}

func TestPlaceOrder_DrainsStockToZero(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	// take the full stock of product 1
	_, _, _, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{{ProductID: 1, Quantity: 5, Price: 450.00}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if qty, status := productState(t, db, 1); qty != 0 || status != "out_of_stock" {
		t.Fatalf("want qty=0 out_of_stock, got %d %s", qty, status)
	}

	// one more unit must now fail
	_, _, _, err = svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{{ProductID: 1, Quantity: 1, Price: 450.00}},
	})
	var noStock *domain.InsufficientStockError
	if !errors.As(err, &noStock) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if noStock.ID != 1 {
		t.Fatalf("want failing product 1, got %d", noStock.ID)
	}
}

func TestPlaceOrder_InsufficientStockLeavesDBUnchanged(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	// second line exceeds stock; nothing from the first line may persist
	_, _, _, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{
			{ProductID: 2, Quantity: 1, Price: 60.00},
			{ProductID: 1, Quantity: 6, Price: 450.00},
		},
	})
	var noStock *domain.InsufficientStockError
	if !errors.As(err, &noStock) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}

	if orders, items := dbCounts(t, db); orders != 0 || items != 0 {
		t.Fatalf("want no orders/items, got %d/%d", orders, items)
	}
	if qty, _ := productState(t, db, 1); qty != 5 {
		t.Fatalf("stock mutated: want 5, got %d", qty)
	}
	if qty, _ := productState(t, db, 2); qty != 10 {
		t.Fatalf("stock mutated: want 10, got %d", qty)
	}
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	_, _, _, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{{ProductID: 99, Quantity: 1, Price: 10.00}},
	})
	var notFound *domain.ProductNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want ProductNotFoundError, got %v", err)
	}
	if orders, items := dbCounts(t, db); orders != 0 || items != 0 {
		t.Fatalf("want no orders/items, got %d/%d", orders, items)
	}
}

func TestPlaceOrder_UnknownUser(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	_, _, _, err := svc.Place(services.PlaceOrderInput{
		Email: "nobody@example.com",
		Items: []services.OrderLine{{ProductID: 1, Quantity: 1, Price: 450.00}},
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestPlaceOrder_ConcurrentFullStock(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	// two requests each asking for the entire stock of product 1
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, _, errs[i] = svc.Place(services.PlaceOrderInput{
				Email: "asha@example.com",
				Items: []services.OrderLine{{ProductID: 1, Quantity: 5, Price: 450.00}},
			})
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		var noStock *domain.InsufficientStockError
		if !errors.As(err, &noStock) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 {
		t.Fatalf("want exactly one success, got %d", okCount)
	}
	if qty, status := productState(t, db, 1); qty != 0 || status != "out_of_stock" {
		t.Fatalf("want qty=0 out_of_stock, got %d %s", qty, status)
	}
}

func TestPlaceOrder_CatalogTotalMismatch(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	// caller claims a lower price; the caller's total is persisted, the
	// catalog total comes back for auditing
	oid, total, catalogTotal, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{{ProductID: 1, Quantity: 1, Price: 1.00}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1.00 || catalogTotal != 450.00 {
		t.Fatalf("want total=1, catalog=450, got %v/%v", total, catalogTotal)
	}
	var persisted float64
	if err := db.Get(&persisted, `SELECT total_price FROM orders WHERE order_id=?`, oid); err != nil {
		t.Fatal(err)
	}
	if persisted != 1.00 {
		t.Fatalf("want persisted caller total, got %v", persisted)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	oid, _, _, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{{ProductID: 2, Quantity: 1, Price: 60.00}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdateStatus(oid, "shipped"); err != nil {
		t.Fatal(err)
	}
	var status string
	if err := db.Get(&status, `SELECT order_status FROM orders WHERE order_id=?`, oid); err != nil {
		t.Fatal(err)
	}
	if status != "shipped" {
		t.Fatalf("want shipped, got %s", status)
	}

	// value outside the allowed set
	if err := svc.UpdateStatus(oid, "archived"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
	if err := db.Get(&status, `SELECT order_status FROM orders WHERE order_id=?`, oid); err != nil {
		t.Fatal(err)
	}
	if status != "shipped" {
		t.Fatalf("status mutated on rejected update: %s", status)
	}

	// unknown order
	if err := svc.UpdateStatus(9999, "shipped"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	oid, _, _, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{{ProductID: 2, Quantity: 1, Price: 60.00}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.UpdatePaymentStatus(oid, "advance paid"); err != nil {
		t.Fatal(err)
	}
	var status string
	if err := db.Get(&status, `SELECT payment_status FROM orders WHERE order_id=?`, oid); err != nil {
		t.Fatal(err)
	}
	if status != "advance paid" {
		t.Fatalf("want advance paid, got %s", status)
	}

	if err := svc.UpdatePaymentStatus(oid, "refunded"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
	if err := svc.UpdatePaymentStatus(9999, "full paid"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestOrderQueries(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	oid, _, _, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{
			{ProductID: 1, Quantity: 1, Price: 450.00},
			{ProductID: 2, Quantity: 2, Price: 60.00},
		},
		DeliveryType:    "pickup",
		DeliveryAddress: "12 Baker St",
	})
	if err != nil {
		t.Fatal(err)
	}

	detail, err := svc.Details(oid)
	if err != nil {
		t.Fatal(err)
	}
	if detail.OrderID != oid || len(detail.Products) != 2 {
		t.Fatalf("bad detail: %+v", detail)
	}
	if detail.DeliveryType != "pickup" {
		t.Fatalf("want pickup, got %s", detail.DeliveryType)
	}

	if _, err := svc.Details(9999); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}

	byEmail, err := svc.ByEmail("asha@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(byEmail) != 1 || byEmail[0].OrderID != oid || len(byEmail[0].Products) != 2 {
		t.Fatalf("bad by-email result: %+v", byEmail)
	}

	rows, err := svc.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].CustomerName != "Asha" || rows[0].Phone != "9000000001" {
		t.Fatalf("bad admin listing: %+v", rows)
	}
}

func TestPlaceOrder_RepeatedProductLines(t *testing.T) {
	db := memdbOrders(t)
	svc := newOrderService(db)

	oid, total, _, err := svc.Place(services.PlaceOrderInput{
		Email: "asha@example.com",
		Items: []services.OrderLine{
			{ProductID: 1, Quantity: 2, Price: 450.00},
			{ProductID: 2, Quantity: 1, Price: 60.00},
			{ProductID: 1, Quantity: 1, Price: 450.00},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := 3*450.00 + 60.00; total != want {
		t.Fatalf("want total=%v, got %v", want, total)
	}

	// one item row per product, quantities folded together
	var row struct {
		Quantity int     `db:"quantity"`
		Price    float64 `db:"price"`
	}
	if err := db.Get(&row, `SELECT quantity, price FROM order_items WHERE order_id=? AND product_id=1`, oid); err != nil {
		t.Fatal(err)
	}
	if row.Quantity != 3 || row.Price != 450.00 {
		t.Fatalf("want 3@450, got %d@%v", row.Quantity, row.Price)
	}
	if _, items := dbCounts(t, db); items != 2 {
		t.Fatalf("want 2 item rows, got %d", items)
	}

	if qty, status := productState(t, db, 1); qty != 2 || status != "in_stock" {
		t.Fatalf("want 2/in_stock, got %d/%s", qty, status)
	}
}
