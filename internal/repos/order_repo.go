package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// AdminOrderRow is the admin listing shape: one order joined with its customer.
type AdminOrderRow struct {
	OrderID         int64   `db:"order_id" json:"order_id"`
	CustomerName    string  `db:"customer_name" json:"customer_name"`
	Email           string  `db:"email" json:"email"`
	Phone           string  `db:"phone" json:"phone"`
	DeliveryType    string  `db:"delivery_type" json:"delivery_type"`
	DeliveryAddress string  `db:"delivery_address" json:"delivery_address"`
	TotalPrice      float64 `db:"total_price" json:"total_price"`
	OrderStatus     string  `db:"order_status" json:"order_status"`
	PaymentStatus   string  `db:"payment_status" json:"payment_status"`
	CreatedAt       string  `db:"created_at" json:"date"`
}

// OrderLineRow is one joined order/order_item/product row, grouped into
// domain.OrderDetail by the service.
type OrderLineRow struct {
	OrderID         int64           `db:"order_id"`
	OrderStatus     string          `db:"order_status"`
	TotalPrice      float64         `db:"total_price"`
	PaymentStatus   string          `db:"payment_status"`
	DeliveryType    string          `db:"delivery_type"`
	DeliveryAddress string          `db:"delivery_address"`
	MapLink         string          `db:"map_link"`
	Date            string          `db:"date"`
	ProductID       sql.NullInt64   `db:"product_id"`
	ProductName     sql.NullString  `db:"product_name"`
	ProductStatus   sql.NullString  `db:"product_status"`
	ImageURL        sql.NullString  `db:"image_url"`
	Quantity        sql.NullInt64   `db:"quantity"`
	ItemPrice       sql.NullFloat64 `db:"item_price"`
}

// Place persists an order and its line items and decrements stock, all
// inside one transaction. Every line is checked against current stock
// before any write; the decrement itself is conditional on
// quantity >= requested, so two concurrent orders can never both drain
// the same stock. catalogTotal is the sum over items of the catalog
// price at placement time, for auditing against the caller's total.
func (r *OrderRepo) Place(o *domain.Order, items []domain.OrderItem) (orderID int64, catalogTotal float64, err error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	// Pre-check the whole item list before any mutation.
	for _, it := range items {
		var p struct {
			Quantity int     `db:"quantity"`
			Price    float64 `db:"price"`
		}
		err := tx.Get(&p, `SELECT quantity, price FROM products WHERE product_id = ?`, it.ProductID)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, &domain.ProductNotFoundError{ID: it.ProductID}
		}
		if err != nil {
			return 0, 0, err
		}
		if p.Quantity < it.Quantity {
			return 0, 0, &domain.InsufficientStockError{ID: it.ProductID}
		}
		catalogTotal += p.Price * float64(it.Quantity)
	}

	res, err := tx.Exec(`
		INSERT INTO orders(
			user_id, total_price, delivery_type, delivery_address, map_link,
			payment_method, advance_payment, order_status, payment_status
		) VALUES (?,?,?,?,?,?,?, 'pending', 'not paid')
	`, o.UserID, o.TotalPrice, o.DeliveryType, o.DeliveryAddress, o.MapLink,
		o.PaymentMethod, o.AdvancePayment)
	if err != nil {
		return 0, 0, err
	}
	orderID, err = res.LastInsertId()
	if err != nil {
		return 0, 0, err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
			INSERT INTO order_items(order_id, product_id, quantity, price)
			VALUES(?,?,?,?)
		`, orderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return 0, 0, err
		}

		res, err := tx.Exec(`
			UPDATE products
			SET quantity = quantity - ?,
			    status = CASE WHEN quantity - ? = 0 THEN 'out_of_stock' ELSE 'in_stock' END
			WHERE product_id = ? AND quantity >= ?
		`, it.Quantity, it.Quantity, it.ProductID, it.Quantity)
		if err != nil {
			return 0, 0, err
		}
		// Zero rows here means stock moved between check and decrement.
		if n, _ := res.RowsAffected(); n == 0 {
			return 0, 0, &domain.InsufficientStockError{ID: it.ProductID}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}
	return orderID, catalogTotal, nil
}

func (r *OrderRepo) Get(id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
		SELECT order_id, user_id, total_price, delivery_type, delivery_address, map_link,
		       payment_method, advance_payment, order_status, payment_status, created_at
		FROM orders
		WHERE order_id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return o, domain.ErrOrderNotFound
	}
	return o, err
}

// Lines returns the joined item rows for one order. Orders with no
// surviving product rows still come back with their header intact.
func (r *OrderRepo) Lines(id int64) ([]OrderLineRow, error) {
	var rows []OrderLineRow
	err := r.db.Select(&rows, `
		SELECT o.order_id, o.order_status, o.total_price, o.payment_status,
		       o.delivery_type, o.delivery_address, o.map_link, o.created_at AS date,
		       oi.product_id, p.name AS product_name, p.status AS product_status,
		       p.image_url, oi.quantity, oi.price AS item_price
		FROM orders o
		LEFT JOIN order_items oi ON o.order_id = oi.order_id
		LEFT JOIN products p ON oi.product_id = p.product_id
		WHERE o.order_id = ?
	`, id)
	return rows, err
}

// LinesByUser returns joined rows for every order of one user, newest first.
func (r *OrderRepo) LinesByUser(userID int64) ([]OrderLineRow, error) {
	var rows []OrderLineRow
	err := r.db.Select(&rows, `
		SELECT o.order_id, o.order_status, o.total_price, o.payment_status,
		       o.delivery_type, o.delivery_address, o.map_link, o.created_at AS date,
		       oi.product_id, p.name AS product_name, p.status AS product_status,
		       p.image_url, oi.quantity, oi.price AS item_price
		FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		JOIN products p ON oi.product_id = p.product_id
		WHERE o.user_id = ?
		ORDER BY datetime(o.created_at) DESC, o.order_id DESC
	`, userID)
	return rows, err
}

func (r *OrderRepo) ListAll() ([]AdminOrderRow, error) {
	out := []AdminOrderRow{}
	err := r.db.Select(&out, `
		SELECT o.order_id, u.name AS customer_name, u.email, u.phone,
		       o.delivery_type, o.delivery_address, o.total_price,
		       o.order_status, o.payment_status, o.created_at
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		ORDER BY datetime(o.created_at) DESC, o.order_id DESC
	`)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id int64, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET order_status = ? WHERE order_id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) UpdatePaymentStatus(id int64, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET payment_status = ? WHERE order_id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
