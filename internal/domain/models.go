package domain

// Stock status values derived from quantity.
const (
	StockIn  = "in_stock"
	StockOut = "out_of_stock"
)

// StockStatus returns the product status a given quantity implies.
func StockStatus(qty int) string {
	if qty == 0 {
		return StockOut
	}
	return StockIn
}

// Order fulfillment stages. Only set membership is checked; any allowed
// value may follow any other.
var OrderStatuses = []string{"pending", "order confirmation", "baked", "shipped", "delivered"}

// Payment progress values.
var PaymentStatuses = []string{"not paid", "advance paid", "full paid"}

func ValidOrderStatus(s string) bool   { return contains(OrderStatuses, s) }
func ValidPaymentStatus(s string) bool { return contains(PaymentStatuses, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

type User struct {
	ID        int64  `db:"user_id" json:"user_id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	Role      string `db:"role" json:"role"` // user | admin
	Hash      string `db:"password_hash" json:"-"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Product struct {
	ID          int64   `db:"product_id" json:"product_id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	ImageURL    string  `db:"image_url" json:"image_url"`
	Category    string  `db:"category" json:"category"`
	Quantity    int     `db:"quantity" json:"quantity"`
	Status      string  `db:"status" json:"status"` // in_stock | out_of_stock
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

type Order struct {
	ID              int64   `db:"order_id" json:"order_id"`
	UserID          int64   `db:"user_id" json:"user_id"`
	TotalPrice      float64 `db:"total_price" json:"total_price"`
	DeliveryType    string  `db:"delivery_type" json:"delivery_type"`
	DeliveryAddress string  `db:"delivery_address" json:"delivery_address"`
	MapLink         string  `db:"map_link" json:"map_link"`
	PaymentMethod   string  `db:"payment_method" json:"payment_method"`
	AdvancePayment  float64 `db:"advance_payment" json:"advance_payment"`
	OrderStatus     string  `db:"order_status" json:"order_status"`
	PaymentStatus   string  `db:"payment_status" json:"payment_status"`
	CreatedAt       string  `db:"created_at" json:"created_at"`
}

// OrderItem captures the unit price at order time; later catalog price
// changes do not affect historical orders.
type OrderItem struct {
	OrderID   int64   `db:"order_id" json:"order_id"`
	ProductID int64   `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}

// OrderDetail is the customer-facing shape: one order with its product lines.
type OrderDetail struct {
	OrderID         int64          `json:"order_id"`
	OrderStatus     string         `json:"order_status"`
	TotalPrice      float64        `json:"total_price"`
	PaymentStatus   string         `json:"payment_status"`
	DeliveryType    string         `json:"delivery_type"`
	DeliveryAddress string         `json:"delivery_address"`
	MapLink         string         `json:"map_link"`
	Date            string         `json:"date"`
	Products        []OrderProduct `json:"products"`
}

type OrderProduct struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductStatus string  `json:"product_status"`
	ImageURL      string  `json:"image_url"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}
