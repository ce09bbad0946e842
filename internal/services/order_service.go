package services

import (
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
)

type OrderService struct {
	Users  *repos.UserRepo
	Orders *repos.OrderRepo
}

func NewOrderService(users *repos.UserRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Users: users, Orders: orders}
}

type OrderLine struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type PlaceOrderInput struct {
	Email           string
	Items           []OrderLine
	DeliveryType    string
	DeliveryAddress string
	MapLink         string
	PaymentMethod   string
	AdvancePayment  float64
}

// Place resolves the customer, totals the line items from the
// caller-supplied unit prices and commits the order, its items and the
// stock decrements as one unit of work. catalogTotal is what the same
// items cost at current catalog prices; callers audit a mismatch but
// the caller's total is persisted.
func (s *OrderService) Place(in PlaceOrderInput) (orderID int64, total, catalogTotal float64, err error) {
	u, err := s.Users.ByEmail(in.Email)
	if err != nil {
		return 0, 0, 0, err
	}

	if in.DeliveryType == "" {
		in.DeliveryType = "delivery"
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = "cod"
	}

	// Fold repeated product lines into one item; the store keeps one
	// row per (order, product).
	items := make([]domain.OrderItem, 0, len(in.Items))
	pos := map[int64]int{}
	for _, l := range in.Items {
		total += l.Price * float64(l.Quantity)
		if i, ok := pos[l.ProductID]; ok {
			items[i].Quantity += l.Quantity
			continue
		}
		pos[l.ProductID] = len(items)
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}

	orderID, catalogTotal, err = s.Orders.Place(&domain.Order{
		UserID:          u.ID,
		TotalPrice:      total,
		DeliveryType:    in.DeliveryType,
		DeliveryAddress: in.DeliveryAddress,
		MapLink:         in.MapLink,
		PaymentMethod:   in.PaymentMethod,
		AdvancePayment:  in.AdvancePayment,
	}, items)
	if err != nil {
		return 0, 0, 0, err
	}
	return orderID, total, catalogTotal, nil
}

// UpdateStatus moves an order to any member of the allowed fulfillment
// set. No ordering between stages is enforced.
func (s *OrderService) UpdateStatus(orderID int64, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.ErrInvalidStatus
	}
	return s.Orders.UpdateStatus(orderID, status)
}

func (s *OrderService) UpdatePaymentStatus(orderID int64, status string) error {
	if !domain.ValidPaymentStatus(status) {
		return domain.ErrInvalidStatus
	}
	return s.Orders.UpdatePaymentStatus(orderID, status)
}

func (s *OrderService) ListAll() ([]repos.AdminOrderRow, error) {
	return s.Orders.ListAll()
}

// Details returns one order with its product lines, or ErrOrderNotFound.
func (s *OrderService) Details(orderID int64) (domain.OrderDetail, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	rows, err := s.Orders.Lines(orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	details := groupLines(rows)
	if len(details) == 0 {
		// Header exists but join came back empty; return the bare order.
		return domain.OrderDetail{
			OrderID:         o.ID,
			OrderStatus:     o.OrderStatus,
			TotalPrice:      o.TotalPrice,
			PaymentStatus:   o.PaymentStatus,
			DeliveryType:    o.DeliveryType,
			DeliveryAddress: o.DeliveryAddress,
			MapLink:         o.MapLink,
			Date:            o.CreatedAt,
			Products:        []domain.OrderProduct{},
		}, nil
	}
	return details[0], nil
}

// ByEmail returns every order of the given customer, newest first.
func (s *OrderService) ByEmail(email string) ([]domain.OrderDetail, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, err
	}
	rows, err := s.Orders.LinesByUser(u.ID)
	if err != nil {
		return nil, err
	}
	return groupLines(rows), nil
}

// groupLines folds joined order/item rows into one OrderDetail per
// order, preserving row order.
func groupLines(rows []repos.OrderLineRow) []domain.OrderDetail {
	out := []domain.OrderDetail{}
	idx := map[int64]int{}
	for _, r := range rows {
		i, ok := idx[r.OrderID]
		if !ok {
			out = append(out, domain.OrderDetail{
				OrderID:         r.OrderID,
				OrderStatus:     r.OrderStatus,
				TotalPrice:      r.TotalPrice,
				PaymentStatus:   r.PaymentStatus,
				DeliveryType:    r.DeliveryType,
				DeliveryAddress: r.DeliveryAddress,
				MapLink:         r.MapLink,
				Date:            r.Date,
				Products:        []domain.OrderProduct{},
			})
			i = len(out) - 1
			idx[r.OrderID] = i
		}
		if r.ProductID.Valid {
			out[i].Products = append(out[i].Products, domain.OrderProduct{
				ProductID:     r.ProductID.Int64,
				ProductName:   r.ProductName.String,
				ProductStatus: r.ProductStatus.String,
				ImageURL:      r.ImageURL.String,
				Quantity:      int(r.Quantity.Int64),
				Price:         r.ItemPrice.Float64,
			})
		}
	}
	return out
}
