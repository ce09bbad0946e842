package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Thrisha-krishnamoorthy/bakesss/internal/log"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/mail"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/services"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
	Mail   *mail.Service
}

type placeOrderRequest struct {
	Email           string               `json:"email"`
	Items           []services.OrderLine `json:"items"`
	DeliveryType    string               `json:"delivery_type"`
	DeliveryAddress string               `json:"delivery_address"`
	MapLink         string               `json:"map_link"`
	PaymentMethod   string               `json:"payment_method"`
	AdvancePayment  float64              `json:"advance_payment"`
}

// POST /orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || len(req.Items) == 0 {
		return badRequest(c, "Missing required fields (email, items)")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return badRequest(c, "invalid email")
	}
	for _, it := range req.Items {
		if it.ProductID <= 0 || !validate.LineQty(it.Quantity) || !validate.Price(it.Price) {
			return badRequest(c, "invalid order item")
		}
	}

	orderID, total, catalogTotal, err := h.Orders.Place(services.PlaceOrderInput{
		Email:           email,
		Items:           req.Items,
		DeliveryType:    req.DeliveryType,
		DeliveryAddress: req.DeliveryAddress,
		MapLink:         req.MapLink,
		PaymentMethod:   req.PaymentMethod,
		AdvancePayment:  req.AdvancePayment,
	})
	if err != nil {
		return fail(c, "order.place.fail", err)
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id":      orderID,
		"client_total":  total,
		"catalog_total": catalogTotal,
		"mismatch":      total != catalogTotal,
	})

	// Confirmation email is best-effort; the order is already committed.
	if h.Mail.Enabled() {
		pm := req.PaymentMethod
		if pm == "" {
			pm = "cod"
		}
		if err := h.Mail.SendOrderConfirmation(email, orderID, total, pm); err != nil {
			applog.Error(c, "order.place.email.fail", err, map[string]any{"order_id": orderID})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Order placed successfully",
		"order_id": orderID,
	})
}

// GET /orders (admin listing)
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	rows, err := h.Orders.ListAll()
	if err != nil {
		return fail(c, "orders.list.fail", err)
	}
	return c.JSON(rows)
}

// GET /orders/user/email/:email
func (h *OrderHandler) ByEmail(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		return badRequest(c, "invalid email")
	}
	email, ok := validate.Email(raw)
	if !ok {
		return badRequest(c, "invalid email")
	}
	orders, err := h.Orders.ByEmail(email)
	if err != nil {
		return fail(c, "orders.by_email.fail", err)
	}
	return c.JSON(orders)
}

// GET /orders/details/:id
func (h *OrderHandler) Details(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	detail, err := h.Orders.Details(id)
	if err != nil {
		return fail(c, "orders.details.fail", err)
	}
	return c.JSON(detail)
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Status == "" {
		return badRequest(c, "missing status")
	}

	if err := h.Orders.UpdateStatus(id, req.Status); err != nil {
		return fail(c, "orders.status.fail", err)
	}
	applog.Audit(c, "orders.status", map[string]any{"order_id": id, "status": req.Status})
	return c.JSON(fiber.Map{"success": true, "message": "Order status updated successfully"})
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// PUT /orders/:id/payment-status
func (h *OrderHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var req paymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.PaymentStatus == "" {
		return badRequest(c, "missing payment_status")
	}

	if err := h.Orders.UpdatePaymentStatus(id, req.PaymentStatus); err != nil {
		return fail(c, "orders.payment_status.fail", err)
	}
	applog.Audit(c, "orders.payment_status", map[string]any{"order_id": id, "payment_status": req.PaymentStatus})
	return c.JSON(fiber.Map{"success": true, "message": "Payment status updated successfully"})
}
