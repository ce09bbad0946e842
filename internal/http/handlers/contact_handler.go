package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Thrisha-krishnamoorthy/bakesss/internal/log"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/mail"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/validate"
)

type ContactHandler struct {
	Messages  *repos.ContactRepo
	Mail      *mail.Service
	Recipient string
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// POST /contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "invalid email")
	}
	if req.Message == "" {
		return badRequest(c, "Missing required fields")
	}

	id, err := h.Messages.Insert(name, email, req.Subject, req.Message)
	if err != nil {
		return fail(c, "contact.save.fail", err)
	}

	if h.Mail.Enabled() && h.Recipient != "" {
		if err := h.Mail.SendContactNotification(h.Recipient, name, email, req.Subject, req.Message); err != nil {
			applog.Error(c, "contact.email.fail", err, map[string]any{"message_id": id})
		}
	}

	applog.Info(c, "contact.submit", map[string]any{"message_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Message received"})
}
