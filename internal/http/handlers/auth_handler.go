package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Thrisha-krishnamoorthy/bakesss/internal/log"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/services"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		return badRequest(c, "Missing required fields")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return badRequest(c, "invalid email")
	}
	phone, ok := validate.Phone(req.Phone)
	if !ok {
		return badRequest(c, "invalid phone")
	}
	role, ok := validate.Role(req.Role)
	if !ok {
		return badRequest(c, "Invalid role")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "invalid password")
	}

	id, err := h.Auth.Register(services.RegisterInput{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Address:  req.Address,
		Role:     role,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, "auth.register.fail", err)
	}

	applog.Audit(c, "auth.register", map[string]any{"user_id": id, "role": role})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Missing required fields")
	}

	u, token, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return fail(c, "auth.login.fail", err)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": u.Email})
	return c.JSON(fiber.Map{
		"message": "User login successful",
		"token":   token,
		"name":    u.Name,
		"role":    u.Role,
	})
}
