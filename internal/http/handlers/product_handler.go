package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
	applog "github.com/Thrisha-krishnamoorthy/bakesss/internal/log"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/services"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/validate"
)

type ProductHandler struct {
	Catalog  *services.CatalogService
	MediaDir string
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.Query("category"))
	if err != nil {
		return fail(c, "products.list.fail", err)
	}
	return c.JSON(products)
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, "products.get.fail", err)
	}
	return c.JSON(p)
}

type createProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"image_url"`
	Category    string   `json:"category"`
	Quantity    *int     `json:"quantity"`
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == "" || req.Description == "" || req.Category == "" || req.Price == nil || req.Quantity == nil {
		return badRequest(c, "Missing required fields")
	}
	if !validate.Price(*req.Price) || !validate.Qty(*req.Quantity) {
		return badRequest(c, "price and quantity must be non-negative")
	}

	id, err := h.Catalog.Create(&domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Quantity:    *req.Quantity,
	})
	if err != nil {
		return fail(c, "products.create.fail", err)
	}

	applog.Audit(c, "products.create", map[string]any{"product_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Product added successfully",
		"product_id": id,
	})
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	Quantity    *int     `json:"quantity"`
}

// PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Price != nil && !validate.Price(*req.Price) {
		return badRequest(c, "price must be non-negative")
	}
	if req.Quantity != nil && !validate.Qty(*req.Quantity) {
		return badRequest(c, "quantity must be non-negative")
	}

	err := h.Catalog.Update(id, repos.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return fail(c, "products.update.fail", err)
	}

	applog.Audit(c, "products.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product updated successfully"})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return fail(c, "products.delete.fail", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

type setQuantityRequest struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// POST /update-product-quantity (legacy admin route)
func (h *ProductHandler) SetQuantity(c *fiber.Ctx) error {
	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ProductID == nil || req.Quantity == nil {
		return badRequest(c, "Missing required fields")
	}
	if !validate.Qty(*req.Quantity) {
		return badRequest(c, "quantity must be non-negative")
	}

	if err := h.Catalog.SetQuantity(*req.ProductID, *req.Quantity); err != nil {
		return fail(c, "products.quantity.fail", err)
	}
	applog.Audit(c, "products.quantity", map[string]any{"product_id": *req.ProductID, "quantity": *req.Quantity})
	return c.JSON(fiber.Map{"message": "Product quantity updated successfully"})
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// POST /products/:id/image — multipart upload, stored under MediaDir
// with a generated filename.
func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "missing image file")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExts[ext] {
		applog.Security(c, "products.image.reject", map[string]any{"ext": ext})
		return badRequest(c, "unsupported image type")
	}

	name := uuid.NewString() + ext
	if err := c.SaveFile(fh, filepath.Join(h.MediaDir, name)); err != nil {
		return fail(c, "products.image.save.fail", err)
	}

	url := "media/" + name
	if err := h.Catalog.AttachImage(id, url); err != nil {
		return fail(c, "products.image.attach.fail", err)
	}

	applog.Audit(c, "products.image", map[string]any{"product_id": id, "image_url": url})
	return c.JSON(fiber.Map{"message": "Image uploaded successfully", "image_url": url})
}
