package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"productos/internal/errs"
	"productos/internal/models"
	"productos/internal/services"
)

// ProductInput is the payload of product create and full update.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,notblank,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Stock       *int            `json:"stock" validate:"required,min=0"`
	Category    models.Category `json:"category" validate:"required,category"`
}

func (in ProductInput) toModel() *models.Product {
	return &models.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Stock:       *in.Stock,
		Category:    in.Category,
	}
}

// StockInput is the payload of the stock update.
type StockInput struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   *services.ProductService
	validator *Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validator *Validator) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the product routes. writeGuards run before every
// mutating route; reads stay public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, writeGuards ...fiber.Handler) {
	write := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, writeGuards...), handler)
	}

	productRoutes := router.Group("/productos")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/categoria/:categoria", h.HandleGetProductsByCategory)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", write(h.HandleCreateProduct)...)
	productRoutes.Put("/:id", write(h.HandleUpdateProduct)...)
	productRoutes.Patch("/:id/stock", write(h.HandleUpdateStock)...)
	productRoutes.Delete("/:id", write(h.HandleDeleteProduct)...)
}

// HandleGetProducts lists every product ordered by id.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(toProductResponses(products))
}

// HandleGetProductByID returns one product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(toProductResponse(product))
}

// HandleGetProductsByCategory lists the products of the category in the path.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	category, err := models.ParseCategory(c.Params("categoria"))
	if err != nil {
		return err
	}
	products, err := h.service.GetProductsByCategory(c.UserContext(), category)
	if err != nil {
		return err
	}
	return c.JSON(toProductResponses(products))
}

// HandleCreateProduct creates a product and points Location at it.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input ProductInput
	if err := h.bind(c, &input); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.UserContext(), input.toModel())
	if err != nil {
		return err
	}

	c.Location(strings.TrimRight(c.Path(), "/") + "/" + strconv.FormatUint(uint64(product.ID), 10))
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}

// HandleUpdateProduct replaces every mutable field of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input ProductInput
	if err := h.bind(c, &input); err != nil {
		return err
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, input.toModel())
	if err != nil {
		return err
	}
	return c.JSON(toProductResponse(product))
}

// HandleUpdateStock sets only the stock of a product.
func (h *ProductHandler) HandleUpdateStock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input StockInput
	if err := h.bind(c, &input); err != nil {
		return err
	}

	product, err := h.service.UpdateStock(c.UserContext(), id, *input.Stock)
	if err != nil {
		return err
	}
	return c.JSON(toProductResponse(product))
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) bind(c *fiber.Ctx, out interface{}) error {
	return bindJSON(c, h.validator, out)
}

// bindJSON decodes the request body into out and validates it.
func bindJSON(c *fiber.Ctx, v *Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errs.NewBadRequestError("cuerpo de la petición inválido: " + err.Error())
	}
	return v.Struct(out)
}

// parseID reads the positive integer :id path parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, errs.NewBadRequestError("id inválido: " + raw)
	}
	return uint(id), nil
}
