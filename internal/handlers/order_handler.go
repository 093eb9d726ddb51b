package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"productos/internal/middleware"
	"productos/internal/models"
	"productos/internal/services"
)

// OrderItemInput is one requested line of an order.
type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// OrderInput is the payload of order creation.
type OrderInput struct {
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderStatusInput is the payload of the status update.
type OrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service   *services.OrderService
	validator *Validator
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, validator *Validator) *OrderHandler {
	return &OrderHandler{
		service:   service,
		validator: validator,
	}
}

// RegisterRoutes registers the order routes. guards run before every route.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	orderRoutes := router.Group("/pedidos", guards...)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Patch("/:id/estado", h.HandleUpdateOrderStatus)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	order, err := h.service.GetOrderByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandleCreateOrder places an order for the authenticated user, if any.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input OrderInput
	if err := bindJSON(c, h.validator, &input); err != nil {
		return err
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, models.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)
	order, err := h.service.CreateOrder(c.UserContext(), userID, items)
	if err != nil {
		return err
	}

	c.Location(strings.TrimRight(c.Path(), "/") + "/" + strconv.FormatUint(uint64(order.ID), 10))
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input OrderStatusInput
	if err := bindJSON(c, h.validator, &input); err != nil {
		return err
	}

	order, err := h.service.UpdateOrderStatus(c.UserContext(), id, strings.ToUpper(strings.TrimSpace(input.Status)))
	if err != nil {
		return err
	}
	return c.JSON(order)
}
