package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopkit/cart-service/internal/domain"
	"github.com/shopkit/cart-service/internal/service"
	"go.uber.org/zap"
)

type CartHandler struct {
	cartService     *service.CartService
	defaultCustomer string
	logger          *zap.Logger
}

func NewCartHandler(cartService *service.CartService, defaultCustomer string, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		defaultCustomer: defaultCustomer,
		logger:          logger,
	}
}

func (h *CartHandler) ListOrders(c *gin.Context) {
	orders, err := h.cartService.ListOrders(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list orders",
		})
		return
	}

	response := make([]domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, domain.OrderResponse{
			CustomerID: o.CustomerID,
			OrderID:    o.OrderID,
			Date:       o.Date,
			Total:      o.Total,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *CartHandler) ListProducts(c *gin.Context) {
	products, err := h.cartService.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list products",
		})
		return
	}

	response := make([]domain.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, domain.ProductResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			Category:  p.Category,
			Stock:     p.Stock,
			Price:     p.Price,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	items, err := h.cartService.GetCart(c.Request.Context())
	if err != nil {
		h.cartError(c, err, "Failed to read cart")
		return
	}
	c.JSON(http.StatusOK, domain.CartResponse{Items: items})
}

func (h *CartHandler) ReplaceCart(c *gin.Context) {
	var req domain.ReplaceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Items == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "'items' must be a list",
		})
		return
	}

	items, err := h.cartService.ReplaceCart(c.Request.Context(), *req.Items)
	if err != nil {
		h.cartError(c, err, "Failed to replace cart")
		return
	}
	c.JSON(http.StatusOK, domain.CartResponse{Items: items})
}

func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	productID := c.Param("id")

	var req domain.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	customerID := c.DefaultQuery("customer_id", h.defaultCustomer)

	cart, err := h.cartService.SetItemQuantity(c.Request.Context(), productID, *req.Quantity, customerID)
	if err != nil {
		h.cartError(c, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) GetAnnotatedCart(c *gin.Context) {
	customerID := c.DefaultQuery("customer_id", h.defaultCustomer)

	cart, err := h.cartService.AnnotatedCart(c.Request.Context(), customerID)
	if err != nil {
		h.cartError(c, err, "Failed to annotate cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

// cartError maps service errors to responses. Everything surfaces as a
// generic failure with a readable message; nothing is retried.
func (h *CartHandler) cartError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrCartCorrupt) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Cart file malformed: expected {'items': [...]} or a list",
		})
		return
	}

	h.logger.Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": message,
	})
}
