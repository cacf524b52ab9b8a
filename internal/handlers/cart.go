package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"codecup/internal/models"
	"codecup/internal/shop"
)

// Quantity is a pointer so that zero reaches the ledger and is rejected there
// like any other non-positive quantity.
type addCartItemRequest struct {
	ProductID     string               `json:"productId" binding:"required"`
	Quantity      *int                 `json:"quantity" binding:"required"`
	Customization models.Customization `json:"customization"`
}

// A quantity below 1 removes the line, so zero must be accepted.
type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartResponse struct {
	Lines     []models.CartLine `json:"lines"`
	Total     float64           `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func cartSnapshot(s *shop.Service) cartResponse {
	lines := s.Cart.Lines()
	if lines == nil {
		lines = []models.CartLine{}
	}
	return cartResponse{
		Lines:     lines,
		Total:     s.Cart.TotalPrice(),
		ItemCount: s.Cart.ItemCount(),
	}
}

func GetCart(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		c.JSON(http.StatusOK, cartSnapshot(s))
	}
}

func AddCartItem(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		line, err := s.AddToCart(req.ProductID, req.Customization, *req.Quantity)
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}

		log.Printf("[%s] %s now x%d", route, line.Key, line.Quantity)
		c.JSON(http.StatusCreated, gin.H{
			"line": line,
			"cart": cartSnapshot(s),
		})
	}
}

func UpdateCartItem(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /cart/items/:key"
		defer handlePanic(c, route)

		var req updateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		line, removed, err := s.Cart.UpdateQuantity(c.Param("key"), *req.Quantity)
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"line":    line,
			"removed": removed,
			"cart":    cartSnapshot(s),
		})
	}
}

func DeleteCartItem(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:key"
		defer handlePanic(c, route)

		s.Cart.RemoveLine(c.Param("key"))
		c.JSON(http.StatusOK, cartSnapshot(s))
	}
}

func ClearCart(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		s.Cart.Clear()
		c.Status(http.StatusNoContent)
	}
}
