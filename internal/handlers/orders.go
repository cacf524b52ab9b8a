package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"codecup/internal/models"
	"codecup/internal/shop"
)

type checkoutRequest struct {
	Address string `json:"address"`
}

/* =========================
   CHECKOUT
========================= */

// Checkout accepts an empty body; the profile address is used then.
func Checkout(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		var req checkoutRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondValidationError(c, err)
				return
			}
		}

		order, err := s.Checkout(req.Address)
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}

		log.Printf("[%s] order %s placed, total %.2f", route, order.ID, order.TotalAmount)
		c.JSON(http.StatusCreated, order)
	}
}

/* =========================
   LIST / GET
========================= */

// GetOrders lists all orders, or the ongoing/history view, most recent first.
func GetOrders(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders"
		defer handlePanic(c, route)

		var orders []models.Order
		switch view := c.Query("view"); view {
		case "":
			orders = s.Orders.All()
		case "ongoing":
			orders = s.Orders.OngoingView()
		case "history":
			orders = s.Orders.HistoryView()
		default:
			respondWithError(c, http.StatusBadRequest, route, "view must be ongoing or history")
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}

		pageStr, limitStr := c.Query("page"), c.Query("limit")
		if pageStr != "" || limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"data": paginate(orders, page, limit),
				"pagination": gin.H{
					"page":  page,
					"limit": limit,
					"total": len(orders),
				},
			})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		order, err := s.Orders.Get(c.Param("id"))
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   COMPLETE
========================= */

// CompleteOrder is idempotent: repeating it returns the order with
// pointsEntry null and awards nothing.
func CompleteOrder(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/:id/complete"
		defer handlePanic(c, route)

		order, entry, err := s.CompleteOrder(c.Param("id"))
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order":       order,
			"pointsEntry": entry,
			"account":     s.Loyalty.Account(),
		})
	}
}
