package handlers

import (
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"codecup/internal/models"
	"codecup/internal/shop"
)

// streamUpdates sends the current value as the first event, then one event
// per ledger mutation until the client goes away. The subscription is taken
// before the snapshot so no mutation falls between the two.
func streamUpdates[T any](c *gin.Context, route, event string, subscribe func() (<-chan T, func()), snapshot func() T) {
	updates, cancel := subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent(event, snapshot())
	c.Writer.Flush()
	log.Printf("[%s] stream opened", route)

	c.Stream(func(w io.Writer) bool {
		select {
		case v, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent(event, v)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	log.Printf("[%s] stream closed", route)
}

func CartEvents(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart/events"
		defer handlePanic(c, route)

		streamUpdates(c, route, "cart", s.Cart.Subscribe, func() []models.CartLine {
			lines := s.Cart.Lines()
			if lines == nil {
				lines = []models.CartLine{}
			}
			return lines
		})
	}
}

func OrderEvents(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/events"
		defer handlePanic(c, route)

		streamUpdates(c, route, "orders", s.Orders.Subscribe, func() []models.Order {
			orders := s.Orders.All()
			if orders == nil {
				orders = []models.Order{}
			}
			return orders
		})
	}
}

func LoyaltyEvents(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /loyalty/events"
		defer handlePanic(c, route)

		streamUpdates(c, route, "loyalty", s.Loyalty.Subscribe, s.Loyalty.Account)
	}
}
