package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"codecup/internal/middleware"
	"codecup/internal/shop"
)

type RouteOptions struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// RegisterRoutes mounts the storefront API. Reads are public; everything that
// mutates state sits behind the session guard.
func RegisterRoutes(r *gin.Engine, s *shop.Service, opts RouteOptions) {
	r.GET("/", Home())
	r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	r.POST("/auth/session", CreateSession(opts.JWTSecret, opts.SessionTTL))

	r.GET("/products", GetProducts(s))
	r.GET("/products/popular", GetPopularProducts(s))
	r.GET("/products/:id", GetProduct(s))
	r.GET("/search", SearchProducts(s))
	r.GET("/search/recent", GetRecentSearches(s))

	r.GET("/cart", GetCart(s))
	r.GET("/cart/events", CartEvents(s))
	r.GET("/orders", GetOrders(s))
	r.GET("/orders/events", OrderEvents(s))
	r.GET("/orders/:id", GetOrder(s))
	r.GET("/loyalty", GetLoyalty(s))
	r.GET("/loyalty/events", LoyaltyEvents(s))
	r.GET("/loyalty/history", GetPointsHistory(s))
	r.GET("/rewards", GetRewards(s))
	r.GET("/profile", GetProfile(s))

	guarded := r.Group("/")
	guarded.Use(middleware.SessionAuth(opts.JWTSecret))
	{
		guarded.DELETE("/search/recent", ClearRecentSearches(s))

		guarded.POST("/cart/items", AddCartItem(s))
		guarded.PATCH("/cart/items/:key", UpdateCartItem(s))
		guarded.DELETE("/cart/items/:key", DeleteCartItem(s))
		guarded.DELETE("/cart", ClearCart(s))

		guarded.POST("/checkout", Checkout(s))
		guarded.POST("/orders/:id/complete", CompleteOrder(s))

		guarded.POST("/rewards/:id/redeem", RedeemReward(s))
		guarded.POST("/loyalty/stamps/redeem", RedeemFreeItem(s))
		guarded.DELETE("/loyalty/stamps", ResetStamps(s))

		guarded.PUT("/profile", UpdateProfile(s))
		guarded.PATCH("/profile/:field", UpdateProfileField(s))
	}
}
