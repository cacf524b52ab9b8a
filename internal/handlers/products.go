package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codecup/internal/models"
	"codecup/internal/shop"
)

/*
GET /products
- category filter is optional
- pagination only applies when both page and limit are given
*/
func GetProducts(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		log.Printf("[%s] hit page=%s limit=%s category=%s", route, c.Query("page"), c.Query("limit"), c.Query("category"))

		products := s.Catalog.All()
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filtered := []models.Product{}
			for _, p := range products {
				if strings.EqualFold(p.Category, category) {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}

		pageStr, limitStr := c.Query("page"), c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			total := len(products)
			c.JSON(http.StatusOK, gin.H{
				"data": paginate(products, page, limit),
				"pagination": gin.H{
					"page":  page,
					"limit": limit,
					"total": total,
				},
			})
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, products)
	}
}

func GetPopularProducts(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/popular"
		defer handlePanic(c, route)

		popular := s.Catalog.Popular()
		if popular == nil {
			popular = []models.Product{}
		}
		c.JSON(http.StatusOK, popular)
	}
}

func GetProduct(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:id"
		defer handlePanic(c, route)

		product, err := s.Catalog.ByID(c.Param("id"))
		if err != nil {
			respondWithLedgerError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// SearchProducts also records the query in the recent-search log.
func SearchProducts(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /search"
		defer handlePanic(c, route)

		query := c.Query("q")
		results := s.Search(query)
		log.Printf("[%s] q=%q matched %d products", route, query, len(results))
		c.JSON(http.StatusOK, results)
	}
}

func GetRecentSearches(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /search/recent"
		defer handlePanic(c, route)

		c.JSON(http.StatusOK, s.Recent.All())
	}
}

func ClearRecentSearches(s *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /search/recent"
		defer handlePanic(c, route)

		s.Recent.Clear()
		c.Status(http.StatusNoContent)
	}
}
